package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers
    "time"     // timestamps for the health payload

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is the liveness endpoint used by load balancers and monitoring.
// It reports that the process is up and serving; it deliberately does
// not probe MySQL or Redis, since a transient dependency outage should
// drain new sessions, not recycle the process and kill the live ones.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "status":  "ok",
        "service": "campboard",
        "time":    time.Now().UTC().Format(time.RFC3339),
    })
}
