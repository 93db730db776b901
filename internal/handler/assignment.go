package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
)

type assignReq struct {
    Bunk     string `json:"bunk"`
    Slot     int    `json:"slot"`
    Span     int    `json:"span"`
    Resource string `json:"resource"`
    Activity string `json:"activity"`
}

// Assign places an activity on the caller's board.  All enforcement
// lives in the session: ownership, locked partitions, grid bounds and
// resource availability.  A blocked resource comes back as 409 with the
// exact failing slots.
func (h *SessionHandler) Assign(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    var req assignReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Bunk == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "bunk required"})
    }
    if err := s.Assign(req.Bunk, req.Slot, req.Span, req.Resource, req.Activity); err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Clear frees the activity covering one slot.  Parameters ride in the
// query string so the route works as a plain DELETE.
func (h *SessionHandler) Clear(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    bunk := c.QueryParam("bunk")
    if bunk == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "bunk required"})
    }
    slot, err := strconv.Atoi(c.QueryParam("slot"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot must be an integer"})
    }
    if err := s.Clear(bunk, slot); err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}
