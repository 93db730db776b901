package handler // handler defines http handlers

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/schedule"
    "github.com/odelyak/campboard/internal/store"
)

// getIdentity rebuilds the authenticated identity from the typed context
// values stored by the JWT middleware.  Handlers behind JWTAuth can rely
// on it; anywhere else it reports an error instead of guessing.
func getIdentity(c echo.Context) (model.Identity, error) {
    uid, ok := c.Get("user_id").(uint64)
    if !ok {
        return model.Identity{}, errors.New("missing user_id in context")
    }
    role, ok := c.Get("role").(model.Role)
    if !ok {
        return model.Identity{}, errors.New("missing role in context")
    }
    return model.Identity{UserID: uid, Role: role}, nil
}

// scheduleErrorStatus maps scheduling errors onto HTTP status codes.
// Authorization failures are 403, unknown things 404, state conflicts
// 409, malformed input 400; a closed session is 410 so clients know to
// start a new one rather than retry.
func scheduleErrorStatus(err error) int {
    var blocked *schedule.BlockedError
    switch {
    case errors.Is(err, schedule.ErrSessionNotFound),
        errors.Is(err, schedule.ErrUnknownSubdivision):
        return http.StatusNotFound
    case errors.Is(err, schedule.ErrNotAuthorized):
        return http.StatusForbidden
    case errors.Is(err, schedule.ErrAlreadyLocked),
        errors.Is(err, schedule.ErrNotLocked),
        errors.Is(err, schedule.ErrEmptySchedule):
        return http.StatusConflict
    case errors.Is(err, schedule.ErrSlotRange),
        errors.Is(err, schedule.ErrInvalidDate):
        return http.StatusBadRequest
    case errors.Is(err, schedule.ErrSessionClosed):
        return http.StatusGone
    case errors.Is(err, schedule.ErrInitTimeout):
        return http.StatusGatewayTimeout
    case errors.Is(err, store.ErrRemoteUnavailable):
        return http.StatusBadGateway
    case errors.As(err, &blocked):
        return http.StatusConflict
    }
    return http.StatusInternalServerError
}

// scheduleError writes the mapped status with the error message.  A
// blocked resource additionally names the failing slots so the client
// can paint them.
func scheduleError(c echo.Context, err error) error {
    var blocked *schedule.BlockedError
    if errors.As(err, &blocked) {
        return c.JSON(http.StatusConflict, echo.Map{
            "error":         "resource blocked",
            "resource":      blocked.Resource,
            "blocked_slots": blocked.Slots,
        })
    }
    return c.JSON(scheduleErrorStatus(err), echo.Map{"error": err.Error()})
}
