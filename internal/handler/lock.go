package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/odelyak/campboard/internal/schedule"
)

// Draft snapshots every unlocked partition the caller owns.
func (h *SessionHandler) Draft(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    drafted, err := s.MarkDraft()
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "drafted": drafted})
}

// Lock freezes one subdivision.  State-machine refusals (already
// locked, nothing to lock) come back as success=false results rather
// than request errors: the board is a shared surface and losing a race
// for the lock is an expected outcome, not a fault.
func (h *SessionHandler) Lock(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    if err := s.Lock(c.Param("id")); err != nil {
        return lockResult(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Unlock reopens one subdivision.
func (h *SessionHandler) Unlock(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    if err := s.Unlock(c.Param("id")); err != nil {
        return lockResult(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// lockResult renders lock state refusals inline and everything else as
// a plain request error.
func lockResult(c echo.Context, err error) error {
    switch {
    case errors.Is(err, schedule.ErrAlreadyLocked),
        errors.Is(err, schedule.ErrNotLocked),
        errors.Is(err, schedule.ErrEmptySchedule):
        return c.JSON(http.StatusOK, echo.Map{"success": false, "error": err.Error()})
    }
    return scheduleError(c, err)
}
