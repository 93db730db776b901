package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/odelyak/campboard/internal/schedule"
)

// SessionHandler exposes the scheduling session lifecycle and the
// read-side views of one editor's board.
type SessionHandler struct {
    Manager *schedule.Manager
}

func NewSessionHandler(m *schedule.Manager) *SessionHandler {
    return &SessionHandler{Manager: m}
}

type startSessionReq struct {
    Date string `json:"date"`
}

// Start opens a scheduling session for the requested date.  The whole
// initialization pass runs under a deadline: authoritative fetch, lock
// restore and blocked-map build either all succeed or the session is
// never handed out.
func (h *SessionHandler) Start(c echo.Context) error {
    id, err := getIdentity(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req startSessionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    s, err := h.Manager.Start(c.Request().Context(), id, req.Date)
    if err != nil {
        c.Logger().Errorf("session start failed for user %d date %s: %v", id.UserID, req.Date, err)
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "session_id": s.ID(),
        "date":       s.Date(),
        "grid":       s.Grid(),
    })
}

// Stop flushes and retires a session.
func (h *SessionHandler) Stop(c echo.Context) error {
    id, err := getIdentity(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := h.Manager.Stop(c.Param("sid"), id); err != nil {
        return scheduleError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// session resolves the :sid path parameter to a live session owned by
// the caller.
func (h *SessionHandler) session(c echo.Context) (*schedule.Session, error) {
    id, err := getIdentity(c)
    if err != nil {
        return nil, schedule.ErrSessionNotFound
    }
    return h.Manager.Get(c.Param("sid"), id)
}

// Subdivisions reports every partition's status and lock holder.
func (h *SessionHandler) Subdivisions(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"subdivisions": s.Subdivisions()})
}

// DivisionsToSchedule lists divisions still open to this editor.
func (h *SessionHandler) DivisionsToSchedule(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"divisions": s.DivisionsToSchedule()})
}

// BunksToSchedule lists bunks still open to this editor.
func (h *SessionHandler) BunksToSchedule(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bunks": s.BunksToSchedule()})
}

// Board returns the full live view: grid, every bunk row (own work plus
// restored locked blocks) and the resource-usage table.
func (h *SessionHandler) Board(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":        s.Date(),
        "grid":        s.Grid(),
        "assignments": s.Assignments(),
        "usage":       s.Usage(),
    })
}
