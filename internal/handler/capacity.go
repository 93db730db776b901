package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
)

var errReadRange = errors.New("from/to must be integers")

// BlockedMap returns the availability map built at session start.
func (h *SessionHandler) BlockedMap(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, s.BlockedMap())
}

// Availability checks one resource over a slot range and names the
// blocked slots.
func (h *SessionHandler) Availability(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    resource := c.QueryParam("resource")
    if resource == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource required"})
    }
    from, to, err := slotRange(c, s.Grid().SlotCount)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    res, err := s.Availability(resource, from, to)
    if err != nil {
        return scheduleError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "resource":      resource,
        "from":          from,
        "to":            to,
        "available":     res.Available,
        "blocked_slots": res.BlockedSlots,
    })
}

// Capacity reports remaining capacity and current holders for one
// resource over a slot range.
func (h *SessionHandler) Capacity(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    resource := c.QueryParam("resource")
    if resource == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource required"})
    }
    from, to, err := slotRange(c, s.Grid().SlotCount)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, s.Capacity(resource, expand(from, to)))
}

// Allocations returns the fair-share snapshot for every cataloged
// resource over a slot range (the whole day when no range is given).
func (h *SessionHandler) Allocations(c echo.Context) error {
    s, err := h.session(c)
    if err != nil {
        return scheduleError(c, err)
    }
    from, to, err := slotRange(c, s.Grid().SlotCount)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{"allocations": s.Allocations(expand(from, to))})
}

// slotRange reads optional from/to query parameters, defaulting to the
// whole grid.
func slotRange(c echo.Context, slotCount int) (int, int, error) {
    from, to := 0, slotCount-1
    if v := c.QueryParam("from"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil {
            return 0, 0, errReadRange
        }
        from = n
    }
    if v := c.QueryParam("to"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil {
            return 0, 0, errReadRange
        }
        to = n
    }
    return from, to, nil
}

func expand(from, to int) []int {
    if to < from {
        return nil
    }
    slots := make([]int, 0, to-from+1)
    for i := from; i <= to; i++ {
        slots = append(slots, i)
    }
    return slots
}
