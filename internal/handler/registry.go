package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/odelyak/campboard/internal/registry"
)

// RegistryHandler serves the static camp catalog: divisions and their
// bunks, subdivisions and their editors, and resource capacity rules.
// The catalog is loaded once at startup, so these endpoints are ideal
// response-cache targets.
type RegistryHandler struct {
    Reg *registry.Registry
}

func NewRegistryHandler(reg *registry.Registry) *RegistryHandler {
    return &RegistryHandler{Reg: reg}
}

// Divisions lists every division with its bunks and day window.
func (h *RegistryHandler) Divisions(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"divisions": h.Reg.Divisions()})
}

// Subdivisions lists every subdivision with its divisions and editor.
func (h *RegistryHandler) Subdivisions(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"subdivisions": h.Reg.AllSubdivisions()})
}

// Resources lists capacity rules with their effective capacities.
func (h *RegistryHandler) Resources(c echo.Context) error {
    rules := h.Reg.ResourceRules()
    out := make([]echo.Map, 0, len(rules))
    for _, r := range rules {
        out = append(out, echo.Map{
            "name":      r.Name,
            "shareable": r.Shareable,
            "capacity":  r.EffectiveCapacity(),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"resources": out})
}
