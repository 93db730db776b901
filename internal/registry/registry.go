package registry

import (
    "fmt"
    "sort"

    "github.com/odelyak/campboard/internal/model"
)

// Registry is the read-only ownership index every other scheduling
// component consults: which bunks form which division, which divisions
// form which subdivision, which editor owns which subdivision, and how
// much concurrent capacity each shared resource offers.  It is built once
// from the catalog tables and never mutated afterwards, so lookups are
// safe from any goroutine without locking.
type Registry struct {
    divisions     map[string]model.Division    // division name -> record
    divisionOrder []string                     // catalog order, for stable listings
    subdivisions  map[string]model.Subdivision // subdivision ID -> record
    subOrder      []string
    ownerOf       map[string]string // division name -> owning subdivision ID
    divisionOf    map[string]string // bunk ID -> division name
    rules         map[string]model.ResourceRule
    ruleOrder     []string
}

// New builds a registry from catalog rows and validates the partition
// invariant: every division belongs to at most one subdivision and every
// bunk to exactly one division.  Violations are reported with the
// offending name so the operator can fix the catalog data.
func New(divisions []model.Division, subdivisions []model.Subdivision, rules []model.ResourceRule) (*Registry, error) {
    r := &Registry{
        divisions:    make(map[string]model.Division, len(divisions)),
        subdivisions: make(map[string]model.Subdivision, len(subdivisions)),
        ownerOf:      make(map[string]string),
        divisionOf:   make(map[string]string),
        rules:        make(map[string]model.ResourceRule, len(rules)),
    }

    for _, d := range divisions {
        r.divisions[d.Name] = d
        r.divisionOrder = append(r.divisionOrder, d.Name)
        for _, bunk := range d.Bunks {
            if prev, ok := r.divisionOf[bunk]; ok {
                return nil, fmt.Errorf("%w: bunk %q in %q and %q", ErrDuplicateBunk, bunk, prev, d.Name)
            }
            r.divisionOf[bunk] = d.Name
        }
    }

    for _, s := range subdivisions {
        r.subdivisions[s.ID] = s
        r.subOrder = append(r.subOrder, s.ID)
        for _, div := range s.Divisions {
            if _, ok := r.divisions[div]; !ok {
                return nil, fmt.Errorf("%w: %q in subdivision %q", ErrUnknownDivision, div, s.ID)
            }
            if prev, ok := r.ownerOf[div]; ok {
                return nil, fmt.Errorf("%w: %q in %q and %q", ErrDivisionOverlap, div, prev, s.ID)
            }
            r.ownerOf[div] = s.ID
        }
    }

    for _, rule := range rules {
        r.rules[rule.Name] = rule
        r.ruleOrder = append(r.ruleOrder, rule.Name)
    }

    return r, nil
}

// AllSubdivisions returns every subdivision in catalog order.
func (r *Registry) AllSubdivisions() []model.Subdivision {
    out := make([]model.Subdivision, 0, len(r.subOrder))
    for _, id := range r.subOrder {
        out = append(out, r.subdivisions[id])
    }
    return out
}

// SubdivisionsOwnedBy returns the subdivisions the identity may edit.
// Admins own every subdivision; a scheduler only the ones whose editor
// assignment matches their user ID.
func (r *Registry) SubdivisionsOwnedBy(id model.Identity) []model.Subdivision {
    if id.IsAdmin() {
        return r.AllSubdivisions()
    }
    var out []model.Subdivision
    for _, sid := range r.subOrder {
        s := r.subdivisions[sid]
        if s.EditorID == id.UserID {
            out = append(out, s)
        }
    }
    return out
}

// Subdivision looks up one subdivision by ID.
func (r *Registry) Subdivision(subdivisionID string) (model.Subdivision, bool) {
    s, ok := r.subdivisions[subdivisionID]
    return s, ok
}

// Division looks up one division by name.
func (r *Registry) Division(name string) (model.Division, bool) {
    d, ok := r.divisions[name]
    return d, ok
}

// Divisions returns every division in catalog order.
func (r *Registry) Divisions() []model.Division {
    out := make([]model.Division, 0, len(r.divisionOrder))
    for _, name := range r.divisionOrder {
        out = append(out, r.divisions[name])
    }
    return out
}

// DivisionOwner resolves the subdivision that owns a division, if any.
func (r *Registry) DivisionOwner(divisionName string) (model.Subdivision, bool) {
    sid, ok := r.ownerOf[divisionName]
    if !ok {
        return model.Subdivision{}, false
    }
    return r.subdivisions[sid], true
}

// DivisionOfBunk resolves the division a bunk belongs to.  The second
// return is false for bunks absent from the catalog; callers treat those
// as unowned rather than failing.
func (r *Registry) DivisionOfBunk(bunk string) (string, bool) {
    d, ok := r.divisionOf[bunk]
    return d, ok
}

// CanEdit reports whether the identity may edit the given subdivision.
func (r *Registry) CanEdit(id model.Identity, subdivisionID string) bool {
    if id.IsAdmin() {
        _, ok := r.subdivisions[subdivisionID]
        return ok
    }
    s, ok := r.subdivisions[subdivisionID]
    return ok && s.EditorID == id.UserID
}

// CanEditDivision reports whether the identity may edit the subdivision
// that owns the given division.  Unowned divisions are editable by admins
// only.
func (r *Registry) CanEditDivision(id model.Identity, divisionName string) bool {
    if id.IsAdmin() {
        _, ok := r.divisions[divisionName]
        return ok
    }
    owner, ok := r.DivisionOwner(divisionName)
    return ok && owner.EditorID == id.UserID
}

// EditableDivisions returns the division names the identity may edit, in
// catalog order.
func (r *Registry) EditableDivisions(id model.Identity) []string {
    var out []string
    for _, name := range r.divisionOrder {
        if r.CanEditDivision(id, name) {
            out = append(out, name)
        }
    }
    return out
}

// EditableBunks returns the set of bunks in the identity's editable
// divisions.  This is the "my bunks" set the merge and blocked-map logic
// gate on.
func (r *Registry) EditableBunks(id model.Identity) map[string]struct{} {
    out := make(map[string]struct{})
    for _, name := range r.EditableDivisions(id) {
        for _, bunk := range r.divisions[name].Bunks {
            out[bunk] = struct{}{}
        }
    }
    return out
}

// MaxCapacity returns the concurrent-use capacity for a resource.
// Resources without a catalog rule fall back to the exclusive default of
// one, so an unconfigured resource is never treated as unlimited.
func (r *Registry) MaxCapacity(resource string) int {
    rule, ok := r.rules[resource]
    if !ok {
        return model.DefaultCapacity
    }
    return rule.EffectiveCapacity()
}

// Resources returns every cataloged resource name in catalog order.
func (r *Registry) Resources() []string {
    out := make([]string, len(r.ruleOrder))
    copy(out, r.ruleOrder)
    return out
}

// ResourceRules returns the capacity rules sorted by resource name, for
// catalog listings.
func (r *Registry) ResourceRules() []model.ResourceRule {
    out := make([]model.ResourceRule, 0, len(r.rules))
    for _, name := range r.ruleOrder {
        out = append(out, r.rules[name])
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
    return out
}
