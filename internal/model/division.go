package model

// Division is a named group of bunks sharing one daily time window.  Each
// division belongs to exactly one subdivision; the registry validates that
// invariant when it loads.  This struct corresponds to a row in the
// `divisions` table joined with its `bunks` rows.
//
// Fields:
//  Name      – unique division name (e.g. "Grade 3 Boys").
//  Bunks     – ordered bunk identifiers belonging to this division.
//  StartTime – first scheduled time of the day, "HH:MM".
//  EndTime   – last scheduled time of the day, "HH:MM".
type Division struct {
    Name      string   `json:"name"`
    Bunks     []string `json:"bunks"`
    StartTime string   `json:"start_time"`
    EndTime   string   `json:"end_time"`
}

// Subdivision is the unit of ownership and locking: a named set of
// divisions assigned to one scheduler.  Subdivisions partition the camp:
// a division never appears in two subdivisions.
//
// Fields:
//  ID        – stable identifier (slug) of the subdivision.
//  Name      – display name (e.g. "Upper Camp").
//  Divisions – names of the divisions this subdivision owns.
//  EditorID  – user ID of the scheduler assigned to this subdivision.
type Subdivision struct {
    ID        string   `json:"id"`
    Name      string   `json:"name"`
    Divisions []string `json:"divisions"`
    EditorID  uint64   `json:"editor_id"`
}

// ResourceRule describes one physical resource (field, court, room) from
// the capacity catalog.  Effective capacity resolution: an explicit
// MaxCapacity wins; otherwise shareable resources hold two simultaneous
// groups and everything else holds one.
type ResourceRule struct {
    Name        string `json:"name"`
    Shareable   bool   `json:"shareable"`
    MaxCapacity *int   `json:"max_capacity,omitempty"`
}

// Default concurrent capacities used when a rule has no explicit override.
const (
    DefaultCapacity   = 1
    ShareableCapacity = 2
)

// EffectiveCapacity resolves the concurrent-use ceiling for the resource.
func (r ResourceRule) EffectiveCapacity() int {
    if r.MaxCapacity != nil && *r.MaxCapacity > 0 {
        return *r.MaxCapacity
    }
    if r.Shareable {
        return ShareableCapacity
    }
    return DefaultCapacity
}
