package model

// SchemaVersion is the current wire version of the shared document.  A
// fetched document with a newer version is rejected rather than guessed
// at; older (or missing) versions are accepted and stamped forward on the
// next write.
const SchemaVersion = 1

// Document is the whole shared state for one organization: every day's
// assignments, time grid and partition lock states.  The remote store
// reads and writes it as a single JSON value; there is no partial or
// field-level write, which is why all isolation between editors comes
// from the ownership-gated merge and not from the storage layer.
type Document struct {
    SchemaVersion int                  `json:"schema_version"`
    Days          map[string]*DayEntry `json:"days,omitempty"`
}

// DayEntry is one date's slice of the document, keyed "YYYY-MM-DD".
//
// Assignments is bunk-keyed and merged under the ownership rule (an
// editor's bunks win locally, everyone else's stay remote).  TimeGrid and
// Partitions are date-level keys that are not bunk-keyed: the merge
// copies them wholesale from the local document whenever the local date
// entry exists.  That asymmetry is how lock-state changes propagate, and
// it is preserved deliberately.
type DayEntry struct {
    Assignments map[string][]SlotAssignment   `json:"assignments,omitempty"`
    TimeGrid    *TimeGrid                     `json:"time_grid,omitempty"`
    Partitions  map[string]*PartitionSchedule `json:"partitions,omitempty"`
}

// TimeGrid is the shared slot skeleton for one day.
type TimeGrid struct {
    SlotCount   int    `json:"slot_count"`
    SlotMinutes int    `json:"slot_minutes"`
    DayStart    string `json:"day_start"` // "HH:MM"
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
    return &Document{SchemaVersion: SchemaVersion, Days: make(map[string]*DayEntry)}
}

// Day returns the entry for date, or nil when the document has none.
func (d *Document) Day(date string) *DayEntry {
    if d == nil || d.Days == nil {
        return nil
    }
    return d.Days[date]
}

// EnsureDay returns the entry for date, creating an empty one if needed.
func (d *Document) EnsureDay(date string) *DayEntry {
    if d.Days == nil {
        d.Days = make(map[string]*DayEntry)
    }
    e, ok := d.Days[date]
    if !ok {
        e = &DayEntry{}
        d.Days[date] = e
    }
    return e
}

// Clone deep-copies the whole document.
func (d *Document) Clone() *Document {
    if d == nil {
        return nil
    }
    out := &Document{SchemaVersion: d.SchemaVersion}
    if d.Days != nil {
        out.Days = make(map[string]*DayEntry, len(d.Days))
        for date, e := range d.Days {
            out.Days[date] = e.Clone()
        }
    }
    return out
}

// Clone deep-copies one day entry.
func (e *DayEntry) Clone() *DayEntry {
    if e == nil {
        return nil
    }
    out := &DayEntry{Assignments: CloneAssignments(e.Assignments)}
    if e.TimeGrid != nil {
        g := *e.TimeGrid
        out.TimeGrid = &g
    }
    if e.Partitions != nil {
        out.Partitions = make(map[string]*PartitionSchedule, len(e.Partitions))
        for id, p := range e.Partitions {
            out.Partitions[id] = p.Clone()
        }
    }
    return out
}
