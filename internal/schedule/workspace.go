package schedule

import (
    "github.com/odelyak/campboard/internal/claims"
    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/registry"
)

// Workspace is the explicit scheduling context for one (editor, date)
// pair: the live day entry being edited, the time grid, and the claims
// restored from other editors' locked partitions.  Every lock-manager
// and aggregation call receives it as an argument; nothing in the core
// reads ambient globals, which keeps the merge and aggregation paths
// testable in isolation.
//
// A workspace is not safe for concurrent use.  The owning session
// serializes access.
type Workspace struct {
    Date string
    Grid model.TimeGrid

    day      *model.DayEntry
    reg      *registry.Registry
    restored model.ClaimTable
}

// NewWorkspace wraps a live day entry.  The entry's grid wins when
// present; otherwise defaultGrid is stamped onto the day so every editor
// of this date agrees on the slot skeleton.
func NewWorkspace(date string, defaultGrid model.TimeGrid, day *model.DayEntry, reg *registry.Registry) *Workspace {
    if day.TimeGrid == nil {
        grid := defaultGrid
        day.TimeGrid = &grid
    }
    if day.Assignments == nil {
        day.Assignments = make(map[string][]model.SlotAssignment)
    }
    if day.Partitions == nil {
        day.Partitions = make(map[string]*model.PartitionSchedule)
    }
    return &Workspace{
        Date:     date,
        Grid:     *day.TimeGrid,
        day:      day,
        reg:      reg,
        restored: make(model.ClaimTable),
    }
}

// Assignments returns the live bunk rows.
func (w *Workspace) Assignments() map[string][]model.SlotAssignment {
    return w.day.Assignments
}

// Row returns the live slot row for a bunk, creating a free-filled row
// of grid length on first touch.
func (w *Workspace) Row(bunk string) []model.SlotAssignment {
    row, ok := w.day.Assignments[bunk]
    if ok && len(row) >= w.Grid.SlotCount {
        return row
    }
    grown := make([]model.SlotAssignment, w.Grid.SlotCount)
    for i := range grown {
        grown[i] = model.FreeSlot()
    }
    copy(grown, row)
    w.day.Assignments[bunk] = grown
    return grown
}

// Partitions returns the live partition table for the day.
func (w *Workspace) Partitions() map[string]*model.PartitionSchedule {
    return w.day.Partitions
}

// Partition returns one partition record, or nil when the day has none
// for that subdivision yet.
func (w *Workspace) Partition(subdivisionID string) *model.PartitionSchedule {
    return w.day.Partitions[subdivisionID]
}

// EnsurePartition returns the partition record for a subdivision,
// creating the EMPTY record on first load of the day.
func (w *Workspace) EnsurePartition(subdivisionID string) *model.PartitionSchedule {
    p, ok := w.day.Partitions[subdivisionID]
    if !ok {
        p = model.NewPartitionSchedule(subdivisionID)
        w.day.Partitions[subdivisionID] = p
    }
    return p
}

// CountEmpty counts partitions still in EMPTY status; the fair-share
// competitor count derives from it.
func (w *Workspace) CountEmpty() int {
    n := 0
    for _, p := range w.day.Partitions {
        if p != nil && p.Status == model.StatusEmpty {
            n++
        }
    }
    return n
}

// MergeRestoredClaims folds another partition's frozen claims into the
// live usage view.  Counts add and division sets union.
func (w *Workspace) MergeRestoredClaims(t model.ClaimTable) {
    w.restored.MergeFrom(t)
}

// Usage assembles the live resource-usage table: claims derived from the
// current activity rows plus everything restored from locked partitions.
// Restored locked rows themselves never re-derive claims (their kind is
// LOCKED, not ACTIVITY), so nothing is counted twice.
func (w *Workspace) Usage() model.ClaimTable {
    usage := claims.BuildTable(w.day.Assignments, w.reg.DivisionOfBunk)
    usage.MergeFrom(w.restored)
    return usage
}

// rowsFor deep-copies the live rows of the given bunks; bunks without a
// live row are skipped.  This is the snapshot primitive behind draft and
// lock.
func (w *Workspace) rowsFor(bunks []string) map[string][]model.SlotAssignment {
    out := make(map[string][]model.SlotAssignment)
    for _, bunk := range bunks {
        if row, ok := w.day.Assignments[bunk]; ok {
            out[bunk] = model.CloneRow(row)
        }
    }
    return out
}
