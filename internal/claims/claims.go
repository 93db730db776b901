// Package claims consolidates resource consumption across partitions and
// answers the capacity questions placement logic asks before allowing a
// drop: how much of a resource others have already spoken for, whether a
// slot range is saturated, and what a fair per-editor ceiling looks like
// while several partitions still compete for the same resource.  All
// functions are pure: they operate on explicit inputs and never reach
// into ambient state, so every rule here is testable in isolation.
package claims

import (
    "github.com/odelyak/campboard/internal/model"
)

// BuildTable derives a claim table from live bunk rows.  Only activity
// slots that actually consume a resource are recorded; continuations,
// free slots, restored locked tags and placeholder activities never
// claim.  divisionOf resolves a bunk to its owning division; bunks it
// cannot resolve are recorded without a division rather than dropped.
func BuildTable(rows map[string][]model.SlotAssignment, divisionOf func(bunk string) (string, bool)) model.ClaimTable {
    table := make(model.ClaimTable)
    for bunk, row := range rows {
        division, _ := divisionOf(bunk)
        for slot, a := range row {
            if !a.ClaimsResource() {
                continue
            }
            table.Record(slot, a.Resource, division, bunk, a.Activity)
        }
    }
    return table
}

// AggregateLocked consolidates the frozen claim tables of every locked
// partition the caller cannot edit.  Counts add up per (slot, resource);
// owning divisions and bunk detail union.  The result is the
// authoritative "spoken for by someone else" view: it is built from
// lock-time snapshots, never from live rows, so an editor's own draft
// work cannot leak into it.
func AggregateLocked(parts map[string]*model.PartitionSchedule, editable func(subdivisionID string) bool) model.ClaimTable {
    agg := make(model.ClaimTable)
    for id, p := range parts {
        if p == nil || p.Status != model.StatusLocked {
            continue
        }
        if editable(id) {
            continue
        }
        agg.MergeFrom(p.ResourceClaims)
    }
    return agg
}

// Report describes whether a slot range is already claimed to capacity
// by other partitions.  When Claimed is true, Slot identifies the first
// saturated slot encountered and ClaimedBy/CurrentCount describe that
// slot; a multi-slot activity needs every slot free for its full
// duration, so one saturated slot blocks the whole range.
type Report struct {
    Claimed      bool     `json:"claimed"`
    ClaimedBy    []string `json:"claimed_by,omitempty"`
    CurrentCount int      `json:"current_count"`
    MaxCapacity  int      `json:"max_capacity"`
    Slot         int      `json:"slot"`
}

// ClaimedByOthers checks the aggregated claim table for the given
// resource across slots.  The range is claimed as soon as any one slot
// reaches capacity.
func ClaimedByOthers(agg model.ClaimTable, resource string, slots []int, capacity int) Report {
    for _, slot := range slots {
        info := agg.Get(slot, resource)
        if info.Count >= capacity && info.Count > 0 {
            by := make([]string, len(info.OwningDivisions))
            copy(by, info.OwningDivisions)
            return Report{
                Claimed:      true,
                ClaimedBy:    by,
                CurrentCount: info.Count,
                MaxCapacity:  capacity,
                Slot:         slot,
            }
        }
    }
    return Report{MaxCapacity: capacity}
}

// Remaining computes how many units of a resource are still free across
// a slot range.  The binding constraint is the single most-claimed slot
// in the range, not the sum across slots.
func Remaining(agg model.ClaimTable, resource string, slots []int, capacity int) int {
    worst := 0
    for _, slot := range slots {
        if n := agg.Count(slot, resource); n > worst {
            worst = n
        }
    }
    if remaining := capacity - worst; remaining > 0 {
        return remaining
    }
    return 0
}
