// Package merge combines one editor's local working document with the
// remote authoritative document ahead of write-back.  The remote store
// only supports whole-document replacement, so this merge is the entire
// isolation mechanism between editors: without it, one editor's PUT
// would clobber everything the others wrote since their last fetch.
package merge

import (
    "github.com/odelyak/campboard/internal/model"
)

// Merge builds the document to write back.
//
// Admins overwrite: their local view is treated as a superset of truth
// and is returned whole.  For schedulers the result starts as a deep
// copy of the remote document; then, for every date the local document
// has an entry for, bunk rows the editor owns are taken from the local
// copy while everyone else's rows keep their remote values, even when
// the local document holds a different (stale, cached) copy of them.
//
// Date-level keys that are not bunk-keyed (the time grid and the
// partition lock table) are copied wholesale from the local entry when
// present.  That is deliberately looser than the bunk rule: it is how
// lock-state changes propagate between editors, and it means the last
// writer wins on those keys.  The asymmetry is inherited behavior; do
// not unify the two paths without revisiting every lock-propagation
// flow that depends on it.
func Merge(local, remote *model.Document, identity model.Identity, myBunks map[string]struct{}) *model.Document {
    if local == nil {
        local = model.NewDocument()
    }
    if identity.IsAdmin() {
        return local.Clone()
    }

    out := remote.Clone()
    if out == nil {
        out = model.NewDocument()
    }

    for date, localDay := range local.Days {
        if localDay == nil {
            continue
        }
        outDay := out.EnsureDay(date)

        if localDay.TimeGrid != nil {
            grid := *localDay.TimeGrid
            outDay.TimeGrid = &grid
        }
        if localDay.Partitions != nil {
            parts := make(map[string]*model.PartitionSchedule, len(localDay.Partitions))
            for id, p := range localDay.Partitions {
                parts[id] = p.Clone()
            }
            outDay.Partitions = parts
        }

        for bunk, row := range localDay.Assignments {
            if _, mine := myBunks[bunk]; !mine {
                continue
            }
            if outDay.Assignments == nil {
                outDay.Assignments = make(map[string][]model.SlotAssignment)
            }
            outDay.Assignments[bunk] = model.CloneRow(row)
        }
    }

    return out
}
