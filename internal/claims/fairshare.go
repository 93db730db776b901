package claims

import (
    "github.com/odelyak/campboard/internal/model"
)

// FairShare computes a conservative per-editor ceiling on a resource so
// early schedulers do not exhaust it before later ones get a turn.  With
// at most one competitor the full capacity is returned unmodified.
// Otherwise the capacity is split evenly (floored, minimum one unit) and
// clamped to what actually remains.
func FairShare(capacity, remaining, competitors int) int {
    if competitors <= 1 {
        return capacity
    }
    share := capacity / competitors
    if share < 1 {
        share = 1
    }
    if share > remaining {
        share = remaining
    }
    return share
}

// Allocation is the per-resource view the UI renders next to the
// resource picker: what is left, what this editor should take at most,
// and how many other partitions still have no schedule.
type Allocation struct {
    Remaining     int `json:"remaining"`
    FairShare     int `json:"fair_share"`
    OthersWaiting int `json:"others_waiting"`
}

// Snapshot computes Allocation for every cataloged resource over a slot
// range.  competitors counts the partitions still competing for
// resources, the current editor included.
func Snapshot(agg model.ClaimTable, resources []string, slots []int, capacityOf func(string) int, competitors int) map[string]Allocation {
    out := make(map[string]Allocation, len(resources))
    waiting := competitors - 1
    if waiting < 0 {
        waiting = 0
    }
    for _, resource := range resources {
        capacity := capacityOf(resource)
        remaining := Remaining(agg, resource, slots, capacity)
        out[resource] = Allocation{
            Remaining:     remaining,
            FairShare:     FairShare(capacity, remaining, competitors),
            OthersWaiting: waiting,
        }
    }
    return out
}
