// Package blocked builds the slot-by-resource availability map a session
// consults before allowing a placement.  The map is computed from the
// authoritative remote document, never from the session's local cache,
// so it reflects what other editors had actually written at session
// start rather than whatever this editor last happened to fetch.
package blocked

import (
    "context"
    "log"
    "sort"

    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/registry"
    "github.com/odelyak/campboard/internal/store"
)

// SlotResource accumulates other editors' claims on one resource in one
// slot.  IsBlocked flips once the claim count reaches the resource's
// capacity.
type SlotResource struct {
    Count              int      `json:"count"`
    MaxCapacity        int      `json:"max_capacity"`
    ClaimedByDivisions []string `json:"claimed_by_divisions,omitempty"`
    Bunks              []string `json:"bunks,omitempty"`
    IsBlocked          bool     `json:"is_blocked"`
}

// BunkClaim names what one foreign bunk is doing in one slot, for
// painting other editors' work in the grid.
type BunkClaim struct {
    Resource string `json:"resource"`
    Activity string `json:"activity"`
    Division string `json:"division"`
}

// Map is the availability view for one date and one identity.
type Map struct {
    Date           string                           `json:"date"`
    BySlotResource map[int]map[string]*SlotResource `json:"by_slot_resource"`
    ByBunkSlot     map[string]map[int]BunkClaim     `json:"by_bunk_slot"`
}

// RangeResult reports a multi-slot availability check.  BlockedSlots
// names exactly the failing slots so the UI can show where the conflict
// sits instead of a bare no.
type RangeResult struct {
    Available    bool  `json:"available"`
    BlockedSlots []int `json:"blocked_slots,omitempty"`
}

// Builder constructs availability maps from the remote store and the
// ownership registry.
type Builder struct {
    remote store.RemoteStore
    reg    *registry.Registry
}

// NewBuilder wires a builder.
func NewBuilder(remote store.RemoteStore, reg *registry.Registry) *Builder {
    return &Builder{remote: remote, reg: reg}
}

// Build fetches the authoritative document and folds every claim held by
// bunks the identity does not control into the map.  The identity's own
// bunks are always skipped, even when their rows appear in the fetched
// snapshot, so an editor never sees their own work reported back as a
// block.  A bunk whose division cannot be resolved is logged and treated
// as unclaimed rather than failing the whole build.
func (b *Builder) Build(ctx context.Context, identity model.Identity, date string) (*Map, error) {
    doc, err := b.remote.Fetch(ctx)
    if err != nil {
        return nil, err
    }

    m := &Map{
        Date:           date,
        BySlotResource: make(map[int]map[string]*SlotResource),
        ByBunkSlot:     make(map[string]map[int]BunkClaim),
    }

    day := doc.Day(date)
    if day == nil {
        return m, nil
    }

    myBunks := b.reg.EditableBunks(identity)
    for bunk, row := range day.Assignments {
        if _, mine := myBunks[bunk]; mine {
            continue
        }
        division, ok := b.reg.DivisionOfBunk(bunk)
        if !ok {
            log.Printf("blocked: bunk %q has no division in the registry, treating as unclaimed", bunk)
            continue
        }
        if b.reg.CanEditDivision(identity, division) {
            continue
        }
        for slot, a := range row {
            if !a.ClaimsResource() {
                continue
            }
            m.record(slot, a.Resource, division, bunk, a.Activity, b.reg.MaxCapacity(a.Resource))
        }
    }
    return m, nil
}

func (m *Map) record(slot int, resource, division, bunk, activity string, maxCapacity int) {
    byResource, ok := m.BySlotResource[slot]
    if !ok {
        byResource = make(map[string]*SlotResource)
        m.BySlotResource[slot] = byResource
    }
    sr, ok := byResource[resource]
    if !ok {
        sr = &SlotResource{MaxCapacity: maxCapacity}
        byResource[resource] = sr
    }
    sr.Count++
    if !containsString(sr.ClaimedByDivisions, division) {
        sr.ClaimedByDivisions = append(sr.ClaimedByDivisions, division)
        sort.Strings(sr.ClaimedByDivisions)
    }
    sr.Bunks = append(sr.Bunks, bunk)
    sr.IsBlocked = sr.Count >= sr.MaxCapacity

    bySlot, ok := m.ByBunkSlot[bunk]
    if !ok {
        bySlot = make(map[int]BunkClaim)
        m.ByBunkSlot[bunk] = bySlot
    }
    bySlot[slot] = BunkClaim{Resource: resource, Activity: activity, Division: division}
}

// IsResourceAvailable reports whether one more claim on the resource
// would still fit in the given slot.
func (m *Map) IsResourceAvailable(resource string, slot int) bool {
    byResource, ok := m.BySlotResource[slot]
    if !ok {
        return true
    }
    sr, ok := byResource[resource]
    if !ok {
        return true
    }
    return !sr.IsBlocked
}

// CheckRange requires every slot in [from, to] to be available and
// reports the exact slots that are not.
func (m *Map) CheckRange(resource string, from, to int) RangeResult {
    out := RangeResult{Available: true}
    for slot := from; slot <= to; slot++ {
        if !m.IsResourceAvailable(resource, slot) {
            out.Available = false
            out.BlockedSlots = append(out.BlockedSlots, slot)
        }
    }
    return out
}

func containsString(list []string, s string) bool {
    for _, v := range list {
        if v == s {
            return true
        }
    }
    return false
}
