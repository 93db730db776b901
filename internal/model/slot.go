package model

import "strings"

// SlotKind tags one slot assignment with its variant.  Keeping the kind
// explicit (instead of a pair of booleans) makes the impossible
// combinations unrepresentable: a continuation can never also be a fresh
// claim, and a locked block can never be edited as if it were local work.
type SlotKind string

const (
    // SlotFree marks an unassigned slot.
    SlotFree SlotKind = "FREE"
    // SlotActivity marks a fresh assignment; this is the only kind that
    // claims a unit of a resource's capacity.
    SlotActivity SlotKind = "ACTIVITY"
    // SlotContinuation marks a slot that extends the previous slot's
    // activity (multi-period activities).  Never a fresh claim.
    SlotContinuation SlotKind = "CONTINUATION"
    // SlotLocked marks a read-only block restored from another
    // subdivision's frozen snapshot.  LockedBy records the owner.
    SlotLocked SlotKind = "LOCKED"
)

// SlotAssignment is one bunk's assignment for one global slot index.
//
// Fields:
//  Kind     – variant tag, see SlotKind.
//  Resource – claimed resource name; empty for resource-free activities.
//  Activity – activity label shown on the board.
//  LockedBy – owning subdivision ID; set only when Kind is LOCKED.
type SlotAssignment struct {
    Kind     SlotKind `json:"kind"`
    Resource string   `json:"resource,omitempty"`
    Activity string   `json:"activity,omitempty"`
    LockedBy string   `json:"locked_by,omitempty"`
}

// FreeSlot returns the canonical unassigned slot value.
func FreeSlot() SlotAssignment { return SlotAssignment{Kind: SlotFree} }

// IsEmpty reports whether the slot carries no assignment at all.
func (s SlotAssignment) IsEmpty() bool {
    return s.Kind == "" || s.Kind == SlotFree
}

// ClaimsResource reports whether this slot consumes one unit of a
// resource's capacity.  Continuations extend an earlier claim, locked
// blocks are accounted through their partition's frozen claim table, and
// "free"/"transition" periods occupy no physical resource even when a
// resource name leaked into the record.
func (s SlotAssignment) ClaimsResource() bool {
    if s.Kind != SlotActivity || s.Resource == "" {
        return false
    }
    switch strings.ToLower(s.Resource) {
    case "free", "none":
        return false
    }
    switch strings.ToLower(s.Activity) {
    case "free", "free play", "transition":
        return false
    }
    return true
}

// CloneRow deep-copies one bunk's slot sequence.
func CloneRow(row []SlotAssignment) []SlotAssignment {
    if row == nil {
        return nil
    }
    out := make([]SlotAssignment, len(row))
    copy(out, row)
    return out
}

// CloneAssignments deep-copies a bunk-keyed assignment map.
func CloneAssignments(src map[string][]SlotAssignment) map[string][]SlotAssignment {
    if src == nil {
        return nil
    }
    out := make(map[string][]SlotAssignment, len(src))
    for bunk, row := range src {
        out[bunk] = CloneRow(row)
    }
    return out
}
