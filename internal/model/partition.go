package model

import "time"

// Status is the lifecycle state of one subdivision's schedule for one day.
// The only legal transitions are EMPTY → DRAFT (first snapshot),
// DRAFT → LOCKED (lock), and LOCKED → DRAFT (unlock).  A partition is
// never deleted and never returns to EMPTY.
type Status string

const (
    StatusEmpty  Status = "EMPTY"  // no schedule generated yet
    StatusDraft  Status = "DRAFT"  // has data, not yet frozen
    StatusLocked Status = "LOCKED" // frozen and authoritative for other editors
)

// PartitionSchedule carries one subdivision's per-day lock state together
// with the snapshot frozen when the state last advanced.  It travels
// inside the shared document, which is what makes the lock advisory: the
// status lives in the same value it protects, so acquiring it is a plain
// read-then-write with no compare-and-swap.
//
// Fields:
//  SubdivisionID  – owning subdivision.
//  Status         – EMPTY, DRAFT or LOCKED.
//  LockedBy       – user who locked; nil unless LOCKED.
//  LockedAt       – lock timestamp; nil unless LOCKED.
//  LastModifiedAt – when the draft snapshot was last refreshed.
//  LastModifiedBy – user who refreshed it.
//  ScheduleData   – frozen bunk → slot assignments at snapshot time.
//  ResourceClaims – frozen per-slot resource claims derived from the
//                   snapshot; what other editors' sessions consume.
type PartitionSchedule struct {
    SubdivisionID  string                      `json:"subdivision_id"`
    Status         Status                      `json:"status"`
    LockedBy       *uint64                     `json:"locked_by,omitempty"`
    LockedAt       *time.Time                  `json:"locked_at,omitempty"`
    LastModifiedAt time.Time                   `json:"last_modified_at,omitempty"`
    LastModifiedBy uint64                      `json:"last_modified_by,omitempty"`
    ScheduleData   map[string][]SlotAssignment `json:"schedule_data,omitempty"`
    ResourceClaims ClaimTable                  `json:"resource_claims,omitempty"`
}

// NewPartitionSchedule returns the EMPTY partition record created the
// first time a day is loaded for a subdivision.
func NewPartitionSchedule(subdivisionID string) *PartitionSchedule {
    return &PartitionSchedule{SubdivisionID: subdivisionID, Status: StatusEmpty}
}

// Clone deep-copies the partition record, including the frozen snapshot.
func (p *PartitionSchedule) Clone() *PartitionSchedule {
    if p == nil {
        return nil
    }
    out := *p
    if p.LockedBy != nil {
        v := *p.LockedBy
        out.LockedBy = &v
    }
    if p.LockedAt != nil {
        v := *p.LockedAt
        out.LockedAt = &v
    }
    out.ScheduleData = CloneAssignments(p.ScheduleData)
    out.ResourceClaims = p.ResourceClaims.Clone()
    return &out
}
