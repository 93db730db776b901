package schedule

import (
    "time"

    "github.com/odelyak/campboard/internal/claims"
    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/notify"
    "github.com/odelyak/campboard/internal/registry"
)

// LockManager drives the per-partition status machine.  The only legal
// path is EMPTY → DRAFT → LOCKED → DRAFT: drafting snapshots the live
// schedule, locking freezes it as authoritative for other editors, and
// unlocking reopens it without discarding the frozen data.
//
// The lock is advisory.  Status travels inside the shared document, so
// acquiring it is a read-then-write: two sessions can both observe DRAFT
// and both write LOCKED, and the later write wins silently.  That window
// is inherited behavior and intentionally not closed here.
type LockManager struct {
    reg *registry.Registry
    bus *notify.Bus
    now func() time.Time
}

// NewLockManager wires a lock manager to the registry and event bus.
func NewLockManager(reg *registry.Registry, bus *notify.Bus) *LockManager {
    return &LockManager{reg: reg, bus: bus, now: time.Now}
}

// EnsurePartitions creates the EMPTY partition record for every
// subdivision that has none for this day yet.  Partitions are created on
// first load and never deleted, only transitioned.
func (m *LockManager) EnsurePartitions(ws *Workspace) {
    for _, sub := range m.reg.AllSubdivisions() {
        ws.EnsurePartition(sub.ID)
    }
}

// snapshotInto freezes the subdivision's current bunk rows and the
// claims derived from them into the partition record.  Always a deep
// copy: later live edits must never reach a frozen snapshot.
func (m *LockManager) snapshotInto(ws *Workspace, p *model.PartitionSchedule, sub model.Subdivision) {
    rows := ws.rowsFor(m.subdivisionBunks(sub))
    p.ScheduleData = rows
    p.ResourceClaims = claims.BuildTable(rows, m.reg.DivisionOfBunk)
}

func (m *LockManager) subdivisionBunks(sub model.Subdivision) []string {
    var bunks []string
    for _, divName := range sub.Divisions {
        if div, ok := m.reg.Division(divName); ok {
            bunks = append(bunks, div.Bunks...)
        }
    }
    return bunks
}

func (m *LockManager) stamp(p *model.PartitionSchedule, id model.Identity) {
    p.LastModifiedAt = m.now()
    p.LastModifiedBy = id.UserID
}

// MarkDraft snapshots every unlocked subdivision the identity may edit
// in one pass and returns the subdivision IDs drafted.  Admins author
// all unlocked partitions camp-wide; schedulers only their own.  LOCKED
// partitions are skipped, never failed, so one frozen partition does not
// abort the pass.
func (m *LockManager) MarkDraft(ws *Workspace, id model.Identity) []string {
    var drafted []string
    for _, sub := range m.reg.SubdivisionsOwnedBy(id) {
        p := ws.EnsurePartition(sub.ID)
        if p.Status == model.StatusLocked {
            continue
        }
        m.snapshotInto(ws, p, sub)
        p.Status = model.StatusDraft
        m.stamp(p, id)
        drafted = append(drafted, sub.ID)
    }
    return drafted
}

// MarkDraftOne snapshots a single subdivision.  Unlike the camp-wide
// pass it fails on a LOCKED partition instead of skipping it, so the
// caller learns why nothing changed.
func (m *LockManager) MarkDraftOne(ws *Workspace, id model.Identity, subdivisionID string) error {
    sub, ok := m.reg.Subdivision(subdivisionID)
    if !ok {
        return ErrUnknownSubdivision
    }
    if !m.reg.CanEdit(id, subdivisionID) {
        return ErrNotAuthorized
    }
    p := ws.EnsurePartition(subdivisionID)
    if p.Status == model.StatusLocked {
        return ErrAlreadyLocked
    }
    m.snapshotInto(ws, p, sub)
    p.Status = model.StatusDraft
    m.stamp(p, id)
    return nil
}

// Lock freezes a subdivision's schedule as authoritative.  The frozen
// copy is taken from the live rows at this instant, not from the last
// draft snapshot, so whatever the editor sees on screen is exactly what
// other editors will see as locked.
func (m *LockManager) Lock(ws *Workspace, id model.Identity, subdivisionID string) error {
    sub, ok := m.reg.Subdivision(subdivisionID)
    if !ok {
        return ErrUnknownSubdivision
    }
    if !m.reg.CanEdit(id, subdivisionID) {
        return ErrNotAuthorized
    }
    p := ws.EnsurePartition(subdivisionID)
    switch p.Status {
    case model.StatusEmpty:
        return ErrEmptySchedule
    case model.StatusLocked:
        return ErrAlreadyLocked
    }

    m.snapshotInto(ws, p, sub)
    now := m.now()
    uid := id.UserID
    p.Status = model.StatusLocked
    p.LockedBy = &uid
    p.LockedAt = &now
    m.stamp(p, id)

    m.bus.Publish(notify.Event{
        Type:          notify.EventPartitionLocked,
        Date:          ws.Date,
        SubdivisionID: subdivisionID,
        ActorID:       id.UserID,
        At:            now,
    })
    return nil
}

// Unlock reopens a locked subdivision.  Only an admin or the original
// locker may do it.  The frozen data is retained until the next draft
// snapshot, so an accidental unlock loses nothing.
func (m *LockManager) Unlock(ws *Workspace, id model.Identity, subdivisionID string) error {
    if _, ok := m.reg.Subdivision(subdivisionID); !ok {
        return ErrUnknownSubdivision
    }
    p := ws.Partition(subdivisionID)
    if p == nil || p.Status != model.StatusLocked {
        return ErrNotLocked
    }
    if !id.IsAdmin() && (p.LockedBy == nil || *p.LockedBy != id.UserID) {
        return ErrNotAuthorized
    }

    p.Status = model.StatusDraft
    p.LockedBy = nil
    p.LockedAt = nil
    m.stamp(p, id)

    m.bus.Publish(notify.Event{
        Type:          notify.EventPartitionUnlocked,
        Date:          ws.Date,
        SubdivisionID: subdivisionID,
        ActorID:       id.UserID,
        At:            m.now(),
    })
    return nil
}

// RestoreLockedPartitions copies every foreign locked partition's frozen
// rows into the live schedule as read-only LOCKED blocks and folds the
// frozen claims into the usage view.  This is how a second editor's
// board shows the first editor's committed work without re-deriving it.
// Returns the subdivision IDs restored.
func (m *LockManager) RestoreLockedPartitions(ws *Workspace, id model.Identity) []string {
    var restored []string
    for _, sub := range m.reg.AllSubdivisions() {
        p := ws.Partition(sub.ID)
        if p == nil || p.Status != model.StatusLocked {
            continue
        }
        if m.reg.CanEdit(id, sub.ID) {
            continue
        }
        for bunk, frozen := range p.ScheduleData {
            row := make([]model.SlotAssignment, len(frozen))
            for i, a := range frozen {
                row[i] = model.SlotAssignment{
                    Kind:     model.SlotLocked,
                    Resource: a.Resource,
                    Activity: a.Activity,
                    LockedBy: sub.ID,
                }
            }
            ws.Assignments()[bunk] = row
        }
        ws.MergeRestoredClaims(p.ResourceClaims)
        restored = append(restored, sub.ID)
    }
    return restored
}

// DivisionsToSchedule lists the divisions the identity may still edit:
// those in its subdivisions that are not currently locked.  For admins
// that is every unlocked division camp-wide.
func (m *LockManager) DivisionsToSchedule(ws *Workspace, id model.Identity) []string {
    var out []string
    for _, sub := range m.reg.SubdivisionsOwnedBy(id) {
        if p := ws.Partition(sub.ID); p != nil && p.Status == model.StatusLocked {
            continue
        }
        out = append(out, sub.Divisions...)
    }
    return out
}

// BunksToSchedule expands DivisionsToSchedule into bunk IDs.
func (m *LockManager) BunksToSchedule(ws *Workspace, id model.Identity) []string {
    var out []string
    for _, divName := range m.DivisionsToSchedule(ws, id) {
        if div, ok := m.reg.Division(divName); ok {
            out = append(out, div.Bunks...)
        }
    }
    return out
}
