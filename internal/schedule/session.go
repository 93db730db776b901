package schedule

import (
    "context"
    "errors"
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/odelyak/campboard/internal/blocked"
    "github.com/odelyak/campboard/internal/claims"
    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/notify"
    "github.com/odelyak/campboard/internal/registry"
    "github.com/odelyak/campboard/internal/store"
    "github.com/odelyak/campboard/internal/syncer"
)

// Session is one editor's live scheduling state for one date: local
// working document, workspace, blocked map and debounced writer.  It is
// the server-side analogue of one open scheduling board.  All methods
// are safe for concurrent use; a single mutex serializes them, and the
// syncer only ever receives deep snapshots.
type Session struct {
    id       string
    identity model.Identity
    date     string

    reg     *registry.Registry
    bus     *notify.Bus
    lm      *LockManager
    remote  store.RemoteStore
    builder *blocked.Builder

    quiet       time.Duration
    initTimeout time.Duration
    defaultGrid model.TimeGrid

    mu      sync.Mutex
    local   *store.LocalStore
    ws      *Workspace
    bmap    *blocked.Map
    writer  *syncer.Writer
    stopped bool
}

// ID returns the session identifier handed to the client.
func (s *Session) ID() string { return s.id }

// Identity returns the editor the session belongs to.
func (s *Session) Identity() model.Identity { return s.identity }

// Date returns the schedule date the session edits.
func (s *Session) Date() string { return s.date }

// start performs the bounded initialization pass: fetch the
// authoritative document, build the workspace, create missing partition
// records, restore foreign locked work, build the blocked map, arm the
// writer, and announce readiness.  Any failure inside the deadline
// aborts the session rather than letting it run with a nil dependency.
func (s *Session) start(ctx context.Context) error {
    ctx, cancel := context.WithTimeout(ctx, s.initTimeout)
    defer cancel()

    doc, err := s.remote.Fetch(ctx)
    if err != nil {
        return s.initErr("fetch document", err)
    }

    s.mu.Lock()
    s.local = store.NewLocal()
    s.local.Replace(doc)
    s.ws = NewWorkspace(s.date, s.defaultGrid, s.local.EnsureDay(s.date), s.reg)
    s.lm.EnsurePartitions(s.ws)
    restored := s.lm.RestoreLockedPartitions(s.ws, s.identity)
    s.mu.Unlock()

    bmap, err := s.builder.Build(ctx, s.identity, s.date)
    if err != nil {
        return s.initErr("build blocked map", err)
    }

    s.mu.Lock()
    s.bmap = bmap
    s.writer = syncer.NewWriter(s.remote, s.snapshot, s.identity, s.reg.EditableBunks(s.identity), s.quiet)
    s.mu.Unlock()

    if len(restored) > 0 {
        log.Printf("schedule: session %s restored %d locked partition(s) for date %s", s.id, len(restored), s.date)
    }
    s.bus.Publish(notify.Event{
        Type:    notify.EventSchedulerReady,
        Date:    s.date,
        ActorID: s.identity.UserID,
        At:      time.Now(),
    })
    return nil
}

func (s *Session) initErr(step string, err error) error {
    if errors.Is(err, context.DeadlineExceeded) {
        return fmt.Errorf("%w: %s: %v", ErrInitTimeout, step, err)
    }
    return fmt.Errorf("session init: %s: %w", step, err)
}

// snapshot hands the syncer a deep copy of the local document.
func (s *Session) snapshot() *model.Document {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.local.Snapshot()
}

// Assign places an activity on a bunk starting at slot, spanning span
// slots.  The first slot becomes the claiming assignment and the rest
// continuations.  Rejections are inline errors: ownership, locked
// partition, grid bounds, and the blocked-map capacity check for
// resource-claiming activities.  On success the mutation lands in the
// local document immediately and the debounced write is scheduled.
func (s *Session) Assign(bunk string, slot, span int, resource, activity string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.stopped {
        return ErrSessionClosed
    }

    division, ok := s.reg.DivisionOfBunk(bunk)
    if !ok || !s.reg.CanEditDivision(s.identity, division) {
        return ErrNotAuthorized
    }
    owner, hasOwner := s.reg.DivisionOwner(division)
    if hasOwner {
        if p := s.ws.Partition(owner.ID); p != nil && p.Status == model.StatusLocked {
            return ErrAlreadyLocked
        }
    }

    if span < 1 {
        span = 1
    }
    if slot < 0 || slot+span > s.ws.Grid.SlotCount {
        return fmt.Errorf("%w: slot %d span %d with %d slots", ErrSlotRange, slot, span, s.ws.Grid.SlotCount)
    }

    head := model.SlotAssignment{Kind: model.SlotActivity, Resource: resource, Activity: activity}
    if head.ClaimsResource() && s.bmap != nil {
        if res := s.bmap.CheckRange(resource, slot, slot+span-1); !res.Available {
            return &BlockedError{Resource: resource, Slots: res.BlockedSlots}
        }
    }

    row := s.ws.Row(bunk)
    for i := slot; i < slot+span; i++ {
        clearSpan(row, i)
    }
    row[slot] = head
    for i := slot + 1; i < slot+span; i++ {
        row[i] = model.SlotAssignment{Kind: model.SlotContinuation, Resource: resource, Activity: activity}
    }

    if hasOwner {
        s.markMutated(owner.ID)
    }
    s.writer.Touch()
    return nil
}

// Clear frees the activity covering slot on a bunk, continuations
// included.  Clearing an already-free slot is a no-op.
func (s *Session) Clear(bunk string, slot int) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.stopped {
        return ErrSessionClosed
    }

    division, ok := s.reg.DivisionOfBunk(bunk)
    if !ok || !s.reg.CanEditDivision(s.identity, division) {
        return ErrNotAuthorized
    }
    owner, hasOwner := s.reg.DivisionOwner(division)
    if hasOwner {
        if p := s.ws.Partition(owner.ID); p != nil && p.Status == model.StatusLocked {
            return ErrAlreadyLocked
        }
    }

    if slot < 0 || slot >= s.ws.Grid.SlotCount {
        return fmt.Errorf("%w: slot %d with %d slots", ErrSlotRange, slot, s.ws.Grid.SlotCount)
    }

    row := s.ws.Row(bunk)
    clearSpan(row, slot)

    if hasOwner {
        s.markMutated(owner.ID)
    }
    s.writer.Touch()
    return nil
}

// markMutated advances an EMPTY partition to DRAFT on its first manual
// edit (the same transition the explicit draft pass performs) and stamps
// the modification.
func (s *Session) markMutated(subdivisionID string) {
    p := s.ws.EnsurePartition(subdivisionID)
    if p.Status == model.StatusEmpty {
        p.Status = model.StatusDraft
    }
    p.LastModifiedAt = s.lm.now()
    p.LastModifiedBy = s.identity.UserID
}

// clearSpan frees the whole activity covering index at: walks back from
// a continuation to its head, then clears the head and every
// continuation that follows it.  Locked blocks and free slots are left
// untouched.
func clearSpan(row []model.SlotAssignment, at int) {
    if row[at].IsEmpty() || row[at].Kind == model.SlotLocked {
        return
    }
    head := at
    for head > 0 && row[head].Kind == model.SlotContinuation {
        head--
    }
    row[head] = model.FreeSlot()
    for j := head + 1; j < len(row) && row[j].Kind == model.SlotContinuation; j++ {
        row[j] = model.FreeSlot()
    }
}

// MarkDraft runs the camp-wide (or owned-subdivision) draft pass and
// schedules a write.
func (s *Session) MarkDraft() ([]string, error) {
    s.mu.Lock()
    if s.stopped {
        s.mu.Unlock()
        return nil, ErrSessionClosed
    }
    drafted := s.lm.MarkDraft(s.ws, s.identity)
    s.mu.Unlock()

    if len(drafted) > 0 {
        s.writer.Touch()
    }
    return drafted, nil
}

// Lock freezes one subdivision and pushes the new lock state out
// immediately.  A failed push is logged and retried by the next
// mutation's cycle; the lock itself stands either way, exactly as
// advisory locking implies.
func (s *Session) Lock(subdivisionID string) error {
    s.mu.Lock()
    if s.stopped {
        s.mu.Unlock()
        return ErrSessionClosed
    }
    err := s.lm.Lock(s.ws, s.identity, subdivisionID)
    s.mu.Unlock()
    if err != nil {
        return err
    }
    s.pushLockState("lock", subdivisionID)
    return nil
}

// Unlock reopens one subdivision and pushes the new lock state out.
func (s *Session) Unlock(subdivisionID string) error {
    s.mu.Lock()
    if s.stopped {
        s.mu.Unlock()
        return ErrSessionClosed
    }
    err := s.lm.Unlock(s.ws, s.identity, subdivisionID)
    s.mu.Unlock()
    if err != nil {
        return err
    }
    s.pushLockState("unlock", subdivisionID)
    return nil
}

func (s *Session) pushLockState(op, subdivisionID string) {
    if err := s.writer.Flush(); err != nil {
        log.Printf("schedule: %s %s: lock state write failed: %v (will retry on next change)", op, subdivisionID, err)
    }
}

// PartitionView is the per-subdivision status row the board header
// renders: who holds which partition in which state.
type PartitionView struct {
    SubdivisionID  string       `json:"subdivision_id"`
    Name           string       `json:"name"`
    Divisions      []string     `json:"divisions"`
    Status         model.Status `json:"status"`
    LockedBy       *uint64      `json:"locked_by,omitempty"`
    LockedAt       *time.Time   `json:"locked_at,omitempty"`
    LastModifiedAt time.Time    `json:"last_modified_at,omitempty"`
    Editable       bool         `json:"editable"`
}

// Subdivisions reports every partition's current status.
func (s *Session) Subdivisions() []PartitionView {
    s.mu.Lock()
    defer s.mu.Unlock()

    subs := s.reg.AllSubdivisions()
    out := make([]PartitionView, 0, len(subs))
    for _, sub := range subs {
        v := PartitionView{
            SubdivisionID: sub.ID,
            Name:          sub.Name,
            Divisions:     append([]string(nil), sub.Divisions...),
            Status:        model.StatusEmpty,
            Editable:      s.reg.CanEdit(s.identity, sub.ID),
        }
        if p := s.ws.Partition(sub.ID); p != nil {
            v.Status = p.Status
            v.LastModifiedAt = p.LastModifiedAt
            if p.LockedBy != nil {
                uid := *p.LockedBy
                v.LockedBy = &uid
            }
            if p.LockedAt != nil {
                at := *p.LockedAt
                v.LockedAt = &at
            }
        }
        out = append(out, v)
    }
    return out
}

// DivisionsToSchedule lists divisions the editor may still place
// activities in.
func (s *Session) DivisionsToSchedule() []string {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.lm.DivisionsToSchedule(s.ws, s.identity)
}

// BunksToSchedule lists bunks the editor may still place activities in.
func (s *Session) BunksToSchedule() []string {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.lm.BunksToSchedule(s.ws, s.identity)
}

// Assignments returns a deep copy of the live board.
func (s *Session) Assignments() map[string][]model.SlotAssignment {
    s.mu.Lock()
    defer s.mu.Unlock()
    return model.CloneAssignments(s.ws.Assignments())
}

// Grid returns the day's time grid.
func (s *Session) Grid() model.TimeGrid {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.ws.Grid
}

// Usage returns the live resource-usage table (own claims plus restored
// locked claims).
func (s *Session) Usage() model.ClaimTable {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.ws.Usage()
}

// BlockedMap returns the availability map built at session start.  The
// map is immutable once built.
func (s *Session) BlockedMap() *blocked.Map {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.bmap
}

// Availability runs the range check against the blocked map.
func (s *Session) Availability(resource string, from, to int) (blocked.RangeResult, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if from < 0 || to < from || to >= s.ws.Grid.SlotCount {
        return blocked.RangeResult{}, fmt.Errorf("%w: range %d..%d with %d slots", ErrSlotRange, from, to, s.ws.Grid.SlotCount)
    }
    return s.bmap.CheckRange(resource, from, to), nil
}

// CapacityView answers "how much of this resource is left for me" over
// a slot range, with the claim report naming who already holds it.
type CapacityView struct {
    Resource    string        `json:"resource"`
    MaxCapacity int           `json:"max_capacity"`
    Remaining   int           `json:"remaining"`
    Claim       claims.Report `json:"claim"`
}

// Capacity computes remaining capacity and the claimed-by-others report
// for one resource over the given slots.
func (s *Session) Capacity(resource string, slots []int) CapacityView {
    s.mu.Lock()
    defer s.mu.Unlock()

    agg := s.aggregateOthers()
    capacity := s.reg.MaxCapacity(resource)
    return CapacityView{
        Resource:    resource,
        MaxCapacity: capacity,
        Remaining:   claims.Remaining(agg, resource, slots, capacity),
        Claim:       claims.ClaimedByOthers(agg, resource, slots, capacity),
    }
}

// Allocations computes the fair-share snapshot for every cataloged
// resource over the given slots.
func (s *Session) Allocations(slots []int) map[string]claims.Allocation {
    s.mu.Lock()
    defer s.mu.Unlock()

    agg := s.aggregateOthers()
    competitors := s.ws.CountEmpty() + 1
    return claims.Snapshot(agg, s.reg.Resources(), slots, s.reg.MaxCapacity, competitors)
}

// aggregateOthers consolidates frozen claims from locked partitions this
// editor cannot touch.  Callers hold s.mu.
func (s *Session) aggregateOthers() model.ClaimTable {
    return claims.AggregateLocked(s.ws.Partitions(), func(sid string) bool {
        return s.reg.CanEdit(s.identity, sid)
    })
}

// Stop flushes outstanding work and shuts the writer down.  Safe to call
// more than once; only the first call does the work.
func (s *Session) Stop() {
    s.mu.Lock()
    if s.stopped {
        s.mu.Unlock()
        return
    }
    s.stopped = true
    writer := s.writer
    s.mu.Unlock()

    if writer == nil {
        return
    }
    if err := writer.Flush(); err != nil {
        log.Printf("schedule: session %s final flush failed: %v", s.id, err)
    }
    writer.Stop()
}
