package schedule

import (
    "context"
    "time"

    "github.com/google/uuid"
    "github.com/patrickmn/go-cache"

    "github.com/odelyak/campboard/internal/blocked"
    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/notify"
    "github.com/odelyak/campboard/internal/registry"
    "github.com/odelyak/campboard/internal/store"
)

// Options tunes session behavior.  Zero values fall back to the
// defaults below.
type Options struct {
    // Quiet is the debounce window for coalesced remote writes.
    Quiet time.Duration
    // IdleTTL evicts sessions untouched for this long; eviction flushes
    // and stops the session.
    IdleTTL time.Duration
    // InitTimeout bounds the whole session initialization pass.
    InitTimeout time.Duration
    // Grid is the day shape applied to dates that have never been
    // scheduled before.
    Grid model.TimeGrid
}

const (
    // DefaultIdleTTL is how long an untouched session survives.
    DefaultIdleTTL = 30 * time.Minute
    // DefaultInitTimeout bounds session startup.
    DefaultInitTimeout = 10 * time.Second

    cleanupInterval = 5 * time.Minute
)

// Manager creates, looks up and retires sessions.  Lookup slides the
// idle TTL forward, so a session dies only after real inactivity, and
// eviction runs the session's flush-and-stop path so no edit is lost to
// a timeout.
type Manager struct {
    reg      *registry.Registry
    bus      *notify.Bus
    remote   store.RemoteStore
    sessions *cache.Cache
    opts     Options
}

// NewManager wires a session manager over the shared registry, event
// bus and remote document store.
func NewManager(reg *registry.Registry, bus *notify.Bus, remote store.RemoteStore, opts Options) *Manager {
    if opts.IdleTTL <= 0 {
        opts.IdleTTL = DefaultIdleTTL
    }
    if opts.InitTimeout <= 0 {
        opts.InitTimeout = DefaultInitTimeout
    }
    if opts.Grid.SlotCount <= 0 {
        opts.Grid = model.TimeGrid{SlotCount: 12, SlotMinutes: 45, DayStart: "09:00"}
    }

    c := cache.New(opts.IdleTTL, cleanupInterval)
    c.OnEvicted(func(_ string, v interface{}) {
        if s, ok := v.(*Session); ok {
            s.Stop()
        }
    })
    return &Manager{
        reg:      reg,
        bus:      bus,
        remote:   remote,
        sessions: c,
        opts:     opts,
    }
}

// Start opens a new session for one editor and one date.  The date must
// be an ISO calendar day.  The session is registered only after its
// bounded initialization succeeds, so a returned session is always
// fully usable.
func (m *Manager) Start(ctx context.Context, identity model.Identity, date string) (*Session, error) {
    if _, err := time.Parse("2006-01-02", date); err != nil {
        return nil, ErrInvalidDate
    }

    s := &Session{
        id:          uuid.NewString(),
        identity:    identity,
        date:        date,
        reg:         m.reg,
        bus:         m.bus,
        lm:          NewLockManager(m.reg, m.bus),
        remote:      m.remote,
        builder:     blocked.NewBuilder(m.remote, m.reg),
        quiet:       m.opts.Quiet,
        initTimeout: m.opts.InitTimeout,
        defaultGrid: m.opts.Grid,
    }
    if err := s.start(ctx); err != nil {
        return nil, err
    }
    m.sessions.Set(s.id, s, cache.DefaultExpiration)
    return s, nil
}

// Get resolves a session by id for the given editor, sliding its idle
// TTL forward.  A live session belonging to someone else is reported as
// not authorized rather than not found.
func (m *Manager) Get(id string, identity model.Identity) (*Session, error) {
    v, found := m.sessions.Get(id)
    if !found {
        return nil, ErrSessionNotFound
    }
    s := v.(*Session)
    if s.identity.UserID != identity.UserID {
        return nil, ErrNotAuthorized
    }
    m.sessions.Set(id, s, cache.DefaultExpiration)
    return s, nil
}

// Stop flushes and retires a session explicitly.
func (m *Manager) Stop(id string, identity model.Identity) error {
    if _, err := m.Get(id, identity); err != nil {
        return err
    }
    m.sessions.Delete(id)
    return nil
}

// Close stops every live session.  Used on shutdown.
func (m *Manager) Close() {
    for _, item := range m.sessions.Items() {
        if s, ok := item.Object.(*Session); ok {
            s.Stop()
        }
    }
    m.sessions.Flush()
}
