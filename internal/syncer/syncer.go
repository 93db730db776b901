// Package syncer owns the debounced write-back loop.  Every local
// mutation calls Touch; the actual remote write happens once the editor
// goes quiet, so a burst of drag-and-drop edits collapses into a single
// fetch-merge-put cycle.  Coalescing shrinks the collision window between
// concurrent editors but is a liveness optimization only; correctness
// comes from the merge discipline, not from timing.
package syncer

import (
    "context"
    "log"
    "sync"
    "time"

    "github.com/odelyak/campboard/internal/merge"
    "github.com/odelyak/campboard/internal/model"
    "github.com/odelyak/campboard/internal/store"
)

const (
    // DefaultQuiet is how long the editor must stay idle before the
    // coalesced write fires.
    DefaultQuiet = 500 * time.Millisecond

    // writeTimeout bounds one fetch-merge-put cycle.
    writeTimeout = 10 * time.Second
)

// Writer debounces local mutations into whole-document remote writes.
// The pending timer is the only cancellable piece: a new Touch restarts
// the wait, Stop cancels it for good.  An in-flight network write is
// never cancelled.
type Writer struct {
    remote   store.RemoteStore
    snapshot func() *model.Document
    identity model.Identity
    myBunks  map[string]struct{}
    quiet    time.Duration

    mu      sync.Mutex
    timer   *time.Timer
    stopped bool
}

// NewWriter builds a writer for one editing session.  snapshot must
// return a deep copy of the session's local document; it is called on
// the timer goroutine.
func NewWriter(remote store.RemoteStore, snapshot func() *model.Document, identity model.Identity, myBunks map[string]struct{}, quiet time.Duration) *Writer {
    if quiet <= 0 {
        quiet = DefaultQuiet
    }
    return &Writer{
        remote:   remote,
        snapshot: snapshot,
        identity: identity,
        myBunks:  myBunks,
        quiet:    quiet,
    }
}

// Touch notes a local mutation.  The pending write is rescheduled so the
// burst currently in progress produces exactly one remote write.
func (w *Writer) Touch() {
    w.mu.Lock()
    defer w.mu.Unlock()
    if w.stopped {
        return
    }
    if w.timer == nil {
        w.timer = time.AfterFunc(w.quiet, w.fire)
        return
    }
    w.timer.Reset(w.quiet)
}

// Flush cancels any pending timer and runs one write cycle now.  Used on
// session close and after lock transitions, where waiting out the quiet
// period would widen the window in which other editors cannot see the
// new state.
func (w *Writer) Flush() error {
    w.mu.Lock()
    if w.timer != nil {
        w.timer.Stop()
    }
    w.mu.Unlock()
    return w.sync()
}

// Stop cancels the pending write and ignores all further Touches.  It
// does not flush; callers that want the final state written call Flush
// first.
func (w *Writer) Stop() {
    w.mu.Lock()
    defer w.mu.Unlock()
    w.stopped = true
    if w.timer != nil {
        w.timer.Stop()
        w.timer = nil
    }
}

// fire runs on the timer goroutine once the editor has gone quiet.
// Failures are logged and abandoned; the next mutation's Touch starts a
// fresh cycle, which is the retry path.
func (w *Writer) fire() {
    if err := w.sync(); err != nil {
        log.Printf("syncer: coalesced write failed: %v (will retry on next change)", err)
    }
}

// sync performs one fetch-merge-put cycle against the remote store.
func (w *Writer) sync() error {
    w.mu.Lock()
    if w.stopped {
        w.mu.Unlock()
        return nil
    }
    w.mu.Unlock()

    local := w.snapshot()

    ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
    defer cancel()

    remote, err := w.remote.Fetch(ctx)
    if err != nil {
        return err
    }
    merged := merge.Merge(local, remote, w.identity, w.myBunks)
    return w.remote.Put(ctx, merged)
}
