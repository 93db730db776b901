package store

import (
    "context"

    "github.com/odelyak/campboard/internal/model"
)

// RemoteStore is the authoritative shared document store.  Fetch returns
// the full document (an empty one when none has been written yet); Put
// replaces the document as a whole.
type RemoteStore interface {
    Fetch(ctx context.Context) (*model.Document, error)
    Put(ctx context.Context, doc *model.Document) error
}

// LocalStore is one session's in-memory working copy of the document.
// It is not safe for concurrent use; the owning session serializes all
// access and hands the syncer deep snapshots instead of live pointers.
type LocalStore struct {
    doc *model.Document
}

// NewLocal returns a local store holding an empty document.
func NewLocal() *LocalStore {
    return &LocalStore{doc: model.NewDocument()}
}

// Replace swaps in a freshly fetched document.  The store takes
// ownership of doc; callers must not keep mutating it.
func (s *LocalStore) Replace(doc *model.Document) {
    if doc == nil {
        doc = model.NewDocument()
    }
    s.doc = doc
}

// Document returns the live working document.
func (s *LocalStore) Document() *model.Document {
    return s.doc
}

// Snapshot returns a deep copy of the working document, safe to hand to
// another goroutine.
func (s *LocalStore) Snapshot() *model.Document {
    return s.doc.Clone()
}

// Day returns the live entry for date, or nil when the document has none.
func (s *LocalStore) Day(date string) *model.DayEntry {
    return s.doc.Day(date)
}

// EnsureDay returns the live entry for date, creating it if needed.
func (s *LocalStore) EnsureDay(date string) *model.DayEntry {
    return s.doc.EnsureDay(date)
}
