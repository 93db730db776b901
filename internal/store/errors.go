// Package store holds the two document stores the scheduler works
// against: the remote authoritative whole-document store (Redis, one JSON
// value per organization) and the in-memory local working copy each
// editing session mutates.  There is no partial write primitive: the
// remote document is always read and replaced as a unit, which is why
// correctness lives in the merge discipline rather than in storage-layer
// locking.
package store

import "errors"

// ErrRemoteUnavailable wraps any transport failure talking to the remote
// document store.  Callers at the sync boundary log it and abandon the
// cycle; the next mutation retries.
var ErrRemoteUnavailable = errors.New("remote document store unavailable")

// ErrCorruptDocument is returned when the stored document cannot be
// decoded as JSON.
var ErrCorruptDocument = errors.New("corrupt schedule document")

// ErrSchemaVersion is returned when the stored document carries a newer
// schema version than this build understands.  Rejecting it beats
// guessing and silently dropping fields another writer depends on.
var ErrSchemaVersion = errors.New("unsupported document schema version")
