// Package queue defines message payloads exchanged over the message broker.
package queue

// LockEvent is published whenever a schedule partition is locked or
// unlocked. It carries enough information for downstream consumers to
// build an audit trail or notify staff without querying the primary
// database.
type LockEvent struct {
    Action          string `json:"action"` // "locked" or "unlocked"
    Date            string `json:"date"`
    SubdivisionID   string `json:"subdivision_id"`
    SubdivisionName string `json:"subdivision_name,omitempty"`
    ActorID         uint64 `json:"actor_id"`
    OccurredAt      string `json:"occurred_at"`
}
