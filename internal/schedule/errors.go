package schedule

import (
    "errors"
    "fmt"
)

// Sentinel errors for the lock lifecycle and session operations.
// Handlers translate them into inline {success:false, error} responses;
// none of them ever aborts a session.
var (
    // ErrNotAuthorized is returned when an identity attempts to edit,
    // lock or unlock a subdivision it does not own and is not admin for.
    ErrNotAuthorized = errors.New("not authorized for this subdivision")

    // ErrEmptySchedule is returned when locking a partition that has no
    // schedule yet.
    ErrEmptySchedule = errors.New("cannot lock an empty schedule")

    // ErrAlreadyLocked is returned when locking, drafting or mutating a
    // partition that is already frozen.
    ErrAlreadyLocked = errors.New("schedule is already locked")

    // ErrNotLocked is returned when unlocking a partition that is not
    // locked.
    ErrNotLocked = errors.New("schedule is not locked")

    // ErrUnknownSubdivision is returned for subdivision IDs absent from
    // the registry.
    ErrUnknownSubdivision = errors.New("unknown subdivision")

    // ErrSlotRange is returned when a mutation addresses slots outside
    // the day's time grid.
    ErrSlotRange = errors.New("slot index out of range")

    // ErrInvalidDate is returned when a session date is not YYYY-MM-DD.
    ErrInvalidDate = errors.New("invalid schedule date")

    // ErrInitTimeout is returned when session initialization does not
    // complete within its deadline.  The session fails fast instead of
    // proceeding with a missing blocked map or document.
    ErrInitTimeout = errors.New("session initialization timed out")

    // ErrSessionNotFound is returned for unknown or expired session IDs.
    ErrSessionNotFound = errors.New("session not found")

    // ErrSessionClosed is returned when operating on a stopped session.
    ErrSessionClosed = errors.New("session closed")
)

// BlockedError rejects a placement that would exceed a resource's
// capacity.  Slots lists exactly the saturated slot indices so the UI
// can mark where the conflict sits.
type BlockedError struct {
    Resource string
    Slots    []int
}

func (e *BlockedError) Error() string {
    return fmt.Sprintf("resource %q is blocked at slots %v", e.Resource, e.Slots)
}
