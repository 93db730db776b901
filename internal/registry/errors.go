package registry

import "errors"

// Load-time validation errors.  The registry is built once from the
// catalog tables at startup; any of these means the catalog data is
// inconsistent and the process should not come up half-configured.
var (
    // ErrUnknownDivision is returned when a subdivision references a
    // division name that does not exist in the division catalog.
    ErrUnknownDivision = errors.New("subdivision references unknown division")

    // ErrDivisionOverlap is returned when two subdivisions claim the same
    // division.  Divisions partition the camp; every division has at most
    // one owning subdivision.
    ErrDivisionOverlap = errors.New("division assigned to more than one subdivision")

    // ErrDuplicateBunk is returned when the same bunk appears in two
    // divisions.  Bunks are atomic scheduling units and belong to exactly
    // one division.
    ErrDuplicateBunk = errors.New("bunk assigned to more than one division")
)
