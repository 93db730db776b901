// Package repository contains data access for the external catalogs the
// scheduling core consumes: divisions and their bunks, subdivisions and
// their editor assignments, resource capacity rules, and user accounts
// for login. The catalogs are administered outside this service; the
// repositories here only read them. Sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios.
package repository

import "errors"

// ErrUserNotFound is returned when a login email matches no account.
// Handlers should translate this into a generic 401 response so the
// reply does not reveal whether the email exists.
var ErrUserNotFound = errors.New("user not found")
