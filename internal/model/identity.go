package model

// Role names the authority level carried in a scheduler's access token.
// ADMIN corresponds to camp-wide staff (owners/directors) who may edit and
// lock any subdivision; SCHEDULER is a standard editor restricted to the
// subdivisions assigned to them in the registry.
type Role string

const (
    RoleAdmin     Role = "ADMIN"     // camp-wide authority over every subdivision
    RoleScheduler Role = "SCHEDULER" // restricted to assigned subdivisions
)

// Identity describes the acting user for an operation.  It is extracted
// from the JWT by the HTTP layer and passed explicitly into every core
// call; the core never consults ambient authentication state.
type Identity struct {
    UserID uint64 // users.id of the acting editor
    Role   Role   // authority level from the token's role claim
}

// IsAdmin reports whether the identity carries camp-wide authority.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
