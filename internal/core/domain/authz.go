package domain

// Scope is the subset of records a list query may return for a role.
type Scope int

const (
	// ScopeOwn restricts a listing to records owned by the actor.
	ScopeOwn Scope = iota
	// ScopeAll places no ownership restriction on a listing.
	ScopeAll
)

// The functions below are the authorization engine: pure decisions over
// (role, actor identity, resource ownership) with no external calls. Services
// translate a false result into ErrUnauthorized; a denial never has side
// effects.

// ListBookingsScope returns the visibility scope for booking listings.
func ListBookingsScope(role Role) Scope {
	if role == RoleManager || role == RoleAdmin {
		return ScopeAll
	}
	return ScopeOwn
}

// CanViewBooking reports whether the actor may read a single booking.
func CanViewBooking(role Role, actorID, ownerID string) bool {
	if role == RoleManager || role == RoleAdmin {
		return true
	}
	return actorID == ownerID
}

// CanCreateBooking reports whether the actor may create bookings. Only plain
// users book services for themselves; staff roles triage, they do not book.
func CanCreateBooking(role Role) bool {
	return role == RoleUser
}

// CanEditBooking reports whether the actor may change a booking's fields,
// status excluded (see CanChangeStatus).
func CanEditBooking(role Role, actorID, ownerID string) bool {
	if role == RoleManager || role == RoleAdmin {
		return true
	}
	return actorID == ownerID
}

// CanChangeStatus reports whether the actor may drive the status machine.
// A plain user never may, not even on their own booking.
func CanChangeStatus(role Role) bool {
	return role == RoleManager || role == RoleAdmin
}

// CanDeleteBooking reports whether the actor may delete a booking. Owners and
// admins may; managers may not.
func CanDeleteBooking(role Role, actorID, ownerID string) bool {
	if role == RoleAdmin {
		return true
	}
	return actorID == ownerID
}

// CanListUsers reports whether the actor may list accounts.
func CanListUsers(role Role) bool {
	return role == RoleAdmin || role == RoleManager
}

// CanManageUsers reports whether the actor may create manager accounts or
// delete accounts.
func CanManageUsers(role Role) bool {
	return role == RoleAdmin
}

// CanUpdateUser reports whether the actor may edit an account's name or
// email. Changing the role is gated separately by CanChangeRole.
func CanUpdateUser(role Role) bool {
	return role == RoleAdmin || role == RoleManager
}

// CanChangeRole reports whether the actor may change an account's role.
func CanChangeRole(role Role) bool {
	return role == RoleAdmin
}

// CanDeleteUser reports whether the actor may delete the target account.
// Admin accounts can never be deleted, regardless of who asks.
func CanDeleteUser(actorRole, targetRole Role) bool {
	if targetRole == RoleAdmin {
		return false
	}
	return actorRole == RoleAdmin
}
