package domain

// Owned is implemented by resources that belong to exactly one user.
type Owned interface {
	OwnerID() int64
}

// AccessScope states whether an operation admits an administrator bypass.
type AccessScope int

const (
	// ScopeOwner is used by ordinary user routes: only the owner passes,
	// whatever the caller's role.
	ScopeOwner AccessScope = iota
	// ScopeAdmin is used by routes explicitly marked admin-scoped.
	ScopeAdmin
)

// AssertOwnership checks that id may act on resource under scope. It must be
// called on the value that the subsequent mutation will act on.
func AssertOwnership(id Identity, resource Owned, scope AccessScope) error {
	if scope == ScopeAdmin && id.IsAdmin() {
		return nil
	}
	if resource.OwnerID() != id.UserID {
		return ErrNotOwner
	}
	return nil
}
