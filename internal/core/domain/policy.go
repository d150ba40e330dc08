package domain

import "fmt"

// PolicyKind enumerates the route-level authorization requirements.
type PolicyKind int

const (
	PolicyPublic PolicyKind = iota
	PolicyAuthenticated
	PolicyRole
)

// RoutePolicy is the static requirement bound to an operation before its
// handler runs. The zero value is Public.
type RoutePolicy struct {
	Kind PolicyKind
	Role Role
}

// Public allows every caller, anonymous or not.
func Public() RoutePolicy {
	return RoutePolicy{Kind: PolicyPublic}
}

// AuthenticatedOnly allows any resolved identity.
func AuthenticatedOnly() RoutePolicy {
	return RoutePolicy{Kind: PolicyAuthenticated}
}

// RequiresRole allows only identities whose role equals r.
func RequiresRole(r Role) RoutePolicy {
	return RoutePolicy{Kind: PolicyRole, Role: r}
}

func (p RoutePolicy) String() string {
	switch p.Kind {
	case PolicyPublic:
		return "public"
	case PolicyAuthenticated:
		return "authenticated"
	case PolicyRole:
		return fmt.Sprintf("role:%s", p.Role)
	default:
		return "unknown"
	}
}

// Authorize decides whether the caller may invoke an operation guarded by p.
// A nil id means the request is anonymous. It never inspects request bodies.
func Authorize(id *Identity, p RoutePolicy) error {
	switch p.Kind {
	case PolicyPublic:
		return nil
	case PolicyAuthenticated:
		if id == nil {
			return ErrUnauthenticated
		}
		return nil
	case PolicyRole:
		if id == nil {
			return ErrUnauthenticated
		}
		if id.Role != p.Role {
			return ErrInsufficientRole
		}
		return nil
	default:
		// An unrecognised policy must never open a route.
		return ErrInsufficientRole
	}
}
