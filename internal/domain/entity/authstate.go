// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// AuthState is the explicit session state machine that replaces a pair of
// independently-nullable identity/profile fields. Every request resolves to
// exactly one state before any gating decision is made.
type AuthState int

const (
	// AuthStateUnknown means identity resolution has not completed: the token
	// was present but the profile lookup failed for a transient reason. Gated
	// views must treat this as "not yet", never as "absent".
	AuthStateUnknown AuthState = iota
	// AuthStateAnonymous means no valid identity was presented.
	AuthStateAnonymous
	// AuthStateAuthenticatedNoProfile means the identity is valid but no profile
	// document exists for it. The role is unknowable in this state.
	AuthStateAuthenticatedNoProfile
	// AuthStateAuthenticatedWithProfile means both identity and profile are
	// resolved; the role is known.
	AuthStateAuthenticatedWithProfile
)

// String returns a human-readable state name.
func (s AuthState) String() string {
	switch s {
	case AuthStateAnonymous:
		return "anonymous"
	case AuthStateAuthenticatedNoProfile:
		return "authenticated-no-profile"
	case AuthStateAuthenticatedWithProfile:
		return "authenticated-with-profile"
	default:
		return "unknown"
	}
}

// Decision is the tri-state outcome of an authorization check.
type Decision int

const (
	// DecisionPending means the requirement cannot be evaluated yet because the
	// role is unknown. Callers must not redirect or deny on Pending.
	DecisionPending Decision = iota
	// DecisionAllow grants access.
	DecisionAllow
	// DecisionDeny refuses access with full knowledge of the caller's role.
	DecisionDeny
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	default:
		return "pending"
	}
}

// Requirement describes what a gated view demands of the session.
type Requirement struct {
	// Role is the required profile role. Empty means any authenticated identity.
	Role Role
}

// RequireAuthenticated demands any established identity.
func RequireAuthenticated() Requirement {
	return Requirement{}
}

// RequireRole demands an identity whose profile carries the given role.
func RequireRole(role Role) Requirement {
	return Requirement{Role: role}
}

// Session is the resolved authentication state of a single request.
type Session struct {
	State  AuthState
	UserID uuid.UUID // Zero unless the state is one of the authenticated states.
	Role   Role      // Set only in AuthStateAuthenticatedWithProfile.
}

// Authorize evaluates a requirement against the session state. Deny is returned
// only when the role is known and insufficient; every unresolved case is
// Pending so that callers never redirect prematurely.
func (s Session) Authorize(req Requirement) Decision {
	switch s.State {
	case AuthStateAnonymous:
		return DecisionDeny
	case AuthStateUnknown:
		return DecisionPending
	case AuthStateAuthenticatedNoProfile:
		if req.Role == "" {
			return DecisionAllow
		}
		// Role unknowable until a profile document exists.
		return DecisionPending
	case AuthStateAuthenticatedWithProfile:
		if req.Role == "" || s.Role == req.Role {
			return DecisionAllow
		}

		return DecisionDeny
	default:
		return DecisionPending
	}
}
