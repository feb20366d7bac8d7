package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionAuthorize(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		session Session
		req     Requirement
		want    Decision
	}{
		{
			name:    "anonymous denied for any requirement",
			session: Session{State: AuthStateAnonymous},
			req:     RequireAuthenticated(),
			want:    DecisionDeny,
		},
		{
			name:    "anonymous denied for admin requirement",
			session: Session{State: AuthStateAnonymous},
			req:     RequireRole(RoleAdmin),
			want:    DecisionDeny,
		},
		{
			name:    "unknown state is pending, never deny",
			session: Session{State: AuthStateUnknown},
			req:     RequireRole(RoleAdmin),
			want:    DecisionPending,
		},
		{
			name:    "no profile allows plain authentication",
			session: Session{State: AuthStateAuthenticatedNoProfile, UserID: userID},
			req:     RequireAuthenticated(),
			want:    DecisionAllow,
		},
		{
			name:    "no profile leaves role requirements pending",
			session: Session{State: AuthStateAuthenticatedNoProfile, UserID: userID},
			req:     RequireRole(RoleAdmin),
			want:    DecisionPending,
		},
		{
			name:    "customer allowed on customer requirement",
			session: Session{State: AuthStateAuthenticatedWithProfile, UserID: userID, Role: RoleCustomer},
			req:     RequireRole(RoleCustomer),
			want:    DecisionAllow,
		},
		{
			name:    "customer denied on admin requirement once role is known",
			session: Session{State: AuthStateAuthenticatedWithProfile, UserID: userID, Role: RoleCustomer},
			req:     RequireRole(RoleAdmin),
			want:    DecisionDeny,
		},
		{
			name:    "admin allowed on admin requirement",
			session: Session{State: AuthStateAuthenticatedWithProfile, UserID: userID, Role: RoleAdmin},
			req:     RequireRole(RoleAdmin),
			want:    DecisionAllow,
		},
		{
			name:    "profile loaded allows plain authentication",
			session: Session{State: AuthStateAuthenticatedWithProfile, UserID: userID, Role: RoleCustomer},
			req:     RequireAuthenticated(),
			want:    DecisionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Authorize(tt.req))
		})
	}
}

func TestAuthStateString(t *testing.T) {
	assert.Equal(t, "anonymous", AuthStateAnonymous.String())
	assert.Equal(t, "authenticated-no-profile", AuthStateAuthenticatedNoProfile.String())
	assert.Equal(t, "authenticated-with-profile", AuthStateAuthenticatedWithProfile.String())
	assert.Equal(t, "unknown", AuthStateUnknown.String())
}
