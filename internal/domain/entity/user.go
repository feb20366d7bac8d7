// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record, representing a unique account known to the
// identity layer. Display name and avatar mirror the profile document so that
// token issuance never needs a profile read.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // The user's primary contact email, used as the login identifier.
	Name      string    // Display name mirrored from the profile document.
	AvatarURL string    // Avatar reference mirrored from the profile document.
	Profile   *Profile  // The profile document. Nil when the identity exists without a profile.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the per-user profile document, distinct from the identity record.
// It owns the role and the customer's contact attributes.
type Profile struct {
	UserID    uuid.UUID // Foreign key linking this profile to its User.
	Role      Role      // admin or customer. Defaults to customer at signup.
	FullName  string
	Phone     string
	PhotoURL  string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
