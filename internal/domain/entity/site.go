// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SiteType is the closed set of physical site categories.
type SiteType string

const (
	SiteTypeResidential SiteType = "Residential"
	SiteTypeCommercial  SiteType = "Commercial"
	SiteTypeIndustrial  SiteType = "Industrial"
	SiteTypeFarm        SiteType = "Farm"
)

// String returns the string representation of the SiteType.
func (t SiteType) String() string {
	return string(t)
}

// IsValid checks if the SiteType is a valid value.
func (t SiteType) IsValid() bool {
	switch t {
	case SiteTypeResidential, SiteTypeCommercial, SiteTypeIndustrial, SiteTypeFarm:
		return true
	default:
		return false
	}
}

// Site is a named physical location owned by exactly one user, e.g. "Home" or
// "The Farm". Installed systems reference a site by ID.
type Site struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Type        SiteType  `json:"type"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	AccessNotes string    `json:"accessNotes,omitempty"` // e.g. "Gate code 1234".
	IsPrimary   bool      `json:"isPrimary,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
