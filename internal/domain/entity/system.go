// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemType is the closed set of installed asset categories.
type SystemType string

const (
	SystemTypeInverter    SystemType = "Inverter"
	SystemTypeSolarPanels SystemType = "Solar Panels"
	SystemTypeCCTV        SystemType = "CCTV"
	SystemTypeStarlink    SystemType = "Starlink"
	SystemTypeOther       SystemType = "Other"
)

// String returns the string representation of the SystemType.
func (t SystemType) String() string {
	return string(t)
}

// IsValid checks if the SystemType is a valid value.
func (t SystemType) IsValid() bool {
	switch t {
	case SystemTypeInverter, SystemTypeSolarPanels, SystemTypeCCTV, SystemTypeStarlink, SystemTypeOther:
		return true
	default:
		return false
	}
}

// SystemStatus is the closed set of operational states.
type SystemStatus string

const (
	SystemStatusActive      SystemStatus = "Active"
	SystemStatusMaintenance SystemStatus = "Maintenance"
	SystemStatusOffline     SystemStatus = "Offline"
)

// String returns the string representation of the SystemStatus.
func (s SystemStatus) String() string {
	return string(s)
}

// IsValid checks if the SystemStatus is a valid value.
func (s SystemStatus) IsValid() bool {
	switch s {
	case SystemStatusActive, SystemStatusMaintenance, SystemStatusOffline:
		return true
	default:
		return false
	}
}

// UnknownSiteLabel is rendered when a System references a site that no longer
// exists. Site deletion does not cascade, so dangling references are expected.
const UnknownSiteLabel = "Unknown Location"

// System is an installed asset owned by exactly one user. SiteID references a
// Site by identifier without database-level integrity enforcement; callers must
// tolerate dangling references.
type System struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"ownerId"`
	Name        string       `json:"name"`
	Type        SystemType   `json:"type"`
	Status      SystemStatus `json:"status"`
	SiteID      uuid.UUID    `json:"siteId"`
	SiteName    string       `json:"siteName,omitempty"` // Resolved for detail views; UnknownSiteLabel when dangling.
	Notes       string       `json:"notes,omitempty"`
	InstalledAt *time.Time   `json:"installedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}
