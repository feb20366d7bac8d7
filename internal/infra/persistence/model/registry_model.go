package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteModel mirrors the 'sites' table. Each site belongs to exactly one owner.
type SiteModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Type        string    `gorm:"type:varchar(30);not null"`
	Address     string    `gorm:"type:text"`
	City        string    `gorm:"type:varchar(100)"`
	AccessNotes string    `gorm:"type:text"`
	IsPrimary   bool
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SiteModel) TableName() string {
	return "sites"
}

// BeforeCreate assigns an ID when the caller did not.
func (m *SiteModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// SystemModel mirrors the 'systems' table. SiteID is a plain column, not a
// foreign key; site deletion leaves it dangling on purpose.
type SystemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Type        string    `gorm:"type:varchar(30);not null"`
	Status      string    `gorm:"type:varchar(30);not null"`
	SiteID      uuid.UUID `gorm:"type:uuid"`
	Notes       string    `gorm:"type:text"`
	InstalledAt *time.Time
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SystemModel) TableName() string {
	return "systems"
}

// BeforeCreate assigns an ID when the caller did not.
func (m *SystemModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
