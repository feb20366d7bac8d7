package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageModel mirrors the 'contact_messages' table.
type MessageModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	Phone           string    `gorm:"type:varchar(30)"`
	ServiceInterest string    `gorm:"type:varchar(100)"`
	Body            string    `gorm:"type:text;not null"`
	Status          string    `gorm:"type:varchar(20);not null;default:new"`
	CreatedAt       time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "contact_messages"
}

// BeforeCreate assigns an ID when the caller did not.
func (m *MessageModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
