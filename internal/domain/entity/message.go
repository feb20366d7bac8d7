// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus is the read-state flag of a contact message.
type MessageStatus string

const (
	MessageStatusNew  MessageStatus = "new"
	MessageStatusRead MessageStatus = "read"
)

// String returns the string representation of the MessageStatus.
func (s MessageStatus) String() string {
	return string(s)
}

// Message is a contact-form submission, read by admin views only.
type Message struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone,omitempty"`
	ServiceInterest string        `json:"serviceInterest"` // e.g. "Solar Installation", "CCTV".
	Body            string        `json:"body"`
	Status          MessageStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}
