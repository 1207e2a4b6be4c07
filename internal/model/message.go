package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageSent is the only delivery status in scope; there is no read-receipt
// state on messages.
const MessageSent = "SENT"

// Message is immutable once created. A conversation is not stored: it is the
// unordered (sender, recipient) pair derived from the message rows.
type Message struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	SenderID    string    `gorm:"type:char(36);not null;index" json:"sender_id"`
	RecipientID string    `gorm:"type:char(36);not null;index" json:"recipient_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Status      string    `gorm:"type:varchar(16);not null;default:'SENT'" json:"status"`
	SentAt      time.Time `gorm:"not null;index" json:"sent_at"`
}

func (Message) TableName() string { return "message" }

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	if m.Status == "" {
		m.Status = MessageSent
	}
	return nil
}
