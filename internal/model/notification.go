package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types emitted by the friend-request state machine.
const (
	NotificationFriendRequest  = "FRIEND_REQUEST"
	NotificationFriendAccepted = "FRIEND_ACCEPTED"
	NotificationFriendRefused  = "FRIEND_REFUSED"
)

// Notification read statuses.
const (
	NotificationUnread = "UNREAD"
	NotificationRead   = "READ"
)

// Notification is an event addressed to one recipient. ActorID holds the
// identity the event is about as a structured column — for FRIEND_REQUEST it
// is the requester, which the respond flow needs to recover reliably.
// Content stays display-only.
type Notification struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	RecipientID string    `gorm:"type:char(36);not null;index" json:"recipient_id"`
	ActorID     string    `gorm:"type:char(36);not null" json:"actor_id"`
	Type        string    `gorm:"type:varchar(32);not null" json:"type"`
	Content     string    `gorm:"type:text" json:"content"`
	Status      string    `gorm:"type:varchar(16);not null;default:'UNREAD'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notification" }

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Status == "" {
		n.Status = NotificationUnread
	}
	return nil
}
