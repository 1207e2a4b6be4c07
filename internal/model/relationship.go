package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relationship statuses. Refusal has no resting state: a refused request is
// deleted, so a fresh request can restart the cycle.
const (
	RelationshipPending  = "PENDING"
	RelationshipAccepted = "ACCEPTED"
)

// Relationship is the friendship state for one unordered user pair.
// RequesterID/RecipientID keep the orientation of the original request;
// PairKey is the canonical unordered key, and its unique index guarantees at
// most one row per pair regardless of orientation.
type Relationship struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	RequesterID string    `gorm:"type:char(36);not null;index" json:"requester_id"`
	RecipientID string    `gorm:"type:char(36);not null;index" json:"recipient_id"`
	PairKey     string    `gorm:"type:varchar(73);not null;uniqueIndex" json:"-"`
	Status      string    `gorm:"type:varchar(16);not null;default:'PENDING'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Relationship) TableName() string { return "relationship" }

func (r *Relationship) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RelationshipPending
	}
	r.PairKey = PairKey(r.RequesterID, r.RecipientID)
	return nil
}

// PairKey builds the canonical key for an unordered user pair:
// min(a,b) + ":" + max(a,b).
func PairKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}
