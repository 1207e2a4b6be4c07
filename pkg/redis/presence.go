package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PresenceData is the cached online status for one user.
type PresenceData struct {
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"` // online/offline
	LastSeen time.Time `json:"last_seen"`
}

const (
	presenceKeyPrefix = "chat:presence:user:"
	// TTL covers a few missed heartbeats before a crashed connection reads
	// as offline.
	presenceTTL = 2 * time.Minute
)

// PresenceStore tracks which users have a live connection. Every operation
// is best-effort: with redis down or never initialized the setters just log
// and the connection lifecycle is unaffected.
type PresenceStore struct{}

// NewPresenceStore creates a PresenceStore over the shared client.
func NewPresenceStore() *PresenceStore {
	return &PresenceStore{}
}

// SetOnline marks the user online.
func (s *PresenceStore) SetOnline(userID string) {
	s.set(userID, "online")
}

// SetOffline marks the user offline.
func (s *PresenceStore) SetOffline(userID string) {
	s.set(userID, "offline")
}

func (s *PresenceStore) set(userID, status string) {
	if client == nil {
		return
	}

	data, err := json.Marshal(PresenceData{
		UserID:   userID,
		Status:   status,
		LastSeen: time.Now(),
	})
	if err != nil {
		return
	}

	key := presenceKeyPrefix + userID
	if err := client.Set(ctx, key, data, presenceTTL).Err(); err != nil {
		zap.L().Warn("set presence failed",
			zap.String("user_id", userID),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}

// Get returns the cached presence for a user. An expired or missing key
// reads as offline, as does a disabled redis.
func (s *PresenceStore) Get(userID string) (*PresenceData, error) {
	if client == nil {
		return &PresenceData{UserID: userID, Status: "offline"}, nil
	}

	data, err := client.Get(ctx, presenceKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return &PresenceData{UserID: userID, Status: "offline"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get presence: %w", err)
	}

	var presence PresenceData
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("decode presence: %w", err)
	}

	return &presence, nil
}
