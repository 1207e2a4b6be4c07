package repository

import (
	"errors"

	"friendchat/internal/model"

	"gorm.io/gorm"
)

// MessageRepository persists messages and answers conversation-scoped
// queries. It never checks friendship; the messaging service authorizes
// before writing.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a MessageRepository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a message.
func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// History returns the full transcript between two users, oldest first.
// Ties on sent_at fall back to id so the order is deterministic.
func (r *MessageRepository) History(a, b string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		a, b, b, a,
	).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// Latest returns the most recent message between two users, or nil when the
// pair has no messages.
func (r *MessageRepository) Latest(a, b string) (*model.Message, error) {
	var message model.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		a, b, b, a,
	).
		Order("sent_at DESC, id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// Digest returns, for every distinct unordered pair involving the user, the
// single most recent message, ordered newest first. Rows are scanned newest
// first (id breaks sent_at ties) and deduplicated on the canonical pair key,
// so the first row seen per pair is its winner and the result order falls
// out of the scan order.
func (r *MessageRepository) Digest(userID string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("sent_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var latest []*model.Message
	for _, msg := range messages {
		key := model.PairKey(msg.SenderID, msg.RecipientID)
		if seen[key] {
			continue
		}
		seen[key] = true
		latest = append(latest, msg)
	}

	return latest, nil
}
