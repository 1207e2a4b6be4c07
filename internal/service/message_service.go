package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"friendchat/internal/model"
	"friendchat/internal/repository"
	"friendchat/pkg/ws"

	"go.uber.org/zap"
)

// HistoryMessage is one transcript entry, flagged relative to the caller.
type HistoryMessage struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	RecipientID  string    `json:"recipient_id"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
	SentByCaller bool      `json:"sent_by_caller"`
}

// ConversationSummary is the newest message of one conversation, seen from
// the caller's side.
type ConversationSummary struct {
	MessageID   string    `json:"message_id"`
	OtherUserID string    `json:"other_user_id"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sent_at"`
	Elapsed     string    `json:"elapsed"`
}

// MessageService orchestrates messaging: authorization against the
// relationship store, durable persistence, then best-effort live push.
type MessageService struct {
	messages      *repository.MessageRepository
	relationships *repository.RelationshipRepository
	registry      *ws.Registry
}

// NewMessageService creates a MessageService.
func NewMessageService(
	messages *repository.MessageRepository,
	relationships *repository.RelationshipRepository,
	registry *ws.Registry,
) *MessageService {
	return &MessageService{
		messages:      messages,
		relationships: relationships,
		registry:      registry,
	}
}

// Send persists a message from sender to recipient and attempts delivery
// over the recipient's live channel. Persistence always happens before the
// push attempt, and the push outcome never fails the send: the persisted
// message is the receipt.
func (s *MessageService) Send(senderID, recipientID, body string) (*model.Message, error) {
	if recipientID == "" || strings.TrimSpace(body) == "" {
		return nil, ErrInvalidRequest
	}

	friends, err := s.relationships.AreFriends(senderID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":       "chat",
		"message_id": message.ID,
		"from":       message.SenderID,
		"to":         message.RecipientID,
		"body":       message.Body,
		"sent_at":    message.SentAt.Unix(),
	})
	if err == nil {
		delivered := s.registry.Push(recipientID, payload)
		zap.L().Debug("message push",
			zap.String("message_id", message.ID),
			zap.String("recipient_id", recipientID),
			zap.Bool("delivered", delivered),
		)
	}

	return message, nil
}

// History returns the full transcript between the caller and the other
// user, oldest first, each entry flagged sent_by_caller. Like sending,
// reading a transcript requires an accepted friendship.
func (s *MessageService) History(callerID, otherUserID string) ([]HistoryMessage, error) {
	if otherUserID == "" {
		return nil, ErrInvalidRequest
	}

	friends, err := s.relationships.AreFriends(callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	messages, err := s.messages.History(callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	history := make([]HistoryMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, HistoryMessage{
			ID:           m.ID,
			SenderID:     m.SenderID,
			RecipientID:  m.RecipientID,
			Body:         m.Body,
			SentAt:       m.SentAt,
			SentByCaller: m.SenderID == callerID,
		})
	}

	return history, nil
}

// Latest returns the most recent message between the caller and the other
// user as a summary, or nil when the pair has never exchanged messages.
func (s *MessageService) Latest(callerID, otherUserID string) (*ConversationSummary, error) {
	if otherUserID == "" {
		return nil, ErrInvalidRequest
	}

	friends, err := s.relationships.AreFriends(callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	message, err := s.messages.Latest(callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("load latest message: %w", err)
	}
	if message == nil {
		return nil, nil
	}

	summary := s.summarize(message, callerID, time.Now())
	return &summary, nil
}

// Digest returns one summary per conversation the caller is part of, newest
// first. No friendship check: rows only exist for messages the caller
// already legitimately sent or received.
func (s *MessageService) Digest(callerID string) ([]ConversationSummary, error) {
	messages, err := s.messages.Digest(callerID)
	if err != nil {
		return nil, fmt.Errorf("load digest: %w", err)
	}

	now := time.Now()
	summaries := make([]ConversationSummary, 0, len(messages))
	for _, m := range messages {
		summaries = append(summaries, s.summarize(m, callerID, now))
	}

	return summaries, nil
}

func (s *MessageService) summarize(m *model.Message, callerID string, now time.Time) ConversationSummary {
	otherUserID := m.SenderID
	if otherUserID == callerID {
		otherUserID = m.RecipientID
	}

	return ConversationSummary{
		MessageID:   m.ID,
		OtherUserID: otherUserID,
		Body:        m.Body,
		SentAt:      m.SentAt,
		Elapsed:     Elapsed(m.SentAt, now),
	}
}
