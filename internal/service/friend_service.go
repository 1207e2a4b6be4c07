package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"friendchat/internal/model"
	"friendchat/internal/repository"
	"friendchat/pkg/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Decisions accepted by Respond, case-insensitively.
const (
	DecisionAccept = "ACCEPT"
	DecisionRefuse = "REFUSE"
)

// FriendService drives the friend-request state machine:
// none -> pending (request), pending -> accepted (accept),
// pending -> none (refuse, by deletion). There is no transition out of
// accepted.
type FriendService struct {
	relationships *repository.RelationshipRepository
	notifications *repository.NotificationRepository
	registry      *ws.Registry
}

// NewFriendService creates a FriendService.
func NewFriendService(
	relationships *repository.RelationshipRepository,
	notifications *repository.NotificationRepository,
	registry *ws.Registry,
) *FriendService {
	return &FriendService{
		relationships: relationships,
		notifications: notifications,
		registry:      registry,
	}
}

// Request creates a PENDING relationship oriented requester -> recipient and
// notifies the recipient. Any existing row for the pair, in either
// orientation and any status, fails with ErrAlreadyRequestedOrFriends.
//
// The returned notification is nil when its write failed: the relationship
// write is the source of truth and a lost notification is logged, not
// fatal.
func (s *FriendService) Request(requesterID, recipientID string) (*model.Relationship, *model.Notification, error) {
	if recipientID == "" || recipientID == requesterID {
		return nil, nil, ErrInvalidRequest
	}

	existing, err := s.relationships.GetByPair(requesterID, recipientID)
	if err != nil {
		return nil, nil, fmt.Errorf("look up relationship: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrAlreadyRequestedOrFriends
	}

	rel, err := s.relationships.CreatePending(requesterID, recipientID)
	if err != nil {
		// A concurrent request for the same pair loses against the unique
		// pair index and reads as the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrAlreadyRequestedOrFriends
		}
		return nil, nil, fmt.Errorf("create friend request: %w", err)
	}

	notification := &model.Notification{
		RecipientID: recipientID,
		ActorID:     requesterID,
		Type:        model.NotificationFriendRequest,
		Content:     fmt.Sprintf("You have received a friend request from user %s.", requesterID),
	}
	if err := s.notifications.Create(notification); err != nil {
		zap.L().Error("friend request notification write failed",
			zap.String("requester_id", requesterID),
			zap.String("recipient_id", recipientID),
			zap.Error(err),
		)
		return rel, nil, nil
	}

	s.pushNotification(notification)

	return rel, notification, nil
}

// Respond settles the friend request behind a FRIEND_REQUEST notification
// addressed to the responder. ACCEPT transitions the relationship to
// ACCEPTED, marks the notification read and notifies the requester. REFUSE
// deletes the relationship and the notification and notifies the requester;
// a later request for the same pair starts over.
//
// Both transitions are conditional on the relationship still being PENDING,
// so the loser of a concurrent respond gets ErrRequestNotFound.
// On ACCEPT the settled relationship is returned; on REFUSE it is nil.
func (s *FriendService) Respond(responderID, notificationID, decision string) (*model.Relationship, error) {
	if notificationID == "" {
		return nil, ErrInvalidRequest
	}

	decision = strings.ToUpper(strings.TrimSpace(decision))
	if decision != DecisionAccept && decision != DecisionRefuse {
		return nil, ErrInvalidDecision
	}

	notification, err := s.notifications.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("look up notification: %w", err)
	}
	if notification.RecipientID != responderID || notification.Type != model.NotificationFriendRequest {
		return nil, ErrNotificationNotFound
	}

	requesterID := notification.ActorID

	rel, err := s.relationships.GetPendingByPair(requesterID, responderID)
	if err != nil {
		return nil, fmt.Errorf("look up friend request: %w", err)
	}
	if rel == nil {
		return nil, ErrRequestNotFound
	}

	if decision == DecisionAccept {
		return s.accept(rel, notification)
	}
	return nil, s.refuse(rel, notification)
}

func (s *FriendService) accept(rel *model.Relationship, notification *model.Notification) (*model.Relationship, error) {
	affected, err := s.relationships.AcceptPending(rel.ID)
	if err != nil {
		return nil, fmt.Errorf("accept friend request: %w", err)
	}
	if affected == 0 {
		return nil, ErrRequestNotFound
	}
	rel.Status = model.RelationshipAccepted

	if err := s.notifications.MarkRead(notification.ID); err != nil {
		zap.L().Error("mark friend request notification read failed",
			zap.String("notification_id", notification.ID),
			zap.Error(err),
		)
	}

	s.notifyRequester(rel.RequesterID, notification.RecipientID,
		model.NotificationFriendAccepted,
		fmt.Sprintf("User %s accepted your friend request.", notification.RecipientID))

	return rel, nil
}

func (s *FriendService) refuse(rel *model.Relationship, notification *model.Notification) error {
	affected, err := s.relationships.DeletePending(rel.ID)
	if err != nil {
		return fmt.Errorf("refuse friend request: %w", err)
	}
	if affected == 0 {
		return ErrRequestNotFound
	}

	if err := s.notifications.Delete(notification.ID); err != nil {
		zap.L().Error("delete friend request notification failed",
			zap.String("notification_id", notification.ID),
			zap.Error(err),
		)
	}

	s.notifyRequester(rel.RequesterID, notification.RecipientID,
		model.NotificationFriendRefused,
		fmt.Sprintf("User %s refused your friend request.", notification.RecipientID))

	return nil
}

// notifyRequester records a follow-up notification for the requester and
// pushes it over their live channel if they have one. Neither step is fatal
// at this point: the relationship transition has already been committed.
func (s *FriendService) notifyRequester(requesterID, responderID, notificationType, content string) {
	notification := &model.Notification{
		RecipientID: requesterID,
		ActorID:     responderID,
		Type:        notificationType,
		Content:     content,
	}
	if err := s.notifications.Create(notification); err != nil {
		zap.L().Error("friend response notification write failed",
			zap.String("requester_id", requesterID),
			zap.String("type", notificationType),
			zap.Error(err),
		)
		return
	}

	s.pushNotification(notification)
}

func (s *FriendService) pushNotification(notification *model.Notification) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":            "notification",
		"notification_id": notification.ID,
		"kind":            notification.Type,
		"actor_id":        notification.ActorID,
		"content":         notification.Content,
		"created_at":      notification.CreatedAt.Unix(),
	})
	if err != nil {
		return
	}

	delivered := s.registry.Push(notification.RecipientID, payload)
	zap.L().Debug("notification push",
		zap.String("recipient_id", notification.RecipientID),
		zap.String("kind", notification.Type),
		zap.Bool("delivered", delivered),
	)
}
