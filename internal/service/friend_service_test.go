package service

import (
	"testing"

	"friendchat/internal/model"
	"friendchat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCreatesPendingAndNotifiesRecipient(t *testing.T) {
	env := newTestEnv(t)

	rel, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	require.NotNil(t, rel)
	assert.Equal(t, alice, rel.RequesterID)
	assert.Equal(t, bob, rel.RecipientID)
	assert.Equal(t, model.RelationshipPending, rel.Status)

	require.NotNil(t, notification)
	assert.Equal(t, bob, notification.RecipientID)
	assert.Equal(t, alice, notification.ActorID, "requester must be recoverable from the notification itself")
	assert.Equal(t, model.NotificationFriendRequest, notification.Type)
	assert.Equal(t, model.NotificationUnread, notification.Status)
	assert.Contains(t, notification.Content, alice)
}

func TestRequestRejectsSelfAndBlankRecipient(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.friends.Request(alice, alice)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, _, err = env.friends.Request(alice, "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRequestConflictsWithExistingPair(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	_, _, err = env.friends.Request(alice, bob)
	assert.ErrorIs(t, err, ErrAlreadyRequestedOrFriends)

	// A counter-request from the other side is the same pair.
	_, _, err = env.friends.Request(bob, alice)
	assert.ErrorIs(t, err, ErrAlreadyRequestedOrFriends)
}

func TestRequestConflictsAfterAcceptance(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	_, _, err := env.friends.Request(alice, bob)
	assert.ErrorIs(t, err, ErrAlreadyRequestedOrFriends)
}

func TestRespondAcceptEstablishesFriendship(t *testing.T) {
	env := newTestEnv(t)

	_, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	rel, err := env.friends.Respond(bob, notification.ID, DecisionAccept)
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, model.RelationshipAccepted, rel.Status)

	friends, err := env.relationships.AreFriends(alice, bob)
	require.NoError(t, err)
	assert.True(t, friends)

	// The request notification is kept but marked read.
	got, err := env.notifications.GetByID(notification.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationRead, got.Status)

	// The requester learns the outcome through a notification of their own.
	forRequester, err := env.notifications.ListByRecipient(alice)
	require.NoError(t, err)
	require.Len(t, forRequester, 1)
	assert.Equal(t, model.NotificationFriendAccepted, forRequester[0].Type)
	assert.Equal(t, bob, forRequester[0].ActorID)
}

func TestRespondRefuseDeletesRequestAndNotification(t *testing.T) {
	env := newTestEnv(t)

	_, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	rel, err := env.friends.Respond(bob, notification.ID, DecisionRefuse)
	require.NoError(t, err)
	assert.Nil(t, rel)

	got, err := env.relationships.GetByPair(alice, bob)
	require.NoError(t, err)
	assert.Nil(t, got, "refusal must delete the relationship row")

	_, err = env.notifications.GetByID(notification.ID)
	assert.ErrorIs(t, err, repository.ErrNotificationNotFound)

	forRequester, err := env.notifications.ListByRecipient(alice)
	require.NoError(t, err)
	require.Len(t, forRequester, 1)
	assert.Equal(t, model.NotificationFriendRefused, forRequester[0].Type)

	// The pair can start over after a refusal.
	_, _, err = env.friends.Request(alice, bob)
	assert.NoError(t, err)
}

func TestRespondAcceptsDecisionCaseInsensitively(t *testing.T) {
	env := newTestEnv(t)

	_, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	rel, err := env.friends.Respond(bob, notification.ID, " accept ")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, model.RelationshipAccepted, rel.Status)
}

func TestRespondRejectsUnknownDecision(t *testing.T) {
	env := newTestEnv(t)

	_, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	_, err = env.friends.Respond(bob, notification.ID, "MAYBE")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestRespondRequiresOwnershipOfTheNotification(t *testing.T) {
	env := newTestEnv(t)

	_, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	// Carol holds a valid notification id but is not its recipient.
	_, err = env.friends.Respond(carol, notification.ID, DecisionAccept)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = env.friends.Respond(bob, "missing-id", DecisionAccept)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestRespondOnlySettlesFriendRequestNotifications(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	// The acceptance notification addressed to alice is not respondable.
	forRequester, err := env.notifications.ListByRecipient(alice)
	require.NoError(t, err)
	require.Len(t, forRequester, 1)

	_, err = env.friends.Respond(alice, forRequester[0].ID, DecisionAccept)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestRespondTwiceReportsRequestGone(t *testing.T) {
	env := newTestEnv(t)

	_, notification, err := env.friends.Request(alice, bob)
	require.NoError(t, err)

	_, err = env.friends.Respond(bob, notification.ID, DecisionAccept)
	require.NoError(t, err)

	// The notification still exists (read), but the pending request it
	// pointed at has been settled.
	_, err = env.friends.Respond(bob, notification.ID, DecisionRefuse)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
