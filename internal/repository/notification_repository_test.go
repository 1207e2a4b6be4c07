package repository

import (
	"testing"

	"friendchat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	n := &model.Notification{
		RecipientID: bob,
		ActorID:     alice,
		Type:        model.NotificationFriendRequest,
		Content:     "You have received a friend request from user " + alice + ".",
	}
	require.NoError(t, repo.Create(n))
	require.NotEmpty(t, n.ID)
	assert.Equal(t, model.NotificationUnread, n.Status)

	got, err := repo.GetByID(n.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got.ActorID)

	require.NoError(t, repo.MarkRead(n.ID))
	got, err = repo.GetByID(n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationRead, got.Status)

	require.NoError(t, repo.Delete(n.ID))
	_, err = repo.GetByID(n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestGetByIDDistinguishesMissingRows(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	_, err := repo.GetByID("no-such-id")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestListByRecipientIsScopedAndOrdered(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	for i, id := range []string{"n-1", "n-2", "n-3"} {
		recipient := bob
		if i == 2 {
			recipient = carol
		}
		require.NoError(t, repo.Create(&model.Notification{
			ID:          id,
			RecipientID: recipient,
			ActorID:     alice,
			Type:        model.NotificationFriendRequest,
		}))
	}

	list, err := repo.ListByRecipient(bob)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n-1", list[0].ID)
	assert.Equal(t, "n-2", list[1].ID)

	list, err = repo.ListByRecipient(alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}
