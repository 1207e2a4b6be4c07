package service

import (
	"testing"

	"friendchat/internal/model"
	"friendchat/internal/repository"
	"friendchat/pkg/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
	carol = "33333333-3333-3333-3333-333333333333"
)

// testEnv wires the services against a fresh in-memory database and an empty
// connection registry.
type testEnv struct {
	db            *gorm.DB
	relationships *repository.RelationshipRepository
	notifications *repository.NotificationRepository
	messages      *repository.MessageRepository
	registry      *ws.Registry
	friends       *FriendService
	messaging     *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Relationship{}, &model.Notification{}, &model.Message{}))

	env := &testEnv{
		db:            db,
		relationships: repository.NewRelationshipRepository(db),
		notifications: repository.NewNotificationRepository(db),
		messages:      repository.NewMessageRepository(db),
		registry:      ws.NewRegistry(),
	}
	env.friends = NewFriendService(env.relationships, env.notifications, env.registry)
	env.messaging = NewMessageService(env.messages, env.relationships, env.registry)
	return env
}

// befriend runs the full request/accept flow so messaging tests start from
// an accepted friendship.
func (e *testEnv) befriend(t *testing.T, requesterID, recipientID string) {
	t.Helper()

	_, notification, err := e.friends.Request(requesterID, recipientID)
	require.NoError(t, err)
	require.NotNil(t, notification)

	_, err = e.friends.Respond(recipientID, notification.ID, DecisionAccept)
	require.NoError(t, err)
}
