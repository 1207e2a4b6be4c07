package service

import (
	"testing"
	"time"

	"friendchat/internal/model"
	"friendchat/pkg/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.messaging.Send(alice, bob, "hello")
	assert.ErrorIs(t, err, ErrNotFriends)

	// The rejected send must leave no trace.
	history, err := env.messages.History(alice, bob)
	require.NoError(t, err)
	assert.Empty(t, history)

	// A pending request is not enough.
	_, _, err = env.friends.Request(alice, bob)
	require.NoError(t, err)
	_, err = env.messaging.Send(alice, bob, "hello")
	assert.ErrorIs(t, err, ErrNotFriends)
}

func TestSendPersistsBetweenFriends(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	message, err := env.messaging.Send(alice, bob, "hello")
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, model.MessageSent, message.Status)
	assert.False(t, message.SentAt.IsZero())

	// Direction does not matter once the pair is friends.
	_, err = env.messaging.Send(bob, alice, "hi back")
	require.NoError(t, err)

	history, err := env.messages.History(alice, bob)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSendRejectsBlankInput(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	_, err := env.messaging.Send(alice, bob, "   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.messaging.Send(alice, "", "hello")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSendSucceedsWithRecipientOffline(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	// Nobody is attached to the registry, so delivery cannot happen; the
	// send must still persist and succeed.
	message, err := env.messaging.Send(alice, bob, "are you there")
	require.NoError(t, err)

	latest, err := env.messages.Latest(alice, bob)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, message.ID, latest.ID)
}

func TestSendPushesToConnectedRecipient(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	client := &ws.Client{UserID: bob, Send: make(chan []byte, 8)}
	env.registry.Attach(bob, client)

	_, err := env.messaging.Send(alice, bob, "ping")
	require.NoError(t, err)

	select {
	case payload := <-client.Send:
		assert.Contains(t, string(payload), `"type":"chat"`)
		assert.Contains(t, string(payload), `"body":"ping"`)
	default:
		t.Fatal("expected a payload on the recipient's send queue")
	}
}

func TestHistoryFlagsCallerMessages(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	_, err := env.messaging.Send(alice, bob, "from alice")
	require.NoError(t, err)
	_, err = env.messaging.Send(bob, alice, "from bob")
	require.NoError(t, err)

	history, err := env.messaging.History(alice, bob)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].SentByCaller)
	assert.False(t, history[1].SentByCaller)

	// The same transcript from bob's side flips the flags.
	history, err = env.messaging.History(bob, alice)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[0].SentByCaller)
	assert.True(t, history[1].SentByCaller)
}

func TestHistoryAndLatestAreFriendshipGated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.messaging.History(alice, bob)
	assert.ErrorIs(t, err, ErrNotFriends)

	_, err = env.messaging.Latest(alice, bob)
	assert.ErrorIs(t, err, ErrNotFriends)
}

func TestLatestReturnsNilForEmptyConversation(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)

	summary, err := env.messaging.Latest(alice, bob)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestDigestSummarizesEachConversationOnce(t *testing.T) {
	env := newTestEnv(t)
	env.befriend(t, alice, bob)
	env.befriend(t, alice, carol)

	_, err := env.messaging.Send(alice, bob, "first to bob")
	require.NoError(t, err)
	_, err = env.messaging.Send(bob, alice, "bob's reply")
	require.NoError(t, err)
	_, err = env.messaging.Send(carol, alice, "from carol")
	require.NoError(t, err)

	summaries, err := env.messaging.Digest(alice)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Newest conversation first, and each summary names the other party.
	assert.Equal(t, carol, summaries[0].OtherUserID)
	assert.Equal(t, "from carol", summaries[0].Body)
	assert.Equal(t, bob, summaries[1].OtherUserID)
	assert.Equal(t, "bob's reply", summaries[1].Body)

	for _, s := range summaries {
		assert.NotEmpty(t, s.Elapsed)
	}
}

func TestDigestIsEmptyWithoutMessages(t *testing.T) {
	env := newTestEnv(t)

	summaries, err := env.messaging.Digest(alice)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSummarizeResolvesOtherParty(t *testing.T) {
	env := newTestEnv(t)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &model.Message{ID: "m1", SenderID: alice, RecipientID: bob, Body: "x", SentAt: at}

	summary := env.messaging.summarize(msg, alice, at.Add(30*time.Second))
	assert.Equal(t, bob, summary.OtherUserID)
	assert.Equal(t, "30 seconds", summary.Elapsed)

	summary = env.messaging.summarize(msg, bob, at.Add(30*time.Second))
	assert.Equal(t, alice, summary.OtherUserID)
}
