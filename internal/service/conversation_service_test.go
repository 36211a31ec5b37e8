package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ummahhub/ummah-backend/internal/model"
)

func newConvFixture(t *testing.T) (ConversationService, *fakeConvRepo, *fakePostRepo, *recordingPublisher, *recordingNotifier) {
	t.Helper()
	posts := newFakePostRepo()
	convs := newFakeConvRepo()
	profiles := newFakeProfileRepo()
	feed := &recordingPublisher{}
	notifier := &recordingNotifier{}
	svc := NewConversationService(convs, posts, profiles, feed, notifier, zerolog.Nop())
	return svc, convs, posts, feed, notifier
}

func seedPost(t *testing.T, posts *fakePostRepo, sellerUID string) *model.Post {
	t.Helper()
	post := &model.Post{
		SellerUID:   sellerUID,
		Title:       "Bookshelf",
		Description: "Solid wood",
		Currency:    "CAD",
		Status:      model.PostStatusActive,
	}
	require.NoError(t, posts.Create(context.Background(), post, nil))
	return post
}

func TestStartIsIdempotent(t *testing.T) {
	svc, _, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")

	first, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)
	second, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "seller-1", first.SellerUID)
}

func TestStartRecoversFromCreateConflict(t *testing.T) {
	svc, convs, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")

	// A concurrent request already created the conversation, but this
	// request's lookup raced ahead of it and missed.
	winner, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)
	convs.missLookups = 1

	got, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}

func TestStartReportsNotFoundWhenConflictWinnerVanishes(t *testing.T) {
	svc, convs, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")

	// The create conflicts with a concurrent winner, but the follow-up
	// lookup misses too (the winner was deleted in between).
	_, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)
	convs.missLookups = 2

	_, err = svc.Start(context.Background(), post.ID, "buyer-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartRejectsSelfAndMissingPost(t *testing.T) {
	svc, _, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")

	_, err := svc.Start(context.Background(), post.ID, "seller-1")
	assert.Error(t, err)

	_, err = svc.Start(context.Background(), 999, "buyer-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendMessagePublishesAndNotifiesCounterparty(t *testing.T) {
	svc, _, posts, feed, notifier := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")
	cv, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)

	msg, err := svc.SendMessage(context.Background(), cv.ID, "buyer-1", "is this still available?")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	require.Len(t, feed.events, 1)
	assert.Equal(t, "INSERT", feed.events[0].Type)
	assert.Equal(t, cv.ID, feed.events[0].ConversationID)
	assert.Equal(t, msg.ID, feed.events[0].Message.ID)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "seller-1", notifier.calls[0])
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	svc, _, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")
	cv, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), cv.ID, "stranger", "hi")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkReadZeroesUnreadAndIsIdempotent(t *testing.T) {
	svc, _, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")
	cv, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), cv.ID, "seller-1", "yes, still here")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), cv.ID, "seller-1", "want to pick it up?")
	require.NoError(t, err)

	n, err := svc.UnreadCount(context.Background(), cv.ID, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, svc.MarkRead(context.Background(), cv.ID, "buyer-1"))
	n, err = svc.UnreadCount(context.Background(), cv.ID, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// Repeating the bulk update is a no-op.
	require.NoError(t, svc.MarkRead(context.Background(), cv.ID, "buyer-1"))
	n, err = svc.UnreadCount(context.Background(), cv.ID, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestMarkReadDoesNotTouchOwnMessages(t *testing.T) {
	svc, _, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")
	cv, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), cv.ID, "buyer-1", "salaam")
	require.NoError(t, err)

	// The buyer's own outbound message stays unread for the seller
	// until the seller opens the thread.
	n, err := svc.UnreadCount(context.Background(), cv.ID, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, svc.MarkRead(context.Background(), cv.ID, "buyer-1"))
	n, err = svc.UnreadCount(context.Background(), cv.ID, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInboxCarriesUnreadCounts(t *testing.T) {
	svc, _, posts, _, _ := newConvFixture(t)
	post := seedPost(t, posts, "seller-1")
	cv, err := svc.Start(context.Background(), post.ID, "buyer-1")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), cv.ID, "seller-1", "ping")
	require.NoError(t, err)

	entries, err := svc.ListInbox(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, cv.ID, entries[0].Conversation.ID)
	assert.Equal(t, int64(1), entries[0].Unread)

	global, err := svc.GlobalUnreadCount(context.Background(), "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), global)
}
