package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/push"
	"github.com/ummahhub/ummah-backend/internal/realtime"
	"github.com/ummahhub/ummah-backend/internal/repository"
	"gorm.io/gorm"
)

type ConversationService interface {
	// Start returns the buyer's conversation for the post, creating it
	// on first contact.
	Start(ctx context.Context, postID uint64, buyerUID string) (*model.Conversation, error)
	Get(ctx context.Context, convID uint64, uid string) (*model.Conversation, error)
	ListInbox(ctx context.Context, uid string) ([]InboxEntry, error)
	ListMessages(ctx context.Context, convID uint64, uid string) ([]model.Message, error)
	SendMessage(ctx context.Context, convID uint64, uid, body string) (*model.Message, error)
	MarkRead(ctx context.Context, convID uint64, uid string) error
	UnreadCount(ctx context.Context, convID uint64, uid string) (int64, error)
	GlobalUnreadCount(ctx context.Context, uid string) (int64, error)
}

type InboxEntry struct {
	Conversation model.Conversation `json:"conversation"`
	Unread       int64              `json:"unread"`
}

type conversationService struct {
	convRepo    repository.ConversationRepository
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	feed        realtime.Publisher
	notifier    push.Notifier
	log         zerolog.Logger
}

func NewConversationService(
	convRepo repository.ConversationRepository,
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	feed realtime.Publisher,
	notifier push.Notifier,
	log zerolog.Logger,
) ConversationService {
	return &conversationService{
		convRepo:    convRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		feed:        feed,
		notifier:    notifier,
		log:         log,
	}
}

// Start is lookup-then-create. Uniqueness of (post, buyer) lives in
// the storage layer, so a create that loses the race comes back as a
// duplicate-key error; the losing side re-issues the lookup once and
// returns the winner's row. "Lookup-miss then create-conflict" is a
// normal path, not an exceptional one.
func (s *conversationService) Start(ctx context.Context, postID uint64, buyerUID string) (*model.Conversation, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.SellerUID == buyerUID {
		return nil, errors.New("cannot message yourself")
	}

	cv, err := s.convRepo.FindByPostAndBuyer(ctx, postID, buyerUID)
	if err == nil {
		return cv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cv = &model.Conversation{PostID: postID, SellerUID: post.SellerUID, BuyerUID: buyerUID}
	err = s.convRepo.Create(ctx, cv)
	if err == nil {
		return cv, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		cv, err = s.convRepo.FindByPostAndBuyer(ctx, postID, buyerUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return cv, nil
	}
	return nil, err
}

func (s *conversationService) Get(ctx context.Context, convID uint64, uid string) (*model.Conversation, error) {
	cv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cv.BuyerUID != uid && cv.SellerUID != uid {
		return nil, ErrForbidden
	}
	return cv, nil
}

// ListInbox orders by recency and attaches per-conversation unread
// counts. Counts are advisory badge data; one computed immediately
// after a write may be stale by a round trip.
func (s *conversationService) ListInbox(ctx context.Context, uid string) ([]InboxEntry, error) {
	convs, err := s.convRepo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	entries := make([]InboxEntry, 0, len(convs))
	for _, cv := range convs {
		n, err := s.convRepo.CountUnread(ctx, cv.ID, uid)
		if err != nil {
			s.log.Error().Err(err).Uint64("conversation_id", cv.ID).Msg("unread count failed")
			n = 0
		}
		entries = append(entries, InboxEntry{Conversation: cv, Unread: n})
	}
	return entries, nil
}

func (s *conversationService) ListMessages(ctx context.Context, convID uint64, uid string) ([]model.Message, error) {
	if _, err := s.Get(ctx, convID, uid); err != nil {
		return nil, err
	}
	return s.convRepo.ListMessages(ctx, convID)
}

func (s *conversationService) SendMessage(ctx context.Context, convID uint64, uid, body string) (*model.Message, error) {
	if body == "" {
		return nil, errors.New("body is required")
	}
	cv, err := s.Get(ctx, convID, uid)
	if err != nil {
		return nil, err
	}
	msg := &model.Message{
		ConversationID: convID,
		SenderUID:      uid,
		Body:           body,
	}
	if err := s.convRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.feed.Publish(realtime.Event{
		Type:           "INSERT",
		ConversationID: convID,
		Message:        *msg,
	})

	recipient := cv.SellerUID
	if uid == cv.SellerUID {
		recipient = cv.BuyerUID
	}
	senderName := uid
	if p, err := s.profileRepo.FindByUID(ctx, uid); err == nil && p.DisplayName != "" {
		senderName = p.DisplayName
	}
	s.notifier.NotifyMessage(ctx, recipient, senderName, body, convID)

	return msg, nil
}

// MarkRead is a single bulk update scoped by conversation and sender
// inequality. Idempotent, so callers fire it on every thread focus.
func (s *conversationService) MarkRead(ctx context.Context, convID uint64, uid string) error {
	if _, err := s.Get(ctx, convID, uid); err != nil {
		return err
	}
	return s.convRepo.MarkRead(ctx, convID, uid)
}

func (s *conversationService) UnreadCount(ctx context.Context, convID uint64, uid string) (int64, error) {
	if _, err := s.Get(ctx, convID, uid); err != nil {
		return 0, err
	}
	return s.convRepo.CountUnread(ctx, convID, uid)
}

func (s *conversationService) GlobalUnreadCount(ctx context.Context, uid string) (int64, error) {
	return s.convRepo.CountUnreadForUser(ctx, uid)
}
