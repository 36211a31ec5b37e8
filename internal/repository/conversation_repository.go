package repository

import (
	"context"
	"time"

	"github.com/ummahhub/ummah-backend/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	FindByPostAndBuyer(ctx context.Context, postID uint64, buyerUID string) (*model.Conversation, error)
	Create(ctx context.Context, cv *model.Conversation) error
	FindByID(ctx context.Context, id uint64) (*model.Conversation, error)
	FindByUser(ctx context.Context, uid string) ([]model.Conversation, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, convID uint64) ([]model.Message, error)
	CountUnread(ctx context.Context, convID uint64, uid string) (int64, error)
	CountUnreadForUser(ctx context.Context, uid string) (int64, error)
	MarkRead(ctx context.Context, convID uint64, uid string) error
	SetDB(db *gorm.DB)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *conversationRepository) FindByPostAndBuyer(ctx context.Context, postID uint64, buyerUID string) (*model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var cv model.Conversation
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND buyer_uid = ?", postID, buyerUID).
		First(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

// Create relies on the unique (post_id, buyer_uid) index for
// correctness under concurrent starts; callers translate
// gorm.ErrDuplicatedKey into a re-lookup.
func (r *conversationRepository) Create(ctx context.Context, cv *model.Conversation) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if cv.LastMessageAt.IsZero() {
		cv.LastMessageAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var cv model.Conversation
	if err := r.db.WithContext(ctx).First(&cv, id).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("seller_uid = ? OR buyer_uid = ?", uid, uid).
		Order("last_message_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			UpdateColumn("last_message_at", msg.CreatedAt).Error
	})
}

func (r *conversationRepository) ListMessages(ctx context.Context, convID uint64) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *conversationRepository) CountUnread(ctx context.Context, convID uint64, uid string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND sender_uid <> ? AND is_read = ?", convID, uid, false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *conversationRepository) CountUnreadForUser(ctx context.Context, uid string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).
		Joins("JOIN bazaar_conversations cv ON cv.id = bazaar_messages.conversation_id").
		Where("(cv.seller_uid = ? OR cv.buyer_uid = ?)", uid, uid).
		Where("bazaar_messages.sender_uid <> ? AND bazaar_messages.is_read = ?", uid, false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// MarkRead flips every inbound unread message in one bulk update;
// repeating it is a no-op.
func (r *conversationRepository) MarkRead(ctx context.Context, convID uint64, uid string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND sender_uid <> ? AND is_read = ?", convID, uid, false).
		UpdateColumn("is_read", true).Error
}
