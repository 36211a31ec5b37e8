package repository

import (
	"context"

	"github.com/ummahhub/ummah-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushTokenRepository interface {
	Upsert(ctx context.Context, token *model.PushToken) error
	FindByUID(ctx context.Context, uid string) ([]model.PushToken, error)
	SetDB(db *gorm.DB)
}

type pushTokenRepository struct {
	db *gorm.DB
}

func NewPushTokenRepository(db *gorm.DB) PushTokenRepository {
	return &pushTokenRepository{db: db}
}

func (r *pushTokenRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *pushTokenRepository) Upsert(ctx context.Context, token *model.PushToken) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}, {Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "platform", "updated_at"}),
	}).Create(token).Error
}

func (r *pushTokenRepository) FindByUID(ctx context.Context, uid string) ([]model.PushToken, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var tokens []model.PushToken
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
