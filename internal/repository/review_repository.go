package repository

import (
	"context"

	"github.com/ummahhub/ummah-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *model.RestaurantReview) error
	ListByPlace(ctx context.Context, placeID string) ([]model.RestaurantReview, error)
	AverageByPlace(ctx context.Context, placeID string) (float64, int64, error)
	SetDB(db *gorm.DB)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *reviewRepository) Upsert(ctx context.Context, review *model.RestaurantReview) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}, {Name: "author_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "body", "halal_tag", "updated_at"}),
	}).Create(review).Error
}

func (r *reviewRepository) ListByPlace(ctx context.Context, placeID string) ([]model.RestaurantReview, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var reviews []model.RestaurantReview
	if err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) AverageByPlace(ctx context.Context, placeID string) (float64, int64, error) {
	if r.db == nil {
		return 0, 0, ErrDBNotReady
	}
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&model.RestaurantReview{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("place_id = ?", placeID).
		Scan(&agg).Error; err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}
