package repository

import (
	"context"

	"github.com/ummahhub/ummah-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.SellerRating) error
	FindByPostAndBuyer(ctx context.Context, postID uint64, buyerUID string) (*model.SellerRating, error)
	SetDB(db *gorm.DB)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// Upsert writes the (post, buyer) rating and recomputes the seller's
// denormalized aggregate in the same transaction, so a buyer re-rating
// the same post never contributes twice.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.SellerRating) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "buyer_uid"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
		}).Create(rating).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&model.SellerRating{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("seller_uid = ?", rating.SellerUID).
			Scan(&agg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Profile{}).
			Where("uid = ?", rating.SellerUID).
			Updates(map[string]interface{}{
				"seller_rating":       agg.Avg,
				"seller_rating_count": agg.Count,
			}).Error
	})
}

func (r *ratingRepository) FindByPostAndBuyer(ctx context.Context, postID uint64, buyerUID string) (*model.SellerRating, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rating model.SellerRating
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND buyer_uid = ?", postID, buyerUID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}
