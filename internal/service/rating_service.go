package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/repository"
	"gorm.io/gorm"
)

type RatingService interface {
	Rate(ctx context.Context, postID uint64, buyerUID string, rating int, review string) (*model.SellerRating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	postRepo   repository.PostRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, postRepo repository.PostRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, postRepo: postRepo}
}

// Rate upserts the buyer's rating for a post. Re-rating replaces the
// existing row; the seller aggregate always reflects exactly one
// contribution per (buyer, post).
func (s *ratingService) Rate(ctx context.Context, postID uint64, buyerUID string, rating int, review string) (*model.SellerRating, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.SellerUID == buyerUID {
		return nil, errors.New("cannot rate yourself")
	}

	r := &model.SellerRating{
		PostID:    postID,
		BuyerUID:  buyerUID,
		SellerUID: post.SellerUID,
		Rating:    rating,
		Review:    strings.TrimSpace(review),
	}
	if err := s.ratingRepo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
