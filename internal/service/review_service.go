package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/repository"
)

var halalTags = map[string]struct{}{
	"certified":     {},
	"muslim_owned":  {},
	"halal_options": {},
	"unknown":       {},
}

type ReviewService interface {
	Submit(ctx context.Context, placeID, authorUID string, rating int, body, halalTag string) (*model.RestaurantReview, error)
	ListByPlace(ctx context.Context, placeID string) ([]model.RestaurantReview, float64, int64, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

// Submit upserts: one review per (place, author), re-submitting
// replaces the author's earlier review.
func (s *reviewService) Submit(ctx context.Context, placeID, authorUID string, rating int, body, halalTag string) (*model.RestaurantReview, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, errors.New("placeId is required")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	halalTag = strings.TrimSpace(halalTag)
	if halalTag == "" {
		halalTag = "unknown"
	}
	if _, ok := halalTags[halalTag]; !ok {
		return nil, errors.New("unknown halal tag")
	}
	review := &model.RestaurantReview{
		PlaceID:   placeID,
		AuthorUID: authorUID,
		Rating:    rating,
		Body:      strings.TrimSpace(body),
		HalalTag:  halalTag,
	}
	if err := s.repo.Upsert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByPlace(ctx context.Context, placeID string) ([]model.RestaurantReview, float64, int64, error) {
	reviews, err := s.repo.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, count, err := s.repo.AverageByPlace(ctx, placeID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, avg, count, nil
}
