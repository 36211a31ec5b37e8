package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/repository"
	"gorm.io/gorm"
)

type PostService interface {
	Create(ctx context.Context, sellerUID, title, description string, price *float64, currency string, photoURLs []string) (*model.Post, error)
	Get(ctx context.Context, id uint64) (*model.Post, []model.PostPhoto, error)
	List(ctx context.Context, limit, offset int) ([]model.Post, int64, error)
	ListMine(ctx context.Context, sellerUID string) ([]model.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.Post, int64, error)
	Update(ctx context.Context, id uint64, sellerUID, title, description string, price *float64, currency string) (*model.Post, error)
	MarkSold(ctx context.Context, id uint64, sellerUID string) (*model.Post, error)
}

type postService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

func validatePost(title, description string, price *float64, currency string) error {
	if title == "" || len(title) > 120 {
		return errors.New("invalid title")
	}
	if description == "" {
		return errors.New("invalid description")
	}
	if price != nil && *price < 0 {
		return errors.New("price must not be negative")
	}
	if currency == "" {
		return errors.New("currency is required")
	}
	return nil
}

func (s *postService) Create(ctx context.Context, sellerUID, title, description string, price *float64, currency string, photoURLs []string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := validatePost(title, description, price, currency); err != nil {
		return nil, err
	}

	post := &model.Post{
		SellerUID:   sellerUID,
		Title:       title,
		Description: description,
		Price:       price,
		Currency:    currency,
		Status:      model.PostStatusActive,
	}
	photos := make([]model.PostPhoto, 0, len(photoURLs))
	for i, u := range photoURLs {
		photos = append(photos, model.PostPhoto{URL: u, Position: i})
	}
	if err := s.repo.Create(ctx, post, photos); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint64) (*model.Post, []model.PostPhoto, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	photos, err := s.repo.FindPhotos(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, photos, nil
}

func (s *postService) List(ctx context.Context, limit, offset int) ([]model.Post, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset, model.PostStatusActive)
}

func (s *postService) ListMine(ctx context.Context, sellerUID string) ([]model.Post, error) {
	return s.repo.ListBySeller(ctx, sellerUID)
}

func (s *postService) Search(ctx context.Context, query string, limit, offset int) ([]model.Post, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Search(ctx, strings.Fields(query), limit, offset)
}

func (s *postService) Update(ctx context.Context, id uint64, sellerUID, title, description string, price *float64, currency string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.SellerUID != sellerUID {
		return nil, ErrForbidden
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := validatePost(title, description, price, currency); err != nil {
		return nil, err
	}
	post.Title = title
	post.Description = description
	post.Price = price
	post.Currency = currency
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// MarkSold is one-directional: once sold, a post never goes back to
// active, and a second call is rejected.
func (s *postService) MarkSold(ctx context.Context, id uint64, sellerUID string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.SellerUID != sellerUID {
		return nil, ErrForbidden
	}
	now := time.Now()
	ok, err := s.repo.MarkSold(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	post.Status = model.PostStatusSold
	post.SoldAt = &now
	return post, nil
}
