package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ummahhub/ummah-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type PostRepository interface {
	Create(ctx context.Context, post *model.Post, photos []model.PostPhoto) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	List(ctx context.Context, limit, offset int, status model.PostStatus) ([]model.Post, int64, error)
	ListBySeller(ctx context.Context, sellerUID string) ([]model.Post, error)
	Search(ctx context.Context, terms []string, limit, offset int) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	MarkSold(ctx context.Context, id uint64, at time.Time) (bool, error)
	FindPhotos(ctx context.Context, postID uint64) ([]model.PostPhoto, error)
	SetDB(db *gorm.DB)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *postRepository) Create(ctx context.Context, post *model.Post, photos []model.PostPhoto) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	post.SearchText = BuildSearchText(post.Title, post.Description)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for i := range photos {
			photos[i].PostID = post.ID
		}
		if len(photos) > 0 {
			if err := tx.Create(&photos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, status model.PostStatus) ([]model.Post, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Post{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []model.Post
	if err := base().
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListBySeller(ctx context.Context, sellerUID string) ([]model.Post, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Where("seller_uid = ?", sellerUID).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, terms []string, limit, offset int) ([]model.Post, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	expr := BooleanSearchExpr(terms)
	if expr == "" {
		return r.List(ctx, limit, offset, model.PostStatusActive)
	}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Post{}).
			Where("status = ?", model.PostStatusActive).
			Where("MATCH(search_text) AGAINST(? IN BOOLEAN MODE)", expr)
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []model.Post
	if err := base().
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	post.SearchText = BuildSearchText(post.Title, post.Description)
	return r.db.WithContext(ctx).Save(post).Error
}

// MarkSold transitions active -> sold. Returns false when the row was
// not active anymore; the transition is one-directional.
func (r *postRepository) MarkSold(ctx context.Context, id uint64, at time.Time) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = ?", id, model.PostStatusActive).
		Updates(map[string]interface{}{"status": model.PostStatusSold, "sold_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) FindPhotos(ctx context.Context, postID uint64) ([]model.PostPhoto, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var photos []model.PostPhoto
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("position ASC, id ASC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// BuildSearchText lowercases and collapses title+description into the
// column the boolean search runs against.
func BuildSearchText(title, description string) string {
	return strings.ToLower(strings.TrimSpace(title + " " + description))
}

// BooleanSearchExpr renders terms as a MySQL boolean-mode expression
// requiring every term ("AND of terms").
func BooleanSearchExpr(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		t = strings.Trim(t, "+-<>~*\"()@")
		if t == "" {
			continue
		}
		parts = append(parts, "+"+t)
	}
	return strings.Join(parts, " ")
}
