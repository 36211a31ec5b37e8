package repository

import (
	"context"
	"time"

	"github.com/ummahhub/ummah-backend/internal/model"
	"gorm.io/gorm"
)

type SpaceRepository interface {
	Create(ctx context.Context, space *model.Space) error
	FindByID(ctx context.Context, id uint64) (*model.Space, error)
	List(ctx context.Context, limit, offset int) ([]model.Space, int64, error)
	Update(ctx context.Context, space *model.Space) error
	Delete(ctx context.Context, id uint64) error
	CreateEvent(ctx context.Context, ev *model.SpaceEvent) error
	ListUpcomingEvents(ctx context.Context, spaceID uint64, after time.Time) ([]model.SpaceEvent, error)
	CreateAnnouncement(ctx context.Context, an *model.SpaceAnnouncement) error
	ListAnnouncements(ctx context.Context, spaceID uint64) ([]model.SpaceAnnouncement, error)
	SetDB(db *gorm.DB)
}

type spaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

func (r *spaceRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *spaceRepository) Create(ctx context.Context, space *model.Space) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(space).Error
}

func (r *spaceRepository) FindByID(ctx context.Context, id uint64) (*model.Space, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var space model.Space
	if err := r.db.WithContext(ctx).First(&space, id).Error; err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepository) List(ctx context.Context, limit, offset int) ([]model.Space, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Space{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var spaces []model.Space
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&spaces).Error; err != nil {
		return nil, 0, err
	}
	return spaces, total, nil
}

func (r *spaceRepository) Update(ctx context.Context, space *model.Space) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(space).Error
}

// Delete removes the space together with its events and announcements
// in one transaction.
func (r *spaceRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_id = ?", id).Delete(&model.SpaceEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("space_id = ?", id).Delete(&model.SpaceAnnouncement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Space{}, id).Error
	})
}

func (r *spaceRepository) CreateEvent(ctx context.Context, ev *model.SpaceEvent) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *spaceRepository) ListUpcomingEvents(ctx context.Context, spaceID uint64, after time.Time) ([]model.SpaceEvent, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var events []model.SpaceEvent
	if err := r.db.WithContext(ctx).
		Where("space_id = ? AND starts_at >= ?", spaceID, after).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *spaceRepository) CreateAnnouncement(ctx context.Context, an *model.SpaceAnnouncement) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(an).Error
}

func (r *spaceRepository) ListAnnouncements(ctx context.Context, spaceID uint64) ([]model.SpaceAnnouncement, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.SpaceAnnouncement
	if err := r.db.WithContext(ctx).
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
