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

type SpaceService interface {
	Create(ctx context.Context, ownerUID, name, description string, coverURL *string) (*model.Space, error)
	Get(ctx context.Context, id uint64) (*model.Space, error)
	List(ctx context.Context, limit, offset int) ([]model.Space, int64, error)
	Update(ctx context.Context, id uint64, ownerUID, name, description string, coverURL *string) (*model.Space, error)
	Delete(ctx context.Context, id uint64, ownerUID string) error
	CreateEvent(ctx context.Context, spaceID uint64, uid, title, description, location string, startsAt time.Time) (*model.SpaceEvent, error)
	ListUpcomingEvents(ctx context.Context, spaceID uint64) ([]model.SpaceEvent, error)
	CreateAnnouncement(ctx context.Context, spaceID uint64, uid, title, body string) (*model.SpaceAnnouncement, error)
	ListAnnouncements(ctx context.Context, spaceID uint64) ([]model.SpaceAnnouncement, error)
}

type spaceService struct {
	repo repository.SpaceRepository
}

func NewSpaceService(repo repository.SpaceRepository) SpaceService {
	return &spaceService{repo: repo}
}

func (s *spaceService) Create(ctx context.Context, ownerUID, name, description string, coverURL *string) (*model.Space, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || len(name) > 120 {
		return nil, errors.New("invalid name")
	}
	if description == "" {
		return nil, errors.New("invalid description")
	}
	space := &model.Space{
		Name:        name,
		Description: description,
		CoverURL:    coverURL,
		OwnerUID:    ownerUID,
	}
	if err := s.repo.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *spaceService) Get(ctx context.Context, id uint64) (*model.Space, error) {
	space, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return space, nil
}

func (s *spaceService) List(ctx context.Context, limit, offset int) ([]model.Space, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *spaceService) ownedSpace(ctx context.Context, id uint64, uid string) (*model.Space, error) {
	space, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if space.OwnerUID != uid {
		return nil, ErrForbidden
	}
	return space, nil
}

func (s *spaceService) Update(ctx context.Context, id uint64, ownerUID, name, description string, coverURL *string) (*model.Space, error) {
	space, err := s.ownedSpace(ctx, id, ownerUID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || len(name) > 120 {
		return nil, errors.New("invalid name")
	}
	if description == "" {
		return nil, errors.New("invalid description")
	}
	space.Name = name
	space.Description = description
	if coverURL != nil {
		space.CoverURL = coverURL
	}
	if err := s.repo.Update(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *spaceService) Delete(ctx context.Context, id uint64, ownerUID string) error {
	if _, err := s.ownedSpace(ctx, id, ownerUID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *spaceService) CreateEvent(ctx context.Context, spaceID uint64, uid, title, description, location string, startsAt time.Time) (*model.SpaceEvent, error) {
	if _, err := s.ownedSpace(ctx, spaceID, uid); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 160 {
		return nil, errors.New("invalid title")
	}
	if startsAt.IsZero() {
		return nil, errors.New("startsAt is required")
	}
	ev := &model.SpaceEvent{
		SpaceID:     spaceID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Location:    strings.TrimSpace(location),
		StartsAt:    startsAt,
		CreatedBy:   uid,
	}
	if err := s.repo.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *spaceService) ListUpcomingEvents(ctx context.Context, spaceID uint64) ([]model.SpaceEvent, error) {
	if _, err := s.Get(ctx, spaceID); err != nil {
		return nil, err
	}
	return s.repo.ListUpcomingEvents(ctx, spaceID, time.Now())
}

func (s *spaceService) CreateAnnouncement(ctx context.Context, spaceID uint64, uid, title, body string) (*model.SpaceAnnouncement, error) {
	if _, err := s.ownedSpace(ctx, spaceID, uid); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || len(title) > 160 {
		return nil, errors.New("invalid title")
	}
	if body == "" {
		return nil, errors.New("body is required")
	}
	an := &model.SpaceAnnouncement{
		SpaceID:   spaceID,
		Title:     title,
		Body:      body,
		CreatedBy: uid,
	}
	if err := s.repo.CreateAnnouncement(ctx, an); err != nil {
		return nil, err
	}
	return an, nil
}

func (s *spaceService) ListAnnouncements(ctx context.Context, spaceID uint64) ([]model.SpaceAnnouncement, error) {
	if _, err := s.Get(ctx, spaceID); err != nil {
		return nil, err
	}
	return s.repo.ListAnnouncements(ctx, spaceID)
}
