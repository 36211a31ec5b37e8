package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/repository"
	"gorm.io/gorm"
)

type ProfileService interface {
	Get(ctx context.Context, uid string) (*model.Profile, error)
	Upsert(ctx context.Context, uid, displayName, bio string, avatarURL *string) (*model.Profile, error)
	RegisterPushToken(ctx context.Context, uid, deviceID, token, platform string) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	tokenRepo   repository.PushTokenRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, tokenRepo repository.PushTokenRepository) ProfileService {
	return &profileService{profileRepo: profileRepo, tokenRepo: tokenRepo}
}

func (s *profileService) Get(ctx context.Context, uid string) (*model.Profile, error) {
	p, err := s.profileRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, uid, displayName, bio string, avatarURL *string) (*model.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || len(displayName) > 120 {
		return nil, errors.New("invalid display name")
	}
	p := &model.Profile{
		UID:         uid,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		Bio:         strings.TrimSpace(bio),
	}
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

func (s *profileService) RegisterPushToken(ctx context.Context, uid, deviceID, token, platform string) error {
	deviceID = strings.TrimSpace(deviceID)
	token = strings.TrimSpace(token)
	if deviceID == "" {
		return errors.New("deviceId is required")
	}
	if token == "" {
		return errors.New("token is required")
	}
	return s.tokenRepo.Upsert(ctx, &model.PushToken{
		UID:      uid,
		DeviceID: deviceID,
		Token:    token,
		Platform: strings.TrimSpace(platform),
	})
}
