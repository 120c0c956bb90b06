package service

import (
	"context"
	"fmt"

	"finis-oculus/internal/api/config"
	"finis-oculus/internal/api/dto"
	"finis-oculus/internal/api/repository"
	"finis-oculus/pkg/logger"
)

// ProfileService exposes the signed-in user's account settings.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*dto.ProfileResponse, error)
}

type profileService struct {
	cfg         *config.Config
	log         *logger.Logger
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(cfg *config.Config, log *logger.Logger, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{cfg: cfg, log: log, profileRepo: profileRepo}
}

// Get returns the profile for userID, creating a non-premium one on first use.
func (s *profileService) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load profile", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &dto.ProfileResponse{
		UserID:         profile.UserID,
		Premium:        profile.Premium,
		WatchlistLimit: WatchlistLimit(s.cfg, profile.Premium),
	}, nil
}
