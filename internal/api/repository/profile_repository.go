package repository

import (
	"context"

	"finis-oculus/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*entity.UserProfile, error)
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

type profileRepository struct {
	db *gorm.DB
}

// GetOrCreate returns the profile, creating a non-premium one on first use.
// Concurrent first requests race on the insert; the loser's insert is a
// no-op and both read the same row.
func (r *profileRepository) GetOrCreate(ctx context.Context, userID string) (*entity.UserProfile, error) {
	db := r.db.WithContext(ctx)
	if err := ensureProfile(db, userID); err != nil {
		return nil, err
	}

	var profile entity.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ensureProfile inserts a default profile unless one exists.
func ensureProfile(db *gorm.DB, userID string) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserProfile{UserID: userID}).Error
}
