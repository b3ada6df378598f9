package repository

import (
	"renova_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Track progress

func (r *ProgressRepository) FindTrackProgress(userID uint, trackSlug string) (*model.TrackProgress, error) {
	var progress model.TrackProgress
	err := r.DB.Where("user_id = ? AND track_slug = ?", userID, trackSlug).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindActiveTrackProgress returns the user's active track, if any.
func (r *ProgressRepository) FindActiveTrackProgress(userID uint) (*model.TrackProgress, error) {
	var progress model.TrackProgress
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) CreateTrackProgress(progress *model.TrackProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) UpdateTrackProgress(progress *model.TrackProgress) error {
	return r.DB.Save(progress).Error
}

// DeactivateOtherTracks flips is_active off for every track but the given one.
func (r *ProgressRepository) DeactivateOtherTracks(userID uint, keepSlug string) error {
	return r.DB.Model(&model.TrackProgress{}).
		Where("user_id = ? AND track_slug <> ?", userID, keepSlug).
		Update("is_active", false).Error
}

// Activity progress

func (r *ProgressRepository) FindActivityProgress(userID uint, trackSlug string, dayNumber, activityIndex int) (*model.ActivityProgress, error) {
	var record model.ActivityProgress
	err := r.DB.Where(
		"user_id = ? AND track_slug = ? AND day_number = ? AND activity_index = ?",
		userID, trackSlug, dayNumber, activityIndex,
	).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ProgressRepository) CreateActivityProgress(record *model.ActivityProgress) error {
	return r.DB.Create(record).Error
}

func (r *ProgressRepository) DeleteActivityProgress(record *model.ActivityProgress) error {
	return r.DB.Unscoped().Delete(record).Error
}

// ListDayActivities returns the completed activities for one (user, track, day).
func (r *ProgressRepository) ListDayActivities(userID uint, trackSlug string, dayNumber int) ([]model.ActivityProgress, error) {
	var records []model.ActivityProgress
	err := r.DB.Where(
		"user_id = ? AND track_slug = ? AND day_number = ?",
		userID, trackSlug, dayNumber,
	).Order("activity_index asc").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) CountDayActivities(userID uint, trackSlug string, dayNumber int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityProgress{}).Where(
		"user_id = ? AND track_slug = ? AND day_number = ?",
		userID, trackSlug, dayNumber,
	).Count(&count).Error
	return count, err
}
