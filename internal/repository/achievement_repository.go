package repository

import (
	"renova_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindByUser(userID uint) ([]model.UserAchievement, error) {
	var achievements []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).
		Order("earned_at asc").
		Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) Exists(userID uint, trackSlug, name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ? AND track_slug = ? AND name = ?", userID, trackSlug, name).
		Count(&count).Error
	return count > 0, err
}

func (r *AchievementRepository) Create(achievement *model.UserAchievement) error {
	return r.DB.Create(achievement).Error
}
