package repository

import (
	"renova_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionnaireRepository struct {
	DB *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{DB: db}
}

func (r *QuestionnaireRepository) Create(result *model.QuestionnaireResult) error {
	return r.DB.Create(result).Error
}

// FindLatestByUser returns the user's most recent result, the current
// baseline for personalization.
func (r *QuestionnaireRepository) FindLatestByUser(userID uint) (*model.QuestionnaireResult, error) {
	var result model.QuestionnaireResult
	err := r.DB.Where("user_id = ?", userID).
		Order("completed_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *QuestionnaireRepository) ListByUser(userID uint) ([]model.QuestionnaireResult, error) {
	var results []model.QuestionnaireResult
	err := r.DB.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}
