package repository

import (
	"renova_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// Daily content templates

func (r *ContentRepository) CreateDailyContent(content *model.DailyContent) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindDailyContent(trackSlug string, dayNumber int) (*model.DailyContent, error) {
	var content model.DailyContent
	err := r.DB.Where("track_slug = ? AND day_number = ?", trackSlug, dayNumber).
		First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) FindDailyContentByID(id string) (*model.DailyContent, error) {
	var content model.DailyContent
	err := r.DB.Where("id = ?", id).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) ListDailyContent(trackSlug string, page, limit int) ([]model.DailyContent, int64, error) {
	var contents []model.DailyContent
	var total int64
	query := r.DB.Model(&model.DailyContent{})
	if trackSlug != "" {
		query = query.Where("track_slug = ?", trackSlug)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("track_slug asc, day_number asc").Offset(offset).Limit(limit).Find(&contents).Error
	return contents, total, err
}

func (r *ContentRepository) UpdateDailyContent(content *model.DailyContent) error {
	return r.DB.Save(content).Error
}

func (r *ContentRepository) DeleteDailyContent(id string) error {
	return r.DB.Delete(&model.DailyContent{}, "id = ?", id).Error
}

// Personalization rules

func (r *ContentRepository) CreateRule(rule *model.PersonalizationRule) error {
	return r.DB.Create(rule).Error
}

func (r *ContentRepository) FindRuleByID(id string) (*model.PersonalizationRule, error) {
	var rule model.PersonalizationRule
	err := r.DB.Where("id = ?", id).First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListRules returns the rules for one (track, day) in evaluation order.
func (r *ContentRepository) ListRules(trackSlug string, dayNumber int) ([]model.PersonalizationRule, error) {
	var rules []model.PersonalizationRule
	err := r.DB.Where("track_slug = ? AND day_number = ?", trackSlug, dayNumber).
		Order("position asc, created_at asc").
		Find(&rules).Error
	return rules, err
}

func (r *ContentRepository) ListAllRules(trackSlug string, page, limit int) ([]model.PersonalizationRule, int64, error) {
	var rules []model.PersonalizationRule
	var total int64
	query := r.DB.Model(&model.PersonalizationRule{})
	if trackSlug != "" {
		query = query.Where("track_slug = ?", trackSlug)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("track_slug asc, day_number asc, position asc").
		Offset(offset).Limit(limit).Find(&rules).Error
	return rules, total, err
}

func (r *ContentRepository) UpdateRule(rule *model.PersonalizationRule) error {
	return r.DB.Save(rule).Error
}

func (r *ContentRepository) DeleteRule(id string) error {
	return r.DB.Delete(&model.PersonalizationRule{}, "id = ?", id).Error
}
