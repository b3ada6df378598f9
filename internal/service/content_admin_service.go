package service

import (
	"context"
	"encoding/json"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/internal/util"
)

type DailyContentInput struct {
	TrackSlug            string `json:"trackSlug" binding:"required"`
	DayNumber            int    `json:"dayNumber" binding:"required,min=1"`
	Title                string `json:"title" binding:"required,max=200"`
	Objective            string `json:"objective"`
	Verse                string `json:"verse"`
	Reflection           string `json:"reflection"`
	Prayer               string `json:"prayer"`
	MainActivityTitle    string `json:"mainActivityTitle"`
	MainActivityContent  string `json:"mainActivityContent"`
	ChallengeTitle       string `json:"challengeTitle"`
	ChallengeDescription string `json:"challengeDescription"`
	BonusTitle           string `json:"bonusTitle"`
	BonusContent         string `json:"bonusContent"`
	MaxPoints            int    `json:"maxPoints" binding:"omitempty,min=1"`
	DifficultyLevel      int    `json:"difficultyLevel" binding:"omitempty,min=1,max=5"`
}

type RuleInput struct {
	TrackSlug string          `json:"trackSlug" binding:"required"`
	DayNumber int             `json:"dayNumber" binding:"required,min=1"`
	Position  int             `json:"position" binding:"min=0"`
	RuleType  model.RuleType  `json:"ruleType" binding:"required,oneof=area_based score_based preference_based"`
	Condition json.RawMessage `json:"condition" binding:"required"`
	Content   json.RawMessage `json:"content" binding:"required"`
}

// ContentAdminService is the authoring surface behind the admin routes.
// Every write invalidates the read cache for the touched day.
type ContentAdminService struct {
	ContentRepo *repository.ContentRepository
	Catalog     *CatalogService
}

func NewContentAdminService(contentRepo *repository.ContentRepository, catalog *CatalogService) *ContentAdminService {
	return &ContentAdminService{ContentRepo: contentRepo, Catalog: catalog}
}

func (s *ContentAdminService) CreateDailyContent(ctx context.Context, input DailyContentInput) (*model.DailyContent, error) {
	track, err := s.Catalog.GetTrack(input.TrackSlug)
	if err != nil {
		return nil, err
	}
	if input.DayNumber > track.DurationDays {
		return nil, util.ErrDayOutOfRange
	}

	content := s.contentFromInput(input)
	if err := s.ContentRepo.CreateDailyContent(content); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateDay(ctx, input.TrackSlug, input.DayNumber)
	return content, nil
}

func (s *ContentAdminService) UpdateDailyContent(ctx context.Context, id string, input DailyContentInput) (*model.DailyContent, error) {
	content, err := s.ContentRepo.FindDailyContentByID(id)
	if err != nil {
		return nil, err
	}

	updated := s.contentFromInput(input)
	updated.UUIDBase = content.UUIDBase
	if err := s.ContentRepo.UpdateDailyContent(updated); err != nil {
		return nil, err
	}
	// The day may have moved; both the old and the new slot go stale.
	s.Catalog.InvalidateDay(ctx, content.TrackSlug, content.DayNumber)
	s.Catalog.InvalidateDay(ctx, updated.TrackSlug, updated.DayNumber)
	return updated, nil
}

func (s *ContentAdminService) DeleteDailyContent(ctx context.Context, id string) error {
	content, err := s.ContentRepo.FindDailyContentByID(id)
	if err != nil {
		return err
	}
	if err := s.ContentRepo.DeleteDailyContent(id); err != nil {
		return err
	}
	s.Catalog.InvalidateDay(ctx, content.TrackSlug, content.DayNumber)
	return nil
}

func (s *ContentAdminService) ListDailyContent(trackSlug string, page, limit int) ([]model.DailyContent, int64, error) {
	return s.ContentRepo.ListDailyContent(trackSlug, page, limit)
}

func (s *ContentAdminService) CreateRule(ctx context.Context, input RuleInput) (*model.PersonalizationRule, error) {
	if _, err := s.Catalog.GetTrack(input.TrackSlug); err != nil {
		return nil, err
	}
	rule := &model.PersonalizationRule{
		TrackSlug:     input.TrackSlug,
		DayNumber:     input.DayNumber,
		Position:      input.Position,
		RuleType:      input.RuleType,
		ConditionData: input.Condition,
		Content:       input.Content,
	}
	if err := s.ContentRepo.CreateRule(rule); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateDay(ctx, input.TrackSlug, input.DayNumber)
	return rule, nil
}

func (s *ContentAdminService) UpdateRule(ctx context.Context, id string, input RuleInput) (*model.PersonalizationRule, error) {
	rule, err := s.ContentRepo.FindRuleByID(id)
	if err != nil {
		return nil, err
	}

	oldSlug, oldDay := rule.TrackSlug, rule.DayNumber
	rule.TrackSlug = input.TrackSlug
	rule.DayNumber = input.DayNumber
	rule.Position = input.Position
	rule.RuleType = input.RuleType
	rule.ConditionData = input.Condition
	rule.Content = input.Content
	if err := s.ContentRepo.UpdateRule(rule); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateDay(ctx, oldSlug, oldDay)
	s.Catalog.InvalidateDay(ctx, rule.TrackSlug, rule.DayNumber)
	return rule, nil
}

func (s *ContentAdminService) DeleteRule(ctx context.Context, id string) error {
	rule, err := s.ContentRepo.FindRuleByID(id)
	if err != nil {
		return err
	}
	if err := s.ContentRepo.DeleteRule(id); err != nil {
		return err
	}
	s.Catalog.InvalidateDay(ctx, rule.TrackSlug, rule.DayNumber)
	return nil
}

func (s *ContentAdminService) ListRules(trackSlug string, page, limit int) ([]model.PersonalizationRule, int64, error) {
	return s.ContentRepo.ListAllRules(trackSlug, page, limit)
}

func (s *ContentAdminService) contentFromInput(input DailyContentInput) *model.DailyContent {
	maxPoints := input.MaxPoints
	if maxPoints == 0 {
		maxPoints = 100
	}
	difficulty := input.DifficultyLevel
	if difficulty == 0 {
		difficulty = 3
	}
	return &model.DailyContent{
		TrackSlug:            input.TrackSlug,
		DayNumber:            input.DayNumber,
		Title:                input.Title,
		Objective:            input.Objective,
		Verse:                input.Verse,
		Reflection:           input.Reflection,
		Prayer:               input.Prayer,
		MainActivityTitle:    input.MainActivityTitle,
		MainActivityContent:  input.MainActivityContent,
		ChallengeTitle:       input.ChallengeTitle,
		ChallengeDescription: input.ChallengeDescription,
		BonusTitle:           input.BonusTitle,
		BonusContent:         input.BonusContent,
		MaxPoints:            maxPoints,
		DifficultyLevel:      difficulty,
	}
}
