package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/internal/util"
	"renova_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dailyContentKeyPrefix = "catalog:daily:"
	rulesKeyPrefix        = "catalog:rules:"
	catalogCacheTTL       = time.Hour
)

// TrackPhase is an inclusive day range inside a track.
type TrackPhase struct {
	StartDay    int    `json:"startDay"`
	EndDay      int    `json:"endDay"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TrackDefinition is a static catalog entry. Phases and durations never
// change at runtime; only the per-day templates live in the database.
type TrackDefinition struct {
	Slug         model.TrackType `json:"slug"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	DurationDays int             `json:"durationDays"`
	Phases       []TrackPhase    `json:"phases"`
}

var trackCatalog = []TrackDefinition{
	{
		Slug:         model.TrackLiberdade,
		Name:         "Liberdade",
		Description:  "Sete dias para retomar o controle dos seus hábitos digitais.",
		DurationDays: 7,
		Phases: []TrackPhase{
			{StartDay: 1, EndDay: 3, Title: "Consciência", Description: "Reconhecer padrões de uso"},
			{StartDay: 4, EndDay: 7, Title: "Novos hábitos", Description: "Substituir o automático pelo intencional"},
		},
	},
	{
		Slug:         model.TrackEquilibrio,
		Name:         "Equilíbrio",
		Description:  "Vinte e um dias para construir uma relação saudável com a tecnologia.",
		DurationDays: 21,
		Phases: []TrackPhase{
			{StartDay: 1, EndDay: 7, Title: "Diagnóstico", Description: "Mapear gatilhos e rotinas"},
			{StartDay: 8, EndDay: 14, Title: "Limites", Description: "Estabelecer fronteiras de uso"},
			{StartDay: 15, EndDay: 21, Title: "Consolidação", Description: "Firmar os novos hábitos"},
		},
	},
	{
		Slug:         model.TrackRenovacao,
		Name:         "Renovação",
		Description:  "Quarenta dias de transformação profunda de hábitos e prioridades.",
		DurationDays: 40,
		Phases: []TrackPhase{
			{StartDay: 1, EndDay: 10, Title: "Ruptura", Description: "Quebrar os ciclos de dependência"},
			{StartDay: 11, EndDay: 25, Title: "Reconstrução", Description: "Preencher o tempo com o que importa"},
			{StartDay: 26, EndDay: 40, Title: "Renovação", Description: "Viver a nova rotina com leveza"},
		},
	},
}

// CatalogService serves track definitions and authored daily templates. The
// database is the source of truth for templates; redis fronts it with a
// cache-aside that admin edits invalidate.
type CatalogService struct {
	ContentRepo *repository.ContentRepository
	Redis       *redis.Client
}

func NewCatalogService(contentRepo *repository.ContentRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{ContentRepo: contentRepo, Redis: rdb}
}

func (s *CatalogService) ListTracks() []TrackDefinition {
	return trackCatalog
}

func (s *CatalogService) GetTrack(slug string) (*TrackDefinition, error) {
	for i := range trackCatalog {
		if string(trackCatalog[i].Slug) == slug {
			return &trackCatalog[i], nil
		}
	}
	return nil, util.ErrTrackNotFound
}

// GetDailyTemplate returns the authored template for (track, day).
// Day numbers outside [1, durationDays] and unauthored days both return
// util.ErrDayNotAuthored; callers fall back to generic content.
func (s *CatalogService) GetDailyTemplate(ctx context.Context, slug string, dayNumber int) (*model.DailyContent, error) {
	track, err := s.GetTrack(slug)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 || dayNumber > track.DurationDays {
		return nil, util.ErrDayNotAuthored
	}

	cacheKey := fmt.Sprintf("%s%s:%d", dailyContentKeyPrefix, slug, dayNumber)
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var content model.DailyContent
			if json.Unmarshal([]byte(val), &content) == nil {
				return &content, nil
			}
		}
	}

	content, err := s.ContentRepo.FindDailyContent(slug, dayNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrDayNotAuthored
		}
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, content)
	return content, nil
}

// GetRules returns the personalization rules for (track, day) in
// evaluation order.
func (s *CatalogService) GetRules(ctx context.Context, slug string, dayNumber int) ([]model.PersonalizationRule, error) {
	cacheKey := fmt.Sprintf("%s%s:%d", rulesKeyPrefix, slug, dayNumber)
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var rules []model.PersonalizationRule
			if json.Unmarshal([]byte(val), &rules) == nil {
				return rules, nil
			}
		}
	}

	rules, err := s.ContentRepo.ListRules(slug, dayNumber)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, rules)
	return rules, nil
}

// InvalidateDay drops the cached template and rules for one (track, day).
// Called by the admin content endpoints after every write.
func (s *CatalogService) InvalidateDay(ctx context.Context, slug string, dayNumber int) {
	if s.Redis == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("%s%s:%d", dailyContentKeyPrefix, slug, dayNumber),
		fmt.Sprintf("%s%s:%d", rulesKeyPrefix, slug, dayNumber),
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed",
			zap.String("track", slug), zap.Int("day", dayNumber), zap.Error(err))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, catalogCacheTTL).Err(); err != nil {
		logger.Log.Debug("catalog cache set failed", zap.String("key", key), zap.Error(err))
	}
}
