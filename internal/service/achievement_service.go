package service

import (
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
}

func NewAchievementService(achievementRepo *repository.AchievementRepository) *AchievementService {
	return &AchievementService{AchievementRepo: achievementRepo}
}

// EvaluateAndAward grants every milestone achievement the user has reached
// up to dayNumber but does not yet hold. It is called fire-and-forget after
// day completion, so all failures are logged and swallowed.
func (s *AchievementService) EvaluateAndAward(userID uint, trackSlug string, dayNumber int) {
	for _, day := range TrackMilestoneDays(trackSlug) {
		if day > dayNumber {
			break
		}
		name := MilestoneAchievement(trackSlug, day)
		exists, err := s.AchievementRepo.Exists(userID, trackSlug, name)
		if err != nil {
			logger.Log.Warn("achievement lookup failed",
				zap.Uint("user", userID), zap.String("track", trackSlug),
				zap.String("name", name), zap.Error(err))
			continue
		}
		if exists {
			continue
		}
		achievement := &model.UserAchievement{
			UserID:    userID,
			TrackSlug: trackSlug,
			Name:      name,
			DayNumber: day,
			EarnedAt:  time.Now(),
		}
		if err := s.AchievementRepo.Create(achievement); err != nil {
			logger.Log.Warn("achievement grant failed",
				zap.Uint("user", userID), zap.String("track", trackSlug),
				zap.String("name", name), zap.Error(err))
			continue
		}
		logger.Log.Info("achievement granted",
			zap.Uint("user", userID), zap.String("track", trackSlug), zap.String("name", name))
	}
}

func (s *AchievementService) ListByUser(userID uint) ([]model.UserAchievement, error) {
	return s.AchievementRepo.FindByUser(userID)
}
