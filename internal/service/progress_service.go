package service

import (
	"errors"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/internal/util"
	"renova_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pointsPerLevel = 100

type ActivityCompletionInput struct {
	DayNumber     int    `json:"dayNumber" binding:"required,min=1"`
	ActivityIndex int    `json:"activityIndex" binding:"min=0"`
	ActivityType  string `json:"activityType"`
	Title         string `json:"title"`
	Points        int    `json:"points" binding:"min=0"`
}

type DayCompletionInput struct {
	DayNumber int `json:"dayNumber" binding:"required,min=1"`
	Points    int `json:"points" binding:"min=0"`
}

type ProgressSummary struct {
	TrackSlug      string     `json:"trackSlug"`
	TrackName      string     `json:"trackName"`
	CurrentDay     int        `json:"currentDay"`
	DurationDays   int        `json:"durationDays"`
	TotalPoints    int        `json:"totalPoints"`
	StreakDays     int        `json:"streakDays"`
	LevelNumber    int        `json:"levelNumber"`
	PercentDone    int        `json:"percentDone"`
	LastActivityAt *time.Time `json:"lastActivityAt"`
}

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	Catalog      *CatalogService
	Achievements *AchievementService
}

func NewProgressService(progressRepo *repository.ProgressRepository, catalog *CatalogService, achievements *AchievementService) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo, Catalog: catalog, Achievements: achievements}
}

// EnsureTrack returns the user's progress row for the track, creating a
// fresh one when the user has never started it. The returned row is marked
// active and all other tracks are deactivated.
func (s *ProgressService) EnsureTrack(userID uint, trackSlug string) (*model.TrackProgress, error) {
	if _, err := s.Catalog.GetTrack(trackSlug); err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.FindTrackProgress(userID, trackSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = &model.TrackProgress{
			UserID:     userID,
			TrackSlug:  trackSlug,
			CurrentDay: 1,
			IsActive:   true,
		}
		if err := s.ProgressRepo.CreateTrackProgress(progress); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else if !progress.IsActive {
		progress.IsActive = true
		if err := s.ProgressRepo.UpdateTrackProgress(progress); err != nil {
			return nil, err
		}
	}
	if err := s.ProgressRepo.DeactivateOtherTracks(userID, trackSlug); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteActivity records one finished activity. Recording the same
// (day, index) twice is a no-op: the stored row wins and no points are
// granted again.
func (s *ProgressService) CompleteActivity(userID uint, trackSlug string, input ActivityCompletionInput) (*model.ActivityProgress, bool, error) {
	progress, err := s.EnsureTrack(userID, trackSlug)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.ProgressRepo.FindActivityProgress(userID, trackSlug, input.DayNumber, input.ActivityIndex)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	record := &model.ActivityProgress{
		UserID:        userID,
		TrackSlug:     trackSlug,
		DayNumber:     input.DayNumber,
		ActivityIndex: input.ActivityIndex,
		ActivityType:  input.ActivityType,
		Title:         input.Title,
		PointsEarned:  input.Points,
		CompletedAt:   time.Now(),
	}
	if err := s.ProgressRepo.CreateActivityProgress(record); err != nil {
		return nil, false, err
	}

	now := record.CompletedAt
	progress.LastActivityAt = &now
	if err := s.ProgressRepo.UpdateTrackProgress(progress); err != nil {
		logger.Log.Warn("failed to touch track progress",
			zap.Uint("user", userID), zap.String("track", trackSlug), zap.Error(err))
	}
	return record, true, nil
}

// ToggleActivity flips completion state: completing when absent, undoing
// when present. Returns the resulting completed state.
func (s *ProgressService) ToggleActivity(userID uint, trackSlug string, input ActivityCompletionInput) (bool, error) {
	existing, err := s.ProgressRepo.FindActivityProgress(userID, trackSlug, input.DayNumber, input.ActivityIndex)
	if err == nil {
		if err := s.ProgressRepo.DeleteActivityProgress(existing); err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	_, _, err = s.CompleteActivity(userID, trackSlug, input)
	if err != nil {
		return false, err
	}
	return true, nil
}

// CompleteDay advances the user's progress after a finished day. CurrentDay
// never moves backwards, so replaying an old day only adds its points.
func (s *ProgressService) CompleteDay(userID uint, trackSlug string, input DayCompletionInput) (*model.TrackProgress, error) {
	track, err := s.Catalog.GetTrack(trackSlug)
	if err != nil {
		return nil, err
	}
	if input.DayNumber > track.DurationDays {
		return nil, util.ErrDayOutOfRange
	}

	progress, err := s.EnsureTrack(userID, trackSlug)
	if err != nil {
		return nil, err
	}

	// Completing the final day leaves currentDay at durationDays+1; that is
	// the finished-track signal, not an error.
	next := input.DayNumber + 1
	if next > progress.CurrentDay {
		progress.CurrentDay = next
	}
	progress.TotalPoints += input.Points
	progress.StreakDays = input.DayNumber
	progress.LevelNumber = progress.TotalPoints/pointsPerLevel + 1
	now := time.Now()
	progress.LastActivityAt = &now

	if err := s.ProgressRepo.UpdateTrackProgress(progress); err != nil {
		return nil, err
	}

	// Achievement evaluation must not block or fail day completion.
	go s.Achievements.EvaluateAndAward(userID, trackSlug, input.DayNumber)

	return progress, nil
}

// Summary returns the denormalized progress view for the user's track.
func (s *ProgressService) Summary(userID uint, trackSlug string) (*ProgressSummary, error) {
	track, err := s.Catalog.GetTrack(trackSlug)
	if err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.FindTrackProgress(userID, trackSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProgressSummary{
			TrackSlug:    trackSlug,
			TrackName:    track.Name,
			CurrentDay:   1,
			DurationDays: track.DurationDays,
			LevelNumber:  1,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	done := progress.CurrentDay - 1
	if done < 0 {
		done = 0
	}
	return &ProgressSummary{
		TrackSlug:      trackSlug,
		TrackName:      track.Name,
		CurrentDay:     progress.CurrentDay,
		DurationDays:   track.DurationDays,
		TotalPoints:    progress.TotalPoints,
		StreakDays:     progress.StreakDays,
		LevelNumber:    progress.LevelNumber,
		PercentDone:    done * 100 / track.DurationDays,
		LastActivityAt: progress.LastActivityAt,
	}, nil
}

// ActiveSummary resolves the user's active track before summarizing; a user
// with no active track gets nil without error.
func (s *ProgressService) ActiveSummary(userID uint) (*ProgressSummary, error) {
	progress, err := s.ProgressRepo.FindActiveTrackProgress(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Summary(userID, progress.TrackSlug)
}
