package service

import (
	"encoding/json"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type QuestionnaireSubmission struct {
	Answers        []Answer `json:"answers" binding:"required,min=1"`
	TotalTimeSpent int      `json:"totalTimeSpent" binding:"min=0"` // seconds
}

type QuestionnaireOutcome struct {
	Result          *model.QuestionnaireResult `json:"result"`
	RecommendedSlug string                     `json:"recommendedTrack"`
	TrackName       string                     `json:"trackName"`
	DurationDays    int                        `json:"durationDays"`
	MostAffected    string                     `json:"mostAffectedArea"`
}

type QuestionnaireService struct {
	QuestionnaireRepo *repository.QuestionnaireRepository
	Progress          *ProgressService
	Catalog           *CatalogService
}

func NewQuestionnaireService(repo *repository.QuestionnaireRepository, progress *ProgressService, catalog *CatalogService) *QuestionnaireService {
	return &QuestionnaireService{QuestionnaireRepo: repo, Progress: progress, Catalog: catalog}
}

// Submit validates and scores the questionnaire, persists the result as the
// user's new baseline and activates progress on the recommended track.
func (s *QuestionnaireService) Submit(userID uint, submission QuestionnaireSubmission) (*QuestionnaireOutcome, error) {
	if err := ValidateAnswers(submission.Answers); err != nil {
		return nil, err
	}

	score := Score(submission.Answers)

	rawAnswers, err := json.Marshal(submission.Answers)
	if err != nil {
		return nil, err
	}

	result := &model.QuestionnaireResult{
		UserID:             userID,
		TotalScore:         score.TotalScore,
		NormalizedScore:    score.NormalizedScore,
		ScoreComportamento: score.CategoryScores[model.CategoryComportamento],
		ScoreVidaCotidiana: score.CategoryScores[model.CategoryVidaCotidiana],
		ScoreRelacoes:      score.CategoryScores[model.CategoryRelacoes],
		ScoreEspiritual:    score.CategoryScores[model.CategoryEspiritual],
		TrackType:          score.TrackType,
		TotalTimeSpent:     submission.TotalTimeSpent,
		CompletedAt:        time.Now(),
		Answers:            rawAnswers,
	}
	if err := s.QuestionnaireRepo.Create(result); err != nil {
		return nil, err
	}

	slug := string(score.TrackType)
	if _, err := s.Progress.EnsureTrack(userID, slug); err != nil {
		// The baseline is saved; track activation can be retried on the
		// next content request.
		logger.Log.Warn("track activation after questionnaire failed",
			zap.Uint("user", userID), zap.String("track", slug), zap.Error(err))
	}

	track, err := s.Catalog.GetTrack(slug)
	if err != nil {
		return nil, err
	}

	return &QuestionnaireOutcome{
		Result:          result,
		RecommendedSlug: slug,
		TrackName:       track.Name,
		DurationDays:    track.DurationDays,
		MostAffected:    MostAffectedCategory(score.CategoryScores),
	}, nil
}

// Latest returns the user's current baseline, nil when none exists.
func (s *QuestionnaireService) Latest(userID uint) (*model.QuestionnaireResult, error) {
	result, err := s.QuestionnaireRepo.FindLatestByUser(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (s *QuestionnaireService) History(userID uint) ([]model.QuestionnaireResult, error) {
	return s.QuestionnaireRepo.ListByUser(userID)
}
