package service

import (
	"context"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// UserProfile is the per-request read model the personalization engine
// consumes. It is rebuilt on every request and never cached.
type UserProfile struct {
	UserID          uint            `json:"userId"`
	HasBaseline     bool            `json:"hasBaseline"`
	TotalScore      int             `json:"totalScore"` // normalized 0-100
	CategoryScores  map[string]int  `json:"categoryScores"`
	TrackType       model.TrackType `json:"trackType"`
	CurrentTrack    string          `json:"currentTrack"`
	CurrentDay      int             `json:"currentDay"`
	Streak          int             `json:"streak"`
	TotalPoints     int             `json:"totalPoints"`
	FocusAreas      []string        `json:"focusAreas"`
	Difficulty      string          `json:"difficulty"`
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Location        string          `json:"location"`
}

type ProfileService struct {
	QuestionnaireRepo *repository.QuestionnaireRepository
	ProgressRepo      *repository.ProgressRepository
	PreferenceRepo    *repository.PreferenceRepository
	UserRepo          *repository.UserRepository
}

func NewProfileService(
	questionnaireRepo *repository.QuestionnaireRepository,
	progressRepo *repository.ProgressRepository,
	preferenceRepo *repository.PreferenceRepository,
	userRepo *repository.UserRepository,
) *ProfileService {
	return &ProfileService{
		QuestionnaireRepo: questionnaireRepo,
		ProgressRepo:      progressRepo,
		PreferenceRepo:    preferenceRepo,
		UserRepo:          userRepo,
	}
}

// BuildProfile assembles the profile from four independent reads issued
// concurrently. It returns (nil, nil) only when the user has no
// questionnaire result at all; missing progress, preferences or personal
// data are normal and default to neutral values.
func (s *ProfileService) BuildProfile(ctx context.Context, userID uint) (*UserProfile, error) {
	var (
		result   *model.QuestionnaireResult
		progress *model.TrackProgress
		pref     *model.UserPreference
		user     *model.User
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := s.QuestionnaireRepo.FindLatestByUser(userID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		result = r
		return nil
	})

	g.Go(func() error {
		p, err := s.ProgressRepo.FindActiveTrackProgress(userID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		progress = p
		return nil
	})

	g.Go(func() error {
		p, err := s.PreferenceRepo.FindByUser(userID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		pref = p
		return nil
	})

	g.Go(func() error {
		u, err := s.UserRepo.FindByID(userID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		user = u
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result == nil {
		// No baseline: callers synthesize BasicProfile instead of blocking.
		return nil, nil
	}

	profile := &UserProfile{
		UserID:         userID,
		HasBaseline:    true,
		TotalScore:     result.NormalizedScore,
		CategoryScores: result.Categories(),
		TrackType:      result.TrackType,
		CurrentDay:     1,
		Difficulty:     "medium",
		FocusAreas:     []string{},
	}

	if progress != nil {
		profile.CurrentTrack = progress.TrackSlug
		profile.CurrentDay = progress.CurrentDay
		profile.Streak = progress.StreakDays
		profile.TotalPoints = progress.TotalPoints
	}

	if pref != nil {
		profile.FocusAreas = pref.FocusAreaList()
		if pref.Difficulty != "" {
			profile.Difficulty = pref.Difficulty
		}
	}

	if user != nil {
		profile.Name = user.Name
		profile.Age = user.Age
		profile.Location = user.Location
	}

	return profile, nil
}

// BasicProfile is the moderate default used when a user has no
// questionnaire result: total 50, categories split 13/13/12/12.
func BasicProfile(userID uint) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		HasBaseline: false,
		TotalScore:  50,
		CategoryScores: map[string]int{
			model.CategoryComportamento: 13,
			model.CategoryVidaCotidiana: 13,
			model.CategoryRelacoes:      12,
			model.CategoryEspiritual:    12,
		},
		TrackType:  model.TrackEquilibrio,
		CurrentDay: 1,
		Difficulty: "medium",
		FocusAreas: []string{},
	}
}
