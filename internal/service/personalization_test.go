package service

import (
	"context"
	"encoding/json"
	"testing"

	"renova_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testProfile() *UserProfile {
	return &UserProfile{
		UserID:      1,
		HasBaseline: true,
		TotalScore:  60,
		CategoryScores: map[string]int{
			model.CategoryComportamento: 20,
			model.CategoryVidaCotidiana: 15,
			model.CategoryRelacoes:      15,
			model.CategoryEspiritual:    10,
		},
		TrackType:  model.TrackEquilibrio,
		FocusAreas: []string{"oracao", "leitura"},
	}
}

func mustRule(t *testing.T, ruleType model.RuleType, cond model.RuleCondition, override model.ContentOverride, position int) model.PersonalizationRule {
	t.Helper()
	condData, err := json.Marshal(cond)
	require.NoError(t, err)
	content, err := json.Marshal(override)
	require.NoError(t, err)
	return model.PersonalizationRule{
		TrackSlug:     string(model.TrackEquilibrio),
		DayNumber:     1,
		Position:      position,
		RuleType:      ruleType,
		ConditionData: condData,
		Content:       content,
	}
}

func TestRuleMatching(t *testing.T) {
	profile := testProfile()

	t.Run("area based matches most affected", func(t *testing.T) {
		rule := mustRule(t, model.RuleAreaBased,
			model.RuleCondition{MostAffectedArea: model.CategoryComportamento},
			model.ContentOverride{}, 0)
		assert.True(t, ruleMatches(rule, profile))

		rule = mustRule(t, model.RuleAreaBased,
			model.RuleCondition{MostAffectedArea: model.CategoryEspiritual},
			model.ContentOverride{}, 0)
		assert.False(t, ruleMatches(rule, profile))
	})

	t.Run("score based with open bounds", func(t *testing.T) {
		rule := mustRule(t, model.RuleScoreBased,
			model.RuleCondition{MinScore: intPtr(50)},
			model.ContentOverride{}, 0)
		assert.True(t, ruleMatches(rule, profile), "missing max should default open")

		rule = mustRule(t, model.RuleScoreBased,
			model.RuleCondition{MaxScore: intPtr(59)},
			model.ContentOverride{}, 0)
		assert.False(t, ruleMatches(rule, profile))

		rule = mustRule(t, model.RuleScoreBased, model.RuleCondition{}, model.ContentOverride{}, 0)
		assert.True(t, ruleMatches(rule, profile), "no bounds matches everyone")
	})

	t.Run("score bounds are inclusive", func(t *testing.T) {
		rule := mustRule(t, model.RuleScoreBased,
			model.RuleCondition{MinScore: intPtr(60), MaxScore: intPtr(60)},
			model.ContentOverride{}, 0)
		assert.True(t, ruleMatches(rule, profile))
	})

	t.Run("preference based intersects focus areas", func(t *testing.T) {
		rule := mustRule(t, model.RulePreferenceBased,
			model.RuleCondition{FocusAreas: []string{"meditacao", "leitura"}},
			model.ContentOverride{}, 0)
		assert.True(t, ruleMatches(rule, profile))

		rule = mustRule(t, model.RulePreferenceBased,
			model.RuleCondition{FocusAreas: []string{"exercicio"}},
			model.ContentOverride{}, 0)
		assert.False(t, ruleMatches(rule, profile))
	})

	t.Run("unknown rule type never matches", func(t *testing.T) {
		rule := mustRule(t, model.RuleType("weather_based"), model.RuleCondition{}, model.ContentOverride{}, 0)
		assert.False(t, ruleMatches(rule, profile))
	})

	t.Run("malformed condition never matches", func(t *testing.T) {
		rule := model.PersonalizationRule{
			RuleType:      model.RuleAreaBased,
			ConditionData: json.RawMessage(`{not json`),
		}
		assert.False(t, ruleMatches(rule, profile))
	})
}

func TestApplyRulesLastMatchWinsPerField(t *testing.T) {
	base := model.DailyContent{
		Title:      "Título original",
		Verse:      "Versículo original",
		Reflection: "Reflexão original",
	}
	profile := testProfile()

	ruleA := mustRule(t, model.RuleScoreBased, model.RuleCondition{},
		model.ContentOverride{
			Title: strPtr("Título A"),
			Verse: strPtr("Versículo A"),
		}, 0)
	ruleB := mustRule(t, model.RuleAreaBased,
		model.RuleCondition{MostAffectedArea: model.CategoryComportamento},
		model.ContentOverride{
			Title: strPtr("Título B"),
		}, 1)

	merged := ApplyRules(base, profile, []model.PersonalizationRule{ruleA, ruleB})

	assert.Equal(t, "Título B", merged.Title, "later rule overrides earlier")
	assert.Equal(t, "Versículo A", merged.Verse, "field untouched by later rule survives")
	assert.Equal(t, "Reflexão original", merged.Reflection, "field no rule touches survives")
}

func TestApplyRulesNonMatchingLeavesBase(t *testing.T) {
	base := model.DailyContent{Title: "Título original"}
	profile := testProfile()

	rule := mustRule(t, model.RuleAreaBased,
		model.RuleCondition{MostAffectedArea: model.CategoryEspiritual},
		model.ContentOverride{Title: strPtr("Não deveria aparecer")}, 0)

	merged := ApplyRules(base, profile, []model.PersonalizationRule{rule})
	assert.Equal(t, "Título original", merged.Title)
}

func TestSynthesizeSkeleton(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	require.NoError(t, env.contents.CreateDailyContent(&model.DailyContent{
		TrackSlug:            string(model.TrackEquilibrio),
		DayNumber:            2,
		Title:                "Dia de prática",
		Objective:            "Praticar presença",
		Verse:                "Filipenses 4:6",
		Reflection:           "Reflexão",
		Prayer:               "Oração",
		MainActivityTitle:    "Atividade principal",
		MainActivityContent:  "Conteúdo principal",
		ChallengeTitle:       "Desafio",
		ChallengeDescription: "Descrição do desafio",
		MaxPoints:            100,
		DifficultyLevel:      3,
	}))
	submitBaseline(t, env, user.ID, 3)
	require.NoError(t, env.preferences.Upsert(&model.UserPreference{
		UserID:     user.ID,
		FocusAreas: json.RawMessage(`["oracao"]`),
		Difficulty: "medium",
	}))

	bundle := env.personalization.Synthesize(context.Background(), user.ID, string(model.TrackEquilibrio), 2)

	require.False(t, bundle.IsFallback)
	require.Len(t, bundle.Activities, 5)

	assert.Equal(t, "devotional", bundle.Activities[0].Type)
	assert.Equal(t, devotionalPoints, bundle.Activities[0].Points)
	assert.True(t, bundle.Activities[0].IsRequired)

	assert.Equal(t, "practice", bundle.Activities[1].Type)
	assert.Equal(t, 40, bundle.Activities[1].Points)

	assert.Equal(t, "challenge", bundle.Activities[2].Type)
	assert.Equal(t, 30, bundle.Activities[2].Points)

	assert.Equal(t, "focus", bundle.Activities[3].Type)
	assert.Equal(t, focusPoints, bundle.Activities[3].Points)

	assert.Equal(t, "personal", bundle.Activities[4].Type)
	assert.Equal(t, preferencePoints, bundle.Activities[4].Points)

	wantTime := 0
	wantPoints := 0
	for _, a := range bundle.Activities {
		wantTime += a.Duration
		wantPoints += a.Points
	}
	assert.Equal(t, wantTime, bundle.EstimatedTime)
	assert.Equal(t, wantPoints, bundle.Rewards.Points)
	assert.Equal(t, "Filipenses 4:6", bundle.Devotional.Verse)
}

func TestSynthesizeFallbackWhenDayNotAuthored(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	submitBaseline(t, env, user.ID, 3)

	bundle := env.personalization.Synthesize(context.Background(), user.ID, string(model.TrackEquilibrio), 5)

	require.True(t, bundle.IsFallback)
	require.Len(t, bundle.Activities, 3)
	assert.Equal(t, 35, bundle.EstimatedTime)
	assert.Equal(t, 5, bundle.DayNumber)
}

func TestSynthesizeWithoutBaselineUsesDefaults(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	require.NoError(t, env.contents.CreateDailyContent(&model.DailyContent{
		TrackSlug: string(model.TrackEquilibrio),
		DayNumber: 1,
		Title:     "Primeiro dia",
		Verse:     "Salmos 23:1",
		MaxPoints: 100,
	}))

	bundle := env.personalization.Synthesize(context.Background(), user.ID, string(model.TrackEquilibrio), 1)

	require.False(t, bundle.IsFallback)
	assert.Equal(t, "Primeiro dia", bundle.Title)
	assert.NotEmpty(t, bundle.Activities)
}

func TestSynthesizeMarksCompletedActivities(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	submitBaseline(t, env, user.ID, 3)

	require.NoError(t, env.contents.CreateDailyContent(&model.DailyContent{
		TrackSlug:         string(model.TrackEquilibrio),
		DayNumber:         1,
		Title:             "Dia um",
		MainActivityTitle: "Principal",
		MaxPoints:         100,
	}))

	_, _, err := env.progress.CompleteActivity(user.ID, string(model.TrackEquilibrio), ActivityCompletionInput{
		DayNumber:     1,
		ActivityIndex: 0,
		ActivityType:  "devotional",
		Points:        devotionalPoints,
	})
	require.NoError(t, err)

	bundle := env.personalization.Synthesize(context.Background(), user.ID, string(model.TrackEquilibrio), 1)

	require.NotEmpty(t, bundle.Activities)
	assert.True(t, bundle.Activities[0].Completed)
	for _, a := range bundle.Activities[1:] {
		assert.False(t, a.Completed)
	}
}

func TestSynthesizeSurvivesStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	bundle := env.personalization.Synthesize(context.Background(), user.ID, string(model.TrackEquilibrio), 1)

	require.NotNil(t, bundle)
	assert.True(t, bundle.IsFallback)
	assert.Len(t, bundle.Activities, 3)
}

func TestSynthesizeMilestoneReward(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	submitBaseline(t, env, user.ID, 3)

	require.NoError(t, env.contents.CreateDailyContent(&model.DailyContent{
		TrackSlug: string(model.TrackEquilibrio),
		DayNumber: 7,
		Title:     "Uma semana",
		MaxPoints: 100,
	}))

	bundle := env.personalization.Synthesize(context.Background(), user.ID, string(model.TrackEquilibrio), 7)
	assert.Equal(t, "Uma Semana de Equilíbrio", bundle.Rewards.Achievement)
}

func TestComputeDifficulty(t *testing.T) {
	t.Run("liberdade stays gentle", func(t *testing.T) {
		assert.Equal(t, "easy", ComputeDifficulty(string(model.TrackLiberdade), 1, 20))
		assert.Equal(t, "easy", ComputeDifficulty(string(model.TrackLiberdade), 7, 40))
		assert.Equal(t, "easy", ComputeDifficulty(string(model.TrackLiberdade), 7, 70))
	})

	t.Run("equilibrio escalates", func(t *testing.T) {
		assert.Equal(t, "easy", ComputeDifficulty(string(model.TrackEquilibrio), 1, 60))
		assert.Equal(t, "medium", ComputeDifficulty(string(model.TrackEquilibrio), 10, 60))
		assert.Equal(t, "hard", ComputeDifficulty(string(model.TrackEquilibrio), 21, 60))
	})

	t.Run("renovacao starts hard and eases", func(t *testing.T) {
		assert.Equal(t, "hard", ComputeDifficulty(string(model.TrackRenovacao), 1, 80))
		assert.Equal(t, "medium", ComputeDifficulty(string(model.TrackRenovacao), 25, 50))
	})

	t.Run("severity raises difficulty", func(t *testing.T) {
		low := ComputeDifficulty(string(model.TrackEquilibrio), 15, 20)
		high := ComputeDifficulty(string(model.TrackEquilibrio), 15, 90)
		assert.Equal(t, "medium", low)
		assert.Equal(t, "hard", high)
	})
}

func TestTrackMilestoneDaysSorted(t *testing.T) {
	days := TrackMilestoneDays(string(model.TrackRenovacao))
	require.NotEmpty(t, days)
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1], days[i])
	}
	assert.Equal(t, []int{1, 3, 7}, TrackMilestoneDays(string(model.TrackLiberdade)))
	assert.Empty(t, TrackMilestoneDays("inexistente"))
}
