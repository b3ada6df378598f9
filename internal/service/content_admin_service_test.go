package service

import (
	"context"
	"encoding/json"
	"testing"

	"renova_backend/internal/model"
	"renova_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDailyContentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := NewContentAdminService(env.contents, env.catalog)
	ctx := context.Background()
	slug := string(model.TrackLiberdade)

	content, err := admin.CreateDailyContent(ctx, DailyContentInput{
		TrackSlug: slug,
		DayNumber: 3,
		Title:     "Dia três",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, content.ID)
	assert.Equal(t, 100, content.MaxPoints, "defaults applied")
	assert.Equal(t, 3, content.DifficultyLevel)

	t.Run("readable through the catalog", func(t *testing.T) {
		found, err := env.catalog.GetDailyTemplate(ctx, slug, 3)
		require.NoError(t, err)
		assert.Equal(t, "Dia três", found.Title)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := admin.UpdateDailyContent(ctx, content.ID, DailyContentInput{
			TrackSlug: slug,
			DayNumber: 3,
			Title:     "Dia três revisado",
			MaxPoints: 150,
		})
		require.NoError(t, err)
		assert.Equal(t, "Dia três revisado", updated.Title)
		assert.Equal(t, 150, updated.MaxPoints)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, admin.DeleteDailyContent(ctx, content.ID))
		_, err := env.catalog.GetDailyTemplate(ctx, slug, 3)
		assert.ErrorIs(t, err, util.ErrDayNotAuthored)
	})
}

func TestAdminCreateContentValidatesTrack(t *testing.T) {
	env := newTestEnv(t)
	admin := NewContentAdminService(env.contents, env.catalog)
	ctx := context.Background()

	_, err := admin.CreateDailyContent(ctx, DailyContentInput{
		TrackSlug: "detox",
		DayNumber: 1,
		Title:     "Dia um",
	})
	assert.ErrorIs(t, err, util.ErrTrackNotFound)

	_, err = admin.CreateDailyContent(ctx, DailyContentInput{
		TrackSlug: string(model.TrackLiberdade),
		DayNumber: 8,
		Title:     "Dia oito",
	})
	assert.ErrorIs(t, err, util.ErrDayOutOfRange)
}

func TestAdminRuleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := NewContentAdminService(env.contents, env.catalog)
	ctx := context.Background()
	slug := string(model.TrackEquilibrio)

	cond, err := json.Marshal(model.RuleCondition{MostAffectedArea: model.CategoryRelacoes})
	require.NoError(t, err)
	override, err := json.Marshal(model.ContentOverride{Title: strPtr("Título ajustado")})
	require.NoError(t, err)

	rule, err := admin.CreateRule(ctx, RuleInput{
		TrackSlug: slug,
		DayNumber: 1,
		RuleType:  model.RuleAreaBased,
		Condition: cond,
		Content:   override,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)

	rules, err := env.catalog.GetRules(ctx, slug, 1)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	t.Run("update moves the rule to another day", func(t *testing.T) {
		_, err := admin.UpdateRule(ctx, rule.ID, RuleInput{
			TrackSlug: slug,
			DayNumber: 2,
			RuleType:  model.RuleAreaBased,
			Condition: cond,
			Content:   override,
		})
		require.NoError(t, err)

		rules, err := env.catalog.GetRules(ctx, slug, 1)
		require.NoError(t, err)
		assert.Empty(t, rules)

		rules, err = env.catalog.GetRules(ctx, slug, 2)
		require.NoError(t, err)
		assert.Len(t, rules, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, admin.DeleteRule(ctx, rule.ID))
		rules, err := env.catalog.GetRules(ctx, slug, 2)
		require.NoError(t, err)
		assert.Empty(t, rules)
	})
}
