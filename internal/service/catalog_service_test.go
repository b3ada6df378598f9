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

func TestListTracks(t *testing.T) {
	env := newTestEnv(t)

	tracks := env.catalog.ListTracks()
	require.Len(t, tracks, 3)

	durations := map[model.TrackType]int{}
	for _, track := range tracks {
		durations[track.Slug] = track.DurationDays
		assert.NotEmpty(t, track.Name)
		assert.NotEmpty(t, track.Phases)
	}
	assert.Equal(t, 7, durations[model.TrackLiberdade])
	assert.Equal(t, 21, durations[model.TrackEquilibrio])
	assert.Equal(t, 40, durations[model.TrackRenovacao])
}

func TestGetTrack(t *testing.T) {
	env := newTestEnv(t)

	track, err := env.catalog.GetTrack(string(model.TrackLiberdade))
	require.NoError(t, err)
	assert.Equal(t, model.TrackLiberdade, track.Slug)

	_, err = env.catalog.GetTrack("detox")
	assert.ErrorIs(t, err, util.ErrTrackNotFound)
}

func TestGetDailyTemplate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slug := string(model.TrackLiberdade)

	require.NoError(t, env.contents.CreateDailyContent(&model.DailyContent{
		TrackSlug: slug,
		DayNumber: 2,
		Title:     "Dia dois",
		MaxPoints: 100,
	}))

	t.Run("authored day", func(t *testing.T) {
		content, err := env.catalog.GetDailyTemplate(ctx, slug, 2)
		require.NoError(t, err)
		assert.Equal(t, "Dia dois", content.Title)
	})

	t.Run("unauthored day inside range", func(t *testing.T) {
		_, err := env.catalog.GetDailyTemplate(ctx, slug, 5)
		assert.ErrorIs(t, err, util.ErrDayNotAuthored)
	})

	t.Run("day outside track range", func(t *testing.T) {
		_, err := env.catalog.GetDailyTemplate(ctx, slug, 8)
		assert.ErrorIs(t, err, util.ErrDayNotAuthored)

		_, err = env.catalog.GetDailyTemplate(ctx, slug, 0)
		assert.ErrorIs(t, err, util.ErrDayNotAuthored)
	})

	t.Run("unknown track", func(t *testing.T) {
		_, err := env.catalog.GetDailyTemplate(ctx, "detox", 1)
		assert.ErrorIs(t, err, util.ErrTrackNotFound)
	})
}

func TestGetRulesOrdered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slug := string(model.TrackEquilibrio)

	cond, err := json.Marshal(model.RuleCondition{})
	require.NoError(t, err)
	content, err := json.Marshal(model.ContentOverride{Title: strPtr("x")})
	require.NoError(t, err)

	for _, position := range []int{2, 0, 1} {
		require.NoError(t, env.contents.CreateRule(&model.PersonalizationRule{
			TrackSlug:     slug,
			DayNumber:     1,
			Position:      position,
			RuleType:      model.RuleScoreBased,
			ConditionData: cond,
			Content:       content,
		}))
	}

	rules, err := env.catalog.GetRules(ctx, slug, 1)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	for i, rule := range rules {
		assert.Equal(t, i, rule.Position)
	}
}
