package service

import (
	"testing"

	"renova_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.preferences)
	user := env.createUser(t)

	updated, err := svc.UpdateProfile(user.ID, ProfileUpdateInput{Age: 31})
	require.NoError(t, err)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "Maria Teste", updated.Name, "omitted fields stay untouched")

	updated, err = svc.UpdateProfile(user.ID, ProfileUpdateInput{Name: "Maria Souza", Location: "Recife"})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", updated.Name)
	assert.Equal(t, "Recife", updated.Location)
	assert.Equal(t, 31, updated.Age)

	_, err = svc.UpdateProfile(9999, ProfileUpdateInput{Name: "Ninguém"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestPreferencesRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.preferences)
	user := env.createUser(t)

	t.Run("defaults before saving", func(t *testing.T) {
		pref, err := svc.GetPreferences(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "medium", pref.Difficulty)
		assert.Empty(t, pref.FocusAreaList())
	})

	t.Run("save and read back", func(t *testing.T) {
		_, err := svc.SavePreferences(user.ID, PreferenceInput{
			FocusAreas: []string{"oracao", "exercicio"},
			Difficulty: "hard",
		})
		require.NoError(t, err)

		pref, err := svc.GetPreferences(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "hard", pref.Difficulty)
		assert.Equal(t, []string{"oracao", "exercicio"}, pref.FocusAreaList())
	})

	t.Run("saving again replaces", func(t *testing.T) {
		_, err := svc.SavePreferences(user.ID, PreferenceInput{FocusAreas: []string{"leitura"}})
		require.NoError(t, err)

		pref, err := svc.GetPreferences(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "medium", pref.Difficulty)
		assert.Equal(t, []string{"leitura"}, pref.FocusAreaList())
	})
}
