package service

import (
	"testing"

	"renova_backend/internal/config"
	"renova_backend/internal/model"
	"renova_backend/internal/util"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, testConfig())

	payload, err := auth.Register(RegisterInput{
		Name:     "João Silva",
		Email:    "joao@example.com",
		Password: "senhasegura",
		Age:      28,
		Location: "São Paulo",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, model.RoleUser, payload.User.Role)
	assert.Empty(t, payload.User.Password, "hash must not leak")

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := auth.Register(RegisterInput{
			Name:     "Outro João",
			Email:    "joao@example.com",
			Password: "outrasenha",
		})
		assert.ErrorIs(t, err, util.ErrEmailRegistered)
	})

	t.Run("login with right password", func(t *testing.T) {
		payload, err := auth.Login(LoginInput{Email: "joao@example.com", Password: "senhasegura"})
		require.NoError(t, err)
		assert.NotEmpty(t, payload.Token)

		claims, err := util.ParseJWT(payload.Token, "test-secret-test-secret-test-secret")
		require.NoError(t, err)
		assert.Equal(t, payload.User.ID, claims.UserID)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := auth.Login(LoginInput{Email: "joao@example.com", Password: "errada"})
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := auth.Login(LoginInput{Email: "ninguem@example.com", Password: "qualquer"})
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})
}

func TestLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, testConfig())

	payload, err := auth.Register(RegisterInput{
		Name:     "Conta Bloqueada",
		Email:    "bloqueada@example.com",
		Password: "senhasegura",
	})
	require.NoError(t, err)

	user, err := env.users.FindByID(payload.User.ID)
	require.NoError(t, err)
	user.Disabled = true
	require.NoError(t, env.users.Update(user))

	_, err = auth.Login(LoginInput{Email: "bloqueada@example.com", Password: "senhasegura"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
