package util

import (
	"testing"
	"time"

	"renova_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 7},
		Email:     "maria@example.com",
		Role:      model.RoleAdmin,
	}

	token, err := GenerateJWT(user, "segredo-de-teste", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "segredo-de-teste")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateJWT(user, "segredo-certo", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "segredo-errado")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateJWT(user, "segredo", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "segredo")
	assert.Error(t, err)
}
