package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_insight_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	account := &model.ServiceAccount{
		BaseModel: model.BaseModel{ID: 7},
		Name:      "grader-eu-1",
		Role:      model.RoleGrader,
	}

	token, err := GenerateJWT(account, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AccountID)
	assert.Equal(t, "grader-eu-1", claims.Name)
	assert.Equal(t, model.RoleGrader, claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	account := &model.ServiceAccount{Name: "reader-1", Role: model.RoleReader}

	token, err := GenerateJWT(account, "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	account := &model.ServiceAccount{Name: "reader-1", Role: model.RoleReader}

	token, err := GenerateJWT(account, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 3, ParseIntDefault("", 3))
	assert.Equal(t, 5, ParseIntDefault("5", 3))
	assert.Equal(t, 3, ParseIntDefault("five", 3))
}

func TestParseFloatDefault(t *testing.T) {
	assert.Equal(t, 80.0, ParseFloatDefault("", 80))
	assert.Equal(t, 72.5, ParseFloatDefault("72.5", 80))
	assert.Equal(t, 80.0, ParseFloatDefault("many", 80))
}
