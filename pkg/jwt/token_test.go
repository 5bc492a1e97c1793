package jwtPkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	token, exp, err := Sign(map[string]interface{}{
		"id":       "u1",
		"username": "alice",
		"email":    "alice@example.com",
	}, time.Hour)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	parsed, err := ParseToken(token, "test-secret")
	require.NoError(t, err)

	data, err := LoginDataFromClaims(parsed.Claims.(jwt.MapClaims))
	require.NoError(t, err)
	assert.Equal(t, "u1", data.ID)
	assert.Equal(t, "alice", data.Username)
	assert.NotEmpty(t, data.TokenID)
	assert.Equal(t, exp, data.ExpiresAt.Unix())
}

func TestSignIssuesUniqueTokenIDs(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	data := map[string]interface{}{"id": "u1", "username": "alice"}
	a, _, err := Sign(data, time.Hour)
	require.NoError(t, err)
	b, _, err := Sign(data, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	token, _, err := Sign(map[string]interface{}{"id": "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestSignWithoutSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "")

	_, _, err := Sign(nil, time.Hour)
	assert.Error(t, err)
}

func TestLoginDataFromClaimsMissingFields(t *testing.T) {
	_, err := LoginDataFromClaims(jwt.MapClaims{"id": "u1"})
	assert.ErrorIs(t, err, ErrMissingClaims)
}
