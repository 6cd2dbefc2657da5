package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty_portal/internal/domain"
)

func TestGenerateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(5, domain.RoleAdmin, "secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(pair.Access, "secret", AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, err = ParseJWT(pair.Refresh, "secret", AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ParseJWT(pair.Access, "secret", RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseJWT_Rejects(t *testing.T) {
	token, err := GenerateJWT(1, domain.RoleUser, AccessToken, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "other", AccessToken)
	assert.Error(t, err)

	expired, err := GenerateJWT(1, domain.RoleUser, AccessToken, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret", AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseJWT("not-a-token", "secret", AccessToken)
	assert.Error(t, err)
}
