package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", "alomda", "alomda", time.Hour, 24*time.Hour)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(42, "staff")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	token, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "staff", claims["role"])
	assert.Equal(t, "alomda", claims["iss"])

	token, err = a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(7, "staff")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err, "a refresh token must not pass access validation")

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err, "an access token must not pass refresh validation")
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	a := newTestAuthenticator()
	other := NewJWTAuthenticator("different", "different", "alomda", "alomda", time.Hour, time.Hour)

	access, _, err := a.GenerateTokens(7, "staff")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestValidateRejectsForeignIssuerAndAudience(t *testing.T) {
	a := newTestAuthenticator()
	foreign := NewJWTAuthenticator("access-secret", "refresh-secret", "someone-else", "someone-else", time.Hour, time.Hour)

	access, refresh, err := foreign.GenerateTokens(7, "staff")
	require.NoError(t, err)

	// Same secrets, wrong iss/aud claims.
	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)

	_, err = a.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	a := NewJWTAuthenticator("s", "r", "alomda", "alomda", -time.Minute, -time.Minute)

	access, _, err := a.GenerateTokens(7, "staff")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}
