package auth

import (
	"testing"
	"time"

	"z2b/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		ClickSecret:      "click-secret",
		AccessExpiry:     time.Hour,
		RefreshExpiry:    24 * time.Hour,
		ClickTokenExpiry: time.Hour,
		Issuer:           "z2b-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, "user-1", "a@example.com")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	refresh, err := GenerateRefreshToken(cfg, "user-1")
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	userID, err := ParseRefreshToken(cfg, refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestClickTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateClickToken(cfg, "click-1", "ABCD1234")
	require.NoError(t, err)

	claims, err := ParseClickToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "click-1", claims.ClickID)
	assert.Equal(t, "ABCD1234", claims.ReferralCode)
}

func TestClickTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateClickToken(cfg, "click-1", "ABCD1234")
	require.NoError(t, err)

	other := testJWTConfig()
	other.ClickSecret = "someone-else"
	_, err = ParseClickToken(other, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, "user-1", "a@example.com")
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
