package service

import (
	"context"
	"testing"

	"z2b/internal/auth"
	"z2b/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9A-Z]{8}$`, code)
	}
}

func TestReferralAndShareURL(t *testing.T) {
	assert.Equal(t, "https://z2b.test/signup?ref=AB12CD34", ReferralURL("https://z2b.test", "AB12CD34"))
	assert.Equal(t, "https://z2b.test/content/c-1?ref=AB12CD34", ShareURL("https://z2b.test", "c-1", "AB12CD34"))
}

func TestTrackClick_UnknownCode(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.referral.TrackClick(context.Background(), "NOPE0000", "", meta)
	require.NoError(t, err)
	assert.False(t, res.Tracked)
	assert.Empty(t, res.ClickToken)

	res, err = env.referral.TrackClick(context.Background(), "  ", "", meta)
	require.NoError(t, err)
	assert.False(t, res.Tracked)

	var clicks int64
	env.db.Model(&models.ReferralClick{}).Count(&clicks)
	assert.Zero(t, clicks)
}

func TestTrackClick_RecordsEachLoad(t *testing.T) {
	env := newTestEnv(t)
	referrer := seedProfile(t, env.db, "referrer@example.com", "KNOWN001")

	res, err := env.referral.TrackClick(context.Background(), "known001", "content-42", meta)
	require.NoError(t, err)
	require.True(t, res.Tracked)
	claims, err := auth.ParseClickToken(&env.cfg.JWT, res.ClickToken)
	require.NoError(t, err)
	assert.Equal(t, "KNOWN001", claims.ReferralCode)

	click, err := env.referrals.GetClick(claims.ClickID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, click.ReferrerID)
	assert.Equal(t, "203.0.113.7", click.IPAddress)
	assert.Equal(t, "test-agent", click.UserAgent)
	require.NotNil(t, click.ContentID)
	assert.Equal(t, "content-42", *click.ContentID)
	assert.False(t, click.Converted)

	_, err = env.referral.TrackClick(context.Background(), "KNOWN001", "", meta)
	require.NoError(t, err)

	dash, err := env.referral.Dashboard(referrer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dash.Clicks)
	assert.Zero(t, dash.Conversions)
	assert.Equal(t, "https://z2b.test/signup?ref=KNOWN001", dash.ReferralURL)

	_, err = env.referral.Dashboard("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
