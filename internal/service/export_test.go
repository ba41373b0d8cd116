package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"z2b/internal/models"
	"z2b/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMembersCSV(t *testing.T) {
	created := time.Date(2024, 3, 9, 22, 15, 0, 0, time.UTC)
	members := []models.Profile{
		{Email: "sipho@example.com", FullName: "Dlamini, Sipho", Status: "active", MembershipType: "paid", ReferralCode: "AB12CD34", TotalReferrals: 3, CreatedAt: created},
		{Email: "quote@example.com", FullName: `Lerato "Lee" M`, Status: "suspended", MembershipType: "free", ReferralCode: "ZZ99YY88", CreatedAt: created},
		{Email: "noname@example.com", Status: "active", MembershipType: "free", ReferralCode: "QQ11WW22", CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMembersCSV(&buf, members))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Email", "Name", "Status", "Membership", "Referral Code", "Total Referrals", "Created"}, records[0])
	assert.Equal(t, []string{"sipho@example.com", "Dlamini, Sipho", "active", "paid", "AB12CD34", "3", "2024-03-09"}, records[1])
	assert.Equal(t, `Lerato "Lee" M`, records[2][1])
	assert.Equal(t, "N/A", records[3][1])
	for _, r := range records {
		assert.Len(t, r, 7)
	}
}

func TestMembersCSVFilename(t *testing.T) {
	assert.Equal(t, "z2b-members-2024-12-31.csv", MembersCSVFilename(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
}

func TestWriteReferralsCSV(t *testing.T) {
	board := []repository.LeaderboardEntry{
		{FullName: "Mokoena, Thabo", Email: "thabo@example.com", ReferralCode: "TH4B0001", TotalReferrals: 12, ActiveReferrals: 10, PaidReferrals: 4},
		{Email: "anon@example.com", ReferralCode: "AN0N0001", TotalReferrals: 1, ActiveReferrals: 0, PaidReferrals: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReferralsCSV(&buf, board))
	assert.Contains(t, buf.String(), `"Mokoena, Thabo",thabo@example.com`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Referrer Name", "Referrer Email", "Referral Code", "Total Referrals", "Active Referrals", "Paid Referrals"}, records[0])
	assert.Equal(t, []string{"Mokoena, Thabo", "thabo@example.com", "TH4B0001", "12", "10", "4"}, records[1])
	assert.Equal(t, []string{"N/A", "anon@example.com", "AN0N0001", "1", "0", "0"}, records[2])
}

func TestReferralsCSVFilename(t *testing.T) {
	assert.Equal(t, "z2b-referrals-2025-01-02.csv", ReferralsCSVFilename(time.Date(2025, 1, 1, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))))
}
