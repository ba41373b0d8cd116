package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"z2b/internal/models"
	"z2b/internal/repository"
)

var (
	memberCSVHeader   = []string{"Email", "Name", "Status", "Membership", "Referral Code", "Total Referrals", "Created"}
	referralCSVHeader = []string{"Referrer Name", "Referrer Email", "Referral Code", "Total Referrals", "Active Referrals", "Paid Referrals"}
)

// WriteMembersCSV writes members as RFC 4180 CSV. Fields containing commas, quotes or
// newlines are quoted by encoding/csv.
func WriteMembersCSV(w io.Writer, members []models.Profile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(memberCSVHeader); err != nil {
		return err
	}
	for _, m := range members {
		name := m.FullName
		if name == "" {
			name = "N/A"
		}
		row := []string{
			m.Email,
			name,
			m.Status,
			m.MembershipType,
			m.ReferralCode,
			strconv.Itoa(m.TotalReferrals),
			m.CreatedAt.UTC().Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MembersCSVFilename is the download name for an export taken at t.
func MembersCSVFilename(t time.Time) string {
	return fmt.Sprintf("z2b-members-%s.csv", t.UTC().Format("2006-01-02"))
}

// WriteReferralsCSV writes leaderboard rows in board order.
func WriteReferralsCSV(w io.Writer, board []repository.LeaderboardEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(referralCSVHeader); err != nil {
		return err
	}
	for _, e := range board {
		name := e.FullName
		if name == "" {
			name = "N/A"
		}
		row := []string{
			name,
			e.Email,
			e.ReferralCode,
			strconv.Itoa(e.TotalReferrals),
			strconv.FormatInt(e.ActiveReferrals, 10),
			strconv.FormatInt(e.PaidReferrals, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReferralsCSVFilename(t time.Time) string {
	return fmt.Sprintf("z2b-referrals-%s.csv", t.UTC().Format("2006-01-02"))
}
