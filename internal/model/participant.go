package model

import (
	"strings"
	"time"
)

type Participant struct {
	ID            string
	ReferralCode  string
	FullName      string
	Email         string
	PhoneNumber   string
	Interests     []string
	ReferredBy    *string
	ReferralCount int
	IsGhost       bool
	CreatedAt     time.Time
}

// FirstName returns the public display token of the participant's name.
// Only this token is ever exposed on the leaderboard.
func (p *Participant) FirstName() string {
	return FirstToken(p.FullName)
}

// FirstToken returns the first whitespace-delimited token of a display name.
func FirstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ParticipantDraft carries the fields a signup request provides before the
// engine assigns an ID, a referral code and an attribution.
type ParticipantDraft struct {
	FullName    string
	Email       string
	PhoneNumber string
	Interests   []string
}

type ParticipantStatus struct {
	ReferralCode  string
	ReferralCount int
	Rank          int
}
