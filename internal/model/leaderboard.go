package model

import "time"

// LeaderboardRow is one candidate entry as read from the store, before the
// blending policy decides whether it appears on the public board.
type LeaderboardRow struct {
	FirstName     string
	ReferralCount int
	IsGhost       bool
	CreatedAt     time.Time
}

type LeaderboardEntry struct {
	Position      int
	FirstName     string
	ReferralCount int
	IsGhost       bool
}
