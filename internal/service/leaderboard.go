package service

import (
	"context"
	"fmt"
	"sort"

	"tarra_waitlist/internal/model"
)

// BlendPolicy decides how real and synthetic rows share one public board.
// It receives candidates already ordered by referral count descending, name
// ascending, and returns at most limit rows. The ranking math never changes
// across policies, only the selection does.
type BlendPolicy func(rows []model.LeaderboardRow, limit int) []model.LeaderboardRow

// BlendUnion shows everyone, real or synthetic, straight from the store order.
func BlendUnion() BlendPolicy {
	return func(rows []model.LeaderboardRow, limit int) []model.LeaderboardRow {
		if len(rows) > limit {
			rows = rows[:limit]
		}
		return rows
	}
}

// BlendGhostFloor admits a real entry only if it beats the nth highest
// synthetic count. Synthetic rows always stay on the board.
func BlendGhostFloor(n int) BlendPolicy {
	return func(rows []model.LeaderboardRow, limit int) []model.LeaderboardRow {
		floor := -1
		seen := 0
		for _, row := range rows {
			if row.IsGhost {
				seen++
				if seen == n {
					floor = row.ReferralCount
					break
				}
			}
		}

		out := make([]model.LeaderboardRow, 0, limit)
		for _, row := range rows {
			if !row.IsGhost && row.ReferralCount <= floor {
				continue
			}
			out = append(out, row)
			if len(out) == limit {
				break
			}
		}
		return out
	}
}

// BlendTopByRecency reorders ties by creation time, newest first, before
// truncating. Count order still dominates.
func BlendTopByRecency() BlendPolicy {
	return func(rows []model.LeaderboardRow, limit int) []model.LeaderboardRow {
		out := make([]model.LeaderboardRow, len(rows))
		copy(out, rows)
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].ReferralCount != out[j].ReferralCount {
				return out[i].ReferralCount > out[j].ReferralCount
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		if len(out) > limit {
			out = out[:limit]
		}
		return out
	}
}

const (
	defaultBoardSize = 10
	maxBoardSize     = 100
)

type LeaderboardService struct {
	repo  ParticipantRepository
	blend BlendPolicy
}

func NewLeaderboardService(repo ParticipantRepository, blend BlendPolicy) *LeaderboardService {
	if blend == nil {
		blend = BlendUnion()
	}
	return &LeaderboardService{
		repo:  repo,
		blend: blend,
	}
}

// RankOf is one more than the number of participants, synthetic included,
// with a strictly higher referral count. Ties share a rank.
func (s *LeaderboardService) RankOf(ctx context.Context, p *model.Participant) (int, error) {
	higher, err := s.repo.CountWithMoreReferrals(ctx, p.ReferralCount)
	if err != nil {
		return 0, fmt.Errorf("failed to count higher-ranked participants: %w", err)
	}
	return higher + 1, nil
}

func (s *LeaderboardService) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultBoardSize
	}
	if limit > maxBoardSize {
		limit = maxBoardSize
	}

	// overscan so a policy that drops rows can still fill the board
	rows, err := s.repo.GetLeaderboardRows(ctx, limit*4)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	rows = s.blend(rows, limit)

	entries := make([]model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.LeaderboardEntry{
			Position:      i + 1,
			FirstName:     row.FirstName,
			ReferralCount: row.ReferralCount,
			IsGhost:       row.IsGhost,
		}
	}

	return entries, nil
}
