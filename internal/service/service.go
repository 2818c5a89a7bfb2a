package service

import (
	"context"
	"errors"

	"tarra_waitlist/internal/model"
)

var (
	ErrThrottled           = errors.New("too many signup attempts, try again later")
	ErrValidation          = errors.New("invalid signup request")
	ErrDuplicateEmail      = errors.New("email is already on the waitlist")
	ErrDuplicatePhone      = errors.New("phone number is already on the waitlist")
	ErrParticipantNotFound = errors.New("participant not found")
)

type Service struct {
	*WaitlistService
	*LeaderboardService
	*FraudService
	*GhostService
}

func NewService(waitlist *WaitlistService, leaderboard *LeaderboardService, fraud *FraudService, ghosts *GhostService) *Service {
	return &Service{
		WaitlistService:    waitlist,
		LeaderboardService: leaderboard,
		FraudService:       fraud,
		GhostService:       ghosts,
	}
}

type WaitlistServiceI interface {
	Signup(ctx context.Context, draft *model.ParticipantDraft, claimedCode, originKey string) (*model.Participant, error)
	Status(ctx context.Context, id string) (*model.ParticipantStatus, error)
	Recover(ctx context.Context, phone string) (*model.Participant, error)
}

type LeaderboardServiceI interface {
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	RankOf(ctx context.Context, p *model.Participant) (int, error)
}

type FraudServiceI interface {
	Audit(ctx context.Context, id string) (*model.AuditReport, error)
}

type GhostServiceI interface {
	SeedGhosts(ctx context.Context) (int, error)
}

type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, p *model.Participant) error
	GetParticipantByID(ctx context.Context, id string) (*model.Participant, error)
	GetParticipantByCode(ctx context.Context, code string) (*model.Participant, error)
	GetParticipantByEmail(ctx context.Context, email string) (*model.Participant, error)
	GetParticipantByPhone(ctx context.Context, phone string) (*model.Participant, error)
	GetRealParticipantByPhone(ctx context.Context, phone string) (*model.Participant, error)
	CountWithMoreReferrals(ctx context.Context, count int) (int, error)
	GetLeaderboardRows(ctx context.Context, limit int) ([]model.LeaderboardRow, error)
	GetDirectReferrals(ctx context.Context, code string) ([]*model.Participant, error)
	ResetGhosts(ctx context.Context, ghosts []*model.Participant) error
}

// Throttle gates signup attempts per network origin.
type Throttle interface {
	Allow(originKey string) bool
}
