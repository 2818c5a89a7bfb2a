package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tarra_waitlist/internal/model"
	"tarra_waitlist/internal/repository"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type WaitlistService struct {
	repo     ParticipantRepository
	throttle Throttle
	codes    *CodeGenerator
	ranks    RankCalculator
}

// RankCalculator is the slice of the leaderboard engine the status page needs.
type RankCalculator interface {
	RankOf(ctx context.Context, p *model.Participant) (int, error)
}

func NewWaitlistService(repo ParticipantRepository, throttle Throttle, ranks RankCalculator) *WaitlistService {
	return &WaitlistService{
		repo:     repo,
		throttle: throttle,
		codes:    NewCodeGenerator(repo),
		ranks:    ranks,
	}
}

// Signup runs the full signup pipeline: throttle gate, validation, duplicate
// identity check, code issuance, referral attribution, store write. The
// duplicate check short-circuits before any counter can move; the referrer
// credit is the last statement of the store transaction.
func (s *WaitlistService) Signup(ctx context.Context, draft *model.ParticipantDraft, claimedCode, originKey string) (*model.Participant, error) {
	if !s.throttle.Allow(originKey) {
		return nil, ErrThrottled
	}

	email, phone, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, email, phone); err != nil {
		return nil, err
	}

	code, err := s.codes.Issue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue referral code: %w", err)
	}

	referredBy, err := s.resolveAttribution(ctx, claimedCode, code)
	if err != nil {
		return nil, err
	}

	p := &model.Participant{
		ID:           uuid.New().String(),
		ReferralCode: code,
		FullName:     strings.TrimSpace(draft.FullName),
		Email:        email,
		PhoneNumber:  phone,
		Interests:    draft.Interests,
		ReferredBy:   referredBy,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateParticipant(ctx, p); err != nil {
		// two requests can race past the duplicate check; the store's unique
		// indexes are the backstop
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return p, nil
}

func normalizeDraft(draft *model.ParticipantDraft) (email, phone string, err error) {
	if strings.TrimSpace(draft.FullName) == "" {
		return "", "", fmt.Errorf("%w: full name is required", ErrValidation)
	}

	email = strings.ToLower(strings.TrimSpace(draft.Email))
	if !emailPattern.MatchString(email) {
		return "", "", fmt.Errorf("%w: a valid email address is required", ErrValidation)
	}

	phone = NormalizePhone(draft.PhoneNumber)
	if len(phone) < 7 {
		return "", "", fmt.Errorf("%w: a valid phone number is required", ErrValidation)
	}

	return email, phone, nil
}

// NormalizePhone keeps a leading plus and digits, dropping the separators
// people paste from their contacts.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *WaitlistService) checkDuplicate(ctx context.Context, email, phone string) error {
	_, err := s.repo.GetParticipantByEmail(ctx, email)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	_, err = s.repo.GetParticipantByPhone(ctx, phone)
	if err == nil {
		return ErrDuplicatePhone
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check phone: %w", err)
	}

	return nil
}

// resolveAttribution validates a claimed referrer code. Empty claims,
// self-claims, unknown codes and ghost codes all resolve to no attribution,
// never to an error: a dangling code must not reveal which codes exist.
func (s *WaitlistService) resolveAttribution(ctx context.Context, claimedCode, ownCode string) (*string, error) {
	claimed := strings.ToUpper(strings.TrimSpace(claimedCode))
	if claimed == "" {
		return nil, nil
	}
	if claimed == ownCode {
		return nil, nil
	}

	referrer, err := s.repo.GetParticipantByCode(ctx, claimed)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up referrer: %w", err)
	}
	if referrer.IsGhost {
		// seeded rows set the competitive floor, they never collect credit
		return nil, nil
	}

	return &referrer.ReferralCode, nil
}

func (s *WaitlistService) Status(ctx context.Context, id string) (*model.ParticipantStatus, error) {
	p, err := s.repo.GetParticipantByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	rank, err := s.ranks.RankOf(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rank: %w", err)
	}

	return &model.ParticipantStatus{
		ReferralCode:  p.ReferralCode,
		ReferralCount: p.ReferralCount,
		Rank:          rank,
	}, nil
}

// Recover restores a lost identity by exact phone match. Not found is a
// routing signal steering the caller to signup, not a fault.
func (s *WaitlistService) Recover(ctx context.Context, phone string) (*model.Participant, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	}

	p, err := s.repo.GetRealParticipantByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to recover participant: %w", err)
	}

	return p, nil
}
