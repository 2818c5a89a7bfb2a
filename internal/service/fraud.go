package service

import (
	"context"
	"errors"
	"fmt"

	"tarra_waitlist/internal/model"
	"tarra_waitlist/internal/repository"
)

// FraudConfig tunes the read-time heuristics. Flags are advisory: they route
// a referrer to human review and never block a write.
type FraudConfig struct {
	// VolumeThreshold flags referrers with more direct edges than this.
	VolumeThreshold int
	// PrefixLength is the number of leading phone digits grouped together.
	PrefixLength int
	// PrefixThreshold flags every member of a prefix group larger than this.
	PrefixThreshold int
}

func DefaultFraudConfig() FraudConfig {
	return FraudConfig{
		VolumeThreshold: 20,
		PrefixLength:    7,
		PrefixThreshold: 2,
	}
}

type FraudService struct {
	repo ParticipantRepository
	cfg  FraudConfig
}

func NewFraudService(repo ParticipantRepository, cfg FraudConfig) *FraudService {
	if cfg.VolumeThreshold <= 0 {
		cfg.VolumeThreshold = DefaultFraudConfig().VolumeThreshold
	}
	if cfg.PrefixLength <= 0 {
		cfg.PrefixLength = DefaultFraudConfig().PrefixLength
	}
	if cfg.PrefixThreshold <= 0 {
		cfg.PrefixThreshold = DefaultFraudConfig().PrefixThreshold
	}
	return &FraudService{repo: repo, cfg: cfg}
}

// FlagsFor returns the referrer-level flag set plus per-edge flags aligned
// with the edges slice.
func (s *FraudService) FlagsFor(p *model.Participant, edges []*model.Participant) ([]model.FlagKind, [][]model.FlagKind) {
	var flags []model.FlagKind

	if len(edges) > s.cfg.VolumeThreshold {
		flags = append(flags, model.FlagVolumeAnomaly)
	}

	prefixGroups := make(map[string]int)
	for _, e := range edges {
		prefixGroups[s.phonePrefix(e.PhoneNumber)]++
	}

	edgeFlags := make([][]model.FlagKind, len(edges))
	nameCollision := false
	clustered := false
	for i, e := range edges {
		if e.FullName == p.FullName {
			edgeFlags[i] = append(edgeFlags[i], model.FlagNameCollision)
			nameCollision = true
		}
		if prefixGroups[s.phonePrefix(e.PhoneNumber)] > s.cfg.PrefixThreshold {
			edgeFlags[i] = append(edgeFlags[i], model.FlagPhonePrefixCluster)
			clustered = true
		}
	}

	if nameCollision {
		flags = append(flags, model.FlagNameCollision)
	}
	if clustered {
		flags = append(flags, model.FlagPhonePrefixCluster)
	}

	return flags, edgeFlags
}

func (s *FraudService) phonePrefix(phone string) string {
	if len(phone) <= s.cfg.PrefixLength {
		return phone
	}
	return phone[:s.cfg.PrefixLength]
}

// Audit assembles the admin drill-down for one referrer: its direct edges,
// newest first, annotated with every heuristic that fires.
func (s *FraudService) Audit(ctx context.Context, id string) (*model.AuditReport, error) {
	p, err := s.repo.GetParticipantByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	edges, err := s.repo.GetDirectReferrals(ctx, p.ReferralCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get referral edges: %w", err)
	}

	flags, edgeFlags := s.FlagsFor(p, edges)

	report := &model.AuditReport{
		ParticipantID: p.ID,
		FullName:      p.FullName,
		ReferralCount: p.ReferralCount,
		Flags:         flags,
		Edges:         make([]model.ReferralEdge, len(edges)),
	}

	for i, e := range edges {
		report.Edges[i] = model.ReferralEdge{
			FirstName:   e.FirstName(),
			FullName:    e.FullName,
			PhoneNumber: e.PhoneNumber,
			CreatedAt:   e.CreatedAt,
			Flags:       edgeFlags[i],
		}
	}

	return report, nil
}
