package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"tarra_waitlist/internal/model"

	"github.com/google/uuid"
)

// ghostNames seed the public board with a believable campus cohort.
var ghostNames = []string{
	"Oluwaseun A.", "Chidi O.", "Fatima B.", "Adebayo S.", "Ayomide M.",
	"Blessing J.", "Ibrahim K.", "Zainab T.", "Tunde R.", "Ngozi E.",
	"Ayo D.", "Bisi L.", "Umar P.", "Kelechi W.", "Sade V.",
	"Musa Q.", "Ifunanya G.", "Kayode H.", "Amaka N.", "Yusuf X.",
}

type GhostService struct {
	repo ParticipantRepository
}

func NewGhostService(repo ParticipantRepository) *GhostService {
	return &GhostService{repo: repo}
}

// SeedGhosts wipes every synthetic row and reseeds the competitive floor:
// ten rows at 40-60 referrals, ten at 15-30, counters descending. Ghost rows
// never carry an attribution and never receive one.
func (s *GhostService) SeedGhosts(ctx context.Context) (int, error) {
	counts := make([]int, 0, len(ghostNames))
	for i := 0; i < 10; i++ {
		counts = append(counts, 40+rand.Intn(21))
	}
	for i := 0; i < 10; i++ {
		counts = append(counts, 15+rand.Intn(16))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	now := time.Now().UTC()
	ghosts := make([]*model.Participant, len(ghostNames))
	for i, name := range ghostNames {
		ghosts[i] = &model.Participant{
			ID:            uuid.New().String(),
			ReferralCode:  fmt.Sprintf("GHOST%d", i),
			FullName:      name,
			Email:         fmt.Sprintf("ghost%d@student.oauife.edu.ng", i),
			PhoneNumber:   fmt.Sprintf("080%08d", rand.Intn(90000000)+10000000),
			Interests:     []string{"Buyer", "Seller"},
			ReferralCount: counts[i],
			IsGhost:       true,
			CreatedAt:     now,
		}
	}

	if err := s.repo.ResetGhosts(ctx, ghosts); err != nil {
		return 0, fmt.Errorf("failed to reset ghosts: %w", err)
	}

	return len(ghosts), nil
}
