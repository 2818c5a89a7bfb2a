package service

import (
	"context"
	"testing"

	"tarra_waitlist/internal/model"
	"tarra_waitlist/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGhostService_SeedGhosts(t *testing.T) {
	mockRepo := &mocks.MockParticipantRepository{}
	service := NewGhostService(mockRepo)

	var seeded []*model.Participant
	mockRepo.On("ResetGhosts", mock.Anything, mock.MatchedBy(func(ghosts []*model.Participant) bool {
		seeded = ghosts
		return len(ghosts) == 20
	})).Return(nil)

	n, err := service.SeedGhosts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 20, n)

	codes := make(map[string]bool)
	for i, g := range seeded {
		assert.True(t, g.IsGhost)
		assert.Nil(t, g.ReferredBy)
		assert.NotEmpty(t, g.ID)
		assert.False(t, codes[g.ReferralCode])
		codes[g.ReferralCode] = true

		if i < 10 {
			assert.GreaterOrEqual(t, g.ReferralCount, 40)
			assert.LessOrEqual(t, g.ReferralCount, 60)
		} else {
			assert.GreaterOrEqual(t, g.ReferralCount, 15)
			assert.LessOrEqual(t, g.ReferralCount, 30)
		}

		if i > 0 {
			// counters descend so seeded rank aligns with board order
			assert.LessOrEqual(t, g.ReferralCount, seeded[i-1].ReferralCount)
		}
	}
	mockRepo.AssertExpectations(t)
}

func TestGhostService_SeedGhosts_StoreError(t *testing.T) {
	mockRepo := &mocks.MockParticipantRepository{}
	service := NewGhostService(mockRepo)

	mockRepo.On("ResetGhosts", mock.Anything, mock.Anything).Return(assert.AnError)

	n, err := service.SeedGhosts(context.Background())

	assert.Zero(t, n)
	assert.ErrorIs(t, err, assert.AnError)
}
