package service

import (
	"context"
	"testing"
	"time"

	"tarra_waitlist/internal/model"
	"tarra_waitlist/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ghostRow(name string, count int) model.LeaderboardRow {
	return model.LeaderboardRow{FirstName: name, ReferralCount: count, IsGhost: true}
}

func realRow(name string, count int) model.LeaderboardRow {
	return model.LeaderboardRow{FirstName: name, ReferralCount: count}
}

func TestLeaderboardService_RankOf(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		higher   int
		expected int
	}{
		{name: "top of the board", count: 60, higher: 0, expected: 1},
		{name: "mid board", count: 42, higher: 2, expected: 3},
		{name: "zero referrals", count: 0, higher: 25, expected: 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockParticipantRepository{}
			service := NewLeaderboardService(mockRepo, nil)

			mockRepo.On("CountWithMoreReferrals", mock.Anything, tt.count).
				Return(tt.higher, nil)

			rank, err := service.RankOf(context.Background(), &model.Participant{
				ReferralCount: tt.count,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, rank)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLeaderboardService_Leaderboard_PlacesRealBetweenGhosts(t *testing.T) {
	mockRepo := &mocks.MockParticipantRepository{}
	service := NewLeaderboardService(mockRepo, nil)

	// six seeded rows plus E at 42, already in store order
	mockRepo.On("GetLeaderboardRows", mock.Anything, 40).
		Return([]model.LeaderboardRow{
			ghostRow("Oluwaseun", 50),
			ghostRow("Chidi", 45),
			realRow("Emeka", 42),
			ghostRow("Fatima", 40),
			ghostRow("Adebayo", 35),
			ghostRow("Ayomide", 30),
			ghostRow("Blessing", 25),
		}, nil)

	entries, err := service.Leaderboard(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 7)
	assert.Equal(t, "Emeka", entries[2].FirstName)
	assert.False(t, entries[2].IsGhost)
	assert.Equal(t, 45, entries[1].ReferralCount)
	assert.Equal(t, 40, entries[3].ReferralCount)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
	mockRepo.AssertExpectations(t)
}

func TestLeaderboardService_Leaderboard_DefaultsAndClampsLimit(t *testing.T) {
	mockRepo := &mocks.MockParticipantRepository{}
	service := NewLeaderboardService(mockRepo, nil)

	mockRepo.On("GetLeaderboardRows", mock.Anything, defaultBoardSize*4).
		Return([]model.LeaderboardRow{}, nil).Once()
	_, err := service.Leaderboard(context.Background(), 0)
	assert.NoError(t, err)

	mockRepo.On("GetLeaderboardRows", mock.Anything, maxBoardSize*4).
		Return([]model.LeaderboardRow{}, nil).Once()
	_, err = service.Leaderboard(context.Background(), 5000)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestBlendUnion(t *testing.T) {
	rows := []model.LeaderboardRow{
		ghostRow("Oluwaseun", 50),
		realRow("Emeka", 42),
		ghostRow("Fatima", 40),
	}

	out := BlendUnion()(rows, 2)

	assert.Len(t, out, 2)
	assert.Equal(t, "Oluwaseun", out[0].FirstName)
	assert.Equal(t, "Emeka", out[1].FirstName)
}

func TestBlendGhostFloor(t *testing.T) {
	rows := []model.LeaderboardRow{
		ghostRow("Oluwaseun", 50),
		ghostRow("Chidi", 45),
		realRow("Emeka", 42),
		ghostRow("Fatima", 40),
		realRow("Ngozi", 38),
	}

	// floor is the 3rd ghost count (40): Ngozi at 38 drops, Emeka at 42 stays
	out := BlendGhostFloor(3)(rows, 10)

	names := make([]string, len(out))
	for i, row := range out {
		names[i] = row.FirstName
	}
	assert.Equal(t, []string{"Oluwaseun", "Chidi", "Emeka", "Fatima"}, names)
}

func TestBlendGhostFloor_NoGhostsAdmitsEveryone(t *testing.T) {
	rows := []model.LeaderboardRow{
		realRow("Emeka", 42),
		realRow("Ngozi", 0),
	}

	out := BlendGhostFloor(10)(rows, 10)

	assert.Len(t, out, 2)
}

func TestBlendTopByRecency(t *testing.T) {
	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-time.Hour)

	rows := []model.LeaderboardRow{
		{FirstName: "Amaka", ReferralCount: 10, CreatedAt: older},
		{FirstName: "Kelechi", ReferralCount: 10, CreatedAt: newer},
		{FirstName: "Sade", ReferralCount: 8, CreatedAt: newer},
	}

	out := BlendTopByRecency()(rows, 2)

	assert.Len(t, out, 2)
	assert.Equal(t, "Kelechi", out[0].FirstName)
	assert.Equal(t, "Amaka", out[1].FirstName)
}
