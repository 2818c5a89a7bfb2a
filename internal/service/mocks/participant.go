package mocks

import (
	"context"

	"tarra_waitlist/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) CreateParticipant(ctx context.Context, p *model.Participant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParticipantRepository) GetParticipantByID(ctx context.Context, id string) (*model.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetParticipantByCode(ctx context.Context, code string) (*model.Participant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetParticipantByEmail(ctx context.Context, email string) (*model.Participant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetParticipantByPhone(ctx context.Context, phone string) (*model.Participant, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetRealParticipantByPhone(ctx context.Context, phone string) (*model.Participant, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) CountWithMoreReferrals(ctx context.Context, count int) (int, error) {
	args := m.Called(ctx, count)
	return args.Int(0), args.Error(1)
}

func (m *MockParticipantRepository) GetLeaderboardRows(ctx context.Context, limit int) ([]model.LeaderboardRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardRow), args.Error(1)
}

func (m *MockParticipantRepository) GetDirectReferrals(ctx context.Context, code string) ([]*model.Participant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ResetGhosts(ctx context.Context, ghosts []*model.Participant) error {
	args := m.Called(ctx, ghosts)
	return args.Error(0)
}

type MockThrottle struct {
	mock.Mock
}

func (m *MockThrottle) Allow(originKey string) bool {
	args := m.Called(originKey)
	return args.Bool(0)
}
