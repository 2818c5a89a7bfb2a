package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tarra_waitlist/internal/model"
	"tarra_waitlist/internal/repository"
	"tarra_waitlist/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func edge(name, phone string) *model.Participant {
	return &model.Participant{
		FullName:    name,
		PhoneNumber: phone,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestFraudService_FlagsFor_VolumeAnomaly(t *testing.T) {
	service := NewFraudService(nil, FraudConfig{VolumeThreshold: 3, PrefixLength: 7, PrefixThreshold: 10})
	referrer := &model.Participant{FullName: "Bola Ade"}

	edges := make([]*model.Participant, 4)
	for i := range edges {
		edges[i] = edge(fmt.Sprintf("Student %d", i), fmt.Sprintf("081%d2345678", i))
	}

	flags, _ := service.FlagsFor(referrer, edges)

	assert.Contains(t, flags, model.FlagVolumeAnomaly)
	assert.NotContains(t, flags, model.FlagNameCollision)
	assert.NotContains(t, flags, model.FlagPhonePrefixCluster)
}

func TestFraudService_FlagsFor_NameCollision(t *testing.T) {
	service := NewFraudService(nil, FraudConfig{VolumeThreshold: 100, PrefixLength: 7, PrefixThreshold: 10})
	referrer := &model.Participant{FullName: "Bola Ade"}

	edges := []*model.Participant{
		edge("Ada Obi", "08012345678"),
		edge("Bola Ade", "08098765432"),
	}

	flags, edgeFlags := service.FlagsFor(referrer, edges)

	assert.Contains(t, flags, model.FlagNameCollision)
	assert.Empty(t, edgeFlags[0])
	assert.Contains(t, edgeFlags[1], model.FlagNameCollision)
}

func TestFraudService_FlagsFor_PhonePrefixClustering(t *testing.T) {
	service := NewFraudService(nil, FraudConfig{VolumeThreshold: 100, PrefixLength: 7, PrefixThreshold: 2})
	referrer := &model.Participant{FullName: "Bola Ade"}

	// three numbers share the 0801234 prefix, one does not
	edges := []*model.Participant{
		edge("A One", "08012340001"),
		edge("B Two", "08012340002"),
		edge("C Three", "08012340003"),
		edge("D Four", "08099990004"),
	}

	flags, edgeFlags := service.FlagsFor(referrer, edges)

	assert.Contains(t, flags, model.FlagPhonePrefixCluster)
	// every member of the oversized group is flagged, the outsider is not
	for i := 0; i < 3; i++ {
		assert.Contains(t, edgeFlags[i], model.FlagPhonePrefixCluster)
	}
	assert.Empty(t, edgeFlags[3])
}

func TestFraudService_FlagsFor_CleanReferrer(t *testing.T) {
	service := NewFraudService(nil, DefaultFraudConfig())
	referrer := &model.Participant{FullName: "Bola Ade"}

	edges := []*model.Participant{
		edge("Ada Obi", "08012345678"),
		edge("Ngozi Eze", "07034567890"),
	}

	flags, edgeFlags := service.FlagsFor(referrer, edges)

	assert.Empty(t, flags)
	for _, f := range edgeFlags {
		assert.Empty(t, f)
	}
}

func TestFraudService_Audit(t *testing.T) {
	mockRepo := &mocks.MockParticipantRepository{}
	service := NewFraudService(mockRepo, FraudConfig{VolumeThreshold: 100, PrefixLength: 7, PrefixThreshold: 2})

	referrer := &model.Participant{
		ID:            "p-1",
		ReferralCode:  "AAAAA",
		FullName:      "Bola Ade",
		ReferralCount: 3,
	}
	mockRepo.On("GetParticipantByID", mock.Anything, "p-1").Return(referrer, nil)
	mockRepo.On("GetDirectReferrals", mock.Anything, "AAAAA").Return([]*model.Participant{
		edge("Ada Obi", "08012340001"),
		edge("Chinedu Okafor", "08012340002"),
		edge("Ngozi Eze", "08012340003"),
	}, nil)

	report, err := service.Audit(context.Background(), "p-1")

	assert.NoError(t, err)
	assert.Equal(t, "p-1", report.ParticipantID)
	assert.Equal(t, 3, report.ReferralCount)
	assert.Contains(t, report.Flags, model.FlagPhonePrefixCluster)
	assert.Len(t, report.Edges, 3)
	assert.Equal(t, "Ada", report.Edges[0].FirstName)
	for _, e := range report.Edges {
		assert.Contains(t, e.Flags, model.FlagPhonePrefixCluster)
	}
	mockRepo.AssertExpectations(t)
}

func TestFraudService_Audit_NotFound(t *testing.T) {
	mockRepo := &mocks.MockParticipantRepository{}
	service := NewFraudService(mockRepo, DefaultFraudConfig())

	mockRepo.On("GetParticipantByID", mock.Anything, "missing").
		Return(nil, repository.ErrNotFound)

	report, err := service.Audit(context.Background(), "missing")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}
