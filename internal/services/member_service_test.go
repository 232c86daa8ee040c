package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/services"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

func TestMemberService_Stats(t *testing.T) {
	profiles := new(MockProfileRepository)
	collaborations := new(MockCollaborationRepository)
	svc := services.NewMemberService(profiles, collaborations)
	ctx := context.Background()

	profiles.On("GetProfile", ctx, "me").Return(&models.TalentProfile{
		ID:       "me",
		Skills:   []models.Skill{{Name: "Go"}, {Name: "SQL"}},
		Projects: []models.Project{{Title: "Talent map"}},
		Badges:   []models.Badge{{BadgeType: models.BadgeTypeVerified}},
	}, nil)
	collaborations.On("ListForProfile", ctx, "me").Return([]*models.CollaborationRequest{
		{ID: "c1", RequesterID: "other", ReceiverID: "me", Status: models.CollaborationPending},
		{ID: "c2", RequesterID: "me", ReceiverID: "other", Status: models.CollaborationPending},
		{ID: "c3", RequesterID: "other", ReceiverID: "me", Status: models.CollaborationAccepted},
	}, nil)

	stats, err := svc.Stats(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, &models.MemberStats{
		ProfileID:       "me",
		Skills:          2,
		Projects:        1,
		Badges:          1,
		Collaborations:  3,
		PendingReceived: 1,
	}, stats)

	profiles.AssertExpectations(t)
	collaborations.AssertExpectations(t)
}

func TestMemberService_Stats_UnknownProfile(t *testing.T) {
	profiles := new(MockProfileRepository)
	collaborations := new(MockCollaborationRepository)
	svc := services.NewMemberService(profiles, collaborations)
	ctx := context.Background()

	profiles.On("GetProfile", ctx, "ghost").Return(nil, apperrors.NotFoundError("profile", "ghost"))

	_, err := svc.Stats(ctx, "ghost")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	collaborations.AssertNotCalled(t, "ListForProfile", mock.Anything, mock.Anything)
}

func TestMemberService_Stats_StoreError(t *testing.T) {
	profiles := new(MockProfileRepository)
	collaborations := new(MockCollaborationRepository)
	svc := services.NewMemberService(profiles, collaborations)
	ctx := context.Background()

	profiles.On("GetProfile", ctx, "me").Return(&models.TalentProfile{ID: "me"}, nil)
	collaborations.On("ListForProfile", ctx, "me").Return(nil, errors.New("connection reset"))

	_, err := svc.Stats(ctx, "me")
	assert.Error(t, err)
}
