package services

import (
	"context"

	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/repository"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"go.uber.org/zap"
)

// MemberService serves the signed-in member's own dashboard data
type MemberService struct {
	profiles       repository.ProfileRepositoryInterface
	collaborations repository.CollaborationRepositoryInterface
}

// NewMemberService creates a new MemberService
func NewMemberService(profiles repository.ProfileRepositoryInterface, collaborations repository.CollaborationRepositoryInterface) *MemberService {
	return &MemberService{
		profiles:       profiles,
		collaborations: collaborations,
	}
}

// Stats counts the member's skills, projects, badges and the collaboration
// requests they take part in as requester or receiver
func (s *MemberService) Stats(ctx context.Context, profileID string) (*models.MemberStats, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	requests, err := s.collaborations.ListForProfile(ctx, profileID)
	if err != nil {
		logger.LogError(err, "Failed to list collaborations for member stats",
			zap.String("profile_id", profileID))
		return nil, err
	}

	stats := &models.MemberStats{
		ProfileID:      profile.ID,
		Skills:         len(profile.Skills),
		Projects:       len(profile.Projects),
		Badges:         len(profile.Badges),
		Collaborations: len(requests),
	}
	for _, r := range requests {
		if r.ReceiverID == profileID && r.Status == models.CollaborationPending {
			stats.PendingReceived++
		}
	}

	return stats, nil
}
