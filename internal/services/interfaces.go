package services

import (
	"context"

	"github.com/talentmap/talentmap-api/internal/models"
)

// DirectoryServiceInterface defines the interface for talent directory operations
type DirectoryServiceInterface interface {
	Search(ctx context.Context, query models.SearchQuery, requestedPage int, previousKey string) (*models.TalentPage, error)
	GetTalent(ctx context.Context, id string) (*models.TalentProfile, error)
}

// SkillsServiceInterface defines the interface for skill aggregation operations
type SkillsServiceInterface interface {
	Stats(ctx context.Context) ([]models.SkillStat, error)
	SkillMap(ctx context.Context) (*models.SkillMap, error)
}

// CollaborationServiceInterface defines the interface for the collaboration request lifecycle
type CollaborationServiceInterface interface {
	Create(ctx context.Context, requesterID string, payload *models.CreateCollaborationRequest) (*models.CollaborationRequest, error)
	Accept(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error)
	Decline(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error)
	Complete(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error)
	Get(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error)
	List(ctx context.Context, profileID string) (*models.CollaborationLists, error)
}

// MemberServiceInterface defines the interface for the member dashboard
type MemberServiceInterface interface {
	Stats(ctx context.Context, profileID string) (*models.MemberStats, error)
}

// Ensure services implement their interfaces
var _ DirectoryServiceInterface = (*DirectoryService)(nil)
var _ SkillsServiceInterface = (*SkillsService)(nil)
var _ CollaborationServiceInterface = (*CollaborationService)(nil)
var _ MemberServiceInterface = (*MemberService)(nil)
