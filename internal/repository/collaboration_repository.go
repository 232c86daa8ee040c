package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

// CollaborationRepositoryInterface defines the interface for collaboration request data access.
type CollaborationRepositoryInterface interface {
	ListForProfile(ctx context.Context, profileID string) ([]*models.CollaborationRequest, error)
	GetByID(ctx context.Context, id string) (*models.CollaborationRequest, error)
	Create(ctx context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error)
	UpdateStatus(ctx context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error)
}

// CollaborationRepository handles collaboration request data access
type CollaborationRepository struct {
	dataSource CollaborationDataSource
}

// NewCollaborationRepository creates a new collaboration repository
func NewCollaborationRepository(dataSource CollaborationDataSource) *CollaborationRepository {
	return &CollaborationRepository{
		dataSource: dataSource,
	}
}

// ListForProfile retrieves every request the profile takes part in
func (r *CollaborationRepository) ListForProfile(ctx context.Context, profileID string) ([]*models.CollaborationRequest, error) {
	return r.dataSource.ListCollaborations(ctx, profileID)
}

// GetByID retrieves a single request. Malformed ids cannot exist and are reported as not found.
func (r *CollaborationRepository) GetByID(ctx context.Context, id string) (*models.CollaborationRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundError("collaboration", id)
	}
	return r.dataSource.GetCollaboration(ctx, id)
}

// Create stores a new request, assigning an id when missing
func (r *CollaborationRepository) Create(ctx context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return r.dataSource.CreateCollaboration(ctx, req)
}

// UpdateStatus performs the predicate conditioned status update
func (r *CollaborationRepository) UpdateStatus(ctx context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundError("collaboration", id)
	}
	return r.dataSource.UpdateCollaborationStatus(ctx, id, newStatus, expected)
}
