package repository

import (
	"context"

	"github.com/talentmap/talentmap-api/internal/models"
)

// ProfileDataSource defines the interface for profile data fetching.
// This allows switching between PostgreSQL and in-memory implementations.
type ProfileDataSource interface {
	// ListProfiles fetches all profiles with their skills, languages, projects,
	// passions and badges, newest first
	ListProfiles(ctx context.Context) ([]*models.TalentProfile, error)

	// GetProfile fetches a single profile with its relations
	GetProfile(ctx context.Context, id string) (*models.TalentProfile, error)
}

// CollaborationDataSource defines the interface for collaboration request storage
type CollaborationDataSource interface {
	// ListCollaborations returns every request where the profile is requester or receiver, newest first
	ListCollaborations(ctx context.Context, profileID string) ([]*models.CollaborationRequest, error)

	// GetCollaboration fetches a single request
	GetCollaboration(ctx context.Context, id string) (*models.CollaborationRequest, error)

	// CreateCollaboration stores a new request and returns the stored record
	CreateCollaboration(ctx context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error)

	// UpdateCollaborationStatus moves a request to newStatus only if its current
	// status is still expected. A mismatch yields ErrStoreConflict.
	UpdateCollaborationStatus(ctx context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error)
}
