package repository

import (
	"context"

	"github.com/talentmap/talentmap-api/internal/database/postgres"
	"github.com/talentmap/talentmap-api/internal/models"
)

// PostgresDataSource implements ProfileDataSource and CollaborationDataSource using PostgreSQL
type PostgresDataSource struct {
	client *postgres.Client
}

var (
	_ ProfileDataSource       = (*PostgresDataSource)(nil)
	_ CollaborationDataSource = (*PostgresDataSource)(nil)
)

// NewPostgresDataSource creates a new PostgreSQL data source
func NewPostgresDataSource(client *postgres.Client) *PostgresDataSource {
	return &PostgresDataSource{
		client: client,
	}
}

// ListProfiles fetches all profiles from PostgreSQL
func (ds *PostgresDataSource) ListProfiles(ctx context.Context) ([]*models.TalentProfile, error) {
	return ds.client.ListProfiles(ctx)
}

// GetProfile fetches a single profile from PostgreSQL
func (ds *PostgresDataSource) GetProfile(ctx context.Context, id string) (*models.TalentProfile, error) {
	return ds.client.GetProfile(ctx, id)
}

// ListCollaborations fetches the requests a profile takes part in
func (ds *PostgresDataSource) ListCollaborations(ctx context.Context, profileID string) ([]*models.CollaborationRequest, error) {
	return ds.client.ListCollaborations(ctx, profileID)
}

// GetCollaboration fetches a single request
func (ds *PostgresDataSource) GetCollaboration(ctx context.Context, id string) (*models.CollaborationRequest, error) {
	return ds.client.GetCollaboration(ctx, id)
}

// CreateCollaboration inserts a new request
func (ds *PostgresDataSource) CreateCollaboration(ctx context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error) {
	return ds.client.CreateCollaboration(ctx, req)
}

// UpdateCollaborationStatus performs the predicate conditioned status update
func (ds *PostgresDataSource) UpdateCollaborationStatus(ctx context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error) {
	return ds.client.UpdateCollaborationStatus(ctx, id, newStatus, expected)
}
