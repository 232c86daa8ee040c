package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/talentmap/talentmap-api/internal/models"
)

// MockProfileRepository is a mock implementation of ProfileRepositoryInterface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ListProfiles(ctx context.Context) ([]*models.TalentProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TalentProfile), args.Error(1)
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, id string) (*models.TalentProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TalentProfile), args.Error(1)
}

func (m *MockProfileRepository) InvalidateCache() {
	m.Called()
}

// MockCollaborationRepository is a mock implementation of CollaborationRepositoryInterface
type MockCollaborationRepository struct {
	mock.Mock
}

func (m *MockCollaborationRepository) ListForProfile(ctx context.Context, profileID string) ([]*models.CollaborationRequest, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CollaborationRequest), args.Error(1)
}

func (m *MockCollaborationRepository) GetByID(ctx context.Context, id string) (*models.CollaborationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaborationRequest), args.Error(1)
}

func (m *MockCollaborationRepository) Create(ctx context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaborationRequest), args.Error(1)
}

func (m *MockCollaborationRepository) UpdateStatus(ctx context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error) {
	args := m.Called(ctx, id, newStatus, expected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaborationRequest), args.Error(1)
}

// fakeStatsStore is an in-memory SkillStatsStore
type fakeStatsStore struct {
	stats  []models.SkillStat
	found  bool
	getErr error
	setErr error
	sets   int
}

func (f *fakeStatsStore) Get(_ context.Context) ([]models.SkillStat, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.stats, f.found, nil
}

func (f *fakeStatsStore) Set(_ context.Context, stats []models.SkillStat) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.stats = stats
	f.found = true
	return nil
}
