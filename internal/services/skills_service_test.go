package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/services"
)

func skillProfiles() []*models.TalentProfile {
	return []*models.TalentProfile{
		{ID: "p1", FullName: "Ana", IsAvailable: true, Skills: []models.Skill{
			{Name: "React", Category: models.CategoryTechnical, Level: models.LevelAdvanced},
		}},
		{ID: "p2", FullName: "Leo", Skills: []models.Skill{
			{Name: "react", Category: models.CategoryTechnical, Level: models.LevelBeginner},
			{Name: "Go", Category: models.CategoryTechnical, Level: models.LevelExpert},
		}},
	}
}

func TestSkillsService_Stats_WithoutStore(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewSkillsService(mockRepo, nil, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(skillProfiles(), nil).Once()

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "React", stats[0].Name)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "Go", stats[1].Name)
	mockRepo.AssertExpectations(t)
}

func TestSkillsService_Stats_CachedSkipsRepository(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	store := &fakeStatsStore{found: true, stats: []models.SkillStat{{Key: "rust", Name: "Rust", Count: 7}}}
	service := services.NewSkillsService(mockRepo, store, testConfig())

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rust", stats[0].Name)
	mockRepo.AssertNotCalled(t, "ListProfiles")
}

func TestSkillsService_Stats_MissPopulatesStore(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	store := &fakeStatsStore{}
	service := services.NewSkillsService(mockRepo, store, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(skillProfiles(), nil).Once()

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.sets)
	assert.Equal(t, stats, store.stats)
}

func TestSkillsService_Stats_StoreErrorFallsBack(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	store := &fakeStatsStore{getErr: errors.New("connection refused"), setErr: errors.New("connection refused")}
	service := services.NewSkillsService(mockRepo, store, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(skillProfiles(), nil).Once()

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}

func TestSkillsService_Stats_RepositoryError(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewSkillsService(mockRepo, nil, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(nil, errors.New("db down")).Once()

	stats, err := service.Stats(ctx)
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestSkillsService_SkillMap(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	cfg := testConfig()
	cfg.Directory.SkillCloudLimit = 1
	service := services.NewSkillsService(mockRepo, nil, cfg)
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(skillProfiles(), nil).Once()

	skillMap, err := service.SkillMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SkillMapSummary{TalentCount: 2, UniqueSkills: 2, AvailableCount: 1}, skillMap.Summary)
	require.Len(t, skillMap.Cloud, 1)
	assert.Equal(t, "React", skillMap.Cloud[0].Name)
	assert.Len(t, skillMap.Bars, 2)
	assert.InDelta(t, 100.0, skillMap.Bars[0].Percentage, 0.001)
}

func TestSkillsService_SkillMapIgnoresStaleSnapshot(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	store := &fakeStatsStore{found: true, stats: []models.SkillStat{{Key: "rust", Name: "Rust", Count: 7}}}
	service := services.NewSkillsService(mockRepo, store, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(skillProfiles(), nil).Once()

	skillMap, err := service.SkillMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, skillMap.Summary.UniqueSkills)
	for _, bar := range skillMap.Bars {
		assert.NotEqual(t, "Rust", bar.Name)
	}
	assert.Equal(t, 1, store.sets)
}
