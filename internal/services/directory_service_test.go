package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/services"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

func directoryProfiles() []*models.TalentProfile {
	return []*models.TalentProfile{
		{ID: "p1", FullName: "Ana Lopez", IsAvailable: true, Skills: []models.Skill{{Name: "React", Category: models.CategoryTechnical}}},
		{ID: "p2", FullName: "Leo Martin", Skills: []models.Skill{{Name: "Go", Category: models.CategoryTechnical}}},
		{ID: "p3", FullName: "Mina Park", IsAvailable: true, Bio: strPtr("Go and Postgres")},
		{ID: "p4", FullName: "Omar Diaz", IsAvailable: true, Skills: []models.Skill{{Name: "Go", Category: models.CategoryTechnical}}},
		{ID: "p5", FullName: "Zoe Kim", IsAvailable: true},
	}
}

func talentIDs(page *models.TalentPage) []string {
	ids := make([]string, 0, len(page.Talents))
	for _, t := range page.Talents {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestDirectoryService_Search_FirstPage(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(directoryProfiles(), nil).Once()

	page, err := service.Search(ctx, models.SearchQuery{}, 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, talentIDs(page))
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, page.PageButtons)
	assert.Equal(t, models.SearchQuery{}.Key(), page.QueryKey)
	mockRepo.AssertExpectations(t)
}

func TestDirectoryService_Search_FilteredPage(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()
	query := models.SearchQuery{AvailableOnly: true}

	mockRepo.On("ListProfiles", ctx).Return(directoryProfiles(), nil).Once()

	page, err := service.Search(ctx, query, 2, query.Key())
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p5"}, talentIDs(page))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.Page)
}

func TestDirectoryService_Search_FilterChangeResetsPage(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(directoryProfiles(), nil).Once()

	previous := models.SearchQuery{}.Key()
	page, err := service.Search(ctx, models.SearchQuery{SkillTerm: "go"}, 3, previous)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, []string{"p2", "p4"}, talentIDs(page))
}

func TestDirectoryService_Search_PageBeyondRangeIsClamped(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(directoryProfiles(), nil).Once()

	page, err := service.Search(ctx, models.SearchQuery{}, 99, "")
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []string{"p5"}, talentIDs(page))
}

func TestDirectoryService_Search_NoMatches(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(directoryProfiles(), nil).Once()

	page, err := service.Search(ctx, models.SearchQuery{SkillTerm: "cobol"}, 1, "")
	require.NoError(t, err)
	assert.Empty(t, page.Talents)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []int{1}, page.PageButtons)
}

func TestDirectoryService_Search_RepositoryError(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(nil, errors.New("db down")).Once()

	page, err := service.Search(ctx, models.SearchQuery{}, 1, "")
	assert.Error(t, err)
	assert.Nil(t, page)
}

func TestDirectoryService_Search_InvalidPageSize(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	cfg := testConfig()
	cfg.Directory.TalentsPerPage = 0
	service := services.NewDirectoryService(mockRepo, cfg)
	ctx := context.Background()

	mockRepo.On("ListProfiles", ctx).Return(directoryProfiles(), nil).Once()

	_, err := service.Search(ctx, models.SearchQuery{}, 1, "")
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestDirectoryService_GetTalent(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	service := services.NewDirectoryService(mockRepo, testConfig())
	ctx := context.Background()

	expected := &models.TalentProfile{ID: "p1", FullName: "Ana Lopez"}
	mockRepo.On("GetProfile", ctx, "p1").Return(expected, nil).Once()
	mockRepo.On("GetProfile", ctx, "missing").Return(nil, apperrors.NotFoundError("profile", "missing")).Once()

	profile, err := service.GetTalent(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, expected, profile)

	_, err = service.GetTalent(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	mockRepo.AssertExpectations(t)
}
