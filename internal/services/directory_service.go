package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/talentmap/talentmap-api/config"
	"github.com/talentmap/talentmap-api/internal/discovery"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/repository"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"github.com/talentmap/talentmap-api/pkg/pagination"
	"github.com/talentmap/talentmap-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DirectoryService serves the talent directory: faceted search plus paging
type DirectoryService struct {
	profiles   repository.ProfileRepositoryInterface
	pageSize   int
	maxButtons int
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(profiles repository.ProfileRepositoryInterface, cfg *config.Config) *DirectoryService {
	maxButtons := cfg.Directory.PagerMaxButtons
	if maxButtons <= 0 {
		maxButtons = pagination.DefaultMaxButtons
	}

	return &DirectoryService{
		profiles:   profiles,
		pageSize:   cfg.Directory.TalentsPerPage,
		maxButtons: maxButtons,
	}
}

// Search filters the directory and returns the requested page.
// previousKey is the QueryKey of the page the caller is looking at; when the
// filters differ from it the caller is sent back to the first page.
func (s *DirectoryService) Search(ctx context.Context, query models.SearchQuery, requestedPage int, previousKey string) (result *models.TalentPage, err error) {
	ctx, span := tracing.StartSpan(ctx, "directory.search", attribute.Bool("search.filtered", !query.IsEmpty()))
	defer func() { tracing.EndSpan(span, err) }()

	start := time.Now()

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		logger.Error("Failed to load profiles for search", zap.Error(err))
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	matched := discovery.Search(profiles, query)
	pageNumber := discovery.ResolvePage(previousKey, query, requestedPage)

	page, err := pagination.Paginate(matched, s.pageSize, pageNumber)
	if err != nil {
		return nil, err
	}

	metrics.TalentSearches.WithLabelValues(strconv.FormatBool(!query.IsEmpty())).Inc()
	metrics.TalentSearchResults.Observe(float64(len(matched)))

	logger.Debug("Talent search",
		zap.Int("total", len(profiles)),
		zap.Int("matched", len(matched)),
		zap.Int("requested_page", requestedPage),
		zap.Int("page", page.PageNumber),
		zap.Duration("duration", time.Since(start)))

	return &models.TalentPage{
		Talents:     page.Items,
		Total:       page.TotalItems,
		Page:        page.PageNumber,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		PageButtons: pagination.PageButtons(page.PageNumber, page.TotalPages, s.maxButtons),
		QueryKey:    query.Key(),
	}, nil
}

// GetTalent returns a single profile
func (s *DirectoryService) GetTalent(ctx context.Context, id string) (*models.TalentProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.TalentProfileViews.Inc()
	return profile, nil
}
