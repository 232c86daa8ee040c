package services

import (
	"context"
	"fmt"
	"time"

	"github.com/talentmap/talentmap-api/config"
	"github.com/talentmap/talentmap-api/internal/discovery"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/repository"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"go.uber.org/zap"
)

// SkillStatsStore is a shared snapshot of the aggregated skill statistics
type SkillStatsStore interface {
	Get(ctx context.Context) ([]models.SkillStat, bool, error)
	Set(ctx context.Context, stats []models.SkillStat) error
}

// SkillsService aggregates skills across the directory
type SkillsService struct {
	profiles repository.ProfileRepositoryInterface
	stats    SkillStatsStore
	mapOpts  discovery.SkillMapOptions
}

// NewSkillsService creates a new SkillsService. stats may be nil, in which
// case every call aggregates from the profile repository.
func NewSkillsService(profiles repository.ProfileRepositoryInterface, stats SkillStatsStore, cfg *config.Config) *SkillsService {
	opts := discovery.DefaultSkillMapOptions()
	if cfg.Directory.SkillCloudLimit > 0 {
		opts.CloudLimit = cfg.Directory.SkillCloudLimit
	}
	if cfg.Directory.SkillBarsLimit > 0 {
		opts.BarsLimit = cfg.Directory.SkillBarsLimit
	}
	if cfg.Directory.SkillTopCategoryLimit > 0 {
		opts.TopCategoryLimit = cfg.Directory.SkillTopCategoryLimit
	}

	return &SkillsService{
		profiles: profiles,
		stats:    stats,
		mapOpts:  opts,
	}
}

// Stats returns the ranked skill statistics
func (s *SkillsService) Stats(ctx context.Context) ([]models.SkillStat, error) {
	if stats, ok := s.cachedStats(ctx); ok {
		return stats, nil
	}

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		logger.Error("Failed to load profiles for skill aggregation", zap.Error(err))
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	return s.aggregate(ctx, profiles), nil
}

// SkillMap returns the visualization payload of the skill map page
func (s *SkillsService) SkillMap(ctx context.Context) (*models.SkillMap, error) {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		logger.Error("Failed to load profiles for skill map", zap.Error(err))
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	// The summary and bars are derived from this profile list, so the stats
	// must come from it too. Aggregating here also refreshes the shared snapshot.
	stats := s.aggregate(ctx, profiles)

	skillMap := discovery.BuildSkillMapFromStats(profiles, stats, s.mapOpts)
	return &skillMap, nil
}

func (s *SkillsService) cachedStats(ctx context.Context) ([]models.SkillStat, bool) {
	if s.stats == nil {
		return nil, false
	}

	start := time.Now()
	stats, found, err := s.stats.Get(ctx)
	if err != nil {
		// Redis trouble degrades to aggregating locally
		logger.Warn("Skill stats cache unavailable", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	metrics.SkillAggregationDuration.WithLabelValues("cached").Observe(metrics.MeasureDuration(start))
	return stats, true
}

func (s *SkillsService) aggregate(ctx context.Context, profiles []*models.TalentProfile) []models.SkillStat {
	start := time.Now()
	stats := discovery.Aggregate(profiles)
	metrics.SkillAggregationDuration.WithLabelValues("computed").Observe(metrics.MeasureDuration(start))

	if s.stats != nil {
		if err := s.stats.Set(ctx, stats); err != nil {
			logger.Warn("Failed to store skill stats", zap.Error(err))
		}
	}

	logger.Debug("Skills aggregated",
		zap.Int("profiles", len(profiles)),
		zap.Int("unique_skills", len(stats)),
		zap.Duration("duration", time.Since(start)))

	return stats
}
