package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"github.com/talentmap/talentmap-api/pkg/retry"
	"go.uber.org/zap"
)

// ProfileSource defines where the cache loads profiles from
type ProfileSource interface {
	ListProfiles(ctx context.Context) ([]*models.TalentProfile, error)
}

const (
	profileKeyPrefix = "profile:id:"
	allProfilesKey   = "profile:all"
	metadataKey      = "profile:metadata"
	cacheCheckPeriod = 10 * time.Second
)

// CacheMetadata stores cache-wide information
type CacheMetadata struct {
	LastRefreshTime time.Time
	ProfileCount    int
	Version         int64
}

// ProfileCache keeps the full profile directory in memory.
// Profiles and the ordered id list never expire; the last good snapshot is
// served until a refresh replaces it. A snapshot older than the TTL triggers
// a background refresh on read.
type ProfileCache struct {
	cache       *gocache.Cache
	dataSource  ProfileSource
	retryConfig retry.Config
	mu          sync.RWMutex
	refreshing  bool
	ready       bool
	ttl         time.Duration
	lastRefresh time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewProfileCache creates a new profile cache
func NewProfileCache(dataSource ProfileSource, ttlSeconds int) *ProfileCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ProfileCache{
		cache:       gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		dataSource:  dataSource,
		retryConfig: retry.StoreConfig(),
		ttl:         ttl,
		stop:        make(chan struct{}),
	}
}

// Initialize performs initial cache population (synchronous, blocks until ready)
// Should be called during application startup before accepting requests
func (pc *ProfileCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing profile cache...")
	startTime := time.Now()

	profiles, err := retry.DoWithResult(ctx, pc.retryConfig, "profile_cache_init", func() ([]*models.TalentProfile, error) {
		return pc.dataSource.ListProfiles(ctx)
	})
	if err != nil {
		logger.Error("Failed to initialize profile cache", zap.Error(err))
		return err
	}

	pc.populateCache(profiles)

	pc.mu.Lock()
	pc.ready = true
	pc.lastRefresh = time.Now()
	pc.mu.Unlock()

	logger.Info("Profile cache initialized successfully",
		zap.Int("count", len(profiles)),
		zap.Duration("duration", time.Since(startTime)))

	// Start background refresh scheduler
	go pc.schedulePeriodicRefresh()

	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (pc *ProfileCache) IsReady() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.ready
}

// GetByID retrieves a single profile. Never reaches the data source.
func (pc *ProfileCache) GetByID(id string) (*models.TalentProfile, error) {
	if !pc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	data, found := pc.cache.Get(profileKeyPrefix + id)
	if !found {
		metrics.CacheMisses.WithLabelValues("profile_by_id").Inc()
		return nil, apperrors.NotFoundError("profile", id)
	}

	profile, ok := data.(*models.TalentProfile)
	if !ok {
		logger.Error("Invalid cache data type", zap.String("profile_id", id))
		pc.cache.Delete(profileKeyPrefix + id)
		return nil, fmt.Errorf("invalid cache data")
	}

	metrics.CacheHits.WithLabelValues("profile_by_id").Inc()
	return profile, nil
}

// Get retrieves all profiles in store order. Returns immediately, even if
// the data might be stale; a stale snapshot is refreshed in the background.
func (pc *ProfileCache) Get() ([]*models.TalentProfile, error) {
	if !pc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	idsData, found := pc.cache.Get(allProfilesKey)
	if !found {
		metrics.CacheMisses.WithLabelValues("profile_all").Inc()
		logger.Warn("Profile list missing from cache, refreshing")
		pc.triggerRefresh()
		return nil, fmt.Errorf("profile list not cached")
	}

	ids, ok := idsData.([]string)
	if !ok {
		logger.Error("Invalid cache data type for profile list")
		pc.triggerRefresh()
		return nil, fmt.Errorf("invalid cache data")
	}

	if pc.isStale() {
		pc.triggerRefresh()
	}

	metrics.CacheHits.WithLabelValues("profile_all").Inc()

	profiles := make([]*models.TalentProfile, 0, len(ids))
	for _, id := range ids {
		data, found := pc.cache.Get(profileKeyPrefix + id)
		if !found {
			logger.Debug("Profile missing from cache", zap.String("profile_id", id))
			continue
		}
		if profile, ok := data.(*models.TalentProfile); ok {
			profiles = append(profiles, profile)
		}
	}

	return profiles, nil
}

func (pc *ProfileCache) isStale() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return time.Since(pc.lastRefresh) > pc.ttl
}

// ForceRefresh triggers a background refresh and returns current data immediately
func (pc *ProfileCache) ForceRefresh() ([]*models.TalentProfile, error) {
	logger.Info("Force refresh requested, triggering background refresh")
	pc.triggerRefresh()
	return pc.Get()
}

// Stop ends the periodic refresh
func (pc *ProfileCache) Stop() {
	pc.stopOnce.Do(func() { close(pc.stop) })
}

func (pc *ProfileCache) triggerRefresh() {
	go func() {
		if err := pc.refreshInBackground(); err != nil {
			logger.Error("Background refresh failed", zap.Error(err))
		}
	}()
}

// schedulePeriodicRefresh runs background refresh at TTL intervals
func (pc *ProfileCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(pc.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-pc.stop:
			return
		case <-ticker.C:
			logger.Info("Starting scheduled cache refresh")
			if err := pc.refreshInBackground(); err != nil {
				// Don't stop the scheduler - will retry on next tick
				logger.Error("Scheduled cache refresh failed", zap.Error(err))
			}
		}
	}
}

// refreshInBackground performs non-blocking background refresh
func (pc *ProfileCache) refreshInBackground() error {
	pc.mu.Lock()
	if pc.refreshing {
		pc.mu.Unlock()
		logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	pc.refreshing = true
	pc.mu.Unlock()

	defer func() {
		pc.mu.Lock()
		pc.refreshing = false
		pc.mu.Unlock()
	}()

	startTime := time.Now()

	profiles, err := pc.dataSource.ListProfiles(context.Background())
	if err != nil {
		logger.Error("Failed to fetch profiles in background refresh", zap.Error(err))
		return err
	}

	pc.populateCache(profiles)

	pc.mu.Lock()
	pc.lastRefresh = time.Now()
	pc.mu.Unlock()

	logger.Info("Background refresh completed",
		zap.Int("count", len(profiles)),
		zap.Duration("duration", time.Since(startTime)))

	return nil
}

// populateCache stores all profiles with individual keys
func (pc *ProfileCache) populateCache(profiles []*models.TalentProfile) {
	ids := make([]string, 0, len(profiles))

	for _, profile := range profiles {
		if profile == nil {
			continue
		}
		pc.cache.Set(profileKeyPrefix+profile.ID, profile, gocache.NoExpiration)
		ids = append(ids, profile.ID)
	}

	pc.cache.Set(allProfilesKey, ids, gocache.NoExpiration)
	pc.evictMissing(ids)

	pc.cache.Set(metadataKey, &CacheMetadata{
		LastRefreshTime: time.Now(),
		ProfileCount:    len(ids),
		Version:         time.Now().Unix(),
	}, gocache.NoExpiration)

	metrics.CacheSize.WithLabelValues("profiles").Set(float64(len(ids)))
}

// evictMissing drops profiles that disappeared from the source
func (pc *ProfileCache) evictMissing(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[profileKeyPrefix+id] = struct{}{}
	}

	for key := range pc.cache.Items() {
		if !strings.HasPrefix(key, profileKeyPrefix) {
			continue
		}
		if _, ok := keep[key]; !ok {
			pc.cache.Delete(key)
		}
	}
}

// GetMetadata returns cache metadata
func (pc *ProfileCache) GetMetadata() (*CacheMetadata, error) {
	data, found := pc.cache.Get(metadataKey)
	if !found {
		return nil, fmt.Errorf("metadata not found")
	}

	metadata, ok := data.(*CacheMetadata)
	if !ok {
		return nil, fmt.Errorf("invalid metadata type")
	}

	return metadata, nil
}
