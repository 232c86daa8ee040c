package repository

import (
	"context"

	"github.com/talentmap/talentmap-api/internal/cache"
	"github.com/talentmap/talentmap-api/internal/models"
)

// ProfileRepositoryInterface defines the interface for profile data access operations.
type ProfileRepositoryInterface interface {
	ListProfiles(ctx context.Context) ([]*models.TalentProfile, error)
	GetProfile(ctx context.Context, id string) (*models.TalentProfile, error)
	InvalidateCache()
}

// ProfileRepository handles profile data access. Reads go through the
// profile cache unless it is disabled.
type ProfileRepository struct {
	dataSource   ProfileDataSource
	profileCache *cache.ProfileCache
}

// NewProfileRepository creates a new profile repository. A nil cache reads
// from the data source on every call.
func NewProfileRepository(dataSource ProfileDataSource, profileCache *cache.ProfileCache) *ProfileRepository {
	return &ProfileRepository{
		dataSource:   dataSource,
		profileCache: profileCache,
	}
}

// ListProfiles returns public copies of all profiles, newest first
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*models.TalentProfile, error) {
	var profiles []*models.TalentProfile
	var err error

	if r.profileCache != nil {
		profiles, err = r.profileCache.Get()
	} else {
		profiles, err = r.dataSource.ListProfiles(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*models.TalentProfile, 0, len(profiles))
	for _, p := range profiles {
		if p != nil {
			result = append(result, publicCopy(p))
		}
	}
	return result, nil
}

// GetProfile returns a public copy of a single profile
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*models.TalentProfile, error) {
	var profile *models.TalentProfile
	var err error

	if r.profileCache != nil {
		profile, err = r.profileCache.GetByID(id)
	} else {
		profile, err = r.dataSource.GetProfile(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	return publicCopy(profile), nil
}

// InvalidateCache triggers a background reload of the profile cache
func (r *ProfileRepository) InvalidateCache() {
	if r.profileCache != nil {
		_, _ = r.profileCache.ForceRefresh()
	}
}

// publicCopy makes a copy to avoid modifying cached data and hides the contact email
func publicCopy(p *models.TalentProfile) *models.TalentProfile {
	cp := *p
	cp.Email = ""
	return &cp
}
