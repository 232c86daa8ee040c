package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"go.uber.org/zap"
)

// MemoryStore is an in-process implementation of both data sources.
// It backs offline mode and tests. Records are copied on the way in and out
// so callers never share memory with the store.
type MemoryStore struct {
	mu             sync.RWMutex
	profiles       map[string]*models.TalentProfile
	profileOrder   []string
	collaborations map[string]*models.CollaborationRequest
	insertSeq      map[string]int
	now            func() time.Time
}

var (
	_ ProfileDataSource       = (*MemoryStore)(nil)
	_ CollaborationDataSource = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:       make(map[string]*models.TalentProfile),
		collaborations: make(map[string]*models.CollaborationRequest),
		insertSeq:      make(map[string]int),
		now:            time.Now,
	}
}

// AddProfiles inserts or replaces profiles. Profiles without an id get one.
func (s *MemoryStore) AddProfiles(profiles ...*models.TalentProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range profiles {
		if p == nil {
			continue
		}
		cp := copyProfile(p)
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = s.now()
		}
		if _, exists := s.profiles[cp.ID]; !exists {
			s.profileOrder = append(s.profileOrder, cp.ID)
		}
		s.profiles[cp.ID] = cp
	}
}

// LoadProfilesJSON reads a JSON array of profiles into the store
func (s *MemoryStore) LoadProfilesJSON(r io.Reader) (int, error) {
	var profiles []*models.TalentProfile
	if err := json.NewDecoder(r).Decode(&profiles); err != nil {
		return 0, fmt.Errorf("failed to decode profiles: %w", err)
	}

	for i, p := range profiles {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("profile %d: %w", i, err)
		}
	}

	s.AddProfiles(profiles...)
	logger.Info("Loaded profiles into memory store", zap.Int("count", len(profiles)))
	return len(profiles), nil
}

// ListProfiles returns all profiles, newest first
func (s *MemoryStore) ListProfiles(_ context.Context) ([]*models.TalentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]*models.TalentProfile, 0, len(s.profileOrder))
	for _, id := range s.profileOrder {
		profiles = append(profiles, copyProfile(s.profiles[id]))
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})

	return profiles, nil
}

// GetProfile returns a single profile
func (s *MemoryStore) GetProfile(_ context.Context, id string) (*models.TalentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.NotFoundError("profile", id)
	}
	return copyProfile(p), nil
}

// ListCollaborations returns the requests a profile takes part in, newest first
func (s *MemoryStore) ListCollaborations(_ context.Context, profileID string) ([]*models.CollaborationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]*models.CollaborationRequest, 0)
	for _, r := range s.collaborations {
		if r.IsParty(profileID) {
			requests = append(requests, copyCollaboration(r))
		}
	}

	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return s.insertSeq[requests[i].ID] > s.insertSeq[requests[j].ID]
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	return requests, nil
}

// GetCollaboration returns a single request
func (s *MemoryStore) GetCollaboration(_ context.Context, id string) (*models.CollaborationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.collaborations[id]
	if !ok {
		return nil, apperrors.NotFoundError("collaboration", id)
	}
	return copyCollaboration(r), nil
}

// CreateCollaboration stores a new request. Both parties must exist.
func (s *MemoryStore) CreateCollaboration(_ context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[req.RequesterID]; !ok {
		return nil, apperrors.NotFoundError("profile", req.RequesterID)
	}
	if _, ok := s.profiles[req.ReceiverID]; !ok {
		return nil, apperrors.NotFoundError("profile", req.ReceiverID)
	}

	stored := copyCollaboration(req)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, exists := s.collaborations[stored.ID]; exists {
		return nil, apperrors.StoreConflictError("collaboration", stored.ID)
	}

	now := s.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.collaborations[stored.ID] = stored
	s.insertSeq[stored.ID] = len(s.insertSeq)

	return copyCollaboration(stored), nil
}

// UpdateCollaborationStatus performs the predicate update under the write lock
func (s *MemoryStore) UpdateCollaborationStatus(_ context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.collaborations[id]
	if !ok {
		return nil, apperrors.NotFoundError("collaboration", id)
	}
	if r.Status != expected {
		return nil, apperrors.StoreConflictError("collaboration", id)
	}

	r.Status = newStatus
	r.UpdatedAt = s.now()

	return copyCollaboration(r), nil
}

func copyProfile(p *models.TalentProfile) *models.TalentProfile {
	cp := *p
	cp.Skills = cloneSlice(p.Skills)
	cp.Languages = cloneSlice(p.Languages)
	cp.Projects = cloneSlice(p.Projects)
	for i := range cp.Projects {
		cp.Projects[i].Technologies = cloneSlice(p.Projects[i].Technologies)
	}
	cp.Passions = cloneSlice(p.Passions)
	cp.Badges = cloneSlice(p.Badges)
	return &cp
}

func copyCollaboration(r *models.CollaborationRequest) *models.CollaborationRequest {
	cp := *r
	cp.RequiredSkills = cloneSlice(r.RequiredSkills)
	if r.Message != nil {
		msg := *r.Message
		cp.Message = &msg
	}
	return &cp
}

// cloneSlice never returns nil so relations encode as empty JSON arrays
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
