package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	anaID   = "11111111-1111-1111-1111-111111111111"
	brunoID = "22222222-2222-2222-2222-222222222222"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()

	store := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.AddProfiles(
		&models.TalentProfile{ID: anaID, FullName: "Ana", Email: "ana@example.com", CreatedAt: base},
		&models.TalentProfile{ID: brunoID, FullName: "Bruno", CreatedAt: base.Add(time.Hour)},
	)
	return store
}

func TestMemoryStore_ListProfilesNewestFirst(t *testing.T) {
	store := seededStore(t)

	profiles, err := store.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Bruno", profiles[0].FullName)
	assert.Equal(t, "Ana", profiles[1].FullName)
	assert.NotNil(t, profiles[0].Skills)
	assert.Empty(t, profiles[0].Skills)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	p, err := store.GetProfile(ctx, anaID)
	require.NoError(t, err)
	p.FullName = "changed"

	again, err := store.GetProfile(ctx, anaID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.FullName)
}

func TestMemoryStore_GetProfileNotFound(t *testing.T) {
	_, err := seededStore(t).GetProfile(context.Background(), "missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestMemoryStore_LoadProfilesJSON(t *testing.T) {
	store := NewMemoryStore()
	n, err := store.LoadProfilesJSON(strings.NewReader(`[{"fullName":"Chen","skills":[{"name":"Go","category":"technical","level":"expert"}]}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	profiles, err := store.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.NotEmpty(t, profiles[0].ID)
	assert.Equal(t, "Go", profiles[0].Skills[0].Name)

	_, err = store.LoadProfilesJSON(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestMemoryStore_CreateCollaborationRequiresParties(t *testing.T) {
	store := seededStore(t)

	_, err := store.CreateCollaboration(context.Background(), &models.CollaborationRequest{
		RequesterID: anaID,
		ReceiverID:  "33333333-3333-3333-3333-333333333333",
		Status:      models.CollaborationPending,
	})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestMemoryStore_CollaborationLifecycle(t *testing.T) {
	Convey("Given a store with two profiles", t, func() {
		store := seededStore(t)
		ctx := context.Background()

		Convey("When Ana sends a request to Bruno", func() {
			created, err := store.CreateCollaboration(ctx, &models.CollaborationRequest{
				RequesterID:  anaID,
				ReceiverID:   brunoID,
				ProjectTitle: "Skill map",
				Status:       models.CollaborationPending,
			})
			So(err, ShouldBeNil)
			So(created.ID, ShouldNotBeEmpty)
			So(created.CreatedAt.IsZero(), ShouldBeFalse)

			Convey("Then both parties see it", func() {
				forAna, err := store.ListCollaborations(ctx, anaID)
				So(err, ShouldBeNil)
				So(forAna, ShouldHaveLength, 1)

				forBruno, err := store.ListCollaborations(ctx, brunoID)
				So(err, ShouldBeNil)
				So(forBruno, ShouldHaveLength, 1)
			})

			Convey("Then an update conditioned on the current status succeeds", func() {
				updated, err := store.UpdateCollaborationStatus(ctx, created.ID, models.CollaborationAccepted, models.CollaborationPending)
				So(err, ShouldBeNil)
				So(updated.Status, ShouldEqual, models.CollaborationAccepted)

				Convey("And a second update from pending conflicts", func() {
					_, err := store.UpdateCollaborationStatus(ctx, created.ID, models.CollaborationDeclined, models.CollaborationPending)
					So(apperrors.KindOf(err), ShouldEqual, apperrors.KindStoreConflict)
				})
			})
		})

		Convey("When updating an unknown request", func() {
			_, err := store.UpdateCollaborationStatus(ctx, "nope", models.CollaborationAccepted, models.CollaborationPending)

			Convey("Then it is not found", func() {
				So(apperrors.KindOf(err), ShouldEqual, apperrors.KindNotFound)
			})
		})
	})
}

func TestMemoryStore_ListCollaborationsTieBreaksOnInsertOrder(t *testing.T) {
	store := seededStore(t)
	fixed := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := store.CreateCollaboration(ctx, &models.CollaborationRequest{RequesterID: anaID, ReceiverID: brunoID, ProjectTitle: "first"})
	require.NoError(t, err)
	second, err := store.CreateCollaboration(ctx, &models.CollaborationRequest{RequesterID: brunoID, ReceiverID: anaID, ProjectTitle: "second"})
	require.NoError(t, err)

	list, err := store.ListCollaborations(ctx, anaID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestMemoryStore_ConcurrentConditionalUpdate(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	created, err := store.CreateCollaboration(ctx, &models.CollaborationRequest{
		RequesterID: anaID,
		ReceiverID:  brunoID,
		Status:      models.CollaborationPending,
	})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.UpdateCollaborationStatus(ctx, created.ID, models.CollaborationAccepted, models.CollaborationPending); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestMemoryStore_LoadProfilesJSONRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "category typo", body: `[{"fullName":"Chen","skills":[{"name":"Go","category":"tecnical","level":"expert"}]}]`},
		{name: "unknown level", body: `[{"fullName":"Chen","skills":[{"name":"Go","category":"technical","level":"guru"}]}]`},
		{name: "negative years", body: `[{"fullName":"Chen","skills":[{"name":"Go","category":"technical","level":"expert","yearsExperience":-7}]}]`},
		{name: "unknown proficiency", body: `[{"fullName":"Chen","languages":[{"name":"German","proficiency":"D1"}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()

			n, err := store.LoadProfilesJSON(strings.NewReader(tt.body))
			assert.Equal(t, 0, n)
			assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))

			profiles, err := store.ListProfiles(context.Background())
			require.NoError(t, err)
			assert.Empty(t, profiles)
		})
	}
}
