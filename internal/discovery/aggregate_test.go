package discovery_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap-api/internal/discovery"
	"github.com/talentmap/talentmap-api/internal/models"
)

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, discovery.Aggregate(nil))
	assert.Empty(t, discovery.Aggregate([]*models.TalentProfile{}))
	assert.Empty(t, discovery.Aggregate([]*models.TalentProfile{{ID: "lonely"}}))
}

func TestAggregate_MergesNamesCaseInsensitively(t *testing.T) {
	profiles := []*models.TalentProfile{
		{ID: "a", FullName: "Ana", Skills: []models.Skill{skill("React", models.CategoryTechnical, models.LevelExpert)}},
		{ID: "l", FullName: "Leo", Skills: []models.Skill{skill("react", models.CategoryTechnical, models.LevelBeginner)}},
	}

	stats := discovery.Aggregate(profiles)

	require.Len(t, stats, 1)
	assert.Equal(t, "react", stats[0].Key)
	assert.Equal(t, "React", stats[0].Name)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, map[models.SkillLevel]int{models.LevelExpert: 1, models.LevelBeginner: 1}, stats[0].Levels)
	assert.Equal(t, []models.SkillUser{
		{ProfileID: "a", DisplayName: "Ana", Level: models.LevelExpert},
		{ProfileID: "l", DisplayName: "Leo", Level: models.LevelBeginner},
	}, stats[0].Users)
}

func TestAggregate_DuplicateSkillOnOneProfileCountsTwice(t *testing.T) {
	profiles := []*models.TalentProfile{
		{ID: "a", FullName: "Ana", Skills: []models.Skill{
			skill("Go", models.CategoryTechnical, models.LevelExpert),
			skill("go", models.CategoryOther, models.LevelAdvanced),
		}},
	}

	stats := discovery.Aggregate(profiles)

	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, []models.SkillCategory{models.CategoryTechnical, models.CategoryOther}, stats[0].Categories)
	assert.Equal(t, models.CategoryTechnical, stats[0].PrimaryCategory())
}

func TestAggregate_SortedByCountWithStableTies(t *testing.T) {
	stats := discovery.Aggregate(directory())

	names := make([]string, 0, len(stats))
	for i := range stats {
		names = append(names, stats[i].Name)
	}

	// React and Go tie at 2 and keep encounter order, as do the singletons
	assert.Equal(t, []string{"React", "Go", "Communication", "Leadership", "English"}, names)
}

func TestAggregate_InvariantUnderReordering(t *testing.T) {
	forward := directory()
	reversed := make([]*models.TalentProfile, len(forward))
	for i, p := range forward {
		reversed[len(forward)-1-i] = p
	}

	a := summarize(discovery.Aggregate(forward))
	b := summarize(discovery.Aggregate(reversed))

	assert.Equal(t, a, b)
}

type statSummary struct {
	Count      int
	Levels     map[models.SkillLevel]int
	Categories []string
	Users      []string
}

// summarize drops the order-dependent parts of the stats
func summarize(stats []models.SkillStat) map[string]statSummary {
	out := make(map[string]statSummary, len(stats))
	for i := range stats {
		s := stats[i]
		categories := make([]string, 0, len(s.Categories))
		for _, c := range s.Categories {
			categories = append(categories, string(c))
		}
		sort.Strings(categories)
		users := make([]string, 0, len(s.Users))
		for _, u := range s.Users {
			users = append(users, u.ProfileID+"/"+string(u.Level))
		}
		sort.Strings(users)
		out[s.Key] = statSummary{Count: s.Count, Levels: s.Levels, Categories: categories, Users: users}
	}
	return out
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	profiles := directory()
	before := profiles[0].Skills[0]

	_ = discovery.Aggregate(profiles)

	assert.Equal(t, before, profiles[0].Skills[0])
}

func TestMaxCount(t *testing.T) {
	assert.Equal(t, 1, discovery.MaxCount(nil))
	assert.Equal(t, 2, discovery.MaxCount(discovery.Aggregate(directory())))
}

func TestTopByCategory(t *testing.T) {
	stats := discovery.Aggregate(directory())

	assert.Equal(t, []models.SkillRankEntry{{Name: "React", Count: 2}, {Name: "Go", Count: 2}},
		discovery.TopByCategory(stats, models.CategoryTechnical, 5))
	assert.Equal(t, []models.SkillRankEntry{{Name: "React", Count: 2}},
		discovery.TopByCategory(stats, models.CategoryTechnical, 1))
	assert.Empty(t, discovery.TopByCategory(stats, models.CategoryOther, 5))
}
