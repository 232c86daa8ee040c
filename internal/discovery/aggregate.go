package discovery

import (
	"sort"
	"strings"

	"github.com/talentmap/talentmap-api/internal/models"
)

// Aggregate reduces every skill of every profile into per-name statistics.
//
// Names are merged case-insensitively and displayed as first encountered.
// Each (profile, skill) record counts once, so a profile listing the same
// skill twice contributes twice. The result is sorted by count descending;
// ties keep encounter order.
func Aggregate(profiles []*models.TalentProfile) []models.SkillStat {
	index := make(map[string]int)
	stats := make([]models.SkillStat, 0)

	for _, p := range profiles {
		if p == nil {
			continue
		}
		for _, skill := range p.Skills {
			key := strings.ToLower(skill.Name)

			i, ok := index[key]
			if !ok {
				stats = append(stats, models.SkillStat{
					Key:        key,
					Name:       skill.Name,
					Levels:     make(map[models.SkillLevel]int),
					Categories: []models.SkillCategory{},
					Users:      []models.SkillUser{},
				})
				i = len(stats) - 1
				index[key] = i
			}

			stat := &stats[i]
			stat.Count++
			stat.Levels[skill.Level]++
			if !stat.HasCategory(skill.Category) {
				stat.Categories = append(stat.Categories, skill.Category)
			}
			stat.Users = append(stat.Users, models.SkillUser{
				ProfileID:   p.ID,
				DisplayName: p.FullName,
				Level:       skill.Level,
			})
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Count > stats[b].Count
	})

	return stats
}

// MaxCount returns the count of the top ranked skill, or 1 when there is none
// so it can be used as a divisor.
func MaxCount(stats []models.SkillStat) int {
	if len(stats) == 0 || stats[0].Count <= 0 {
		return 1
	}
	return stats[0].Count
}

// TopByCategory returns up to limit skills tagged with category, keeping rank order
func TopByCategory(stats []models.SkillStat, category models.SkillCategory, limit int) []models.SkillRankEntry {
	entries := make([]models.SkillRankEntry, 0, limit)
	for i := range stats {
		if len(entries) >= limit {
			break
		}
		if stats[i].HasCategory(category) {
			entries = append(entries, models.SkillRankEntry{Name: stats[i].Name, Count: stats[i].Count})
		}
	}
	return entries
}
