package discovery

import "github.com/talentmap/talentmap-api/internal/models"

// Cloud font size bounds in pixels
const (
	MinCloudFontSize = 14.0
	MaxCloudFontSize = 48.0
)

var categoryColors = map[models.SkillCategory]string{
	models.CategoryTechnical:  "#3b82f6",
	models.CategoryLinguistic: "#8b5cf6",
	models.CategorySoftSkill:  "#10b981",
	models.CategoryOther:      "#f59e0b",
}

// CategoryColor returns the display colour of a category. Unknown categories
// share the colour of "other".
func CategoryColor(category models.SkillCategory) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return categoryColors[models.CategoryOther]
}

func ratio(count, maxCount int) float64 {
	if maxCount <= 0 {
		maxCount = 1
	}
	return float64(count) / float64(maxCount)
}

// CloudFontSize scales linearly from MinCloudFontSize to MaxCloudFontSize with count/maxCount
func CloudFontSize(count, maxCount int) float64 {
	return MinCloudFontSize + ratio(count, maxCount)*(MaxCloudFontSize-MinCloudFontSize)
}

// CloudOpacity scales from 0.7 to 1.0 with count/maxCount
func CloudOpacity(count, maxCount int) float64 {
	return 0.7 + ratio(count, maxCount)*0.3
}

// IsEmphasized reports whether a skill is rendered bold in the cloud
func IsEmphasized(count, maxCount int) bool {
	return float64(count) > float64(maxCount)/2
}

// SkillMapOptions bounds the lists of the skill map
type SkillMapOptions struct {
	CloudLimit       int
	BarsLimit        int
	TopCategoryLimit int
}

// DefaultSkillMapOptions mirrors the limits of the skill map page
func DefaultSkillMapOptions() SkillMapOptions {
	return SkillMapOptions{
		CloudLimit:       50,
		BarsLimit:        20,
		TopCategoryLimit: 5,
	}
}

// BuildSkillMap aggregates profiles and prepares every view of the skill map
func BuildSkillMap(profiles []*models.TalentProfile, opts SkillMapOptions) models.SkillMap {
	return BuildSkillMapFromStats(profiles, Aggregate(profiles), opts)
}

// BuildSkillMapFromStats prepares the skill map from precomputed stats.
// profiles is only used for the headline counters and bar percentages.
func BuildSkillMapFromStats(profiles []*models.TalentProfile, stats []models.SkillStat, opts SkillMapOptions) models.SkillMap {
	maxCount := MaxCount(stats)

	talentCount := 0
	available := 0
	for _, p := range profiles {
		if p == nil {
			continue
		}
		talentCount++
		if p.IsAvailable {
			available++
		}
	}

	cloud := make([]models.SkillCloudEntry, 0, min(len(stats), opts.CloudLimit))
	for i := 0; i < len(stats) && i < opts.CloudLimit; i++ {
		s := &stats[i]
		category := s.PrimaryCategory()
		cloud = append(cloud, models.SkillCloudEntry{
			Name:       s.Name,
			Count:      s.Count,
			Category:   category,
			Color:      CategoryColor(category),
			FontSize:   CloudFontSize(s.Count, maxCount),
			Opacity:    CloudOpacity(s.Count, maxCount),
			Emphasized: IsEmphasized(s.Count, maxCount),
		})
	}

	bars := make([]models.SkillBarEntry, 0, min(len(stats), opts.BarsLimit))
	for i := 0; i < len(stats) && i < opts.BarsLimit; i++ {
		s := &stats[i]
		category := s.PrimaryCategory()
		percentage := 0.0
		if talentCount > 0 {
			percentage = float64(s.Count) / float64(talentCount) * 100
		}
		bars = append(bars, models.SkillBarEntry{
			Name:       s.Name,
			Count:      s.Count,
			Category:   category,
			Color:      CategoryColor(category),
			Percentage: percentage,
		})
	}

	return models.SkillMap{
		Summary: models.SkillMapSummary{
			TalentCount:    talentCount,
			UniqueSkills:   len(stats),
			AvailableCount: available,
		},
		Cloud: cloud,
		Bars:  bars,
		TopByCategory: map[models.SkillCategory][]models.SkillRankEntry{
			models.CategoryTechnical: TopByCategory(stats, models.CategoryTechnical, opts.TopCategoryLimit),
			models.CategorySoftSkill: TopByCategory(stats, models.CategorySoftSkill, opts.TopCategoryLimit),
		},
	}
}
