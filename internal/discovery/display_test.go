package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap-api/internal/discovery"
	"github.com/talentmap/talentmap-api/internal/models"
)

func TestCloudFontSize(t *testing.T) {
	assert.InDelta(t, 48.0, discovery.CloudFontSize(10, 10), 1e-9)
	assert.InDelta(t, 31.0, discovery.CloudFontSize(5, 10), 1e-9)
	assert.InDelta(t, 14.0, discovery.CloudFontSize(0, 10), 1e-9)
	assert.InDelta(t, 14.0, discovery.CloudFontSize(0, 0), 1e-9)
}

func TestCloudOpacityAndEmphasis(t *testing.T) {
	assert.InDelta(t, 1.0, discovery.CloudOpacity(4, 4), 1e-9)
	assert.InDelta(t, 0.85, discovery.CloudOpacity(2, 4), 1e-9)

	assert.True(t, discovery.IsEmphasized(3, 4))
	assert.False(t, discovery.IsEmphasized(2, 4))
}

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, "#3b82f6", discovery.CategoryColor(models.CategoryTechnical))
	assert.Equal(t, "#8b5cf6", discovery.CategoryColor(models.CategoryLinguistic))
	assert.Equal(t, "#10b981", discovery.CategoryColor(models.CategorySoftSkill))
	assert.Equal(t, "#f59e0b", discovery.CategoryColor(models.CategoryOther))
	assert.Equal(t, "#f59e0b", discovery.CategoryColor(models.SkillCategory("design")))
}

func TestBuildSkillMap(t *testing.T) {
	m := discovery.BuildSkillMap(directory(), discovery.DefaultSkillMapOptions())

	assert.Equal(t, models.SkillMapSummary{TalentCount: 4, UniqueSkills: 5, AvailableCount: 3}, m.Summary)

	require.Len(t, m.Cloud, 5)
	assert.Equal(t, "React", m.Cloud[0].Name)
	assert.InDelta(t, 48.0, m.Cloud[0].FontSize, 1e-9)
	assert.True(t, m.Cloud[0].Emphasized)
	assert.Equal(t, "#3b82f6", m.Cloud[0].Color)
	assert.False(t, m.Cloud[2].Emphasized)
	assert.InDelta(t, 31.0, m.Cloud[2].FontSize, 1e-9)

	require.Len(t, m.Bars, 5)
	assert.InDelta(t, 50.0, m.Bars[0].Percentage, 1e-9)
	assert.InDelta(t, 25.0, m.Bars[4].Percentage, 1e-9)

	assert.Len(t, m.TopByCategory[models.CategoryTechnical], 2)
	assert.Equal(t, []models.SkillRankEntry{{Name: "Communication", Count: 1}, {Name: "Leadership", Count: 1}},
		m.TopByCategory[models.CategorySoftSkill])
}

func TestBuildSkillMap_Limits(t *testing.T) {
	m := discovery.BuildSkillMap(directory(), discovery.SkillMapOptions{CloudLimit: 2, BarsLimit: 1, TopCategoryLimit: 1})

	assert.Len(t, m.Cloud, 2)
	assert.Len(t, m.Bars, 1)
	assert.Len(t, m.TopByCategory[models.CategoryTechnical], 1)
}

func TestBuildSkillMap_Empty(t *testing.T) {
	m := discovery.BuildSkillMap(nil, discovery.DefaultSkillMapOptions())

	assert.Equal(t, models.SkillMapSummary{}, m.Summary)
	assert.Empty(t, m.Cloud)
	assert.Empty(t, m.Bars)
}
