package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

func TestSkill_Validate(t *testing.T) {
	valid := models.Skill{Name: "Go", Category: models.CategoryTechnical, Level: models.LevelExpert, YearsExperience: 50}

	tests := []struct {
		name   string
		mutate func(s *models.Skill)
		ok     bool
	}{
		{name: "valid", mutate: func(s *models.Skill) {}, ok: true},
		{name: "name at limit", mutate: func(s *models.Skill) { s.Name = strings.Repeat("ß", models.MaxSkillNameLength) }, ok: true},
		{name: "empty name", mutate: func(s *models.Skill) { s.Name = "" }},
		{name: "name too long", mutate: func(s *models.Skill) { s.Name = strings.Repeat("a", models.MaxSkillNameLength+1) }},
		{name: "unknown category", mutate: func(s *models.Skill) { s.Category = "magic" }},
		{name: "unknown level", mutate: func(s *models.Skill) { s.Level = "guru" }},
		{name: "negative years", mutate: func(s *models.Skill) { s.YearsExperience = -1 }},
		{name: "too many years", mutate: func(s *models.Skill) { s.YearsExperience = 51 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
		})
	}
}

func TestParseEnums(t *testing.T) {
	c, err := models.ParseSkillCategory("soft-skill")
	assert.NoError(t, err)
	assert.Equal(t, models.CategorySoftSkill, c)

	_, err = models.ParseSkillLevel("Expert")
	assert.Error(t, err)

	p, err := models.ParseProficiency("native")
	assert.NoError(t, err)
	assert.Equal(t, models.ProficiencyNative, p)

	_, err = models.ParseProficiency("D1")
	assert.Error(t, err)
}

func TestProject_EffectiveEndDate(t *testing.T) {
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	current := models.Project{EndDate: &end, IsCurrent: true}
	assert.Nil(t, current.EffectiveEndDate())

	finished := models.Project{EndDate: &end}
	assert.Equal(t, &end, finished.EffectiveEndDate())
}

func TestTalentProfile_HasBadge(t *testing.T) {
	p := models.TalentProfile{Badges: []models.Badge{{BadgeType: models.BadgeTypeVerified}}}
	assert.True(t, p.HasBadge(models.BadgeTypeVerified))
	assert.False(t, p.HasBadge("top-contributor"))
}

func TestSearchQuery_Key(t *testing.T) {
	a := models.SearchQuery{NameOrBio: "  Ana ", SkillTerm: "GO"}
	b := models.SearchQuery{NameOrBio: "ana", SkillTerm: "go"}
	assert.Equal(t, a.Key(), b.Key())

	c := models.SearchQuery{NameOrBio: "ana", SkillTerm: "go", AvailableOnly: true}
	assert.NotEqual(t, a.Key(), c.Key())

	assert.True(t, models.SearchQuery{NameOrBio: "   "}.IsEmpty())
	assert.False(t, models.SearchQuery{VerifiedOnly: true}.IsEmpty())
}

func TestTalentProfile_Validate(t *testing.T) {
	p := models.TalentProfile{
		FullName:  "Ana",
		Skills:    []models.Skill{{Name: "Go", Category: models.CategoryTechnical, Level: models.LevelAdvanced}},
		Languages: []models.Language{{Name: "Spanish", Proficiency: models.ProficiencyNative}},
	}
	assert.NoError(t, p.Validate())

	p.Languages[0].Proficiency = "fluent"
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(p.Validate()))

	assert.Error(t, (&models.TalentProfile{}).Validate())
}
