package discovery_test

import "github.com/talentmap/talentmap-api/internal/models"

func strPtr(s string) *string { return &s }

func skill(name string, category models.SkillCategory, level models.SkillLevel) models.Skill {
	return models.Skill{Name: name, Category: category, Level: level}
}

// directory returns a small heterogeneous profile set in created_at DESC order
func directory() []*models.TalentProfile {
	return []*models.TalentProfile{
		{
			ID:          "p1",
			FullName:    "Ana Martins",
			Bio:         strPtr("Frontend engineer who loves design systems"),
			IsAvailable: true,
			IsVerified:  true,
			Skills: []models.Skill{
				skill("React", models.CategoryTechnical, models.LevelExpert),
				skill("Communication", models.CategorySoftSkill, models.LevelAdvanced),
			},
			Languages: []models.Language{{Name: "Portuguese", Proficiency: models.ProficiencyNative}},
		},
		{
			ID:          "p2",
			FullName:    "Leo Dubois",
			IsAvailable: false,
			Skills: []models.Skill{
				skill("react", models.CategoryTechnical, models.LevelIntermediate),
				skill("Go", models.CategoryTechnical, models.LevelAdvanced),
			},
			Languages: []models.Language{
				{Name: "French", Proficiency: models.ProficiencyNative},
				{Name: "English", Proficiency: models.ProficiencyC1},
			},
		},
		{
			ID:          "p3",
			FullName:    "Mina Park",
			Bio:         strPtr("Backend developer, Go and Postgres"),
			IsAvailable: true,
			IsVerified:  false,
		},
		{
			ID:          "p4",
			FullName:    "Omar Haddad",
			Bio:         nil,
			IsAvailable: true,
			IsVerified:  true,
			Skills: []models.Skill{
				skill("Go", models.CategoryTechnical, models.LevelExpert),
				skill("Leadership", models.CategorySoftSkill, models.LevelExpert),
				skill("English", models.CategoryLinguistic, models.LevelAdvanced),
			},
			Languages: []models.Language{{Name: "English", Proficiency: models.ProficiencyB2}},
		},
	}
}

func ids(profiles []*models.TalentProfile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}
