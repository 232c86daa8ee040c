package models

// SkillUser is one contributing occurrence of a skill
type SkillUser struct {
	ProfileID   string     `json:"profileId"`
	DisplayName string     `json:"displayName"`
	Level       SkillLevel `json:"level"`
}

// SkillStat aggregates every occurrence of one skill name across profiles
type SkillStat struct {
	Key        string             `json:"key"`
	Name       string             `json:"name"`
	Count      int                `json:"count"`
	Levels     map[SkillLevel]int `json:"levels"`
	Categories []SkillCategory    `json:"categories"`
	Users      []SkillUser        `json:"users"`
}

// PrimaryCategory returns the first category seen for the skill
func (s *SkillStat) PrimaryCategory() SkillCategory {
	if len(s.Categories) == 0 {
		return CategoryOther
	}
	return s.Categories[0]
}

// HasCategory reports whether the skill was ever tagged with c
func (s *SkillStat) HasCategory(c SkillCategory) bool {
	for _, cat := range s.Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// SkillCloudEntry is a skill rendered in the cloud view
type SkillCloudEntry struct {
	Name       string        `json:"name"`
	Count      int           `json:"count"`
	Category   SkillCategory `json:"category"`
	Color      string        `json:"color"`
	FontSize   float64       `json:"fontSize"`
	Opacity    float64       `json:"opacity"`
	Emphasized bool          `json:"emphasized"`
}

// SkillBarEntry is a skill rendered in the bar chart view
type SkillBarEntry struct {
	Name       string        `json:"name"`
	Count      int           `json:"count"`
	Category   SkillCategory `json:"category"`
	Color      string        `json:"color"`
	Percentage float64       `json:"percentage"`
}

// SkillRankEntry is a row in a "top skills" list
type SkillRankEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SkillMapSummary holds the headline counters of the skill map
type SkillMapSummary struct {
	TalentCount    int `json:"talentCount"`
	UniqueSkills   int `json:"uniqueSkills"`
	AvailableCount int `json:"availableCount"`
}

// SkillMap is the full visualization payload of the skill map page
type SkillMap struct {
	Summary       SkillMapSummary                    `json:"summary"`
	Cloud         []SkillCloudEntry                  `json:"cloud"`
	Bars          []SkillBarEntry                    `json:"bars"`
	TopByCategory map[SkillCategory][]SkillRankEntry `json:"topByCategory"`
}
