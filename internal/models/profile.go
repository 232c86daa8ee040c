package models

import (
	"fmt"
	"time"

	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

// SkillCategory is the kind of a skill
type SkillCategory string

const (
	CategoryTechnical  SkillCategory = "technical"
	CategoryLinguistic SkillCategory = "linguistic"
	CategorySoftSkill  SkillCategory = "soft-skill"
	CategoryOther      SkillCategory = "other"
)

// SkillCategories lists every category in display order
var SkillCategories = []SkillCategory{CategoryTechnical, CategoryLinguistic, CategorySoftSkill, CategoryOther}

// IsValid reports whether c is a known category
func (c SkillCategory) IsValid() bool {
	switch c {
	case CategoryTechnical, CategoryLinguistic, CategorySoftSkill, CategoryOther:
		return true
	}
	return false
}

// ParseSkillCategory converts a raw string into a SkillCategory
func ParseSkillCategory(s string) (SkillCategory, error) {
	c := SkillCategory(s)
	if !c.IsValid() {
		return "", apperrors.InvalidInputError("category", "unknown skill category "+s)
	}
	return c, nil
}

// SkillLevel is the self-assessed mastery of a skill
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// SkillLevels lists every level from lowest to highest
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// IsValid reports whether l is a known level
func (l SkillLevel) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// ParseSkillLevel converts a raw string into a SkillLevel
func ParseSkillLevel(s string) (SkillLevel, error) {
	l := SkillLevel(s)
	if !l.IsValid() {
		return "", apperrors.InvalidInputError("level", "unknown skill level "+s)
	}
	return l, nil
}

// Proficiency is a CEFR language level or native
type Proficiency string

const (
	ProficiencyA1     Proficiency = "A1"
	ProficiencyA2     Proficiency = "A2"
	ProficiencyB1     Proficiency = "B1"
	ProficiencyB2     Proficiency = "B2"
	ProficiencyC1     Proficiency = "C1"
	ProficiencyC2     Proficiency = "C2"
	ProficiencyNative Proficiency = "native"
)

// IsValid reports whether p is a known proficiency
func (p Proficiency) IsValid() bool {
	switch p {
	case ProficiencyA1, ProficiencyA2, ProficiencyB1, ProficiencyB2, ProficiencyC1, ProficiencyC2, ProficiencyNative:
		return true
	}
	return false
}

// ParseProficiency converts a raw string into a Proficiency
func ParseProficiency(s string) (Proficiency, error) {
	p := Proficiency(s)
	if !p.IsValid() {
		return "", apperrors.InvalidInputError("proficiency", "unknown proficiency "+s)
	}
	return p, nil
}

// Skill validation limits
const (
	MaxSkillNameLength = 50
	MinYearsExperience = 0
	MaxYearsExperience = 50
)

// BadgeTypeVerified is granted by an admin once per verification event
const BadgeTypeVerified = "verified"

// TalentProfile is a member profile with its owned records
type TalentProfile struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email,omitempty"`
	Bio         *string    `json:"bio"`
	Location    *string    `json:"location"`
	IsAvailable bool       `json:"isAvailable"`
	IsVerified  bool       `json:"isVerified"`
	LinkedinURL *string    `json:"linkedinUrl,omitempty"`
	GithubURL   *string    `json:"githubUrl,omitempty"`
	WebsiteURL  *string    `json:"websiteUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Skills      []Skill    `json:"skills"`
	Languages   []Language `json:"languages"`
	Projects    []Project  `json:"projects"`
	Passions    []Passion  `json:"passions"`
	Badges      []Badge    `json:"badges"`
}

// HasBadge reports whether the profile holds a badge of the given type
func (p *TalentProfile) HasBadge(badgeType string) bool {
	for i := range p.Badges {
		if p.Badges[i].BadgeType == badgeType {
			return true
		}
	}
	return false
}

// Validate checks every owned skill and language
func (p *TalentProfile) Validate() error {
	if p.FullName == "" {
		return apperrors.InvalidInputError("fullName", "is required")
	}
	for i := range p.Skills {
		if err := p.Skills[i].Validate(); err != nil {
			return fmt.Errorf("skill %d: %w", i, err)
		}
	}
	for i := range p.Languages {
		if err := p.Languages[i].Validate(); err != nil {
			return fmt.Errorf("language %d: %w", i, err)
		}
	}
	return nil
}

// Skill belongs to exactly one profile
type Skill struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Name            string        `json:"name"`
	Category        SkillCategory `json:"category"`
	Level           SkillLevel    `json:"level"`
	YearsExperience int           `json:"yearsExperience"`
}

// Validate checks the skill against the platform limits
func (s *Skill) Validate() error {
	if _, err := ParseSkillCategory(string(s.Category)); err != nil {
		return err
	}
	if _, err := ParseSkillLevel(string(s.Level)); err != nil {
		return err
	}
	if s.Name == "" {
		return apperrors.InvalidInputError("name", "is required")
	}
	if len([]rune(s.Name)) > MaxSkillNameLength {
		return apperrors.InvalidInputError("name", "is too long")
	}
	if s.YearsExperience < MinYearsExperience || s.YearsExperience > MaxYearsExperience {
		return apperrors.InvalidInputError("yearsExperience", "out of range")
	}
	return nil
}

type Language struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

// Validate checks the language name and proficiency
func (l *Language) Validate() error {
	if l.Name == "" {
		return apperrors.InvalidInputError("name", "is required")
	}
	_, err := ParseProficiency(string(l.Proficiency))
	return err
}

type Project struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Technologies []string   `json:"technologies"`
	ProjectURL   *string    `json:"projectUrl,omitempty"`
	GithubURL    *string    `json:"githubUrl,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	IsCurrent    bool       `json:"isCurrent"`
}

// EffectiveEndDate returns the end date, or nil while the project is current
func (p *Project) EffectiveEndDate() *time.Time {
	if p.IsCurrent {
		return nil
	}
	return p.EndDate
}

type Passion struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type Badge struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	BadgeType   string    `json:"badgeType"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IssuedBy    string    `json:"issuedBy"`
	IssuedAt    time.Time `json:"issuedAt"`
}
