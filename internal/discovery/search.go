// Package discovery holds the pure talent discovery core: faceted search over
// profiles and skill aggregation. Nothing here performs I/O or mutates its
// input.
package discovery

import (
	"strings"

	"github.com/talentmap/talentmap-api/internal/models"
)

// Search returns the profiles matching every active facet of query, in input
// order. The input slice is never modified; the result is a new slice holding
// the same profile pointers.
func Search(profiles []*models.TalentProfile, query models.SearchQuery) []*models.TalentProfile {
	q := query.Normalized()

	result := make([]*models.TalentProfile, 0, len(profiles))
	for _, p := range profiles {
		if p != nil && matches(p, q) {
			result = append(result, p)
		}
	}
	return result
}

// Matches reports whether a single profile satisfies query
func Matches(profile *models.TalentProfile, query models.SearchQuery) bool {
	if profile == nil {
		return false
	}
	return matches(profile, query.Normalized())
}

// matches expects an already normalized query
func matches(p *models.TalentProfile, q models.SearchQuery) bool {
	if q.NameOrBio != "" && !containsFold(p.FullName, q.NameOrBio) && !containsFoldPtr(p.Bio, q.NameOrBio) {
		return false
	}

	if q.SkillTerm != "" && !anySkillMatches(p.Skills, q.SkillTerm) {
		return false
	}

	if q.LanguageTerm != "" && !anyLanguageMatches(p.Languages, q.LanguageTerm) {
		return false
	}

	if q.AvailableOnly && !p.IsAvailable {
		return false
	}

	if q.VerifiedOnly && !p.IsVerified {
		return false
	}

	return true
}

func anySkillMatches(skills []models.Skill, term string) bool {
	for i := range skills {
		if containsFold(skills[i].Name, term) {
			return true
		}
	}
	return false
}

func anyLanguageMatches(languages []models.Language, term string) bool {
	for i := range languages {
		if containsFold(languages[i].Name, term) {
			return true
		}
	}
	return false
}

// containsFold expects term to be lowercased already
func containsFold(field, term string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), term)
}

func containsFoldPtr(field *string, term string) bool {
	if field == nil {
		return false
	}
	return containsFold(*field, term)
}
