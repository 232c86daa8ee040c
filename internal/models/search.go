package models

import (
	"strconv"
	"strings"
)

// SearchQuery holds the talent directory facets. Zero values mean "no constraint".
type SearchQuery struct {
	NameOrBio     string `form:"q" json:"q"`
	SkillTerm     string `form:"skill" json:"skill"`
	LanguageTerm  string `form:"language" json:"language"`
	AvailableOnly bool   `form:"available" json:"available"`
	VerifiedOnly  bool   `form:"verified" json:"verified"`
}

// Normalized returns a copy with trimmed, lowercased terms
func (q SearchQuery) Normalized() SearchQuery {
	return SearchQuery{
		NameOrBio:     strings.ToLower(strings.TrimSpace(q.NameOrBio)),
		SkillTerm:     strings.ToLower(strings.TrimSpace(q.SkillTerm)),
		LanguageTerm:  strings.ToLower(strings.TrimSpace(q.LanguageTerm)),
		AvailableOnly: q.AvailableOnly,
		VerifiedOnly:  q.VerifiedOnly,
	}
}

// IsEmpty reports whether no facet is active
func (q SearchQuery) IsEmpty() bool {
	n := q.Normalized()
	return n.NameOrBio == "" && n.SkillTerm == "" && n.LanguageTerm == "" && !n.AvailableOnly && !n.VerifiedOnly
}

// Key identifies the effective filter set. Two queries selecting the same
// talents share a key.
func (q SearchQuery) Key() string {
	n := q.Normalized()
	return strings.Join([]string{
		n.NameOrBio,
		n.SkillTerm,
		n.LanguageTerm,
		strconv.FormatBool(n.AvailableOnly),
		strconv.FormatBool(n.VerifiedOnly),
	}, "\x1f")
}

// TalentPage is one page of directory results
type TalentPage struct {
	Talents     []*TalentProfile `json:"talents"`
	Total       int              `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"pageSize"`
	TotalPages  int              `json:"totalPages"`
	PageButtons []int            `json:"pageButtons"`
	QueryKey    string           `json:"queryKey"`
}
