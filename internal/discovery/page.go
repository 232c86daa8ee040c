package discovery

import "github.com/talentmap/talentmap-api/internal/models"

// ResolvePage returns the page to show for query. A page number only carries
// over while the filter set is unchanged: when the caller saw a different
// result set (previousKey differs from the query's key) it starts at page 1.
// An empty previousKey means there was no previous view.
func ResolvePage(previousKey string, query models.SearchQuery, requested int) int {
	if previousKey != "" && previousKey != query.Key() {
		return 1
	}
	if requested < 1 {
		return 1
	}
	return requested
}
