// Package pagination computes page windows over in-memory collections and the
// numbered buttons of a windowed pager.
package pagination

import (
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

// DefaultMaxButtons is the number of numbered buttons a windowed pager shows
const DefaultMaxButtons = 5

// Page is one window of items
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"total"`
}

// TotalPages returns ceil(total/pageSize), never less than 1 so an empty
// collection still renders as a single empty page.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage moves pageNumber into [1, totalPages]
func ClampPage(pageNumber, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if pageNumber < 1 {
		return 1
	}
	if pageNumber > totalPages {
		return totalPages
	}
	return pageNumber
}

// Paginate returns the requested page of items. Out of range page numbers
// resolve to the nearest valid page; a non-positive page size is an error.
// The returned slice shares no backing array with items.
func Paginate[T any](items []T, pageSize, pageNumber int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, apperrors.InvalidInputError("pageSize", "must be positive")
	}

	totalPages := TotalPages(len(items), pageSize)
	pageNumber = ClampPage(pageNumber, totalPages)

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: len(items),
	}, nil
}

// PageButtons returns the page numbers a windowed pager should display.
// All pages are shown when they fit; otherwise a window of maxButtons pages
// is centered on current and clamped to [1, totalPages].
func PageButtons(current, totalPages, maxButtons int) []int {
	if maxButtons <= 0 {
		maxButtons = DefaultMaxButtons
	}
	if totalPages < 1 {
		totalPages = 1
	}
	current = ClampPage(current, totalPages)

	if totalPages <= maxButtons {
		buttons := make([]int, totalPages)
		for i := range buttons {
			buttons[i] = i + 1
		}
		return buttons
	}

	first := current - maxButtons/2
	if first < 1 {
		first = 1
	}
	if first+maxButtons-1 > totalPages {
		first = totalPages - maxButtons + 1
	}

	buttons := make([]int, maxButtons)
	for i := range buttons {
		buttons[i] = first + i
	}
	return buttons
}
