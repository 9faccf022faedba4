// Package ranking decides the display order of the board. It is a pure
// function over a suggestion snapshot: no storage access, no side
// effects, identical output for identical input.
package ranking

import (
	"mural/internal/domain/entity"
	"sort"
	"strings"
)

type Sort string

const (
	SortRecent   Sort = "recent"
	SortVotes    Sort = "votes"
	SortComments Sort = "comments"
)

// Query carries the filter/sort selection. Malformed values never
// fail the board: an unknown module/status filter degrades to
// pass-through and an unknown sort key falls back to recent.
type Query struct {
	Search string
	Module string
	Status string // internal key or display label, "all"/"" passes through
	Sort   Sort
}

// Rank filters, sorts and pin-partitions the given snapshot. The input
// slice is not mutated.
func Rank(suggestions []*entity.Suggestion, q Query) []*entity.Suggestion {
	result := filter(suggestions, q)

	switch q.Sort {
	case SortVotes:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Votes > result[j].Votes
		})
	case SortComments:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CommentsCount > result[j].CommentsCount
		})
	default: // SortRecent
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt > result[j].CreatedAt
		})
	}

	// Pinned suggestions always come first, but the partition pass is
	// stable: it never reorders within the pinned or unpinned groups.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IsPinned && !result[j].IsPinned
	})

	return result
}

func filter(suggestions []*entity.Suggestion, q Query) []*entity.Suggestion {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	module, filterModule := moduleFilter(q.Module)
	status, filterStatus := statusFilter(q.Status)

	result := make([]*entity.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Title), search) &&
			!strings.Contains(strings.ToLower(s.Description), search) {
			continue
		}
		if filterModule && s.Module != module {
			continue
		}
		if filterStatus && s.Status != status {
			continue
		}
		result = append(result, s)
	}
	return result
}

func moduleFilter(value string) (string, bool) {
	if value == "" || value == "all" || !entity.IsValidModule(value) {
		return "", false
	}
	return value, true
}

func statusFilter(value string) (entity.Status, bool) {
	if value == "" || value == "all" {
		return "", false
	}

	status, ok := entity.StatusFromLabel(value)
	if !ok {
		return "", false
	}
	return status, true
}
