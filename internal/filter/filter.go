// Package filter implements faceted filtering over employee records.
//
// Facets are AND-combined; values within one facet are OR-combined. An
// empty facet places no constraint on the result.
package filter

import (
	"strings"

	"github.com/rcliao/staff-directory/internal/model"
)

// Criteria holds the current filter selection.
type Criteria struct {
	SearchTerm  string
	Departments []string
	Ratings     []int

	// BookmarkedOnly restricts results to ids accepted by Bookmarked.
	// It is ignored when Bookmarked is nil.
	BookmarkedOnly bool
	Bookmarked     func(id int) bool
}

// IsEmpty reports whether the criteria match every record.
func (c Criteria) IsEmpty() bool {
	return c.SearchTerm == "" && len(c.Departments) == 0 && len(c.Ratings) == 0 && !c.bookmarkFacet()
}

func (c Criteria) bookmarkFacet() bool {
	return c.BookmarkedOnly && c.Bookmarked != nil
}

// Matches reports whether a single record passes every facet.
func (c Criteria) Matches(e model.Employee) bool {
	return newMatcher(c).match(e)
}

// Apply returns the order-preserving subsequence of records matching c.
// The input slice is never modified.
func Apply(records []model.Employee, c Criteria) []model.Employee {
	if c.IsEmpty() {
		out := make([]model.Employee, len(records))
		copy(out, records)
		return out
	}

	m := newMatcher(c)
	out := make([]model.Employee, 0, len(records))
	for _, e := range records {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// matcher holds the per-call lookup sets so a filter pass is O(n).
type matcher struct {
	term        string
	departments map[string]bool
	ratings     map[int]bool
	bookmarked  func(int) bool
}

func newMatcher(c Criteria) matcher {
	m := matcher{term: strings.ToLower(c.SearchTerm)}
	if len(c.Departments) > 0 {
		m.departments = make(map[string]bool, len(c.Departments))
		for _, d := range c.Departments {
			m.departments[d] = true
		}
	}
	if len(c.Ratings) > 0 {
		m.ratings = make(map[int]bool, len(c.Ratings))
		for _, r := range c.Ratings {
			m.ratings[r] = true
		}
	}
	if c.bookmarkFacet() {
		m.bookmarked = c.Bookmarked
	}
	return m
}

func (m matcher) match(e model.Employee) bool {
	return m.matchSearch(e) && m.matchDepartment(e) && m.matchRating(e) && m.matchBookmark(e)
}

func (m matcher) matchSearch(e model.Employee) bool {
	if m.term == "" {
		return true
	}
	for _, field := range [...]string{e.FirstName, e.LastName, e.Email, e.Department} {
		if strings.Contains(strings.ToLower(field), m.term) {
			return true
		}
	}
	return false
}

func (m matcher) matchDepartment(e model.Employee) bool {
	return m.departments == nil || m.departments[e.Department]
}

// matchRating uses exact integer equality, not a range or floor.
func (m matcher) matchRating(e model.Employee) bool {
	return m.ratings == nil || m.ratings[e.Rating]
}

func (m matcher) matchBookmark(e model.Employee) bool {
	return m.bookmarked == nil || m.bookmarked(e.ID)
}

// DepartmentOptions returns the distinct departments present in records,
// in first-seen order.
func DepartmentOptions(records []model.Employee) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range records {
		if !seen[e.Department] {
			seen[e.Department] = true
			out = append(out, e.Department)
		}
	}
	return out
}

// RatingOptions returns the selectable rating values.
func RatingOptions() []int {
	opts := make([]int, 0, model.MaxRating-model.MinRating+1)
	for r := model.MinRating; r <= model.MaxRating; r++ {
		opts = append(opts, r)
	}
	return opts
}
