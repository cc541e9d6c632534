package stats

import (
	"github.com/rcliao/staff-directory/internal/model"
)

// DashboardSummary holds the headline numbers of the directory.
type DashboardSummary struct {
	TotalEmployees int     `json:"total_employees"`
	AverageRating  float64 `json:"average_rating"`
	Bookmarked     int     `json:"bookmarked"`
	HighPerformers int     `json:"high_performers"`
}

// Summary computes the dashboard headline numbers. bookmarkCount is the size
// of the bookmark set, which may include ids absent from records.
func Summary(records []model.Employee, bookmarkCount int) DashboardSummary {
	return DashboardSummary{
		TotalEmployees: Count(records),
		AverageRating:  AverageRating(records),
		Bookmarked:     bookmarkCount,
		HighPerformers: HighPerformerCount(records, DefaultHighPerformerThreshold),
	}
}

// BookmarkStats summarises the bookmarked subset.
type BookmarkStats struct {
	Total         int     `json:"total"`
	AverageRating float64 `json:"average_rating"`
	Departments   int     `json:"departments"`
}

// BookmarkSummary summarises an already-resolved bookmarked subset.
func BookmarkSummary(bookmarked []model.Employee) BookmarkStats {
	return BookmarkStats{
		Total:         Count(bookmarked),
		AverageRating: AverageRating(bookmarked),
		Departments:   len(GroupByDepartment(bookmarked)),
	}
}

// DepartmentRow is one row of the department analytics table.
type DepartmentRow struct {
	DepartmentStats
	Bookmarked int `json:"bookmarked"`
}

// DepartmentBreakdown joins GroupByDepartment with bookmark counts.
func DepartmentBreakdown(records []model.Employee, isBookmarked func(id int) bool) []DepartmentRow {
	groups := GroupByDepartment(records)
	marked := BookmarkedCountByDepartment(records, isBookmarked)
	out := make([]DepartmentRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, DepartmentRow{DepartmentStats: g, Bookmarked: marked[g.Department]})
	}
	return out
}

// TopDepartment returns the row with the highest average rating. Ties keep
// the earlier row. ok is false for an empty breakdown.
func TopDepartment(rows []DepartmentRow) (top DepartmentRow, ok bool) {
	for i, r := range rows {
		if i == 0 || r.AverageRating > top.AverageRating {
			top = r
			ok = true
		}
	}
	return top, ok
}

// Analytics bundles the aggregates shown on the analytics view.
type Analytics struct {
	TotalEmployees     int             `json:"total_employees"`
	AverageRating      float64         `json:"average_rating"`
	HighPerformers     int             `json:"high_performers"`
	TopDepartment      *DepartmentRow  `json:"top_department,omitempty"`
	Departments        []DepartmentRow `json:"departments"`
	RatingDistribution []Bucket        `json:"rating_distribution"`
}

// Analyze computes the analytics view over records.
func Analyze(records []model.Employee, isBookmarked func(id int) bool) Analytics {
	rows := DepartmentBreakdown(records, isBookmarked)
	a := Analytics{
		TotalEmployees:     Count(records),
		AverageRating:      AverageRating(records),
		HighPerformers:     HighPerformerCount(records, DefaultHighPerformerThreshold),
		Departments:        rows,
		RatingDistribution: RatingDistribution(records, DefaultBuckets),
	}
	if top, ok := TopDepartment(rows); ok {
		a.TopDepartment = &top
	}
	return a
}
