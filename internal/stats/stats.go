// Package stats derives aggregate statistics from employee record subsets.
//
// Every function is pure and recomputes from its input; empty input yields
// the zero value for the statistic.
package stats

import (
	"math"
	"sort"

	"github.com/rcliao/staff-directory/internal/model"
)

// DefaultHighPerformerThreshold is the rating at or above which an employee
// counts as a high performer.
const DefaultHighPerformerThreshold = 4.5

// DefaultBuckets are the rating distribution buckets.
var DefaultBuckets = []int{1, 2, 3, 4, 5}

// DepartmentStats holds per-department counts.
type DepartmentStats struct {
	Department    string  `json:"department"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// Bucket is one entry of a rating distribution.
type Bucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// Count returns the number of records.
func Count(records []model.Employee) int {
	return len(records)
}

// AverageRating returns the mean rating, or 0 for no records.
func AverageRating(records []model.Employee) float64 {
	if len(records) == 0 {
		return 0
	}
	var total int
	for _, e := range records {
		total += e.Rating
	}
	return float64(total) / float64(len(records))
}

// HighPerformerCount counts records rated at or above threshold.
func HighPerformerCount(records []model.Employee, threshold float64) int {
	n := 0
	for _, e := range records {
		if float64(e.Rating) >= threshold {
			n++
		}
	}
	return n
}

// GroupByDepartment returns one entry per department present in records,
// in first-seen order.
func GroupByDepartment(records []model.Employee) []DepartmentStats {
	type acc struct {
		count int
		total int
	}
	grouped := make(map[string]*acc)
	var order []string
	for _, e := range records {
		a, ok := grouped[e.Department]
		if !ok {
			a = &acc{}
			grouped[e.Department] = a
			order = append(order, e.Department)
		}
		a.count++
		a.total += e.Rating
	}

	out := make([]DepartmentStats, 0, len(order))
	for _, dept := range order {
		a := grouped[dept]
		out = append(out, DepartmentStats{
			Department:    dept,
			Count:         a.count,
			AverageRating: float64(a.total) / float64(a.count),
		})
	}
	return out
}

// GroupByDepartmentMap is GroupByDepartment keyed by department.
func GroupByDepartmentMap(records []model.Employee) map[string]DepartmentStats {
	groups := GroupByDepartment(records)
	out := make(map[string]DepartmentStats, len(groups))
	for _, g := range groups {
		out[g.Department] = g
	}
	return out
}

// RatingDistribution counts records whose floor(rating) equals each bucket,
// in ascending bucket order. Zero counts are kept.
func RatingDistribution(records []model.Employee, buckets []int) []Bucket {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}
	sorted := append([]int(nil), buckets...)
	sort.Ints(sorted)

	counts := make(map[int]int, len(sorted))
	for _, e := range records {
		counts[int(math.Floor(float64(e.Rating)))]++
	}

	out := make([]Bucket, 0, len(sorted))
	for _, b := range sorted {
		out = append(out, Bucket{Rating: b, Count: counts[b]})
	}
	return out
}

// BookmarkedCountByDepartment counts bookmarked records per department. Every
// department present in records gets an entry, including zero counts.
func BookmarkedCountByDepartment(records []model.Employee, isBookmarked func(id int) bool) map[string]int {
	out := make(map[string]int)
	for _, e := range records {
		if _, ok := out[e.Department]; !ok {
			out[e.Department] = 0
		}
		if isBookmarked != nil && isBookmarked(e.ID) {
			out[e.Department]++
		}
	}
	return out
}

// IDSet adapts an id list to the membership predicate used above.
func IDSet(ids []int) func(int) bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id int) bool { return set[id] }
}

// RoundTo1 rounds to one decimal place for display.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
