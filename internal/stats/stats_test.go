package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/testutil"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]model.Employee{}))

	records := []model.Employee{
		testutil.Employee(1, "Sales", 4),
		testutil.Employee(2, "Sales", 5),
	}
	assert.Equal(t, 4.5, AverageRating(records))
}

func TestCountAndHighPerformers(t *testing.T) {
	records := []model.Employee{
		testutil.Employee(1, "Sales", 4),
		testutil.Employee(2, "Sales", 5),
		testutil.Employee(3, "HR", 5),
		testutil.Employee(4, "HR", 3),
	}
	assert.Equal(t, 4, Count(records))
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 2, HighPerformerCount(records, DefaultHighPerformerThreshold))
	assert.Equal(t, 3, HighPerformerCount(records, 4))
	assert.Equal(t, 0, HighPerformerCount(nil, DefaultHighPerformerThreshold))
}

func TestGroupByDepartment(t *testing.T) {
	records := []model.Employee{
		testutil.Employee(1, "Engineering", 5),
		testutil.Employee(2, "Sales", 4),
		testutil.Employee(3, "Engineering", 4),
		testutil.Employee(4, "Sales", 3),
		testutil.Employee(5, "Engineering", 3),
	}

	groups := GroupByDepartment(records)
	require.Len(t, groups, 2)
	assert.Equal(t, DepartmentStats{Department: "Engineering", Count: 3, AverageRating: 4}, groups[0])
	assert.Equal(t, DepartmentStats{Department: "Sales", Count: 2, AverageRating: 3.5}, groups[1])

	m := GroupByDepartmentMap(records)
	assert.Len(t, m, 2)
	_, hasHR := m["HR"]
	assert.False(t, hasHR, "absent departments must not be pre-populated")

	assert.Empty(t, GroupByDepartment(nil))
}

func TestRatingDistribution(t *testing.T) {
	var records []model.Employee
	for i := 1; i <= 5; i++ {
		records = append(records, testutil.Employee(i, "HR", i))
	}
	got := RatingDistribution(records, DefaultBuckets)
	assert.Equal(t, []Bucket{{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}}, got)

	got = RatingDistribution(records[3:], []int{5, 1, 4})
	assert.Equal(t, []Bucket{{1, 0}, {4, 1}, {5, 1}}, got, "buckets ascending with zero counts kept")

	got = RatingDistribution(nil, nil)
	assert.Equal(t, []Bucket{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}}, got)
}

func TestBookmarkedCountByDepartment(t *testing.T) {
	records := []model.Employee{
		testutil.Employee(1, "Engineering", 5),
		testutil.Employee(2, "Sales", 4),
		testutil.Employee(3, "Engineering", 4),
		testutil.Employee(4, "Design", 4),
	}
	got := BookmarkedCountByDepartment(records, IDSet([]int{1, 3, 2, 99}))
	assert.Equal(t, map[string]int{"Engineering": 2, "Sales": 1, "Design": 0}, got)

	got = BookmarkedCountByDepartment(records, nil)
	assert.Equal(t, map[string]int{"Engineering": 0, "Sales": 0, "Design": 0}, got)

	assert.Empty(t, BookmarkedCountByDepartment(nil, IDSet([]int{1})))
}

func TestSummary(t *testing.T) {
	records := []model.Employee{
		testutil.Employee(1, "Engineering", 5),
		testutil.Employee(2, "Sales", 4),
	}
	assert.Equal(t, DashboardSummary{TotalEmployees: 2, AverageRating: 4.5, Bookmarked: 3, HighPerformers: 1}, Summary(records, 3))
	assert.Equal(t, DashboardSummary{}, Summary(nil, 0))
}

func TestBookmarkSummary(t *testing.T) {
	bookmarked := []model.Employee{
		testutil.Employee(1, "Engineering", 5),
		testutil.Employee(2, "Engineering", 4),
		testutil.Employee(3, "HR", 4),
	}
	got := BookmarkSummary(bookmarked)
	assert.Equal(t, 3, got.Total)
	assert.InDelta(t, 4.333, got.AverageRating, 0.001)
	assert.Equal(t, 2, got.Departments)

	assert.Equal(t, BookmarkStats{}, BookmarkSummary(nil))
}

func TestDepartmentBreakdownAndTop(t *testing.T) {
	records := []model.Employee{
		testutil.Employee(1, "Sales", 4),
		testutil.Employee(2, "Engineering", 5),
		testutil.Employee(3, "Design", 5),
		testutil.Employee(4, "Engineering", 5),
	}
	rows := DepartmentBreakdown(records, IDSet([]int{2}))
	require.Len(t, rows, 3)
	assert.Equal(t, "Sales", rows[0].Department)
	assert.Equal(t, 0, rows[0].Bookmarked)
	assert.Equal(t, 2, rows[1].Count)
	assert.Equal(t, 1, rows[1].Bookmarked)

	top, ok := TopDepartment(rows)
	require.True(t, ok)
	assert.Equal(t, "Engineering", top.Department, "ties keep the first seen")

	_, ok = TopDepartment(nil)
	assert.False(t, ok)
}

func TestAnalyze(t *testing.T) {
	a := Analyze(nil, nil)
	assert.Equal(t, 0, a.TotalEmployees)
	assert.Nil(t, a.TopDepartment)
	assert.Empty(t, a.Departments)
	assert.Len(t, a.RatingDistribution, 5)

	records := []model.Employee{
		testutil.Employee(1, "Sales", 4),
		testutil.Employee(2, "HR", 5),
	}
	a = Analyze(records, IDSet([]int{2}))
	assert.Equal(t, 2, a.TotalEmployees)
	assert.Equal(t, 4.5, a.AverageRating)
	assert.Equal(t, 1, a.HighPerformers)
	require.NotNil(t, a.TopDepartment)
	assert.Equal(t, "HR", a.TopDepartment.Department)
	assert.Equal(t, 1, a.TopDepartment.Bookmarked)
}

func TestAggregatesAreRepeatable(t *testing.T) {
	records := []model.Employee{
		testutil.Employee(1, "Sales", 4),
		testutil.Employee(2, "HR", 5),
		testutil.Employee(3, "Sales", 5),
	}
	first := Analyze(records, IDSet([]int{3}))
	second := Analyze(records, IDSet([]int{3}))
	assert.Equal(t, first, second)
}

func TestRoundTo1(t *testing.T) {
	assert.Equal(t, 4.3, RoundTo1(4.333))
	assert.Equal(t, 4.5, RoundTo1(4.45))
	assert.Equal(t, 0.0, RoundTo1(0))
}
