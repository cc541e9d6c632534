package stats

import (
	"testing"

	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/testutil"
)

func TestProfile(t *testing.T) {
	e := testutil.Employee(7, "Finance", 4)
	ratings := []float64{3.5, 4.5, 4.5, 3.5, 4.5, 4.5}
	for i := range e.PerformanceHistory {
		e.PerformanceHistory[i].Rating = ratings[i]
		e.PerformanceHistory[i].ProjectCount = i + 1
	}
	e.Feedback = []model.Feedback{
		{ID: 1, Rating: 4},
		{ID: 2, Rating: 5},
	}

	p := Profile(e)
	if p.AveragePerformance != 25.0/6 {
		t.Errorf("average performance = %v, want %v", p.AveragePerformance, 25.0/6)
	}
	if p.PerformanceTrend != 1.0 {
		t.Errorf("trend = %v, want 1.0", p.PerformanceTrend)
	}
	if p.TotalProjects != 21 {
		t.Errorf("total projects = %d, want 21", p.TotalProjects)
	}
	if p.AverageFeedback != 4.5 {
		t.Errorf("average feedback = %v, want 4.5", p.AverageFeedback)
	}
	if p.Latest == nil || p.Latest.Month != "Jun" {
		t.Errorf("latest = %+v, want Jun", p.Latest)
	}
}

func TestProfile_Empty(t *testing.T) {
	p := Profile(model.Employee{})
	if p.AveragePerformance != 0 || p.AverageFeedback != 0 || p.TotalProjects != 0 || p.Latest != nil {
		t.Errorf("expected zero profile, got %+v", p)
	}
}
