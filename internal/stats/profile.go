package stats

import (
	"github.com/rcliao/staff-directory/internal/model"
)

// EmployeeProfile holds derived analytics for a single record.
type EmployeeProfile struct {
	AveragePerformance float64                 `json:"average_performance"`
	PerformanceTrend   float64                 `json:"performance_trend"`
	TotalProjects      int                     `json:"total_history_projects"`
	AverageFeedback    float64                 `json:"average_feedback"`
	Latest             *model.PerformanceEntry `json:"latest,omitempty"`
}

// Profile derives per-record analytics from the performance history and
// feedback. Trend is the last month's rating minus the first month's.
func Profile(e model.Employee) EmployeeProfile {
	var p EmployeeProfile

	history := e.PerformanceHistory
	if n := len(history); n > 0 {
		var total float64
		for _, h := range history {
			total += h.Rating
			p.TotalProjects += h.ProjectCount
		}
		p.AveragePerformance = total / float64(n)
		p.PerformanceTrend = history[n-1].Rating - history[0].Rating
		latest := history[n-1]
		p.Latest = &latest
	}

	if n := len(e.Feedback); n > 0 {
		var total int
		for _, f := range e.Feedback {
			total += f.Rating
		}
		p.AverageFeedback = float64(total) / float64(n)
	}

	return p
}
