package source

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rcliao/staff-directory/internal/model"
)

var bioTemplates = []string{
	"%[1]s is a dedicated professional in %[2]s with a passion for innovation and teamwork.",
	"With years of experience in %[2]s, %[1]s brings expertise and leadership to every project.",
	"%[1]s is known for exceptional problem-solving skills and collaborative approach in %[2]s.",
	"A results-driven individual, %[1]s excels in %[2]s and mentors junior team members.",
}

var projectCatalog = []string{
	"Q4 Revenue Growth Initiative",
	"Customer Onboarding Optimization",
	"Data Analytics Dashboard",
	"Mobile App Redesign",
	"Process Automation",
	"Team Training Program",
	"Market Research Study",
	"Product Launch Campaign",
}

var feedbackAuthors = []string{"John Smith", "Sarah Johnson", "Mike Davis", "Emma Wilson", "Alex Brown"}

var feedbackComments = []string{
	"Excellent team player with great communication skills",
	"Consistently delivers high-quality work on time",
	"Shows great initiative and problem-solving abilities",
	"Very collaborative and helpful to colleagues",
	"Strong technical skills and attention to detail",
}

const feedbackWindow = 90 * 24 * time.Hour

// RandomEnricher synthesizes the directory fields from a seeded source, so
// a given seed and clock always produce the same records.
type RandomEnricher struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewRandomEnricher returns an enricher seeded with seed.
func NewRandomEnricher(seed int64) *RandomEnricher {
	return &RandomEnricher{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock sets the reference time for feedback dates.
func (r *RandomEnricher) WithClock(now func() time.Time) *RandomEnricher {
	r.now = now
	return r
}

// Enrich implements Enricher.
func (r *RandomEnricher) Enrich(u RawUser) model.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	dept := model.Departments[r.rng.Intn(len(model.Departments))]
	return model.Employee{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Age:       u.Age,
		Image:     u.Image,
		Address: model.Address{
			Street:  u.Address.Address,
			City:    u.Address.City,
			State:   u.Address.State,
			Country: u.Address.Country,
		},
		Department:         dept,
		Rating:             4 + r.rng.Intn(2),
		Bio:                fmt.Sprintf(bioTemplates[r.rng.Intn(len(bioTemplates))], u.FirstName, dept),
		Projects:           r.projects(),
		Feedback:           r.feedback(),
		PerformanceHistory: r.history(),
	}
}

func (r *RandomEnricher) projects() []string {
	n := model.MinProjects + r.rng.Intn(model.MaxProjects-model.MinProjects+1)
	out := make([]string, 0, n)
	for _, i := range r.rng.Perm(len(projectCatalog))[:n] {
		out = append(out, projectCatalog[i])
	}
	return out
}

func (r *RandomEnricher) feedback() []model.Feedback {
	n := model.MinFeedback + r.rng.Intn(model.MaxFeedback-model.MinFeedback+1)
	now := r.now().UTC()
	out := make([]model.Feedback, n)
	for i := range out {
		age := time.Duration(r.rng.Int63n(int64(feedbackWindow)))
		out[i] = model.Feedback{
			ID:      i + 1,
			Author:  feedbackAuthors[r.rng.Intn(len(feedbackAuthors))],
			Rating:  4 + r.rng.Intn(2),
			Comment: feedbackComments[r.rng.Intn(len(feedbackComments))],
			Date:    now.Add(-age).Format("2006-01-02"),
		}
	}
	return out
}

// history yields one entry per month rated 3.5 or 4.5 with 1-5 projects.
func (r *RandomEnricher) history() []model.PerformanceEntry {
	out := make([]model.PerformanceEntry, len(model.HistoryMonths))
	for i, m := range model.HistoryMonths {
		out[i] = model.PerformanceEntry{
			Month:        m,
			Rating:       model.MinPerformanceRating + float64(r.rng.Intn(2)),
			ProjectCount: 1 + r.rng.Intn(5),
		}
	}
	return out
}
