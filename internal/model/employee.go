// Package model defines the core employee data types.
package model

import (
	"fmt"
)

// Employee represents an enriched personnel record. Records are immutable
// once they enter the record store.
type Employee struct {
	ID                 int                `json:"id"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	Age                int                `json:"age"`
	Image              string             `json:"image,omitempty"`
	Department         string             `json:"department"`
	Rating             int                `json:"rating"`
	Address            Address            `json:"address"`
	Bio                string             `json:"bio"`
	Projects           []string           `json:"projects"`
	Feedback           []Feedback         `json:"feedback"`
	PerformanceHistory []PerformanceEntry `json:"performanceHistory"`
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Address is an employee's postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Feedback is a single peer review.
type Feedback struct {
	ID      int    `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"` // YYYY-MM-DD
}

// PerformanceEntry is one month of performance history.
type PerformanceEntry struct {
	Month        string  `json:"month"`
	Rating       float64 `json:"rating"`
	ProjectCount int     `json:"projects"`
}

// Departments is the fixed department enumeration.
var Departments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"HR",
	"Finance",
	"Operations",
	"Design",
	"Customer Support",
}

// ValidDepartments is a lookup set over Departments.
var ValidDepartments = func() map[string]bool {
	m := make(map[string]bool, len(Departments))
	for _, d := range Departments {
		m[d] = true
	}
	return m
}()

// HistoryMonths are the performance history labels, in chronological order.
var HistoryMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

const (
	MinRating = 1
	MaxRating = 5

	MinPerformanceRating = 3.5
	MaxPerformanceRating = 5.0

	MinProjects = 1
	MaxProjects = 4

	MinFeedback = 1
	MaxFeedback = 4
)

// Validate checks the record-level invariants.
func (e Employee) Validate() error {
	if !ValidDepartments[e.Department] {
		return fmt.Errorf("employee %d: unknown department %q", e.ID, e.Department)
	}
	if e.Rating < MinRating || e.Rating > MaxRating {
		return fmt.Errorf("employee %d: rating %d out of range [%d,%d]", e.ID, e.Rating, MinRating, MaxRating)
	}
	if n := len(e.Projects); n < MinProjects || n > MaxProjects {
		return fmt.Errorf("employee %d: %d projects (want %d-%d)", e.ID, n, MinProjects, MaxProjects)
	}
	if n := len(e.Feedback); n < MinFeedback || n > MaxFeedback {
		return fmt.Errorf("employee %d: %d feedback entries (want %d-%d)", e.ID, n, MinFeedback, MaxFeedback)
	}
	for _, f := range e.Feedback {
		if f.Rating < MinRating || f.Rating > MaxRating {
			return fmt.Errorf("employee %d: feedback %d rating %d out of range", e.ID, f.ID, f.Rating)
		}
	}
	if len(e.PerformanceHistory) != len(HistoryMonths) {
		return fmt.Errorf("employee %d: %d performance entries (want %d)", e.ID, len(e.PerformanceHistory), len(HistoryMonths))
	}
	for i, p := range e.PerformanceHistory {
		if p.Month != HistoryMonths[i] {
			return fmt.Errorf("employee %d: performance entry %d is %q, want %q", e.ID, i, p.Month, HistoryMonths[i])
		}
		if p.Rating < MinPerformanceRating || p.Rating > MaxPerformanceRating {
			return fmt.Errorf("employee %d: %s rating %.1f out of range", e.ID, p.Month, p.Rating)
		}
	}
	return nil
}

// ValidateCollection validates every record and checks id uniqueness.
func ValidateCollection(employees []Employee) error {
	seen := make(map[int]bool, len(employees))
	for _, e := range employees {
		if seen[e.ID] {
			return fmt.Errorf("duplicate employee id %d", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
