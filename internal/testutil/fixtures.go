// Package testutil provides deterministic employee fixtures for tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/rcliao/staff-directory/internal/model"
)

// Employee returns a valid record with the given identity, department and
// rating. Names are derived from the id so search tests can target them.
func Employee(id int, department string, rating int) model.Employee {
	history := make([]model.PerformanceEntry, len(model.HistoryMonths))
	for i, m := range model.HistoryMonths {
		history[i] = model.PerformanceEntry{Month: m, Rating: 4.5, ProjectCount: 2}
	}
	first := fmt.Sprintf("First%d", id)
	last := fmt.Sprintf("Last%d", id)
	return model.Employee{
		ID:         id,
		FirstName:  first,
		LastName:   last,
		Email:      strings.ToLower(first) + "@example.com",
		Phone:      "+1 555-0100",
		Age:        30,
		Department: department,
		Rating:     rating,
		Address: model.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			Country: "United States",
		},
		Bio:      first + " works in " + department + ".",
		Projects: []string{"Process Automation"},
		Feedback: []model.Feedback{
			{ID: 1, Author: "Sarah Johnson", Rating: 5, Comment: "Great", Date: "2026-01-15"},
		},
		PerformanceHistory: history,
	}
}

// Named returns Employee with explicit first and last names.
func Named(id int, first, last, department string, rating int) model.Employee {
	e := Employee(id, department, rating)
	e.FirstName = first
	e.LastName = last
	e.Email = strings.ToLower(first+"."+last) + "@example.com"
	return e
}
