package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/staff-directory/internal/model"
)

// SaveEmployees replaces the stored collection with employees under a new
// snapshot id. The replacement is a single transaction.
func (s *SQLiteStore) SaveEmployees(ctx context.Context, source string, employees []model.Employee) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        s.newID(),
		Source:    source,
		Count:     len(employees),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return nil, fmt.Errorf("clear employees: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, count, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.Count, snap.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	for i, e := range employees {
		b, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encode employee %d: %w", e.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO employees (id, snapshot_id, seq, department, rating, payload)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, snap.ID, i, e.Department, e.Rating, string(b))
		if err != nil {
			return nil, fmt.Errorf("insert employee %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

// LoadEmployees returns the current snapshot in its original order, or
// ErrNoSnapshot if nothing was ever saved.
func (s *SQLiteStore) LoadEmployees(ctx context.Context) ([]model.Employee, error) {
	if _, err := s.LatestSnapshot(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM employees ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var e model.Employee
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// LatestSnapshot returns the most recently saved snapshot.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, count, created_at FROM snapshots ORDER BY id DESC LIMIT 1`).
		Scan(&snap.ID, &snap.Source, &snap.Count, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &snap, nil
}
