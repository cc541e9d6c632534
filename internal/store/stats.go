package store

import (
	"context"
	"errors"
	"os"
	"time"
)

// Info holds database statistics.
type Info struct {
	DBPath      string            `json:"db_path"`
	DBSizeBytes int64             `json:"db_size_bytes"`
	Employees   int               `json:"employees"`
	Snapshot    *Snapshot         `json:"snapshot,omitempty"`
	Departments []DepartmentCount `json:"departments"`
	Keys        []KeyInfo         `json:"keys"`
}

// DepartmentCount holds per-department row counts.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// KeyInfo describes one entry of the state table.
type KeyInfo struct {
	Key       string    `json:"key"`
	Revision  string    `json:"revision"`
	Bytes     int       `json:"bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Info returns database statistics.
func (s *SQLiteStore) Info(ctx context.Context) (*Info, error) {
	info := &Info{DBPath: s.path, Departments: []DepartmentCount{}, Keys: []KeyInfo{}}

	if fi, err := os.Stat(s.path); err == nil {
		info.DBSizeBytes = fi.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&info.Employees)

	snap, err := s.LatestSnapshot(ctx)
	if err != nil && !errors.Is(err, ErrNoSnapshot) {
		return info, err
	}
	info.Snapshot = snap

	rows, err := s.db.QueryContext(ctx, `
		SELECT department, COUNT(*) AS cnt
		FROM employees
		GROUP BY department ORDER BY cnt DESC, department`)
	if err != nil {
		return info, err
	}
	defer rows.Close()
	for rows.Next() {
		var d DepartmentCount
		if err := rows.Scan(&d.Department, &d.Count); err != nil {
			return info, err
		}
		info.Departments = append(info.Departments, d)
	}

	keys, err := s.db.QueryContext(ctx, `SELECT key, revision, LENGTH(payload), updated_at FROM state ORDER BY key`)
	if err != nil {
		return info, err
	}
	defer keys.Close()
	for keys.Next() {
		var k KeyInfo
		var updated string
		if err := keys.Scan(&k.Key, &k.Revision, &k.Bytes, &updated); err != nil {
			return info, err
		}
		k.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		info.Keys = append(info.Keys, k)
	}

	return info, nil
}
