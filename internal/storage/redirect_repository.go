package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// RecordRedirect inserts a generated redirect link. The ID field of r
// is populated on success.
func (db *DB) RecordRedirect(ctx context.Context, r *Redirect) error {
	query := `
		INSERT INTO redirects (sender, department, link, created_at)
		VALUES (?, ?, ?, ?)
	`

	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, query, r.Sender, r.Department, r.Link, r.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to record redirect",
			"sender", r.Sender,
			"department", r.Department,
			"error", err)
		return fmt.Errorf("failed to record redirect: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		r.ID = id
	}

	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "RecordRedirect",
			"duration_ms", duration.Milliseconds())
	}
	return nil
}

// MarkRedirectClicked flags a redirect as followed by the student.
func (db *DB) MarkRedirectClicked(ctx context.Context, id int64) error {
	query := `UPDATE redirects SET clicked = 1, clicked_at = ? WHERE id = ?`

	res, err := db.conn.ExecContext(ctx, query, time.Now().Unix(), id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark redirect clicked",
			"redirect_id", id,
			"error", err)
		return fmt.Errorf("failed to mark redirect clicked: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("redirect %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// RedirectStats aggregates redirect totals, per-department counts, and
// the click-through rate.
func (db *DB) RedirectStats(ctx context.Context) (*RedirectStats, error) {
	stats := &RedirectStats{}

	summary := `SELECT COUNT(*), COALESCE(AVG(clicked), 0) FROM redirects`
	if err := db.conn.QueryRowContext(ctx, summary).Scan(
		&stats.TotalRedirects,
		&stats.ClickRate,
	); err != nil {
		slog.ErrorContext(ctx, "failed to query redirect summary", "error", err)
		return nil, fmt.Errorf("failed to query redirect summary: %w", err)
	}

	byDept := `
		SELECT department, COUNT(*)
		FROM redirects
		GROUP BY department
		ORDER BY COUNT(*) DESC
	`
	rows, err := db.conn.QueryContext(ctx, byDept)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query redirect department counts", "error", err)
		return nil, fmt.Errorf("failed to query redirect department counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan redirect department count: %w", err)
		}
		stats.ByDepartment = append(stats.ByDepartment, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate redirect department counts: %w", err)
	}

	return stats, nil
}
