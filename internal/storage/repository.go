package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// slowQueryThreshold triggers a warning when a query exceeds it.
const slowQueryThreshold = 100 * time.Millisecond

// RecordMessage inserts a processed message. The ID field of msg is
// populated on success.
func (db *DB) RecordMessage(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO messages (sender, body, department, redirected, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if msg.CreatedAt == 0 {
		msg.CreatedAt = time.Now().Unix()
	}

	redirected := 0
	if msg.Redirected {
		redirected = 1
	}

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, query,
		msg.Sender, msg.Body, msg.Department, redirected, msg.ResponseTimeMs, msg.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to record message",
			"sender", msg.Sender,
			"error", err)
		return fmt.Errorf("failed to record message: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		msg.ID = id
	}

	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "RecordMessage",
			"duration_ms", duration.Milliseconds())
	}
	return nil
}

// Stats aggregates message history: totals, per-department counts,
// per-day counts for the last 7 days, average response time, and the
// share of messages redirected to a department.
func (db *DB) Stats(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	summary := `
		SELECT COUNT(*),
			COALESCE(AVG(response_time_ms), 0),
			COALESCE(AVG(redirected), 0)
		FROM messages
	`
	if err := db.conn.QueryRowContext(ctx, summary).Scan(
		&stats.TotalMessages,
		&stats.AvgResponseTimeMs,
		&stats.RedirectRate,
	); err != nil {
		slog.ErrorContext(ctx, "failed to query message summary", "error", err)
		return nil, fmt.Errorf("failed to query message summary: %w", err)
	}

	byDept := `
		SELECT department, COUNT(*)
		FROM messages
		GROUP BY department
		ORDER BY COUNT(*) DESC
	`
	rows, err := db.conn.QueryContext(ctx, byDept)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query department counts", "error", err)
		return nil, fmt.Errorf("failed to query department counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		stats.ByDepartment = append(stats.ByDepartment, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department counts: %w", err)
	}

	byDay := `
		SELECT DATE(created_at, 'unixepoch') AS day, COUNT(*)
		FROM messages
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day ASC
	`
	since := time.Now().AddDate(0, 0, -7).Unix()
	dayRows, err := db.conn.QueryContext(ctx, byDay, since)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query daily counts", "error", err)
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var dc DayCount
		if err := dayRows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		stats.ByDay = append(stats.ByDay, dc)
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily counts: %w", err)
	}

	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "Stats",
			"duration_ms", duration.Milliseconds())
	}
	return stats, nil
}

// RecentMessages returns the most recent messages, newest first.
func (db *DB) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, sender, body, department, redirected, response_time_ms, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query recent messages", "error", err)
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		var redirected int
		if err := rows.Scan(
			&msg.ID,
			&msg.Sender,
			&msg.Body,
			&msg.Department,
			&redirected,
			&msg.ResponseTimeMs,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Redirected = redirected != 0
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "RecentMessages",
			"duration_ms", duration.Milliseconds(),
			"limit", limit)
	}
	return messages, nil
}
