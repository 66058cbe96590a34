package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GenerationMetric records metadata for a single plan generation.
type GenerationMetric struct {
	UserID        string
	DurationMS    int64
	PoolSize      int
	FilledSlots   int
	TotalCalories int
	Timestamp     time.Time
}

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_metrics (user_id, duration_ms, pool_size, filled_slots, total_calories, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.UserID, m.DurationMS, m.PoolSize, m.FilledSlots, m.TotalCalories, ts)
	if err != nil {
		return fmt.Errorf("failed to insert generation metric: %w", err)
	}
	return nil
}

// DailyUsage represents generation totals for a single day.
type DailyUsage struct {
	Date          string  `json:"date"`
	Generations   int     `json:"generations"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	FilledSlots   int     `json:"filled_slots"`
}

// GetDailyUsage retrieves per-day generation stats for the last N days,
// newest day first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(timestamp) AS day, COUNT(*), AVG(duration_ms), SUM(filled_slots)
		FROM generation_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var (
			u      DailyUsage
			avg    sql.NullFloat64
			filled sql.NullInt64
		)
		if err := rows.Scan(&u.Date, &u.Generations, &avg, &filled); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage row: %w", err)
		}
		if avg.Valid {
			u.AvgDurationMS = avg.Float64
		}
		if filled.Valid {
			u.FilledSlots = int(filled.Int64)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM generation_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up generation metrics: %w", err)
	}
	return res.RowsAffected()
}
