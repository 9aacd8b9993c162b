package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recipe-box/internal/database"
)

// WriteMetric records metadata for a single persisted store snapshot.
type WriteMetric struct {
	StoreKey  string
	Bytes     int
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m WriteMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO store_writes (store_key, bytes, latency_ms, timestamp) VALUES (?, ?, ?, ?)`,
		m.StoreKey, m.Bytes, m.LatencyMS, database.FormatTime(ts))
	if err != nil {
		return fmt.Errorf("failed to insert write metric: %w", err)
	}
	return nil
}

// RecordWrite records one successful storage write.
func (s *Store) RecordWrite(ctx context.Context, key string, size int, latency time.Duration) error {
	return s.Record(ctx, WriteMetric{
		StoreKey:  key,
		Bytes:     size,
		LatencyMS: latency.Milliseconds(),
		Timestamp: time.Now().UTC(),
	})
}

// DailyUsage represents write totals for a single day.
type DailyUsage struct {
	Date   string
	Writes int
	Bytes  int64
}

// GetDailyUsage retrieves usage for the last N days, newest day first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := database.FormatTime(time.Now().AddDate(0, 0, -days))
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', timestamp) AS day, COUNT(*), COALESCE(SUM(bytes), 0)
		FROM store_writes
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
			day sql.NullString
			u   DailyUsage
		)
		if err := rows.Scan(&day, &u.Writes, &u.Bytes); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		if day.Valid {
			u.Date = day.String
		} else {
			u.Date = "Unknown"
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// StoreUsage represents write totals for one storage key.
type StoreUsage struct {
	StoreKey     string
	Writes       int
	Bytes        int64
	AvgLatencyMS float64
}

// GetStoreUsage breaks the last N days of writes down by storage key, busiest first.
func (s *Store) GetStoreUsage(ctx context.Context, days int) ([]StoreUsage, error) {
	since := database.FormatTime(time.Now().AddDate(0, 0, -days))
	rows, err := s.db.QueryContext(ctx, `
		SELECT store_key, COUNT(*), COALESCE(SUM(bytes), 0), COALESCE(AVG(latency_ms), 0)
		FROM store_writes
		WHERE timestamp >= ?
		GROUP BY store_key
		ORDER BY COUNT(*) DESC, store_key ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query store usage: %w", err)
	}
	defer rows.Close()

	var results []StoreUsage
	for rows.Next() {
		var u StoreUsage
		if err := rows.Scan(&u.StoreKey, &u.Writes, &u.Bytes, &u.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan store usage: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := database.FormatTime(time.Now().AddDate(0, 0, -olderThanDays))
	res, err := s.db.ExecContext(ctx, `DELETE FROM store_writes WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up write metrics: %w", err)
	}
	return res.RowsAffected()
}
