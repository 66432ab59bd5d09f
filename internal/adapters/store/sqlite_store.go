package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/phishguard/phishguard/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the ThreatStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite threat store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS threats (
			id TEXT PRIMARY KEY,
			timestamp TIMESTAMP,
			email_id TEXT,
			sender TEXT,
			recipient TEXT,
			subject TEXT,
			risk_score REAL,
			threat_type TEXT,
			indicators TEXT,
			department TEXT,
			action_taken TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index on timestamp for time-window queries
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_threats_timestamp ON threats(timestamp)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save stores a threat record
func (s *SQLiteStore) Save(ctx context.Context, record *core.ThreatRecord) error {
	indicators, err := json.Marshal(record.Indicators)
	if err != nil {
		return fmt.Errorf("failed to encode indicators: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO threats
		(id, timestamp, email_id, sender, recipient, subject, risk_score,
		threat_type, indicators, department, action_taken)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.EmailID,
		record.Sender,
		record.Recipient,
		record.Subject,
		record.RiskScore,
		record.ThreatType,
		string(indicators),
		record.Department,
		record.ActionTaken,
	)
	if err != nil {
		return fmt.Errorf("failed to insert threat record: %w", err)
	}

	return nil
}

// List retrieves stored threat records matching the filter
func (s *SQLiteStore) List(ctx context.Context, filter core.ListFilter) ([]*core.ThreatRecord, error) {
	query := `
		SELECT id, timestamp, email_id, sender, recipient, subject, risk_score,
		       threat_type, indicators, department, action_taken
		FROM threats
		WHERE timestamp >= ? AND risk_score >= ?
	`
	args := []any{filter.Since.Format(time.RFC3339), filter.MinRiskScore}

	if filter.Department != "" {
		query += " AND department = ?"
		args = append(args, filter.Department)
	}
	query += " ORDER BY timestamp DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query threats: %w", err)
	}
	defer rows.Close()

	var records []*core.ThreatRecord
	for rows.Next() {
		record, err := s.scanRecord(rows)
		if err != nil {
			s.logger.Error("Failed to scan threat record", zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) scanRecord(rows *sql.Rows) (*core.ThreatRecord, error) {
	var record core.ThreatRecord
	var timestamp, indicators string

	if err := rows.Scan(&record.ID, &timestamp, &record.EmailID, &record.Sender,
		&record.Recipient, &record.Subject, &record.RiskScore, &record.ThreatType,
		&indicators, &record.Department, &record.ActionTaken); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	record.Timestamp = parsed

	if err := json.Unmarshal([]byte(indicators), &record.Indicators); err != nil {
		s.logger.Warn("Failed to decode indicators, keeping record without them",
			zap.String("threat_id", record.ID), zap.Error(err))
		record.Indicators = nil
	}

	return &record, nil
}

// Stats returns per-department aggregates for records logged since the given time
func (s *SQLiteStore) Stats(ctx context.Context, since time.Time) (map[string]*core.DepartmentStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT department,
		       COUNT(*) as threat_count,
		       AVG(risk_score) as avg_risk,
		       MAX(risk_score) as max_risk,
		       COUNT(DISTINCT sender) as unique_senders
		FROM threats
		WHERE timestamp >= ?
		GROUP BY department
		ORDER BY threat_count DESC
	`, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query department stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*core.DepartmentStats)
	for rows.Next() {
		var entry core.DepartmentStats
		if err := rows.Scan(&entry.Department, &entry.ThreatCount, &entry.AvgRisk,
			&entry.MaxRisk, &entry.UniqueSenders); err != nil {
			return nil, fmt.Errorf("failed to scan department stats: %w", err)
		}
		stats[entry.Department] = &entry
	}
	return stats, rows.Err()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
