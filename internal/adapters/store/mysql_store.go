package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/phishguard/phishguard/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the ThreatStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL threat store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS threats (
			id VARCHAR(36) PRIMARY KEY,
			timestamp TIMESTAMP,
			email_id VARCHAR(255),
			sender VARCHAR(255),
			recipient TEXT,
			subject TEXT,
			risk_score FLOAT,
			threat_type VARCHAR(64),
			indicators TEXT,
			department VARCHAR(64),
			action_taken VARCHAR(64),
			INDEX idx_threats_timestamp (timestamp)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save stores a threat record
func (s *MySQLStore) Save(ctx context.Context, record *core.ThreatRecord) error {
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
		record.Timestamp,
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
func (s *MySQLStore) List(ctx context.Context, filter core.ListFilter) ([]*core.ThreatRecord, error) {
	query := `
		SELECT id, timestamp, email_id, sender, recipient, subject, risk_score,
		       threat_type, indicators, department, action_taken
		FROM threats
		WHERE timestamp >= ? AND risk_score >= ?
	`
	args := []any{filter.Since, filter.MinRiskScore}

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
		var record core.ThreatRecord
		var indicators string
		if err := rows.Scan(&record.ID, &record.Timestamp, &record.EmailID, &record.Sender,
			&record.Recipient, &record.Subject, &record.RiskScore, &record.ThreatType,
			&indicators, &record.Department, &record.ActionTaken); err != nil {
			s.logger.Error("Failed to scan threat record", zap.Error(err))
			continue
		}
		if err := json.Unmarshal([]byte(indicators), &record.Indicators); err != nil {
			s.logger.Warn("Failed to decode indicators, keeping record without them",
				zap.String("threat_id", record.ID), zap.Error(err))
			record.Indicators = nil
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Stats returns per-department aggregates for records logged since the given time
func (s *MySQLStore) Stats(ctx context.Context, since time.Time) (map[string]*core.DepartmentStats, error) {
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
	`, since)
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
