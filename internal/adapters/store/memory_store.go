package store

import (
	"context"
	"sync"
	"time"

	"github.com/phishguard/phishguard/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the ThreatStore interface
type MemoryStore struct {
	records []*core.ThreatRecord
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory threat store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		logger: logger,
	}
}

// Save stores a threat record
func (s *MemoryStore) Save(ctx context.Context, record *core.ThreatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	return nil
}

// List retrieves stored threat records matching the filter
func (s *MemoryStore) List(ctx context.Context, filter core.ListFilter) ([]*core.ThreatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*core.ThreatRecord
	for _, record := range s.records {
		if record.Timestamp.Before(filter.Since) {
			continue
		}
		if record.RiskScore < filter.MinRiskScore {
			continue
		}
		if filter.Department != "" && record.Department != filter.Department {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// Stats returns per-department aggregates for records logged since the given time
func (s *MemoryStore) Stats(ctx context.Context, since time.Time) (map[string]*core.DepartmentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]*core.DepartmentStats)
	senders := make(map[string]map[string]struct{})
	totals := make(map[string]float64)

	for _, record := range s.records {
		if record.Timestamp.Before(since) {
			continue
		}

		entry, ok := stats[record.Department]
		if !ok {
			entry = &core.DepartmentStats{Department: record.Department}
			stats[record.Department] = entry
			senders[record.Department] = make(map[string]struct{})
		}

		entry.ThreatCount++
		totals[record.Department] += record.RiskScore
		if record.RiskScore > entry.MaxRisk {
			entry.MaxRisk = record.RiskScore
		}
		senders[record.Department][record.Sender] = struct{}{}
	}

	for department, entry := range stats {
		entry.AvgRisk = totals[department] / float64(entry.ThreatCount)
		entry.UniqueSenders = len(senders[department])
	}

	return stats, nil
}
