package store

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

func seedRecords(t *testing.T, s *MemoryStore) time.Time {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := []*core.ThreatRecord{
		{ID: "1", Timestamp: base, Sender: "a@evil.example", Department: "Finance", RiskScore: 80, ThreatType: "phishing_attempt"},
		{ID: "2", Timestamp: base.Add(time.Hour), Sender: "b@evil.example", Department: "Finance", RiskScore: 60, ThreatType: "spam_email"},
		{ID: "3", Timestamp: base.Add(2 * time.Hour), Sender: "a@evil.example", Department: "IT Department", RiskScore: 45, ThreatType: "phishing_attempt"},
	}
	for _, record := range records {
		if err := s.Save(context.Background(), record); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}
	return base
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	base := seedRecords(t, s)

	testCases := []struct {
		name   string
		filter core.ListFilter
		want   int
	}{
		{"no filter", core.ListFilter{}, 3},
		{"by department", core.ListFilter{Department: "Finance"}, 2},
		{"by min risk", core.ListFilter{MinRiskScore: 70}, 1},
		{"by since", core.ListFilter{Since: base.Add(30 * time.Minute)}, 2},
		{"combined", core.ListFilter{Department: "Finance", MinRiskScore: 70}, 1},
		{"no matches", core.ListFilter{Department: "Sales"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := s.List(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if len(records) != tc.want {
				t.Errorf("List() returned %d records, want %d", len(records), tc.want)
			}
		})
	}
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	seedRecords(t, s)

	stats, err := s.Stats(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}

	finance, ok := stats["Finance"]
	if !ok {
		t.Fatal("expected Finance entry in stats")
	}
	if finance.ThreatCount != 2 {
		t.Errorf("Finance ThreatCount = %d, want 2", finance.ThreatCount)
	}
	if finance.AvgRisk != 70 {
		t.Errorf("Finance AvgRisk = %.1f, want 70", finance.AvgRisk)
	}
	if finance.MaxRisk != 80 {
		t.Errorf("Finance MaxRisk = %.1f, want 80", finance.MaxRisk)
	}
	if finance.UniqueSenders != 2 {
		t.Errorf("Finance UniqueSenders = %d, want 2", finance.UniqueSenders)
	}

	it, ok := stats["IT Department"]
	if !ok {
		t.Fatal("expected IT Department entry in stats")
	}
	if it.ThreatCount != 1 || it.UniqueSenders != 1 {
		t.Errorf("IT Department count/senders = %d/%d, want 1/1", it.ThreatCount, it.UniqueSenders)
	}
}

func TestMemoryStoreStatsSince(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	base := seedRecords(t, s)

	stats, err := s.Stats(context.Background(), base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if _, ok := stats["Finance"]; ok {
		t.Error("Finance records predate the cutoff and must be excluded")
	}
	if _, ok := stats["IT Department"]; !ok {
		t.Error("expected IT Department entry after the cutoff")
	}
}
