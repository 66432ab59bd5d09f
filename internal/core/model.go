package core

import (
	"time"
)

// Email represents a fully parsed email message. MIME parsing, charset
// decoding and attachment extraction are the responsibility of the caller;
// the engine only reads the decoded fields.
type Email struct {
	MessageID   string
	Subject     string
	From        string
	To          string
	Cc          string
	Headers     map[string]string
	BodyPlain   string
	BodyHTML    string
	Attachments []Attachment
}

// Attachment represents a decoded email attachment. Data is opaque to the
// engine; only the filename and content type are inspected.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Verdict represents the result of analyzing a single email
type Verdict struct {
	IsSuspicious bool
	RiskScore    float64
	ThreatType   string
	Indicators   []string
	AnalyzedAt   time.Time
}

// ThreatRecord is the persisted form of a suspicious verdict
type ThreatRecord struct {
	ID          string
	Timestamp   time.Time
	EmailID     string
	Sender      string
	Recipient   string
	Subject     string
	RiskScore   float64
	ThreatType  string
	Indicators  []string
	Department  string
	ActionTaken string
}

// DepartmentStats aggregates logged threats for one department
type DepartmentStats struct {
	Department    string
	ThreatCount   int
	AvgRisk       float64
	MaxRisk       float64
	UniqueSenders int
}

// ListFilter narrows a threat store listing
type ListFilter struct {
	Department   string
	Since        time.Time
	MinRiskScore float64
}
