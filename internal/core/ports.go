package core

import (
	"context"
	"time"
)

// ThreatAnalyzer defines the interface for the threat scoring engine
type ThreatAnalyzer interface {
	// Analyze inspects an email and produces a risk verdict
	Analyze(email *Email) *Verdict
}

// ThreatStore defines the interface for persisting suspicious verdicts
type ThreatStore interface {
	// Save stores a threat record
	Save(ctx context.Context, record *ThreatRecord) error

	// List retrieves stored threat records matching the filter
	List(ctx context.Context, filter ListFilter) ([]*ThreatRecord, error)

	// Stats returns per-department aggregates for records logged since the
	// given time
	Stats(ctx context.Context, since time.Time) (map[string]*DepartmentStats, error)
}

// ImageScanner defines the interface to the OCR collaborator that inspects
// image attachments for embedded phishing content
type ImageScanner interface {
	// ScanImage extracts text from an image attachment and reports whether
	// it looks suspicious, along with the indicators found
	ScanImage(ctx context.Context, attachment *Attachment) (bool, []string, error)
}

// EmailSource defines the interface to the mail-fetch collaborator
type EmailSource interface {
	// Fetch retrieves the next batch of unprocessed emails
	Fetch(ctx context.Context) ([]*Email, error)
}
