package engine

import (
	"testing"

	"github.com/phishguard/phishguard/internal/core"
)

func TestAnalyzeAttachmentsExecutable(t *testing.T) {
	e := newTestEngine(nil, nil)

	score, indicators := e.analyzeAttachments([]core.Attachment{
		{Filename: "virus.exe", ContentType: "application/octet-stream"},
	})
	if !hasIndicator(indicators, "malicious_attachment_type") {
		t.Errorf("expected malicious_attachment_type, got %v", indicators)
	}
	if hasIndicator(indicators, "double_extension_attachment") {
		t.Errorf("single extension must not flag as double, got %v", indicators)
	}
	if score != 50 {
		t.Errorf("expected score 50, got %.1f", score)
	}
}

func TestAnalyzeAttachmentsDisguisedExecutable(t *testing.T) {
	e := newTestEngine(nil, nil)

	// invoice.pdf.exe is both an executable and a double-extension trick;
	// the declared PDF type still points at a name containing .pdf, so no
	// mismatch is reported on top
	score, indicators := e.analyzeAttachments([]core.Attachment{
		{Filename: "invoice.pdf.exe", ContentType: "application/pdf"},
	})
	if !hasIndicator(indicators, "malicious_attachment_type") {
		t.Errorf("expected malicious_attachment_type, got %v", indicators)
	}
	if !hasIndicator(indicators, "double_extension_attachment") {
		t.Errorf("expected double_extension_attachment, got %v", indicators)
	}
	if hasIndicator(indicators, "content_type_mismatch") {
		t.Errorf("did not expect content_type_mismatch, got %v", indicators)
	}
	if score != 100 {
		t.Errorf("expected score 100, got %.1f", score)
	}
}

func TestAnalyzeAttachmentsContentTypeMismatch(t *testing.T) {
	e := newTestEngine(nil, nil)

	score, indicators := e.analyzeAttachments([]core.Attachment{
		{Filename: "notes.txt", ContentType: "application/pdf"},
	})
	if !hasIndicator(indicators, "content_type_mismatch") {
		t.Errorf("expected content_type_mismatch, got %v", indicators)
	}
	if score != 30 {
		t.Errorf("expected score 30, got %.1f", score)
	}
}

func TestAnalyzeAttachmentsClean(t *testing.T) {
	e := newTestEngine(nil, nil)

	testCases := []struct {
		name       string
		attachment core.Attachment
	}{
		{"plain pdf", core.Attachment{Filename: "report.pdf", ContentType: "application/pdf"}},
		{"archive", core.Attachment{Filename: "archive.tar.gz", ContentType: "application/gzip"}},
		{"image", core.Attachment{Filename: "photo.png", ContentType: "image/png"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, indicators := e.analyzeAttachments([]core.Attachment{tc.attachment})
			if score != 0 || len(indicators) != 0 {
				t.Errorf("expected no findings, got score %.1f indicators %v", score, indicators)
			}
		})
	}
}

func TestAnalyzeAttachmentsMultiple(t *testing.T) {
	e := newTestEngine(nil, nil)

	// Each attachment is scored independently
	score, indicators := e.analyzeAttachments([]core.Attachment{
		{Filename: "report.pdf", ContentType: "application/pdf"},
		{Filename: "setup.msi", ContentType: "application/octet-stream"},
		{Filename: "payload.js", ContentType: "text/javascript"},
	})
	if got := countIndicator(indicators, "malicious_attachment_type"); got != 2 {
		t.Errorf("expected two malicious_attachment_type indicators, got %d", got)
	}
	if score != 100 {
		t.Errorf("expected score 100, got %.1f", score)
	}
}

func TestAnalyzeAttachmentsNone(t *testing.T) {
	e := newTestEngine(nil, nil)

	score, indicators := e.analyzeAttachments(nil)
	if score != 0 || len(indicators) != 0 {
		t.Errorf("expected no findings, got score %.1f indicators %v", score, indicators)
	}
}
