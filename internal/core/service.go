package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/department"
	"github.com/phishguard/phishguard/internal/utils"
)

// ocrSuspiciousFloor is the minimum risk score for an email whose image
// attachment was flagged by the OCR collaborator. Image-embedded phishing is
// treated as high severity regardless of what the text analyzers scored.
const ocrSuspiciousFloor = 70

// ThreatDetectionService runs the scoring engine over incoming emails,
// merges the OCR collaborator's findings and logs suspicious verdicts to the
// threat store
type ThreatDetectionService struct {
	analyzer   ThreatAnalyzer
	scanner    ImageScanner
	store      ThreatStore
	classifier *department.Classifier
	processor  *utils.TextProcessor
	logger     *zap.Logger
}

// NewThreatDetectionService creates a new threat detection service. The
// scanner and store may be nil; the corresponding steps are skipped.
func NewThreatDetectionService(
	analyzer ThreatAnalyzer,
	scanner ImageScanner,
	store ThreatStore,
	classifier *department.Classifier,
	processor *utils.TextProcessor,
	logger *zap.Logger,
) *ThreatDetectionService {
	return &ThreatDetectionService{
		analyzer:   analyzer,
		scanner:    scanner,
		store:      store,
		classifier: classifier,
		processor:  processor,
		logger:     logger,
	}
}

// ProcessEmail analyzes one email and returns its verdict. It always
// produces a verdict: scanner and store failures are logged per item and
// never abort the analysis.
func (s *ThreatDetectionService) ProcessEmail(ctx context.Context, email *Email) (*Verdict, error) {
	if s.processor != nil {
		email.Subject = s.processor.SanitizeUTF8(email.Subject)
		email.BodyPlain = s.processor.SanitizeUTF8(email.BodyPlain)
		email.BodyHTML = s.processor.SanitizeUTF8(email.BodyHTML)
	}

	verdict := s.analyzer.Analyze(email)

	if s.scanner != nil {
		s.mergeImageFindings(ctx, email, verdict)
	}

	if s.store != nil && verdict.IsSuspicious {
		s.logThreat(ctx, email, verdict)
	}

	return verdict, nil
}

// mergeImageFindings scans image attachments through the OCR collaborator
// and folds its findings into the verdict: suspicious flags are ORed, the
// indicator lists concatenated, and the risk score raised to the OCR floor
func (s *ThreatDetectionService) mergeImageFindings(ctx context.Context, email *Email, verdict *Verdict) {
	for i := range email.Attachments {
		attachment := &email.Attachments[i]
		if !strings.HasPrefix(strings.ToLower(attachment.ContentType), "image/") {
			continue
		}

		suspicious, indicators, err := s.scanner.ScanImage(ctx, attachment)
		if err != nil {
			s.logger.Warn("Image scan failed, skipping attachment",
				zap.String("filename", attachment.Filename),
				zap.Error(err))
			continue
		}
		if !suspicious {
			continue
		}

		verdict.IsSuspicious = true
		verdict.Indicators = append(verdict.Indicators, indicators...)
		if verdict.RiskScore < ocrSuspiciousFloor {
			verdict.RiskScore = ocrSuspiciousFloor
		}

		s.logger.Info("Suspicious image attachment detected",
			zap.String("filename", attachment.Filename),
			zap.Int("indicator_count", len(indicators)))
	}
}

// logThreat persists a suspicious verdict. Store errors are logged, not
// returned: the alerting pipeline still needs the verdict.
func (s *ThreatDetectionService) logThreat(ctx context.Context, email *Email, verdict *Verdict) {
	recipient := firstRecipient(email.To)

	record := &ThreatRecord{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		EmailID:     email.MessageID,
		Sender:      email.From,
		Recipient:   email.To,
		Subject:     email.Subject,
		RiskScore:   verdict.RiskScore,
		ThreatType:  verdict.ThreatType,
		Indicators:  verdict.Indicators,
		Department:  s.classifier.Classify(recipient),
		ActionTaken: "alert_logged",
	}

	if err := s.store.Save(ctx, record); err != nil {
		s.logger.Error("Failed to log threat", zap.Error(err), zap.String("threat_id", record.ID))
		return
	}

	s.logger.Info("Threat logged", zap.String("threat_id", record.ID),
		zap.String("department", record.Department))
}

func firstRecipient(to string) string {
	if idx := strings.Index(to, ","); idx >= 0 {
		return strings.TrimSpace(to[:idx])
	}
	return strings.TrimSpace(to)
}
