package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// analyzeAttachments checks attachment metadata for executable extensions,
// double-extension tricks and content-type mismatches. Attachment bytes are
// never parsed here; image content is the OCR collaborator's job.
func (e *Engine) analyzeAttachments(attachments []core.Attachment) (float64, []string) {
	var indicators []string
	var score float64
	h := e.heuristics

	for _, attachment := range attachments {
		filename := strings.ToLower(attachment.Filename)
		contentType := strings.ToLower(attachment.ContentType)

		for _, ext := range h.ExecutableExtensions {
			if strings.HasSuffix(filename, ext) {
				indicators = append(indicators, "malicious_attachment_type")
				score += h.MaliciousAttachmentScore
				e.logger.Debug("Detected suspicious attachment", zap.String("filename", filename))
				break
			}
		}

		// A name like invoice.pdf.exe trips both this and the direct
		// extension check above
		if strings.Count(filename, ".") > 1 {
			parts := strings.Split(filename, ".")
			if contains(h.ExecutableExtensions, "."+parts[len(parts)-1]) {
				indicators = append(indicators, "double_extension_attachment")
				score += h.DoubleExtensionScore
				e.logger.Debug("Detected double extension", zap.String("filename", filename))
			}
		}

		// A declared PDF whose name carries no .pdf at all is lying about
		// its type; names like invoice.pdf.exe are left to the extension
		// checks above
		if strings.Contains(contentType, "application/pdf") && !strings.Contains(filename, ".pdf") {
			indicators = append(indicators, "content_type_mismatch")
			score += h.ContentMismatchScore
			e.logger.Debug("Content type mismatch",
				zap.String("content_type", contentType),
				zap.String("filename", filename))
		}
	}

	return score, indicators
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
