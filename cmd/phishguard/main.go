package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
	"github.com/phishguard/phishguard/internal/di"
	"github.com/phishguard/phishguard/internal/mailparse"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <email.eml> [...]\n", os.Args[0])
		os.Exit(2)
	}

	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// fileSource feeds .eml files from the command line through the email source
// port. Unreadable or unparseable files are logged and skipped.
type fileSource struct {
	paths  []string
	logger *zap.Logger
}

func (s *fileSource) Fetch(ctx context.Context) ([]*core.Email, error) {
	var emails []*core.Email
	for _, path := range s.paths {
		file, err := os.Open(path)
		if err != nil {
			s.logger.Error("Failed to open email file", zap.String("file", path), zap.Error(err))
			continue
		}

		email, err := mailparse.ParseMessage(file)
		file.Close()
		if err != nil {
			s.logger.Error("Failed to parse email file", zap.String("file", path), zap.Error(err))
			continue
		}

		if email.MessageID == "" {
			email.MessageID = filepath.Base(path)
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	service *core.ThreatDetectionService,
	threatStore core.ThreatStore,
) error {
	defer logger.Sync()

	ctx := context.Background()

	var source core.EmailSource = &fileSource{paths: os.Args[1:], logger: logger}
	emails, err := source.Fetch(ctx)
	if err != nil {
		return err
	}

	suspiciousCount := 0
	for _, email := range emails {
		verdict, err := service.ProcessEmail(ctx, email)
		if err != nil {
			logger.Error("Failed to analyze email", zap.String("email_id", email.MessageID), zap.Error(err))
			continue
		}

		if verdict.IsSuspicious {
			suspiciousCount++
		}

		fmt.Printf("%s: suspicious=%t score=%.1f threat=%s indicators=[%s]\n",
			email.MessageID, verdict.IsSuspicious, verdict.RiskScore, verdict.ThreatType,
			strings.Join(verdict.Indicators, ", "))
	}

	fmt.Printf("\nProcessed %d emails, %d suspicious\n", len(emails), suspiciousCount)

	// Close the store if needed
	if closer, ok := threatStore.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close threat store", zap.Error(err))
		}
	}

	return nil
}
