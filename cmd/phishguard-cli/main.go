package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/engine"
	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/mailparse"
	"github.com/phishguard/phishguard/internal/registry"
	"github.com/phishguard/phishguard/internal/utils"
)

var (
	// Detection flags
	threshold    = flag.Float64("threshold", 40, "Risk score threshold for the suspicious flag")
	registryPath = flag.String("registry", "", "Path to a known-domains YAML file (built-in lists if not specified)")

	// Input flags
	inputFile = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load the known-domain registry
	var snapshot *registry.Snapshot
	if *registryPath != "" {
		snapshot, err = registry.LoadFile(*registryPath)
		if err != nil {
			logger.Fatal("Failed to load domain file", zap.Error(err), zap.String("file", *registryPath))
		}
		logger.Info("Loaded known-domain registry", zap.String("file", *registryPath))
	} else {
		snapshot = registry.DefaultSnapshot()
	}

	// Build the scoring engine
	heuristics := engine.DefaultHeuristics()
	heuristics.SuspiciousThreshold = *threshold
	eng := engine.New(heuristics, registry.New(snapshot), logger)

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	email, err := mailparse.ParseMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	// Print email summary
	processor := utils.NewTextProcessor(logger)
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("To: %s\n", email.To)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.BodyPlain)+len(email.BodyHTML))
	fmt.Printf("Body preview: %s\n", processor.TruncateText(email.BodyPlain, 120))
	fmt.Printf("Attachments: %d\n", len(email.Attachments))
	fmt.Printf("\n")

	// Analyze email
	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Suspicious threshold: %.1f\n", *threshold)

	startTime := time.Now()
	verdict := eng.Analyze(email)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Is suspicious: %t\n", verdict.IsSuspicious)
	fmt.Printf("Risk score: %.1f\n", verdict.RiskScore)
	fmt.Printf("Threat type: %s\n", verdict.ThreatType)
	fmt.Printf("Indicators:\n")
	for _, indicator := range verdict.Indicators {
		fmt.Printf("  - %s\n", indicator)
	}
	fmt.Printf("Processing time: %v\n", duration)
}
