package smoke

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/smarthrm/pkg/logger"
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) (string, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		return "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return logFile, nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`SmartHRM Smoke Tool
===================

Sweeps every read-only list endpoint of the HR backend through the client
pipeline, concurrently, and reports the outcome.

Usage:
  go run ./cmd/hrm-smoke [options]

Options:
  -url string
        Base URL of the HR backend (default "http://localhost:8080")
  -root string
        API root prefixed to every request (default "/api")
  -rounds int
        Number of sweeps over every endpoint (default 1)
  -workers int
        Number of concurrent workers (default 4)
  -timeout duration
        Per-call timeout (default 10s)
  -output string
        Report file (JSON); no report when empty
  -log string
        Log file for run output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Sweep a local backend once
  go run ./cmd/hrm-smoke

  # Ten sweeps with eight workers and a report
  go run ./cmd/hrm-smoke -rounds 10 -workers 8 -output reports/smoke.json
`)
}
