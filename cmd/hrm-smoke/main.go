package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/smarthrm/internal/smoke"
	"github.com/okian/smarthrm/pkg/logger"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the HR backend")
		apiRoot    = flag.String("root", "/api", "API root prefixed to every request")
		rounds     = flag.Int("rounds", smoke.DefaultRounds, "Number of sweeps over every endpoint")
		workers    = flag.Int("workers", smoke.DefaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", smoke.DefaultTimeout, "Per-call timeout")
		outputFile = flag.String("output", "", "Report file (JSON); no report when empty")
		logFile    = flag.String("log", "", "Log file for run output (default: smoke_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return 0
	}

	logPath, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL:    *baseURL,
		APIRoot:    *apiRoot,
		Rounds:     *rounds,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    logPath,
		Verbose:    *verbose,
		Logger:     logger.Get(),
	}

	if _, err := smoke.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
