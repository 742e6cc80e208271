package smoke

import (
	"time"

	"github.com/okian/smarthrm/pkg/logger"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL    string        // Base URL of the HR backend
	APIRoot    string        // Path prefix of every request
	Rounds     int           // Number of sweeps over every probe
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // Per-call timeout
	OutputFile string        // Report file; empty skips the report
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
	Logger     logger.Logger // Run output; nil discards it
}

// Result is the outcome of one probe call.
type Result struct {
	Probe     string  `json:"probe"`
	Round     int     `json:"round"`
	OK        bool    `json:"ok"`
	Error     string  `json:"error,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

// Stats holds run statistics.
type Stats struct {
	RunID         string
	Calls         int
	Successful    int
	Failed        int
	Notifications int
	FailedProbes  map[string]int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// Report is the JSON document written to Config.OutputFile.
type Report struct {
	RunID    string   `json:"run_id"`
	BaseURL  string   `json:"base_url"`
	Duration string   `json:"duration"`
	Results  []Result `json:"results"`
}
