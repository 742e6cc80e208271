package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	service "github.com/okian/smarthrm/internal/app"
	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/transport"
	"github.com/okian/smarthrm/pkg/logger"
	"github.com/samber/lo"
)

// ErrNoSuccess is returned when not a single probe call succeeded.
var ErrNoSuccess = errors.New("no probe call succeeded")

type job struct {
	probe Probe
	round int
}

// Run sweeps every probe Rounds times with Workers concurrent workers through a
// freshly assembled client stack, then reports the statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	cfg := withDefaults(*config)
	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log := cfg.Logger.Named("smoke")

	log.Info(ctx, "starting smoke run",
		logger.String("runID", stats.RunID),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Bool("verbose", cfg.Verbose))

	var notified int64
	svc := service.New(
		service.WithBaseURL(cfg.BaseURL),
		service.WithAPIRoot(cfg.APIRoot),
		service.WithTimeout(cfg.Timeout),
		service.WithNotifier(notify.Func(func(context.Context, notify.Level, string) {
			atomic.AddInt64(&notified, 1)
		})),
		service.WithLogger(log),
	)

	results := sweep(ctx, cfg, log, Probes(svc))

	stats.Calls = len(results)
	stats.Successful = lo.CountBy(results, func(r Result) bool { return r.OK })
	stats.Failed = stats.Calls - stats.Successful
	stats.Notifications = int(atomic.LoadInt64(&notified))
	stats.FailedProbes = lo.MapValues(
		lo.GroupBy(lo.Filter(results, func(r Result, _ int) bool { return !r.OK }), func(r Result) string { return r.Probe }),
		func(rs []Result, _ string) int { return len(rs) })
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if cfg.OutputFile != "" {
		if err := saveReport(ctx, cfg, log, stats, results); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}

	displayFinalStats(ctx, log, stats)

	if stats.Calls > 0 && stats.Successful == 0 {
		return stats, fmt.Errorf("%w: %d calls failed", ErrNoSuccess, stats.Failed)
	}
	log.Info(ctx, "smoke run completed")
	return stats, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.APIRoot == "" {
		cfg.APIRoot = transport.DefaultAPIRoot
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return cfg
}

// sweep runs every probe Rounds times using a worker pool.
func sweep(ctx context.Context, cfg Config, log logger.Logger, probes []Probe) []Result {
	jobs := make(chan job, cfg.Workers*workerChannelMultiplier)
	out := make(chan Result, cfg.Workers*workerChannelMultiplier)

	var done int64
	total := int64(cfg.Rounds * len(probes))

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				start := time.Now()
				err := j.probe.Call(ctx)
				r := Result{
					Probe:     j.probe.Name,
					Round:     j.round,
					OK:        err == nil,
					ElapsedMs: float64(time.Since(start).Microseconds()) / 1000,
				}
				if err != nil {
					r.Error = err.Error()
				}
				if cfg.Verbose {
					log.Debug(ctx, "probe finished",
						logger.String("probe", r.Probe),
						logger.Int("round", r.Round),
						logger.Bool("ok", r.OK),
						logger.Int("progress", int(atomic.AddInt64(&done, 1))),
						logger.Int("total", int(total)))
				}
				out <- r
			}
		}()
	}

	go func() {
		defer close(jobs)
		for round := 1; round <= cfg.Rounds; round++ {
			for _, p := range probes {
				select {
				case <-ctx.Done():
					return
				case jobs <- job{probe: p, round: round}:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]Result, 0, total)
	for r := range out {
		results = append(results, r)
	}
	return results
}

// saveReport writes the run results as JSON.
func saveReport(ctx context.Context, cfg Config, log logger.Logger, stats *Stats, results []Result) error {
	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(Report{
		RunID:    stats.RunID,
		BaseURL:  cfg.BaseURL,
		Duration: stats.Duration.String(),
		Results:  results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(cfg.OutputFile, data, logFilePermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Info(ctx, "report saved to file", logger.String("filename", cfg.OutputFile))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, callsPerSecond float64

	if stats.Calls > 0 {
		successRate = float64(stats.Successful) / float64(stats.Calls) * percentageMultiplier
	}
	if stats.Duration > 0 {
		callsPerSecond = float64(stats.Calls) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.String("runID", stats.RunID),
		logger.Int("calls", stats.Calls),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("notifications", stats.Notifications),
		logger.Any("failedProbes", stats.FailedProbes),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("callsPerSecond", callsPerSecond))
}
