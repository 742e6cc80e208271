// Package service assembles the HR client stack: transport, request pipeline,
// notification sinks and the resource modules, and exposes them to the console.
package service

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/okian/smarthrm/internal/adapters/http/console"
	"github.com/okian/smarthrm/internal/config"
	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/resources/department"
	"github.com/okian/smarthrm/internal/resources/employee"
	"github.com/okian/smarthrm/internal/resources/project"
	"github.com/okian/smarthrm/internal/resources/skill"
	"github.com/okian/smarthrm/internal/resources/skillmatch"
	"github.com/okian/smarthrm/internal/resources/training"
	"github.com/okian/smarthrm/internal/transport"
	"github.com/okian/smarthrm/pkg/logger"
	"github.com/okian/smarthrm/pkg/metrics"
)

const systemMetricsInterval = 10 * time.Second

// Service owns the client stack shared by every module.
type Service struct {
	mu sync.RWMutex

	// Core components
	transport *transport.Client
	pipeline  *pipeline.Pipeline
	recorder  *notify.Recorder

	employees   *employee.Client
	departments *department.Client
	skills      *skill.Client
	trainings   *training.Client
	projects    *project.Client
	skillMatch  *skillmatch.Client

	// Configuration
	baseURL      string
	apiRoot      string
	timeout      time.Duration
	keywords     []string
	fallback     string
	history      int
	httpClient   *http.Client
	notifiers    []notify.Notifier
	interceptors []pipeline.RequestInterceptor

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBaseURL sets the backend scheme and host.
func WithBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.baseURL = u
		}
	}
}

// WithAPIRoot sets the path prefix of every request.
func WithAPIRoot(root string) Option {
	return func(s *Service) {
		s.apiRoot = root
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithFailureKeywords sets the keywords that mark a text reply as a failure.
func WithFailureKeywords(keywords ...string) Option {
	return func(s *Service) {
		if len(keywords) > 0 {
			s.keywords = keywords
		}
	}
}

// WithFallbackMessage sets the message notified for transport errors without one.
func WithFallbackMessage(msg string) Option {
	return func(s *Service) {
		if msg != "" {
			s.fallback = msg
		}
	}
}

// WithNotificationHistory bounds the notifications kept for the console.
func WithNotificationHistory(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.history = n
		}
	}
}

// WithNotifier adds a user-facing notification sink.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// WithRequestInterceptor appends an outgoing request interceptor.
func WithRequestInterceptor(i pipeline.RequestInterceptor) Option {
	return func(s *Service) {
		if i != nil {
			s.interceptors = append(s.interceptors, i)
		}
	}
}

// WithHTTPClient replaces the http.Client used by the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		s.httpClient = hc
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// FromConfig applies the client settings of cfg.
func FromConfig(cfg *config.Config) Option {
	return func(s *Service) {
		for _, opt := range []Option{
			WithBaseURL(cfg.BaseURL),
			WithAPIRoot(cfg.APIRoot),
			WithTimeout(cfg.Timeout()),
			WithFailureKeywords(cfg.FailureKeywords...),
			WithFallbackMessage(cfg.FallbackMessage),
			WithNotificationHistory(cfg.NotificationHistory),
		} {
			opt(s)
		}
	}
}

// New constructs the client stack. Every component is ready on return.
func New(opts ...Option) *Service {
	s := &Service{
		baseURL:  "http://localhost:8080",
		apiRoot:  transport.DefaultAPIRoot,
		timeout:  transport.DefaultTimeout,
		keywords: pipeline.DefaultFailureKeywords,
		fallback: pipeline.DefaultFallbackMessage,
		history:  100,
		logger:   logger.Nop(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.transport = transport.New(s.baseURL,
		transport.WithAPIRoot(s.apiRoot),
		transport.WithTimeout(s.timeout),
		transport.WithHTTPClient(s.httpClient),
		transport.WithLogger(s.logger.Named("transport")),
	)

	// The log sink is always present; the recorder feeds /notifications.
	s.recorder = notify.NewRecorder(s.history)
	sinks := append([]notify.Notifier{notify.NewLog(s.logger.Named("notify")), s.recorder}, s.notifiers...)

	popts := []pipeline.Option{
		pipeline.WithNotifier(notify.Multi(sinks...)),
		pipeline.WithFailureKeywords(s.keywords...),
		pipeline.WithFallbackMessage(s.fallback),
		pipeline.WithLogger(s.logger.Named("pipeline")),
	}
	for _, i := range s.interceptors {
		popts = append(popts, pipeline.WithRequestInterceptor(i))
	}
	s.pipeline = pipeline.New(s.transport, popts...)

	s.employees = employee.New(s.pipeline)
	s.departments = department.New(s.pipeline)
	s.skills = skill.New(s.pipeline)
	s.trainings = training.New(s.pipeline)
	s.projects = project.New(s.pipeline)
	s.skillMatch = skillmatch.New(s.pipeline)

	return s
}

// Start begins periodic system metric updates.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.stopCh = make(chan struct{})
	go s.systemMetricsLoop(ctx, s.stopCh)

	s.started = true
	s.logger.Info(ctx, "hr client started",
		logger.String("baseURL", s.baseURL),
		logger.String("apiRoot", s.apiRoot),
		logger.Duration("timeout", s.timeout),
	)
	return nil
}

// Stop ends the background updates. Stopping a stopped service is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	close(s.stopCh)

	s.started = false
	s.logger.Info(context.Background(), "hr client stopped")
}

func (s *Service) systemMetricsLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine())
}

// Pipeline returns the shared request pipeline.
func (s *Service) Pipeline() *pipeline.Pipeline { return s.pipeline }

// Notifications returns the recorder behind /notifications.
func (s *Service) Notifications() *notify.Recorder { return s.recorder }

func (s *Service) Employees() *employee.Client     { return s.employees }
func (s *Service) Departments() *department.Client { return s.departments }
func (s *Service) Skills() *skill.Client           { return s.skills }
func (s *Service) Trainings() *training.Client     { return s.trainings }
func (s *Service) Projects() *project.Client       { return s.projects }
func (s *Service) SkillMatch() *skillmatch.Client  { return s.skillMatch }

// Console returns the console dependencies backed by this service.
func (s *Service) Console() console.Dependencies {
	return console.Dependencies{
		Employees:     s.employees,
		Departments:   s.departments,
		Skills:        s.skills,
		Trainings:     s.trainings,
		Projects:      s.projects,
		SkillMatch:    s.skillMatch,
		Notifications: s.recorder,
		Stats:         s,
	}
}

// GetStats returns client statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":       s.started,
		"baseURL":       s.baseURL,
		"apiRoot":       s.apiRoot,
		"timeoutMs":     s.timeout.Milliseconds(),
		"notifications": len(s.recorder.Entries()),
		"errors":        s.recorder.Count(notify.LevelError),
		"successes":     s.recorder.Count(notify.LevelSuccess),
	}
}
