// Package console serves the HR console: the application pages resolved through
// the route table, navigation, recent notifications and health metrics.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/smarthrm/internal/envelope"
	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/resources/department"
	"github.com/okian/smarthrm/internal/resources/employee"
	"github.com/okian/smarthrm/internal/resources/skill"
	"github.com/okian/smarthrm/internal/resources/training"
	"github.com/okian/smarthrm/internal/router"
	"github.com/okian/smarthrm/internal/transport"
	"github.com/okian/smarthrm/pkg/logger"
)

// Employees is the employee module as used by the console.
type Employees interface {
	List(ctx context.Context, p employee.ListParams) (model.EmployeePage, error)
}

// Departments is the department module as used by the console.
type Departments interface {
	List(ctx context.Context, p department.ListParams) (pipeline.Reply, error)
}

// Skills is the skill module as used by the console.
type Skills interface {
	List(ctx context.Context, p skill.PageParams) (pipeline.Reply, error)
	Search(ctx context.Context, name string) (pipeline.Reply, error)
}

// Trainings is the training module as used by the console.
type Trainings interface {
	List(ctx context.Context, p training.PageParams) (pipeline.Reply, error)
	Search(ctx context.Context, name string) (pipeline.Reply, error)
	BySkill(ctx context.Context, skillID int) (pipeline.Reply, error)
}

// Projects is the project module as used by the console.
type Projects interface {
	All(ctx context.Context) (pipeline.Reply, error)
	Detail(ctx context.Context, id int) (pipeline.Reply, error)
	MatchByProjectName(ctx context.Context, name string) (pipeline.Reply, error)
	MatchByEmployee(ctx context.Context, empID int) (pipeline.Reply, error)
}

// SkillMatcher is the skill matching module as used by the console.
type SkillMatcher interface {
	Match(ctx context.Context, required []string) (pipeline.Reply, error)
	Skills(ctx context.Context) (pipeline.Reply, error)
	Projects(ctx context.Context) (pipeline.Reply, error)
	Departments(ctx context.Context) (pipeline.Reply, error)
}

// NotificationSource exposes recent notifications.
type NotificationSource interface {
	Entries() []notify.Entry
}

// Dependencies required by the console handlers.
type Dependencies struct {
	Employees     Employees
	Departments   Departments
	Skills        Skills
	Trainings     Trainings
	Projects      Projects
	SkillMatch    SkillMatcher
	Notifications NotificationSource
	Stats         StatsProvider
}

// Server wires the console routes.
type Server struct {
	deps   Dependencies
	table  *router.Table
	health *HealthHandler
	stats  *StatsHandler
	logger logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates the console server. Pages are constructed on first visit.
func NewServer(deps Dependencies, opts ...Option) (*Server, error) {
	s := &Server{
		deps:   deps,
		health: NewHealthHandler(),
		stats:  NewStatsHandler(deps.Stats),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	table, err := router.Standard(router.Pages{
		Employees:    s.page("employees", s.handleEmployees),
		Departments:  s.page("departments", s.handleDepartments),
		Skills:       s.page("skills", s.handleSkills),
		Trainings:    s.page("trainings", s.handleTrainings),
		ProjectMatch: s.page("project_match", s.handleProjectMatch),
		SkillMatch:   s.page("skill_match", s.handleSkillMatch),
	})
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	s.table = table
	return s, nil
}

// Table returns the route table behind the console pages.
func (s *Server) Table() *router.Table {
	return s.table
}

// Register attaches all console routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.health.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.stats.HandleStats, "stats"))
	mux.HandleFunc("/nav", MetricsMiddleware(s.handleNav, "nav"))
	mux.HandleFunc("/notifications", MetricsMiddleware(s.handleNotifications, "notifications"))
	mux.Handle("/", s.table)
}

func (s *Server) page(endpoint string, h http.HandlerFunc) router.Loader {
	return func() router.Page {
		s.logger.Debug(context.Background(), "page loaded", logger.String("page", endpoint))
		return MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.NotFound(w, r)
				return
			}
			h(w, r)
		}, endpoint)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: errorCode(status), Message: msg})
}

// writeReply renders a pipeline reply: structured bodies verbatim, status
// messages as {"message"} and the empty message as 204.
func writeReply(w http.ResponseWriter, reply pipeline.Reply) {
	switch {
	case reply.Kind == pipeline.KindObject:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(reply.Body)
	case reply.Message != "":
		writeJSON(w, http.StatusOK, messageResponse{Message: reply.Message})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// upstream logs a failed module call and answers 502 with its message.
func (s *Server) upstream(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Warn(r.Context(), "upstream call failed",
		logger.String("op", op),
		logger.String("kind", upstreamKind(err)),
		logger.Error(err))
	writeError(w, http.StatusBadGateway, err)
}

func upstreamKind(err error) string {
	switch {
	case errors.Is(err, envelope.ErrFailure):
		return "envelope_failure"
	case errors.Is(err, pipeline.ErrFailureMessage):
		return "failure_message"
	case errors.Is(err, transport.ErrTransport):
		return "transport"
	case errors.Is(err, pipeline.ErrRequest):
		return "request"
	default:
		return "unknown"
	}
}

// intParam reads an optional integer query parameter.
func intParam(r *http.Request, name string) (int, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return n, true, nil
}
