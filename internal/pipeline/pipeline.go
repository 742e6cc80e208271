// Package pipeline applies the shared interceptors to every REST call: an
// outgoing chain over request descriptors and an incoming step that normalizes
// replies, signals failures and raises user-facing notifications.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/transport"
	"github.com/okian/smarthrm/pkg/logger"
	"github.com/okian/smarthrm/pkg/metrics"
)

// Defaults for the incoming interceptor.
var (
	DefaultFailureKeywords = []string{"错误", "失败"}
	DefaultFallbackMessage = "请求失败"
)

// Doer performs a single transport attempt. *transport.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (*transport.Reply, error)
}

// RequestInterceptor may rewrite a descriptor before dispatch.
type RequestInterceptor func(ctx context.Context, req transport.Request) (transport.Request, error)

// Pipeline is immutable after New and safe for concurrent use.
type Pipeline struct {
	doer         Doer
	notifier     notify.Notifier
	classifier   Classifier
	fallback     string
	interceptors []RequestInterceptor
	logger       logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithNotifier sets the user-facing notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(p *Pipeline) {
		if n != nil {
			p.notifier = n
		}
	}
}

// WithFailureKeywords replaces the keywords that mark a text reply as a failure.
func WithFailureKeywords(keywords ...string) Option {
	return func(p *Pipeline) {
		if c := NewClassifier(keywords...); len(c.keywords) > 0 {
			p.classifier = c
		}
	}
}

// WithFallbackMessage sets the message used when a transport error has none.
func WithFallbackMessage(msg string) Option {
	return func(p *Pipeline) {
		if msg != "" {
			p.fallback = msg
		}
	}
}

// WithRequestInterceptor appends an outgoing interceptor.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(p *Pipeline) {
		if i != nil {
			p.interceptors = append(p.interceptors, i)
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline dispatching through doer.
func New(doer Doer, opts ...Option) *Pipeline {
	p := &Pipeline{
		doer:       doer,
		notifier:   notify.Discard,
		classifier: NewClassifier(DefaultFailureKeywords...),
		fallback:   DefaultFallbackMessage,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Do sends req through the outgoing chain and the transport, then normalizes the reply:
//   - transport failure: error notification, returns the transport error;
//   - text reply with a failure keyword: error notification, returns *MessageError;
//   - other text reply, the empty body included: success notification, returned unchanged;
//   - structured reply: returned unchanged without notification.
func (p *Pipeline) Do(ctx context.Context, req transport.Request) (Reply, error) {
	start := time.Now()

	out, err := p.intercept(ctx, req)
	if err != nil {
		p.logger.Error(ctx, "request interceptor failed", logger.String("url", req.URL), logger.Error(err))
		p.notify(ctx, notify.LevelError, p.messageOf(err))
		p.record(req, metrics.OutcomeRequestError, start)
		return Reply{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	raw, err := p.doer.Do(ctx, out)
	if err != nil {
		p.logger.Error(ctx, "response error",
			logger.String("method", out.Method),
			logger.String("url", out.URL),
			logger.Error(err))
		p.notify(ctx, notify.LevelError, p.messageOf(err))
		p.record(out, metrics.OutcomeTransportError, start)
		return Reply{}, err
	}

	reply := normalize(raw.Body)
	if reply.Kind == KindMessage {
		if p.classifier.IsFailure(reply.Message) {
			p.notify(ctx, notify.LevelError, reply.Message)
			p.record(out, metrics.OutcomeMessageFailure, start)
			return Reply{}, &MessageError{Message: reply.Message}
		}
		p.notify(ctx, notify.LevelSuccess, reply.Message)
	}

	p.record(out, metrics.OutcomeOK, start)
	return reply, nil
}

func (p *Pipeline) intercept(ctx context.Context, req transport.Request) (transport.Request, error) {
	var err error
	for _, i := range p.interceptors {
		if req, err = i(ctx, req); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (p *Pipeline) messageOf(err error) string {
	if err == nil || err.Error() == "" {
		return p.fallback
	}
	var terr *transport.Error
	if errors.As(err, &terr) && terr.Message == "" {
		return p.fallback
	}
	return err.Error()
}

func (p *Pipeline) notify(ctx context.Context, level notify.Level, msg string) {
	p.notifier.Notify(ctx, level, msg)
	metrics.RecordNotification(string(level))
}

func (p *Pipeline) record(req transport.Request, outcome string, start time.Time) {
	metrics.RecordAPICall(req.Resource(), req.Method, outcome, float64(time.Since(start).Milliseconds()))
}
