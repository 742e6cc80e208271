// Package notify delivers user-facing notifications raised by the request pipeline.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/okian/smarthrm/pkg/logger"
	"github.com/samber/lo"
)

// Level classifies a notification.
type Level string

// Notification levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, level Level, message string)

// Notify calls f.
func (f Func) Notify(ctx context.Context, level Level, message string) {
	f(ctx, level, message)
}

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Level, string) {})

// Log writes notifications to a logger: success at info, error at warn.
type Log struct {
	logger logger.Logger
}

// NewLog creates a Log notifier.
func NewLog(l logger.Logger) *Log {
	if l == nil {
		l = logger.Nop()
	}
	return &Log{logger: l}
}

// Notify logs the message.
func (n *Log) Notify(ctx context.Context, level Level, message string) {
	if level == LevelError {
		n.logger.Warn(ctx, "notification", logger.String("level", string(level)), logger.String("message", message))
		return
	}
	n.logger.Info(ctx, "notification", logger.String("level", string(level)), logger.String("message", message))
}

// Multi fans a notification out to every notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(ctx context.Context, level Level, message string) {
		for _, n := range notifiers {
			if n != nil {
				n.Notify(ctx, level, message)
			}
		}
	})
}

// Entry is a recorded notification.
type Entry struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Recorder keeps the most recent notifications, oldest first.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	now     func() time.Time
}

// NewRecorder creates a Recorder keeping at most limit entries; limit <= 0 keeps all.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit, now: time.Now}
}

// Notify records the message.
func (r *Recorder) Notify(_ context.Context, level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: level, Message: message, At: r.now()})
	if r.limit > 0 && len(r.entries) > r.limit {
		r.entries = append(r.entries[:0:0], r.entries[len(r.entries)-r.limit:]...)
	}
}

// Entries returns a copy of the recorded notifications.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Count returns how many recorded notifications have the given level.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.CountBy(r.entries, func(e Entry) bool { return e.Level == level })
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
