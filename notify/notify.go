// Package notify carries user-facing notifications (toasts in the web panel,
// stderr lines in the CLI) from the store to whoever displays them.
package notify

import (
	"context"
	"sync"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
)

// Severity ranks a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Sink receives notifications.
type Sink interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to Sink.
type Func func(message string, severity Severity)

// Notify calls f.
func (f Func) Notify(message string, severity Severity) { f(message, severity) }

// Discard drops every notification.
var Discard Sink = Func(func(string, Severity) {})

// LogSink writes notifications to a logger, then forwards them to Next when set.
type LogSink struct {
	Logger logger.Logger
	Next   Sink
}

// Notify logs the message at a level matching its severity.
func (s LogSink) Notify(message string, severity Severity) {
	ctx := context.Background()
	fields := map[string]interface{}{"severity": string(severity)}
	switch severity {
	case SeverityError:
		s.Logger.Error(ctx, message, fields)
	case SeverityWarning:
		s.Logger.Warn(ctx, message, fields)
	default:
		s.Logger.Info(ctx, message, fields)
	}
	if s.Next != nil {
		s.Next.Notify(message, severity)
	}
}

// Notification is one recorded notification.
type Notification struct {
	Message  string
	Severity Severity
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records the notification.
func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Message: message, Severity: severity})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Count returns how many notifications with severity were recorded.
func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Severity == severity {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
