package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// logEntry is one record captured by logSink.
type logEntry struct {
	level slog.Level
	msg   string
	attrs map[string]string
}

// logSink is an in-memory slog handler for asserting on log output.
type logSink struct {
	mu      sync.Mutex
	entries []logEntry
}

func (s *logSink) Enabled(context.Context, slog.Level) bool { return true }

func (s *logSink) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]string)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	s.mu.Lock()
	s.entries = append(s.entries, logEntry{level: r.Level, msg: r.Message, attrs: attrs})
	s.mu.Unlock()
	return nil
}

func (s *logSink) WithAttrs([]slog.Attr) slog.Handler { return s }
func (s *logSink) WithGroup(string) slog.Handler      { return s }

// all returns a copy of the captured entries.
func (s *logSink) all() []logEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]logEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// count returns how many entries were captured.
func (s *logSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// find returns the first entry whose message contains substr.
func (s *logSink) find(substr string) (logEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if strings.Contains(e.msg, substr) {
			return e, true
		}
	}
	return logEntry{}, false
}

// newTestContext builds a Context whose log output is captured.
func newTestContext(t *testing.T) (*Context, *logSink) {
	t.Helper()
	sink := &logSink{}
	c := New()
	c.SetLogger(slog.New(sink))
	return c, sink
}
