package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// LogEntry is one captured slog record, with bound and call-site attrs
// flattened into one map.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// store collects entries for a handler and every handler derived from
// it, so records logged through logger.With land in the root handler's
// view.
type store struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (s *store) add(e LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *store) snapshot() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// CaptureHandler is a slog.Handler that records everything logged
// through it for later assertions. Safe for concurrent use.
type CaptureHandler struct {
	store *store
	bound []slog.Attr
	t     *testing.T
}

// NewCaptureHandler creates a capture handler. When t is non-nil every
// record is echoed to the test log.
func NewCaptureHandler(t *testing.T) *CaptureHandler {
	return &CaptureHandler{store: &store{}, t: t}
}

// NewTestLogger returns a logger wired to a fresh capture handler.
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	handler := NewCaptureHandler(t)
	return slog.New(handler), handler
}

// Enabled captures every level; filtering is the test's business.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle records one entry. Call-site attrs override bound attrs of
// the same key, matching what a real handler would emit last.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.bound)+r.NumAttrs())
	for _, a := range h.bound {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.add(LogEntry{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs returns a derived handler recording into the same store
// with the attrs bound.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make([]slog.Attr, 0, len(h.bound)+len(attrs))
	bound = append(bound, h.bound...)
	bound = append(bound, attrs...)
	return &CaptureHandler{store: h.store, bound: bound, t: h.t}
}

// WithGroup flattens groups; attr keys keep their plain names.
func (h *CaptureHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Entries returns a copy of every captured entry.
func (h *CaptureHandler) Entries() []LogEntry {
	return h.store.snapshot()
}

// EntriesAt returns the captured entries at one level.
func (h *CaptureHandler) EntriesAt(level slog.Level) []LogEntry {
	var out []LogEntry
	for _, e := range h.store.snapshot() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasMessage reports whether any entry's message contains the
// substring.
func (h *CaptureHandler) HasMessage(substring string) bool {
	for _, e := range h.store.snapshot() {
		if strings.Contains(e.Message, substring) {
			return true
		}
	}
	return false
}

// HasAttr reports whether any entry carries the attribute.
func (h *CaptureHandler) HasAttr(key string, value any) bool {
	for _, e := range h.store.snapshot() {
		if got, ok := e.Attrs[key]; ok && got == value {
			return true
		}
	}
	return false
}

// Reset drops everything captured so far.
func (h *CaptureHandler) Reset() {
	h.store.reset()
}

// Count returns the number of captured entries.
func (h *CaptureHandler) Count() int {
	return len(h.store.snapshot())
}

// AssertLogContains fails the test unless some entry at the level
// contains the message, listing what was captured on failure.
func AssertLogContains(t *testing.T, handler *CaptureHandler, level slog.Level, message string) {
	t.Helper()
	for _, e := range handler.EntriesAt(level) {
		if strings.Contains(e.Message, message) {
			return
		}
	}
	t.Errorf("no %s log containing %q", level, message)
	for _, e := range handler.EntriesAt(level) {
		t.Logf("  captured: %s", e.Message)
	}
}

// AssertLogAttr fails the test unless some entry carries the
// attribute. slog stores integer attrs as int64.
func AssertLogAttr(t *testing.T, handler *CaptureHandler, key string, want any) {
	t.Helper()
	if handler.HasAttr(key, want) {
		return
	}
	t.Errorf("no log entry with attribute %s=%v", key, want)
	for _, e := range handler.Entries() {
		t.Logf("  captured: %s %v", e.Message, e.Attrs)
	}
}

// AssertNoErrors fails the test when any error-level entry was
// recorded.
func AssertNoErrors(t *testing.T, handler *CaptureHandler) {
	t.Helper()
	for _, e := range handler.EntriesAt(slog.LevelError) {
		t.Errorf("unexpected error log: %s %v", e.Message, e.Attrs)
	}
}
