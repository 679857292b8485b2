package sink

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Slog emits one structured record per message. Open groups are joined into the
// "group" attribute, payloads go under "payload". Styles are dropped.
// Safe for concurrent use.
type Slog struct {
	mu     sync.Mutex
	logger *slog.Logger
	level  slog.Level
	groups []string
}

// NewSlog creates a Slog sink writing at level.
func NewSlog(logger *slog.Logger, level slog.Level) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger, level: level}
}

func (s *Slog) Log(msg, _ string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(msg, payload)
}

func (s *Slog) Group(msg, _ string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(msg, payload, slog.Bool("collapsed", false))
	s.groups = append(s.groups, msg)
}

func (s *Slog) GroupCollapsed(msg, _ string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(msg, payload, slog.Bool("collapsed", true))
	s.groups = append(s.groups, msg)
}

func (s *Slog) GroupEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.groups) > 0 {
		s.groups = s.groups[:len(s.groups)-1]
	}
}

func (s *Slog) emit(msg string, payload any, extra ...slog.Attr) {
	attrs := make([]slog.Attr, 0, len(extra)+2)
	if len(s.groups) > 0 {
		attrs = append(attrs, slog.String("group", strings.Join(s.groups, " > ")))
	}
	if payload != nil {
		attrs = append(attrs, slog.Any("payload", printable(payload)))
	}
	attrs = append(attrs, extra...)
	s.logger.LogAttrs(context.Background(), s.level, msg, attrs...)
}
