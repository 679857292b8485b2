package logger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/storelog/pkg/sink"
	"github.com/aretw0/storelog/pkg/snapshot"
)

const (
	colorError     = "#ed4981"
	colorChanged   = "#4caf50"
	colorUnchanged = "#999"

	stylePrevState = "font-weight: bold; color: grey;"
	styleAction    = "font-weight: bold; color: #69B7FF;"
	styleDiff      = "font-weight: bold; color: #f0a30a;"
	styleNoChanges = "font-weight: normal; color: #999; font-style: italic;"
	styleWarning   = "font-weight: bold; color: #f0a30a;"

	msgNoChanges = "ℹ️ No state changes"
	msgWarning   = "⚠️ "
)

// Entry is one finished action as the plugin reports it.
type Entry struct {
	ActionID  string
	Store     string
	Action    string
	Args      []any
	Err       error
	StartedAt time.Time
	Duration  time.Duration
	Before    *snapshot.Snapshot
	After     *snapshot.Snapshot
	Changed   bool
}

// Timestamp formats t as HH:MM:SS:mmm.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d:%03d", t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// Title builds the group title of an entry.
func Title(eff Effective, e Entry) string {
	var b strings.Builder
	b.WriteString("action 🍍")
	if eff.ShowStoreName {
		fmt.Fprintf(&b, " [%s]", e.Store)
	}
	b.WriteString(" ")
	b.WriteString(e.Action)
	if eff.ShowTimestamp {
		b.WriteString(" @")
		b.WriteString(Timestamp(e.StartedAt))
	}
	if eff.ShowDuration {
		fmt.Fprintf(&b, " (%dms)", e.Duration.Milliseconds())
	}
	switch {
	case e.Err != nil:
		b.WriteString(" ❌")
	case e.Changed:
		b.WriteString(" ✅")
	default:
		b.WriteString(" ⚪")
	}
	return b.String()
}

// ActionPayload is the description logged under "action".
func ActionPayload(eff Effective, e Entry) map[string]any {
	payload := map[string]any{"type": e.Action}
	if len(e.Args) > 0 {
		args := make(map[int]any, len(e.Args))
		for i, arg := range e.Args {
			args[i] = arg
		}
		payload["args"] = args
	}
	if eff.ShowStoreName {
		payload["store"] = e.Store
	}
	if eff.ShowDuration {
		payload["duration"] = fmt.Sprintf("%dms", e.Duration.Milliseconds())
	}
	if e.Err != nil {
		payload["error"] = e.Err.Error()
	}
	return payload
}

func titleStyle(e Entry) string {
	switch {
	case e.Err != nil:
		return "font-weight: bold; color: " + colorError + ";"
	case e.Changed:
		return "font-weight: bold; color: " + colorChanged + ";"
	}
	return "font-weight: bold; color: " + colorUnchanged + ";"
}

func nextStateStyle(changed bool) string {
	if changed {
		return "font-weight: bold; color: " + colorChanged + ";"
	}
	return "font-weight: bold; color: " + colorUnchanged + ";"
}

func (p *Plugin) write(eff Effective, e Entry) {
	s := eff.Sink
	title := Title(eff, e)

	if eff.Expanded {
		s.Group(title, titleStyle(e), nil)
	} else {
		s.GroupCollapsed(title, titleStyle(e), nil)
	}

	w := sinkWarner{sink: s, logger: p.logger}
	s.Log("prev state", stylePrevState, e.Before.View(w))
	s.Log("action", styleAction, ActionPayload(eff, e))
	s.Log("next state", nextStateStyle(e.Changed), e.After.View(w))

	if eff.ShowDiff {
		if d := snapshot.Diff(e.Before, e.After); d != nil {
			s.Log("diff", styleDiff, d)
		}
	}
	if !e.Changed {
		s.Log(msgNoChanges, styleNoChanges, nil)
	}

	s.GroupEnd()
}

// sinkWarner reports warnings in the action log itself and on the diagnostic logger.
type sinkWarner struct {
	sink   sink.Sink
	logger *slog.Logger
}

func (w sinkWarner) Warn(msg string, args ...any) {
	w.logger.Warn(msg, args...)
	w.sink.Log(msgWarning+msg, styleWarning, warningPayload(args))
}

// warningPayload turns slog style key/value pairs into a map. Errors are kept as text.
func warningPayload(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	payload := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if err, ok := args[i+1].(error); ok {
			payload[key] = err.Error()
			continue
		}
		payload[key] = args[i+1]
	}
	return payload
}
