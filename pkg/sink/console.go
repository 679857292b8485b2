package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

const (
	markerExpanded  = "▾ "
	markerCollapsed = "▸ "
)

// Console writes indented, styled groups to a terminal.
// Expanded groups render payloads as YAML blocks; inside collapsed groups payloads stay
// on the message line as compact JSON.
// Safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	out    *termenv.Output
	indent string
	stack  []bool // collapsed flag per open group
}

// ConsoleOption configures a Console.
type ConsoleOption func(*consoleConfig)

type consoleConfig struct {
	profile *termenv.Profile
	indent  string
}

// WithProfile forces a color profile (termenv.Ascii disables styling).
func WithProfile(p termenv.Profile) ConsoleOption {
	return func(c *consoleConfig) {
		c.profile = &p
	}
}

// WithIndent sets the indentation unit (default two spaces).
func WithIndent(indent string) ConsoleOption {
	return func(c *consoleConfig) {
		c.indent = indent
	}
}

// NewConsole creates a Console on w (os.Stdout when nil).
// Without WithProfile the profile is detected from w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	if w == nil {
		w = os.Stdout
	}
	cfg := consoleConfig{indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}

	var outOpts []termenv.OutputOption
	if cfg.profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*cfg.profile))
	}

	return &Console{
		out:    termenv.NewOutput(w, outOpts...),
		indent: cfg.indent,
	}
}

func (c *Console) Log(msg, style string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line("", msg, style, payload)
}

func (c *Console) Group(msg, style string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line(markerExpanded, msg, style, payload)
	c.stack = append(c.stack, false)
}

func (c *Console) GroupCollapsed(msg, style string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line(markerCollapsed, msg, style, payload)
	c.stack = append(c.stack, true)
}

// GroupEnd closes the innermost group. Extra calls are ignored.
func (c *Console) GroupEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) > 0 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

func (c *Console) collapsed() bool {
	for _, collapsed := range c.stack {
		if collapsed {
			return true
		}
	}
	return false
}

func (c *Console) line(marker, msg, style string, payload any) {
	prefix := strings.Repeat(c.indent, len(c.stack))
	text := ParseStyle(style).Render(c.out, msg)

	if payload == nil {
		fmt.Fprintf(c.out, "%s%s%s\n", prefix, marker, text)
		return
	}

	if c.collapsed() {
		fmt.Fprintf(c.out, "%s%s%s %s\n", prefix, marker, text, compact(payload))
		return
	}

	fmt.Fprintf(c.out, "%s%s%s\n", prefix, marker, text)
	block := prefix + c.indent
	for _, l := range strings.Split(strings.TrimRight(yamlBlock(payload), "\n"), "\n") {
		fmt.Fprintf(c.out, "%s%s\n", block, l)
	}
}

// compact renders payload on a single line.
func compact(payload any) string {
	p := printable(payload)
	if b, err := json.Marshal(p); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%+v", p)
}

// yamlBlock renders payload as YAML, falling back to fmt for values YAML cannot encode.
func yamlBlock(payload any) (out string) {
	p := printable(payload)
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%+v", p)
		}
	}()
	if b, err := yaml.Marshal(p); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%+v", p)
}
