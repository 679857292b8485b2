package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// An empty style detects light or dark backgrounds; "notty" renders plain text.
func NewRenderer(style string) (func(string) (string, error), error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Legend documents the marks and sections of an action log.
const Legend = `# Reading the action log

Every action opens a group titled

    action 🍍 [store] name @HH:MM:SS:mmm (Nms) mark

The store name, timestamp and duration are optional.

| Mark | Meaning |
|------|---------|
| ✅ | the action changed the state |
| ⚪ | the action finished without changing the state |
| ❌ | the action failed |

Inside the group:

- **prev state**: the snapshot taken before the action ran
- **action**: the action name, its arguments and the store
- **next state**: the snapshot taken after the action finished
- **diff**: the top-level fields that changed (with ` + "`--diff`" + `)

Deep snapshots replace nodes beyond the depth limit with ` + "`[Max Depth Reached]`" + `
and references back to an ancestor with ` + "`[Circular Reference]`" + `.
`
