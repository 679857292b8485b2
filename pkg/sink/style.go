package sink

import (
	"strings"

	"github.com/muesli/termenv"
)

// Style is the parsed form of a console style string.
type Style struct {
	Bold   bool
	Italic bool
	Color  string
}

var namedColors = map[string]string{
	"grey":  "#808080",
	"gray":  "#808080",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// ParseStyle reads the declarations Console understands: font-weight, font-style and
// color (hex or a few names). Unknown declarations are ignored.
func ParseStyle(css string) Style {
	var st Style
	for _, decl := range strings.Split(css, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.ToLower(strings.TrimSpace(value))

		switch prop {
		case "font-weight":
			st.Bold = value == "bold" || value == "bolder" || value == "700"
		case "font-style":
			st.Italic = value == "italic"
		case "color":
			if hex, ok := namedColors[value]; ok {
				value = hex
			}
			if strings.HasPrefix(value, "#") {
				st.Color = value
			}
		}
	}
	return st
}

// Render applies the style to s for the given output.
func (st Style) Render(out *termenv.Output, s string) string {
	styled := out.String(s)
	if st.Bold {
		styled = styled.Bold()
	}
	if st.Italic {
		styled = styled.Italic()
	}
	if st.Color != "" {
		styled = styled.Foreground(out.Color(st.Color))
	}
	return styled.String()
}
