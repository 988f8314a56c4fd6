package markup

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

var highlightColors = map[string]color.Color{
	"yellow": lipgloss.Color("227"),
	"green":  lipgloss.Color("120"),
	"blue":   lipgloss.Color("117"),
	"pink":   lipgloss.Color("218"),
}

// RenderTerminal produces an ANSI-styled rendering of stored text for
// terminal display. It follows the same scan and ordering rules as
// Render, with lipgloss styles in place of tags.
func RenderTerminal(text string) string {
	var b strings.Builder
	for _, seg := range Segments(text) {
		if seg.Highlight {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
			if c, ok := highlightColors[seg.Color]; ok {
				style = style.Background(c)
			} else {
				style = style.Background(highlightColors["yellow"])
			}
			b.WriteString(style.Render(seg.Inner))
			continue
		}
		b.WriteString(renderPlainTerminal(seg.Text))
	}
	return b.String()
}

func renderPlainTerminal(text string) string {
	out := boldPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[2 : len(m)-2]
		return lipgloss.NewStyle().Bold(true).Render(inner)
	})
	out = underlinePattern.ReplaceAllStringFunc(out, func(m string) string {
		inner := m[2 : len(m)-2]
		return lipgloss.NewStyle().Underline(true).Render(inner)
	})
	out = italicPattern.ReplaceAllStringFunc(out, func(m string) string {
		inner := m[1 : len(m)-1]
		return lipgloss.NewStyle().Italic(true).Render(inner)
	})
	return out
}
