// Package markup converts between the stored plain-text form of an
// entry body and its display form. Styles are kept inline as textual
// marker pairs so the stored content stays a flat string.
package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind enumerates the supported inline styles.
type Kind int

const (
	KindBold Kind = iota
	KindItalic
	KindUnderline
	KindHighlight
)

// Style describes one inline style to apply. Color is only meaningful
// for highlights.
type Style struct {
	Kind  Kind
	Color string
}

var (
	Bold      = Style{Kind: KindBold}
	Italic    = Style{Kind: KindItalic}
	Underline = Style{Kind: KindUnderline}
)

// Highlight returns a highlight style for the given color name.
func Highlight(color string) Style {
	return Style{Kind: KindHighlight, Color: color}
}

// Markers returns the opening and closing marker for the style.
func (s Style) Markers() (string, string) {
	switch s.Kind {
	case KindBold:
		return "**", "**"
	case KindItalic:
		return "_", "_"
	case KindUnderline:
		return "__", "__"
	case KindHighlight:
		return fmt.Sprintf(`<mark class="highlight-%s">`, s.Color), "</mark>"
	}
	return "", ""
}

// ApplyStyle wraps the selection [start, end) of text in the style's
// markers. Offsets are byte positions in the original string; they are
// clamped to the text and swapped if reversed. The returned cursor sits
// after the closing marker for a non-empty selection, or between the
// two markers for an empty one so typing continues inside the style.
func ApplyStyle(text string, start, end int, style Style) (string, int) {
	open, close := style.Markers()

	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > len(text) {
		start = len(text)
	}

	var b strings.Builder
	b.Grow(len(text) + len(open) + len(close))
	b.WriteString(text[:start])
	b.WriteString(open)
	b.WriteString(text[start:end])
	b.WriteString(close)
	b.WriteString(text[end:])

	if start == end {
		return b.String(), start + len(open)
	}
	return b.String(), end + len(open) + len(close)
}

// Replacement order matters: bold before underline before italic, so
// the shared * and _ marker characters cannot bleed into each other.
var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	underlinePattern = regexp.MustCompile(`__(.*?)__`)
	italicPattern    = regexp.MustCompile(`_(.*?)_`)
)

// Render produces the display form of stored text: bold, underline and
// italic marker pairs become <strong>, <u> and <em> tags, newlines
// become <br />, and highlight spans pass through verbatim. Unpaired
// markers are left as literal characters; Render never fails. This is a
// one-way mapping: editing always happens on the stored form.
func Render(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, seg := range Segments(text) {
		if seg.Highlight {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(renderPlain(seg.Text))
	}
	return b.String()
}

func renderPlain(text string) string {
	out := boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	out = underlinePattern.ReplaceAllString(out, "<u>$1</u>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	return strings.ReplaceAll(out, "\n", "<br />")
}

// Segment is one classified run of stored text. Highlight runs carry
// the whole <mark ...>...</mark> span, color extracted; plain runs are
// everything else.
type Segment struct {
	Text      string
	Highlight bool
	Color     string
	Inner     string
}

const (
	markOpenPrefix = `<mark class="highlight-`
	markOpenSuffix = `">`
	markClose      = `</mark>`
)

// Segments scans the stored text once and classifies runs as highlight
// spans or plain text. A <mark> opening with no terminator is treated
// as plain text, keeping the scanner permissive on malformed input.
func Segments(text string) []Segment {
	var segs []Segment
	rest := text
	for len(rest) > 0 {
		openAt := strings.Index(rest, markOpenPrefix)
		if openAt < 0 {
			segs = append(segs, Segment{Text: rest})
			break
		}
		colorStart := openAt + len(markOpenPrefix)
		colorEnd := strings.Index(rest[colorStart:], markOpenSuffix)
		if colorEnd < 0 {
			segs = append(segs, Segment{Text: rest})
			break
		}
		innerStart := colorStart + colorEnd + len(markOpenSuffix)
		closeAt := strings.Index(rest[innerStart:], markClose)
		if closeAt < 0 {
			segs = append(segs, Segment{Text: rest})
			break
		}
		spanEnd := innerStart + closeAt + len(markClose)
		if openAt > 0 {
			segs = append(segs, Segment{Text: rest[:openAt]})
		}
		segs = append(segs, Segment{
			Text:      rest[openAt:spanEnd],
			Highlight: true,
			Color:     rest[colorStart : colorStart+colorEnd],
			Inner:     rest[innerStart : innerStart+closeAt],
		})
		rest = rest[spanEnd:]
	}
	return segs
}
