// Package calendar renders the month grid for the journal sidebar.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

// Day describes one rendered day cell.
type Day struct {
	Day       int
	Entries   int
	IsToday   bool
	IsFocused bool
}

// Options controls calendar styling.
type Options struct {
	TitleStyle   lipgloss.Style
	HeaderStyle  lipgloss.Style
	EmptyStyle   lipgloss.Style
	EntryStyle   lipgloss.Style
	TodayStyle   lipgloss.Style
	FocusedStyle lipgloss.Style
	ShowHeader   bool
}

// DefaultOptions returns the styling used by the journal UI.
func DefaultOptions() Options {
	return Options{
		TitleStyle:   lipgloss.NewStyle().Bold(true),
		HeaderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		EmptyStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		EntryStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		TodayStyle:   lipgloss.NewStyle().Underline(true),
		FocusedStyle: lipgloss.NewStyle().Reverse(true),
		ShowHeader:   true,
	}
}

// Render produces a multi-line month grid. Days carrying entries are
// styled distinctly; the focused day is highlighted.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := daysIn(month)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	lines := []string{opts.TitleStyle.Render(month.Format("January 2006"))}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	startOffset := int(first.Weekday())
	totalCells := startOffset + daysInMonth
	rows := (totalCells + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			cellIdx := row*7 + col
			day := cellIdx - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	if info.Entries > 0 {
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsFocused {
		style = style.Inherit(opts.FocusedStyle)
	}
	return style.Render(text)
}

func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}
