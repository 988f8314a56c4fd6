package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/index"
)

type PrettyPrint struct {
	ShowID  bool
	Preview int
}

var spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))

func (pp *PrettyPrint) previewWidth() int {
	if pp.Preview > 0 {
		return pp.Preview
	}
	return 60
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// DayTitle prints a day header with its entry count.
func (pp *PrettyPrint) DayTitle(day string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(day)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Entries prints one day's entries as a table of time, type, title and
// preview.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		row := []interface{}{
			e.Date.Local().Format("15:04"),
			e.PromptType.Label(),
			e.DisplayTitle(),
			e.Preview(pp.previewWidth()),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID[:min(16, len(e.ID))])}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Grouped prints every day bucket, most recent first.
func (pp *PrettyPrint) Grouped(buckets []index.DayBucket) {
	for _, b := range buckets {
		pp.DayTitle(b.Day.Format("January 2, 2006"), len(b.Entries))
		pp.Entries(b.Entries...)
	}
}

// Prompt prints a generated writing prompt.
func (pp *PrettyPrint) Prompt(text string) {
	p := color.New(color.Italic)
	_, _ = p.Println(text)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
