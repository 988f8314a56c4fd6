package get

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/index"
	"tableflip.dev/saga/pkg/printers"
)

const layoutISO = "2006-01-02"

// Get lists entries, optionally narrowed by type, search term or day.
type Get struct {
	Service *app.Service

	Type   string
	Search string
	On     string
	ShowID bool
	JSON   bool
}

func (n *Get) Do(ctx context.Context) error {
	entries, err := n.Service.List(ctx)
	if err != nil {
		return err
	}

	if n.Type != "" {
		entries = index.FilterByPromptType(entries, n.Type)
	}
	entries = index.Search(entries, n.Search)

	if n.On != "" {
		day, err := time.ParseInLocation(layoutISO, n.On, time.Local)
		if err != nil {
			return fmt.Errorf("get: invalid --on date %q: %w", n.On, err)
		}
		entries = index.EntriesOnDay(entries, day)
	}

	if n.JSON {
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	buckets := index.GroupByDay(entries)
	if len(buckets) == 0 {
		pp.DayTitle(time.Now().Format("January 2, 2006"), 0)
		pp.Entries()
		return nil
	}
	pp.Grouped(buckets)
	return nil
}
