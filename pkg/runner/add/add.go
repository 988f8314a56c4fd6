package add

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/printers"
)

const layoutISO = "2006-01-02"

// Add creates one entry from command-line fields.
type Add struct {
	Service *app.Service

	Content   string
	Title     string
	On        string
	Summary   string
	Type      string
	Prompt    string
	NoContext bool
}

func (n *Add) Do(ctx context.Context) error {
	date := entry.Now()
	if n.On != "" {
		day, err := time.ParseInLocation(layoutISO, n.On, time.Local)
		if err != nil {
			return fmt.Errorf("add: invalid --on date %q: %w", n.On, err)
		}
		now := time.Now()
		date = entry.Timestamp{Time: day.Add(
			time.Duration(now.Hour())*time.Hour +
				time.Duration(now.Minute())*time.Minute)}
	}

	promptType, err := entry.ParsePromptType(n.Type)
	if err != nil {
		return err
	}

	req := app.SaveRequest{
		Date:       date,
		Title:      n.Title,
		Content:    n.Content,
		Summary:    n.Summary,
		PromptType: promptType,
		Prompt:     n.Prompt,
	}
	if n.NoContext {
		no := false
		req.UseForPromptGeneration = &no
	}

	saved, err := n.Service.Save(ctx, req)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.DayTitle(saved.Date.Local().Format("January 2, 2006"), 1)
	pp.Entries(saved)
	return nil
}
