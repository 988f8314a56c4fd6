package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/saga/pkg/commands/options"
	"tableflip.dev/saga/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add a journal entry",
		Example: `
saga add "Slept badly but the morning walk fixed it."
saga add --title "Monday pages" --on 2024-06-01 "Long day, good coffee."
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			r := add.Add{
				Service:   svc,
				Content:   strings.Join(args, " "),
				Title:     eo.Title,
				On:        eo.On,
				Summary:   eo.Summary,
				Type:      eo.Type,
				Prompt:    eo.Prompt,
				NoContext: eo.NoContext,
			}
			return r.Do(context.Background())
		},
	}
	options.AddEntryArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
