package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/saga/pkg/runner/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the journal's text-based user interface",
		Example: `
saga ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			i := tui.UI{Service: svc}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
