package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/saga/pkg/runner/rm"
)

func addRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Example: `
saga rm 171dff69f8b99dca
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			r := rm.Rm{Service: svc, ID: args[0]}
			return r.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
