package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/saga/pkg/commands/options"
	"tableflip.dev/saga/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List journal entries grouped by day",
		Example: `
saga get
saga get --on 2024-06-01
saga get --type reflective --search "morning"
saga get --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return out.HandleError(err)
			}
			r := get.Get{
				Service: svc,
				Type:    fo.Type,
				Search:  fo.Search,
				On:      fo.On,
				ShowID:  io.ShowID,
				JSON:    out.JSON,
			}
			return out.HandleError(r.Do(context.Background()))
		},
	}
	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, out)

	topLevel.AddCommand(cmd)
}
