package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures the view filters shared by read commands.
type FilterOptions struct {
	Type   string
	Search string
	On     string
}

// AddFilterArgs wires filter flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Type, "type", "all",
		"Filter by prompt type: reflective, daily, creative, freeform, or all.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Case-insensitive substring search over titles and content.")
	cmd.Flags().StringVar(&o.On, "on", "",
		"Only entries on the given day (YYYY-MM-DD).")
}
