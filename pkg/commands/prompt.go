package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/saga/pkg/commands/options"
	"tableflip.dev/saga/pkg/runner/genprompt"
)

func addPrompt(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Generate a writing prompt from your recent entries",
		Example: `
saga prompt --type reflective
saga prompt --type creative --theme "rainy cities"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			r := genprompt.Prompt{
				Service: svc,
				Type:    eo.Type,
				Theme:   eo.Theme,
			}
			return r.Do(context.Background())
		},
	}
	cmd.Flags().StringVar(&eo.Type, "type", "daily",
		"Prompt type: reflective, daily, or creative.")
	cmd.Flags().StringVar(&eo.Theme, "theme", "",
		"Optional theme hint forwarded to the generator.")

	topLevel.AddCommand(cmd)
}
