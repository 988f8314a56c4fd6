// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// EntryOptions captures the editable entry fields for the add command.
type EntryOptions struct {
	Title     string
	On        string
	Summary   string
	Type      string
	Prompt    string
	Theme     string
	NoContext bool
}

// AddEntryArgs wires entry field flags on the provided command.
func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Optional entry title.")
	cmd.Flags().StringVar(&o.On, "on", "",
		"Entry date as YYYY-MM-DD, defaults to now.")
	cmd.Flags().StringVar(&o.Summary, "summary", "",
		"Optional stored preview line.")
	cmd.Flags().StringVar(&o.Prompt, "prompt", "",
		"Text of the writing prompt that seeded this entry.")
	cmd.Flags().StringVar(&o.Type, "type", "",
		"Prompt type: reflective, daily, creative, or freeform.")
	cmd.Flags().BoolVar(&o.NoContext, "no-context", false,
		"Exclude this entry from future prompt generation context.")
}
