package genprompt

import (
	"context"

	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/printers"
)

// Prompt asks the prompt service for a writing prompt and prints it.
type Prompt struct {
	Service *app.Service

	Type  string
	Theme string
}

func (n *Prompt) Do(ctx context.Context) error {
	typ, err := entry.ParsePromptType(n.Type)
	if err != nil {
		return err
	}

	text, err := n.Service.GeneratePrompt(ctx, typ, n.Theme)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Prompt(text)
	return nil
}
