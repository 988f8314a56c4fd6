package commands

import (
	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/prompt"
	"tableflip.dev/saga/pkg/store"
)

// newService loads config and wires the collaborators every command
// shares.
func newService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Persistence: p,
		Generator:   prompt.NewClient(cfg.PromptService()),
	}, nil
}
