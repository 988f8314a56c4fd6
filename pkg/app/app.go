// Package app provides the high-level journal actions shared by the
// CLI runners and the TUI. It sits at the error boundary: collaborator
// failures are returned to the caller, and no state transition is
// committed unless the awaited result succeeded.
package app

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/prompt"
	"tableflip.dev/saga/pkg/store"
)

var (
	// ErrEmptyContent rejects a save before it reaches persistence.
	ErrEmptyContent = errors.New("app: entry content is empty")

	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrNoGenerator   = errors.New("app: no prompt generator configured")
)

// Generator produces a writing prompt; satisfied by prompt.Client.
type Generator interface {
	Generate(ctx context.Context, req prompt.Request) (string, error)
}

// Service wraps the persistence and prompt-generation collaborators.
type Service struct {
	Persistence store.Persistence
	Generator   Generator
}

// List returns the full entry collection, newest first.
func (s *Service) List(ctx context.Context) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.List(ctx), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// SaveRequest carries the editable fields of one save action. An empty
// ID means create; otherwise the identified entry is updated in place.
type SaveRequest struct {
	ID                     string
	Date                   entry.Timestamp
	Title                  string
	Content                string
	Summary                string
	PromptType             entry.PromptType
	Prompt                 string
	UseForPromptGeneration *bool
}

// Save validates and persists one entry. An entry saved without a
// generated prompt is always freeform, whatever type the picker was
// left on.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	date := req.Date
	if date.IsZero() {
		date = entry.Now()
	}
	promptType := req.PromptType.Normalize()
	if req.Prompt == "" {
		promptType = entry.Freeform
	}

	e := &entry.Entry{
		ID:                     req.ID,
		Date:                   date,
		Title:                  strings.TrimSpace(req.Title),
		Content:                req.Content,
		Summary:                req.Summary,
		PromptType:             promptType,
		Prompt:                 req.Prompt,
		UseForPromptGeneration: req.UseForPromptGeneration,
	}

	if req.ID == "" {
		return s.Persistence.Create(ctx, e)
	}
	return s.Persistence.Update(ctx, req.ID, e)
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.Delete(ctx, id)
}

// GeneratePrompt asks the prompt service for a writing cue of the given
// type, seeding it with the most recent entries that allow it.
func (s *Service) GeneratePrompt(ctx context.Context, typ entry.PromptType, themeHint string) (string, error) {
	if s.Generator == nil {
		return "", ErrNoGenerator
	}
	var recent []*entry.Entry
	if s.Persistence != nil {
		recent = s.Persistence.List(ctx)
	}
	return s.Generator.Generate(ctx, prompt.Request{
		PromptType:        typ.Normalize(),
		RecentEntriesText: prompt.ContextText(recent, prompt.DefaultContextSize),
		ThemeHint:         strings.TrimSpace(themeHint),
	})
}
