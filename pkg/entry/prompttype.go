package entry

import (
	"fmt"
	"strings"
)

// PromptType categorises how an entry was seeded. Freeform is the
// implicit value for entries written without an AI prompt.
type PromptType string

const (
	Reflective PromptType = "reflective"
	Daily      PromptType = "daily"
	Creative   PromptType = "creative"
	Freeform   PromptType = "freeform"
)

// AllPromptTypes returns the supported prompt types in display order.
func AllPromptTypes() []PromptType {
	return []PromptType{
		Reflective,
		Daily,
		Creative,
		Freeform,
	}
}

// ParsePromptType converts a string to a PromptType. The legacy value
// "journal" written by old backends maps to Daily. Empty input means
// Freeform.
func ParsePromptType(raw string) (PromptType, error) {
	t := PromptType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case "":
		return Freeform, nil
	case "journal":
		return Daily, nil
	}
	for _, candidate := range AllPromptTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return Freeform, fmt.Errorf("entry: unknown prompt type %q", raw)
}

// Normalize maps the zero value to Freeform so callers never have to
// special-case entries saved without a prompt. The legacy "journal"
// value still present in old stores reads as Daily.
func (t PromptType) Normalize() PromptType {
	switch t {
	case "":
		return Freeform
	case "journal":
		return Daily
	}
	return t
}

// Label returns the human-readable form used in lists and filters.
func (t PromptType) Label() string {
	switch t.Normalize() {
	case Reflective:
		return "Reflective"
	case Daily:
		return "Daily"
	case Creative:
		return "Creative"
	default:
		return "Freeform"
	}
}

func (t PromptType) String() string {
	return string(t.Normalize())
}
