package prompt

import (
	"strings"

	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/index"
)

// contextSeparator joins entry bodies in the generation context.
const contextSeparator = "\n\n---\n\n"

// DefaultContextSize is how many recent entries seed a prompt.
const DefaultContextSize = 3

// ContextText assembles the recent-entries context for generation: the
// n most recent entries whose owners have not opted them out, joined
// with a separator the service splits on.
func ContextText(entries []*entry.Entry, n int) string {
	if n <= 0 {
		n = DefaultContextSize
	}
	ordered := index.Ordered(entries)
	parts := make([]string, 0, n)
	for _, e := range ordered {
		if !e.UsableForPrompts() {
			continue
		}
		body := strings.TrimSpace(e.Content)
		if body == "" {
			continue
		}
		parts = append(parts, body)
		if len(parts) == n {
			break
		}
	}
	return strings.Join(parts, contextSeparator)
}
