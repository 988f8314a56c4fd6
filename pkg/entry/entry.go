package entry

import (
	"strings"
)

// New builds an unsaved entry. The ID stays empty until persistence
// assigns one on the first store.
func New(date Timestamp, title, content string) *Entry {
	return &Entry{
		Date:       date,
		Title:      title,
		Content:    content,
		PromptType: Freeform,
	}
}

// Entry is one journal record. Content is the stored plain text and may
// carry inline style markers (see pkg/markup); Summary is a stored
// preview string that is never recomputed from Content here.
type Entry struct {
	ID                     string     `json:"id,omitempty"`
	Date                   Timestamp  `json:"date"`
	Title                  string     `json:"title,omitempty"`
	Content                string     `json:"content,omitempty"`
	Summary                string     `json:"summary,omitempty"`
	PromptType             PromptType `json:"promptType,omitempty"`
	Prompt                 string     `json:"prompt,omitempty"`
	UseForPromptGeneration *bool      `json:"useForPromptGeneration,omitempty"`
}

// UsableForPrompts reports whether this entry's content may seed future
// prompt generation. Unset means yes.
func (e *Entry) UsableForPrompts() bool {
	return e.UseForPromptGeneration == nil || *e.UseForPromptGeneration
}

// DisplayTitle returns the title, falling back to the entry date.
func (e *Entry) DisplayTitle() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return e.Date.Local().Format("January 2, 2006")
}

// Preview returns the stored summary, or a first-line truncation of the
// content when no summary was recorded.
func (e *Entry) Preview(max int) string {
	s := strings.TrimSpace(e.Summary)
	if s == "" {
		s = strings.TrimSpace(e.Content)
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
	}
	r := []rune(s)
	if max > 0 && len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

func (e *Entry) String() string {
	return e.DisplayTitle()
}
