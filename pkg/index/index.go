// Package index provides read-only derived views over an entry
// collection: prompt-type filtering, substring search, and per-day
// grouping. Every function is pure; the input slice is never mutated.
package index

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/saga/pkg/entry"
)

// FilterAll is the filter value that matches every prompt type.
const FilterAll = "all"

// FilterByPromptType returns the entries whose prompt type equals typ.
// Entries with no prompt type count as freeform. FilterAll (or empty)
// is the identity.
func FilterByPromptType(entries []*entry.Entry, typ string) []*entry.Entry {
	if typ == "" || typ == FilterAll {
		return entries
	}
	want, err := entry.ParsePromptType(typ)
	if err != nil {
		return entries
	}
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e.PromptType.Normalize() == want {
			out = append(out, e)
		}
	}
	return out
}

// Search returns entries whose title or content contains term,
// case-insensitively. A blank term is the identity.
func Search(entries []*entry.Entry, term string) []*entry.Entry {
	term = strings.TrimSpace(term)
	if term == "" {
		return entries
	}
	needle := strings.ToLower(term)
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Content), needle) ||
			strings.Contains(strings.ToLower(e.Title), needle) {
			out = append(out, e)
		}
	}
	return out
}

// DayBucket is one calendar day's entries, most recent first.
type DayBucket struct {
	Key     string
	Day     time.Time
	Entries []*entry.Entry
}

// GroupByDay partitions entries into day buckets. Buckets are ordered
// most recent day first; entries within a bucket are ordered by date
// descending with original collection order breaking ties. Each input
// entry lands in exactly one bucket.
func GroupByDay(entries []*entry.Entry) []DayBucket {
	byKey := make(map[string]*DayBucket)
	var order []string
	for _, e := range entries {
		key := e.Date.DayKey()
		b, ok := byKey[key]
		if !ok {
			b = &DayBucket{Key: key, Day: e.Date.DayStart()}
			byKey[key] = b
			order = append(order, key)
		}
		b.Entries = append(b.Entries, e)
	}

	buckets := make([]DayBucket, 0, len(order))
	for _, key := range order {
		b := byKey[key]
		SortByDateDesc(b.Entries)
		buckets = append(buckets, *b)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Day.After(buckets[j].Day)
	})
	return buckets
}

// EntriesOnDay returns the bucket for the given day, or nil when the
// day has no entries. Equivalent to one bucket of GroupByDay.
func EntriesOnDay(entries []*entry.Entry, day time.Time) []*entry.Entry {
	var out []*entry.Entry
	for _, e := range entries {
		if e.Date.SameDay(day) {
			out = append(out, e)
		}
	}
	SortByDateDesc(out)
	return out
}

// Ordered returns the primary display ordering: all entries by date
// descending, ties preserving original collection order.
func Ordered(entries []*entry.Entry) []*entry.Entry {
	out := make([]*entry.Entry, len(entries))
	copy(out, entries)
	SortByDateDesc(out)
	return out
}

// SortByDateDesc sorts in place, newest first. The sort is stable so
// identical timestamps keep their original relative order.
func SortByDateDesc(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date.Time)
	})
}
