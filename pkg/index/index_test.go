package index

import (
	"testing"
	"time"

	"tableflip.dev/saga/pkg/entry"
)

func at(day, hour int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2024, 1, day, hour, 0, 0, 0, time.Local)}
}

func testEntries() []*entry.Entry {
	return []*entry.Entry{
		{ID: "1", Date: at(1, 9), Title: "Monday pages", Content: "slow morning", PromptType: entry.Daily},
		{ID: "2", Date: at(2, 9), Title: "", Content: "a Vivid dream", PromptType: entry.Reflective},
		{ID: "3", Date: at(2, 9), Title: "later same second", Content: "tie break"},
		{ID: "4", Date: at(2, 18), Title: "evening", Content: "wind down", PromptType: entry.Creative},
	}
}

func TestFilterByPromptType(t *testing.T) {
	entries := testEntries()

	got := FilterByPromptType(entries, "reflective")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("reflective filter = %v", ids(got))
	}

	// No prompt type counts as freeform.
	got = FilterByPromptType(entries, "freeform")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("freeform filter = %v", ids(got))
	}

	if got := FilterByPromptType(entries, FilterAll); len(got) != len(entries) {
		t.Fatalf("all filter dropped entries: %v", ids(got))
	}
}

func TestSearch(t *testing.T) {
	entries := testEntries()

	if got := Search(entries, ""); len(got) != len(entries) {
		t.Fatalf("empty term should be identity, got %v", ids(got))
	}
	if got := Search(entries, "   "); len(got) != len(entries) {
		t.Fatalf("whitespace term should be identity, got %v", ids(got))
	}

	got := Search(entries, "vivid")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("content search = %v", ids(got))
	}

	got = Search(entries, "MONDAY")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("title search = %v", ids(got))
	}
}

func TestGroupByDayIsAPartition(t *testing.T) {
	entries := testEntries()
	buckets := GroupByDay(entries)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2024-01-02" || buckets[1].Key != "2024-01-01" {
		t.Fatalf("buckets not descending: %s, %s", buckets[0].Key, buckets[1].Key)
	}

	seen := map[string]int{}
	total := 0
	for _, b := range buckets {
		for _, e := range b.Entries {
			seen[e.ID]++
			total++
		}
	}
	if total != len(entries) {
		t.Fatalf("partition lost entries: %d of %d", total, len(entries))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("entry %s appears %d times", id, n)
		}
	}

	// Within the Jan 2 bucket: 18:00 entry first, then the 9:00 tie in
	// original collection order.
	want := []string{"4", "2", "3"}
	got := ids(buckets[0].Entries)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket order = %v, want %v", got, want)
		}
	}
}

func TestEntriesOnDayMatchesGroupBucket(t *testing.T) {
	entries := testEntries()
	day := time.Date(2024, 1, 2, 13, 0, 0, 0, time.Local)

	got := EntriesOnDay(entries, day)
	buckets := GroupByDay(entries)
	want := buckets[0].Entries
	if len(got) != len(want) {
		t.Fatalf("EntriesOnDay = %v, want %v", ids(got), ids(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("EntriesOnDay = %v, want %v", ids(got), ids(want))
		}
	}

	if got := EntriesOnDay(entries, day.AddDate(0, 2, 0)); len(got) != 0 {
		t.Fatalf("expected empty day, got %v", ids(got))
	}
}

func TestOrderedDoesNotMutateInput(t *testing.T) {
	entries := testEntries()
	Ordered(entries)
	if entries[0].ID != "1" {
		t.Fatalf("input slice was reordered")
	}

	got := Ordered(entries)
	want := []string{"4", "2", "3", "1"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Ordered = %v, want %v", ids(got), want)
		}
	}
}

func ids(entries []*entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
