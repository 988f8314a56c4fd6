package viewmode

import (
	"testing"
	"time"

	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/selection"
)

func mk(id string, day, hour int, pt entry.PromptType) *entry.Entry {
	return &entry.Entry{
		ID:         id,
		Date:       entry.Timestamp{Time: time.Date(2024, 1, day, hour, 0, 0, 0, time.Local)},
		Title:      "entry " + id,
		Content:    "content " + id,
		PromptType: pt,
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local)
}

func journal() []*entry.Entry {
	return []*entry.Entry{
		mk("a", 3, 9, entry.Daily),
		mk("b", 2, 9, entry.Reflective),
		mk("c", 2, 18, entry.Daily),
		mk("d", 1, 9, ""),
	}
}

func TestNewSelectsMostRecentAndFocusesItsDay(t *testing.T) {
	c := New(journal())
	if e := c.SelectedEntry(); e == nil || e.ID != "a" {
		t.Fatalf("expected most recent entry selected, got %v", e)
	}
	if !c.FocusedDay().Equal(day(3)) {
		t.Fatalf("focused day = %v, want Jan 3", c.FocusedDay())
	}
	if c.Mode() != Calendar {
		t.Fatalf("expected calendar mode by default")
	}
}

func TestFocusDayAutoSelectsMostRecentEntry(t *testing.T) {
	c := New(journal())
	c.FocusDay(day(2))
	if e := c.SelectedEntry(); e == nil || e.ID != "c" {
		t.Fatalf("expected 18:00 entry on Jan 2, got %v", e)
	}

	// Empty day clears the selection but stays in viewing mode.
	c.FocusDay(day(20))
	if c.SelectedEntry() != nil {
		t.Fatalf("expected no selection on empty day")
	}
	if c.Selection().Mode() != selection.Viewing {
		t.Fatalf("empty day should not open the editor")
	}
}

func TestSelectEntryDragsFocusedDay(t *testing.T) {
	c := New(journal())
	c.SelectEntry("d")
	if !c.FocusedDay().Equal(day(1)) {
		t.Fatalf("focused day did not follow selection: %v", c.FocusedDay())
	}

	// Switching modes afterwards keeps the user's place.
	c.SetMode(List)
	c.SetMode(Calendar)
	if e := c.SelectedEntry(); e == nil || e.ID != "d" {
		t.Fatalf("selection lost across mode switch")
	}
	entries := c.DayEntries()
	if len(entries) != 1 || entries[0].ID != "d" {
		t.Fatalf("calendar day does not show the selected entry")
	}
}

func TestDisplayedFollowsMode(t *testing.T) {
	c := New(journal())
	c.FocusDay(day(2))
	got := c.Displayed()
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("calendar Displayed = %v", ids(got))
	}

	c.SetMode(List)
	got = c.Displayed()
	want := []string{"a", "c", "b", "d"}
	if len(got) != len(want) {
		t.Fatalf("list Displayed = %v", ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("list Displayed = %v, want %v", ids(got), want)
		}
	}
}

func TestFilterRepairsSelectionLikeDeletion(t *testing.T) {
	c := New(journal())
	c.SetMode(List)
	c.SelectEntry("b")

	// b is reflective; filtering to daily hides it. Its forward
	// neighbour in the pre-filter ordering (d) is hidden too, so the
	// repair scans on to the nearest visible entry.
	c.SetFilter("daily")
	e := c.SelectedEntry()
	if e == nil {
		t.Fatalf("expected repaired selection")
	}
	if e.ID != "c" {
		t.Fatalf("repaired selection = %s, want c", e.ID)
	}
}

func TestFilterTreatsMissingPromptTypeAsFreeform(t *testing.T) {
	c := New(journal())
	c.SetMode(List)
	c.SelectEntry("d") // d has no prompt type

	c.SetFilter("daily")
	if e := c.SelectedEntry(); e == nil || e.ID == "d" {
		t.Fatalf("selection should have been repaired away from d, got %v", e)
	}

	c.SetFilter("freeform")
	visible := c.Visible()
	if len(visible) != 1 || visible[0].ID != "d" {
		t.Fatalf("freeform filter = %v", ids(visible))
	}
}

func TestSearchIdentityAndRepair(t *testing.T) {
	c := New(journal())
	c.SetMode(List)

	c.SetSearch("")
	if len(c.Visible()) != 4 {
		t.Fatalf("empty search should be identity")
	}

	c.SelectEntry("a")
	c.SetSearch("content b")
	visible := c.Visible()
	if len(visible) != 1 || visible[0].ID != "b" {
		t.Fatalf("search results = %v", ids(visible))
	}
	if e := c.SelectedEntry(); e == nil || e.ID != "b" {
		t.Fatalf("selection not repaired onto result, got %v", e)
	}
}

func TestSearchEmptyingViewFallsBackToCreate(t *testing.T) {
	c := New(journal())
	c.SetSearch("no such words anywhere")
	if c.SelectedEntry() != nil {
		t.Fatalf("expected no selection")
	}
	if !c.Selection().Creating() {
		t.Fatalf("expected create mode when nothing is visible")
	}
}

func TestSavedAndDeletedLifecycle(t *testing.T) {
	entries := journal()
	c := New(entries)

	saved := mk("e", 5, 8, entry.Creative)
	c.Saved(append(entries, saved), saved)
	if e := c.SelectedEntry(); e == nil || e.ID != "e" {
		t.Fatalf("saved entry not selected")
	}
	if !c.FocusedDay().Equal(day(5)) {
		t.Fatalf("focused day did not follow save")
	}

	// Delete the selection from the displayed day list; the day has no
	// other entries so the selection clears and the editor opens.
	remaining := journal()
	c.Deleted("e", remaining)
	if !c.Selection().Creating() {
		t.Fatalf("expected create mode after deleting only entry of the day")
	}
}

func TestDeletedSelectsSuccessorInDisplayedOrdering(t *testing.T) {
	c := New(journal())
	c.SetMode(List)
	c.SelectEntry("c")

	// Displayed list ordering: a, c, b, d. Successor of c is b.
	var remaining []*entry.Entry
	for _, e := range journal() {
		if e.ID != "c" {
			remaining = append(remaining, e)
		}
	}
	c.Deleted("c", remaining)
	if e := c.SelectedEntry(); e == nil || e.ID != "b" {
		t.Fatalf("expected successor b, got %v", e)
	}
}

func TestRefreshRecoversSelection(t *testing.T) {
	c := New(journal())
	c.SelectEntry("b")

	// b vanished out from under us.
	var remaining []*entry.Entry
	for _, e := range journal() {
		if e.ID != "b" {
			remaining = append(remaining, e)
		}
	}
	c.Refresh(remaining)
	e := c.SelectedEntry()
	if e == nil || e.ID == "b" {
		t.Fatalf("stale selection survived refresh: %v", e)
	}
}

func ids(entries []*entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
