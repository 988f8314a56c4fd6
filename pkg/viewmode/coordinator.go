// Package viewmode coordinates the calendar and list presentations of
// the journal. It owns an immutable snapshot of the entry collection
// plus the active filters, and keeps the calendar's focused day and the
// list's selected entry pointing at the same place when the user
// switches between the two.
package viewmode

import (
	"time"

	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/index"
	"tableflip.dev/saga/pkg/selection"
)

// Mode is the sidebar presentation.
type Mode int

const (
	Calendar Mode = iota
	List
)

func (m Mode) String() string {
	if m == List {
		return "list"
	}
	return "calendar"
}

// Coordinator is the single state machine behind the journal views.
// Transitions mutate the coordinator in response to one user action or
// one completed asynchronous result at a time; the entries slice is
// replaced wholesale on every mutation and never edited in place.
type Coordinator struct {
	entries    []*entry.Entry
	mode       Mode
	focusedDay time.Time
	filterType string
	searchTerm string
	sel        *selection.Controller
}

// New builds the load-time state: calendar mode, first entry of the
// primary ordering selected (or create mode when the journal is empty),
// and the focused day following the selection.
func New(entries []*entry.Entry) *Coordinator {
	c := &Coordinator{
		entries:    entries,
		mode:       Calendar,
		filterType: index.FilterAll,
		focusedDay: time.Now(),
	}
	c.sel = selection.NewController(c.Visible())
	c.syncFocusedDay()
	return c
}

// Selection exposes the underlying selection state machine.
func (c *Coordinator) Selection() *selection.Controller { return c.sel }

func (c *Coordinator) Mode() Mode { return c.mode }

func (c *Coordinator) FocusedDay() time.Time { return c.focusedDay }

func (c *Coordinator) Filter() string { return c.filterType }

func (c *Coordinator) SearchTerm() string { return c.searchTerm }

// Entries returns the current snapshot in raw collection order.
func (c *Coordinator) Entries() []*entry.Entry { return c.entries }

// Visible applies the prompt-type filter and search term and returns
// the primary display ordering (date descending, stable).
func (c *Coordinator) Visible() []*entry.Entry {
	visible := index.FilterByPromptType(c.entries, c.filterType)
	visible = index.Search(visible, c.searchTerm)
	return index.Ordered(visible)
}

// DayEntries returns the visible entries on the focused day, most
// recent first.
func (c *Coordinator) DayEntries() []*entry.Entry {
	return index.EntriesOnDay(c.Visible(), c.focusedDay)
}

// Buckets returns the fully grouped visible entries for list mode.
func (c *Coordinator) Buckets() []index.DayBucket {
	return index.GroupByDay(c.Visible())
}

// Displayed is the ordering currently shown to the user: the focused
// day's entries in calendar mode, the flattened day groups in list
// mode. Selection repair after deletions uses this ordering.
func (c *Coordinator) Displayed() []*entry.Entry {
	if c.mode == Calendar {
		return c.DayEntries()
	}
	var out []*entry.Entry
	for _, b := range c.Buckets() {
		out = append(out, b.Entries...)
	}
	return out
}

// SelectedEntry resolves the selection against the snapshot.
func (c *Coordinator) SelectedEntry() *entry.Entry {
	id, ok := c.sel.SelectedID()
	if !ok {
		return nil
	}
	for _, e := range c.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// SetMode switches between calendar and list. The latent state of the
// other mode was kept in sync on every selection change, so the user's
// place is preserved.
func (c *Coordinator) SetMode(m Mode) {
	c.mode = m
}

// SelectEntry activates an entry and drags the calendar's focused day
// along with it.
func (c *Coordinator) SelectEntry(id string) {
	c.sel.SelectEntry(id, c.Visible())
	c.syncFocusedDay()
}

// FocusDay moves the calendar to the given day and auto-selects its
// most recent visible entry. An empty day clears the selection but
// stays in viewing mode.
func (c *Coordinator) FocusDay(day time.Time) {
	c.focusedDay = day
	onDay := c.DayEntries()
	if len(onDay) == 0 {
		c.sel.ClearSelection()
		return
	}
	if id, ok := c.sel.SelectedID(); ok && id == onDay[0].ID {
		return
	}
	c.sel.SelectEntry(onDay[0].ID, onDay)
}

// SetFilter changes the prompt-type filter. A selection that no longer
// matches is repaired as if the entry had been deleted.
func (c *Coordinator) SetFilter(promptType string) {
	before := c.Visible()
	c.filterType = promptType
	c.repairAfterVisibilityChange(before)
}

// SetSearch applies a new search term. Debouncing happens at the input
// boundary; by the time this runs the term is final.
func (c *Coordinator) SetSearch(term string) {
	before := c.Visible()
	c.searchTerm = term
	c.repairAfterVisibilityChange(before)
}

func (c *Coordinator) repairAfterVisibilityChange(before []*entry.Entry) {
	visible := c.Visible()
	c.sel.RepairAfterFilter(before, visible)
	c.syncFocusedDay()
}

// StartNewEntry opens the editor in create mode.
func (c *Coordinator) StartNewEntry() {
	c.sel.StartNewEntry()
}

// StartEditSelected opens the editor on the current selection.
func (c *Coordinator) StartEditSelected() {
	c.sel.StartEditSelected()
}

// CancelEdit closes the editor, recovering a default selection when a
// creation was abandoned.
func (c *Coordinator) CancelEdit() {
	c.sel.CancelEdit(c.Visible())
	c.syncFocusedDay()
}

// Saved applies a confirmed create or update: the snapshot is replaced
// and the saved entry becomes the selection.
func (c *Coordinator) Saved(snapshot []*entry.Entry, saved *entry.Entry) {
	c.entries = snapshot
	c.sel.OnSaved(saved)
	c.syncFocusedDay()
}

// Deleted applies a confirmed deletion. The repair rule runs against
// the ordering that was displayed when the delete was issued.
func (c *Coordinator) Deleted(deletedID string, snapshot []*entry.Entry) {
	displayed := c.Displayed()
	c.entries = snapshot
	c.sel.OnDeleted(deletedID, displayed)
	c.syncFocusedDay()
}

// Refresh replaces the snapshot after an external change (watch event,
// reload). A vanished selection is repaired like a filtered-out one; a
// missing selection on a non-empty journal falls back to the first
// entry.
func (c *Coordinator) Refresh(snapshot []*entry.Entry) {
	before := c.Visible()
	c.entries = snapshot
	visible := c.Visible()
	if _, ok := c.sel.SelectedID(); ok {
		c.sel.RepairAfterFilter(before, visible)
	} else if c.sel.Mode() == selection.Viewing && len(visible) > 0 {
		c.sel.Reset(visible)
	}
	c.syncFocusedDay()
}

// syncFocusedDay keeps the calendar's latent state on the selected
// entry's day so mode switches land where the user was.
func (c *Coordinator) syncFocusedDay() {
	if e := c.SelectedEntry(); e != nil {
		if !e.Date.SameDay(c.focusedDay) {
			c.focusedDay = e.Date.DayStart()
		}
	}
}
