// Package selection tracks which entry is active and whether the
// editor is open. It is a two-state machine gated by a nullable
// selection: editing with no selection means a new entry is being
// created.
package selection

import (
	"fmt"
	"os"

	"tableflip.dev/saga/pkg/entry"
)

// Mode is the editor state.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

// Controller owns the current selection. All transitions re-derive a
// consistent state; the controller never ends up pointing at an id that
// is absent from the collection it was last reconciled against.
type Controller struct {
	selectedID string
	mode       Mode
}

// NewController returns the initial state for the given display
// ordering: first entry selected for a non-empty collection, otherwise
// straight into creating a new entry.
func NewController(ordering []*entry.Entry) *Controller {
	c := &Controller{}
	c.Reset(ordering)
	return c
}

// Reset re-derives the load-time state from the current ordering.
func (c *Controller) Reset(ordering []*entry.Entry) {
	if len(ordering) > 0 {
		c.selectedID = ordering[0].ID
		c.mode = Viewing
		return
	}
	c.selectedID = ""
	c.mode = Editing
}

// SelectedID returns the active entry id; ok is false when nothing is
// selected.
func (c *Controller) SelectedID() (string, bool) {
	return c.selectedID, c.selectedID != ""
}

// Mode returns the current editor mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Creating reports whether the editor is open with no backing entry.
func (c *Controller) Creating() bool {
	return c.mode == Editing && c.selectedID == ""
}

// SelectEntry activates the entry with the given id for viewing. A
// stale id not present in the ordering is tolerated as a no-op.
func (c *Controller) SelectEntry(id string, ordering []*entry.Entry) {
	if indexOf(ordering, id) < 0 {
		fmt.Fprintf(os.Stderr, "selection: ignoring stale entry id %s\n", id)
		return
	}
	c.selectedID = id
	c.mode = Viewing
}

// StartNewEntry opens the editor in create mode.
func (c *Controller) StartNewEntry() {
	c.selectedID = ""
	c.mode = Editing
}

// StartEditSelected opens the editor on the selected entry. Without a
// selection there is nothing to edit and the call is a no-op.
func (c *Controller) StartEditSelected() {
	if c.selectedID == "" {
		return
	}
	c.mode = Editing
}

// CancelEdit leaves the editor. When the edit was a cancelled creation
// and entries exist, the first entry in the ordering is selected as a
// recovery default.
func (c *Controller) CancelEdit(ordering []*entry.Entry) {
	c.mode = Viewing
	if c.selectedID == "" && len(ordering) > 0 {
		c.selectedID = ordering[0].ID
	}
}

// OnSaved commits a successful create or update: the saved entry
// becomes the viewed selection.
func (c *Controller) OnSaved(saved *entry.Entry) {
	c.selectedID = saved.ID
	c.mode = Viewing
}

// OnDeleted reconciles the selection after a deletion. orderingBefore
// is the list as it was displayed when the delete happened. Deleting a
// non-selected entry changes nothing; deleting the selected entry moves
// the selection to its successor in the ordering, else its predecessor,
// else clears it and falls back to creating a new entry.
func (c *Controller) OnDeleted(deletedID string, orderingBefore []*entry.Entry) {
	if deletedID != c.selectedID {
		return
	}
	i := indexOf(orderingBefore, deletedID)
	if i < 0 {
		c.selectedID = ""
		c.mode = Editing
		return
	}
	switch {
	case i+1 < len(orderingBefore):
		c.selectedID = orderingBefore[i+1].ID
		c.mode = Viewing
	case i-1 >= 0:
		c.selectedID = orderingBefore[i-1].ID
		c.mode = Viewing
	default:
		c.selectedID = ""
		c.mode = Editing
	}
}

// RepairAfterFilter reconciles the selection after the visible set
// changed (filter or search). A selected entry that is no longer
// visible is treated like a deleted one: the nearest still-visible
// neighbour in the pre-change ordering takes over, scanning forward
// first, then backward.
func (c *Controller) RepairAfterFilter(orderingBefore, visible []*entry.Entry) {
	if c.selectedID == "" {
		return
	}
	if indexOf(visible, c.selectedID) >= 0 {
		return
	}
	i := indexOf(orderingBefore, c.selectedID)
	if i < 0 {
		c.Reset(visible)
		return
	}
	for j := i + 1; j < len(orderingBefore); j++ {
		if indexOf(visible, orderingBefore[j].ID) >= 0 {
			c.selectedID = orderingBefore[j].ID
			c.mode = Viewing
			return
		}
	}
	for j := i - 1; j >= 0; j-- {
		if indexOf(visible, orderingBefore[j].ID) >= 0 {
			c.selectedID = orderingBefore[j].ID
			c.mode = Viewing
			return
		}
	}
	c.selectedID = ""
	c.mode = Editing
}

// ClearSelection drops the selection without opening the editor.
func (c *Controller) ClearSelection() {
	c.selectedID = ""
}

func indexOf(entries []*entry.Entry, id string) int {
	if id == "" {
		return -1
	}
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
