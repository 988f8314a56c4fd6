package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/markup"
	"tableflip.dev/saga/pkg/selection"
	"tableflip.dev/saga/pkg/store"
	"tableflip.dev/saga/pkg/viewmode"
)

func TestInitialLoadSelectsNewestEntry(t *testing.T) {
	entries := []*entry.Entry{
		newEntryOn("old", time.Date(2025, time.March, 1, 9, 0, 0, 0, time.Local)),
		newEntryOn("new", time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)),
	}

	m := New(context.Background(), newService(entries...), nil)
	model, _ := m.Update(entriesLoadedMsg{entries})
	m = model.(Model)

	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after load, got %v", m.mode)
	}
	id, ok := m.coord.Selection().SelectedID()
	if !ok || id != "new" {
		t.Fatalf("expected newest entry selected, got %q (ok=%v)", id, ok)
	}
}

func TestEmptyJournalOpensEditor(t *testing.T) {
	m := New(context.Background(), newService(), nil)
	model, _ := m.Update(entriesLoadedMsg{nil})
	m = model.(Model)

	if m.mode != modeEdit {
		t.Fatalf("expected editor to open on empty journal, got mode %v", m.mode)
	}
	if !m.coord.Selection().Creating() {
		t.Fatalf("expected create mode on empty journal")
	}
}

func TestStaleSearchTickIsIgnored(t *testing.T) {
	entries := []*entry.Entry{newEntryOn("a", time.Now())}
	m := New(context.Background(), newService(entries...), nil)
	model, _ := m.Update(entriesLoadedMsg{entries})
	m = model.(Model)
	m.searchSeq = 5

	model, _ = m.Update(searchDebouncedMsg{seq: 4, term: "stale"})
	m = model.(Model)
	if got := m.coord.SearchTerm(); got != "" {
		t.Fatalf("stale debounce tick applied search term %q", got)
	}

	model, _ = m.Update(searchDebouncedMsg{seq: 5, term: "fresh"})
	m = model.(Model)
	if got := m.coord.SearchTerm(); got != "fresh" {
		t.Fatalf("current debounce tick not applied, term %q", got)
	}
}

func TestSaveErrorKeepsEditorOpen(t *testing.T) {
	m := New(context.Background(), newService(), nil)
	model, _ := m.Update(entriesLoadedMsg{nil})
	m = model.(Model)
	m.saving = true

	model, _ = m.Update(errMsg{fmt.Errorf("disk full")})
	m = model.(Model)

	if m.mode != modeEdit {
		t.Fatalf("expected editor to stay open after failed save, got mode %v", m.mode)
	}
	if m.saving {
		t.Fatalf("expected saving flag cleared after error")
	}
	if !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected error surfaced in status, got %q", m.status)
	}
}

func TestSavedCommitsAndClosesEditor(t *testing.T) {
	m := New(context.Background(), newService(), nil)
	model, _ := m.Update(entriesLoadedMsg{nil})
	m = model.(Model)
	m.saving = true

	saved := newEntryOn("first", time.Now())
	model, _ = m.Update(savedMsg{saved: saved, entries: []*entry.Entry{saved}})
	m = model.(Model)

	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after save, got %v", m.mode)
	}
	if m.saving {
		t.Fatalf("expected saving flag cleared")
	}
	id, ok := m.coord.Selection().SelectedID()
	if !ok || id != "first" {
		t.Fatalf("expected saved entry selected, got %q", id)
	}
}

func TestDeletedRepairsSelectionToNext(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)
	a := newEntryOn("a", day.Add(12*time.Hour))
	b := newEntryOn("b", day.Add(10*time.Hour))
	c := newEntryOn("c", day.Add(8*time.Hour))
	entries := []*entry.Entry{a, b, c}

	m := New(context.Background(), newService(entries...), nil)
	model, _ := m.Update(entriesLoadedMsg{entries})
	m = model.(Model)
	m.coord.SelectEntry("b")

	model, _ = m.Update(deletedMsg{id: "b", entries: []*entry.Entry{a, c}})
	m = model.(Model)

	id, ok := m.coord.Selection().SelectedID()
	if !ok || id != "c" {
		t.Fatalf("expected selection to move to next entry, got %q", id)
	}
}

func TestDeleteLastEntryOpensEditor(t *testing.T) {
	only := newEntryOn("only", time.Now())
	entries := []*entry.Entry{only}

	m := New(context.Background(), newService(entries...), nil)
	model, _ := m.Update(entriesLoadedMsg{entries})
	m = model.(Model)

	model, _ = m.Update(deletedMsg{id: "only", entries: nil})
	m = model.(Model)

	if m.mode != modeEdit {
		t.Fatalf("expected editor after deleting last entry, got mode %v", m.mode)
	}
	if m.coord.Selection().Mode() != selection.Editing {
		t.Fatalf("expected editing selection mode, got %v", m.coord.Selection().Mode())
	}
}

func TestStoreEventReloadsEntries(t *testing.T) {
	entries := []*entry.Entry{newEntryOn("a", time.Now())}
	svc := newService(entries...)

	m := New(context.Background(), svc, nil)
	model, _ := m.Update(entriesLoadedMsg{nil})
	m = model.(Model)

	_, cmd := m.Update(storeEventMsg{store.Event{Type: store.EventJournalInvalidated}})
	if cmd == nil {
		t.Fatalf("expected reload command after store event")
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)
	a := newEntryOn("a", day.Add(12*time.Hour))
	b := newEntryOn("b", day.Add(10*time.Hour))
	entries := []*entry.Entry{a, b}

	m := New(context.Background(), newService(entries...), nil)
	model, _ := m.Update(entriesLoadedMsg{entries})
	m = model.(Model)

	m.moveSelection(-1)
	if id, _ := m.coord.Selection().SelectedID(); id != "a" {
		t.Fatalf("expected clamp at top, got %q", id)
	}
	m.moveSelection(1)
	if id, _ := m.coord.Selection().SelectedID(); id != "b" {
		t.Fatalf("expected move down to b, got %q", id)
	}
	m.moveSelection(1)
	if id, _ := m.coord.Selection().SelectedID(); id != "b" {
		t.Fatalf("expected clamp at bottom, got %q", id)
	}
}

func TestApplyLineStyleWrapsCursorLine(t *testing.T) {
	m := New(context.Background(), newService(), nil)
	model, _ := m.Update(entriesLoadedMsg{nil})
	m = model.(Model)

	m.content.SetValue("hello\nworld")
	m.applyLineStyle(markup.Bold)

	want := "hello\n**world**"
	if got := m.content.Value(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestModeToggleKeepsPlace(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)
	a := newEntryOn("a", day.Add(12*time.Hour))
	b := newEntryOn("b", day.AddDate(0, 0, -1))
	entries := []*entry.Entry{a, b}

	m := New(context.Background(), newService(entries...), nil)
	model, _ := m.Update(entriesLoadedMsg{entries})
	m = model.(Model)

	m.coord.SelectEntry("b")
	m.coord.SetMode(viewmode.List)
	if id, _ := m.coord.Selection().SelectedID(); id != "b" {
		t.Fatalf("expected selection preserved across mode switch, got %q", id)
	}
	if !m.coord.FocusedDay().Equal(b.Date.DayStart()) {
		t.Fatalf("expected focused day to follow selection")
	}
}

func newService(entries ...*entry.Entry) *app.Service {
	return &app.Service{Persistence: &fakePersistence{entries: entries}}
}

func newEntryOn(id string, at time.Time) *entry.Entry {
	return &entry.Entry{
		ID:      id,
		Date:    entry.Timestamp{Time: at},
		Content: "entry " + id,
	}
}

type fakePersistence struct {
	entries []*entry.Entry
	nextID  int
}

func (f *fakePersistence) List(ctx context.Context) []*entry.Entry {
	return append([]*entry.Entry(nil), f.entries...)
}

func (f *fakePersistence) Get(ctx context.Context, id string) (*entry.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePersistence) Create(ctx context.Context, e *entry.Entry) (*entry.Entry, error) {
	f.nextID++
	stored := *e
	stored.ID = fmt.Sprintf("id-%d", f.nextID)
	f.entries = append(f.entries, &stored)
	return &stored, nil
}

func (f *fakePersistence) Update(ctx context.Context, id string, e *entry.Entry) (*entry.Entry, error) {
	for i, existing := range f.entries {
		if existing.ID == id {
			stored := *e
			stored.ID = id
			f.entries[i] = &stored
			return &stored, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePersistence) Delete(ctx context.Context, id string) error {
	for i, existing := range f.entries {
		if existing.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakePersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

var _ store.Persistence = (*fakePersistence)(nil)
