package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds keys through Update in order and returns the final model.
func send(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func newTestModel(t *testing.T) (model, *TaskStore) {
	t.Helper()
	s, _ := newTestStore(t)
	return newModel(context.Background(), s), s
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

func TestTUIAddClearsInput(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "Buy milk", "enter")

	if s.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", s.Len())
	}
	if m.input.Value() != "" {
		t.Fatalf("input should be cleared, got %q", m.input.Value())
	}
	if got := s.List(Work)[0].Text; got != "Buy milk" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTUIEmptySubmitIgnored(t *testing.T) {
	m, s := newTestModel(t)
	send(m, "enter")
	if s.Len() != 0 {
		t.Fatal("empty submission should not add a task")
	}
}

func TestTUIPlaceholderFollowsCategory(t *testing.T) {
	m, _ := newTestModel(t)
	if m.input.Placeholder != "What do you have to do?" {
		t.Fatalf("unexpected work placeholder %q", m.input.Placeholder)
	}
	m = send(m, "tab", "t")
	if m.input.Placeholder != "Where do you want to go?" {
		t.Fatalf("unexpected travel placeholder %q", m.input.Placeholder)
	}
}

// ---------------------------------------------------------------------------
// List actions
// ---------------------------------------------------------------------------

func TestTUICategorySwitchFiltersList(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "work item", "enter", "tab", "t", "tab", "trip", "enter")

	if s.Category() != Travel {
		t.Fatal("expected travel to be active")
	}
	view := m.View()
	if !strings.Contains(view, "trip") || strings.Contains(view, "work item") {
		t.Fatalf("travel view should only show travel tasks:\n%s", view)
	}
	m = send(m, "tab", "w")
	view = m.View()
	if !strings.Contains(view, "work item") || strings.Contains(view, "trip") {
		t.Fatalf("work view should only show work tasks:\n%s", view)
	}
}

func TestTUIToggleDone(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "a", "enter", "tab", "space")
	if !s.List(Work)[0].Done {
		t.Fatal("space should finish the task")
	}
	send(m, "x")
	if s.List(Work)[0].Done {
		t.Fatal("x should reopen the task")
	}
}

func TestTUIEditFlow(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "a", "enter", "tab", "e")
	if m.focus != focusEdit {
		t.Fatal("e should enter edit mode")
	}
	if !s.List(Work)[0].Editing {
		t.Fatal("task should be flagged editing")
	}
	if m.edit.Value() != "a" {
		t.Fatalf("edit field should be prefilled, got %q", m.edit.Value())
	}

	m.edit.SetValue("b")
	m = send(m, "enter")
	got := s.List(Work)[0]
	if got.Text != "b" || got.Editing {
		t.Fatalf("unexpected task after edit: %+v", got)
	}
	if m.focus != focusList || m.edit.Value() != "" {
		t.Fatal("edit state should be cleared")
	}
}

func TestTUIEditEmptyStaysInEdit(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "a", "enter", "tab", "e")
	m.edit.SetValue("")
	m = send(m, "enter")
	if m.focus != focusEdit || s.List(Work)[0].Text != "a" {
		t.Fatal("empty edit should be ignored")
	}
	m = send(m, "esc")
	if m.focus != focusList || s.List(Work)[0].Editing {
		t.Fatal("esc should leave edit mode")
	}
}

func TestTUIDoneTaskNotEditableOrDeletable(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "a", "enter", "tab", "space", "e")
	if m.focus != focusList || s.List(Work)[0].Editing {
		t.Fatal("done task should not enter edit mode")
	}
	m = send(m, "d")
	if m.focus != focusList {
		t.Fatal("done task should not open the delete prompt")
	}
}

// ---------------------------------------------------------------------------
// Delete prompt
// ---------------------------------------------------------------------------

func TestTUIDeleteCancelled(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "a", "enter", "tab", "d")
	if m.focus != focusConfirm {
		t.Fatal("d should open the prompt")
	}
	if !strings.Contains(m.View(), "Are you sure?") {
		t.Fatal("prompt should be rendered")
	}
	m = send(m, "n")
	if s.Len() != 1 || m.focus != focusList {
		t.Fatal("cancel should keep the task")
	}
}

func TestTUIDeleteConfirmed(t *testing.T) {
	m, s := newTestModel(t)
	m = send(m, "a", "enter", "b", "enter", "tab", "d", "y")
	if s.Len() != 1 {
		t.Fatalf("expected 1 task left, got %d", s.Len())
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should be clamped, got %d", m.cursor)
	}
	if s.List(Work)[0].Text != "a" {
		t.Fatal("the selected task (last added) should be the one deleted")
	}
}

func TestTUIQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, "tab")
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
