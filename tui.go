// tui.go is the terminal front end: a Work/Travel header, a new-task input
// and the list of the active category's tasks.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
	focusConfirm
)

var placeholders = map[Category]string{
	Work:   "What do you have to do?",
	Travel: "Where do you want to go?",
}

// session is the process-local selection state that is not part of the
// store: the pending new-task text, the pending edit text and which task the
// delete prompt is for.
type session struct {
	input    textinput.Model
	edit     textinput.Model
	editID   string
	deleteID string
}

type model struct {
	ctx   context.Context
	store *TaskStore

	session
	focus  focus
	cursor int
	status string
	width  int
}

func newModel(ctx context.Context, store *TaskStore) model {
	input := textinput.New()
	input.CharLimit = 200
	input.Focus()

	edit := textinput.New()
	edit.CharLimit = 200

	m := model{
		ctx:     ctx,
		store:   store,
		session: session{input: input, edit: edit},
		focus:   focusInput,
	}
	m.input.Placeholder = placeholders[store.Category()]
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusInput:
			return m.handleInput(msg)
		case focusList:
			return m.handleList(msg)
		case focusEdit:
			return m.handleEdit(msg)
		case focusConfirm:
			return m.handleConfirm(msg)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func (m model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if t, ok := m.store.Add(m.input.Value()); ok {
			m.input.SetValue("")
			m.cursor = len(m.store.List(t.Category)) - 1
		}
		return m, nil
	case "tab", "esc", "down":
		m.focus = focusList
		m.input.Blur()
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.store.List(m.store.Category())

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "w":
		m.switchCategory(Work)
	case "t":
		m.switchCategory(Travel)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "tab", "i":
		m.focus = focusInput
		m.input.Focus()
		return m, textinput.Blink
	case " ", "space", "x":
		if t, ok := m.selected(tasks); ok {
			m.store.ToggleDone(t.ID)
		}
	case "e":
		t, ok := m.selected(tasks)
		if !ok || t.Done {
			return m, nil
		}
		if !m.store.ToggleEditing(t.ID) {
			return m, nil
		}
		if t.Editing {
			// second press leaves edit mode
			m.editID = ""
			return m, nil
		}
		m.editID = t.ID
		m.edit.SetValue(t.Text)
		m.edit.CursorEnd()
		m.edit.Focus()
		m.focus = focusEdit
		return m, textinput.Blink
	case "d":
		t, ok := m.selected(tasks)
		if !ok || t.Done {
			return m, nil
		}
		m.deleteID = t.ID
		m.focus = focusConfirm
	}
	return m, nil
}

func (m model) handleEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.store.Update(m.editID, m.edit.Value()) {
			m.leaveEdit()
		}
		return m, nil
	case "esc":
		m.store.SetEditing(m.editID, false)
		m.leaveEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer Answer
	switch msg.String() {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
		answer = false
	default:
		return m, nil
	}
	removed, err := m.store.Remove(m.ctx, m.deleteID, answer)
	if err != nil {
		log.Printf("remove %s: %v", m.deleteID, err)
	}
	if removed {
		m.status = "Deleted"
	}
	m.deleteID = ""
	m.focus = focusList
	m.clampCursor()
	return m, nil
}

func (m *model) switchCategory(c Category) {
	m.store.SetCategory(c)
	m.input.Placeholder = placeholders[c]
	m.cursor = 0
	m.status = ""
}

func (m *model) leaveEdit() {
	m.edit.SetValue("")
	m.edit.Blur()
	m.editID = ""
	m.focus = focusList
}

func (m *model) clampCursor() {
	n := len(m.store.List(m.store.Category()))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) selected(tasks []Task) (Task, bool) {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return Task{}, false
	}
	return tasks[m.cursor], true
}

func (m model) View() string {
	var b strings.Builder
	active := m.store.Category()

	work, travel := inactiveTabStyle, inactiveTabStyle
	if active == Work {
		work = activeTabStyle
	} else {
		travel = activeTabStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		work.Render("Work"),
		travel.Render("Travel"),
	))
	sum := m.store.Summary(active)
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d open, %d done", sum.Open, sum.Done)))
	b.WriteString("\n")

	box := inputStyle
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")

	tasks := m.store.List(active)
	for i, t := range tasks {
		b.WriteString(m.renderTask(i, t))
		b.WriteString("\n")
	}

	if m.focus == focusConfirm {
		b.WriteString(confirmStyle.Render("Delete To Do\nAre you sure?  [y] I'm Sure  [n] Cancel"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m model) renderTask(i int, t Task) string {
	cursor := "  "
	if m.focus != focusInput && i == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	var text string
	switch {
	case t.Editing && t.ID == m.editID:
		text = m.edit.View()
	case t.Done:
		text = toDoDoneStyle.Render(t.Text)
	default:
		text = toDoStyle.Render(t.Text)
	}

	doneIcon, editIcon, trashIcon := finishStyle.Render("✓"), updateStyle.Render("✎"), deleteStyle.Render("✗")
	if t.Done {
		doneIcon = disabledIcon.Render("↺")
		editIcon = disabledIcon.Render("✎")
		trashIcon = disabledIcon.Render("✗")
	} else if t.Editing {
		doneIcon = disabledIcon.Render("✓")
		trashIcon = disabledIcon.Render("✗")
	}
	return fmt.Sprintf("%s%s  %s %s %s", cursor, text, doneIcon, editIcon, trashIcon)
}

func (m model) help() string {
	switch m.focus {
	case focusInput:
		return "enter add • tab list • ctrl+c quit"
	case focusEdit:
		return "enter save • esc cancel"
	case focusConfirm:
		return "y delete • n cancel"
	}
	return "w work • t travel • space done • e edit • d delete • tab input • q quit"
}
