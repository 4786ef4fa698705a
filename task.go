// task.go defines the task representation shared by the store, the terminal
// view and the MCP tools.
package main

import "fmt"

// Category is the partition a task belongs to. It is fixed when the task is
// created.
type Category int

const (
	Work Category = iota
	Travel
)

func (c Category) String() string {
	if c == Travel {
		return "travel"
	}
	return "work"
}

// Flag is the one-character form persisted under the last-category key.
func (c Category) Flag() string {
	if c == Travel {
		return "T"
	}
	return "W"
}

// categoryFromFlag follows the stored convention: "W" is Work, anything
// else is Travel.
func categoryFromFlag(flag string) Category {
	if flag == "W" {
		return Work
	}
	return Travel
}

// ParseCategory accepts the names used by the MCP tools and the CLI.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "work", "Work", "W", "w":
		return Work, nil
	case "travel", "Travel", "T", "t":
		return Travel, nil
	}
	return Work, fmt.Errorf("unknown category %q (want work or travel)", s)
}

// Task is one user-entered item.
//
// Lifecycle: open -> done -> open (any number of times)
//
//	open -> editing -> open (via ToggleEditing or Update)
//	open -> removed (confirmed delete only)
type Task struct {
	ID       string
	Text     string
	Category Category // never changes after creation
	Done     bool
	Editing  bool // transient; never persisted
}

// storedTask is the persisted shape of a task. Field names match what
// earlier clients wrote, so existing data loads unchanged. Unknown fields
// such as a legacy "edit" flag are ignored on decode.
type storedTask struct {
	Text    string `json:"text"`
	Working bool   `json:"working"`
	Done    bool   `json:"done"`
}

func (t *Task) stored() storedTask {
	return storedTask{
		Text:    t.Text,
		Working: t.Category == Work,
		Done:    t.Done,
	}
}

func taskFromStored(id string, st storedTask) *Task {
	cat := Travel
	if st.Working {
		cat = Work
	}
	return &Task{
		ID:       id,
		Text:     st.Text,
		Category: cat,
		Done:     st.Done,
	}
}
