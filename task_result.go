// task_result.go defines the per-task tool types: add_todo, set_done,
// edit_todo and toggle_edit all answer with the task as it is after the
// change.
package main

// AddTodoArgs is the input for the add_todo tool.
type AddTodoArgs struct {
	Text string `json:"text" jsonschema:"Task text. Empty text is ignored."`
	// Category switches the active category before adding, like tapping the
	// header first.
	Category string `json:"category,omitempty" jsonschema:"work or travel. Defaults to the active category."`
}

// SetDoneArgs is the input for the set_done tool.
type SetDoneArgs struct {
	ID   string `json:"id"   jsonschema:"Task ID"`
	Done bool   `json:"done" jsonschema:"true to finish the task, false to reopen it"`
}

// EditTodoArgs is the input for the edit_todo tool.
type EditTodoArgs struct {
	ID   string `json:"id"   jsonschema:"Task ID"`
	Text string `json:"text" jsonschema:"Replacement text. Empty text is ignored."`
}

// ToggleEditArgs is the input for the toggle_edit tool.
type ToggleEditArgs struct {
	ID string `json:"id" jsonschema:"Task ID"`
}

// TaskOutput wraps a single task result.
type TaskOutput struct {
	Task    TaskResult `json:"task"`
	Changed bool       `json:"changed"` // false when the call was a no-op
}

// TaskResult is the wire view of one task.
type TaskResult struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Done     bool   `json:"done"`
	Editing  bool   `json:"editing,omitempty"`
}

func taskResult(t Task) TaskResult {
	return TaskResult{
		ID:       t.ID,
		Text:     t.Text,
		Category: t.Category.String(),
		Done:     t.Done,
		Editing:  t.Editing,
	}
}
