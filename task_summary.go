// task_summary.go defines the list_todos tool types: tasks of one category
// plus aggregate counts.
package main

// ListTodosArgs is the input for the list_todos tool.
type ListTodosArgs struct {
	Category string `json:"category,omitempty" jsonschema:"work or travel. Defaults to the active category."`
}

// ListTodosOutput contains a compact summary plus the tasks themselves.
type ListTodosOutput struct {
	Active  string       `json:"active"` // the active category
	Summary TaskSummary  `json:"summary"`
	Tasks   []TaskResult `json:"tasks"`
}

// TaskSummary provides counts for one category.
type TaskSummary struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Open     int    `json:"open"`
	Done     int    `json:"done"`
}
