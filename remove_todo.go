// remove_todo.go defines the remove_todo tool types.
package main

// RemoveTodoArgs is the input for the remove_todo tool.
type RemoveTodoArgs struct {
	ID string `json:"id" jsonschema:"ID of the task to delete"`
	// Confirm stands in for the delete prompt. false is the cancel path and
	// changes nothing.
	Confirm bool `json:"confirm" jsonschema:"Must be true to actually delete. Ask the user first."`
}

// RemoveTodoOutput reports whether the task was deleted.
type RemoveTodoOutput struct {
	Removed bool `json:"removed"`
}
