// category_info.go defines the set_category tool types.
package main

// SetCategoryArgs is the input for the set_category tool.
type SetCategoryArgs struct {
	Category string `json:"category" jsonschema:"work or travel"`
}

// SetCategoryOutput echoes the active category and its counts.
type SetCategoryOutput struct {
	Category string      `json:"category"`
	Summary  TaskSummary `json:"summary"`
}
