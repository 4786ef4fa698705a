// mcp_tools.go exposes the task store as MCP tools over stdio.
//
// Each handler maps one store operation. Store calls that report false on an
// unknown id become tool errors; the empty-text no-ops come back with
// changed=false, matching the silent behavior of the terminal view.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	errTaskNotFound = errors.New("task not found")
	errTaskDone     = errors.New("task is done")
)

type toolHandlers struct {
	store *TaskStore
}

// newMCPServer builds the server with every tool registered.
func newMCPServer(store *TaskStore, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "worktravel", Version: version}, nil)
	h := &toolHandlers{store: store}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_todo",
		Description: "Add a task to the work or travel list. Returns the new task.",
	}, h.addTodo)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_todos",
		Description: "List tasks of one category with open/done counts.",
	}, h.listTodos)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_category",
		Description: "Switch the active category (work or travel). New tasks go to the active category.",
	}, h.setCategory)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_done",
		Description: "Mark a task done or reopen it.",
	}, h.setDone)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_todo",
		Description: "Replace a task's text. Done tasks can't be edited.",
	}, h.editTodo)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_edit",
		Description: "Toggle edit mode on a task. Only one task is in edit mode at a time.",
	}, h.toggleEdit)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_todo",
		Description: "Delete a task. Requires confirm=true; confirm the deletion with the user first. Done tasks can't be deleted.",
	}, h.removeTodo)
	return server
}

func (h *toolHandlers) addTodo(_ context.Context, _ *mcp.CallToolRequest, args AddTodoArgs) (*mcp.CallToolResult, TaskOutput, error) {
	var (
		t  Task
		ok bool
	)
	if args.Category != "" {
		c, err := ParseCategory(args.Category)
		if err != nil {
			return nil, TaskOutput{}, err
		}
		t, ok = h.store.AddTo(c, args.Text)
	} else {
		t, ok = h.store.Add(args.Text)
	}
	if !ok {
		return nil, TaskOutput{}, nil
	}
	return nil, TaskOutput{Task: taskResult(t), Changed: true}, nil
}

func (h *toolHandlers) listTodos(_ context.Context, _ *mcp.CallToolRequest, args ListTodosArgs) (*mcp.CallToolResult, ListTodosOutput, error) {
	active := h.store.Category()
	c := active
	if args.Category != "" {
		var err error
		if c, err = ParseCategory(args.Category); err != nil {
			return nil, ListTodosOutput{}, err
		}
	}
	tasks := h.store.List(c)
	out := ListTodosOutput{
		Active:  active.String(),
		Summary: h.store.Summary(c),
		Tasks:   make([]TaskResult, 0, len(tasks)),
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, taskResult(t))
	}
	return nil, out, nil
}

func (h *toolHandlers) setCategory(_ context.Context, _ *mcp.CallToolRequest, args SetCategoryArgs) (*mcp.CallToolResult, SetCategoryOutput, error) {
	c, err := ParseCategory(args.Category)
	if err != nil {
		return nil, SetCategoryOutput{}, err
	}
	h.store.SetCategory(c)
	return nil, SetCategoryOutput{Category: c.String(), Summary: h.store.Summary(c)}, nil
}

func (h *toolHandlers) setDone(_ context.Context, _ *mcp.CallToolRequest, args SetDoneArgs) (*mcp.CallToolResult, TaskOutput, error) {
	if !h.store.SetDone(args.ID, args.Done) {
		return nil, TaskOutput{}, fmt.Errorf("%w: %s", errTaskNotFound, args.ID)
	}
	return h.taskOutput(args.ID, true)
}

func (h *toolHandlers) editTodo(_ context.Context, _ *mcp.CallToolRequest, args EditTodoArgs) (*mcp.CallToolResult, TaskOutput, error) {
	t, ok := h.store.Get(args.ID)
	if !ok {
		return nil, TaskOutput{}, fmt.Errorf("%w: %s", errTaskNotFound, args.ID)
	}
	if t.Done {
		return nil, TaskOutput{}, fmt.Errorf("%w: %s", errTaskDone, args.ID)
	}
	changed := h.store.Update(args.ID, args.Text)
	return h.taskOutput(args.ID, changed)
}

func (h *toolHandlers) toggleEdit(_ context.Context, _ *mcp.CallToolRequest, args ToggleEditArgs) (*mcp.CallToolResult, TaskOutput, error) {
	t, ok := h.store.Get(args.ID)
	if !ok {
		return nil, TaskOutput{}, fmt.Errorf("%w: %s", errTaskNotFound, args.ID)
	}
	if t.Done {
		return nil, TaskOutput{}, fmt.Errorf("%w: %s", errTaskDone, args.ID)
	}
	changed := h.store.ToggleEditing(args.ID)
	return h.taskOutput(args.ID, changed)
}

func (h *toolHandlers) removeTodo(ctx context.Context, _ *mcp.CallToolRequest, args RemoveTodoArgs) (*mcp.CallToolResult, RemoveTodoOutput, error) {
	t, ok := h.store.Get(args.ID)
	if !ok {
		return nil, RemoveTodoOutput{}, fmt.Errorf("%w: %s", errTaskNotFound, args.ID)
	}
	if t.Done {
		return nil, RemoveTodoOutput{}, fmt.Errorf("%w: %s", errTaskDone, args.ID)
	}
	removed, err := h.store.Remove(ctx, args.ID, Answer(args.Confirm))
	if err != nil {
		return nil, RemoveTodoOutput{}, err
	}
	return nil, RemoveTodoOutput{Removed: removed}, nil
}

func (h *toolHandlers) taskOutput(id string, changed bool) (*mcp.CallToolResult, TaskOutput, error) {
	t, ok := h.store.Get(id)
	if !ok {
		return nil, TaskOutput{}, fmt.Errorf("%w: %s", errTaskNotFound, id)
	}
	return nil, TaskOutput{Task: taskResult(t), Changed: changed}, nil
}
