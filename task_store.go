// task_store.go implements the task list store: an in-memory collection that
// writes itself through to a KV after every mutation.
//
// The TUI and the MCP handlers both go through this store. The mutex keeps
// mutations serialized; persistence runs on the writer goroutine so no
// mutation waits on disk.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Keys under which state lives in the KV. Kept compatible with data written
// by earlier clients of the same list.
const (
	tasksKey    = "@toDos"
	categoryKey = "@lastStay"
)

// Confirmer asks the user a yes/no question. It returns true only when the
// user confirmed.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, title, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, title, message string) (bool, error) {
	return f(ctx, title, message)
}

// Answer is a Confirmer whose answer is already known, e.g. the user
// responded to a prompt the view drew itself.
type Answer bool

func (a Answer) Confirm(context.Context, string, string) (bool, error) { return bool(a), nil }

// TaskStore holds all tasks in memory, protected by a mutex. Tasks are stored
// in a map for O(1) lookup and a separate slice to preserve order for stable
// iteration in List/Summary.
type TaskStore struct {
	mu       sync.Mutex
	tasks    map[string]*Task
	order    []string
	category Category

	w *writer
}

// StoreOption configures a TaskStore.
type StoreOption func(*storeOptions)

type storeOptions struct {
	onWriteError func(key string, err error)
}

// WithWriteErrorHandler replaces the default log line emitted when a
// background write fails.
func WithWriteErrorHandler(fn func(key string, err error)) StoreOption {
	return func(o *storeOptions) { o.onWriteError = fn }
}

// NewTaskStore creates an empty store persisting into kv. Call Load to read
// existing state and Close to drain pending writes.
func NewTaskStore(kv KV, opts ...StoreOption) *TaskStore {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &TaskStore{
		tasks:    make(map[string]*Task),
		category: Work,
		w:        newWriter(kv, o.onWriteError),
	}
}

// Load reads the collection and the last category from the KV. Absent
// values leave the defaults (empty collection, Work). Malformed values are
// returned as errors; there is no fallback.
func (s *TaskStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.w.kv.Get(ctx, tasksKey)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if ok && raw != "" {
		var stored map[string]storedTask
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return fmt.Errorf("decode %s: %w", tasksKey, err)
		}
		s.tasks = make(map[string]*Task, len(stored))
		s.order = s.order[:0]
		for id, st := range stored {
			s.tasks[id] = taskFromStored(id, st)
			s.order = append(s.order, id)
		}
		sortByCreation(s.order)
	}

	raw, ok, err = s.w.kv.Get(ctx, categoryKey)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if ok && raw != "" {
		var flag string
		if err := json.Unmarshal([]byte(raw), &flag); err != nil {
			return fmt.Errorf("decode %s: %w", categoryKey, err)
		}
		s.category = categoryFromFlag(flag)
	}
	return nil
}

// Category returns the active category.
func (s *TaskStore) Category() Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// SetCategory sets the active category and persists the flag.
func (s *TaskStore) SetCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCategoryLocked(c)
}

func (s *TaskStore) setCategoryLocked(c Category) {
	s.category = c
	data, _ := json.Marshal(c.Flag())
	s.w.enqueue(categoryKey, string(data))
}

// Add creates a task in the active category. Empty text is ignored and
// reported with ok=false. The caller owns clearing its input field.
func (s *TaskStore) Add(text string) (Task, bool) {
	if text == "" {
		return Task{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(text), true
}

// AddTo switches the active category to c and adds text there under one
// lock, so a concurrent SetCategory can't move the task elsewhere. The
// switch happens even when text is empty.
func (s *TaskStore) AddTo(c Category, text string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c != s.category {
		s.setCategoryLocked(c)
	}
	if text == "" {
		return Task{}, false
	}
	return s.addLocked(text), true
}

func (s *TaskStore) addLocked(text string) Task {
	t := &Task{
		ID:       newTaskID(),
		Text:     text,
		Category: s.category,
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	s.persistLocked()
	return *t
}

// Get returns a copy of a single task.
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// List returns copies of the tasks in category c, in order.
func (s *TaskStore) List(c Category) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Task
	for _, id := range s.order {
		t := s.tasks[id]
		if t.Category != c {
			continue
		}
		result = append(result, *t)
	}
	return result
}

// Len returns the number of tasks across both categories.
func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Summary returns open/done counts for category c.
func (s *TaskStore) Summary(c Category) TaskSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := TaskSummary{Category: c.String()}
	for _, t := range s.tasks {
		if t.Category != c {
			continue
		}
		summary.Total++
		if t.Done {
			summary.Done++
		} else {
			summary.Open++
		}
	}
	return summary
}

// SetDone sets the done flag. Returns false if the task doesn't exist.
func (s *TaskStore) SetDone(id string, done bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Done = done
	s.persistLocked()
	return true
}

// ToggleDone flips the done flag.
func (s *TaskStore) ToggleDone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Done = !t.Done
	s.persistLocked()
	return true
}

// SetEditing turns edit mode on or off. A done task can't enter edit mode.
// Enabling edit on one task disables it on every other, so at most one task
// is being edited at a time. Returns false if nothing was applied.
func (s *TaskStore) SetEditing(id string, editing bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || (editing && t.Done) {
		return false
	}
	s.setEditingLocked(t, editing)
	return true
}

// ToggleEditing applies the edit button policy: no-op on a done task,
// disable if already editing, enable otherwise.
func (s *TaskStore) ToggleEditing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.Done {
		return false
	}
	s.setEditingLocked(t, !t.Editing)
	return true
}

func (s *TaskStore) setEditingLocked(t *Task, editing bool) {
	if editing {
		for _, other := range s.tasks {
			other.Editing = false
		}
	}
	t.Editing = editing
	s.persistLocked()
}

// Update replaces the task text and leaves edit mode. Empty text is ignored.
// The caller owns clearing its edit field.
func (s *TaskStore) Update(id, text string) bool {
	if text == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Text = text
	t.Editing = false
	s.persistLocked()
	return true
}

// Remove deletes a task after the user confirms. A cancelled prompt changes
// nothing. Done tasks can't be removed. The lock is not held while the
// prompt is open.
func (s *TaskStore) Remove(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !s.removable(id) {
		return false, nil
	}
	ok, err := confirm.Confirm(ctx, "Delete To Do", "Are you sure?")
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check: the task may have changed while the prompt was open.
	t, exists := s.tasks[id]
	if !exists || t.Done {
		return false, nil
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.persistLocked()
	return true, nil
}

func (s *TaskStore) removable(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return ok && !t.Done
}

// Flush waits until every mutation so far has been written (or failed).
func (s *TaskStore) Flush(ctx context.Context) error {
	return s.w.flush(ctx)
}

// Close drains pending writes and stops the writer.
func (s *TaskStore) Close(ctx context.Context) error {
	return s.w.close(ctx)
}

// persistLocked snapshots the full collection and queues it for writing.
// Must be called with s.mu held so snapshots are queued in mutation order.
func (s *TaskStore) persistLocked() {
	stored := make(map[string]storedTask, len(s.tasks))
	for id, t := range s.tasks {
		stored[id] = t.stored()
	}
	data, err := json.Marshal(stored)
	if err != nil {
		// map[string]storedTask always marshals
		panic(err)
	}
	s.w.enqueue(tasksKey, string(data))
}

// newTaskID returns a UUIDv7, whose embedded timestamp gives the creation
// order on load.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// idCreated returns the creation time in Unix milliseconds carried by an id:
// the timestamp of a UUIDv7, or the value of a numeric millisecond id
// written by older clients.
func idCreated(id string) (int64, bool) {
	if u, err := uuid.Parse(id); err == nil {
		if u.Version() != 7 {
			return 0, false
		}
		sec, nsec := u.Time().UnixTime()
		return sec*1000 + nsec/int64(1e6), true
	}
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

// sortByCreation orders ids by the time they carry. Ids without a time go
// last; ties and untimed ids fall back to lexical order, which for UUIDv7s
// created in the same millisecond is their creation order.
func sortByCreation(ids []string) {
	type key struct {
		ms    int64
		timed bool
	}
	keys := make(map[string]key, len(ids))
	for _, id := range ids {
		ms, ok := idCreated(id)
		keys[id] = key{ms, ok}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := keys[ids[i]], keys[ids[j]]
		if a.timed != b.timed {
			return a.timed
		}
		if a.timed && a.ms != b.ms {
			return a.ms < b.ms
		}
		return ids[i] < ids[j]
	})
}
