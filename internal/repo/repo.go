package repo

import (
	"fmt"
	"time"

	"dayflow/internal/day"
	"dayflow/internal/model"
	"dayflow/internal/store"
)

// Repository provides day-scoped CRUD over the stored task collection.
// Every mutation is a whole-collection read-modify-write round trip
// against the store; mutations targeting a task id or subtask index that
// no longer exists are silent no-ops, because the UI and storage can
// drift between a handler suspending and resuming.
type Repository struct {
	store *store.Store
}

// New creates a Repository backed by the given store.
func New(s *store.Store) *Repository {
	return &Repository{store: s}
}

// Create inserts a new task for the given day at the head of the
// collection and returns it. Subtasks start unchecked. Titles are not
// deduplicated.
func (r *Repository) Create(d day.Day, title string, subtasks []string) (model.Task, error) {
	tasks, err := r.store.Tasks()
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}

	id := time.Now().UnixMilli()
	for idTaken(tasks, id) {
		id++
	}

	task := model.Task{
		ID:       id,
		Title:    title,
		Subtasks: make([]model.Subtask, 0, len(subtasks)),
		Date:     d.Key(),
	}
	for _, text := range subtasks {
		task.Subtasks = append(task.Subtasks, model.Subtask{Text: text})
	}

	tasks = append([]model.Task{task}, tasks...)
	if err := r.store.SetTasks(tasks); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListForDay returns the tasks whose date key exactly matches d, newest
// first (collection head order).
func (r *Repository) ListForDay(d day.Day) ([]model.Task, error) {
	tasks, err := r.store.Tasks()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	key := d.Key()
	matched := []model.Task{}
	for _, t := range tasks {
		if t.Date == key {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// SetTitle overwrites a task's title. Missing id is a no-op.
func (r *Repository) SetTitle(id int64, title string) error {
	return r.update(id, func(t *model.Task) {
		t.Title = title
	})
}

// SetSubtaskChecked sets the checked flag of one subtask. An index past
// the end of the list materializes empty slots up to it, matching how
// the stored data behaved when written through sparse array assignment.
// Missing task id or a negative index is a no-op.
func (r *Repository) SetSubtaskChecked(id int64, idx int, checked bool) error {
	if idx < 0 {
		return nil
	}
	return r.update(id, func(t *model.Task) {
		growSubtasks(t, idx)
		t.Subtasks[idx].Checked = checked
	})
}

// SetSubtaskText overwrites one subtask's text, with the same
// materialize rule as SetSubtaskChecked.
func (r *Repository) SetSubtaskText(id int64, idx int, text string) error {
	if idx < 0 {
		return nil
	}
	return r.update(id, func(t *model.Task) {
		growSubtasks(t, idx)
		t.Subtasks[idx].Text = text
	})
}

// DeleteSubtask removes the subtask at idx; every later subtask shifts
// down one position. Callers holding positional references must
// renumber them. Out-of-range indices are no-ops, and deleting the last
// subtask leaves an empty list.
func (r *Repository) DeleteSubtask(id int64, idx int) error {
	return r.update(id, func(t *model.Task) {
		if idx < 0 || idx >= len(t.Subtasks) {
			return
		}
		t.Subtasks = append(t.Subtasks[:idx], t.Subtasks[idx+1:]...)
	})
}

// Delete removes a task outright. There is no soft delete or undo.
func (r *Repository) Delete(id int64) error {
	tasks, err := r.store.Tasks()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return nil
	}
	if err := r.store.SetTasks(kept); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *Repository) update(id int64, mutate func(*model.Task)) error {
	tasks, err := r.store.Tasks()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	for i := range tasks {
		if tasks[i].ID == id {
			mutate(&tasks[i])
			if err := r.store.SetTasks(tasks); err != nil {
				return fmt.Errorf("update task: %w", err)
			}
			return nil
		}
	}
	return nil
}

// idTaken guards against two creates landing in the same millisecond.
func idTaken(tasks []model.Task, id int64) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func growSubtasks(t *model.Task, idx int) {
	for len(t.Subtasks) <= idx {
		t.Subtasks = append(t.Subtasks, model.Subtask{})
	}
}
