package ui

import (
	"fmt"

	"dayflow/internal/model"
)

// Item is one visible row: either a task header or one of its subtasks.
// It satisfies the list.DefaultItem interface.
type Item struct {
	Task model.Task
	// SubIndex is the subtask's position within Task.Subtasks, or -1
	// for the task header row. Positions are rebuilt on every reload,
	// so rows never hold stale indices after a delete.
	SubIndex int
	// Prefix holds the tree-drawing characters, e.g. " ├─ "
	Prefix string
}

// IsTask reports whether the row is a task header.
func (i Item) IsTask() bool {
	return i.SubIndex < 0
}

// Subtask returns the subtask this row points at. Only valid when
// IsTask is false.
func (i Item) Subtask() model.Subtask {
	return i.Task.Subtasks[i.SubIndex]
}

func (i Item) Title() string {
	if i.IsTask() {
		checked, total := i.Task.Done()
		if total == 0 {
			return i.Task.Title
		}
		return fmt.Sprintf("%s (%d/%d)", i.Task.Title, checked, total)
	}

	check := "[ ]"
	if i.Subtask().Checked {
		check = "[x]"
	}
	return fmt.Sprintf("%s%s %s", i.Prefix, check, i.Subtask().Text)
}

func (i Item) Description() string {
	return ""
}

func (i Item) FilterValue() string {
	if i.IsTask() {
		return i.Task.Title
	}
	return i.Subtask().Text
}
