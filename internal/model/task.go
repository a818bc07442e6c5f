package model

import (
	"encoding/json"
	"time"
)

// Task represents a single task stored for one calendar day.
type Task struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Subtasks []Subtask `json:"subtasks"`
	Date     string    `json:"date"`
}

// Subtask is one step of a task. Older data stored subtasks as bare
// strings; UnmarshalJSON accepts both shapes so the stored collection
// never needs a migration pass.
type Subtask struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

func (s *Subtask) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		s.Text = text
		s.Checked = false
		return nil
	}

	type subtask Subtask
	var v subtask
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Subtask(v)
	return nil
}

// NormalizeSubtasks guarantees a non-nil slice. The per-element shape
// coercion happens in Subtask.UnmarshalJSON, so normalizing an
// already-normalized slice returns it unchanged.
func NormalizeSubtasks(subtasks []Subtask) []Subtask {
	if subtasks == nil {
		return []Subtask{}
	}
	return subtasks
}

// CreatedAt derives the creation time from the ID, which is assigned
// as a Unix-millisecond timestamp.
func (t Task) CreatedAt() time.Time {
	return time.UnixMilli(t.ID)
}

// Done returns how many subtasks are checked and how many exist.
func (t Task) Done() (checked, total int) {
	for _, st := range t.Subtasks {
		if st.Checked {
			checked++
		}
	}
	return checked, len(t.Subtasks)
}

// Preferences maps a task-type label to free-text context passed to the
// breakdown provider. An absent label reads as the empty string.
type Preferences map[string]string

// PreferenceLabels is the fixed set of task-type labels shown in the
// preferences editor.
var PreferenceLabels = []string{"work", "study", "personal", "errands"}
