package importer

import (
	"fmt"

	"dayflow/internal/day"
	"dayflow/internal/model"
	"dayflow/internal/repo"
	"gopkg.in/yaml.v3"
)

// YAMLSubtask is one step of a task in the YAML form. Like the stored
// form, a bare string is accepted as an unchecked subtask.
type YAMLSubtask struct {
	Text    string `yaml:"text"`
	Checked bool   `yaml:"checked,omitempty"`
}

func (s *YAMLSubtask) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Text = value.Value
		s.Checked = false
		return nil
	}

	type yamlSubtask YAMLSubtask
	var v yamlSubtask
	if err := value.Decode(&v); err != nil {
		return err
	}
	*s = YAMLSubtask(v)
	return nil
}

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title    string        `yaml:"title"`
	Subtasks []YAMLSubtask `yaml:"subtasks,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML document and creates its tasks for the given
// day. Returns the number of tasks created.
func Import(r *repo.Repository, d day.Day, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for _, yt := range input.Tasks {
		if yt.Title == "" {
			return count, fmt.Errorf("task title is required")
		}

		texts := make([]string, len(yt.Subtasks))
		for i, st := range yt.Subtasks {
			texts[i] = st.Text
		}

		task, err := r.Create(d, yt.Title, texts)
		if err != nil {
			return count, fmt.Errorf("add task %q: %w", yt.Title, err)
		}
		count++

		for i, st := range yt.Subtasks {
			if !st.Checked {
				continue
			}
			if err := r.SetSubtaskChecked(task.ID, i, true); err != nil {
				return count, fmt.Errorf("check subtask of %q: %w", yt.Title, err)
			}
		}
	}
	return count, nil
}

// Export renders a single task as a YAML document in the same shape
// Import accepts. Used by the clipboard copy key.
func Export(task model.Task) (string, error) {
	out := YAMLInput{Tasks: []YAMLTask{{
		Title:    task.Title,
		Subtasks: make([]YAMLSubtask, len(task.Subtasks)),
	}}}
	for i, st := range task.Subtasks {
		out.Tasks[0].Subtasks[i] = YAMLSubtask{Text: st.Text, Checked: st.Checked}
	}

	raw, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode task %q: %w", task.Title, err)
	}
	return string(raw), nil
}
