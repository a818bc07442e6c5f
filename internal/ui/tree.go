package ui

import "dayflow/internal/model"

// BuildRows flattens a day's tasks into display rows: each task header
// followed by its subtasks with tree-drawing prefixes (├─, └─).
func BuildRows(tasks []model.Task) []Item {
	var items []Item
	for _, t := range tasks {
		items = append(items, Item{Task: t, SubIndex: -1})
		for idx := range t.Subtasks {
			prefix := " ├─ "
			if idx == len(t.Subtasks)-1 {
				prefix = " └─ "
			}
			items = append(items, Item{Task: t, SubIndex: idx, Prefix: prefix})
		}
	}
	return items
}
