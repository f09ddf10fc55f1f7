package task

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a task list to the JSON array stored under the "tasks" key.
// A nil list encodes as [] so a reload never sees null.
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("marshaling tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses the stored JSON array. Empty input yields an empty list.
// Tasks written without a type are treated as one-off, and blank categories
// are normalized, matching what Add would have produced.
func Decode(raw string) ([]Task, error) {
	if raw == "" || raw == "null" {
		return []Task{}, nil
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("parsing tasks: %w", err)
	}
	for i := range tasks {
		if tasks[i].Kind == "" {
			tasks[i].Kind = OneOff
		}
		tasks[i].Category = NormalizeCategory(tasks[i].Category)
	}
	return tasks, nil
}
