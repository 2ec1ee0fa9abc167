package task

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// tasksSchema describes the persisted task list. Payloads that fail it
// are discarded on load rather than half-parsed into the store.
const tasksSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed", "createdAt", "updatedAt"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "dueDate": {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "priority": {"enum": ["low", "medium", "high"]},
      "category": {"type": "string"},
      "completed": {"type": "boolean"},
      "createdAt": {"type": "string"},
      "updatedAt": {"type": "string"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("tasks.schema.json", tasksSchema)

// Marshal serializes the task list for the todoTasks key. An empty list
// serializes as [] so the round-trip stays byte-stable.
func Marshal(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal parses and validates a stored task list.
func Unmarshal(raw string) ([]Task, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := compiledSchema.Validate(payload); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	return tasks, nil
}
