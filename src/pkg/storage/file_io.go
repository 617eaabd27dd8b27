package storage

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todoscape/local-app/src/pkg/model"
)

// todoListSchema constrains imported JSON files before they touch the database.
const todoListSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["owner", "todos"],
	"properties": {
		"owner": {"type": "string"},
		"todos": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["text", "completed"],
				"properties": {
					"id": {"type": "integer"},
					"text": {"type": "string"},
					"completed": {"type": "boolean"}
				}
			}
		}
	}
}`

var compiledTodoListSchema = jsonschema.MustCompileString("todolist.schema.json", todoListSchema)

// FileExport exports a todo list to a file in the specified format (JSON or XML).
func FileExport(list *model.TodoList, filename string, format string) error {
	// Marshal the list to the specified format
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(list, "", "  ")
	case "xml":
		data, err = xml.MarshalIndent(list, "", "  ")
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal todo list: %w", err)
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write the data to the file
	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport imports a todo list from a file in the specified format (JSON or XML).
// JSON input is validated against the todo list schema before decoding.
func FileImport(filename string, format string) (*model.TodoList, error) {
	// Read the file
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Unmarshal the data into a todo list structure
	var importedList model.TodoList
	switch format {
	case "json":
		var raw interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data: %w", err)
		}
		if err := compiledTodoListSchema.Validate(raw); err != nil {
			return nil, fmt.Errorf("todo list file failed schema validation: %w", err)
		}
		err = json.Unmarshal(data, &importedList)
	case "xml":
		err = xml.Unmarshal(data, &importedList)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &importedList, nil
}
