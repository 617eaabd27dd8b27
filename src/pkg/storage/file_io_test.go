package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"todoscape/local-app/src/pkg/model"
)

func sampleTodoList() *model.TodoList {
	now := time.Now()
	return &model.TodoList{
		Owner: "alice",
		Todos: []*model.Todo{
			{ID: 1, Owner: "alice", Text: "buy milk", Completed: true, Created: now, Updated: now},
			{ID: 2, Owner: "alice", Text: "walk the dog", Completed: false, Created: now, Updated: now},
		},
	}
}

func TestFileExportImportJSON(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "todos.json")

	if err := FileExport(sampleTodoList(), filename, "json"); err != nil {
		t.Fatalf("FileExport: %v", err)
	}

	imported, err := FileImport(filename, "json")
	if err != nil {
		t.Fatalf("FileImport: %v", err)
	}
	if imported.Owner != "alice" {
		t.Errorf("owner = %q, want %q", imported.Owner, "alice")
	}
	if len(imported.Todos) != 2 {
		t.Fatalf("len = %d, want 2", len(imported.Todos))
	}
	if imported.Todos[0].Text != "buy milk" || !imported.Todos[0].Completed {
		t.Errorf("todos[0] = %+v", imported.Todos[0])
	}
	if imported.Todos[1].Text != "walk the dog" || imported.Todos[1].Completed {
		t.Errorf("todos[1] = %+v", imported.Todos[1])
	}
}

func TestFileExportImportXML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "todos.xml")

	if err := FileExport(sampleTodoList(), filename, "xml"); err != nil {
		t.Fatalf("FileExport: %v", err)
	}

	imported, err := FileImport(filename, "xml")
	if err != nil {
		t.Fatalf("FileImport: %v", err)
	}
	if len(imported.Todos) != 2 {
		t.Fatalf("len = %d, want 2", len(imported.Todos))
	}
	if imported.Todos[0].Text != "buy milk" {
		t.Errorf("todos[0].Text = %q, want %q", imported.Todos[0].Text, "buy milk")
	}
}

func TestFileExportRejectsUnknownFormat(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "todos.yaml")
	if err := FileExport(sampleTodoList(), filename, "yaml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFileImportValidatesJSONSchema(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid",
			content: `{"owner": "alice", "todos": [{"id": 1, "text": "buy milk", "completed": false}]}`,
			wantErr: false,
		},
		{
			name:    "null todos",
			content: `{"owner": "alice", "todos": null}`,
			wantErr: false,
		},
		{
			name:    "missing owner",
			content: `{"todos": []}`,
			wantErr: true,
		},
		{
			name:    "todo without text",
			content: `{"owner": "alice", "todos": [{"completed": false}]}`,
			wantErr: true,
		},
		{
			name:    "todos not an array",
			content: `{"owner": "alice", "todos": "buy milk"}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			content: `<todolist owner="alice"/>`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "todos.json")
			if err := os.WriteFile(filename, []byte(tc.content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			_, err := FileImport(filename, "json")
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFileImportMissingFile(t *testing.T) {
	if _, err := FileImport(filepath.Join(t.TempDir(), "absent.json"), "json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
