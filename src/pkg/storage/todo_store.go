package storage

import (
	"fmt"
	"strings"
	"time"

	"todoscape/local-app/src/pkg/model"
)

// TodoStore defines the interface for todo-related storage operations.
// Rows are always returned in insertion order (ascending id).
type TodoStore interface {
	TodoAdd(newTodo model.TodoInfo) (int, error)
	TodoGet(todoInfo model.TodoInfo, todoFilter model.TodoFilter) ([]*model.Todo, error)
	TodoUpdate(todo *model.Todo, todoUpdateInfo model.TodoInfo, todoFilter model.TodoFilter) error
	TodoDelete(todo *model.Todo) error
	TodoDeleteByOwner(owner string) error
}

// TodoStorage implements the TodoStore interface.
type TodoStorage struct {
	storage *Storage
}

// NewTodoStorage creates a new TodoStorage instance.
func NewTodoStorage(storage *Storage) *TodoStorage {
	return &TodoStorage{storage: storage}
}

// TodoAdd appends a new todo to its owner's list and returns the assigned id.
func (s *TodoStorage) TodoAdd(newTodo model.TodoInfo) (int, error) {
	db := s.storage.GetDatabase()
	now := time.Now()

	err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback()

	result, err := db.Exec(
		"INSERT INTO todos (owner, text, completed, created, updated) VALUES (?, ?, ?, ?, ?)",
		newTodo.Owner, newTodo.Text, newTodo.Completed, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	if err := db.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(id), nil
}

// TodoGet retrieves todos based on the provided info and filter.
func (s *TodoStorage) TodoGet(todoInfo model.TodoInfo, todoFilter model.TodoFilter) ([]*model.Todo, error) {
	db := s.storage.GetDatabase()
	query := "SELECT id, owner, text, completed, created, updated FROM todos WHERE 1=1"
	var args []interface{}

	if todoFilter.ID {
		query += " AND id = ?"
		args = append(args, todoInfo.ID)
	}
	if todoFilter.Owner {
		query += " AND owner = ?"
		args = append(args, todoInfo.Owner)
	}
	if todoFilter.Completed {
		query += " AND completed = ?"
		args = append(args, todoInfo.Completed)
	}
	query += " ORDER BY id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var todos []*model.Todo
	for rows.Next() {
		var t model.Todo
		err := rows.Scan(&t.ID, &t.Owner, &t.Text, &t.Completed, &t.Created, &t.Updated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todos = append(todos, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo rows: %w", err)
	}

	return todos, nil
}

// TodoUpdate updates an existing todo in the database.
func (s *TodoStorage) TodoUpdate(todo *model.Todo, todoUpdateInfo model.TodoInfo, todoFilter model.TodoFilter) error {
	db := s.storage.GetDatabase()
	setClauses := []string{"updated = ?"}
	args := []interface{}{time.Now()}

	if todoFilter.Text {
		setClauses = append(setClauses, "text = ?")
		args = append(args, todoUpdateInfo.Text)
	}
	if todoFilter.Completed {
		setClauses = append(setClauses, "completed = ?")
		args = append(args, todoUpdateInfo.Completed)
	}

	query := fmt.Sprintf("UPDATE todos SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	args = append(args, todo.ID)

	_, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	return nil
}

// TodoDelete removes a todo from the database.
func (s *TodoStorage) TodoDelete(todo *model.Todo) error {
	db := s.storage.GetDatabase()
	_, err := db.Exec("DELETE FROM todos WHERE id = ?", todo.ID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// TodoDeleteByOwner removes every todo owned by the given username.
func (s *TodoStorage) TodoDeleteByOwner(owner string) error {
	db := s.storage.GetDatabase()
	_, err := db.Exec("DELETE FROM todos WHERE owner = ?", owner)
	if err != nil {
		return fmt.Errorf("failed to delete todos for owner '%s': %w", owner, err)
	}
	return nil
}
