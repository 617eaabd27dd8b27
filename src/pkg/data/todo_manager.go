// Package data provides data management functionality for the Todoscape application.
// This file contains operations related to todo list management.
package data

import (
	"context"
	"fmt"
	"strings"

	"todoscape/local-app/src/pkg/event"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
	"todoscape/local-app/src/pkg/storage"
)

// TodoOperations defines the interface for todo-related operations.
// Every operation takes the owning username explicitly; the manager never
// reads ambient session state.
type TodoOperations interface {
	TodoList(owner string) ([]*model.Todo, error)
	TodoAdd(owner, text string) ([]*model.Todo, error)
	TodoToggle(owner string, id int) ([]*model.Todo, error)
	TodoDelete(owner string, id int) ([]*model.Todo, error)
}

// TodoManager handles all todo-related operations for per-owner lists.
type TodoManager struct {
	todoStore    storage.TodoStore
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewTodoManager creates a new TodoManager instance.
func NewTodoManager(todoStore storage.TodoStore, eventManager *event.EventManager, logger *log.Logger) (*TodoManager, error) {
	ctx := context.Background()

	if todoStore == nil {
		return nil, fmt.Errorf("todoStore not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	tm := &TodoManager{
		todoStore:    todoStore,
		eventManager: eventManager,
		logger:       logger,
	}

	logger.Info(ctx, "TodoManager created successfully", nil)
	return tm, nil
}

// TodoList returns the owner's list in insertion order. An owner with no
// stored todos yields an empty list, never an error.
func (tm *TodoManager) TodoList(owner string) ([]*model.Todo, error) {
	ctx := context.Background()

	todos, err := tm.todoStore.TodoGet(model.TodoInfo{Owner: owner}, model.TodoFilter{Owner: true})
	if err != nil {
		tm.logger.Error(ctx, "Failed to get todos", log.Fields{"error": err, "owner": owner})
		return nil, fmt.Errorf("failed to get todos: %w", err)
	}
	if todos == nil {
		todos = []*model.Todo{}
	}

	tm.logger.Debug(ctx, "Todos retrieved", log.Fields{"owner": owner, "count": len(todos)})
	return todos, nil
}

// TodoAdd appends a new incomplete todo to the owner's list and returns the
// updated list. Text is trimmed first; empty text is a no-op that returns
// the list unchanged.
func (tm *TodoManager) TodoAdd(owner, text string) ([]*model.Todo, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Adding todo", log.Fields{"owner": owner})

	text = strings.TrimSpace(text)
	if text == "" {
		tm.logger.Warn(ctx, "Ignoring empty todo text", log.Fields{"owner": owner})
		return tm.TodoList(owner)
	}

	id, err := tm.todoStore.TodoAdd(model.TodoInfo{Owner: owner, Text: text, Completed: false})
	if err != nil {
		tm.logger.Error(ctx, "Failed to add todo", log.Fields{"error": err, "owner": owner})
		return nil, fmt.Errorf("failed to add todo: %w", err)
	}

	tm.eventManager.Publish(event.Event{
		Type: event.TodoAdded,
		Data: model.TodoInfo{ID: id, Owner: owner, Text: text},
	})

	tm.logger.Info(ctx, "Todo added successfully", log.Fields{"todoID": id, "owner": owner})
	return tm.TodoList(owner)
}

// TodoToggle flips the completed flag of the todo with the given id in the
// owner's list. A missing id is a no-op; the list is returned either way.
func (tm *TodoManager) TodoToggle(owner string, id int) ([]*model.Todo, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Toggling todo", log.Fields{"todoID": id, "owner": owner})

	todos, err := tm.todoStore.TodoGet(model.TodoInfo{ID: id, Owner: owner}, model.TodoFilter{ID: true, Owner: true})
	if err != nil {
		tm.logger.Error(ctx, "Failed to get todo", log.Fields{"error": err, "todoID": id})
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if len(todos) == 0 {
		tm.logger.Warn(ctx, "Todo not found for toggle", log.Fields{"todoID": id, "owner": owner})
		return tm.TodoList(owner)
	}

	target := todos[0]
	err = tm.todoStore.TodoUpdate(target, model.TodoInfo{Completed: !target.Completed}, model.TodoFilter{Completed: true})
	if err != nil {
		tm.logger.Error(ctx, "Failed to update todo", log.Fields{"error": err, "todoID": id})
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	tm.eventManager.Publish(event.Event{
		Type: event.TodoToggled,
		Data: model.TodoInfo{ID: id, Owner: owner, Completed: !target.Completed},
	})

	tm.logger.Info(ctx, "Todo toggled successfully", log.Fields{"todoID": id, "owner": owner})
	return tm.TodoList(owner)
}

// TodoDelete removes the todo with the given id from the owner's list. A
// missing id is a no-op; the resulting list is returned either way.
func (tm *TodoManager) TodoDelete(owner string, id int) ([]*model.Todo, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Deleting todo", log.Fields{"todoID": id, "owner": owner})

	todos, err := tm.todoStore.TodoGet(model.TodoInfo{ID: id, Owner: owner}, model.TodoFilter{ID: true, Owner: true})
	if err != nil {
		tm.logger.Error(ctx, "Failed to get todo", log.Fields{"error": err, "todoID": id})
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if len(todos) == 0 {
		tm.logger.Warn(ctx, "Todo not found for delete", log.Fields{"todoID": id, "owner": owner})
		return tm.TodoList(owner)
	}

	if err := tm.todoStore.TodoDelete(todos[0]); err != nil {
		tm.logger.Error(ctx, "Failed to delete todo", log.Fields{"error": err, "todoID": id})
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	tm.eventManager.Publish(event.Event{
		Type: event.TodoDeleted,
		Data: model.TodoInfo{ID: id, Owner: owner},
	})

	tm.logger.Info(ctx, "Todo deleted successfully", log.Fields{"todoID": id, "owner": owner})
	return tm.TodoList(owner)
}

// handleUserDeleted removes every todo owned by a deleted user.
func (tm *TodoManager) handleUserDeleted(e event.Event) {
	ctx := context.Background()

	user, ok := e.Data.(*model.User)
	if !ok {
		tm.logger.Error(ctx, "Unexpected payload on UserDeleted event", log.Fields{"data": e.Data})
		return
	}

	if err := tm.todoStore.TodoDeleteByOwner(user.Username); err != nil {
		tm.logger.Error(ctx, "Failed to delete todos of removed user", log.Fields{"error": err, "owner": user.Username})
		return
	}

	tm.logger.Info(ctx, "Todos of removed user deleted", log.Fields{"owner": user.Username})
}
