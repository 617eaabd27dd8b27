// Package data provides data management functionality for the Todoscape application.
// It coordinates operations between the user and todo managers.
package data

import (
	"fmt"

	"todoscape/local-app/src/pkg/event"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
	"todoscape/local-app/src/pkg/storage"
)

// currentUserKey is the app_state key holding the persisted session pointer.
const currentUserKey = "current_user"

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	UserManager  *UserManager
	TodoManager  *TodoManager
	EventManager *event.EventManager
	Config       *model.Config
	Logger       *log.Logger

	stateStore storage.StateStore
}

// NewDataManager creates a new DataManager instance
func NewDataManager(userStore storage.UserStore, todoStore storage.TodoStore, stateStore storage.StateStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
		stateStore:   stateStore,
	}

	// Initialize UserManager
	var err error
	m.UserManager, err = NewUserManager(userStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create UserManager: %w", err)
	}

	// Initialize TodoManager
	m.TodoManager, err = NewTodoManager(todoStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TodoManager: %w", err)
	}

	// Subscribe TodoManager to UserDeleted events
	eventManager.Subscribe(event.UserDeleted, m.TodoManager.handleUserDeleted)

	return m, nil
}

// CurrentUserSave persists the session pointer for the next start.
func (m *DataManager) CurrentUserSave(username string) error {
	if err := m.stateStore.StateSet(currentUserKey, username); err != nil {
		return fmt.Errorf("failed to save current user: %w", err)
	}
	return nil
}

// CurrentUserLoad reads the persisted session pointer. The value is returned
// verbatim; no check is made against the account collection.
func (m *DataManager) CurrentUserLoad() (string, bool, error) {
	username, ok, err := m.stateStore.StateGet(currentUserKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to load current user: %w", err)
	}
	return username, ok, nil
}

// CurrentUserClear removes the persisted session pointer; clearing an absent
// pointer is a no-op.
func (m *DataManager) CurrentUserClear() error {
	if err := m.stateStore.StateDelete(currentUserKey); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}

// TodoExport exports a user's todo list to a file in the specified format.
func (m *DataManager) TodoExport(owner, filename, format string) error {
	todos, err := m.TodoManager.TodoList(owner)
	if err != nil {
		return fmt.Errorf("failed to load todos for export: %w", err)
	}

	list := &model.TodoList{Owner: owner, Todos: todos}
	if err := storage.FileExport(list, filename, format); err != nil {
		return fmt.Errorf("failed to export todo list: %w", err)
	}

	return nil
}

// TodoImport imports a todo list from a file and appends its items to the
// user's list. Items with empty text are skipped; completed flags are kept.
func (m *DataManager) TodoImport(owner, filename, format string) ([]*model.Todo, error) {
	importedList, err := storage.FileImport(filename, format)
	if err != nil {
		return nil, fmt.Errorf("failed to import todo list: %w", err)
	}

	for _, td := range importedList.Todos {
		if td == nil || td.Text == "" {
			continue
		}
		_, err := m.TodoManager.todoStore.TodoAdd(model.TodoInfo{
			Owner:     owner,
			Text:      td.Text,
			Completed: td.Completed,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add imported todo: %w", err)
		}
	}

	return m.TodoManager.TodoList(owner)
}
