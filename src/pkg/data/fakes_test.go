package data

import (
	"fmt"
	"testing"
	"time"

	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

// newTestLogger returns a logger writing into a per-test temp directory.
func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() {
		if err := logger.Close(); err != nil {
			t.Errorf("logger.Close: %v", err)
		}
	})
	return logger
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	nextID int
	users  []*model.User
}

func (s *fakeUserStore) UserAdd(newUser model.UserInfo) (int, error) {
	for _, u := range s.users {
		if u.Username == newUser.Username {
			return 0, fmt.Errorf("username '%s' already taken", newUser.Username)
		}
	}
	s.nextID++
	now := time.Now()
	s.users = append(s.users, &model.User{
		ID:           s.nextID,
		Username:     newUser.Username,
		PasswordHash: newUser.PasswordHash,
		Created:      now,
		Updated:      now,
	})
	return s.nextID, nil
}

func (s *fakeUserStore) UserGet(userInfo model.UserInfo, userFilter model.UserFilter) ([]*model.User, error) {
	var out []*model.User
	for _, u := range s.users {
		if userFilter.ID && u.ID != userInfo.ID {
			continue
		}
		if userFilter.Username && u.Username != userInfo.Username {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) UserUpdate(user *model.User, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error {
	for _, u := range s.users {
		if u.ID == user.ID {
			if userFilter.Username {
				u.Username = userUpdateInfo.Username
			}
			if userFilter.PasswordHash {
				u.PasswordHash = userUpdateInfo.PasswordHash
			}
			u.Updated = time.Now()
			return nil
		}
	}
	return fmt.Errorf("user %d not found", user.ID)
}

func (s *fakeUserStore) UserDelete(user *model.User) error {
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeTodoStore is an in-memory TodoStore keeping insertion order.
type fakeTodoStore struct {
	nextID int
	todos  []*model.Todo
}

func (s *fakeTodoStore) TodoAdd(newTodo model.TodoInfo) (int, error) {
	s.nextID++
	now := time.Now()
	s.todos = append(s.todos, &model.Todo{
		ID:        s.nextID,
		Owner:     newTodo.Owner,
		Text:      newTodo.Text,
		Completed: newTodo.Completed,
		Created:   now,
		Updated:   now,
	})
	return s.nextID, nil
}

func (s *fakeTodoStore) TodoGet(todoInfo model.TodoInfo, todoFilter model.TodoFilter) ([]*model.Todo, error) {
	var out []*model.Todo
	for _, td := range s.todos {
		if todoFilter.ID && td.ID != todoInfo.ID {
			continue
		}
		if todoFilter.Owner && td.Owner != todoInfo.Owner {
			continue
		}
		if todoFilter.Completed && td.Completed != todoInfo.Completed {
			continue
		}
		out = append(out, td)
	}
	return out, nil
}

func (s *fakeTodoStore) TodoUpdate(todo *model.Todo, todoUpdateInfo model.TodoInfo, todoFilter model.TodoFilter) error {
	for _, td := range s.todos {
		if td.ID == todo.ID {
			if todoFilter.Text {
				td.Text = todoUpdateInfo.Text
			}
			if todoFilter.Completed {
				td.Completed = todoUpdateInfo.Completed
			}
			td.Updated = time.Now()
			return nil
		}
	}
	return fmt.Errorf("todo %d not found", todo.ID)
}

func (s *fakeTodoStore) TodoDelete(todo *model.Todo) error {
	for i, td := range s.todos {
		if td.ID == todo.ID {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeTodoStore) TodoDeleteByOwner(owner string) error {
	kept := s.todos[:0]
	for _, td := range s.todos {
		if td.Owner != owner {
			kept = append(kept, td)
		}
	}
	s.todos = kept
	return nil
}

// fakeStateStore is an in-memory StateStore.
type fakeStateStore struct {
	values map[string]string
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{values: make(map[string]string)}
}

func (s *fakeStateStore) StateSet(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *fakeStateStore) StateGet(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeStateStore) StateDelete(key string) error {
	delete(s.values, key)
	return nil
}

func sleepShort() {
	time.Sleep(10 * time.Millisecond)
}

// newTestDataManager wires a DataManager on top of the in-memory fakes.
func newTestDataManager(t *testing.T) *DataManager {
	t.Helper()
	cfg := &model.Config{DatabaseDir: t.TempDir()}
	m, err := NewDataManager(&fakeUserStore{}, &fakeTodoStore{}, newFakeStateStore(), cfg, newTestLogger(t))
	if err != nil {
		t.Fatalf("NewDataManager: %v", err)
	}
	return m
}
