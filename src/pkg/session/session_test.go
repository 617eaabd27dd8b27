package session

import (
	"errors"
	"strconv"
	"testing"

	"todoscape/local-app/src/pkg/data"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
	"todoscape/local-app/src/pkg/storage"
)

// testEnv wires a session manager onto real sqlite storage in a temp dir.
type testEnv struct {
	sm  *SessionManager
	dm  *data.DataManager
	cfg *model.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &model.Config{
		DatabaseType: "sqlite",
		DatabaseDir:  t.TempDir(),
		DatabaseFile: "test.db",
		LogFolder:    t.TempDir(),
		CommandLog:   "commands.log",
		ErrorLog:     "errors.log",
		InfoLog:      "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	dm, err := data.NewDataManager(store.UserStore, store.TodoStore, store.StateStore, cfg, logger)
	if err != nil {
		t.Fatalf("NewDataManager: %v", err)
	}

	sm := NewSessionManager(dm, logger)
	t.Cleanup(sm.StopCleanupRoutine)

	return &testEnv{sm: sm, dm: dm, cfg: cfg}
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	sessionID, err := e.sm.SessionAdd()
	if err != nil {
		t.Fatalf("SessionAdd: %v", err)
	}
	return sessionID
}

func (e *testEnv) run(t *testing.T, sessionID, scope, operation string, args ...string) interface{} {
	t.Helper()
	result, err := e.sm.SessionRun(sessionID, model.Command{Scope: scope, Operation: operation, Args: args})
	if err != nil {
		t.Fatalf("%s %s: %v", scope, operation, err)
	}
	return result
}

func (e *testEnv) runErr(t *testing.T, sessionID, scope, operation string, args ...string) error {
	t.Helper()
	_, err := e.sm.SessionRun(sessionID, model.Command{Scope: scope, Operation: operation, Args: args})
	if err == nil {
		t.Fatalf("%s %s: expected error", scope, operation)
	}
	return err
}

func todosOf(t *testing.T, result interface{}) []*model.Todo {
	t.Helper()
	todos, ok := result.([]*model.Todo)
	if !ok {
		t.Fatalf("result is %T, want []*model.Todo", result)
	}
	return todos
}

func TestRegisterReturnsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)

	todos := todosOf(t, env.run(t, sid, "user", "register", "alice", "pw1"))
	if len(todos) != 0 {
		t.Errorf("len = %d, want 0", len(todos))
	}

	if got := env.run(t, sid, "user", "whoami"); got != "alice" {
		t.Errorf("whoami = %v, want alice", got)
	}
}

func TestRegisterPersistsSessionPointer(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)

	env.run(t, sid, "user", "register", "alice", "pw1")

	username, ok, err := env.dm.CurrentUserLoad()
	if err != nil {
		t.Fatalf("CurrentUserLoad: %v", err)
	}
	if !ok || username != "alice" {
		t.Errorf("pointer = (%q, %v), want (%q, true)", username, ok, "alice")
	}
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "pw1")
	env.run(t, sid, "user", "logout")

	err := env.runErr(t, sid, "user", "login", "bob", "pw1")
	if !errors.Is(err, data.ErrUserNotFound) {
		t.Errorf("unknown user err = %v, want ErrUserNotFound", err)
	}

	err = env.runErr(t, sid, "user", "login", "alice", "wrong")
	if !errors.Is(err, data.ErrInvalidPassword) {
		t.Errorf("wrong password err = %v, want ErrInvalidPassword", err)
	}

	// A failed login leaves the session anonymous
	if got := env.run(t, sid, "user", "whoami"); got != "Not logged in" {
		t.Errorf("whoami = %v, want 'Not logged in'", got)
	}
}

func TestTodoCommandsRequireLogin(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)

	for _, op := range []struct {
		operation string
		args      []string
	}{
		{"list", nil},
		{"add", []string{"buy milk"}},
		{"toggle", []string{"1"}},
		{"delete", []string{"1"}},
	} {
		_, err := env.sm.SessionRun(sid, model.Command{Scope: "todo", Operation: op.operation, Args: op.args})
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("todo %s err = %v, want ErrNotAuthenticated", op.operation, err)
		}
	}
}

func TestTodoLifecycle(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "pw1")

	todos := todosOf(t, env.run(t, sid, "todo", "add", "buy", "milk"))
	if len(todos) != 1 || todos[0].Text != "buy milk" {
		t.Fatalf("after add: %+v", todos)
	}
	id := todos[0].ID

	todos = todosOf(t, env.run(t, sid, "todo", "toggle", strconv.Itoa(id)))
	if !todos[0].Completed {
		t.Error("todo not completed after toggle")
	}

	todos = todosOf(t, env.run(t, sid, "todo", "delete", strconv.Itoa(id)))
	if len(todos) != 0 {
		t.Errorf("after delete: %+v", todos)
	}
}

func TestTodoToggleRejectsNonNumericID(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "pw1")

	env.runErr(t, sid, "todo", "toggle", "abc")
}

func TestListSurvivesLogoutAndLogin(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "pw1")
	env.run(t, sid, "todo", "add", "buy milk")

	env.run(t, sid, "user", "logout")
	if got := env.run(t, sid, "user", "whoami"); got != "Not logged in" {
		t.Errorf("whoami = %v, want 'Not logged in'", got)
	}

	todos := todosOf(t, env.run(t, sid, "user", "login", "alice", "pw1"))
	if len(todos) != 1 || todos[0].Text != "buy milk" {
		t.Errorf("after re-login: %+v", todos)
	}
}

// A new session picks up the persisted pointer from a previous one.
func TestSessionRestore(t *testing.T) {
	env := newTestEnv(t)

	first := env.newSession(t)
	env.run(t, first, "user", "register", "alice", "pw1")
	env.sm.SessionDelete(first)

	second := env.newSession(t)
	if got := env.run(t, second, "user", "whoami"); got != "alice" {
		t.Errorf("restored whoami = %v, want alice", got)
	}
}

// The pointer is restored verbatim; a name without an account still opens a
// logged-in session whose list is empty.
func TestSessionRestoreIsVerbatim(t *testing.T) {
	env := newTestEnv(t)
	if err := env.dm.CurrentUserSave("ghost"); err != nil {
		t.Fatalf("CurrentUserSave: %v", err)
	}

	sid := env.newSession(t)
	if got := env.run(t, sid, "user", "whoami"); got != "ghost" {
		t.Errorf("whoami = %v, want ghost", got)
	}
	todos := todosOf(t, env.run(t, sid, "todo", "list"))
	if len(todos) != 0 {
		t.Errorf("ghost list = %+v, want empty", todos)
	}
}

func TestLogoutClearsPersistedPointer(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "pw1")
	env.run(t, sid, "user", "logout")

	_, ok, err := env.dm.CurrentUserLoad()
	if err != nil {
		t.Fatalf("CurrentUserLoad: %v", err)
	}
	if ok {
		t.Error("pointer still present after logout")
	}

	fresh := env.newSession(t)
	if got := env.run(t, fresh, "user", "whoami"); got != "Not logged in" {
		t.Errorf("fresh whoami = %v, want 'Not logged in'", got)
	}
}

func TestUserUpdateChangesPassword(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "old")
	env.run(t, sid, "user", "update", "new")
	env.run(t, sid, "user", "logout")

	err := env.runErr(t, sid, "user", "login", "alice", "old")
	if !errors.Is(err, data.ErrInvalidPassword) {
		t.Errorf("old password err = %v, want ErrInvalidPassword", err)
	}
	env.run(t, sid, "user", "login", "alice", "new")
}

func TestUserDeleteRequiresMatchingUsername(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)
	env.run(t, sid, "user", "register", "alice", "pw1")

	env.runErr(t, sid, "user", "delete", "bob")
	if got := env.run(t, sid, "user", "whoami"); got != "alice" {
		t.Errorf("whoami = %v, want alice after failed delete", got)
	}

	env.run(t, sid, "user", "delete", "alice")
	if got := env.run(t, sid, "user", "whoami"); got != "Not logged in" {
		t.Errorf("whoami = %v, want 'Not logged in' after delete", got)
	}
	err := env.runErr(t, sid, "user", "login", "alice", "pw1")
	if !errors.Is(err, data.ErrUserNotFound) {
		t.Errorf("login after delete err = %v, want ErrUserNotFound", err)
	}
}

func TestCommandValidation(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)

	cases := []struct {
		name string
		cmd  model.Command
	}{
		{"unknown scope", model.Command{Scope: "note", Operation: "add"}},
		{"unknown operation", model.Command{Scope: "todo", Operation: "archive"}},
		{"register without password", model.Command{Scope: "user", Operation: "register", Args: []string{"alice"}}},
		{"toggle without id", model.Command{Scope: "todo", Operation: "toggle"}},
		{"logout with args", model.Command{Scope: "user", Operation: "logout", Args: []string{"now"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.sm.SessionRun(sid, tc.cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSessionRunUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.sm.SessionRun("missing", model.Command{Scope: "user", Operation: "whoami"}); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

