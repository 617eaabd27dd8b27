package session

import (
	"context"
	"errors"
	"time"

	"todoscape/local-app/src/pkg/data"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

// ErrNotAuthenticated is returned by operations that require a logged-in user.
var ErrNotAuthenticated = errors.New("not logged in")

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual user session. User is nil while the
// session is anonymous.
type Session struct {
	ID              string
	DataManager     *data.DataManager
	User            *model.User
	LastActivity    time.Time
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		LastActivity: time.Now(),
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(context.Background(), "New Session created", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"user": initUserCommandHandlers(),
		"todo": initTodoCommandHandlers(),
	}
}

// CommandRun validates and executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Debug(ctx, "Running command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})

	// Update last activity
	s.LastActivity = time.Now()

	command := NewCommand(cmd, s.logger)
	if err := command.Validate(); err != nil {
		return nil, err
	}

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	}

	return result, err
}

// UserGet retrieves the current user; ErrNotAuthenticated while anonymous.
func (s *Session) UserGet() (*model.User, error) {
	if s.User == nil {
		s.logger.Warn(context.Background(), "No user logged in", log.Fields{"sessionID": s.ID})
		return nil, ErrNotAuthenticated
	}
	return s.User, nil
}

// UserSet sets or clears the current user.
func (s *Session) UserSet(user *model.User) {
	ctx := context.Background()
	if user != nil {
		s.logger.Info(ctx, "Setting current user", log.Fields{"username": user.Username})
	} else {
		s.logger.Info(ctx, "Clearing current user", nil)
	}
	s.User = user
}

// initUserCommandHandlers initializes user command handlers
func initUserCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"register": handleUserRegister,
		"login":    handleUserLogin,
		"logout":   handleUserLogout,
		"whoami":   handleUserWhoami,
		"update":   handleUserUpdate,
		"delete":   handleUserDelete,
	}
}

// initTodoCommandHandlers initializes todo command handlers
func initTodoCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleTodoAdd,
		"toggle": handleTodoToggle,
		"delete": handleTodoDelete,
		"list":   handleTodoList,
		"export": handleTodoExport,
		"import": handleTodoImport,
	}
}
