package session

import (
	"context"
	"fmt"

	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

// handleUserRegister handles the user register command. Registration logs the
// new user in immediately and persists the session pointer; the result is the
// fresh (empty) todo list view.
func handleUserRegister(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	username, password := cmd.Args[0], cmd.Args[1]
	s.logger.Info(ctx, "Handling user register command", log.Fields{"username": username})

	user, err := s.DataManager.UserManager.UserRegister(username, password)
	if err != nil {
		return nil, err
	}

	s.UserSet(user)
	if err := s.DataManager.CurrentUserSave(user.Username); err != nil {
		s.logger.Error(ctx, "Failed to persist session pointer", log.Fields{"error": err})
	}

	s.logger.Info(ctx, "User registered and logged in", log.Fields{"username": user.Username})
	return []*model.Todo{}, nil
}

// handleUserLogin handles the user login command. On success the session
// pointer is persisted and the user's todo list is returned.
func handleUserLogin(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	username, password := cmd.Args[0], cmd.Args[1]
	s.logger.Info(ctx, "Handling user login command", log.Fields{"username": username})

	user, err := s.DataManager.UserManager.UserAuthenticate(username, password)
	if err != nil {
		return nil, err
	}

	s.UserSet(user)
	if err := s.DataManager.CurrentUserSave(user.Username); err != nil {
		s.logger.Error(ctx, "Failed to persist session pointer", log.Fields{"error": err})
	}

	todos, err := s.DataManager.TodoManager.TodoList(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load todo list: %w", err)
	}

	s.logger.Info(ctx, "User logged in", log.Fields{"username": user.Username})
	return todos, nil
}

// handleUserLogout handles the user logout command. Logging out while
// anonymous is a no-op.
func handleUserLogout(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user logout command", nil)

	s.UserSet(nil)
	if err := s.DataManager.CurrentUserClear(); err != nil {
		return nil, err
	}

	return "Logged out", nil
}

// handleUserWhoami reports the current session user.
func handleUserWhoami(s *Session, cmd model.Command) (interface{}, error) {
	if s.User == nil {
		return "Not logged in", nil
	}
	return s.User.Username, nil
}

// handleUserUpdate handles the user update command (password change).
func handleUserUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user update command", nil)

	currentUser, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	if err := s.DataManager.UserManager.UserUpdatePassword(currentUser, cmd.Args[0]); err != nil {
		return nil, err
	}

	return "Password updated", nil
}

// handleUserDelete handles the user delete command. The username argument
// must name the current user; deletion also logs the session out.
func handleUserDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user delete command", log.Fields{"args": cmd.Args})

	currentUser, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	username := cmd.Args[0]
	if username != currentUser.Username {
		s.logger.Error(ctx, "Can only delete the current user", log.Fields{"requestedUser": username, "currentUser": currentUser.Username})
		return nil, fmt.Errorf("can only delete the current user")
	}

	if err := s.DataManager.UserManager.UserDelete(currentUser); err != nil {
		return nil, err
	}

	// Clear the session and the persisted pointer
	s.UserSet(nil)
	if err := s.DataManager.CurrentUserClear(); err != nil {
		s.logger.Error(ctx, "Failed to clear session pointer", log.Fields{"error": err})
	}

	s.logger.Info(ctx, "User deleted successfully", log.Fields{"username": username})
	return fmt.Sprintf("User '%s' deleted", username), nil
}
