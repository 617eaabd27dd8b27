package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

// Every todo handler resolves the session user first and passes the username
// into the todo manager explicitly; the manager never reads session state.

// handleTodoAdd handles the todo add command. Arguments are joined into one
// text; the manager ignores text that is empty after trimming.
func handleTodoAdd(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	text := strings.Join(cmd.Args, " ")
	s.logger.Info(context.Background(), "Handling todo add command", log.Fields{"username": user.Username})

	return s.DataManager.TodoManager.TodoAdd(user.Username, text)
}

// handleTodoToggle handles the todo toggle command.
func handleTodoToggle(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid todo id '%s'", cmd.Args[0])
	}

	s.logger.Info(context.Background(), "Handling todo toggle command", log.Fields{"username": user.Username, "todoID": id})
	return s.DataManager.TodoManager.TodoToggle(user.Username, id)
}

// handleTodoDelete handles the todo delete command.
func handleTodoDelete(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid todo id '%s'", cmd.Args[0])
	}

	s.logger.Info(context.Background(), "Handling todo delete command", log.Fields{"username": user.Username, "todoID": id})
	return s.DataManager.TodoManager.TodoDelete(user.Username, id)
}

// handleTodoList handles the todo list command.
func handleTodoList(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	return s.DataManager.TodoManager.TodoList(user.Username)
}

// handleTodoExport handles the todo export command.
func handleTodoExport(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	filename := cmd.Args[0]
	format := "json"
	if len(cmd.Args) == 2 {
		format = cmd.Args[1]
	}

	s.logger.Info(context.Background(), "Handling todo export command", log.Fields{"username": user.Username, "filename": filename, "format": format})

	if err := s.DataManager.TodoExport(user.Username, filename, format); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Todo list exported to %s", filename), nil
}

// handleTodoImport handles the todo import command.
func handleTodoImport(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	filename := cmd.Args[0]
	format := "json"
	if len(cmd.Args) == 2 {
		format = cmd.Args[1]
	}

	s.logger.Info(context.Background(), "Handling todo import command", log.Fields{"username": user.Username, "filename": filename, "format": format})

	return s.DataManager.TodoImport(user.Username, filename, format)
}
