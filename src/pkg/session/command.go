package session

import (
	"context"
	"errors"
	"fmt"

	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

// Command wraps the model.Command and adds session-specific functionality
type Command struct {
	command model.Command
	logger  *log.Logger
}

// NewCommand creates a new session Command from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *Command) Validate() error {
	if c.command.Scope == "" {
		c.logger.Error(context.Background(), "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks if the scope and operation are valid
func (c *Command) validateScopeAndOperation() error {
	switch c.command.Scope {
	case "user":
		return c.validateUserCommand()
	case "todo":
		return c.validateTodoCommand()
	default:
		c.logger.Error(context.Background(), "Invalid command scope", log.Fields{"scope": c.command.Scope})
		return fmt.Errorf("invalid command scope: %s", c.command.Scope)
	}
}

func (c *Command) validateUserCommand() error {
	ctx := context.Background()

	switch c.command.Operation {
	case "register", "login":
		if len(c.command.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for user command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("user %s command requires 2 arguments: <username> <password>", c.command.Operation)
		}
	case "logout", "whoami":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for user command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("user %s command does not accept any arguments", c.command.Operation)
		}
	case "update":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for user update command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("user update command requires 1 argument: <new_password>")
		}
	case "delete":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for user delete command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("user delete command requires 1 argument: <username>")
		}
	default:
		c.logger.Error(ctx, "Invalid user operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid user operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateTodoCommand() error {
	ctx := context.Background()

	switch c.command.Operation {
	case "add":
		if len(c.command.Args) < 1 {
			c.logger.Error(ctx, "Invalid number of arguments for todo add command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("todo add command requires at least 1 argument: <text>")
		}
	case "toggle", "delete":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for todo command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("todo %s command requires 1 argument: <id>", c.command.Operation)
		}
	case "list":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for todo list command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("todo list command does not accept any arguments")
		}
	case "export", "import":
		if len(c.command.Args) < 1 || len(c.command.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for todo import/export command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("todo %s command requires 1 or 2 arguments: <filename> [json|xml]", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid todo operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid todo operation: %s", c.command.Operation)
	}
	return nil
}
