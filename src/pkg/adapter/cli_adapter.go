// Package adapter connects user-facing frontends to the session package.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

// CLIAdapter provides command-line interface support bound to one session.
type CLIAdapter struct {
	adapterManager *AdapterManager
	sessionID      string
	logger         *log.Logger
}

// NewCLIAdapter creates a new instance of CLIAdapter using the provided AdapterManager
func NewCLIAdapter(am *AdapterManager, logger *log.Logger) (*CLIAdapter, error) {
	logger.Info(context.Background(), "Creating new CLI adapter", nil)
	return &CLIAdapter{
		adapterManager: am,
		logger:         logger,
	}, nil
}

// AdapterStart binds the adapter to a fresh session. A persisted session
// pointer, if any, is restored into the session by the session manager.
func (a *CLIAdapter) AdapterStart() error {
	sessionID, err := a.adapterManager.InstanceAdd(a)
	if err != nil {
		a.logger.Error(context.Background(), "Failed to start CLI adapter", log.Fields{"error": err})
		return fmt.Errorf("failed to start CLI adapter: %w", err)
	}

	a.sessionID = sessionID
	a.logger.Info(context.Background(), "CLI adapter started", log.Fields{"sessionID": sessionID})
	return nil
}

// AdapterStop unbinds the adapter from its session.
func (a *CLIAdapter) AdapterStop() error {
	if a.sessionID == "" {
		return nil
	}
	a.adapterManager.InstanceRemove(a.sessionID)
	a.sessionID = ""
	a.logger.Info(context.Background(), "CLI adapter stopped", nil)
	return nil
}

// GetType returns the type of the adapter
func (a *CLIAdapter) GetType() string {
	return "cli"
}

// CommandProcess executes a command in the adapter's session.
func (a *CLIAdapter) CommandProcess(cmd model.Command) (interface{}, error) {
	return a.adapterManager.SessionManager().SessionRun(a.sessionID, cmd)
}

// CommandRun routes a parsed command through the adapter manager to this
// adapter's session.
func (a *CLIAdapter) CommandRun(cmd model.Command) (interface{}, error) {
	return a.adapterManager.CommandRun(a.sessionID, cmd)
}

// ParseCommand splits an input line into scope, operation and arguments.
// Double quotes group words into a single argument.
func (a *CLIAdapter) ParseCommand(input string) (model.Command, error) {
	args := splitArgs(input)
	if len(args) == 0 {
		return model.Command{}, fmt.Errorf("empty command")
	}

	cmd := model.Command{
		Scope:     strings.ToLower(args[0]),
		Operation: "",
		Args:      []string{},
	}

	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	return cmd, nil
}

// splitArgs splits a line on spaces while honoring double-quoted groups.
func splitArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

// CurrentUser returns the username of the session's user, or "" while anonymous.
func (a *CLIAdapter) CurrentUser() string {
	sess, exists := a.adapterManager.SessionManager().SessionGet(a.sessionID)
	if !exists || sess.User == nil {
		return ""
	}
	return sess.User.Username
}

// PromptGet builds the prompt from the current session state.
func (a *CLIAdapter) PromptGet() string {
	username := a.CurrentUser()
	if username == "" {
		return "> "
	}
	return fmt.Sprintf("%s > ", username)
}
