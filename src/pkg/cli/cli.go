// Package cli implements the interactive command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"todoscape/local-app/src/pkg/adapter"
	"todoscape/local-app/src/pkg/data"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
	"todoscape/local-app/src/pkg/session"
)

// Inline messages for failed logins, preserved verbatim.
const (
	msgUserNotFound    = "User not found. Please check your username."
	msgInvalidPassword = "Incorrect password. Please try again."
)

// CLI represents the command-line interface
type CLI struct {
	adapter *adapter.CLIAdapter
	rl      *readline.Instance
	logger  *log.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(cliAdapter *adapter.CLIAdapter, logger *log.Logger) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &CLI{
		adapter: cliAdapter,
		rl:      rl,
		logger:  logger,
	}, nil
}

// Run starts the CLI and handles user input
func (c *CLI) Run() error {
	fmt.Println("Welcome to Todoscape!")
	fmt.Println("Type 'help' for a list of commands or 'exit' to quit.")

	if err := c.adapter.AdapterStart(); err != nil {
		return fmt.Errorf("failed to start CLI adapter: %w", err)
	}
	defer func() {
		if err := c.adapter.AdapterStop(); err != nil {
			fmt.Printf("Error stopping CLI adapter: %v\n", err)
		}
	}()

	// A restored session drops straight into the logged-in view.
	if username := c.adapter.CurrentUser(); username != "" {
		fmt.Printf("Welcome back, %s.\n", username)
		c.runCommand(model.Command{Scope: "todo", Operation: "list", Args: []string{}})
	}

	// Main loop
	for {
		c.rl.SetPrompt(c.adapter.PromptGet())
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil {
			// io.EOF on ctrl-d or when Stop closes the instance
			if err == io.EOF {
				break
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			break
		}

		// Check for help command
		if strings.HasPrefix(input, "help") {
			c.printHelp(strings.Fields(input)[1:])
			continue
		}

		cmd, err := c.adapter.ParseCommand(input)
		if err != nil {
			fmt.Printf("Error parsing command: %v\n", err)
			continue
		}

		if err := c.promptPassword(&cmd); err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Printf("Error reading password: %v\n", err)
			continue
		}

		c.runCommand(cmd)
	}

	return nil
}

// promptPassword asks for a masked password when a user command needs one
// that was not typed inline.
func (c *CLI) promptPassword(cmd *model.Command) error {
	if cmd.Scope != "user" {
		return nil
	}

	switch cmd.Operation {
	case "register", "login":
		if len(cmd.Args) != 1 {
			return nil
		}
		password, err := c.rl.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		cmd.Args = append(cmd.Args, string(password))
	case "update":
		if len(cmd.Args) != 0 {
			return nil
		}
		password, err := c.rl.ReadPassword("New password: ")
		if err != nil {
			return err
		}
		cmd.Args = append(cmd.Args, string(password))
	}

	return nil
}

// runCommand executes a command and renders its result or error.
func (c *CLI) runCommand(cmd model.Command) {
	result, err := c.adapter.CommandRun(cmd)
	if err != nil {
		c.printError(err)
		return
	}

	switch v := result.(type) {
	case []*model.Todo:
		c.printTodos(v)
	case string:
		fmt.Println(v)
	}
}

// printError maps store errors onto the inline messages shown to the user.
func (c *CLI) printError(err error) {
	switch {
	case errors.Is(err, data.ErrUserNotFound):
		fmt.Println(msgUserNotFound)
	case errors.Is(err, data.ErrInvalidPassword):
		fmt.Println(msgInvalidPassword)
	case errors.Is(err, session.ErrNotAuthenticated):
		fmt.Println("Please login first.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
	c.logger.Error(context.Background(), "Command failed", log.Fields{"error": err})
}

// printTodos renders a todo list, one item per line.
func (c *CLI) printTodos(todos []*model.Todo) {
	if len(todos) == 0 {
		fmt.Println("No todos yet. Add one with 'todo add <text>'.")
		return
	}
	for _, td := range todos {
		box := "[ ]"
		if td.Completed {
			box = "[x]"
		}
		fmt.Printf("%s %-4d %s\n", box, td.ID, td.Text)
	}
}

// Stop closes the readline instance, which ends the main loop.
func (c *CLI) Stop() {
	if err := c.rl.Close(); err != nil {
		fmt.Printf("Error closing readline: %v\n", err)
	}
}
