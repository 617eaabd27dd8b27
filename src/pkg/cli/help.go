package cli

import (
	"fmt"
)

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		fmt.Println("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	fmt.Println("Command syntax: <scope> <operation> [arguments]")
	fmt.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Printf("  %-10s %s\n", cmd.Operation, cmd.ShortDesc)
	}
	fmt.Println("\nType 'exit' or 'quit' to leave.")
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				fmt.Printf("Commands for %s:\n\n", scope)
				found = true
			}
			fmt.Printf("%-10s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		fmt.Printf("Unknown scope '%s'. Scopes are 'user' and 'todo'.\n", scope)
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Printf("Command: %s %s\n", scope, operation)
			fmt.Printf("Description: %s\n", cmd.LongDesc)
			fmt.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Println("Examples:")
				for _, ex := range cmd.Examples {
					fmt.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Printf("No help found for %s %s\n", scope, operation)
}

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "user",
		Operation: "register",
		ShortDesc: "Register a new user",
		LongDesc:  "Creates a new user account and logs it in. The password is prompted for when omitted.",
		Syntax:    "user register <username> [password]",
		Arguments: []string{"username: The name of the new user", "password: (Optional) The password for the new user"},
		Examples:  []string{"user register alice", "user register alice secret_password"},
	},
	{
		Scope:     "user",
		Operation: "login",
		ShortDesc: "Log in as an existing user",
		LongDesc:  "Authenticates a user and loads their todo list. The password is prompted for when omitted.",
		Syntax:    "user login <username> [password]",
		Arguments: []string{"username: The name of the user", "password: (Optional) The user's password"},
		Examples:  []string{"user login alice"},
	},
	{
		Scope:     "user",
		Operation: "logout",
		ShortDesc: "Log out the current user",
		LongDesc:  "Ends the current login and clears the persisted session, so the next start opens logged out.",
		Syntax:    "user logout",
		Examples:  []string{"user logout"},
	},
	{
		Scope:     "user",
		Operation: "whoami",
		ShortDesc: "Show the logged-in user",
		LongDesc:  "Prints the username of the currently logged-in user.",
		Syntax:    "user whoami",
		Examples:  []string{"user whoami"},
	},
	{
		Scope:     "user",
		Operation: "update",
		ShortDesc: "Change the current user's password",
		LongDesc:  "Updates the password of the logged-in user. The new password is prompted for when omitted.",
		Syntax:    "user update [new_password]",
		Arguments: []string{"new_password: (Optional) The new password"},
		Examples:  []string{"user update", "user update new_password"},
	},
	{
		Scope:     "user",
		Operation: "delete",
		ShortDesc: "Delete the current user",
		LongDesc:  "Deletes the logged-in user account and all of its todos. The username must be repeated to confirm.",
		Syntax:    "user delete <username>",
		Arguments: []string{"username: The name of the user to delete; must match the logged-in user"},
		Examples:  []string{"user delete alice"},
	},
	{
		Scope:     "todo",
		Operation: "add",
		ShortDesc: "Add a todo",
		LongDesc:  "Adds a todo with the given text to the current user's list. Blank text is ignored.",
		Syntax:    "todo add <text>",
		Arguments: []string{"text: The todo text; multiple words are joined"},
		Examples:  []string{"todo add buy milk", "todo add \"call the bank\""},
	},
	{
		Scope:     "todo",
		Operation: "toggle",
		ShortDesc: "Toggle a todo's completion",
		LongDesc:  "Flips the completed state of the todo with the given id. An unknown id leaves the list unchanged.",
		Syntax:    "todo toggle <id>",
		Arguments: []string{"id: The numeric id shown by 'todo list'"},
		Examples:  []string{"todo toggle 3"},
	},
	{
		Scope:     "todo",
		Operation: "delete",
		ShortDesc: "Delete a todo",
		LongDesc:  "Removes the todo with the given id from the current user's list. An unknown id leaves the list unchanged.",
		Syntax:    "todo delete <id>",
		Arguments: []string{"id: The numeric id shown by 'todo list'"},
		Examples:  []string{"todo delete 3"},
	},
	{
		Scope:     "todo",
		Operation: "list",
		ShortDesc: "List the current user's todos",
		LongDesc:  "Prints all todos of the logged-in user in the order they were added.",
		Syntax:    "todo list",
		Examples:  []string{"todo list"},
	},
	{
		Scope:     "todo",
		Operation: "export",
		ShortDesc: "Export todos to a file",
		LongDesc:  "Writes the current user's todo list to a file in JSON or XML format.",
		Syntax:    "todo export <filename> [format]",
		Arguments: []string{"filename: Path of the file to write", "format: (Optional) 'json' or 'xml', default 'json'"},
		Examples:  []string{"todo export todos.json", "todo export todos.xml xml"},
	},
	{
		Scope:     "todo",
		Operation: "import",
		ShortDesc: "Import todos from a file",
		LongDesc:  "Appends todos from a JSON or XML file to the current user's list. JSON files are validated against a schema; entries with blank text are skipped.",
		Syntax:    "todo import <filename> [format]",
		Arguments: []string{"filename: Path of the file to read", "format: (Optional) 'json' or 'xml', default 'json'"},
		Examples:  []string{"todo import todos.json"},
	},
}
