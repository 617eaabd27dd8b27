// Package model defines the data structures used throughout the Todoscape application.
package model

// Command represents a parsed user command with its scope, operation and arguments.
type Command struct {
	Scope     string
	Operation string
	Args      []string
}
