// Package model defines the data structures used throughout the Todoscape application.
package model

import (
	"encoding/xml"
	"time"
)

// Todo represents a single item in a user's todo list.
type Todo struct {
	ID        int       `json:"id" xml:"id,attr"`
	Owner     string    `json:"-" xml:"-"`
	Text      string    `json:"text" xml:"text"`
	Completed bool      `json:"completed" xml:"completed,attr"`
	Created   time.Time `json:"created" xml:"created,attr"`
	Updated   time.Time `json:"updated" xml:"updated,attr"`
}

// TodoInfo carries todo fields into store operations.
type TodoInfo struct {
	ID        int
	Owner     string
	Text      string
	Completed bool
}

// TodoFilter defines which TodoInfo fields an operation applies.
type TodoFilter struct {
	ID        bool
	Owner     bool
	Text      bool
	Completed bool
}

// TodoList is the import/export envelope for one user's list.
type TodoList struct {
	XMLName xml.Name `json:"-" xml:"todolist"`
	Owner   string   `json:"owner" xml:"owner,attr"`
	Todos   []*Todo  `json:"todos" xml:"todo"`
}
