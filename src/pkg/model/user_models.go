// Package model defines the data structures used throughout the Todoscape application.
package model

import "time"

// User represents a registered account.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

// UserInfo carries user fields into store operations.
type UserInfo struct {
	ID           int
	Username     string
	PasswordHash []byte
}

// UserFilter defines which UserInfo fields an operation applies.
type UserFilter struct {
	ID           bool
	Username     bool
	PasswordHash bool
}
