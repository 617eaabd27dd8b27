// Package data provides data management functionality for the Todoscape application.
// This file contains operations related to account management.
package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todoscape/local-app/src/pkg/event"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
	"todoscape/local-app/src/pkg/storage"
)

// Sentinel errors surfaced by account operations. Login checks existence
// before the password, so exactly one of these is returned at a time.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserExists      = errors.New("user already exists")
	ErrEmptyCredential = errors.New("username and password must not be empty")
)

// UserOperations defines the interface for account-related operations
type UserOperations interface {
	UserRegister(username, password string) (*model.User, error)
	UserAuthenticate(username, password string) (*model.User, error)
	UserGet(userInfo model.UserInfo, userFilter model.UserFilter) ([]*model.User, error)
	UserUpdatePassword(user *model.User, newPassword string) error
	UserDelete(user *model.User) error
}

// UserManager handles all account-related operations.
type UserManager struct {
	userStore    storage.UserStore
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewUserManager creates a new UserManager instance.
func NewUserManager(userStore storage.UserStore, eventManager *event.EventManager, logger *log.Logger) (*UserManager, error) {
	ctx := context.Background()

	if userStore == nil {
		return nil, fmt.Errorf("userStore not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	um := &UserManager{
		userStore:    userStore,
		eventManager: eventManager,
		logger:       logger,
	}

	logger.Info(ctx, "UserManager created successfully", nil)
	return um, nil
}

// UserRegister creates a new account with the given username and password.
// Usernames are unique and passwords are stored as bcrypt hashes.
func (um *UserManager) UserRegister(username, password string) (*model.User, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Registering new user", log.Fields{"username": username})

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		um.logger.Warn(ctx, "Rejected registration with empty credential", nil)
		return nil, ErrEmptyCredential
	}

	// Check if the user already exists
	existingUsers, err := um.UserGet(model.UserInfo{Username: username}, model.UserFilter{Username: true})
	if err != nil {
		um.logger.Error(ctx, "Error checking user existence", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}
	if len(existingUsers) > 0 {
		um.logger.Warn(ctx, "User already exists", log.Fields{"username": username})
		return nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	// Hash the password before it is persisted
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		um.logger.Error(ctx, "Failed to hash password", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Add the new user using the storage layer
	userID, err := um.userStore.UserAdd(model.UserInfo{Username: username, PasswordHash: passwordHash})
	if err != nil {
		um.logger.Error(ctx, "Failed to create user", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Read the stored record back so timestamps and id are populated
	users, err := um.UserGet(model.UserInfo{ID: userID}, model.UserFilter{ID: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load created user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("created user %d not found", userID)
	}

	um.eventManager.Publish(event.Event{
		Type: event.UserRegistered,
		Data: users[0],
	})

	um.logger.Info(ctx, "User registered successfully", log.Fields{"userID": userID, "username": username})
	return users[0], nil
}

// UserAuthenticate verifies a username/password pair. A missing account
// yields ErrUserNotFound; a present account with the wrong password yields
// ErrInvalidPassword.
func (um *UserManager) UserAuthenticate(username, password string) (*model.User, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Authenticating user", log.Fields{"username": username})

	users, err := um.UserGet(model.UserInfo{Username: username}, model.UserFilter{Username: true})
	if err != nil {
		um.logger.Error(ctx, "Error retrieving user", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if len(users) == 0 {
		um.logger.Warn(ctx, "User doesn't exist", log.Fields{"username": username})
		return nil, ErrUserNotFound
	}

	storedUser := users[0]
	if err := bcrypt.CompareHashAndPassword(storedUser.PasswordHash, []byte(password)); err != nil {
		um.logger.Warn(ctx, "Authentication failed", log.Fields{"username": username})
		return nil, ErrInvalidPassword
	}

	um.eventManager.Publish(event.Event{
		Type: event.UserLoggedIn,
		Data: storedUser,
	})

	um.logger.Info(ctx, "User authenticated successfully", log.Fields{"username": username})
	return storedUser, nil
}

// UserGet retrieves users based on the provided info and filter.
func (um *UserManager) UserGet(userInfo model.UserInfo, userFilter model.UserFilter) ([]*model.User, error) {
	ctx := context.Background()

	users, err := um.userStore.UserGet(userInfo, userFilter)
	if err != nil {
		um.logger.Error(ctx, "Failed to get users", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	um.logger.Debug(ctx, "Users retrieved", log.Fields{"count": len(users)})
	return users, nil
}

// UserUpdatePassword replaces the user's password hash with one derived
// from the new password.
func (um *UserManager) UserUpdatePassword(user *model.User, newPassword string) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Updating user password", log.Fields{"userID": user.ID, "username": user.Username})

	if newPassword == "" {
		return ErrEmptyCredential
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		um.logger.Error(ctx, "Failed to hash password", log.Fields{"error": err})
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = um.userStore.UserUpdate(user, model.UserInfo{PasswordHash: passwordHash}, model.UserFilter{PasswordHash: true})
	if err != nil {
		um.logger.Error(ctx, "Failed to update user", log.Fields{"error": err, "userID": user.ID})
		return fmt.Errorf("failed to update user: %w", err)
	}

	user.PasswordHash = passwordHash
	um.logger.Info(ctx, "User password updated successfully", log.Fields{"userID": user.ID})
	return nil
}

// UserDelete removes a user; associated todos are removed by the
// UserDeleted event subscription.
func (um *UserManager) UserDelete(user *model.User) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Deleting user", log.Fields{"userID": user.ID, "username": user.Username})

	err := um.userStore.UserDelete(user)
	if err != nil {
		um.logger.Error(ctx, "Failed to delete user", log.Fields{"error": err, "userID": user.ID})
		return fmt.Errorf("failed to delete user: %w", err)
	}

	// Publish UserDeleted event
	um.eventManager.Publish(event.Event{
		Type: event.UserDeleted,
		Data: user,
	})

	um.logger.Info(ctx, "User deleted successfully", log.Fields{"userID": user.ID, "username": user.Username})
	return nil
}
