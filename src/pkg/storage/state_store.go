package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// StateStore defines the interface for the small key-value table holding
// application state such as the persisted session pointer.
type StateStore interface {
	StateSet(key, value string) error
	StateGet(key string) (string, bool, error)
	StateDelete(key string) error
}

// StateStorage implements the StateStore interface.
type StateStorage struct {
	storage *Storage
}

// NewStateStorage creates a new StateStorage instance.
func NewStateStorage(storage *Storage) *StateStorage {
	return &StateStorage{storage: storage}
}

// StateSet writes or overwrites the value stored under key.
func (s *StateStorage) StateSet(key, value string) error {
	db := s.storage.GetDatabase()
	_, err := db.Exec(
		"INSERT INTO app_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set state '%s': %w", key, err)
	}
	return nil
}

// StateGet reads the value stored under key. A missing key is not an error;
// it yields ("", false, nil).
func (s *StateStorage) StateGet(key string) (string, bool, error) {
	db := s.storage.GetDatabase()
	var value string
	err := db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get state '%s': %w", key, err)
	}
	return value, true, nil
}

// StateDelete removes the value stored under key; deleting a missing key is a no-op.
func (s *StateStorage) StateDelete(key string) error {
	db := s.storage.GetDatabase()
	_, err := db.Exec("DELETE FROM app_state WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete state '%s': %w", key, err)
	}
	return nil
}
