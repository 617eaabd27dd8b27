package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"todoscape/local-app/src/pkg/data"
	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
)

const (
	sessionIDLength        = 32
	defaultCleanupInterval = 5 * time.Minute
)

// SessionManager manages multiple concurrent sessions
type SessionManager struct {
	sessions      map[string]*Session
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	done          chan bool
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session, its result and error
type commandExecution struct {
	session *Session
	command model.Command
	result  chan interface{}
	err     chan error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan bool),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session, restores the persisted session pointer
// into it when one exists, and returns the session ID.
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Adding new session", nil)

	sessionID, err := generateSessionID()
	if err != nil {
		sm.logger.Error(ctx, "Failed to generate session ID", log.Fields{"error": err})
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := NewSession(sessionID, sm.dataManager, sm.logger)
	sm.sessions[sessionID] = session
	sm.restoreSession(session)

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// restoreSession reads the persisted session pointer and, when present,
// marks the session authenticated for that username verbatim. The pointer is
// deliberately not validated against the account collection; a stale pointer
// behaves as a logged-in user whose list loads as empty.
func (sm *SessionManager) restoreSession(session *Session) {
	ctx := context.Background()

	username, ok, err := sm.dataManager.CurrentUserLoad()
	if err != nil {
		sm.logger.Error(ctx, "Failed to restore session", log.Fields{"error": err})
		return
	}
	if !ok || username == "" {
		return
	}

	session.UserSet(&model.User{Username: username})
	sm.logger.Info(ctx, "Session restored", log.Fields{"sessionID": session.ID, "username": username})
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	session, exists := sm.sessions[sessionID]
	if !exists {
		sm.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": sessionID})
	}
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()

	if _, exists := sm.sessions[sessionID]; !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}

	delete(sm.sessions, sessionID)
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session. Commands from all
// sessions are serialized through one executor goroutine, so every operation
// runs to completion before the next starts.
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		sm.logger.Error(ctx, "Session not found", log.Fields{"sessionID": sessionID})
		return nil, errors.New("session not found")
	}

	// Log command in command log
	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	result := make(chan interface{})
	err := make(chan error)

	sm.commandQueue <- commandExecution{
		session: session,
		command: cmd,
		result:  result,
		err:     err,
	}

	select {
	case res := <-result:
		return res, nil
	case e := <-err:
		return nil, e
	}
}

// commandExecutor processes commands from the queue
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	for cmd := range sm.commandQueue {
		result, err := cmd.session.CommandRun(cmd.command)
		if err != nil {
			cmd.err <- err
		} else {
			cmd.result <- result
		}
	}
}

// startCleanupRoutine starts a goroutine that periodically cleans up inactive
// sessions. Cleanup only runs when a session timeout is configured.
func (sm *SessionManager) startCleanupRoutine() {
	ctx := context.Background()

	if sm.dataManager.Config == nil || sm.dataManager.Config.SessionTimeoutMin <= 0 {
		sm.logger.Info(ctx, "Session timeout disabled, skipping cleanup routine", nil)
		return
	}

	sm.logger.Info(ctx, "Starting cleanup routine", nil)
	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions()
			case <-sm.done:
				sm.logger.Info(ctx, "Stopping cleanup routine", nil)
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// StopCleanupRoutine stops the cleanup routine
func (sm *SessionManager) StopCleanupRoutine() {
	if sm.cleanupTicker == nil {
		return
	}
	sm.logger.Info(context.Background(), "Stopping cleanup routine", nil)
	sm.done <- true
}

// cleanupInactiveSessions removes inactive sessions
func (sm *SessionManager) cleanupInactiveSessions() {
	ctx := context.Background()
	sm.logger.Debug(ctx, "Running cleanup for inactive sessions", nil)

	timeout := time.Duration(sm.dataManager.Config.SessionTimeoutMin) * time.Minute
	now := time.Now()
	for id, session := range sm.sessions {
		if now.Sub(session.LastActivity) > timeout {
			sm.logger.Info(ctx, "Removing inactive session", log.Fields{"sessionID": id})
			sm.SessionDelete(id)
		}
	}
}

// generateSessionID creates a cryptographically secure random session ID
func generateSessionID() (string, error) {
	b := make([]byte, sessionIDLength)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
