// Package adapter connects user-facing frontends to the session package.
package adapter

import (
	"fmt"
	"sync"

	"todoscape/local-app/src/pkg/log"
	"todoscape/local-app/src/pkg/model"
	"todoscape/local-app/src/pkg/session"
)

// AdapterInstance represents an instance of an adapter
type AdapterInstance interface {
	// CommandProcess processes a command and returns the result
	CommandProcess(cmd model.Command) (interface{}, error)

	// AdapterStart starts the adapter instance
	AdapterStart() error

	// AdapterStop terminates the adapter instance
	AdapterStop() error

	// GetType returns the type of the adapter
	GetType() string
}

// AdapterManager manages all adapter instances
type AdapterManager struct {
	instances      sync.Map // map[string]AdapterInstance keyed by session ID
	sessionManager *session.SessionManager
	cmdChan        chan commandRequest
	stopChan       chan struct{}
	logger         *log.Logger
}

// commandRequest represents a request to execute a command within a specific session and carries a result channel
type commandRequest struct {
	SessionID  string
	Command    model.Command
	ResultChan chan interface{}
}

// NewAdapterManager creates a new AdapterManager
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) *AdapterManager {
	am := &AdapterManager{
		sessionManager: sm,
		cmdChan:        make(chan commandRequest),
		stopChan:       make(chan struct{}),
		logger:         logger,
	}
	go am.commandHandler()
	return am
}

// SessionManager exposes the underlying session manager to adapter instances.
func (am *AdapterManager) SessionManager() *session.SessionManager {
	return am.sessionManager
}

// InstanceAdd creates a session for the adapter instance and registers it.
// It returns the session ID the instance is bound to.
func (am *AdapterManager) InstanceAdd(instance AdapterInstance) (string, error) {
	sessionID, err := am.sessionManager.SessionAdd()
	if err != nil {
		return "", fmt.Errorf("failed to add session: %w", err)
	}

	am.instances.Store(sessionID, instance)
	return sessionID, nil
}

// InstanceRemove unregisters the adapter instance and deletes its session.
func (am *AdapterManager) InstanceRemove(sessionID string) {
	am.instances.Delete(sessionID)
	am.sessionManager.SessionDelete(sessionID)
}

// CommandRun runs a command on a specific adapter instance
func (am *AdapterManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	resultChan := make(chan interface{})
	am.cmdChan <- commandRequest{SessionID: sessionID, Command: cmd, ResultChan: resultChan}
	result := <-resultChan
	if err, ok := result.(error); ok {
		return nil, err
	}
	return result, nil
}

// Shutdown stops all adapter instances and the command handler
func (am *AdapterManager) Shutdown() {
	close(am.stopChan)
	am.instances.Range(func(key, value interface{}) bool {
		instance := value.(AdapterInstance)
		instance.AdapterStop()
		return true
	})
}

func (am *AdapterManager) commandHandler() {
	for {
		select {
		case req := <-am.cmdChan:
			instance, ok := am.instances.Load(req.SessionID)
			if !ok {
				req.ResultChan <- fmt.Errorf("no adapter instance found for session: %s", req.SessionID)
				continue
			}
			// Use the CommandProcess method of the AdapterInstance
			result, err := instance.(AdapterInstance).CommandProcess(req.Command)
			if err != nil {
				req.ResultChan <- err
			} else if result == nil {
				req.ResultChan <- struct{}{}
			} else {
				req.ResultChan <- result
			}
		case <-am.stopChan:
			return
		}
	}
}
