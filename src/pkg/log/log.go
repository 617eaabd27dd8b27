// Package log provides functionality for logging commands and errors
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"todoscape/local-app/src/pkg/model"
)

// Fields holds structured attributes attached to a log message
type Fields map[string]interface{}

// logMessage represents a message queued for the writer goroutine
type logMessage struct {
	level   LogLevel
	message string
	fields  Fields
	ctx     context.Context
}

// Logger represents a logging instance that can write to command, error, and info log files
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	commandFile   *os.File
	errorFile     *os.File
	infoFile      *os.File
	logChan       chan logMessage
	done          chan struct{}
	wg            sync.WaitGroup
	level         LogLevel
}

// NewLogger creates a new Logger instance writing to the log folder named in the config.
// Messages above the given level are dropped; command messages are always written.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open command log file
	commandFilePath := filepath.Join(cfg.LogFolder, cfg.CommandLog)
	commandFile, err := os.OpenFile(commandFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	// Open error log file
	errorFilePath := filepath.Join(cfg.LogFolder, cfg.ErrorLog)
	errorFile, err := os.OpenFile(errorFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	// Open info log file
	infoFilePath := filepath.Join(cfg.LogFolder, cfg.InfoLog)
	infoFile, err := os.OpenFile(infoFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		errorFile.Close()
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	logger := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandFile, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
		errorLogger: slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{
			Level: slog.LevelError,
		})),
		infoLogger: slog.New(slog.NewJSONHandler(infoFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
		commandFile: commandFile,
		errorFile:   errorFile,
		infoFile:    infoFile,
		logChan:     make(chan logMessage, 100), // Buffered channel with capacity of 100
		done:        make(chan struct{}),
		level:       level,
	}

	// Start the logging goroutine
	logger.wg.Add(1)
	go logger.processLogs()

	return logger, nil
}

// processLogs handles incoming log messages
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			ctx := msg.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			attrs := fieldsToAttrs(msg.fields)
			switch msg.level {
			case LevelCommand:
				l.commandLogger.LogAttrs(ctx, slog.LevelInfo, msg.message, attrs...)
			case LevelError:
				l.errorLogger.LogAttrs(ctx, slog.LevelError, msg.message, attrs...)
			default:
				l.infoLogger.LogAttrs(ctx, msg.level.toSlogLevel(), msg.message, attrs...)
			}
		case <-l.done:
			return
		}
	}
}

// Command logs an executed command to the command log file
func (l *Logger) Command(ctx context.Context, msg string, fields Fields) {
	l.enqueue(LevelCommand, ctx, msg, fields)
}

// Error logs an error to the error log file
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.enqueue(LevelError, ctx, msg, fields)
}

// Warn logs a warning to the info log file
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.enqueue(LevelWarn, ctx, msg, fields)
}

// Info logs an informational message to the info log file
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.enqueue(LevelInfo, ctx, msg, fields)
}

// Debug logs a debug message to the info log file
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.enqueue(LevelDebug, ctx, msg, fields)
}

// enqueue filters by level and hands the message to the writer goroutine
func (l *Logger) enqueue(level LogLevel, ctx context.Context, msg string, fields Fields) {
	if level != LevelCommand && level > l.level {
		return
	}
	select {
	case l.logChan <- logMessage{level: level, message: msg, fields: fields, ctx: ctx}:
	case <-l.done:
	}
}

// Close stops the logging goroutine and closes all log files
func (l *Logger) Close() error {
	close(l.done)
	l.wg.Wait() // Wait for the logging goroutine to finish

	if err := l.commandFile.Close(); err != nil {
		return fmt.Errorf("failed to close command log file: %w", err)
	}

	if err := l.errorFile.Close(); err != nil {
		return fmt.Errorf("failed to close error log file: %w", err)
	}

	if err := l.infoFile.Close(); err != nil {
		return fmt.Errorf("failed to close info log file: %w", err)
	}

	return nil
}

// fieldsToAttrs converts Fields into slog attributes
func fieldsToAttrs(fields Fields) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
