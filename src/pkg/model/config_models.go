// Package model defines the data structures used throughout the Todoscape application.
package model

type Config struct {
	DatabaseType      string `json:"database_type"`
	DatabaseDir       string `json:"database_dir"`
	DatabaseFile      string `json:"database_file"`
	LogFolder         string `json:"log_folder"`
	CommandLog        string `json:"command_log"`
	ErrorLog          string `json:"error_log"`
	InfoLog           string `json:"info_log"`
	SessionTimeoutMin int    `json:"session_timeout_min"`
}
