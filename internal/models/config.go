package models

import (
	"path"

	"github.com/kardianos/osext"
)

// AppConfig is the application's main configuration structure. Environment variables override the values from the
// configuration file
type AppConfig struct {
	// The directory where Fyyur stores all of its data - defaults to the /data subdirectory of the folder, the
	// Fyyur executable resides in
	DataDir string `json:"dataDir" env:"FYYUR_DATA_DIR"`
	// The IP address to listen at - including the port number
	ListenAddress string `json:"listenAddress" env:"FYYUR_LISTEN_ADDRESS"`
	// File name of the SQLite database inside the data directory
	Database string `json:"database" env:"FYYUR_DATABASE"`
	// Minimum level of log messages to write (debug, info, warning, error)
	LogLevel string `json:"logLevel" env:"FYYUR_LOG_LEVEL"`
}

// GetDefaultConfig returns the default configuration values for the application
func GetDefaultConfig() (*AppConfig, error) {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		return nil, err
	}
	return &AppConfig{
		DataDir:       path.Join(execDir, "data"),
		ListenAddress: ":5000",
		Database:      "fyyur.db",
		LogLevel:      "info",
	}, nil
}
