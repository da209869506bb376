package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/toastbar/internal/core/config"
	"github.com/colonyops/toastbar/internal/core/notify"
)

// SourceCLI tags notifications written by `toastbar push`.
const SourceCLI = "cli"

type Flags struct {
	LogLevel   string
	LogFile    string
	LogStderr  bool
	ConfigPath string
	DataDir    string
}

// App holds the dependencies built in the root Before hook. Commands keep a
// pointer to it so they see the populated values when their action runs.
type App struct {
	Config        *config.Config
	Notifications notify.Store
	DBPath        string
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toastbar", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "toastbar")
}
