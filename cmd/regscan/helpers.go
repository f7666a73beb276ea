package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"regscan/internal/logging"
	"regscan/internal/settings"
)

type globalOptions struct {
	settingsPath string
	user         string
	cwd          string
	verbose      bool
	logLevel     string
	logFormat    string
}

var globalFlags globalOptions

func addGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&globalFlags.settingsPath, "settings", "", "Settings file (default: nearest .regscan.yaml above the working directory)")
	pf.StringVar(&globalFlags.user, "user", "", "User identity segment of the clone path (default: settings, then the login name)")
	pf.StringVar(&globalFlags.cwd, "cwd", "", "Working directory to resolve the results area from (default: current directory)")
	pf.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Print progress and diagnostics")
	pf.StringVar(&globalFlags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&globalFlags.logFormat, "log-format", "text", "Log format: text or json")
}

// environment is what every subcommand resolves before doing work.
type environment struct {
	settings settings.Settings
	cwd      string
}

func setup(cmd *cobra.Command) (*environment, error) {
	level, err := logging.ParseLevel(globalFlags.logLevel)
	if err != nil {
		return nil, err
	}
	if globalFlags.verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, globalFlags.logFormat, cmd.ErrOrStderr())

	cwd := globalFlags.cwd
	if cwd == "" {
		if cwd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
	}
	if cwd, err = filepath.Abs(cwd); err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}

	s := settings.Default()
	path := globalFlags.settingsPath
	if path == "" {
		path, _ = settings.Discover(cwd)
	}
	if path != "" {
		if s, err = settings.LoadFromPath(path); err != nil {
			return nil, err
		}
		logging.New("cli").Debug("settings loaded", "path", path)
	}

	switch {
	case globalFlags.user != "":
		s.User = globalFlags.user
	case s.User == "":
		if u, err := user.Current(); err == nil {
			s.User = loginName(u.Username)
		}
	}
	return &environment{settings: s, cwd: cwd}, nil
}

// loginName drops a DOMAIN\ prefix so the name can match a path segment.
func loginName(username string) string {
	return username[strings.LastIndexByte(username, '\\')+1:]
}
