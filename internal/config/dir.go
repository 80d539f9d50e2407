// Package config locates the wf configuration directory and persists the
// small JSON settings file kept there.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under the platform config root.
const appName = "wf"

// Dir returns the wf configuration directory.
//
// Resolution:
//   - $WF_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/wf if set (respects XDG on any platform)
//   - %AppData%/wf on Windows
//   - ~/.config/wf on macOS and Linux
func Dir() string {
	if dir := os.Getenv("WF_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the full path of the config file, or "" when no config
// directory can be determined.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}
