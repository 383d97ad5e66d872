package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir      string
	DataDir      string
	ConfigDir    string
	LogFile      string
	HistoryFile  string
	ConfigFile   string
	WebjumpsFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".local", "share", "webjump")
		configDir := filepath.Join(homeDir, ".config", "webjump")

		defaultPaths = &Paths{
			HomeDir:      homeDir,
			DataDir:      dataDir,
			ConfigDir:    configDir,
			LogFile:      filepath.Join(dataDir, "webjump.log"),
			HistoryFile:  filepath.Join(dataDir, "history.db"),
			ConfigFile:   filepath.Join(configDir, "config.yaml"),
			WebjumpsFile: filepath.Join(configDir, "webjumps.yaml"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

// ResetPaths forgets the cached paths so that they are recomputed from the
// current home directory.
func ResetPaths() {
	defaultPaths = nil
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func ConfigDir() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func WebjumpsFile() string {
	ensureDefaultPaths()
	return defaultPaths.WebjumpsFile
}

// ExpandHome replaces a leading "~/" with the home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}
