package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	t.Cleanup(ResetPaths)
	return home
}

func TestPaths(t *testing.T) {
	home := withHome(t)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".local", "share", "webjump"), DataDir())
	assert.Equal(t, filepath.Join(home, ".local", "share", "webjump", "webjump.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".local", "share", "webjump", "history.db"), HistoryFile())
	assert.Equal(t, filepath.Join(home, ".config", "webjump"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".config", "webjump", "config.yaml"), ConfigFile())
	assert.Equal(t, filepath.Join(home, ".config", "webjump", "webjumps.yaml"), WebjumpsFile())

	info, err := os.Stat(DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExpandHome(t *testing.T) {
	home := withHome(t)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "jumps.yaml"), ExpandHome("~/jumps.yaml"))
	assert.Equal(t, "/etc/webjump.yaml", ExpandHome("/etc/webjump.yaml"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "", ExpandHome(""))
}
