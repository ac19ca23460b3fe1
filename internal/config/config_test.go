package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func TestSaveCreatesDirAndRestrictsPermissions(t *testing.T) {
	setTempHome(t)

	cfg := Config{Token: "jti_secret"}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadMissingConfig(t *testing.T) {
	setTempHome(t)

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveLoadRoundtrip(t *testing.T) {
	setTempHome(t)

	original := Config{
		Token:     "jti_verylongtoken12345",
		Username:  "analyst",
		ServerURL: "https://joti.example.com",
		Theme:     "dark",
	}
	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original.Token, loaded.Token)
	assert.Equal(t, original.Username, loaded.Username)
	assert.Equal(t, original.ServerURL, loaded.ServerURL)
	assert.Equal(t, original.Theme, loaded.Theme)
}

func TestLoadRejectsOpenPermissions(t *testing.T) {
	setTempHome(t)

	cfg := Config{Token: "jti_secret"}
	require.NoError(t, cfg.Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestLoadRejectsMissingToken(t *testing.T) {
	dir := setTempHome(t)

	cfgDir := filepath.Join(dir, ".joti")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte("username: analyst\n"), 0600))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := setTempHome(t)

	cfgDir := filepath.Join(dir, ".joti")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte("token: [broken\n"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestPathLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".joti")
	assert.Contains(t, path, "config")
}
