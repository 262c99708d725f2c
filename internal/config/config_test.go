package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultOnFirstRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "taskbot")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.True(t, cfg.Haptics)
	assert.FileExists(t, cfg.ConfigPath())
}

func TestLoad_Roundtrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.Mode = ModeAPI
	cfg.API.BaseURL = "https://tasks.example.com"
	cfg.API.Token = "secret"
	cfg.Theme = "dark"
	cfg.User.FirstName = "Ada"
	require.NoError(t, cfg.Save())

	back, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ModeAPI, back.Mode)
	assert.Equal(t, "https://tasks.example.com", back.API.BaseURL)
	assert.Equal(t, "dark", back.Theme)
	assert.Equal(t, "Ada", back.User.FirstName)
}

func TestValidate(t *testing.T) {
	cfg := NewDefault()
	assert.NoError(t, cfg.Validate())

	cfg.Mode = "cloud"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Mode = ModeAPI
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid, "api mode needs a base URL")

	cfg.API.BaseURL = "https://tasks.example.com"
	assert.NoError(t, cfg.Validate())

	cfg.Theme = "sepia"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestToken_EnvOverride(t *testing.T) {
	cfg := NewDefault()
	cfg.API.Token = "from-file"

	t.Setenv(TokenEnvVar, "")
	assert.Equal(t, "from-file", cfg.Token())

	t.Setenv(TokenEnvVar, "from-env")
	assert.Equal(t, "from-env", cfg.Token())
}

func TestDatabasePath_DefaultsNextToConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Dir(), DefaultDBName), cfg.DatabasePath())

	cfg.DBPath = "/tmp/elsewhere.db"
	assert.Equal(t, "/tmp/elsewhere.db", cfg.DatabasePath())
}

func TestDisplayName(t *testing.T) {
	cfg := NewDefault()
	assert.Empty(t, cfg.DisplayName())

	cfg.User.FirstName = "Ada"
	assert.Equal(t, "Ada", cfg.DisplayName())

	cfg.User.LastName = "Lovelace"
	assert.Equal(t, "Ada Lovelace", cfg.DisplayName())
}

func TestLoad_RejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("mode: [broken"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}
