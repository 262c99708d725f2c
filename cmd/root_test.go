package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/api"
	"github.com/taskbot-dev/taskbot/internal/config"
	"github.com/taskbot-dev/taskbot/internal/localstore"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("3, 1,3,2")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids, "deduplicated, order preserved")

	_, err = parseIDs("1,x")
	assert.Error(t, err)

	_, err = parseIDs("0")
	assert.Error(t, err)

	_, err = parseIDs(" , ")
	assert.Error(t, err)
}

func TestNewBackend_ModeSelection(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Mode = config.ModeAPI
	cfg.API.BaseURL = "https://tasks.example.com"
	cfg.DBPath = filepath.Join(t.TempDir(), "tasks.db")

	b, closer, err := newBackend(cfg)
	require.NoError(t, err)
	defer closer() //nolint:errcheck
	assert.IsType(t, &api.Client{}, b)
}

func TestNewBackend_LocalFlagForcesSQLite(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Mode = config.ModeAPI
	cfg.API.BaseURL = "https://tasks.example.com"
	cfg.DBPath = filepath.Join(t.TempDir(), "tasks.db")

	flagLocal = true
	defer func() { flagLocal = false }()

	b, closer, err := newBackend(cfg)
	require.NoError(t, err)
	defer closer() //nolint:errcheck
	assert.IsType(t, &localstore.Store{}, b)
}
