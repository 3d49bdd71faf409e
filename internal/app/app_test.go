package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"repair_desk/internal/config"
	"repair_desk/internal/datastore"
	"repair_desk/internal/repair"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeStoreMemory(t *testing.T) {
	store := InitializeStore(context.Background(), config.Default(), true)
	require.True(t, store.Available())

	table, err := store.Table()
	require.NoError(t, err)
	rows, err := table.ReadAllRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{repair.Header}, rows)
}

func TestInitializeStoreWithoutCredentials(t *testing.T) {
	store := InitializeStore(context.Background(), config.Default(), false)
	assert.False(t, store.Available())

	_, err := store.Table()
	assert.True(t, errors.Is(err, datastore.ErrUnavailable))
}

func TestInitializeStoreBadCredentialsFile(t *testing.T) {
	cfg := config.Default()
	cfg.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")

	store := InitializeStore(context.Background(), cfg, false)
	assert.False(t, store.Available())
}

func TestInitializeNotificationClient(t *testing.T) {
	cfg := config.Default()
	assert.False(t, InitializeNotificationClient(cfg).Enabled())

	cfg.Notifications.Enabled = true
	assert.True(t, InitializeNotificationClient(cfg).Enabled())
}

func TestSetupEnvironmentReadsConfigFile(t *testing.T) {
	for _, key := range []string{"ENV", "LOGLEVEL", "PORT", "LISTEN_ADDR", "WORKSHEET_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listenAddr: \":8081\"\nlogLevel: error\n"), 0o600))

	cfg, err := SetupEnvironment(path)
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.ListenAddr)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestSetupEnvironmentMissingFile(t *testing.T) {
	_, err := SetupEnvironment(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
