package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediario/internal/config"
	"crediario/internal/core"
	"crediario/internal/log"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CREDIARIO_TEST_VAR=from-file\n"), 0o600))
	t.Setenv("CREDIARIO_TEST_VAR", "")
	require.NoError(t, os.Unsetenv("CREDIARIO_TEST_VAR"))

	LoadEnvFile(path)
	assert.Equal(t, "from-file", os.Getenv("CREDIARIO_TEST_VAR"))

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("DATA_BACKEND", "cassandra")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid data backend")
}

func TestOpenLedgerMemory(t *testing.T) {
	seed := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seed, "crediario_config.json"),
		[]byte(`{"business_name":"Loja Semente"}`), 0o600))

	cfg := config.Load()
	cfg.DataBackend = "memory"
	cfg.MemorySeedDir = seed
	cfg.Timezone = "America/Sao_Paulo"

	ledger, err := OpenLedger(context.Background(), log.Discard(), cfg)
	require.NoError(t, err)
	defer ledger.Close()

	assert.Equal(t, "America/Sao_Paulo", ledger.Location.String())
	assert.Equal(t, "Loja Semente", ledger.Store.Settings.Get().BusinessName)

	c, err := ledger.Store.Customers.Add(context.Background(), core.CustomerDraft{
		Name: "Maria", DueDate: core.NewDate(2025, 1, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", c.RegisteredAt.Location().String())
}

func TestOpenLedgerBadTimezone(t *testing.T) {
	cfg := config.Load()
	cfg.DataBackend = "memory"
	cfg.Timezone = "Mars/Olympus"
	_, err := OpenLedger(context.Background(), log.Discard(), cfg)
	assert.Error(t, err)
}
