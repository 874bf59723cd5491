package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"crediario/internal/storage"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	ctx := context.Background()

	s, err := New(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	key := "test_" + uuid.NewString()
	_, err = s.Load(ctx, key)
	require.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Save(ctx, key, []byte(`{"v":1}`)))
	require.NoError(t, s.Save(ctx, key, []byte(`{"v":2}`)))

	got, err := s.Load(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `{"v":2}`, string(got))

	_, err = s.pool.Exec(ctx, `DELETE FROM crediario_slots WHERE key = $1`, key)
	require.NoError(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), first)

	up, ident, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	require.Equal(t, "create_slots", ident)
}

func TestRunMigrationsTwice(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	require.NoError(t, RunMigrations(dsn))
	require.NoError(t, RunMigrations(dsn))
}
