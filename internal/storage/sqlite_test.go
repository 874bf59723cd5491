package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "crediario.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if _, err := repo.Load(ctx, "crediario_clientes"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Save(ctx, "crediario_clientes", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, "crediario_clientes", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Load(ctx, "crediario_clientes")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("unexpected value %q", got)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "crediario.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.Save(ctx, "crediario_config", []byte(`{"business_name":"Loja"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	repo.Close()

	// Migrations must be idempotent across restarts.
	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	got, err := repo.Load(ctx, "crediario_config")
	if err != nil || string(got) != `{"business_name":"Loja"}` {
		t.Fatalf("unexpected value %q err=%v", got, err)
	}
}
