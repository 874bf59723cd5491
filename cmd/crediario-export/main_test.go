package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediario/internal/config"
	"crediario/internal/export"
	"crediario/internal/log"
)

var now = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, now, "./exports")
	require.NoError(t, err)
	assert.Equal(t, export.FileFormats, opts.formats)
	assert.Equal(t, 2025, opts.year)
	assert.Equal(t, 3, opts.month)
	assert.Equal(t, "./exports", opts.out)
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-format", "pdf,sheets", "-year", "2024", "-month", "12", "-out", "/tmp/x"}, now, "")
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.FormatPDF, export.FormatSheets}, opts.formats)
	assert.Equal(t, 2024, opts.year)
	assert.Equal(t, 12, opts.month)

	opts, err = parseFlags([]string{"-format", "json,JSON, json"}, now, "")
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.FormatJSON}, opts.formats)

	_, err = parseFlags([]string{"-month", "13"}, now, "")
	assert.Error(t, err)
	_, err = parseFlags([]string{"-format", "csv"}, now, "")
	assert.Error(t, err)
}

func TestRunWritesFiles(t *testing.T) {
	cfg := config.Load()
	cfg.DataBackend = "memory"
	cfg.Timezone = "UTC"
	out := t.TempDir()

	err := run(context.Background(), log.Discard(), cfg, options{
		formats: export.FileFormats, year: 2025, month: 1, out: out,
	})
	require.NoError(t, err)
	for _, name := range []string{"relatorio-2025-01.json", "relatorio-2025-01.pdf", "relatorio-2025-01.xlsx"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}

func TestRunSheetsRequiresSpreadsheet(t *testing.T) {
	cfg := config.Load()
	cfg.DataBackend = "memory"
	cfg.Timezone = "UTC"
	cfg.GoogleSpreadsheetID = ""

	err := run(context.Background(), log.Discard(), cfg, options{
		formats: []export.Format{export.FormatSheets}, year: 2025, month: 1,
	})
	assert.ErrorContains(t, err, "GOOGLE_SPREADSHEET_ID")
}
