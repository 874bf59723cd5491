// Command crediario-export writes the monthly report of the configured ledger
// to files or a Google spreadsheet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"crediario/internal/cli"
	"crediario/internal/config"
	"crediario/internal/export"
	"crediario/internal/log"
)

type options struct {
	formats []export.Format
	year    int
	month   int
	out     string
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(log.ComponentExport)
	cfg := cli.LoadAndValidateConfig(logger)

	now := time.Now()
	if loc, err := cfg.Location(); err == nil {
		now = now.In(loc)
	}
	opts, err := parseFlags(os.Args[1:], now, cfg.ExportDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := run(ctx, logger, cfg, opts); err != nil {
		logger.Error("Export failed", log.FieldError, err)
		os.Exit(1)
	}
}

func parseFlags(args []string, now time.Time, defaultOut string) (options, error) {
	fs := flag.NewFlagSet("crediario-export", flag.ContinueOnError)
	formatFlag := fs.String("format", "all", "json, pdf, xlsx, sheets or all (files only)")
	year := fs.Int("year", now.Year(), "report year")
	month := fs.Int("month", int(now.Month()), "report month (1-12)")
	out := fs.String("out", defaultOut, "output directory")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *month < 1 || *month > 12 {
		return options{}, fmt.Errorf("invalid month %d", *month)
	}

	opts := options{year: *year, month: *month, out: *out}
	if strings.EqualFold(*formatFlag, "all") {
		opts.formats = export.FileFormats
		return opts, nil
	}
	for _, part := range strings.Split(*formatFlag, ",") {
		f, err := export.ParseFormat(part)
		if err != nil {
			return options{}, err
		}
		if !slices.Contains(opts.formats, f) {
			opts.formats = append(opts.formats, f)
		}
	}
	return opts, nil
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config, opts options) error {
	ledger, err := cli.OpenLedger(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	snap := export.FromStore(ledger.Store, opts.year, opts.month, time.Now().In(ledger.Location))

	var files []export.Format
	sheets := false
	for _, f := range opts.formats {
		if f == export.FormatSheets {
			sheets = true
			continue
		}
		files = append(files, f)
	}

	if len(files) > 0 {
		paths, err := export.WriteFiles(ctx, opts.out, files, snap)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info("Report written", "path", p, log.FieldYear, opts.year, log.FieldMonth, opts.month)
		}
	}

	if sheets {
		if !cfg.SheetsEnabled() {
			return errors.New("sheets export requires GOOGLE_SPREADSHEET_ID")
		}
		creds, err := export.CredentialsFromConfig(cfg.GoogleServiceAccountFile, cfg.GoogleServiceAccountJSON)
		if err != nil {
			return err
		}
		w, err := export.NewSheetsWriter(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, creds)
		if err != nil {
			return err
		}
		rng, err := w.Append(ctx, snap)
		if err != nil {
			return err
		}
		logger.Info("Report appended to spreadsheet", "range", rng)
	}
	return nil
}
