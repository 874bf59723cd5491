package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsWriter appends one summary row per export to a Google spreadsheet.
type SheetsWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// CredentialsFromConfig returns service account credentials, preferring the
// inline JSON over the file path.
func CredentialsFromConfig(file, inline string) ([]byte, error) {
	if s := strings.TrimSpace(inline); s != "" {
		return []byte(s), nil
	}
	if file = strings.TrimSpace(file); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	}
	return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
}

func NewSheetsWriter(ctx context.Context, spreadsheetID, sheetName string, credentials []byte) (*SheetsWriter, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if sheetName == "" {
		sheetName = "Crediario"
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsWriter{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// Append writes the snapshot rows after the last filled row and returns the
// updated range.
func (w *SheetsWriter) Append(ctx context.Context, snap Snapshot) (string, error) {
	if w.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:J", w.sheetName)
	vr := &gsheet.ValueRange{Values: sheetRows(snap)}
	resp, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", w.sheetName, err)
	}
	if resp.Updates == nil {
		return rng, nil
	}
	return resp.Updates.UpdatedRange, nil
}

// sheetRows lays out the monthly figures as a single row. Amounts are plain
// dot-decimal strings so the spreadsheet locale parses them.
func sheetRows(snap Snapshot) [][]any {
	m := snap.Monthly
	return [][]any{{
		snap.ExportedAt.Format("2006-01-02 15:04"),
		snap.BusinessName,
		fmt.Sprintf("%04d-%02d", m.Year, m.Month),
		m.TotalReceived.StringFixed(2),
		m.TotalExpenses.StringFixed(2),
		m.FinalProfit.StringFixed(2),
		m.PayingCustomers,
		snap.Summary.OutstandingCredit.StringFixed(2),
		snap.Summary.OverdueCustomers,
		snap.Summary.NetProfit.StringFixed(2),
	}}
}
