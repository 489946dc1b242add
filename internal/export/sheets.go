package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"zakat/internal/config"
	"zakat/internal/core"
	applog "zakat/internal/log"
)

// SheetsExporter replaces the contents of one sheet of a Google Sheets
// spreadsheet with a snapshot of the contribution ledger.
type SheetsExporter struct {
	svc           *gsheet.Service
	source        Source
	spreadsheetID string
	sheetName     string
}

var _ Exporter = (*SheetsExporter)(nil)

// NewSheetsExporter builds a Sheets client from service-account credentials
// (inline JSON or a file path, with GOOGLE_APPLICATION_CREDENTIALS as the
// standard fallback).
func NewSheetsExporter(ctx context.Context, cfg *config.Config, source Source) (*SheetsExporter, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing Google Spreadsheet ID")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		source:        source,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	inline := strings.TrimSpace(cfg.GoogleServiceAccountJSON)
	file := strings.TrimSpace(cfg.GoogleServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		credentials, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return credentials, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Export writes the snapshot and returns the updated range.
func (e *SheetsExporter) Export(ctx context.Context) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	contributions, err := e.source.ListContributions(ctx)
	if err != nil {
		return "", fmt.Errorf("read export data: %w", err)
	}

	values := make([][]any, 0, len(contributions)+1)
	header := make([]any, len(contributionHeader))
	for i, h := range contributionHeader {
		header[i] = h
	}
	values = append(values, header)
	for _, c := range contributions {
		values = append(values, []any{
			c.ID, c.Name, c.Kind, core.FormatMoney(c.Amount), c.Date.Format(core.DateLayout),
		})
	}

	// Clear first so rows deleted since the last export do not linger.
	clearRange := fmt.Sprintf("%s!A:E", e.sheetName)
	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear %s: %w", clearRange, err)
	}

	writeRange := fmt.Sprintf("%s!A1", e.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	resp, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", writeRange, err)
	}

	slog.InfoContext(ctx, "Exported contributions to Google Sheets",
		"spreadsheet_id", e.spreadsheetID,
		applog.FieldRows, len(contributions))
	return resp.UpdatedRange, nil
}
