// Package export serializes read-only snapshots of the zakat data to a
// spreadsheet, either a local .xlsx workbook or a Google Sheets document.
package export

import (
	"context"

	"zakat/internal/core"
)

type (
	// Source provides the rows the exporters serialize. The sqlite
	// repository implements it.
	Source interface {
		ListContributions(ctx context.Context) ([]core.Contribution, error)
		ListRiceTypes(ctx context.Context) ([]core.RiceType, error)
		ListTransactionViews(ctx context.Context) ([]core.TransactionView, error)
	}

	// Exporter writes a snapshot and returns a reference to where it went
	// (a file path or a spreadsheet range).
	Exporter interface {
		Export(ctx context.Context) (string, error)
	}
)

var contributionHeader = []string{"ID", "Name", "Zakat Kind", "Amount", "Date"}
