package services

import (
	"context"

	"github.com/shopspring/decimal"

	"zakat/internal/core"
)

// Ports consumed by the services. The sqlite repository implements all of
// them; tests substitute in-memory fakes.
type (
	// LedgerStore holds the contribution ledger.
	LedgerStore interface {
		CreateContribution(ctx context.Context, c core.Contribution) (int64, error)
		UpdateContribution(ctx context.Context, c core.Contribution) error
		DeleteContribution(ctx context.Context, id int64) error
		GetContribution(ctx context.Context, id int64) (core.Contribution, error)
		ListContributions(ctx context.Context) ([]core.Contribution, error)
	}

	// CatalogStore holds the rice master catalog.
	CatalogStore interface {
		CreateRiceType(ctx context.Context, rt core.RiceType) (int64, error)
		ListRiceTypes(ctx context.Context) ([]core.RiceType, error)
	}

	// RecorderStores is what the transaction recorder touches while
	// validating and persisting one transaction: the ledger read path, the
	// catalog price read and the single-row insert.
	RecorderStores interface {
		ContributionExists(ctx context.Context, id int64) (bool, error)
		RiceTypePrice(ctx context.Context, id int64) (decimal.Decimal, error)
		InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
	}

	// TransactionStore runs the recorder's check-then-write sequence as one
	// unit and serves the joined transaction view. Transact must roll the
	// whole sequence back when fn fails, so a failed recording leaves no row.
	TransactionStore interface {
		Transact(ctx context.Context, fn func(RecorderStores) error) error
		ListTransactionViews(ctx context.Context) ([]core.TransactionView, error)
	}
)
