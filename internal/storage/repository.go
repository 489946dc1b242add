// Package storage persists the zakat ledger, the rice catalog and the
// distribution transactions in a single SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"zakat/internal/core"
	"zakat/internal/services"
)

// SQLiteRepository is the shared store behind all three tables. It holds a
// single connection; the interactive loop issues one operation at a time.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// Compile-time checks that the repository serves the service ports.
var (
	_ services.LedgerStore      = (*SQLiteRepository)(nil)
	_ services.CatalogStore     = (*SQLiteRepository)(nil)
	_ services.TransactionStore = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// foreign_keys ON: the recorder validates references itself, but the
	// schema enforces them too, so a row can never dangle even if a caller
	// bypasses the recorder.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Transact runs fn inside a database transaction. SQLite transactions are
// serializable, so the recorder's price read and insert see one consistent
// snapshot; on error everything is rolled back and no row is visible.
func (r *SQLiteRepository) Transact(ctx context.Context, fn func(services.RecorderStores) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateContribution(ctx context.Context, c core.Contribution) (int64, error) {
	return r.queries.CreateContribution(ctx, c)
}

func (r *SQLiteRepository) UpdateContribution(ctx context.Context, c core.Contribution) error {
	return r.queries.UpdateContribution(ctx, c)
}

func (r *SQLiteRepository) DeleteContribution(ctx context.Context, id int64) error {
	return r.queries.DeleteContribution(ctx, id)
}

func (r *SQLiteRepository) GetContribution(ctx context.Context, id int64) (core.Contribution, error) {
	return r.queries.GetContribution(ctx, id)
}

func (r *SQLiteRepository) ListContributions(ctx context.Context) ([]core.Contribution, error) {
	return r.queries.ListContributions(ctx)
}

func (r *SQLiteRepository) ContributionExists(ctx context.Context, id int64) (bool, error) {
	return r.queries.ContributionExists(ctx, id)
}

func (r *SQLiteRepository) CreateRiceType(ctx context.Context, rt core.RiceType) (int64, error) {
	return r.queries.CreateRiceType(ctx, rt)
}

func (r *SQLiteRepository) ListRiceTypes(ctx context.Context) ([]core.RiceType, error) {
	return r.queries.ListRiceTypes(ctx)
}

func (r *SQLiteRepository) RiceTypePrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	return r.queries.RiceTypePrice(ctx, id)
}

func (r *SQLiteRepository) ListTransactionViews(ctx context.Context) ([]core.TransactionView, error) {
	return r.queries.ListTransactionViews(ctx)
}

// CountTransactions reports the number of recorded transactions.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	return r.queries.CountTransactions(ctx)
}
