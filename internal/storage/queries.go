package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"zakat/internal/core"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same queries can
// run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Decimals are stored as TEXT so amounts survive the round trip exactly;
// SQLite has no native decimal column type.
func scanDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func scanDate(s string) (time.Time, error) {
	return time.Parse(core.DateLayout, s)
}

const createContribution = `
INSERT INTO contributions (name, kind, amount, date) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateContribution(ctx context.Context, c core.Contribution) (int64, error) {
	res, err := q.db.ExecContext(ctx, createContribution,
		c.Name, c.Kind, c.Amount.String(), c.Date.Format(core.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("create contribution: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contribution id: %w", err)
	}
	return id, nil
}

const updateContribution = `
UPDATE contributions SET name = ?, kind = ?, amount = ?, date = ? WHERE id = ?`

func (q *Queries) UpdateContribution(ctx context.Context, c core.Contribution) error {
	res, err := q.db.ExecContext(ctx, updateContribution,
		c.Name, c.Kind, c.Amount.String(), c.Date.Format(core.DateLayout), c.ID)
	if err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", core.ErrContributionNotFound, c.ID)
	}
	return nil
}

const deleteContribution = `DELETE FROM contributions WHERE id = ?`

func (q *Queries) DeleteContribution(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteContribution, id)
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", core.ErrContributionNotFound, id)
	}
	return nil
}

const getContribution = `
SELECT id, name, kind, amount, date FROM contributions WHERE id = ?`

func (q *Queries) GetContribution(ctx context.Context, id int64) (core.Contribution, error) {
	var (
		c            core.Contribution
		amount, date string
	)
	err := q.db.QueryRowContext(ctx, getContribution, id).
		Scan(&c.ID, &c.Name, &c.Kind, &amount, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contribution{}, fmt.Errorf("%w: id %d", core.ErrContributionNotFound, id)
	}
	if err != nil {
		return core.Contribution{}, fmt.Errorf("get contribution: %w", err)
	}
	if c.Amount, err = scanDecimal(amount); err != nil {
		return core.Contribution{}, fmt.Errorf("contribution amount: %w", err)
	}
	if c.Date, err = scanDate(date); err != nil {
		return core.Contribution{}, fmt.Errorf("contribution date: %w", err)
	}
	return c, nil
}

const listContributions = `
SELECT id, name, kind, amount, date FROM contributions ORDER BY id`

func (q *Queries) ListContributions(ctx context.Context) ([]core.Contribution, error) {
	rows, err := q.db.QueryContext(ctx, listContributions)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []core.Contribution
	for rows.Next() {
		var (
			c            core.Contribution
			amount, date string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &amount, &date); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		if c.Amount, err = scanDecimal(amount); err != nil {
			return nil, fmt.Errorf("contribution amount: %w", err)
		}
		if c.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("contribution date: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const contributionExists = `SELECT 1 FROM contributions WHERE id = ?`

func (q *Queries) ContributionExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := q.db.QueryRowContext(ctx, contributionExists, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check contribution: %w", err)
	}
	return true, nil
}

const createRiceType = `
INSERT INTO rice_types (name, price_per_kg) VALUES (?, ?)`

func (q *Queries) CreateRiceType(ctx context.Context, rt core.RiceType) (int64, error) {
	res, err := q.db.ExecContext(ctx, createRiceType, rt.Name, rt.PricePerKg.String())
	if err != nil {
		return 0, fmt.Errorf("create rice type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("rice type id: %w", err)
	}
	return id, nil
}

const listRiceTypes = `
SELECT id, name, price_per_kg FROM rice_types ORDER BY id`

func (q *Queries) ListRiceTypes(ctx context.Context) ([]core.RiceType, error) {
	rows, err := q.db.QueryContext(ctx, listRiceTypes)
	if err != nil {
		return nil, fmt.Errorf("list rice types: %w", err)
	}
	defer rows.Close()

	var out []core.RiceType
	for rows.Next() {
		var (
			rt    core.RiceType
			price string
		)
		if err := rows.Scan(&rt.ID, &rt.Name, &price); err != nil {
			return nil, fmt.Errorf("scan rice type: %w", err)
		}
		if rt.PricePerKg, err = scanDecimal(price); err != nil {
			return nil, fmt.Errorf("rice price: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

const riceTypePrice = `SELECT price_per_kg FROM rice_types WHERE id = ?`

func (q *Queries) RiceTypePrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	var price string
	err := q.db.QueryRowContext(ctx, riceTypePrice, id).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, fmt.Errorf("%w: id %d", core.ErrRiceTypeNotFound, id)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("read rice price: %w", err)
	}
	d, err := scanDecimal(price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rice price: %w", err)
	}
	return d, nil
}

const insertTransaction = `
INSERT INTO transactions (contribution_id, rice_type_id, quantity_kg, total_price, date)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertTransaction,
		t.ContributionID, t.RiceTypeID,
		t.QuantityKg.String(), t.TotalPrice.String(), t.Date.Format(core.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}
	return id, nil
}

const listTransactionViews = `
SELECT t.id, c.name, c.kind, rt.name, t.quantity_kg, t.total_price, t.date
FROM transactions t
JOIN contributions c ON t.contribution_id = c.id
JOIN rice_types rt ON t.rice_type_id = rt.id
ORDER BY t.id`

func (q *Queries) ListTransactionViews(ctx context.Context) ([]core.TransactionView, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionViews)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.TransactionView
	for rows.Next() {
		var (
			v                core.TransactionView
			qty, total, date string
		)
		if err := rows.Scan(&v.ID, &v.ContributorName, &v.ContributionKind,
			&v.RiceTypeName, &qty, &total, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if v.QuantityKg, err = scanDecimal(qty); err != nil {
			return nil, fmt.Errorf("transaction quantity: %w", err)
		}
		if v.TotalPrice, err = scanDecimal(total); err != nil {
			return nil, fmt.Errorf("transaction total: %w", err)
		}
		if v.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("transaction date: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

const countTransactions = `SELECT COUNT(*) FROM transactions`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, countTransactions).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
