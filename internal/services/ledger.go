package services

import (
	"context"
	"fmt"
	"log/slog"

	"zakat/internal/core"
	applog "zakat/internal/log"
)

// Ledger manages the contribution ledger.
type Ledger struct {
	store LedgerStore
}

func NewLedger(store LedgerStore) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Add(ctx context.Context, c core.Contribution) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	id, err := l.store.CreateContribution(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("add contribution: %w", err)
	}
	slog.InfoContext(ctx, "Contribution added",
		applog.FieldContributionID, id,
		applog.FieldContributorName, c.Name,
		applog.FieldZakatKind, c.Kind,
		applog.FieldAmount, c.Amount.String())
	return id, nil
}

func (l *Ledger) Update(ctx context.Context, c core.Contribution) error {
	if c.ID <= 0 {
		return core.ErrInvalidReference
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := l.store.UpdateContribution(ctx, c); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Contribution updated", applog.FieldContributionID, c.ID)
	return nil
}

func (l *Ledger) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return core.ErrInvalidReference
	}
	if err := l.store.DeleteContribution(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Contribution deleted", applog.FieldContributionID, id)
	return nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (core.Contribution, error) {
	return l.store.GetContribution(ctx, id)
}

func (l *Ledger) List(ctx context.Context) ([]core.Contribution, error) {
	out, err := l.store.ListContributions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return out, nil
}
