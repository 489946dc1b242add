package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"zakat/internal/core"
	applog "zakat/internal/log"
)

// Recorder converts contributions into rice-distribution transactions.
//
// Recording validates both references against the live stores, derives the
// total from the catalog price at that instant and persists the row, all
// inside one store transaction. Any failure aborts the whole operation with
// no side effect, so a caller may simply retry.
type Recorder struct {
	store TransactionStore
}

func NewRecorder(store TransactionStore) *Recorder {
	return &Recorder{store: store}
}

// RecordTransaction records a rice distribution against a contribution and
// returns the assigned transaction id.
//
// The stored total is a snapshot: price changes to the rice type after this
// call never alter it. Errors are typed: core.ErrContributionNotFound,
// core.ErrRiceTypeNotFound and the input-validation sentinels are
// distinguishable with errors.Is; anything else is a store failure.
func (r *Recorder) RecordTransaction(ctx context.Context, in core.TransactionInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := r.store.Transact(ctx, func(s RecorderStores) error {
		ok, err := s.ContributionExists(ctx, in.ContributionID)
		if err != nil {
			return fmt.Errorf("check contribution: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: id %d", core.ErrContributionNotFound, in.ContributionID)
		}

		price, err := s.RiceTypePrice(ctx, in.RiceTypeID)
		if err != nil {
			if errors.Is(err, core.ErrRiceTypeNotFound) {
				return err
			}
			return fmt.Errorf("read rice price: %w", err)
		}

		id, err = s.InsertTransaction(ctx, core.Transaction{
			ContributionID: in.ContributionID,
			RiceTypeID:     in.RiceTypeID,
			QuantityKg:     in.QuantityKg,
			TotalPrice:     core.ComputeTotal(price, in.QuantityKg),
			Date:           in.Date,
		})
		if err != nil {
			return fmt.Errorf("persist transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"id", id,
		applog.FieldContributionID, in.ContributionID,
		applog.FieldRiceTypeID, in.RiceTypeID,
		applog.FieldQuantityKg, in.QuantityKg.String())
	return id, nil
}

// ListTransactions returns the denormalized transaction view, oldest first.
// An empty store yields an empty slice, not an error.
func (r *Recorder) ListTransactions(ctx context.Context) ([]core.TransactionView, error) {
	views, err := r.store.ListTransactionViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if views == nil {
		views = []core.TransactionView{}
	}
	return views, nil
}
