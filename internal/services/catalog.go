package services

import (
	"context"
	"fmt"
	"log/slog"

	"zakat/internal/core"
	applog "zakat/internal/log"
)

// Catalog manages the rice master catalog. Rice types are append-only:
// there is no update path, so recorded price snapshots stay meaningful.
type Catalog struct {
	store CatalogStore
}

func NewCatalog(store CatalogStore) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) Add(ctx context.Context, rt core.RiceType) (int64, error) {
	if err := rt.Validate(); err != nil {
		return 0, err
	}
	id, err := c.store.CreateRiceType(ctx, rt)
	if err != nil {
		return 0, fmt.Errorf("add rice type: %w", err)
	}
	slog.InfoContext(ctx, "Rice type added",
		applog.FieldRiceTypeID, id,
		applog.FieldRiceTypeName, rt.Name,
		applog.FieldPricePerKg, rt.PricePerKg.String())
	return id, nil
}

func (c *Catalog) List(ctx context.Context) ([]core.RiceType, error) {
	out, err := c.store.ListRiceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rice types: %w", err)
	}
	return out, nil
}
