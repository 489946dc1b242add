package export

import (
	"context"
	"fmt"

	"zakat/internal/config"
)

// New picks the exporter for the configured backend.
func New(ctx context.Context, cfg *config.Config, source Source) (Exporter, error) {
	switch cfg.ExportBackend {
	case config.BackendXLSX:
		return NewXLSXExporter(source, cfg.ExportDir), nil
	case config.BackendSheets:
		return NewSheetsExporter(ctx, cfg, source)
	default:
		return nil, fmt.Errorf("unknown export backend: %s", cfg.ExportBackend)
	}
}
