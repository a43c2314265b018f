package director

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/unchainedshop/unchained-sub022/calculation"
)

// Director runs the registered adapters of one pricing surface over a
// context and produces the resulting pricing sheet.
type Director[C Context] struct {
	registry *Registry[C]
	logger   *slog.Logger
}

// New creates a director with an empty registry. A nil logger defaults to
// slog.Default().
func New[C Context](logger *slog.Logger) *Director[C] {
	if logger == nil {
		logger = slog.Default()
	}

	return &Director[C]{
		registry: NewRegistry[C](logger),
		logger:   logger,
	}
}

// Register adds an adapter to the director's registry.
func (d *Director[C]) Register(adapter Adapter[C]) {
	d.registry.Register(adapter)
}

// Registry exposes the underlying registry.
func (d *Director[C]) Registry() *Registry[C] {
	return d.registry
}

// RebuildCalculation computes the pricing sheet for the given context from
// scratch. Adapters run in order index order; inactive adapters are
// filtered, misconfigured ones are skipped with a warning, and the first
// adapter error aborts the run.
func (d *Director[C]) RebuildCalculation(ctx context.Context, c C) (*calculation.Sheet, error) {
	start := time.Now()
	sheet := calculation.NewSheet(c.CurrencyCode())

	for _, adapter := range d.registry.Sorted() {
		if !adapter.IsActivatedFor(c) {
			continue
		}

		if cfg, ok := any(adapter).(Configurable); ok {
			if err := cfg.ConfigurationError(); err != nil {
				d.logger.Warn("skipping misconfigured pricing adapter",
					slog.String("adapter", adapter.Key()),
					slog.String("error", err.Error()),
				)

				continue
			}
		}

		next, err := adapter.Calculate(ctx, c, sheet)
		if err != nil {
			return nil, fmt.Errorf("pricing adapter %s: %w", adapter.Key(), err)
		}

		sheet = next
	}

	d.logger.Debug("rebuilt pricing calculation",
		slog.String("currency", sheet.Currency()),
		slog.Int("rows", sheet.Len()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return sheet, nil
}

// CalculationSheet builds a sheet view over already-computed rows without
// running any adapter. Used to answer pricing queries from persisted rows.
func (d *Director[C]) CalculationSheet(c C, rows []calculation.Row) *calculation.Sheet {
	return calculation.NewSheet(c.CurrencyCode(), rows...)
}
