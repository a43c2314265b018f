package discount

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/types"
)

// ErrCodeNotFound is returned when no registered adapter accepts a discount
// code for an order.
var ErrCodeNotFound = errors.New("discount: no adapter matches the given code")

// Director owns the registered discount adapters and decides which
// discounts are attached to an order. Safe for concurrent use.
type Director struct {
	mu       sync.RWMutex
	adapters []Adapter
	logger   *slog.Logger
}

// NewDirector creates a director with no adapters. A nil logger defaults to
// slog.Default().
func NewDirector(logger *slog.Logger) *Director {
	if logger == nil {
		logger = slog.Default()
	}

	return &Director{logger: logger}
}

// RegisterAdapter adds the adapter, replacing any adapter already
// registered under the same key. Adapters without a key are rejected.
func (d *Director) RegisterAdapter(adapter Adapter) {
	if adapter.Key() == "" {
		d.logger.Warn("rejecting discount adapter with empty key",
			slog.String("label", adapter.Label()),
		)

		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, existing := range d.adapters {
		if existing.Key() == adapter.Key() {
			d.adapters[i] = adapter
			d.logger.Debug("replaced discount adapter", slog.String("key", adapter.Key()))

			return
		}
	}

	d.adapters = append(d.adapters, adapter)
	d.logger.Debug("registered discount adapter",
		slog.String("key", adapter.Key()),
		slog.String("label", adapter.Label()),
		slog.String("version", adapter.Version()),
	)
}

// Adapter returns the adapter registered under key, or false.
func (d *Director) Adapter(key string) (Adapter, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.adapters {
		if a.Key() == key {
			return a, true
		}
	}

	return nil, false
}

func (d *Director) sorted() []Adapter {
	d.mu.RLock()
	out := make([]Adapter, len(d.adapters))
	copy(out, d.adapters)
	d.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex() < out[j].OrderIndex()
	})

	return out
}

// FindSystemDiscounts returns a fresh applied record for every adapter
// whose system predicate accepts the order.
func (d *Director) FindSystemDiscounts(ctx context.Context, c Context) []Applied {
	var out []Applied
	for _, adapter := range d.sorted() {
		if d.systemEligible(ctx, adapter, c) {
			out = append(out, d.newApplied(adapter, c, TriggerSystem, ""))
		}
	}

	return out
}

// ResolveByCode finds the first adapter that allows manual addition of the
// code and accepts it for the order. Code matching is case-insensitive.
// Returns ErrCodeNotFound when no adapter takes the code.
func (d *Director) ResolveByCode(ctx context.Context, c Context, code string) (Applied, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	for _, adapter := range d.sorted() {
		if !d.manualAdditionAllowed(adapter, code) {
			continue
		}
		if d.codeEligible(ctx, adapter, c, code) {
			return d.newApplied(adapter, c, TriggerCode, code), nil
		}
	}

	return Applied{}, ErrCodeNotFound
}

// Reconcile re-validates the given applied discounts against the order and
// discovers newly eligible system discounts. Discounts whose adapter is
// gone or whose predicate no longer accepts the order are dropped.
func (d *Director) Reconcile(ctx context.Context, c Context, existing []Applied) []Applied {
	kept := make([]Applied, 0, len(existing))
	seen := make(map[string]bool, len(existing))

	for _, applied := range existing {
		adapter, ok := d.Adapter(applied.DiscountKey)
		if !ok {
			d.logger.Warn("dropping discount with unregistered adapter",
				slog.String("discount", applied.DiscountKey),
				slog.String("order", applied.OrderID.String()),
			)

			continue
		}

		valid := false
		switch applied.Trigger {
		case TriggerCode:
			valid = d.codeEligible(ctx, adapter, c, applied.Code)
		case TriggerSystem:
			valid = d.systemEligible(ctx, adapter, c)
		}

		if !valid {
			d.logger.Info("dropping no longer eligible discount",
				slog.String("discount", applied.DiscountKey),
				slog.String("trigger", string(applied.Trigger)),
				slog.String("order", applied.OrderID.String()),
			)

			continue
		}

		kept = append(kept, applied)
		seen[applied.DiscountKey] = true
	}

	for _, candidate := range d.FindSystemDiscounts(ctx, c) {
		if !seen[candidate.DiscountKey] {
			kept = append(kept, candidate)
		}
	}

	return kept
}

// Resolve pairs applied discounts with their adapters for a pricing run.
// Discounts without a registered adapter are silently skipped; Reconcile
// is responsible for reporting them.
func (d *Director) Resolve(applied []Applied) []Resolved {
	out := make([]Resolved, 0, len(applied))
	for _, a := range applied {
		adapter, ok := d.Adapter(a.DiscountKey)
		if !ok {
			continue
		}

		out = append(out, Resolved{Applied: a, Adapter: adapter})
	}

	return out
}

func (d *Director) newApplied(adapter Adapter, c Context, trigger Trigger, code string) Applied {
	return Applied{
		Entity:      types.NewEntity(),
		ID:          id.NewDiscountID(),
		OrderID:     c.Order.ID,
		DiscountKey: adapter.Key(),
		Trigger:     trigger,
		Code:        code,
		Total:       types.Zero(c.Order.CurrencyCode),
	}
}

// ──────────────────────────────────────────────────
// Fail-closed predicate wrappers
// ──────────────────────────────────────────────────

func (d *Director) systemEligible(ctx context.Context, adapter Adapter, c Context) (ok bool) {
	defer d.recoverPredicate(adapter, "system", &ok)

	ok, err := adapter.IsValidForSystemTriggering(ctx, c)
	if err != nil {
		d.logger.Warn("discount system predicate failed",
			slog.String("discount", adapter.Key()),
			slog.String("error", err.Error()),
		)

		return false
	}

	return ok
}

func (d *Director) codeEligible(ctx context.Context, adapter Adapter, c Context, code string) (ok bool) {
	defer d.recoverPredicate(adapter, "code", &ok)

	ok, err := adapter.IsValidForCodeTriggering(ctx, c, code)
	if err != nil {
		d.logger.Warn("discount code predicate failed",
			slog.String("discount", adapter.Key()),
			slog.String("error", err.Error()),
		)

		return false
	}

	return ok
}

func (d *Director) manualAdditionAllowed(adapter Adapter, code string) (ok bool) {
	defer d.recoverPredicate(adapter, "manual-addition", &ok)

	return adapter.IsManualAdditionAllowed(code)
}

// ManualRemovalAllowed reports whether the adapter behind the applied
// discount permits user-initiated removal. Fails closed when the adapter is
// missing or panics.
func (d *Director) ManualRemovalAllowed(applied Applied) (ok bool) {
	adapter, found := d.Adapter(applied.DiscountKey)
	if !found {
		return false
	}

	defer d.recoverPredicate(adapter, "manual-removal", &ok)

	return adapter.IsManualRemovalAllowed()
}

func (d *Director) recoverPredicate(adapter Adapter, predicate string, ok *bool) {
	if r := recover(); r != nil {
		*ok = false
		d.logger.Warn("discount predicate panicked",
			slog.String("discount", adapter.Key()),
			slog.String("predicate", predicate),
			slog.Any("panic", r),
		)
	}
}
