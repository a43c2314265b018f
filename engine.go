package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/commerce"
	"github.com/unchainedshop/unchained-sub022/director"
	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/observability"
	"github.com/unchainedshop/unchained-sub022/store"
)

// Engine is the entry point of the pricing system. It owns one director per
// pricing surface plus the discount director, and optionally persists
// results through a store.
//
// An Engine is safe for concurrent use once the adapters are registered.
type Engine struct {
	logger  *slog.Logger
	store   store.Store
	metrics *observability.Metrics

	products   *director.Director[ProductPricingContext]
	orders     *director.Director[OrderPricingContext]
	deliveries *director.Director[DeliveryPricingContext]
	payments   *director.Director[PaymentPricingContext]
	discounts  *discount.Director
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStore enables persistence of calculations and applied discounts.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithMetrics enables metric reporting.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an engine with empty adapter registries.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	e.products = director.New[ProductPricingContext](e.logger)
	e.orders = director.New[OrderPricingContext](e.logger)
	e.deliveries = director.New[DeliveryPricingContext](e.logger)
	e.payments = director.New[PaymentPricingContext](e.logger)
	e.discounts = discount.NewDirector(e.logger)

	return e
}

// Products returns the product pricing director.
func (e *Engine) Products() *director.Director[ProductPricingContext] { return e.products }

// Orders returns the order pricing director.
func (e *Engine) Orders() *director.Director[OrderPricingContext] { return e.orders }

// Deliveries returns the delivery fee pricing director.
func (e *Engine) Deliveries() *director.Director[DeliveryPricingContext] { return e.deliveries }

// Payments returns the payment fee pricing director.
func (e *Engine) Payments() *director.Director[PaymentPricingContext] { return e.payments }

// Discounts returns the discount director.
func (e *Engine) Discounts() *discount.Director { return e.discounts }

// OrderInput carries everything a recalculation needs. Discounts nil means
// "load the applied discounts from the store"; an explicit empty slice
// means "no discounts attached yet".
type OrderInput struct {
	Order     commerce.Order
	User      commerce.User
	Positions []commerce.OrderPosition
	Delivery  *commerce.OrderDelivery
	Payment   *commerce.OrderPayment
	Discounts []discount.Applied
}

// OrderCalculation is the result of one order recalculation.
type OrderCalculation struct {
	Order         commerce.Order
	Sheet         *calculation.Sheet
	Positions     []PricedPosition
	DeliverySheet *calculation.Sheet
	PaymentSheet  *calculation.Sheet
	Discounts     []discount.Applied
}

// SimulateProductPrice prices a single product for a locale and quantity
// without touching any order or discount state.
func (e *Engine) SimulateProductPrice(ctx context.Context, product commerce.Product, quantity int, currencyCode, countryCode string, user commerce.User) (*calculation.Sheet, error) {
	return e.products.RebuildCalculation(ctx, ProductPricingContext{
		Product:  product,
		Quantity: quantity,
		Currency: currencyCode,
		Country:  countryCode,
		User:     user,
	})
}

// RecalculateOrder reprices the whole order from scratch: it reconciles the
// applied discounts, prices every position, the delivery and payment fees,
// runs the order-level adapters and persists the result when a store is
// configured.
func (e *Engine) RecalculateOrder(ctx context.Context, in OrderInput) (*OrderCalculation, error) {
	start := time.Now()

	calc, err := e.recalculate(ctx, in)
	e.metrics.RecordCalculation(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.persist(ctx, calc); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("order recalculated",
		slog.String("order", in.Order.ID.String()),
		slog.Int("positions", len(calc.Positions)),
		slog.Int("discounts", len(calc.Discounts)),
		slog.Int64("total", calc.Sheet.Total().Amount),
		slog.Duration("elapsed", time.Since(start)),
	)

	return calc, nil
}

func (e *Engine) recalculate(ctx context.Context, in OrderInput) (*OrderCalculation, error) {
	existing, err := e.currentDiscounts(ctx, in)
	if err != nil {
		return nil, err
	}

	dctx := discount.Context{Order: in.Order, User: in.User}
	reconciled := e.discounts.Reconcile(ctx, dctx, existing)
	e.metrics.RecordDiscountsDropped(droppedCount(existing, reconciled))

	resolved := e.discounts.Resolve(reconciled)

	positions, err := e.pricePositions(ctx, in, resolved)
	if err != nil {
		return nil, err
	}

	var deliverySheet *calculation.Sheet
	if in.Delivery != nil {
		deliverySheet, err = e.deliveries.RebuildCalculation(ctx, DeliveryPricingContext{
			Order:     in.Order,
			User:      in.User,
			Delivery:  *in.Delivery,
			Discounts: resolved,
		})
		if err != nil {
			return nil, fmt.Errorf("delivery %s: %w", in.Delivery.ID, err)
		}
	}

	var paymentSheet *calculation.Sheet
	if in.Payment != nil {
		paymentSheet, err = e.payments.RebuildCalculation(ctx, PaymentPricingContext{
			Order:     in.Order,
			User:      in.User,
			Payment:   *in.Payment,
			Discounts: resolved,
		})
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", in.Payment.ID, err)
		}
	}

	orderSheet, err := e.orders.RebuildCalculation(ctx, OrderPricingContext{
		Order:         in.Order,
		User:          in.User,
		Positions:     positions,
		Delivery:      in.Delivery,
		DeliverySheet: deliverySheet,
		Payment:       in.Payment,
		PaymentSheet:  paymentSheet,
		Discounts:     resolved,
	})
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", in.Order.ID, err)
	}

	if err := orderSheet.Validate(); err != nil {
		e.logger.Error("order calculation violates invariants",
			slog.String("order", in.Order.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return &OrderCalculation{
		Order:         in.Order,
		Sheet:         orderSheet,
		Positions:     positions,
		DeliverySheet: deliverySheet,
		PaymentSheet:  paymentSheet,
		Discounts:     fillDiscountTotals(reconciled, orderSheet, positions),
	}, nil
}

func (e *Engine) pricePositions(ctx context.Context, in OrderInput, resolved []discount.Resolved) ([]PricedPosition, error) {
	positions := make([]PricedPosition, len(in.Positions))
	errs := make([]error, len(in.Positions))

	var wg sync.WaitGroup
	for i, pos := range in.Positions {
		wg.Add(1)

		go func(i int, pos commerce.OrderPosition) {
			defer wg.Done()

			sheet, err := e.products.RebuildCalculation(ctx, ProductPricingContext{
				Product:   pos.Product,
				Quantity:  pos.Quantity,
				Currency:  in.Order.CurrencyCode,
				Country:   in.Order.CountryCode,
				User:      in.User,
				Discounts: resolved,
			})
			if err != nil {
				errs[i] = fmt.Errorf("position %s: %w", pos.ID, err)

				return
			}

			positions[i] = PricedPosition{Position: pos, Sheet: sheet}
		}(i, pos)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return positions, nil
}

// ApplyDiscountCode attaches the discount behind code to the order and
// recalculates. Returns ErrDiscountCodeInvalid when no adapter takes the
// code and ErrDiscountAlreadyApplied when the code is already attached.
func (e *Engine) ApplyDiscountCode(ctx context.Context, in OrderInput, code string) (*OrderCalculation, error) {
	existing, err := e.currentDiscounts(ctx, in)
	if err != nil {
		return nil, err
	}

	applied, err := e.discounts.ResolveByCode(ctx, discount.Context{Order: in.Order, User: in.User}, code)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", in.Order.ID, err)
	}

	for _, ex := range existing {
		if ex.DiscountKey == applied.DiscountKey && strings.EqualFold(ex.Code, applied.Code) {
			return nil, fmt.Errorf("order %s code %s: %w", in.Order.ID, applied.Code, ErrDiscountAlreadyApplied)
		}
	}

	in.Discounts = append(append([]discount.Applied(nil), existing...), applied)

	calc, err := e.RecalculateOrder(ctx, in)
	if err != nil {
		return nil, err
	}

	e.metrics.RecordDiscountsApplied(1)

	return calc, nil
}

// RemoveDiscount detaches an applied discount from the order and
// recalculates. System-triggered discounts and discounts whose adapter
// forbids manual removal yield ErrDiscountNotRemovable.
func (e *Engine) RemoveDiscount(ctx context.Context, in OrderInput, discountID id.ID) (*OrderCalculation, error) {
	existing, err := e.currentDiscounts(ctx, in)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, ex := range existing {
		if ex.ID.String() == discountID.String() {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("order %s discount %s: %w", in.Order.ID, discountID, ErrDiscountNotFound)
	}

	target := existing[idx]
	if target.Trigger == discount.TriggerSystem || !e.discounts.ManualRemovalAllowed(target) {
		return nil, fmt.Errorf("order %s discount %s: %w", in.Order.ID, target.DiscountKey, ErrDiscountNotRemovable)
	}

	remaining := make([]discount.Applied, 0, len(existing)-1)
	remaining = append(remaining, existing[:idx]...)
	remaining = append(remaining, existing[idx+1:]...)
	in.Discounts = remaining

	return e.RecalculateOrder(ctx, in)
}

// OrderPricing returns the persisted pricing sheet of an order without
// recalculating. Requires a store.
func (e *Engine) OrderPricing(ctx context.Context, orderID id.ID) (*calculation.Sheet, error) {
	if e.store == nil {
		return nil, ErrStoreNotConfigured
	}

	rec, err := e.store.OrderCalculation(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNoCalculation)
	}
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}

	return calculation.NewSheet(rec.CurrencyCode, rec.Rows...), nil
}

// AppliedDiscounts returns the persisted applied discounts of an order.
// Requires a store.
func (e *Engine) AppliedDiscounts(ctx context.Context, orderID id.ID) ([]discount.Applied, error) {
	if e.store == nil {
		return nil, ErrStoreNotConfigured
	}

	return e.store.AppliedDiscounts(ctx, orderID)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

func (e *Engine) currentDiscounts(ctx context.Context, in OrderInput) ([]discount.Applied, error) {
	if in.Discounts != nil {
		return in.Discounts, nil
	}
	if e.store == nil {
		return nil, nil
	}

	list, err := e.store.AppliedDiscounts(ctx, in.Order.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("order %s: %w", in.Order.ID, err)
	}

	return list, nil
}

func (e *Engine) persist(ctx context.Context, calc *OrderCalculation) error {
	rec := store.OrderCalculation{
		OrderID:      calc.Order.ID,
		CurrencyCode: calc.Sheet.Currency(),
		Rows:         calc.Sheet.Rows(),
		CalculatedAt: time.Now().UTC(),
	}
	if err := e.store.SaveOrderCalculation(ctx, rec); err != nil {
		return fmt.Errorf("order %s: save calculation: %w", calc.Order.ID, err)
	}

	if err := e.store.SaveAppliedDiscounts(ctx, calc.Order.ID, calc.Discounts); err != nil {
		return fmt.Errorf("order %s: save discounts: %w", calc.Order.ID, err)
	}

	return nil
}

// fillDiscountTotals computes each discount's full gross effect across the
// order sheet and every position sheet.
func fillDiscountTotals(discounts []discount.Applied, orderSheet *calculation.Sheet, positions []PricedPosition) []discount.Applied {
	out := make([]discount.Applied, len(discounts))
	copy(out, discounts)

	for i := range out {
		total := orderSheet.DiscountSum(out[i].ID.String())
		for _, p := range positions {
			total = total.Add(p.Sheet.DiscountSum(out[i].ID.String()))
		}

		out[i].Total = total
	}

	return out
}

func droppedCount(existing, kept []discount.Applied) int {
	keptIDs := make(map[string]bool, len(kept))
	for _, k := range kept {
		keptIDs[k.ID.String()] = true
	}

	dropped := 0
	for _, ex := range existing {
		if !keptIDs[ex.ID.String()] {
			dropped++
		}
	}

	return dropped
}
