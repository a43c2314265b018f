// Package observability defines the metric hooks the pricing engine emits
// into. The engine depends only on the small interfaces here; a host wires
// them to its metrics backend (Forge, Prometheus, ...) or leaves them nil.
package observability

import "time"

// Counter is a monotonically increasing counter.
type Counter interface {
	Inc()
	Add(delta float64)
}

// Histogram records a distribution of observed values.
type Histogram interface {
	Observe(value float64)
}

// MetricFactory creates named metrics. Implementations decide naming
// conventions and label handling of the backing system.
type MetricFactory interface {
	Counter(name string, labels ...string) Counter
	Histogram(name string, labels ...string) Histogram
}

// Metrics bundles the instruments the pricing engine reports to. All fields
// may be nil; the recording helpers tolerate that.
type Metrics struct {
	CalculationsTotal   Counter
	CalculationFailures Counter
	DiscountsApplied    Counter
	DiscountsDropped    Counter
	CalculationDuration Histogram
}

// NewMetrics builds the engine's metric set from a factory.
func NewMetrics(factory MetricFactory) *Metrics {
	if factory == nil {
		return nil
	}

	return &Metrics{
		CalculationsTotal:   factory.Counter("pricing_calculations_total"),
		CalculationFailures: factory.Counter("pricing_calculation_failures_total"),
		DiscountsApplied:    factory.Counter("pricing_discounts_applied_total"),
		DiscountsDropped:    factory.Counter("pricing_discounts_dropped_total"),
		CalculationDuration: factory.Histogram("pricing_calculation_duration_seconds"),
	}
}

// RecordCalculation registers one finished pricing run.
func (m *Metrics) RecordCalculation(elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	if m.CalculationsTotal != nil {
		m.CalculationsTotal.Inc()
	}
	if err != nil && m.CalculationFailures != nil {
		m.CalculationFailures.Inc()
	}
	if err == nil && m.CalculationDuration != nil {
		m.CalculationDuration.Observe(elapsed.Seconds())
	}
}

// RecordDiscountsApplied registers discounts attached during a run.
func (m *Metrics) RecordDiscountsApplied(n int) {
	if m == nil || m.DiscountsApplied == nil || n <= 0 {
		return
	}

	m.DiscountsApplied.Add(float64(n))
}

// RecordDiscountsDropped registers discounts removed during reconciliation.
func (m *Metrics) RecordDiscountsDropped(n int) {
	if m == nil || m.DiscountsDropped == nil || n <= 0 {
		return
	}

	m.DiscountsDropped.Add(float64(n))
}
