package compare

import (
	"context"
	"sync"
	"time"

	"supermarket-comparator/internal/catalog"
	"supermarket-comparator/internal/common/events"
	"supermarket-comparator/internal/common/logger"
	"supermarket-comparator/internal/common/metrics"
	"supermarket-comparator/internal/common/observability"
	"supermarket-comparator/internal/geo"
	"supermarket-comparator/internal/list"
)

// Engine runs comparisons against a fixed catalog. One instance per session,
// passed explicitly to whoever needs it; there is no package-level singleton.
//
// A run must not be re-entered: a Compare call arriving while another is in
// flight gets the previous outcome back, logged as a warning.
type Engine struct {
	catalog *catalog.Catalog
	weights Weights
	mode    geo.Mode
	events  *events.Bus
	obs     *observability.Observability
	logger  logger.Logger

	mu        sync.Mutex
	comparing bool
	last      *Outcome
}

// NewEngine wires an engine. bus and obs may be nil.
func NewEngine(cat *catalog.Catalog, weights Weights, mode geo.Mode, bus *events.Bus, obs *observability.Observability, log logger.Logger) *Engine {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if mode == "" {
		mode = geo.ModeDriving
	}
	return &Engine{
		catalog: cat,
		weights: weights,
		mode:    mode,
		events:  bus,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "comparison-engine"}),
	}
}

// Compare prices the shopping list against every store and aggregates
// metrics and recommendations. userLoc is optional; without it distance and
// travel time stay absent everywhere.
func (e *Engine) Compare(ctx context.Context, items []list.Item, userLoc *geo.Coordinate) (*Outcome, error) {
	e.mu.Lock()
	if e.comparing {
		stale := e.last
		e.mu.Unlock()
		e.logger.Warn("comparison already in progress, returning previous result", nil)
		return stale, nil
	}
	e.comparing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.comparing = false
		e.mu.Unlock()
	}()

	start := time.Now()
	e.publish(events.ComparisonStarted, len(items))

	if err := ValidateList(items); err != nil {
		e.recordRun(ctx, start, "validation_failed")
		e.publish(events.ComparisonFailed, err)
		e.logger.WithError(err).Error("shopping list rejected", map[string]interface{}{
			"items": len(items),
		})
		return nil, err
	}

	outcome := &Outcome{
		Timestamp:  time.Now().UTC(),
		StoreOrder: e.catalog.StoreNames(),
		Results:    make(map[string]*MarketResult, len(e.catalog.Stores)),
	}

	missing := 0
	for i := range e.catalog.Stores {
		store := &e.catalog.Stores[i]
		result := EvaluateStore(store, items, userLoc, e.mode)
		outcome.Results[store.Name] = result
		missing += len(result.MissingProducts)
	}

	outcome.Metrics = ComputeMetrics(outcome.Results, outcome.StoreOrder, e.weights)
	outcome.Recommendations = BuildRecommendations(outcome.Results, outcome.StoreOrder, outcome.Metrics)

	e.mu.Lock()
	e.last = outcome
	e.mu.Unlock()

	metrics.MissingProducts.Add(float64(missing))
	e.recordRun(ctx, start, "success")
	e.publish(events.ComparisonCompleted, outcome)

	e.logger.Info("comparison completed", map[string]interface{}{
		"stores":   len(outcome.StoreOrder),
		"items":    len(items),
		"missing":  missing,
		"duration": time.Since(start).String(),
	})

	return outcome, nil
}

// OptimalCombination searches 1-2 store allocations over the last or given
// outcome. Nil when no candidate qualifies.
func (e *Engine) OptimalCombination(o *Outcome) *Combination {
	if o == nil {
		e.mu.Lock()
		o = e.last
		e.mu.Unlock()
	}
	if o == nil {
		return nil
	}
	return FindOptimalCombination(o.Results, o.StoreOrder, e.mode, o.Metrics.AverageDistance)
}

// DetailedStats builds the deep-dive view over the given outcome, or the
// last one when nil.
func (e *Engine) DetailedStats(o *Outcome) *DetailedStats {
	if o == nil {
		e.mu.Lock()
		o = e.last
		e.mu.Unlock()
	}
	if o == nil {
		return nil
	}
	stats := BuildDetailedStats(o)
	return &stats
}

// LastOutcome returns the most recent completed outcome, if any.
func (e *Engine) LastOutcome() *Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Reset drops the retained outcome.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.last = nil
	e.comparing = false
	e.mu.Unlock()
}

func (e *Engine) publish(t events.Type, payload interface{}) {
	if e.events != nil {
		e.events.Publish(t, payload)
	}
}

func (e *Engine) recordRun(ctx context.Context, start time.Time, status string) {
	elapsed := time.Since(start)
	metrics.ComparisonRuns.WithLabelValues(status).Inc()
	metrics.ComparisonDuration.Observe(elapsed.Seconds())
	if e.obs != nil {
		e.obs.RecordComparisonProcessed(ctx, status)
		e.obs.RecordComparisonDuration(ctx, elapsed, status)
	}
}
