// Package aggregate folds normalized events into per-group purchase
// statistics for the category and brand dimensions.
package aggregate

import (
	"github.com/googlesheets-ru/championship-r7-2025/internal/events"
)

// GroupStats accumulates purchase statistics for one group key.
// AvgPrice is recomputed on every purchase so it equals
// TotalPrice/Count after each update, not only at the end of the pass.
type GroupStats struct {
	Count      int
	TotalPrice float64
	AvgPrice   float64
}

// Result holds one stats map per dimension. Categories are keyed by the
// level-0 category segment, brands by brand name.
type Result struct {
	Categories map[string]GroupStats
	Brands     map[string]GroupStats
}

// Engine is the single-pass accumulator. It owns its Result exclusively
// while events are observed; downstream consumers treat the handed-off
// Result as read-only.
type Engine struct {
	res Result
}

// NewEngine returns an accumulator with empty dimension maps.
func NewEngine() *Engine {
	return &Engine{res: Result{
		Categories: make(map[string]GroupStats),
		Brands:     make(map[string]GroupStats),
	}}
}

// Observe folds one event into both dimensions. Every event creates its
// group entries; only purchases move count and totals. A NaN price poisons
// the group's TotalPrice and AvgPrice from that point on while Count keeps
// advancing; events.Normalizer.StrictPrices rejects such input up front
// when that is not acceptable.
func (e *Engine) Observe(ev events.Event) {
	observe(e.res.Categories, ev.CategoryLv0, ev)
	observe(e.res.Brands, ev.Brand, ev)
}

func observe(dim map[string]GroupStats, key string, ev events.Event) {
	stats := dim[key]
	if ev.EventType == events.TypePurchase {
		stats.Count++
		stats.TotalPrice += ev.Price
		stats.AvgPrice = stats.TotalPrice / float64(stats.Count)
	}
	dim[key] = stats
}

// Result hands off the accumulated maps. The engine performs no further
// mutation after the caller takes them.
func (e *Engine) Result() Result {
	return e.res
}

// Aggregate runs one forward pass over evts. O(n) time over the events,
// O(k) space for k distinct group keys.
func Aggregate(evts []events.Event) Result {
	eng := NewEngine()
	for _, ev := range evts {
		eng.Observe(ev)
	}
	return eng.Result()
}
