// Package ranking orders aggregated groups into the report's top lists and
// display tables.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/googlesheets-ru/championship-r7-2025/config"
	"github.com/googlesheets-ru/championship-r7-2025/internal/aggregate"
)

// Metric selects which GroupStats field a ranking pass orders by.
type Metric string

const (
	ByCount    Metric = "count"
	ByAvgPrice Metric = "avg_price"
)

// Value extracts the metric from stats.
func (m Metric) Value(s aggregate.GroupStats) float64 {
	if m == ByAvgPrice {
		return s.AvgPrice
	}
	return float64(s.Count)
}

// Entry pairs a group key with its accumulated stats.
type Entry struct {
	Key   string
	Stats aggregate.GroupStats
}

// Ranking is the output of one (dimension, metric) pass.
//
// Top holds the highest-metric groups in strictly descending metric order,
// ties broken by ascending key so the order is deterministic. Table holds
// the TableSize highest-metric groups re-sorted alphabetically by key; the
// metric decides membership only, never the final row order.
type Ranking struct {
	Top   []Entry
	Table []Entry
}

// Engine produces rankings from an immutable view of a dimension map. Every
// call sorts its own snapshot of the keys, so independent passes over the
// same map can never observe each other's intermediate order.
type Engine struct {
	TopSize   int
	TableSize int

	collator *collate.Collator
}

// NewEngine returns an engine with the default report shape and a neutral
// locale-aware collator for the alphabetical table sort.
func NewEngine() *Engine {
	return &Engine{
		TopSize:   config.DefaultTopSize,
		TableSize: config.DefaultTableSize,
		collator:  collate.New(language.Und),
	}
}

// Rank orders one dimension map by the metric. An empty map yields empty
// lists.
func (e *Engine) Rank(groups map[string]aggregate.GroupStats, metric Metric) Ranking {
	sorted := make([]Entry, 0, len(groups))
	for k, s := range groups {
		sorted = append(sorted, Entry{Key: k, Stats: s})
	}
	sort.Slice(sorted, func(i, j int) bool {
		vi, vj := metric.Value(sorted[i].Stats), metric.Value(sorted[j].Stats)
		if vi != vj {
			return vi > vj
		}
		return sorted[i].Key < sorted[j].Key
	})

	// Top and Table get independent copies: the table's alphabetical
	// re-sort must not disturb the metric order the top list shows.
	top := append([]Entry(nil), sorted[:min(e.TopSize, len(sorted))]...)

	table := append([]Entry(nil), sorted[:min(e.TableSize, len(sorted))]...)
	sort.SliceStable(table, func(i, j int) bool {
		return e.collator.CompareString(table[i].Key, table[j].Key) < 0
	})

	return Ranking{Top: top, Table: table}
}
