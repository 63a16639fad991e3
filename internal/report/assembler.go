// Package report packages ranking output into the structure handed to the
// rendering collaborator.
package report

import (
	"time"

	"github.com/googlesheets-ru/championship-r7-2025/internal/aggregate"
	"github.com/googlesheets-ru/championship-r7-2025/internal/ranking"
)

// Dimension labels used on report surfaces (sheet names, chart titles).
const (
	LabelCategories = "Categories"
	LabelBrands     = "Brands"
)

// Dimension carries both rankings for one grouping dimension.
type Dimension struct {
	Label      string
	ByCount    ranking.Ranking
	ByAvgPrice ranking.Ranking
}

// Report is the boundary object consumed by the renderer. It exposes the
// ordered sequences only; visual placement belongs to the renderer.
type Report struct {
	ID          string
	Title       string
	GeneratedAt time.Time
	Category    Dimension
	Brand       Dimension
}

// Assemble runs one ranking pass per (dimension, metric) pair — four in
// total — and bundles the results under the given title. No computation
// happens here beyond invoking the ranking engine.
func Assemble(id, title string, res aggregate.Result, eng *ranking.Engine) Report {
	return Report{
		ID:          id,
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Category: Dimension{
			Label:      LabelCategories,
			ByCount:    eng.Rank(res.Categories, ranking.ByCount),
			ByAvgPrice: eng.Rank(res.Categories, ranking.ByAvgPrice),
		},
		Brand: Dimension{
			Label:      LabelBrands,
			ByCount:    eng.Rank(res.Brands, ranking.ByCount),
			ByAvgPrice: eng.Rank(res.Brands, ranking.ByAvgPrice),
		},
	}
}
