package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/googlesheets-ru/championship-r7-2025/internal/aggregate"
	"github.com/googlesheets-ru/championship-r7-2025/internal/ranking"
)

func TestAssemble(t *testing.T) {
	res := aggregate.Result{
		Categories: map[string]aggregate.GroupStats{
			"electronics": {Count: 3, TotalPrice: 300, AvgPrice: 100},
			"books":       {Count: 1, TotalPrice: 20, AvgPrice: 20},
		},
		Brands: map[string]aggregate.GroupStats{
			"Acme": {Count: 4, TotalPrice: 320, AvgPrice: 80},
		},
	}

	rep := Assemble("job-1", "January sales", res, ranking.NewEngine())

	require.Equal(t, "job-1", rep.ID)
	require.Equal(t, "January sales", rep.Title)
	require.False(t, rep.GeneratedAt.IsZero())
	require.Equal(t, LabelCategories, rep.Category.Label)
	require.Equal(t, LabelBrands, rep.Brand.Label)

	require.Equal(t, "electronics", rep.Category.ByCount.Top[0].Key)
	require.Equal(t, "electronics", rep.Category.ByAvgPrice.Top[0].Key)
	require.Len(t, rep.Category.ByCount.Table, 2)
	require.Equal(t, "books", rep.Category.ByCount.Table[0].Key, "table is alphabetical")
	require.Equal(t, "Acme", rep.Brand.ByCount.Top[0].Key)
}

func TestAssemble_EmptyResult(t *testing.T) {
	res := aggregate.Result{
		Categories: map[string]aggregate.GroupStats{},
		Brands:     map[string]aggregate.GroupStats{},
	}
	rep := Assemble("job-2", "empty", res, ranking.NewEngine())
	require.Empty(t, rep.Category.ByCount.Top)
	require.Empty(t, rep.Brand.ByAvgPrice.Table)
}
