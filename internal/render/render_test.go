package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/googlesheets-ru/championship-r7-2025/internal/aggregate"
	"github.com/googlesheets-ru/championship-r7-2025/internal/ranking"
	"github.com/googlesheets-ru/championship-r7-2025/internal/report"
)

func sampleReport(t *testing.T) report.Report {
	t.Helper()
	res := aggregate.Result{
		Categories: map[string]aggregate.GroupStats{
			"electronics": {Count: 2, TotalPrice: 498.99, AvgPrice: 249.495},
			"books":       {Count: 1, TotalPrice: 20, AvgPrice: 20},
		},
		Brands: map[string]aggregate.GroupStats{
			"Acme": {Count: 1, TotalPrice: 199.99, AvgPrice: 199.99},
			"Zeta": {Count: 1, TotalPrice: 299, AvgPrice: 299},
		},
	}
	return report.Assemble("job-1", "January", res, ranking.NewEngine())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteFile(sampleReport(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.ElementsMatch(t, []string{report.LabelCategories, report.LabelBrands}, sheets)

	title, err := f.GetCellValue(report.LabelCategories, "A1")
	require.NoError(t, err)
	require.Contains(t, title, "January")

	// Top-by-count block keeps metric order.
	topKey, err := f.GetCellValue(report.LabelCategories, "A4")
	require.NoError(t, err)
	require.Equal(t, "electronics", topKey)
	topVal, err := f.GetCellValue(report.LabelCategories, "B4")
	require.NoError(t, err)
	require.Equal(t, "2", topVal)

	// Count table comes back alphabetical.
	first, err := f.GetCellValue(report.LabelCategories, "A14")
	require.NoError(t, err)
	require.Equal(t, "books", first)
	second, err := f.GetCellValue(report.LabelCategories, "A15")
	require.NoError(t, err)
	require.Equal(t, "electronics", second)

	brandTop, err := f.GetCellValue(report.LabelBrands, "A4")
	require.NoError(t, err)
	require.Equal(t, "Acme", brandTop, "count tie breaks on key")
}

func TestWriteFile_EmptyReport(t *testing.T) {
	res := aggregate.Result{
		Categories: map[string]aggregate.GroupStats{},
		Brands:     map[string]aggregate.GroupStats{},
	}
	rep := report.Assemble("job-2", "empty", res, ranking.NewEngine())

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteFile(rep, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	head, err := f.GetCellValue(report.LabelBrands, "A13")
	require.NoError(t, err)
	require.Equal(t, "Group", head)
}
