// Package render lays an assembled report into an xlsx workbook: one sheet
// per dimension with the top lists, the alphabetical tables, and a bar chart
// per table.
package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/googlesheets-ru/championship-r7-2025/internal/ranking"
	"github.com/googlesheets-ru/championship-r7-2025/internal/report"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/errcat"
)

const (
	topCountHeader = "Top 3 by purchases"
	topAvgHeader   = "Top 3 by average price"
	tableHeader    = "Top 15 (A-Z)"

	colKey   = "A"
	colValue = "B"
	colKey2  = "D"
	colVal2  = "E"

	titleRow      = 1
	topCountRow   = 3
	topAvgRow     = 8
	tableHeadRow  = 13
	tableFirstRow = 14
	chartAnchor   = "G3"
	chartAnchor2  = "G20"
)

// WriteFile renders rep and saves the workbook at path.
func WriteFile(rep report.Report, path string) error {
	f, err := build(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return errcat.Wrap(errcat.RenderFailed, fmt.Sprintf("saving %s", path), err)
	}
	return nil
}

func build(rep report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rep.Category.Label); err != nil {
		return nil, errcat.Wrap(errcat.RenderFailed, "renaming sheet", err)
	}
	if _, err := f.NewSheet(rep.Brand.Label); err != nil {
		return nil, errcat.Wrap(errcat.RenderFailed, "adding sheet", err)
	}

	for _, dim := range []report.Dimension{rep.Category, rep.Brand} {
		if err := writeDimension(f, rep.Title, dim); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeDimension(f *excelize.File, title string, dim report.Dimension) error {
	sheet := dim.Label

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return errcat.Wrap(errcat.RenderFailed, "creating title style", err)
	}
	headStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errcat.Wrap(errcat.RenderFailed, "creating header style", err)
	}
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return errcat.Wrap(errcat.RenderFailed, "creating price style", err)
	}

	set := func(cell string, value any) error {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return errcat.Wrap(errcat.RenderFailed, fmt.Sprintf("writing %s!%s", sheet, cell), err)
		}
		return nil
	}

	if err := set(colKey+itoa(titleRow), fmt.Sprintf("%s — %s", title, dim.Label)); err != nil {
		return err
	}
	_ = f.MergeCell(sheet, colKey+itoa(titleRow), colVal2+itoa(titleRow))
	_ = f.SetCellStyle(sheet, colKey+itoa(titleRow), colKey+itoa(titleRow), titleStyle)

	// Top lists: metric order, count first then average price.
	if err := set(colKey+itoa(topCountRow), topCountHeader); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, colKey+itoa(topCountRow), colKey+itoa(topCountRow), headStyle)
	for i, entry := range dim.ByCount.Top {
		row := itoa(topCountRow + 1 + i)
		if err := set(colKey+row, entry.Key); err != nil {
			return err
		}
		if err := set(colValue+row, entry.Stats.Count); err != nil {
			return err
		}
	}

	if err := set(colKey+itoa(topAvgRow), topAvgHeader); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, colKey+itoa(topAvgRow), colKey+itoa(topAvgRow), headStyle)
	for i, entry := range dim.ByAvgPrice.Top {
		row := itoa(topAvgRow + 1 + i)
		if err := set(colKey+row, entry.Key); err != nil {
			return err
		}
		if err := set(colValue+row, entry.Stats.AvgPrice); err != nil {
			return err
		}
		_ = f.SetCellStyle(sheet, colValue+row, colValue+row, priceStyle)
	}

	// Alphabetical tables: membership by metric, order by key.
	if err := writeTable(f, sheet, colKey, colValue, headStyle, 0, "Group", "Purchases", dim.ByCount.Table, func(e ranking.Entry) any { return e.Stats.Count }); err != nil {
		return err
	}
	if err := writeTable(f, sheet, colKey2, colVal2, headStyle, priceStyle, "Group", "Average price", dim.ByAvgPrice.Table, func(e ranking.Entry) any { return e.Stats.AvgPrice }); err != nil {
		return err
	}

	if err := addChart(f, sheet, chartAnchor, colValue, fmt.Sprintf("%s: purchases", dim.Label), len(dim.ByCount.Table), colKey); err != nil {
		return err
	}
	if err := addChart(f, sheet, chartAnchor2, colVal2, fmt.Sprintf("%s: average price", dim.Label), len(dim.ByAvgPrice.Table), colKey2); err != nil {
		return err
	}
	return nil
}

func writeTable(f *excelize.File, sheet, keyCol, valCol string, headStyle, valStyle int, keyHead, valHead string, entries []ranking.Entry, value func(ranking.Entry) any) error {
	if err := f.SetCellValue(sheet, keyCol+itoa(tableHeadRow), keyHead); err != nil {
		return errcat.Wrap(errcat.RenderFailed, "writing table header", err)
	}
	if err := f.SetCellValue(sheet, valCol+itoa(tableHeadRow), valHead); err != nil {
		return errcat.Wrap(errcat.RenderFailed, "writing table header", err)
	}
	_ = f.SetCellStyle(sheet, keyCol+itoa(tableHeadRow), valCol+itoa(tableHeadRow), headStyle)

	for i, entry := range entries {
		row := itoa(tableFirstRow + i)
		if err := f.SetCellValue(sheet, keyCol+row, entry.Key); err != nil {
			return errcat.Wrap(errcat.RenderFailed, "writing table row", err)
		}
		if err := f.SetCellValue(sheet, valCol+row, value(entry)); err != nil {
			return errcat.Wrap(errcat.RenderFailed, "writing table row", err)
		}
		if valStyle != 0 {
			_ = f.SetCellStyle(sheet, valCol+row, valCol+row, valStyle)
		}
	}
	return nil
}

func addChart(f *excelize.File, sheet, anchor, valCol, title string, rows int, keyCol string) error {
	if rows == 0 {
		return nil
	}
	lastRow := tableFirstRow + rows - 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$%d", sheet, valCol, tableHeadRow),
			Categories: fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, keyCol, tableFirstRow, keyCol, lastRow),
			Values:     fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, valCol, tableFirstRow, valCol, lastRow),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if err := f.AddChart(sheet, anchor, chart); err != nil {
		return errcat.Wrap(errcat.RenderFailed, fmt.Sprintf("adding chart %q", title), err)
	}
	return nil
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
