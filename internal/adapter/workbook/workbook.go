// Package workbook exports analysis tables as Excel workbooks.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/shooting-analytics/internal/analysis"
)

// Sheet names.
const (
	SummarySheet     = "Summary"
	ContingencySheet = "Contingency"
	ExpectedSheet    = "Expected"
	TestSheet        = "ChiSquare"
)

// WriteSummary saves the table summary to path, statistics down column A and
// one frame column per spreadsheet column.
func WriteSummary(path string, s analysis.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for j, col := range s.Columns {
		if err := setCell(f, SummarySheet, j+2, 1, col); err != nil {
			return err
		}
	}
	for i, st := range analysis.SummaryStats {
		if err := setCell(f, SummarySheet, 1, i+2, st); err != nil {
			return err
		}
		for j, col := range s.Columns {
			if err := setCell(f, SummarySheet, j+2, i+2, s.Value(col, st)); err != nil {
				return err
			}
		}
	}
	if err := widen(f, SummarySheet, len(s.Columns)+1, 16); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// WriteContingency saves the observed and expected tables plus the test
// outcome on separate sheets.
func WriteContingency(path, rowTitle, colTitle string, ct analysis.CrossTab, res analysis.ChiSquareResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ContingencySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ExpectedSheet); err != nil {
		return fmt.Errorf("add sheet %s: %w", ExpectedSheet, err)
	}
	if _, err := f.NewSheet(TestSheet); err != nil {
		return fmt.Errorf("add sheet %s: %w", TestSheet, err)
	}

	corner := rowTitle + " \\ " + colTitle
	observed := func(i, j int) any { return ct.Counts[i][j] }
	expected := func(i, j int) any { return res.Expected[i][j] }
	if err := writeGrid(f, ContingencySheet, corner, ct, observed); err != nil {
		return err
	}
	if err := writeGrid(f, ExpectedSheet, corner, ct, expected); err != nil {
		return err
	}

	rows := [][2]any{
		{"Chi-squared statistic", res.Statistic},
		{"Degrees of freedom", res.DOF},
		{"P-value", res.PValue},
		{"Alpha", res.Alpha},
		{"Significant", res.Significant},
	}
	for i, r := range rows {
		if err := setCell(f, TestSheet, 1, i+1, r[0]); err != nil {
			return err
		}
		if err := setCell(f, TestSheet, 2, i+1, r[1]); err != nil {
			return err
		}
	}
	if err := widen(f, TestSheet, 2, 24); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeGrid(f *excelize.File, sheet, corner string, ct analysis.CrossTab, value func(i, j int) any) error {
	if err := setCell(f, sheet, 1, 1, corner); err != nil {
		return err
	}
	for j, c := range ct.Cols {
		if err := setCell(f, sheet, j+2, 1, c); err != nil {
			return err
		}
	}
	for i, r := range ct.Rows {
		if err := setCell(f, sheet, 1, i+2, r); err != nil {
			return err
		}
		for j := range ct.Cols {
			if err := setCell(f, sheet, j+2, i+2, value(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func widen(f *excelize.File, sheet string, cols int, width float64) error {
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return fmt.Errorf("column %d: %w", cols, err)
	}
	if err := f.SetColWidth(sheet, "A", last, width); err != nil {
		return fmt.Errorf("set column width on %s: %w", sheet, err)
	}
	return nil
}
