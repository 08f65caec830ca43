package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"skynull/app"
)

// ExcelWriter renders a batch of significance reports into one workbook: a
// summary sheet with one row per hypothesis, plus a sheet per report holding
// the full null ensemble for inspection or re-plotting.
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

var summaryHeaders = []string{
	"Hypothesis", "Observed", "Direction", "PValue", "Verdict",
	"NullMean", "NullStdDev", "NullP5", "NullP95",
	"Samples", "Fallbacks", "RunID",
}

// Write saves the workbook at path. Sheet names derive from hypothesis names,
// truncated to the format's 31-character limit.
func (w *ExcelWriter) Write(path string, reports []*app.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summary, cell, h); err != nil {
			return fmt.Errorf("write summary header: %w", err)
		}
	}

	for rowIdx, r := range reports {
		row := []interface{}{
			r.Hypothesis,
			r.Observed,
			r.Direction.String(),
			r.PValue,
			string(r.Verdict.Status),
			r.NullSummary.Mean,
			r.NullSummary.StdDev,
			r.NullSummary.Percentile5,
			r.NullSummary.Percentile95,
			r.SampleCount,
			r.FallbackCount,
			r.RunID.String(),
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx+2)
			if err := f.SetCellValue(summary, cell, v); err != nil {
				return fmt.Errorf("write summary row: %w", err)
			}
		}
		if err := w.writeEnsemble(f, r); err != nil {
			return err
		}
	}

	if idx, err := f.GetSheetIndex(summary); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func (w *ExcelWriter) writeEnsemble(f *excelize.File, r *app.Report) error {
	sheet := sheetName(r.Hypothesis)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := f.SetCellValue(sheet, "A1", "Sample"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "Statistic"); err != nil {
		return err
	}
	for i, v := range r.Nulls {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(sheet, cellA, i); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellB, v); err != nil {
			return err
		}
	}
	return nil
}

func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
