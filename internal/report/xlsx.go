// Package report renders import run results as XLSX workbooks for the
// operations team.
package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/ple-import/internal/promote"
)

// summaryHeader is the column order of the Summary sheet.
var summaryHeader = []string{
	"Form", "Processed", "Matched", "Inserted", "Skipped", "EINs Backfilled", "Staging Cleared",
}

// WriteSummary writes one promotion summary per row to an XLSX file.
func WriteSummary(path string, summaries []promote.Summary) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	header := sheet.AddRow()
	for _, name := range summaryHeader {
		header.AddCell().SetString(name)
	}

	for _, s := range summaries {
		row := sheet.AddRow()
		row.AddCell().SetString(string(s.Form))
		row.AddCell().SetInt(s.Processed)
		row.AddCell().SetInt(s.Matched)
		row.AddCell().SetInt(s.Inserted)
		row.AddCell().SetInt(s.Skipped)
		row.AddCell().SetInt(s.EINsBackfilled)
		row.AddCell().SetInt64(s.Cleared)
	}

	totals := sheet.AddRow()
	totals.AddCell().SetString("Total")
	totals.AddCell().SetInt(sum(summaries, func(s promote.Summary) int { return s.Processed }))
	totals.AddCell().SetInt(sum(summaries, func(s promote.Summary) int { return s.Matched }))
	totals.AddCell().SetInt(sum(summaries, func(s promote.Summary) int { return s.Inserted }))
	totals.AddCell().SetInt(sum(summaries, func(s promote.Summary) int { return s.Skipped }))
	totals.AddCell().SetInt(sum(summaries, func(s promote.Summary) int { return s.EINsBackfilled }))

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func sum(summaries []promote.Summary, field func(promote.Summary) int) int {
	total := 0
	for _, s := range summaries {
		total += field(s)
	}
	return total
}
