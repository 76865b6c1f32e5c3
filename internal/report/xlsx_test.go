package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/ple-import/internal/model"
	"github.com/sells-group/ple-import/internal/promote"
)

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")

	err := WriteSummary(path, []promote.Summary{
		{Form: model.Form5500, Processed: 100, Matched: 60, Inserted: 95, Skipped: 5, EINsBackfilled: 12, Cleared: 100},
		{Form: model.Form5500SF, Processed: 40, Matched: 10, Inserted: 40, Cleared: 40},
	})
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet["Summary"]
	require.True(t, ok)
	// Header, two data rows, totals.
	require.Len(t, sheet.Rows, 4)

	assert.Equal(t, "Form", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "form5500", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "100", sheet.Rows[1].Cells[1].String())

	totals := sheet.Rows[3]
	assert.Equal(t, "Total", totals.Cells[0].String())
	assert.Equal(t, "140", totals.Cells[1].String())
	assert.Equal(t, "135", totals.Cells[3].String())
}

func TestWriteSummary_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	err := WriteSummary(path, nil)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheet["Summary"].Rows, 2)
}
