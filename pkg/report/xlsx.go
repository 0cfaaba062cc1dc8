// Package report writes the combined dispense workbook: a styled summary
// sheet, a per-file sheet, and recipe usage charts.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/hydraflow/hydraflow/internal/model"
	"github.com/hydraflow/hydraflow/pkg/aggregate"
	hferrors "github.com/hydraflow/hydraflow/pkg/errors"
)

// Sheet names in the emitted workbook.
const (
	SheetSummary    = "Dispense_Data"
	SheetIndividual = "Individual_Logs"
	SheetCharts     = "Usage_Charts"
)

// DefaultPrefix is the base output filename before the date suffix.
const DefaultPrefix = "Combined_Dispense_Log"

// chartBlockGap is the row distance from a usage table's header to the
// next section title, sized so the inserted chart never overlaps it.
const chartBlockGap = 15

// Config controls workbook placement and naming.
type Config struct {
	// Dir is the output directory. Empty means the working directory.
	Dir string

	// Prefix is the output basename before the date. Empty selects
	// DefaultPrefix.
	Prefix string
}

// Writer emits the three-sheet workbook for an aggregated report.
type Writer struct {
	cfg Config

	// style IDs, populated per workbook by initStyles
	header   int
	rowWhite int
	rowGrey  int
	section  int
}

// NewWriter creates a workbook writer.
func NewWriter(cfg Config) *Writer {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return &Writer{cfg: cfg}
}

// Write renders rep into a new workbook and saves it under a
// collision-free dated name, returning the path written. Save errors are
// fatal; a partial file may remain on disk.
func (w *Writer) Write(rep *aggregate.Report) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(SheetIndividual); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(SheetCharts); err != nil {
		return "", err
	}

	if err := w.initStyles(f); err != nil {
		return "", err
	}
	if err := w.writeSummary(f, rep); err != nil {
		return "", err
	}
	if err := w.writeIndividual(f, rep); err != nil {
		return "", err
	}
	if err := w.writeCharts(f, rep); err != nil {
		return "", err
	}

	// Tag the workbook with the run that produced it.
	now := time.Now()
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:    "hydraflow",
		Title:      "Combined Dispense Log",
		Identifier: uuid.NewString(),
		Created:    now.UTC().Format(time.RFC3339),
	}); err != nil {
		return "", err
	}

	path := UniquePath(w.cfg.Dir, w.cfg.Prefix, now)
	if err := f.SaveAs(path); err != nil {
		return "", hferrors.WriteFailed(path, err)
	}
	return path, nil
}

// UniquePath returns the dated workbook path under dir, appending _1,
// _2, ... while a file with that name already exists. The check-then-use
// race is tolerated; this is a batch tool.
func UniquePath(dir, prefix string, day time.Time) string {
	base := fmt.Sprintf("%s_%s", prefix, day.Format("2006-01-02"))
	path := filepath.Join(dir, base+".xlsx")
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.xlsx", base, n))
	}
}

func (w *Writer) initStyles(f *excelize.File) error {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var err error
	w.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
		Border:    borders,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	w.rowWhite, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFFFF"}},
		Border: borders,
	})
	if err != nil {
		return err
	}
	w.rowGrey, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
		Border: borders,
	})
	if err != nil {
		return err
	}
	w.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CFE2F3"}},
	})
	return err
}

// writeSummary fills Dispense_Data: all cycles under a frozen, filtered
// header, with column widths fit to content.
func (w *Writer) writeSummary(f *excelize.File, rep *aggregate.Report) error {
	if err := w.writeHeader(f, SheetSummary, 1, model.Columns); err != nil {
		return err
	}

	widths := make([]int, len(model.Columns))
	for i, name := range model.Columns {
		widths[i] = len(name)
	}

	for i, cyc := range rep.All {
		row := i + 2
		// first data row white, then alternating
		style := w.rowGrey
		if (i+1)%2 == 1 {
			style = w.rowWhite
		}
		for c, v := range cyc.Row() {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetSummary, cell, v); err != nil {
				return err
			}
			if n := len(fmt.Sprint(v)); n > widths[c] {
				widths[c] = n
			}
		}
		if err := w.styleRow(f, SheetSummary, row, len(model.Columns), style); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetSummary, col, col, float64(width+2)); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetSummary, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	filterEnd, err := excelize.CoordinatesToCellName(len(model.Columns), len(rep.All)+1)
	if err != nil {
		return err
	}
	return f.AutoFilter(SheetSummary, "A1:"+filterEnd, nil)
}

// writeIndividual fills Individual_Logs: one titled block per input
// file, blank rows between blocks.
func (w *Writer) writeIndividual(f *excelize.File, rep *aggregate.Report) error {
	row := 1
	for _, fr := range rep.Files {
		if err := w.writeSection(f, SheetIndividual, row, fr.File); err != nil {
			return err
		}
		row++

		if err := w.writeHeader(f, SheetIndividual, row, model.Columns); err != nil {
			return err
		}

		for i, cyc := range fr.Cycles {
			style := w.rowGrey
			if i%2 == 1 {
				style = w.rowWhite
			}
			for c, v := range cyc.Row() {
				cell, err := excelize.CoordinatesToCellName(c+1, row+1+i)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(SheetIndividual, cell, v); err != nil {
					return err
				}
			}
			if err := w.styleRow(f, SheetIndividual, row+1+i, len(model.Columns), style); err != nil {
				return err
			}
		}

		row += len(fr.Cycles) + 3
	}
	return nil
}

// writeCharts fills Usage_Charts: per-file recipe counts with a column
// chart each, then the combined table and chart.
func (w *Writer) writeCharts(f *excelize.File, rep *aggregate.Report) error {
	row := 1
	for _, fr := range rep.Files {
		next, err := w.writeUsageBlock(f, row, fr.File, "Count",
			fmt.Sprintf("Recipe Usage - %s", fr.File), fr.Usage)
		if err != nil {
			return err
		}
		row = next
	}

	_, err := w.writeUsageBlock(f, row, "All Files Combined", "Total Count",
		"Recipe Usage Across All Files", rep.Combined)
	return err
}

// writeUsageBlock writes one titled Recipe/Count table starting at row
// and inserts its column chart beside the data. It returns the starting
// row for the next block.
func (w *Writer) writeUsageBlock(f *excelize.File, row int, title, countLabel, chartTitle string, usage []aggregate.RecipeCount) (int, error) {
	titleRow := row
	if err := w.writeSection(f, SheetCharts, row, title); err != nil {
		return 0, err
	}
	row++

	if err := w.writeHeader(f, SheetCharts, row, []string{"Recipe", countLabel}); err != nil {
		return 0, err
	}

	for i, rc := range usage {
		cellA, err := excelize.CoordinatesToCellName(1, row+1+i)
		if err != nil {
			return 0, err
		}
		cellB, err := excelize.CoordinatesToCellName(2, row+1+i)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(SheetCharts, cellA, rc.Recipe); err != nil {
			return 0, err
		}
		if err := f.SetCellValue(SheetCharts, cellB, rc.Count); err != nil {
			return 0, err
		}
		if err := w.styleRow(f, SheetCharts, row+1+i, 2, w.rowWhite); err != nil {
			return 0, err
		}
	}

	if len(usage) > 0 {
		anchor, err := excelize.CoordinatesToCellName(4, row)
		if err != nil {
			return 0, err
		}
		if err := f.AddChart(SheetCharts, anchor, &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$A$%d", SheetCharts, titleRow),
				Categories: fmt.Sprintf("%s!$A$%d:$A$%d", SheetCharts, row+1, row+len(usage)),
				Values:     fmt.Sprintf("%s!$B$%d:$B$%d", SheetCharts, row+1, row+len(usage)),
			}},
			Title: []excelize.RichTextRun{{Text: chartTitle}},
			XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Recipe Index"}}},
			YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: countLabel}}},
			PlotArea: excelize.ChartPlotArea{
				ShowVal: true,
			},
			Legend: excelize.ChartLegend{Position: "bottom"},
		}); err != nil {
			return 0, err
		}
	}

	return row + len(usage) + chartBlockGap, nil
}

// writeSection writes a block title cell in the first column of row.
func (w *Writer) writeSection(f *excelize.File, sheet string, row int, title string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, title); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, w.section)
}

// writeHeader writes a styled header row at row.
func (w *Writer) writeHeader(f *excelize.File, sheet string, row int, names []string) error {
	for c, name := range names {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	return w.styleRow(f, sheet, row, len(names), w.header)
}

// styleRow applies style to the first n columns of row.
func (w *Writer) styleRow(f *excelize.File, sheet string, row, n, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(n, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}
