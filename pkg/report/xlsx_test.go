package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hydraflow/hydraflow/internal/model"
	"github.com/hydraflow/hydraflow/pkg/aggregate"
)

func sampleReport() *aggregate.Report {
	return aggregate.Build([]aggregate.FileCycles{
		{
			File: "A.TXT",
			Cycles: []model.DispenseCycle{
				{
					LogFile:     "A.TXT",
					StartTime:   "12:00:00",
					RecipeIndex: "H7",
					HydraMS:     1200,
					Additives:   "S: 100ms, T: 50ms",
					Progress:    "48/50 dL",
					ActualLitre: "4.8L",
				},
				{
					LogFile:     "A.TXT",
					RecipeIndex: "H7",
					HydraMS:     900,
					Additives:   "None",
					ActualLitre: "3.0L",
				},
			},
		},
		{
			File: "B.txt",
			Cycles: []model.DispenseCycle{
				{
					LogFile:     "B.txt",
					RecipeIndex: "H2",
					HydraMS:     500,
					Additives:   "Brine: 20ms",
					ActualLitre: "1.0L",
				},
			},
		},
	})
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	w := NewWriter(Config{Dir: dir})
	path, err := w.Write(sampleReport())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	return path
}

func TestWrite_FileNameAndSheets(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	base := filepath.Base(path)
	if !strings.HasPrefix(base, DefaultPrefix+"_") || !strings.HasSuffix(base, ".xlsx") {
		t.Errorf("unexpected output name %q", base)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetIndividual, SheetCharts}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWrite_SummarySheet(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	// header
	for i, name := range model.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		v, err := f.GetCellValue(SheetSummary, cell)
		if err != nil {
			t.Fatal(err)
		}
		if v != name {
			t.Errorf("header %s = %q, want %q", cell, v, name)
		}
	}

	// first data row is the first cycle of the first file
	checks := map[string]string{
		"A2": "A.TXT",
		"B2": "12:00:00",
		"C2": "H7",
		"D2": "1200",
		"E2": "S: 100ms, T: 50ms",
		"F2": "48/50 dL",
		"G2": "4.8L",
		"A4": "B.txt",
		"C4": "H2",
	}
	for cell, want := range checks {
		v, err := f.GetCellValue(SheetSummary, cell)
		if err != nil {
			t.Fatal(err)
		}
		if v != want {
			t.Errorf("%s = %q, want %q", cell, v, want)
		}
	}
}

func TestWrite_IndividualSheet(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	// file A: title row 1, header row 2, two data rows 3-4; a blank gap,
	// then file B's section title at row 7
	checks := map[string]string{
		"A1": "A.TXT",
		"A2": "LogFile",
		"C3": "H7",
		"C4": "H7",
		"A7": "B.txt",
		"A8": "LogFile",
		"C9": "H2",
	}
	for cell, want := range checks {
		v, err := f.GetCellValue(SheetIndividual, cell)
		if err != nil {
			t.Fatal(err)
		}
		if v != want {
			t.Errorf("%s = %q, want %q", cell, v, want)
		}
	}
}

func TestWrite_ChartsSheet(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	// file A block: title row 1, header row 2, one usage row 3; next
	// block starts chartBlockGap rows below the header
	checks := map[string]string{
		"A1": "A.TXT",
		"A2": "Recipe",
		"B2": "Count",
		"A3": "H7",
		"B3": "2",
	}
	for cell, want := range checks {
		v, err := f.GetCellValue(SheetCharts, cell)
		if err != nil {
			t.Fatal(err)
		}
		if v != want {
			t.Errorf("%s = %q, want %q", cell, v, want)
		}
	}

	// file B block
	bTitle := 2 + 1 + chartBlockGap // 18
	cell, _ := excelize.CoordinatesToCellName(1, bTitle)
	if v, _ := f.GetCellValue(SheetCharts, cell); v != "B.txt" {
		t.Errorf("%s = %q, want B.txt", cell, v)
	}

	// combined block
	combinedTitle := bTitle + 1 + 1 + chartBlockGap // 35
	cell, _ = excelize.CoordinatesToCellName(1, combinedTitle)
	if v, _ := f.GetCellValue(SheetCharts, cell); v != "All Files Combined" {
		t.Errorf("%s = %q, want All Files Combined", cell, v)
	}
	headerCell, _ := excelize.CoordinatesToCellName(2, combinedTitle+1)
	if v, _ := f.GetCellValue(SheetCharts, headerCell); v != "Total Count" {
		t.Errorf("%s = %q, want Total Count", headerCell, v)
	}
	// combined rows sorted lexicographically: H2 before H7
	r1, _ := excelize.CoordinatesToCellName(1, combinedTitle+2)
	if v, _ := f.GetCellValue(SheetCharts, r1); v != "H2" {
		t.Errorf("%s = %q, want H2", r1, v)
	}
}

func TestWrite_RowFillParity(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	styleAt := func(sheet, cell string) int {
		t.Helper()
		id, err := f.GetCellStyle(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellStyle(%s!%s): %v", sheet, cell, err)
		}
		return id
	}

	// header rows carry one shared style on every sheet
	header := styleAt(SheetSummary, "A1")
	if header == 0 {
		t.Fatal("summary header row is unstyled")
	}
	if styleAt(SheetSummary, "G1") != header {
		t.Error("summary header style not applied across all columns")
	}
	if styleAt(SheetIndividual, "A2") != header {
		t.Error("individual sheet header style differs from summary header")
	}
	if styleAt(SheetCharts, "A2") != header {
		t.Error("charts table header style differs from summary header")
	}

	// Dispense_Data alternates starting white: rows 2 and 4 match, row 3 differs
	white := styleAt(SheetSummary, "A2")
	grey := styleAt(SheetSummary, "A3")
	if white == 0 || grey == 0 {
		t.Fatal("summary data rows are unstyled")
	}
	if white == grey {
		t.Fatal("summary data rows do not alternate fills")
	}
	if styleAt(SheetSummary, "A4") != white {
		t.Error("summary row 4 should reuse the row-2 fill")
	}

	// Individual_Logs starts with the grey fill
	if styleAt(SheetIndividual, "A3") != grey {
		t.Error("individual first data row should use the grey fill")
	}
	if styleAt(SheetIndividual, "A4") != white {
		t.Error("individual second data row should use the white fill")
	}

	// chart tables use the white fill for every data row
	if styleAt(SheetCharts, "A3") != white {
		t.Error("chart table data row should use the white fill")
	}
}

func TestWrite_DocProps(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	props, err := f.GetDocProps()
	if err != nil {
		t.Fatal(err)
	}
	if props.Creator != "hydraflow" {
		t.Errorf("Creator = %q, want hydraflow", props.Creator)
	}
	if props.Identifier == "" {
		t.Error("Identifier is empty, want a run id")
	}
}

func TestWrite_CollisionSuffix(t *testing.T) {
	dir := t.TempDir()

	first := writeSample(t, dir)
	second := writeSample(t, dir)

	if first == second {
		t.Fatalf("second run reused %q", first)
	}
	if !strings.HasSuffix(second, "_1.xlsx") {
		t.Errorf("second path = %q, want _1 suffix", second)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	got := UniquePath(dir, DefaultPrefix, day)
	if filepath.Base(got) != "Combined_Dispense_Log_2025-01-15.xlsx" {
		t.Errorf("base path = %q", got)
	}

	if err := os.WriteFile(got, nil, 0644); err != nil {
		t.Fatal(err)
	}
	got1 := UniquePath(dir, DefaultPrefix, day)
	if filepath.Base(got1) != "Combined_Dispense_Log_2025-01-15_1.xlsx" {
		t.Errorf("first collision = %q", got1)
	}

	if err := os.WriteFile(got1, nil, 0644); err != nil {
		t.Fatal(err)
	}
	got2 := UniquePath(dir, DefaultPrefix, day)
	if filepath.Base(got2) != "Combined_Dispense_Log_2025-01-15_2.xlsx" {
		t.Errorf("second collision = %q", got2)
	}
}
