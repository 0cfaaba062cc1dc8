// Package model defines core data structures for hydraflow.
package model

import "fmt"

// DispenseCycle is one completed Start-to-End dispense extracted from a
// controller log. String fields keep the exact rendering that appears in
// the workbook; HydraMS stays numeric so spreadsheets can aggregate it.
type DispenseCycle struct {
	// LogFile is the basename of the source log.
	LogFile string

	// StartTime is the text preceding the first '~' on the Start line,
	// trimmed; empty when the line carries no '~' delimiter.
	StartTime string

	// RecipeIndex is the H<n> recipe token from the Start line.
	RecipeIndex string

	// HydraMS is the hydra actuator on-time in milliseconds, 0 when no
	// timing line was observed for the cycle.
	HydraMS int

	// Additives lists the non-zero additive on-times, "None" when a
	// timing line reported all slots as zero, empty when no timing line
	// was observed.
	Additives string

	// Progress is "<done>/<need> dL" from the progress line, or empty.
	Progress string

	// ActualLitre is the dispensed volume as "<L>L" with one decimal.
	ActualLitre string
}

// Columns is the workbook column order for DispenseCycle fields.
var Columns = []string{
	"LogFile",
	"StartTime",
	"RecipeIndex",
	"Hydra_ms",
	"Additives",
	"Progress",
	"Actual_Litre",
}

// Row projects the cycle into Columns order for the workbook writer.
func (c *DispenseCycle) Row() []interface{} {
	return []interface{}{
		c.LogFile,
		c.StartTime,
		c.RecipeIndex,
		c.HydraMS,
		c.Additives,
		c.Progress,
		c.ActualLitre,
	}
}

// AdditiveTable maps additive slot indices (1-based) to display names.
type AdditiveTable map[int]string

// DefaultAdditives returns the fixed controller slot assignment.
func DefaultAdditives() AdditiveTable {
	return AdditiveTable{
		1: "S",
		2: "PR",
		3: "T",
		4: "Brine",
	}
}

// Name returns the display name for slot i, degrading to the raw Ad<i>
// token for slots outside the table.
func (t AdditiveTable) Name(i int) string {
	if name, ok := t[i]; ok {
		return name
	}
	return fmt.Sprintf("Ad%d", i)
}
