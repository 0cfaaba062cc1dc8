package parser

import (
	"fmt"
	"strings"

	"github.com/hydraflow/hydraflow/internal/model"
)

// Assembler folds the event stream from one log file into completed
// dispense cycles. It owns at most one in-progress cycle: a Start while a
// cycle is open discards the open cycle, and only an End emits a record.
// Timing and Progress events outside an open cycle are ignored.
type Assembler struct {
	logFile   string
	additives model.AdditiveTable
	current   *model.DispenseCycle
	cycles    []model.DispenseCycle
}

// NewAssembler creates an assembler for one log file. A nil additives
// table selects the fixed controller assignment.
func NewAssembler(logFile string, additives model.AdditiveTable) *Assembler {
	if additives == nil {
		additives = model.DefaultAdditives()
	}
	return &Assembler{logFile: logFile, additives: additives}
}

// Feed applies one event to the state machine. Repeated Timing or
// Progress events within a cycle overwrite earlier values.
func (a *Assembler) Feed(ev Event) {
	switch e := ev.(type) {
	case Start:
		a.current = &model.DispenseCycle{
			LogFile:     a.logFile,
			StartTime:   e.StartTime,
			RecipeIndex: e.Recipe,
		}
	case Timing:
		if a.current == nil {
			return
		}
		a.current.HydraMS = e.HydraMS
		a.current.Additives = a.additiveSummary(e.AdMS)
	case Progress:
		if a.current == nil {
			return
		}
		a.current.Progress = fmt.Sprintf("%d/%d dL", e.DoneDL, e.NeedDL)
		a.current.ActualLitre = litres(e.DoneDL)
	case End:
		if a.current == nil {
			return
		}
		if a.current.ActualLitre == "" {
			a.current.ActualLitre = litres(e.DoneDL)
		}
		a.cycles = append(a.cycles, *a.current)
		a.current = nil
	}
}

// Cycles returns the completed cycles in source order. A cycle still open
// when the stream ends stays unreported.
func (a *Assembler) Cycles() []model.DispenseCycle {
	return a.cycles
}

// additiveSummary renders the additive on-times: slots with ms>0 in slot
// order, or "None" when the timing line reported all slots as zero.
func (a *Assembler) additiveSummary(ad [4]int) string {
	parts := make([]string, 0, len(ad))
	for i, ms := range ad {
		if ms > 0 {
			parts = append(parts, fmt.Sprintf("%s: %dms", a.additives.Name(i+1), ms))
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

// litres renders deciliters as liters with one decimal.
func litres(doneDL int) string {
	return fmt.Sprintf("%.1fL", float64(doneDL)/10)
}
