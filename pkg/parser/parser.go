// Package parser extracts dispense cycles from Hydra tank-dispensing
// controller logs. A line parser recognizes the four event kinds the
// controller emits and an assembler folds the event stream into one
// normalized record per completed cycle.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hydraflow/hydraflow/internal/model"
)

// Event is one recognized log line: Start, Timing, Progress or End.
type Event interface{ event() }

// Start marks the beginning of a dispense cycle.
type Start struct {
	// Recipe is the H<n> token, uppercased so it is stable regardless of
	// the log's casing.
	Recipe string

	// AmountDL is the requested amount in deciliters.
	AmountDL int

	// StartTime is the trimmed text before the first '~' on the line,
	// empty when the line has no '~'.
	StartTime string
}

// Timing carries the hydra and additive on-times for the open cycle.
type Timing struct {
	HydraMS int
	AdMS    [4]int // slots Ad1..Ad4
}

// Progress reports dispensed vs required volume in deciliters.
type Progress struct {
	DoneDL int
	NeedDL int
}

// End terminates the open cycle.
type End struct {
	DoneDL int
	Ret    int
}

func (Start) event()    {}
func (Timing) event()   {}
func (Progress) event() {}
func (End) event()      {}

// Line patterns. Only the Start pattern is case-insensitive; the timing
// pattern requires Ad1..Ad4 in slot order with arbitrary intervening text,
// so reordered or missing slots yield no event at all.
var (
	startRe    = regexp.MustCompile(`(?i)Start\s+TankDisp\s+RcpBtIdx=(\d+)\s+(H\d+)\s+Amnt=(\d+)dL`)
	timingRe   = regexp.MustCompile(`Hydra=(\d+)ms.*Ad1=(\d+)ms.*Ad2=(\d+)ms.*Ad3=(\d+)ms.*Ad4=(\d+)ms`)
	progressRe = regexp.MustCompile(`Disp-Progress\s+Done=(\d+)dL\s+Need=(\d+)dL`)
	endRe      = regexp.MustCompile(`TankDisp-End\s+Done=(\d+)dL\s+Ret=(\d+)`)
)

// ParseLine matches line against the four event patterns and returns the
// tagged event, or nil when the line matches none. Matching is
// substring-based, not anchored; callers are expected to trim the line.
func ParseLine(line string) Event {
	if m := startRe.FindStringSubmatch(line); m != nil {
		start := ""
		if i := strings.IndexByte(line, '~'); i >= 0 {
			start = strings.TrimSpace(line[:i])
		}
		return Start{
			Recipe:    strings.ToUpper(m[2]),
			AmountDL:  atoi(m[3]),
			StartTime: start,
		}
	}
	if m := timingRe.FindStringSubmatch(line); m != nil {
		t := Timing{HydraMS: atoi(m[1])}
		for i := range t.AdMS {
			t.AdMS[i] = atoi(m[i+2])
		}
		return t
	}
	if m := progressRe.FindStringSubmatch(line); m != nil {
		return Progress{DoneDL: atoi(m[1]), NeedDL: atoi(m[2])}
	}
	if m := endRe.FindStringSubmatch(line); m != nil {
		return End{DoneDL: atoi(m[1]), Ret: atoi(m[2])}
	}
	return nil
}

// atoi parses a digits-only capture group. The patterns guarantee the
// input is numeric, so the error is discarded.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Config holds common parser configuration.
type Config struct {
	// BufferSize is the size of the read buffer in bytes.
	BufferSize int

	// Additives maps additive slots to display names. Nil selects the
	// fixed controller assignment.
	Additives model.AdditiveTable
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: 64 * 1024,
	}
}
