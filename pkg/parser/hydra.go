package parser

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/hydraflow/hydraflow/internal/model"
)

// HydraParser parses Hydra tank-dispensing controller logs.
// Format: line-oriented text where each line carries at most one event,
// optionally prefixed by a timestamp and a '~' separator.
// Example: 12:00:00 ~ Start TankDisp RcpBtIdx=3 H7 Amnt=50dL
type HydraParser struct {
	cfg Config
}

// NewHydraParser creates a new Hydra log parser.
func NewHydraParser(cfg Config) *HydraParser {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	return &HydraParser{cfg: cfg}
}

// Parse reads r line by line and returns one record per completed
// dispense cycle, tagged with logFile as the source name. Undecodable
// bytes are dropped and lines matching no event pattern are skipped,
// so malformed input never fails the parse.
func (p *HydraParser) Parse(ctx context.Context, r io.Reader, logFile string) ([]model.DispenseCycle, error) {
	asm := NewAssembler(logFile, p.cfg.Additives)
	reader := bufio.NewReaderSize(r, p.cfg.BufferSize)

	for {
		select {
		case <-ctx.Done():
			return nil, ErrContextCanceled
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		text := strings.TrimSpace(strings.ToValidUTF8(line, ""))
		if text != "" {
			if ev := ParseLine(text); ev != nil {
				asm.Feed(ev)
			}
		}

		if err == io.EOF {
			break
		}
	}

	return asm.Cycles(), nil
}
