package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hydraflow/hydraflow/pkg/aggregate"
	"github.com/hydraflow/hydraflow/pkg/config"
	hferrors "github.com/hydraflow/hydraflow/pkg/errors"
	"github.com/hydraflow/hydraflow/pkg/parser"
	"github.com/hydraflow/hydraflow/pkg/report"
	"github.com/hydraflow/hydraflow/pkg/sources"
	"github.com/hydraflow/hydraflow/pkg/tui"
)

// reportOn runs the full pipeline over one directory: discover logs,
// parse each file sequentially, aggregate, and write the workbook.
func reportOn(dir string) error {
	cfg := resolveConfig(dir)

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted, cleaning up...")
		cancel()
	}()

	files, err := sources.DiscoverLogs(dir)
	if err != nil {
		return err
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name()
	}
	tui.PrintFiles(names)

	hp := parser.NewHydraParser(parser.Config{
		BufferSize: parser.DefaultConfig().BufferSize,
		Additives:  cfg.AdditiveTable(),
	})

	start := time.Now()
	var perFile []aggregate.FileCycles
	var readErrs hferrors.MultiError

	bar := tui.ShowProgress(int64(len(files)), "parsing logs")
	for _, lf := range files {
		r, cleanup, err := lf.Open()
		if err != nil {
			// unreadable inputs are skipped, not fatal
			readErrs.Add(hferrors.Wrap(err, hferrors.CodeFilePermission, "open log").
				WithContext("path", lf.Path()))
			bar.Add(1)
			continue
		}

		cycles, err := hp.Parse(ctx, r, lf.Name())
		cleanup()
		if err != nil {
			if errors.Is(err, parser.ErrContextCanceled) {
				return hferrors.Wrap(err, hferrors.CodeContextCanceled, "run interrupted")
			}
			return hferrors.Wrapf(err, hferrors.CodeParseFailed, "parse %s", lf.Name())
		}

		if cfg.Verbose {
			slog.Info("parsed log", "file", lf.Name(), "cycles", len(cycles))
		}
		perFile = append(perFile, aggregate.FileCycles{File: lf.Name(), Cycles: cycles})
		bar.Add(1)
	}
	bar.Finish()

	if cfg.Verbose {
		for _, e := range readErrs.Errors {
			slog.Warn("skipped input", "error", e)
		}
	}

	rep := aggregate.Build(perFile)
	if len(rep.All) == 0 {
		tui.Warn("no dispense data found in logs")
		return hferrors.NoCycles()
	}

	w := report.NewWriter(report.Config{
		Dir:    cfg.Output.Dir,
		Prefix: cfg.Output.Prefix,
	})
	path, err := w.Write(rep)
	if err != nil {
		return err
	}

	tui.PrintRunReport(&tui.RunReport{
		FilesScanned: len(files),
		Cycles:       len(rep.All),
		Recipes:      len(rep.Combined),
		OutputPath:   path,
		Duration:     time.Since(start),
	})
	return nil
}

// resolveConfig layers the loaded configuration under the CLI flags.
// The workbook lands in the scanned directory unless config or flags
// say otherwise.
func resolveConfig(dir string) *config.Config {
	loaded := config.Global().Get()

	cfg := *loaded
	if cfg.Output.Dir == "" || cfg.Output.Dir == "." {
		cfg.Output.Dir = dir
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if namePrefix != "" {
		cfg.Output.Prefix = namePrefix
	}
	if verbose {
		cfg.Verbose = true
	}
	return &cfg
}
