package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hydraflow/hydraflow/pkg/aggregate"
	"github.com/hydraflow/hydraflow/pkg/config"
	hferrors "github.com/hydraflow/hydraflow/pkg/errors"
	"github.com/hydraflow/hydraflow/pkg/parser"
	"github.com/hydraflow/hydraflow/pkg/tui"
	"github.com/hydraflow/hydraflow/pkg/util"
)

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := config.Global().Get()
	hp := parser.NewHydraParser(parser.Config{
		BufferSize: parser.DefaultConfig().BufferSize,
		Additives:  cfg.AdditiveTable(),
	})

	for _, path := range args {
		stat, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return hferrors.FileNotFound(path)
			}
			return hferrors.Wrap(err, hferrors.CodeFilePermission, "stat log").
				WithContext("path", path)
		}

		r, cleanup, err := util.OpenLog(path)
		if err != nil {
			return err
		}

		cycles, err := hp.Parse(context.Background(), r, filepath.Base(path))
		cleanup()
		if err != nil {
			return err
		}

		usage := aggregate.CountByRecipe(cycles)
		rows := make([]tui.RecipeUsage, len(usage))
		for i, rc := range usage {
			rows[i] = tui.RecipeUsage{Recipe: rc.Recipe, Count: rc.Count}
		}
		tui.PrintFileInfo(filepath.Base(path), stat.Size(), len(cycles), rows)
	}

	return nil
}
