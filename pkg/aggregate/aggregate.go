// Package aggregate merges per-file cycle lists and computes recipe
// usage frequency tables for the workbook writer.
package aggregate

import (
	"sort"

	"github.com/hydraflow/hydraflow/internal/model"
)

// FileCycles pairs one input file with the cycles parsed from it.
type FileCycles struct {
	File   string
	Cycles []model.DispenseCycle
}

// RecipeCount is one row of a usage table.
type RecipeCount struct {
	Recipe string
	Count  int
}

// FileReport is the per-file section of the final report.
type FileReport struct {
	File   string
	Cycles []model.DispenseCycle
	Usage  []RecipeCount
}

// Report is the fully aggregated result handed to the workbook writer.
type Report struct {
	// Files holds per-file sections in discovery order. Files that
	// produced no cycles are omitted.
	Files []FileReport

	// All is the flat cycle list: discovery order across files, source
	// order within a file.
	All []model.DispenseCycle

	// Combined is the element-wise sum of the per-file usage tables over
	// the union of recipes, sorted like the per-file tables.
	Combined []RecipeCount
}

// Build aggregates per-file cycle lists into a Report.
func Build(files []FileCycles) *Report {
	rep := &Report{}
	combined := make(map[string]int)

	for _, fc := range files {
		if len(fc.Cycles) == 0 {
			continue
		}
		rep.All = append(rep.All, fc.Cycles...)
		usage := CountByRecipe(fc.Cycles)
		for _, rc := range usage {
			combined[rc.Recipe] += rc.Count
		}
		rep.Files = append(rep.Files, FileReport{
			File:   fc.File,
			Cycles: fc.Cycles,
			Usage:  usage,
		})
	}

	rep.Combined = sortedCounts(combined)
	return rep
}

// CountByRecipe counts cycles grouped by RecipeIndex, ordered by the
// recipe's lexicographic string.
func CountByRecipe(cycles []model.DispenseCycle) []RecipeCount {
	counts := make(map[string]int)
	for _, c := range cycles {
		counts[c.RecipeIndex]++
	}
	return sortedCounts(counts)
}

func sortedCounts(counts map[string]int) []RecipeCount {
	out := make([]RecipeCount, 0, len(counts))
	for recipe, n := range counts {
		out = append(out, RecipeCount{Recipe: recipe, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Recipe < out[j].Recipe })
	return out
}
