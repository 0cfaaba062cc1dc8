// Package tui provides the terminal interface for hydraflow.
// Simple, streaming output - clean status lines, no complex TUI.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	warning = lipgloss.Color("#FFAA00")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warning).Bold(true)
)

// PrintHeader prints the tool banner.
func PrintHeader(version string) {
	fmt.Println()
	fmt.Println(titleStyle.Render("  HYDRAFLOW") + mutedStyle.Render(" v"+version))
	fmt.Println(mutedStyle.Render("  Hydra dispensing log reporter"))
	fmt.Println()
}

// PrintFiles lists the discovered input logs.
func PrintFiles(names []string) {
	fmt.Printf("%s %d\n", mutedStyle.Render("Files found:"), len(names))
	for _, name := range names {
		fmt.Printf("  %s %s\n", mutedStyle.Render("-"), name)
	}
}

// Warn prints a warning line.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("  ! " + msg))
}

// RunReport summarizes one completed report run.
type RunReport struct {
	FilesScanned int
	Cycles       int
	Recipes      int
	OutputPath   string
	Duration     time.Duration
}

// PrintRunReport prints results after the workbook is written.
func PrintRunReport(report *RunReport) {
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ REPORT COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s\n", mutedStyle.Render("Files:"), titleStyle.Render(fmt.Sprintf("%d", report.FilesScanned)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Cycles:"), titleStyle.Render(fmt.Sprintf("%d", report.Cycles)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Recipes:"), titleStyle.Render(fmt.Sprintf("%d", report.Recipes)))
	fmt.Printf("  %s %s %s\n",
		mutedStyle.Render("Output:"),
		titleStyle.Render(report.OutputPath),
		mutedStyle.Render("("+formatDuration(report.Duration)+")"))
	fmt.Println()
}

// RecipeUsage is one recipe's cycle count for the info command.
type RecipeUsage struct {
	Recipe string
	Count  int
}

// PrintFileInfo prints the per-file summary used by the info command.
func PrintFileInfo(name string, size int64, cycles int, usage []RecipeUsage) {
	fmt.Println()
	fmt.Println(accentStyle.Render("▸ " + name))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Size:"), titleStyle.Render(formatBytes(size)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Cycles:"), titleStyle.Render(fmt.Sprintf("%d", cycles)))
	for _, u := range usage {
		fmt.Printf("  %s %d\n", mutedStyle.Render(u.Recipe+":"), u.Count)
	}
}

// ShowProgress creates a progress bar across the input files.
func ShowProgress(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
