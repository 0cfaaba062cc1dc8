// Hydraflow - Hydra dispensing log reporter
// Parses tank-dispensing controller logs and emits a combined XLSX report.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hferrors "github.com/hydraflow/hydraflow/pkg/errors"
	"github.com/hydraflow/hydraflow/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	outputDir  string
	namePrefix string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var hErr *hferrors.HydraError
		if verbose && errors.As(err, &hErr) {
			fmt.Fprint(os.Stderr, hErr.FormatStack())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hydraflow",
	Short: "Hydraflow - Hydra dispensing log reports",
	Long: `Hydraflow parses the plain-text dispensing logs written by a Hydra
tank-dispensing controller and generates a combined Excel report:
one summary sheet, one per-file sheet, and recipe usage charts.

Run without arguments to report on all .TXT/.txt logs in the current
directory.`,
	Version: fmt.Sprintf("%s (%s)", version, commit),
	Args:    cobra.NoArgs,
	RunE:    runRoot,
}

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Generate the dispense workbook from logs in a directory",
	Long: `Scan a directory for .TXT/.txt dispensing logs, extract the completed
dispense cycles, and write the combined workbook.

Examples:
  hydraflow report
  hydraflow report /var/log/hydra
  hydraflow report --output-dir reports --prefix Line3_Dispense`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Display cycle and recipe counts for log files",
	Long: `Parse the named log files and print per-file cycle and recipe counts
without writing a workbook. Gzip-compressed logs (.txt.gz) are
decompressed transparently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the workbook (default: the scanned directory)")
	rootCmd.PersistentFlags().StringVar(&namePrefix, "prefix", "", "Workbook filename prefix (default: Combined_Dispense_Log)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(infoCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	tui.PrintHeader(version)
	return reportOn(".")
}

func runReport(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	tui.PrintHeader(version)
	return reportOn(dir)
}
