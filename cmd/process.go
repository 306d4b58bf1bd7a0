// =============================================================================
// Ventas BI - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the cleaning pipeline
// and prints the summary view.
//
// COMMAND USAGE:
//   ventas process [flags]
//
// FLAGS:
//   --file             : Process only this file (default: every *.csv in input_dir)
//   --dry-run          : Run the pipeline without writing or moving files
//   --format           : Export format, repeatable (csv, xlsx, xml)
//   --preview          : Rows shown in the raw and clean previews
//   --show-rejections  : List every rejected row with the rule it failed
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover input files
//   3. For each file (concurrently): parse, clean, summarize, export
//   4. Print row counts, KPIs, previews and grouped sales
//   5. Optionally write a run summary log
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ventas-bi/internal/exporter"
	"github.com/ginjaninja78/ventas-bi/internal/pipeline"
	"github.com/ginjaninja78/ventas-bi/internal/types"
	"github.com/ginjaninja78/ventas-bi/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	filePath       string
	dryRun         bool
	formatNames    []string
	previewRows    int
	showRejections bool
)

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Clean sales CSV files and summarize them",
	Long: `The process command parses each input file, validates and normalizes every
row, removes duplicates and prints the summary: row counts before and after
cleaning, total sales, total units, top products and sales per time slot and
category.

Rows that fail validation are dropped without stopping the run. A file that
is empty or has no header row is reported as failed.

On success the cleaned set is exported to the output directory in every
configured format.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadRuntime(cmd); err != nil {
			return err
		}
		defer appLogger.Sync()

		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&filePath, "file", "", "Process only this file")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without writing or moving files")
	processCmd.Flags().StringSliceVar(&formatNames, "format", nil, "Export format: csv, xlsx or xml (repeatable)")
	processCmd.Flags().IntVar(&previewRows, "preview", -1, "Rows shown in each preview table (default from config)")
	processCmd.Flags().BoolVar(&showRejections, "show-rejections", false, "List every rejected row")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	opts := pipeline.ProcessOptions{DryRun: dryRun}
	for _, name := range formatNames {
		format, err := exporter.ParseFormat(name)
		if err != nil {
			return err
		}
		opts.Formats = append(opts.Formats, format)
	}

	preview := appConfig.PreviewRows
	if previewRows >= 0 {
		preview = previewRows
	}

	processor := pipeline.NewProcessor(appConfig, appLogger)

	inputFiles := []string{filePath}
	if filePath == "" {
		var err error
		inputFiles, err = processor.Files().DiscoverInputFiles("*.csv")
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
		if len(inputFiles) == 0 {
			fmt.Fprintf(out, "No CSV files found in %s\n", appConfig.InputDir)
			return nil
		}
	}

	results, err := processor.ProcessFiles(cmd.Context(), inputFiles, opts)
	if err != nil {
		return err
	}

	summary := utils.RunSummary{StartTime: startTime, TotalFiles: len(results)}
	for _, result := range results {
		printFileReport(out, result, preview)
		summary.Files = append(summary.Files, fileSummary(result))
		if result.Success {
			summary.SuccessfulFiles++
		} else {
			summary.FailedFiles++
		}
	}
	summary.EndTime = time.Now()

	fmt.Fprintln(out, "=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if appConfig.WriteSummaryLog && !dryRun {
		path, err := utils.WriteSummaryLog(summary, appConfig.OutputDir)
		if err != nil {
			appLogger.Warn("failed to write summary log", "error", err)
		} else {
			fmt.Fprintf(out, "Summary log:     %s\n", path)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d file(s) failed", summary.FailedFiles)
	}
	return nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printFileReport prints the summary view of one processed file.
func printFileReport(out io.Writer, result pipeline.FileResult, preview int) {
	fmt.Fprintf(out, "=== %s ===\n", filepath.Base(result.FilePath))

	if result.Result == nil {
		fmt.Fprintf(out, "  ✗ %v\n\n", result.Error)
		return
	}

	run := result.Result
	fmt.Fprintf(out, "Rows before cleaning: %d | Rows after cleaning: %d\n", run.RowsBefore(), run.RowsAfter())
	fmt.Fprintf(out, "Total sales: €%s\n", run.Summary.TotalAmount.StringFixed(2))
	fmt.Fprintf(out, "Total units: %s\n\n", run.Summary.TotalUnits.String())

	if preview > 0 {
		fmt.Fprintf(out, "Raw data (first %d rows)\n", preview)
		exporter.RawTable(run.Data.Headers, run.RawRecords(), preview).Render(out)
		fmt.Fprintln(out)

		fmt.Fprintf(out, "Clean data (first %d rows)\n", preview)
		exporter.CleanTable(run.CleanRecords(), preview).Render(out)
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Top %d products\n", appConfig.TopProducts)
	exporter.GroupTable(types.FieldProduct, run.Summary.TopProducts(appConfig.TopProducts)).Render(out)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Sales by time slot")
	exporter.GroupTable(types.FieldTimeSlot, run.Summary.ByTimeSlot.Groups()).Render(out)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Sales by category")
	exporter.GroupTable(types.FieldCategory, run.Summary.ByCategory.Groups()).Render(out)
	fmt.Fprintln(out)

	if showRejections && len(run.Report.Rejections) > 0 {
		fmt.Fprintf(out, "Rejected rows (%d)\n", len(run.Report.Rejections))
		for _, rejection := range run.Report.Rejections {
			fmt.Fprintf(out, "  [%s] %s\n", rejection.Rule, rejection.Error())
		}
		fmt.Fprintln(out)
	}

	for _, output := range result.OutputFiles {
		fmt.Fprintf(out, "  ✓ %s\n", output)
	}
	if result.RejectionLog != "" {
		fmt.Fprintf(out, "  ✓ %s\n", result.RejectionLog)
	}
	if result.Error != nil {
		fmt.Fprintf(out, "  ✗ %v\n", result.Error)
	}
	fmt.Fprintln(out)
}

func fileSummary(result pipeline.FileResult) utils.FileSummary {
	summary := utils.FileSummary{
		InputFile:   result.FilePath,
		OutputFiles: result.OutputFiles,
	}
	if result.Error != nil {
		summary.Error = result.Error.Error()
	}
	if result.Result != nil {
		summary.RowsBefore = result.Result.RowsBefore()
		summary.RowsAfter = result.Result.RowsAfter()
		summary.TotalAmount = result.Result.Summary.TotalAmount.StringFixed(2)
		summary.TotalUnits = result.Result.Summary.TotalUnits.String()
	}
	return summary
}
