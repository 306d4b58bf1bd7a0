// =============================================================================
// Ventas BI - File Manager Utility
// =============================================================================
//
// This module provides the file handling around the pipeline:
//   - Input discovery
//   - Writing exported files
//   - Archiving processed inputs
//   - Output file naming
//   - Rejected row log
//   - Run summary log
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to input_archive after successful processing,
//     only when archiving is enabled
//   - Failed files remain in their original location
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the pipeline.
type FileManager struct {
	// InputDir is the directory scanned for input files.
	InputDir string

	// OutputDir is the directory where exported files are written.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching the pattern.
//
// PARAMETERS:
//   - pattern: A glob pattern to match files (e.g., "*.csv").
//     If empty, defaults to "*.csv".
//
// RETURNS:
//   - A sorted slice of file paths.
//   - An error if the pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.csv"
	}

	files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	regular := files[:0]
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			continue
		}
		regular = append(regular, file)
	}

	sort.Strings(regular)
	return regular, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// WriteOutputFile writes data to fileName inside the output directory.
//
// RETURNS:
//   - The path of the written file.
func (fm *FileManager) WriteOutputFile(fileName string, data []byte) (string, error) {
	if err := fm.EnsureOutputDir(); err != nil {
		return "", err
	}

	outputPath := filepath.Join(fm.OutputDir, fileName)
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return outputPath, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.InputArchiveDir, filepath.Base(filePath))

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName builds an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name, without extension.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     any key of params, e.g. {original}
//   - extension: The extension to append, dot included (".csv").
//   - params: Additional placeholder values.
//
// EXAMPLE:
//
//	format: "{original}_{timestamp}"
//	params: {"original": "ventas_raw"}
//	output: "ventas_raw_20240115_143022.csv"
func GenerateOutputFileName(format, extension string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// REJECTION LOG
// =============================================================================

// RejectionLogEntry describes one input row left out of the cleaned set.
type RejectionLogEntry struct {
	Line    int
	Field   string
	Value   string
	Rule    string
	Message string
}

// WriteRejectionLog writes the rejected rows of one input file to
// <original>_rejections_<timestamp>.txt in outputDir. Nothing is written
// when entries is empty and the returned path is "".
func WriteRejectionLog(inputFile string, entries []RejectionLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	now := time.Now()
	logFileName := fmt.Sprintf("%s_rejections_%s.txt", BaseName(inputFile), now.Format("20060102_150405"))
	logPath := filepath.Join(outputDir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create rejection log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(writer, "Ventas BI - Rejected Rows\n")
	fmt.Fprintf(writer, "Input:           %s\n", inputFile)
	fmt.Fprintf(writer, "Generated:       %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Total Rejected:  %d\n%s\n\n", len(entries), rule)

	for _, entry := range entries {
		fmt.Fprintf(writer, "Line %d\n", entry.Line)
		fmt.Fprintf(writer, "  Rule:          %s\n", entry.Rule)
		fmt.Fprintf(writer, "  Message:       %s\n", entry.Message)
		if entry.Field != "" {
			fmt.Fprintf(writer, "  Field:         %s\n", entry.Field)
			fmt.Fprintf(writer, "  Value:         '%s'\n", entry.Value)
		}
		fmt.Fprintln(writer)
	}

	fmt.Fprintf(writer, "%s\nEnd of Rejection Log\n", rule)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush rejection log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about a processing run.
type RunSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	Files           []FileSummary
}

// FileSummary describes the outcome for one input file.
type FileSummary struct {
	InputFile   string
	OutputFiles []string
	RowsBefore  int
	RowsAfter   int
	TotalAmount string
	TotalUnits  string
	Error       string
}

// WriteSummaryLog writes a run summary to a text file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	summaryFileName := fmt.Sprintf("run_summary_%s.txt", summary.StartTime.Format("20060102_150405"))
	summaryPath := filepath.Join(outputDir, summaryFileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	writeSummary(writer, summary)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

func writeSummary(w io.Writer, summary RunSummary) {
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(w, "Ventas BI - Run Summary\n%s\n\n", rule)
	fmt.Fprintf(w, "Run Information:\n")
	fmt.Fprintf(w, "  Start Time:     %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  End Time:       %s\n", summary.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Duration:       %s\n\n", summary.EndTime.Sub(summary.StartTime))
	fmt.Fprintf(w, "Statistics:\n")
	fmt.Fprintf(w, "  Total Files:    %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "  Successful:     %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(w, "  Failed:         %d\n\n", summary.FailedFiles)

	for _, f := range summary.Files {
		fmt.Fprintf(w, "  Input:          %s\n", f.InputFile)
		if f.Error != "" {
			fmt.Fprintf(w, "  Error:          %s\n\n", f.Error)
			continue
		}
		fmt.Fprintf(w, "  Rows before:    %d\n", f.RowsBefore)
		fmt.Fprintf(w, "  Rows after:     %d\n", f.RowsAfter)
		fmt.Fprintf(w, "  Total sales:    %s\n", f.TotalAmount)
		fmt.Fprintf(w, "  Total units:    %s\n", f.TotalUnits)
		for _, output := range f.OutputFiles {
			fmt.Fprintf(w, "  Output:         %s\n", output)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\nEnd of Summary\n", rule)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
