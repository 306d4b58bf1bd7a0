// =============================================================================
// Ventas BI - File Processor
// =============================================================================
//
// Runs the pipeline over input files.
//
// PROCESSING STEPS (per file):
//   1. Read and parse the file
//   2. Clean and summarize
//   3. Export the cleaned set in every configured format
//   4. Write the rejected rows log (optional)
//   5. Archive the input file (optional)
//
// CONCURRENCY:
//   ProcessFiles handles several files at once, bounded by max_concurrency.
//   Every file gets its own pipeline run; nothing is shared between runs.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/ventas-bi/internal/config"
	"github.com/ginjaninja78/ventas-bi/internal/csvparser"
	"github.com/ginjaninja78/ventas-bi/internal/exporter"
	"github.com/ginjaninja78/ventas-bi/pkg/utils"
)

// Logger is the logging surface the processor needs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ProcessOptions tunes a single processing run.
type ProcessOptions struct {
	// DryRun runs the pipeline without writing or moving any file.
	DryRun bool

	// Formats overrides the configured export formats when not empty.
	Formats []exporter.Format
}

// FileResult represents the outcome of processing a single file.
type FileResult struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFiles lists the exported files, empty on dry runs or failure.
	OutputFiles []string

	// RejectionLog is the path of the rejected rows log, if one was written.
	RejectionLog string

	// ArchivePath is where the input was moved, if it was archived.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Result is the pipeline output, nil if the input could not be parsed.
	Result *Result

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// Processor runs the pipeline over files.
type Processor struct {
	cfg    *config.MainConfig
	files  *utils.FileManager
	logger Logger
}

// NewProcessor creates a Processor for the given configuration.
func NewProcessor(cfg *config.MainConfig, logger Logger) *Processor {
	return &Processor{
		cfg:    cfg,
		files:  utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir),
		logger: logger,
	}
}

// Files exposes the file manager used by the processor.
func (p *Processor) Files() *utils.FileManager {
	return p.files
}

// ProcessFile runs the pipeline over one file.
func (p *Processor) ProcessFile(filePath string, opts ProcessOptions) FileResult {
	startTime := time.Now()
	result := FileResult{FilePath: filePath}

	p.logger.Info("processing file", "file", filePath)

	formats, err := p.formats(opts)
	if err != nil {
		result.Error = err
		return result
	}

	data, err := csvparser.ParseFile(filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse input: %w", err)
		p.logger.Error("parse failed", "file", filePath, "error", err)
		return result
	}

	run := RunParsed(data)
	result.Result = run

	p.logger.Info("cleaned records",
		"file", filePath,
		"rows_before", run.RowsBefore(),
		"rows_after", run.RowsAfter(),
	)
	for _, rejection := range run.Report.Rejections {
		p.logger.Debug("row rejected",
			"file", filePath,
			"line", rejection.Line,
			"field", rejection.Field,
			"rule", string(rejection.Rule),
		)
	}

	if !opts.DryRun {
		outputs, err := p.export(filePath, run, formats)
		result.OutputFiles = outputs
		if err != nil {
			result.Error = fmt.Errorf("failed to export: %w", err)
			return result
		}

		if p.cfg.WriteRejectionLog {
			logPath, err := utils.WriteRejectionLog(filePath, rejectionEntries(run), p.cfg.OutputDir)
			if err != nil {
				p.logger.Warn("failed to write rejection log", "file", filePath, "error", err)
			} else {
				result.RejectionLog = logPath
			}
		}

		if p.cfg.ArchiveInput {
			archivePath, err := p.files.ArchiveInputFile(filePath)
			if err != nil {
				// Archiving is best effort; the exports are already written.
				p.logger.Warn("failed to archive input", "file", filePath, "error", err)
			} else {
				result.ArchivePath = archivePath
			}
		}
	}

	result.Success = true
	result.ProcessingTime = time.Since(startTime)
	return result
}

// ProcessFiles runs ProcessFile over every path, at most max_concurrency at a
// time. Results keep the order of paths. A failing file never stops the
// others; only a cancelled context does.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string, opts ProcessOptions) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if p.cfg.MaxConcurrency > 0 {
		g.SetLimit(p.cfg.MaxConcurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.ProcessFile(path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// export writes the cleaned set in every format and returns the paths.
func (p *Processor) export(filePath string, run *Result, formats []exporter.Format) ([]string, error) {
	params := map[string]string{"original": utils.BaseName(filePath)}

	var outputs []string
	for _, format := range formats {
		data, err := exporter.Export(format, run.CleanRecords(), run.Summary, p.cfg.TopProducts)
		if err != nil {
			return outputs, err
		}

		fileName := utils.GenerateOutputFileName(p.cfg.OutputFileFormat, format.Extension(), params)
		outputPath, err := p.files.WriteOutputFile(fileName, data)
		if err != nil {
			return outputs, err
		}

		p.logger.Info("wrote export", "file", filePath, "format", string(format), "output", outputPath)
		outputs = append(outputs, outputPath)
	}

	return outputs, nil
}

func rejectionEntries(run *Result) []utils.RejectionLogEntry {
	entries := make([]utils.RejectionLogEntry, len(run.Report.Rejections))
	for i, rejection := range run.Report.Rejections {
		entries[i] = utils.RejectionLogEntry{
			Line:    rejection.Line,
			Field:   rejection.Field,
			Value:   rejection.Value,
			Rule:    string(rejection.Rule),
			Message: rejection.Message,
		}
	}
	return entries
}

func (p *Processor) formats(opts ProcessOptions) ([]exporter.Format, error) {
	if len(opts.Formats) > 0 {
		return opts.Formats, nil
	}
	return p.cfg.Formats()
}
