package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ventas-bi/internal/config"
	"github.com/ginjaninja78/ventas-bi/internal/exporter"
	"github.com/ginjaninja78/ventas-bi/internal/logger"
)

func testConfig(t *testing.T) *config.MainConfig {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "archive")
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0755))
	return cfg
}

func writeInput(t *testing.T, cfg *config.MainConfig, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessFileExportsEveryFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.ExportFormats = []string{"csv", "xlsx", "xml"}
	path := writeInput(t, cfg, "ventas_raw.csv", salesCSV)

	processor := NewProcessor(cfg, logger.NewNop())
	result := processor.ProcessFile(path, ProcessOptions{})

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	require.NotNil(t, result.Result)
	assert.Equal(t, 3, result.Result.RowsAfter())

	require.Len(t, result.OutputFiles, 3)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "ventas_raw_clean.csv"), result.OutputFiles[0])
	assert.Equal(t, filepath.Join(cfg.OutputDir, "ventas_raw_clean.xlsx"), result.OutputFiles[1])
	assert.Equal(t, filepath.Join(cfg.OutputDir, "ventas_raw_clean.xml"), result.OutputFiles[2])

	exported, err := os.ReadFile(result.OutputFiles[0])
	require.NoError(t, err)
	assert.Equal(t, exporter.EncodeCSV(result.Result.CleanRecords()), exported)

	assert.FileExists(t, path, "input stays in place without archiving")
}

func TestProcessFileDryRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArchiveInput = true
	path := writeInput(t, cfg, "ventas_raw.csv", salesCSV)

	result := NewProcessor(cfg, logger.NewNop()).ProcessFile(path, ProcessOptions{DryRun: true})

	assert.True(t, result.Success)
	assert.Empty(t, result.OutputFiles)
	assert.Empty(t, result.ArchivePath)
	assert.NoDirExists(t, cfg.OutputDir)
	assert.FileExists(t, path)
}

func TestProcessFileArchivesInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArchiveInput = true
	path := writeInput(t, cfg, "ventas_raw.csv", salesCSV)

	result := NewProcessor(cfg, logger.NewNop()).ProcessFile(path, ProcessOptions{})

	require.True(t, result.Success)
	assert.Equal(t, filepath.Join(cfg.InputArchiveDir, "ventas_raw.csv"), result.ArchivePath)
	assert.FileExists(t, result.ArchivePath)
	assert.NoFileExists(t, path)
}

func TestProcessFileFormatOverride(t *testing.T) {
	cfg := testConfig(t)
	path := writeInput(t, cfg, "ventas_raw.csv", salesCSV)

	result := NewProcessor(cfg, logger.NewNop()).ProcessFile(path, ProcessOptions{
		Formats: []exporter.Format{exporter.FormatXML},
	})

	require.True(t, result.Success)
	require.Len(t, result.OutputFiles, 1)
	assert.Equal(t, ".xml", filepath.Ext(result.OutputFiles[0]))
}

func TestProcessFileFailures(t *testing.T) {
	cfg := testConfig(t)
	empty := writeInput(t, cfg, "vacio.csv", "   \n")

	processor := NewProcessor(cfg, logger.NewNop())

	result := processor.ProcessFile(empty, ProcessOptions{})
	assert.False(t, result.Success)
	assert.Nil(t, result.Result)
	assert.Error(t, result.Error)

	result = processor.ProcessFile(filepath.Join(cfg.InputDir, "missing.csv"), ProcessOptions{})
	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestProcessFilesKeepsOrder(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConcurrency = 2

	paths := []string{
		writeInput(t, cfg, "a.csv", salesCSV),
		writeInput(t, cfg, "b.csv", ""),
		writeInput(t, cfg, "c.csv", salesCSV),
	}

	results, err := NewProcessor(cfg, logger.NewNop()).ProcessFiles(context.Background(), paths, ProcessOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, result := range results {
		assert.Equal(t, paths[i], result.FilePath)
	}
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success, "a failing file does not stop the others")
	assert.True(t, results[2].Success)
}

func TestProcessFilesCancelled(t *testing.T) {
	cfg := testConfig(t)
	paths := []string{writeInput(t, cfg, "a.csv", salesCSV)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessor(cfg, logger.NewNop()).ProcessFiles(ctx, paths, ProcessOptions{DryRun: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFileWritesRejectionLog(t *testing.T) {
	cfg := testConfig(t)
	cfg.WriteRejectionLog = true
	path := writeInput(t, cfg, "ventas_raw.csv", salesCSV)

	result := NewProcessor(cfg, logger.NewNop()).ProcessFile(path, ProcessOptions{})

	require.True(t, result.Success)
	require.NotEmpty(t, result.RejectionLog)
	assert.Equal(t, cfg.OutputDir, filepath.Dir(result.RejectionLog))

	data, err := os.ReadFile(result.RejectionLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Rejected:  4")
}

func TestProcessFilesSameBaseNameWithUUID(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFileFormat = "{original}_{uuid}"

	other := filepath.Join(filepath.Dir(cfg.InputDir), "otra")
	require.NoError(t, os.MkdirAll(other, 0755))
	second := filepath.Join(other, "ventas.csv")
	require.NoError(t, os.WriteFile(second, []byte(salesCSV), 0644))

	paths := []string{writeInput(t, cfg, "ventas.csv", salesCSV), second}
	results, err := NewProcessor(cfg, logger.NewNop()).ProcessFiles(context.Background(), paths, ProcessOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.True(t, results[0].Success)
	require.True(t, results[1].Success)
	require.Len(t, results[0].OutputFiles, 1)
	require.Len(t, results[1].OutputFiles, 1)
	assert.NotEqual(t, results[0].OutputFiles[0], results[1].OutputFiles[0])
	assert.FileExists(t, results[0].OutputFiles[0])
	assert.FileExists(t, results[1].OutputFiles[0])
}
