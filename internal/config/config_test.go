package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ventas-bi/internal/exporter"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "{original}_clean", cfg.OutputFileFormat)
	assert.Equal(t, []string{"csv"}, cfg.ExportFormats)
	assert.Equal(t, 10, cfg.PreviewRows)
	assert.Equal(t, 5, cfg.TopProducts)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.False(t, cfg.ArchiveInput)
}

func TestParseMainConfig(t *testing.T) {
	data := []byte(`
input_dir: ./datos
export_formats: [csv, xlsx]
archive_input: true
top_products: 3
log_level: debug
`)

	cfg, err := ParseMainConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "./datos", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir, "unset keys take defaults")
	assert.True(t, cfg.ArchiveInput)
	assert.Equal(t, 3, cfg.TopProducts)
	assert.Equal(t, "debug", cfg.LogLevel)

	formats, err := cfg.Formats()
	require.NoError(t, err)
	assert.Equal(t, []exporter.Format{exporter.FormatCSV, exporter.FormatXLSX}, formats)
}

func TestParseMainConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown format", "export_formats: [pdf]"},
		{"negative preview", "preview_rows: -1"},
		{"negative top", "top_products: -2"},
		{"negative concurrency", "max_concurrency: -1"},
		{"unknown level", "log_level: loud"},
		{"unknown mode", "log_mode: staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMainConfig([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseMainConfigMalformedYAML(t *testing.T) {
	_, err := ParseMainConfig([]byte("input_dir: [unclosed"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMainConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: ./limpio\n"), 0644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./limpio", cfg.OutputDir)

	_, err = LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseMainConfigInvalidMessage(t *testing.T) {
	_, err := ParseMainConfig([]byte("export_formats: [csv, pdf]\ntop_products: -1\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), `unknown export format "pdf" in export_formats[1]`)
	assert.Contains(t, err.Error(), "top_products must not be negative")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("VENTAS_OUTPUT_DIR", "/tmp/limpio")
	t.Setenv("VENTAS_EXPORT_FORMATS", "xml,xlsx")
	t.Setenv("VENTAS_ARCHIVE_INPUT", "true")

	cfg, err := ParseMainConfig([]byte("output_dir: ./output\ntop_products: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/limpio", cfg.OutputDir, "environment wins over the file")
	assert.Equal(t, []string{"xml", "xlsx"}, cfg.ExportFormats)
	assert.True(t, cfg.ArchiveInput)
	assert.Equal(t, 3, cfg.TopProducts, "keys without a variable keep the file value")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VENTAS_MAX_CONCURRENCY", "8")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "./input", cfg.InputDir)

	t.Setenv("VENTAS_MAX_CONCURRENCY", "muchos")
	_, err = FromEnv()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
