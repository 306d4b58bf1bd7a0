package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = `fecha,franja,producto,familia,unidades,precio_unitario
2024-01-05,desayuno,Café,bebida,2,1.5
2024-01-05,Desayuno,Té,Bebida,2,2.5
2024-01-05,Desayuno,Té,Bebida,2,2.5
2024-01-05,Merienda,Bollo,Postre,1,2
`

func setupRun(t *testing.T, extraConfig string) (root string, configPath string) {
	t.Helper()
	root = t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "input"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "input", "ventas_raw.csv"), []byte(salesCSV), 0644))

	configPath = filepath.Join(root, "config.yaml")
	content := fmt.Sprintf("input_dir: %s\noutput_dir: %s\nlog_mode: production\nlog_level: error\n%s",
		filepath.Join(root, "input"), filepath.Join(root, "output"), extraConfig)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	t.Cleanup(func() {
		filePath, dryRun, formatNames, previewRows, showRejections = "", false, nil, -1, false
	})
	return root, configPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProcessCommand(t *testing.T) {
	root, configPath := setupRun(t, "")

	out, err := execute(t, "process", "--config", configPath, "--show-rejections", "--preview", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Rows before cleaning: 4 | Rows after cleaning: 2")
	assert.Contains(t, out, "Total sales: €8.00")
	assert.Contains(t, out, "Total units: 4")
	assert.Contains(t, out, "Raw data (first 2 rows)")
	assert.Contains(t, out, "[duplicate]")
	assert.Contains(t, out, "[not_allowed]")
	assert.Contains(t, out, "Successful:      1")

	assert.FileExists(t, filepath.Join(root, "output", "ventas_raw_clean.csv"))
}

func TestProcessCommandDryRun(t *testing.T) {
	root, configPath := setupRun(t, "write_summary_log: true\n")

	_, err := execute(t, "process", "--config", configPath, "--dry-run", "--format", "xlsx")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(root, "output"))
}

func TestProcessCommandUnknownFormat(t *testing.T) {
	_, configPath := setupRun(t, "")

	_, err := execute(t, "process", "--config", configPath, "--format", "pdf")
	assert.Error(t, err)
}

func TestProcessCommandReportsFailedFiles(t *testing.T) {
	root, configPath := setupRun(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(root, "input", "vacio.csv"), nil, 0644))

	out, err := execute(t, "process", "--config", configPath, "--dry-run")
	assert.Error(t, err)
	assert.Contains(t, out, "Errors:          1")
}

func TestProcessCommandMissingExplicitConfig(t *testing.T) {
	_, err := execute(t, "process", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    "+Version)
}
