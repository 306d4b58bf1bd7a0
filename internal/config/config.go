// =============================================================================
// Ventas BI - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration.
//
// CONFIGURATION FILE:
//   config.yaml: directories, export settings, display settings, logging.
//   Every key is optional; missing keys take the defaults listed below.
//
// ENVIRONMENT:
//   Every key can be overridden with a VENTAS_ prefixed variable, for
//   example VENTAS_OUTPUT_DIR or VENTAS_EXPORT_FORMATS=csv,xlsx.
//
// LOADING PROCESS:
//   1. Read the YAML file
//   2. Unmarshal into MainConfig
//   3. Apply environment overrides
//   4. Apply defaults
//   5. Validate
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/ventas-bi/internal/exporter"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VENTAS"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for *.csv files when no single file is given.
	// Default: "./input"
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`

	// OutputDir receives the exported files and the run summary.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`

	// InputArchiveDir receives processed input files when ArchiveInput is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" envconfig:"INPUT_ARCHIVE_DIR"`

	// =========================================================================
	// EXPORT SETTINGS
	// =========================================================================

	// OutputFileFormat names exported files, without extension.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{original}_clean"
	// Files are processed concurrently; two inputs with the same base name
	// (e.g. ventas.csv in a run given explicit paths from different
	// directories) map to the same export unless the format includes
	// {uuid} or {timestamp}.
	OutputFileFormat string `yaml:"output_file_format" envconfig:"OUTPUT_FILE_FORMAT" validate:"required"`

	// ExportFormats lists the formats written for every processed file.
	// Valid values: "csv", "xlsx", "xml"
	// Default: ["csv"]
	ExportFormats []string `yaml:"export_formats" envconfig:"EXPORT_FORMATS" validate:"min=1,dive,export_format"`

	// ArchiveInput moves each successfully processed input to InputArchiveDir.
	// Default: false
	ArchiveInput bool `yaml:"archive_input" envconfig:"ARCHIVE_INPUT"`

	// WriteRejectionLog writes the rejected rows of each input file, with
	// the rule each one failed, to OutputDir.
	// Default: false
	WriteRejectionLog bool `yaml:"write_rejection_log" envconfig:"WRITE_REJECTION_LOG"`

	// WriteSummaryLog writes a plain-text run summary to OutputDir.
	// Default: false
	WriteSummaryLog bool `yaml:"write_summary_log" envconfig:"WRITE_SUMMARY_LOG"`

	// =========================================================================
	// DISPLAY SETTINGS
	// =========================================================================

	// PreviewRows is the number of raw and clean rows shown in previews.
	// Default: 10
	PreviewRows int `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" validate:"gte=0"`

	// TopProducts is the number of products ranked in the summary.
	// Default: 5
	TopProducts int `yaml:"top_products" envconfig:"TOP_PRODUCTS" validate:"gte=0"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// LogMode selects the zap preset.
	// Valid values: "development", "production"
	// Default: "development"
	LogMode string `yaml:"log_mode" envconfig:"LOG_MODE" validate:"oneof=development production"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"gte=0"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// FromEnv builds a configuration from environment overrides and defaults
// alone, for runs without a config file.
func FromEnv() (*MainConfig, error) {
	return ParseMainConfig(nil)
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// ParseMainConfig parses YAML content, applies defaults and validates.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to load config from env: %w", ErrInvalidConfig, err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputFileFormat == "" {
		config.OutputFileFormat = "{original}_clean"
	}
	if len(config.ExportFormats) == 0 {
		config.ExportFormats = []string{string(exporter.FormatCSV)}
	}
	if config.PreviewRows == 0 {
		config.PreviewRows = 10
	}
	if config.TopProducts == 0 {
		config.TopProducts = 5
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogMode == "" {
		config.LogMode = "development"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig checks values that defaults cannot repair.
func validateMainConfig(config *MainConfig) error {
	err := newValidator().Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, describe(fieldErr))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

// newValidator returns a validator that reports fields by their YAML key
// and knows the export_format rule.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil function.
	_ = v.RegisterValidation("export_format", func(fl validator.FieldLevel) bool {
		_, err := exporter.ParseFormat(fl.Field().String())
		return err == nil
	})

	return v
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "gte":
		return fmt.Sprintf("%s must not be negative", fieldErr.Field())
	case "min":
		return fmt.Sprintf("%s must list at least %s value", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("unknown %s %q (want one of: %s)", fieldErr.Field(), fieldErr.Value(), fieldErr.Param())
	case "export_format":
		return fmt.Sprintf("unknown export format %q in %s", fieldErr.Value(), fieldErr.Field())
	default:
		return fmt.Sprintf("%s failed %s", fieldErr.Field(), fieldErr.Tag())
	}
}

// Formats returns ExportFormats as typed export formats.
func (c *MainConfig) Formats() ([]exporter.Format, error) {
	formats := make([]exporter.Format, 0, len(c.ExportFormats))
	for _, name := range c.ExportFormats {
		format, err := exporter.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}
	return formats, nil
}
