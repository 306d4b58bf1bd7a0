package exporter

import (
	"bytes"
	"fmt"

	"github.com/ginjaninja78/ventas-bi/internal/aggregator"
	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXML  Format = "xml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatXLSX, FormatXML}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, format := range Formats() {
		if string(format) == name {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", name)
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// Export encodes the cleaned set in the given format.
func Export(format Format, records []types.CleanRecord, summary aggregator.Summary, topProducts int) ([]byte, error) {
	switch format {
	case FormatCSV:
		return EncodeCSV(records), nil
	case FormatXML:
		return EncodeXML(records)
	case FormatXLSX:
		var buffer bytes.Buffer
		if err := WriteXLSX(&buffer, records, summary, topProducts); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
