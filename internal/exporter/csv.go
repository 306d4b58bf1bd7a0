// =============================================================================
// Ventas BI - CSV Export
// =============================================================================
//
// Serializes the cleaned set back into the same simple comma-separated
// format the parser reads:
//
//   fecha,franja,producto,familia,unidades,precio_unitario,importe
//   2024-01-05,Desayuno,Café,Bebida,2,1.5,3
//
// Fields are joined as-is with no quoting, matching the parser, so that
// parsing and cleaning an export reproduces the same cleaned set.
//
// =============================================================================

package exporter

import (
	"strings"

	"github.com/ginjaninja78/ventas-bi/internal/csvparser"
	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// EncodeCSV renders records with a canonical header row.
func EncodeCSV(records []types.CleanRecord) []byte {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(types.CleanFields(), csvparser.Delimiter))

	for _, record := range records {
		lines = append(lines, strings.Join(record.Values(), csvparser.Delimiter))
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}
