// =============================================================================
// Ventas BI - Main Entry Point
// =============================================================================
//
// USAGE:
//   ventas process       - Clean and summarize sales CSV files
//   ventas version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parser, cleaner, aggregator, exporters, pipeline
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/ventas-bi/cmd"
)

func main() {
	cmd.Execute()
}
