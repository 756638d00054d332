// Package leadexport formats the Store's two export projections
// (ExportFlat, ExportGrouped) as CSV or JSON for the `export` CLI verb,
// per spec.md §6.
package leadexport

import "fmt"

// Format selects the output encoding of WriteFlat and WriteGrouped.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// errUnsupportedFormat builds the error WriteFlat and WriteGrouped return
// for any Format other than FormatCSV or FormatJSON.
func errUnsupportedFormat(f Format) error {
	return fmt.Errorf("leadexport: unsupported format %q", f)
}
