package sources

import "strings"

// ColumnMapping resolves a CSV/table's actual headers to a fixed internal
// name once at load, replacing dynamic per-row attribute access (spec §9).
type ColumnMapping map[string][]string

// CuratedCSVColumns is the header candidate table for CuratedCSVAdapter.
var CuratedCSVColumns = ColumnMapping{
	"name":           {"Company", "Company Name", "Name"},
	"website":        {"Website", "Company Website", "URL"},
	"industry":       {"Industry", "Sector"},
	"employee_count":  {"Employee Count", "Employees", "Size"},
	"keywords":       {"Keywords", "Tags"},
	"collateral_path": {"CollateralPath", "Fact Sheet", "Collateral"},
}

// Resolve builds actual-header -> internal-name index for one CSV's header
// row, matching case-insensitively and trimming whitespace.
func (m ColumnMapping) Resolve(headers []string) map[int]string {
	lookup := make(map[string]string)
	for internalName, candidates := range m {
		for _, c := range candidates {
			lookup[strings.ToLower(strings.TrimSpace(c))] = internalName
		}
	}

	resolved := make(map[int]string)
	for i, h := range headers {
		if internalName, ok := lookup[strings.ToLower(strings.TrimSpace(h))]; ok {
			resolved[i] = internalName
		}
	}
	return resolved
}
