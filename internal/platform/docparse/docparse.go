// Package docparse extracts plain text from the optional PDF or DOCX fact
// sheets CuratedCSVAdapter rows may point at via a CollateralPath column.
package docparse

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ExtractText dispatches on the file extension of path and returns its
// best-effort plain-text contents. An unrecognized extension is an error
// rather than a silent empty string, since a misconfigured CollateralPath
// should surface during the source-adapter run rather than vanish.
func ExtractText(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("docparse: unsupported collateral extension %q", ext)
	}
}
