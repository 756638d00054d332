package docparse

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
)

// extractDOCX walks a docx's body paragraphs in document order and joins
// their run text. godocx appears in the teacher's go.mod but was never
// exercised there; this is the one place in the module that puts it to work.
func extractDOCX(path string) (string, error) {
	doc, err := godocx.OpenDocument(path)
	if err != nil {
		return "", fmt.Errorf("docparse: open docx %s: %w", path, err)
	}

	var sb strings.Builder
	for _, child := range doc.Document.Body.Children {
		if child.Para == nil {
			continue
		}
		text := child.Para.Text()
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
