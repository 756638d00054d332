package docparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText_UnsupportedExtension(t *testing.T) {
	_, err := ExtractText("fact-sheet.txt")
	assert.ErrorContains(t, err, "unsupported collateral extension")
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := ExtractText("/nonexistent/fact-sheet.pdf")
	assert.Error(t, err)
}
