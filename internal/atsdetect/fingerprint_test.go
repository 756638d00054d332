package atsdetect

import (
	"testing"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/stretchr/testify/assert"
)

func TestFingerprintMatch_CapturesToken(t *testing.T) {
	html := `<script src="https://boards.greenhouse.io/embed/job_board?for=acme"></script>`
	provider, token, ok := fingerprintMatch(html)

	assert.True(t, ok)
	assert.Equal(t, model.ATSGreenhouse, provider)
	assert.Equal(t, "acme", token)
}

func TestFingerprintMatch_NoMatch(t *testing.T) {
	_, _, ok := fingerprintMatch(`<html><body>nothing here</body></html>`)
	assert.False(t, ok)
}

func TestExtractLinkedInSlug(t *testing.T) {
	html := `<a href="https://www.linkedin.com/company/acme-robotics">LinkedIn</a>`
	assert.Equal(t, "acme-robotics", extractLinkedInSlug(html))
}

func TestExtractLinkedInSlug_Absent(t *testing.T) {
	assert.Equal(t, "", extractLinkedInSlug(`<html></html>`))
}
