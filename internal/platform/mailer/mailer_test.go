package mailer

import (
	"strings"
	"testing"
)

func TestNew_BlankAPIKeyDisablesClient(t *testing.T) {
	c := New("", "from@hirescout.dev", "ops@acme.com")
	if err := c.SendDigest(Digest{RunID: "run-1"}); err != nil {
		t.Fatalf("expected no-op client to succeed, got %v", err)
	}
}

func TestNew_BlankRecipientDisablesClient(t *testing.T) {
	c := New("re_fake_key", "from@hirescout.dev", "")
	if err := c.SendDigest(Digest{RunID: "run-1"}); err != nil {
		t.Fatalf("expected no-op client to succeed, got %v", err)
	}
}

func TestDigestHTML_ContainsRunID(t *testing.T) {
	html := digestHTML(Digest{RunID: "run-42", TotalNewJobs: 3})
	if !strings.Contains(html, "run-42") {
		t.Fatalf("expected html to contain run id, got %q", html)
	}
}
