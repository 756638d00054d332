package atsdetect

import (
	"regexp"
	"strings"
)

var punctuationRe = regexp.MustCompile(`[^a-z0-9\s-]`)
var invalidTokenCharsRe = regexp.MustCompile(`[_()&,.\s]`)

// CandidateTokens produces up to 10 candidate tenant tokens for a company
// name and domain, per spec §4.3.1, uniquified in first-seen order.
func CandidateTokens(companyName, domain string, linkedInSlug string) []string {
	var raw []string

	domainBase := firstLabel(domain)
	if domainBase != "" {
		raw = append(raw, domainBase, strings.ReplaceAll(domainBase, "-", ""))
	}

	normalized := normalizeName(companyName)
	words := strings.Fields(normalized)
	if len(words) > 0 {
		raw = append(raw, strings.Join(words, ""), strings.Join(words, "-"))
		raw = append(raw, words[0])
	}
	if len(words) >= 3 {
		acronym := acronymOf(words)
		if len(acronym) >= 3 {
			raw = append(raw, acronym)
		}
	}
	if linkedInSlug != "" {
		raw = append(raw, linkedInSlug)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if !validToken(c) || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == 10 {
			break
		}
	}
	return out
}

func firstLabel(domain string) string {
	domain = strings.ToLower(strings.TrimPrefix(domain, "www."))
	if i := strings.Index(domain, "."); i >= 0 {
		return domain[:i]
	}
	return domain
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = punctuationRe.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

func acronymOf(words []string) string {
	var b strings.Builder
	for _, w := range words {
		if w != "" {
			b.WriteByte(w[0])
		}
	}
	return b.String()
}

func validToken(token string) bool {
	if len(token) <= 2 || len(token) >= 50 {
		return false
	}
	if invalidTokenCharsRe.MatchString(token) {
		return false
	}
	if strings.HasSuffix(token, "-") {
		return false
	}
	return true
}
