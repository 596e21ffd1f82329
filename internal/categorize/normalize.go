// Package categorize maps raw bank narrations and merchant strings to
// spending categories via user rules, a built-in keyword table and an
// optional LLM fallback.
package categorize

import (
	"regexp"
	"strings"
)

var (
	leadingChannelRe = regexp.MustCompile(`^(UPI|POS|NEFT|IMPS|ATM|VISA|MSTR)[\s\-_/*:]+`)
	trailingRefRe    = regexp.MustCompile(`[*\-][A-Z0-9]{5,}$`)
	suffixRe         = regexp.MustCompile(`\s+(PRIVATE LIMITED|PVT LTD|LTD|INDIA)$`)
	separatorRe      = regexp.MustCompile(`[-_/*]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// NormalizeMerchant reduces a raw narration to a short upper-case
// merchant token: channel prefixes, trailing references and company
// suffixes are stripped and at most the first three words kept.
func NormalizeMerchant(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = leadingChannelRe.ReplaceAllString(s, "")
	s = trailingRefRe.ReplaceAllString(s, "")
	s = suffixRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")

	tokens := strings.Split(s, " ")
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return strings.Join(tokens, " ")
}
