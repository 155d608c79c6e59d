// Package classify decides whether a post is low-signal.
//
// Four rules vote independently and any one of them hides the post:
// karma below the configured minimum, an introduction boilerplate phrase,
// a short post mentioning a spam domain, and a title seen three or more times.
package classify

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/textnorm"
)

// SpamMaxLength is the trimmed length below which a field is checked for spam domains.
const SpamMaxLength = 50

// Classify evaluates every rule against attrs. It records the normalized
// title in tracker exactly once per call, so classifying the same post twice
// counts it twice. Pattern and domain lists match case-insensitively whether
// or not cfg has been sanitized.
func Classify(attrs domain.PostAttributes, cfg domain.Configuration, tracker *DuplicateTracker) domain.ClassificationResult {
	var res domain.ClassificationResult

	if attrs.Karma < cfg.MinKarma {
		res.Flag(domain.ReasonLowKarma)
	}

	title := textnorm.Normalize(attrs.Title)
	if cfg.HideIntros {
		if textnorm.ContainsAny(title, cfg.IntroPatterns) ||
			textnorm.ContainsAny(textnorm.Normalize(attrs.Content), cfg.IntroPatterns) {
			res.Flag(domain.ReasonIntroPattern)
		}
	}

	if isSpam(attrs.Title, cfg.SpamDomains) || isSpam(attrs.Content, cfg.SpamDomains) {
		res.Flag(domain.ReasonSpam)
	}

	if tracker != nil && tracker.RecordAndCheck(title) {
		res.Flag(domain.ReasonDuplicate)
	}

	return res
}

// isSpam flags short, link-style text that mentions a spam domain.
func isSpam(text string, domains []string) bool {
	c := strings.TrimSpace(text)
	if utf8.RuneCountInString(c) >= SpamMaxLength {
		return false
	}
	return textnorm.ContainsAny(strings.ToLower(c), domains)
}

// ParseKarma reads the leading integer of a karma display string such as
// "42" or "-3 points". Anything unparseable is 0.
func ParseKarma(text string) int {
	s := strings.TrimSpace(text)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
