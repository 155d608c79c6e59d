package domain

import "github.com/qepting91/signal-filter/internal/textnorm"

// Configuration holds the active rule parameters for one scan.
type Configuration struct {
	MinKarma      int      `yaml:"min_karma"`
	HideIntros    bool     `yaml:"hide_intros"`
	IntroPatterns []string `yaml:"intro_patterns,omitempty"`
	SpamDomains   []string `yaml:"spam_domains,omitempty"`
}

// DefaultConfiguration returns the built-in rule parameters.
func DefaultConfiguration() Configuration {
	return Configuration{
		MinKarma:   10,
		HideIntros: true,
		IntroPatterns: []string{
			"just landed",
			"hello world",
			"first post",
			"new here",
			"hi everyone",
		},
		SpamDomains: []string{
			"pornhub.com",
			"xvideos.com",
			"onlyfans.com",
		},
	}
}

// Sanitize returns a copy with normalized pattern lists. Entries that are
// blank after trimming are dropped since an empty substring matches any text.
func (c Configuration) Sanitize() Configuration {
	out := c
	if out.MinKarma < 0 {
		out.MinKarma = 0
	}
	out.IntroPatterns = textnorm.NormalizeAll(c.IntroPatterns)
	out.SpamDomains = textnorm.NormalizeAll(c.SpamDomains)
	return out
}

// Reason names a rule that voted to hide a post.
type Reason string

const (
	ReasonLowKarma     Reason = "low_karma"
	ReasonIntroPattern Reason = "intro_pattern"
	ReasonSpam         Reason = "spam"
	ReasonDuplicate    Reason = "duplicate"
)

// AllReasons lists every reason in evaluation order.
var AllReasons = []Reason{ReasonLowKarma, ReasonIntroPattern, ReasonSpam, ReasonDuplicate}

// ClassificationResult is the decision for one post.
type ClassificationResult struct {
	Hide    bool
	Reasons []Reason
}

// Has reports whether r is among the matched reasons.
func (r ClassificationResult) Has(reason Reason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}

// Flag records that reason matched and marks the result hidden.
func (r *ClassificationResult) Flag(reason Reason) {
	r.Hide = true
	if !r.Has(reason) {
		r.Reasons = append(r.Reasons, reason)
	}
}
