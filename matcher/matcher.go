package matcher

import (
	"strings"
	"unicode"
)

// Canned answers for the default rules.
const (
	ProfileAnswer     = "To update your profile, log in to your JobsForHer account, click on your profile picture in the top right, select 'Edit Profile', and update your information as needed."
	ApplicationAnswer = "To apply for jobs, browse our job listings, click on a job you're interested in, and click the 'Apply' button. Make sure your profile is complete with your resume and relevant experience."
	SignUpAnswer      = "To create a JobsForHer account, visit our homepage and click 'Sign Up'. Enter your email address and create a password, then complete your profile with your professional details."
)

// fillers are dropped from the normalized query so "update my profile"
// still contains "update profile".
var fillers = map[string]struct{}{
	"my": {}, "your": {}, "our": {}, "a": {}, "an": {}, "the": {},
}

// Rule maps a set of keyword phrases to a fixed answer.
type Rule struct {
	Keywords []string
	Answer   string
}

// Matcher resolves queries against an ordered list of rules.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	rules []Rule
}

// New creates a matcher over rules, evaluated in the given order.
// Keywords are lower-cased.
func New(rules ...Rule) *Matcher {
	normalized := make([]Rule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[j] = strings.ToLower(kw)
		}
		normalized[i] = Rule{Keywords: keywords, Answer: rule.Answer}
	}
	return &Matcher{rules: normalized}
}

// Default returns the matcher with the built-in rules: profile updates,
// job applications, then account creation.
func Default() *Matcher {
	return New(
		Rule{Keywords: []string{"update profile", "edit profile"}, Answer: ProfileAnswer},
		Rule{Keywords: []string{"apply for job", "job application"}, Answer: ApplicationAnswer},
		Rule{Keywords: []string{"sign up", "register", "create account"}, Answer: SignUpAnswer},
	)
}

// Rules returns a copy of the matcher's rules in evaluation order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Match returns the answer of the first rule with a keyword contained in the
// lower-cased query, or in its normalized form. ok is false when no rule
// matches.
func (m *Matcher) Match(query string) (answer string, ok bool) {
	lower := strings.ToLower(query)
	normalized := Normalize(query)
	for _, rule := range m.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) || strings.Contains(normalized, kw) {
				return rule.Answer, true
			}
		}
	}
	return "", false
}

// Normalize lower-cases text, replaces punctuation with spaces, drops filler
// words and collapses whitespace.
func Normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	words := strings.Fields(mapped)
	kept := words[:0]
	for _, w := range words {
		if _, filler := fillers[w]; filler {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
