// Package analyze computes live writing metrics and rule-based suggestions
// for an essay draft. It is pure in-memory computation: no I/O, no global
// mutable state, and no error paths.
package analyze

import (
	"regexp"
	"strings"
)

// Analyzer holds a Config and the patterns compiled from it.
// It is safe for concurrent use; every method reads only immutable state.
type Analyzer struct {
	cfg         Config
	rules       []Rule
	transitions map[string]struct{}
	paraLinks   map[string]struct{}
	passive     *regexp.Regexp
	qualifiers  *regexp.Regexp
	phrases     []compiledPhrase
}

type compiledPhrase struct {
	re          *regexp.Regexp
	phrase      string
	replacement string
}

// New compiles cfg into an Analyzer. Zero thresholds and nil lists take
// their DefaultConfig values; empty non-nil lists disable the rule that
// reads them.
func New(cfg Config) *Analyzer {
	cfg = cfg.withDefaults()
	a := &Analyzer{
		cfg:         cfg,
		rules:       DefaultRules(),
		transitions: wordSet(cfg.TransitionWords),
		paraLinks:   wordSet(cfg.ParagraphTransitions),
		passive:     alternation(`\b(?:`, cfg.BeVerbs, `)\s+\w+ed\b`),
		qualifiers:  alternation(`\b(?:`, cfg.WeakQualifiers, `)\s+`),
	}
	for _, p := range cfg.Phrases {
		words := strings.Fields(p.Pattern)
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		a.phrases = append(a.phrases, compiledPhrase{
			re:          regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`),
			phrase:      strings.ToLower(strings.Join(strings.Fields(p.Pattern), " ")),
			replacement: p.Replacement,
		})
	}
	return a
}

// WithRules returns a copy of a that runs rules instead of DefaultRules.
func (a *Analyzer) WithRules(rules ...Rule) *Analyzer {
	cp := *a
	cp.rules = rules
	return &cp
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Metrics computes LiveMetrics for text.
func (a *Analyzer) Metrics(text string) LiveMetrics {
	return a.computeMetrics(SegmentText(text))
}

// Detect runs every rule against text and returns at most SuggestionCap
// suggestions, in rule order.
func (a *Analyzer) Detect(text string) []Suggestion {
	return a.detect(SegmentText(text))
}

// Analyze runs both passes over a single segmentation of text.
func (a *Analyzer) Analyze(text string) Result {
	doc := SegmentText(text)
	return Result{
		Metrics:     a.computeMetrics(doc),
		Suggestions: a.detect(doc),
	}
}

// alternation builds a case-insensitive pattern prefix(w1|w2|...)suffix.
// It returns nil for an empty list so the owning rule matches nothing.
func alternation(prefix string, words []string, suffix string) *regexp.Regexp {
	var quoted []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)` + prefix + strings.Join(quoted, "|") + suffix)
}
