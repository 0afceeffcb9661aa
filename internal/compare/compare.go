// Package compare measures how two drafts of an essay differ using the
// local analyzer alone.
package compare

import (
	"fmt"
	"strings"

	"github.com/suykerbuyk/refinelab/internal/analyze"
)

// MetricDelta is one metric measured on both drafts.
type MetricDelta struct {
	Name   string  `json:"name"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Change float64 `json:"change"`
}

// CategoryDelta counts suggestions of one category on both drafts.
type CategoryDelta struct {
	Category analyze.Category `json:"category"`
	Before   int              `json:"before"`
	After    int              `json:"after"`
}

// Delta summarizes the change from one draft to another.
type Delta struct {
	Metrics            []MetricDelta   `json:"metrics"`
	ReadingLevelBefore string          `json:"reading_level_before"`
	ReadingLevelAfter  string          `json:"reading_level_after"`
	Categories         []CategoryDelta `json:"categories"`
	SuggestionsBefore  int             `json:"suggestions_before"`
	SuggestionsAfter   int             `json:"suggestions_after"`
}

// Metric names, in display order.
const (
	Words               = "words"
	Sentences           = "sentences"
	Paragraphs          = "paragraphs"
	WordsPerSentence    = "words/sentence"
	VocabularyDiversity = "vocabulary %"
	TransitionWords     = "transitions"
	AcademicTone        = "academic tone %"
)

var categories = []analyze.Category{analyze.Style, analyze.Grammar, analyze.Clarity, analyze.Structure}

// Compare computes the delta from before to after.
func Compare(before, after analyze.Result) Delta {
	b, a := before.Metrics, after.Metrics
	d := Delta{
		Metrics: []MetricDelta{
			metric(Words, float64(b.WordCount), float64(a.WordCount)),
			metric(Sentences, float64(b.SentenceCount), float64(a.SentenceCount)),
			metric(Paragraphs, float64(b.ParagraphCount), float64(a.ParagraphCount)),
			metric(WordsPerSentence, b.AvgWordsPerSentence, a.AvgWordsPerSentence),
			metric(VocabularyDiversity, float64(b.VocabularyDiversity), float64(a.VocabularyDiversity)),
			metric(TransitionWords, float64(b.TransitionWords), float64(a.TransitionWords)),
			metric(AcademicTone, float64(b.AcademicTone), float64(a.AcademicTone)),
		},
		ReadingLevelBefore: b.ReadingLevel,
		ReadingLevelAfter:  a.ReadingLevel,
		SuggestionsBefore:  len(before.Suggestions),
		SuggestionsAfter:   len(after.Suggestions),
	}

	bc, ac := countByCategory(before.Suggestions), countByCategory(after.Suggestions)
	for _, c := range categories {
		d.Categories = append(d.Categories, CategoryDelta{Category: c, Before: bc[c], After: ac[c]})
	}
	return d
}

// Metric returns the named metric delta.
func (d Delta) Metric(name string) (MetricDelta, bool) {
	for _, m := range d.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricDelta{}, false
}

func metric(name string, before, after float64) MetricDelta {
	return MetricDelta{Name: name, Before: before, After: after, Change: after - before}
}

func countByCategory(ss []analyze.Suggestion) map[analyze.Category]int {
	m := make(map[analyze.Category]int, len(categories))
	for _, s := range ss {
		m[s.Category]++
	}
	return m
}

// Format renders a Delta as aligned terminal output.
func Format(d Delta) string {
	var b strings.Builder

	b.WriteString("Metrics\n")
	fmt.Fprintf(&b, "  %-18s %8s %8s %8s\n", "", "before", "after", "change")
	for _, m := range d.Metrics {
		fmt.Fprintf(&b, "  %-18s %8s %8s %8s\n", m.Name, formatNum(m.Before), formatNum(m.After), formatChange(m.Change))
	}
	if d.ReadingLevelBefore == d.ReadingLevelAfter {
		fmt.Fprintf(&b, "  %-18s %s (unchanged)\n", "reading level", d.ReadingLevelAfter)
	} else {
		fmt.Fprintf(&b, "  %-18s %s -> %s\n", "reading level", d.ReadingLevelBefore, d.ReadingLevelAfter)
	}

	b.WriteString("\nSuggestions\n")
	for _, c := range d.Categories {
		fmt.Fprintf(&b, "  %-18s %8d %8d %8s\n", c.Category, c.Before, c.After, formatChange(float64(c.After-c.Before)))
	}
	fmt.Fprintf(&b, "  %-18s %8d %8d %8s\n", "total", d.SuggestionsBefore, d.SuggestionsAfter,
		formatChange(float64(d.SuggestionsAfter-d.SuggestionsBefore)))

	return b.String()
}

func formatNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func formatChange(v float64) string {
	if v == 0 {
		return "0"
	}
	s := formatNum(v)
	if v > 0 {
		return "+" + s
	}
	return s
}
