package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/scoring"
)

var (
	heading = color.New(color.Bold)
	faint   = color.New(color.Faint)

	severityColor = map[analyze.Severity]*color.Color{
		analyze.High:   color.New(color.FgRed, color.Bold),
		analyze.Medium: color.New(color.FgYellow),
		analyze.Low:    color.New(color.FgCyan),
	}
)

// Terminal renders an analysis report for a terminal. Colour is dropped
// automatically when stdout is not a TTY or NO_COLOR is set.
func Terminal(title, text string, r analyze.Result) string {
	var b strings.Builder

	if title == "" {
		title = "Untitled draft"
	}
	b.WriteString(heading.Sprint(title))
	b.WriteString("\n\n")

	b.WriteString(heading.Sprint("Metrics"))
	b.WriteString("\n")
	for _, row := range metricRows(r.Metrics) {
		fmt.Fprintf(&b, "  %-24s %s\n", strings.ToLower(row[0]), row[1])
	}

	fmt.Fprintf(&b, "\n%s (%d)\n", heading.Sprint("Suggestions"), len(r.Suggestions))
	if len(r.Suggestions) == 0 {
		b.WriteString("  none\n")
		return b.String()
	}
	for _, s := range r.Suggestions {
		sev := fmt.Sprintf("%-6s", s.Severity)
		if c, ok := severityColor[s.Severity]; ok {
			sev = c.Sprint(sev)
		}
		fmt.Fprintf(&b, "  %s %-9s %s\n", sev, s.Category, s.Message)
		if s.Replacement != "" {
			fmt.Fprintf(&b, "         consider: %s\n", s.Replacement)
		}
		if ex := Excerpt(text, s.Span); ex != "" {
			fmt.Fprintf(&b, "         %s\n", faint.Sprintf("%q at %d-%d", ex, s.Span.Start, s.Span.End))
		}
	}
	return b.String()
}

// ScoreTerminal renders a model scoring result for a terminal.
func ScoreTerminal(title string, r *scoring.Result) string {
	var b strings.Builder

	b.WriteString(heading.Sprint(title))
	b.WriteString("\n\n")
	for _, row := range rubricRows(r.Metrics) {
		fmt.Fprintf(&b, "  %-24s %.2f %s\n", row.name, row.value, bar(row.value))
	}
	fmt.Fprintf(&b, "  %-24s %.2f\n", "overall", r.Metrics.Overall())

	list := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s\n", heading.Sprint(name))
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	}
	list("Strengths", r.StrengthsWeaknesses.Strengths)
	list("Weaknesses", r.StrengthsWeaknesses.Weaknesses)
	list("Strategic suggestions", r.StrategicSuggestions)
	return b.String()
}

// bar draws v in [0, 1] as a ten-cell gauge.
func bar(v float64) string {
	n := int(v*10 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", 10-n) + "]"
}

// FingerprintTerminal renders a writing fingerprint. generated is the
// cache timestamp line shown under the heading; empty omits it.
func FingerprintTerminal(fp *scoring.Fingerprint, essays int, generated string) string {
	var b strings.Builder
	b.WriteString(heading.Sprint("Writing fingerprint"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-24s %d\n", "essays sampled", essays)
	fmt.Fprintf(&b, "  %-24s %.1f\n", "avg paragraph words", fp.AvgParagraphWords)
	if generated != "" {
		fmt.Fprintf(&b, "  %s\n", faint.Sprint("generated "+generated))
	}
	for _, sec := range []struct {
		name  string
		items []string
	}{
		{"Tone tendencies", fp.ToneTendencies},
		{"Structural patterns", fp.StructuralPatterns},
		{"Pacing issues", fp.PacingIssues},
		{"Evidence habits", fp.EvidenceHabits},
	} {
		fmt.Fprintf(&b, "\n%s\n", heading.Sprint(sec.name))
		if len(sec.items) == 0 {
			b.WriteString("  none noted\n")
			continue
		}
		for _, it := range sec.items {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	}
	return b.String()
}

// PredictionTerminal renders a grade prediction.
func PredictionTerminal(title string, p *scoring.Prediction, patterns int) string {
	var b strings.Builder
	b.WriteString(heading.Sprint(title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %-24s %s\n", "predicted grade", p.GradeBand)
	fmt.Fprintf(&b, "  %-24s %.2f %s\n", "confidence", p.Confidence, bar(p.Confidence))
	fmt.Fprintf(&b, "  %-24s %d\n", "patterns used", patterns)
	if len(p.KeyFactors) > 0 {
		fmt.Fprintf(&b, "\n%s\n", heading.Sprint("Key factors"))
		for _, f := range p.KeyFactors {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	return b.String()
}
