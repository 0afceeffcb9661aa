// Package render formats analysis results for the terminal, as Markdown,
// and as standalone HTML.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/scoring"
)

// excerptLen bounds the quoted draft text shown per suggestion.
const excerptLen = 80

// Markdown renders an analysis report. text is the analyzed draft, used to
// quote the span each suggestion points at.
func Markdown(title, text string, r analyze.Result) string {
	var b strings.Builder

	if title == "" {
		title = "Untitled draft"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	m := r.Metrics
	b.WriteString("## Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	for _, row := range metricRows(m) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}

	b.WriteString("\n## Suggestions\n\n")
	if len(r.Suggestions) == 0 {
		b.WriteString("No suggestions.\n")
		return b.String()
	}
	for i, s := range r.Suggestions {
		fmt.Fprintf(&b, "%d. **%s** (%s, %s): %s\n", i+1, s.Rule, s.Category, s.Severity, s.Message)
		if s.Replacement != "" {
			fmt.Fprintf(&b, "   consider: *%s*\n", s.Replacement)
		}
		if ex := Excerpt(text, s.Span); ex != "" {
			fmt.Fprintf(&b, "\n   > %s\n", ex)
		}
	}
	return b.String()
}

// ScoreMarkdown renders a model scoring result.
func ScoreMarkdown(title string, r *scoring.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s: scoring\n\n", title)
	b.WriteString("| Rubric | Score |\n|---|---|\n")
	for _, row := range rubricRows(r.Metrics) {
		fmt.Fprintf(&b, "| %s | %.2f |\n", row.name, row.value)
	}
	fmt.Fprintf(&b, "| **overall** | **%.2f** |\n", r.Metrics.Overall())

	writeList(&b, "Strengths", r.StrengthsWeaknesses.Strengths)
	writeList(&b, "Weaknesses", r.StrengthsWeaknesses.Weaknesses)
	writeList(&b, "Strategic suggestions", r.StrategicSuggestions)

	if len(r.Paragraphs) > 0 {
		b.WriteString("\n## Paragraphs\n\n")
		for _, p := range r.Paragraphs {
			fmt.Fprintf(&b, "- **Paragraph %d**", p.ParagraphNumber)
			if len(p.Tags) > 0 {
				fmt.Fprintf(&b, " [%s]", strings.Join(p.Tags, ", "))
			}
			fmt.Fprintf(&b, ": %s\n", p.Feedback)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

// HTML converts a Markdown report into a standalone HTML page.
func HTML(title, markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>body{font-family:sans-serif;max-width:48rem;margin:2rem auto;}" +
		"table{border-collapse:collapse;}td,th{border:1px solid #ccc;padding:.25rem .5rem;}" +
		"blockquote{color:#555;border-left:3px solid #ccc;margin-left:0;padding-left:1rem;}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(buf.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// Excerpt returns the draft text under span (character offsets), collapsed
// to one line and shortened to excerptLen runes. Zero or out-of-range spans
// give "".
func Excerpt(text string, span analyze.Span) string {
	runes := []rune(text)
	if span.IsZero() || span.Start < 0 || span.End > len(runes) || span.Start >= span.End {
		return ""
	}
	ex := strings.Join(strings.Fields(string(runes[span.Start:span.End])), " ")
	if r := []rune(ex); len(r) > excerptLen {
		ex = string(r[:excerptLen]) + "..."
	}
	return ex
}

func metricRows(m analyze.LiveMetrics) [][2]string {
	return [][2]string{
		{"Words", fmt.Sprintf("%d", m.WordCount)},
		{"Characters", fmt.Sprintf("%d", m.CharacterCount)},
		{"Sentences", fmt.Sprintf("%d", m.SentenceCount)},
		{"Paragraphs", fmt.Sprintf("%d", m.ParagraphCount)},
		{"Words per sentence", fmt.Sprintf("%.1f", m.AvgWordsPerSentence)},
		{"Sentences per paragraph", fmt.Sprintf("%.1f", m.AvgSentencesPerParagraph)},
		{"Unique words", fmt.Sprintf("%d", m.UniqueWords)},
		{"Vocabulary diversity", fmt.Sprintf("%d%%", m.VocabularyDiversity)},
		{"Transition words", fmt.Sprintf("%d", m.TransitionWords)},
		{"Academic tone", fmt.Sprintf("%d%%", m.AcademicTone)},
		{"Reading level", m.ReadingLevel},
		{"Read time", fmt.Sprintf("%d min", m.EstimatedReadTime)},
	}
}

type rubricRow struct {
	name  string
	value float64
}

func rubricRows(m scoring.Metrics) []rubricRow {
	return []rubricRow{
		{"thesis clarity", m.ThesisClarity},
		{"argument depth", m.ArgumentDepth},
		{"structure balance", m.StructureBalance},
		{"evidence distribution", m.EvidenceDistribution},
		{"analysis to summary", m.AnalysisToSummaryRatio},
		{"sentence variety", m.SentenceVariety},
		{"logical progression", m.LogicalProgression},
	}
}
