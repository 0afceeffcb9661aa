package analyze

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule is one independent detector. Check scans the document and appends
// to acc until acc reports it is full.
type Rule struct {
	Name  string
	Check func(a *Analyzer, doc *Document, acc *Accumulator)
}

// Accumulator is the capped suggestion list shared by all rules in a pass.
type Accumulator struct {
	limit int
	rule  string
	text  string
	ascii bool
	items []Suggestion
}

func newAccumulator(limit int, text string) *Accumulator {
	return &Accumulator{
		limit: limit,
		text:  text,
		ascii: isASCII(text),
		items: make([]Suggestion, 0, min(limit, 32)),
	}
}

// Add appends s and reports whether there is room for more.
// Once the cap is reached further calls are dropped.
//
// Rules give s.Span in byte offsets, as returned by regexp and Segment.
// Add converts it to character offsets before storing it.
func (acc *Accumulator) Add(s Suggestion) bool {
	if len(acc.items) >= acc.limit {
		return false
	}
	if s.Rule == "" {
		s.Rule = acc.rule
	}
	if !acc.ascii && !s.Span.IsZero() {
		s.Span = Span{acc.chars(s.Span.Start), acc.chars(s.Span.End)}
	}
	acc.items = append(acc.items, s)
	return len(acc.items) < acc.limit
}

// chars converts a byte offset into the draft to a rune offset.
func (acc *Accumulator) chars(b int) int {
	b = max(0, min(b, len(acc.text)))
	return utf8.RuneCountInString(acc.text[:b])
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Remaining is how many more suggestions fit.
func (acc *Accumulator) Remaining() int { return acc.limit - len(acc.items) }

// Full reports whether the cap has been reached.
func (acc *Accumulator) Full() bool { return len(acc.items) >= acc.limit }

// Suggestions returns what has been collected so far.
func (acc *Accumulator) Suggestions() []Suggestion { return acc.items }

func (a *Analyzer) detect(doc *Document) []Suggestion {
	acc := newAccumulator(a.cfg.SuggestionCap, doc.Text)
	for _, r := range a.rules {
		if acc.Full() {
			break
		}
		acc.rule = r.Name
		r.Check(a, doc, acc)
	}
	return acc.items
}

// DefaultRules returns the full rule set in emission order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "passive-voice", Check: checkPassiveVoice},
		{Name: "weak-qualifier", Check: checkWeakQualifiers},
		{Name: "repetition", Check: checkRepetition},
		{Name: "long-sentence", Check: checkLongSentences},
		{Name: "long-paragraph", Check: checkLongParagraphs},
		{Name: "single-sentence-paragraph", Check: checkSingleSentenceParagraphs},
		{Name: "missing-transition", Check: checkParagraphTransitions},
		{Name: "wordy-phrase", Check: checkPhrases},
	}
}

func checkPassiveVoice(a *Analyzer, doc *Document, acc *Accumulator) {
	if a.passive == nil {
		return
	}
	for _, loc := range a.passive.FindAllStringIndex(doc.Text, acc.Remaining()) {
		if !acc.Add(Suggestion{
			Category: Style,
			Severity: Low,
			Message:  "Consider using active voice for stronger writing",
			Span:     Span{loc[0], loc[1]},
		}) {
			return
		}
	}
}

func checkWeakQualifiers(a *Analyzer, doc *Document, acc *Accumulator) {
	if a.qualifiers == nil {
		return
	}
	for _, loc := range a.qualifiers.FindAllStringIndex(doc.Text, acc.Remaining()) {
		word := strings.ToLower(strings.TrimSpace(doc.Text[loc[0]:loc[1]]))
		if !acc.Add(Suggestion{
			Category: Style,
			Severity: Medium,
			Message:  fmt.Sprintf("Remove the qualifier %q and use a stronger word", word),
			Span:     Span{loc[0], loc[1]},
		}) {
			return
		}
	}
}

// checkRepetition reports each long word used too often anywhere in the
// draft, in order of first appearance. The span is zero because the issue
// is document-wide.
func checkRepetition(a *Analyzer, doc *Document, acc *Accumulator) {
	counts := make(map[string]int)
	var order []string
	for _, w := range doc.Words {
		norm := normalizeWord(w.Text)
		if runeLen(norm) <= a.cfg.RepetitionMinLength {
			continue
		}
		if counts[norm] == 0 {
			order = append(order, norm)
		}
		counts[norm]++
	}
	for _, word := range order {
		n := counts[word]
		if n <= a.cfg.RepetitionMaxCount {
			continue
		}
		if !acc.Add(Suggestion{
			Category: Style,
			Severity: Low,
			Message:  fmt.Sprintf("%q appears %d times. Consider varying your word choice.", word, n),
		}) {
			return
		}
	}
}

func checkLongSentences(a *Analyzer, doc *Document, acc *Accumulator) {
	for _, s := range doc.Sentences {
		n := len(strings.Fields(s.Text))
		if n <= a.cfg.LongSentenceWords {
			continue
		}
		if !acc.Add(Suggestion{
			Category: Clarity,
			Severity: High,
			Message:  fmt.Sprintf("Long sentence (%d words). Consider breaking it up.", n),
			Span:     Span{s.Start, s.End},
		}) {
			return
		}
	}
}

func checkLongParagraphs(a *Analyzer, doc *Document, acc *Accumulator) {
	for i, p := range doc.Paragraphs {
		n := len(doc.paragraphSentences(i))
		if n <= a.cfg.LongParagraphSentences {
			continue
		}
		if !acc.Add(Suggestion{
			Category: Structure,
			Severity: Medium,
			Message:  fmt.Sprintf("Long paragraph (%d sentences). Consider splitting.", n),
			Span:     Span{p.Start, p.End},
		}) {
			return
		}
	}
}

func checkSingleSentenceParagraphs(a *Analyzer, doc *Document, acc *Accumulator) {
	for i, p := range doc.Paragraphs {
		if len(doc.paragraphSentences(i)) != 1 {
			continue
		}
		if len(strings.Fields(p.Text)) <= a.cfg.SingleSentenceParagraphWords {
			continue
		}
		if !acc.Add(Suggestion{
			Category: Structure,
			Severity: Low,
			Message:  "Single-sentence paragraph. Consider developing the idea with support or analysis.",
			Span:     Span{p.Start, p.End},
		}) {
			return
		}
	}
}

// checkParagraphTransitions flags every paragraph after the first whose
// opening sentence has none of the configured transition words.
func checkParagraphTransitions(a *Analyzer, doc *Document, acc *Accumulator) {
	if len(a.paraLinks) == 0 {
		return
	}
	for i := 1; i < len(doc.Paragraphs); i++ {
		sentences := doc.paragraphSentences(i)
		if len(sentences) == 0 {
			continue
		}
		linked := false
		for _, w := range strings.Fields(sentences[0].Text) {
			if _, ok := a.paraLinks[normalizeWord(w)]; ok {
				linked = true
				break
			}
		}
		if linked {
			continue
		}
		if !acc.Add(Suggestion{
			Category: Structure,
			Severity: Low,
			Message:  fmt.Sprintf("Paragraph %d opens without a transition. Consider linking it to the previous paragraph.", i+1),
		}) {
			return
		}
	}
}

func checkPhrases(a *Analyzer, doc *Document, acc *Accumulator) {
	for _, p := range a.phrases {
		if acc.Full() {
			return
		}
		for _, loc := range p.re.FindAllStringIndex(doc.Text, acc.Remaining()) {
			if !acc.Add(Suggestion{
				Category:    Style,
				Severity:    Medium,
				Message:     fmt.Sprintf("Wordy phrase %q. Consider %q.", p.phrase, p.replacement),
				Span:        Span{loc[0], loc[1]},
				Replacement: p.replacement,
			}) {
				return
			}
		}
	}
}

// paragraphSentences splits paragraph i into sentences with draft-relative
// spans, caching the result for the rest of the pass.
func (d *Document) paragraphSentences(i int) []Segment {
	if d.paraSentences == nil {
		d.paraSentences = make([][]Segment, len(d.Paragraphs))
		d.paraDone = make([]bool, len(d.Paragraphs))
	}
	if !d.paraDone[i] {
		p := d.Paragraphs[i]
		d.paraSentences[i] = splitSentences(p.Text, p.Start)
		d.paraDone[i] = true
	}
	return d.paraSentences[i]
}
