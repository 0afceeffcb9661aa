package analyze

import (
	"fmt"
	"strings"
	"testing"
)

func byRule(ss []Suggestion, rule string) []Suggestion {
	var out []Suggestion
	for _, s := range ss {
		if s.Rule == rule {
			out = append(out, s)
		}
	}
	return out
}

func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestDetect_WeakQualifier(t *testing.T) {
	a := New(DefaultConfig())
	text := "I am very happy"
	got := a.Detect(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", len(got), got)
	}
	s := got[0]
	if s.Category != Style || s.Severity != Medium {
		t.Errorf("got %s/%s, want style/medium", s.Category, s.Severity)
	}
	if s.Span != (Span{5, 10}) {
		t.Errorf("span = %v, want {5 10}", s.Span)
	}
	if text[s.Span.Start:s.Span.End] != "very " {
		t.Errorf("span text = %q", text[s.Span.Start:s.Span.End])
	}
}

func TestDetect_SpansAreCharacterOffsets(t *testing.T) {
	a := New(DefaultConfig())
	text := "Café naïve résumé: she was very happy."
	r := a.Analyze(text)
	got := byRule(r.Suggestions, "weak-qualifier")
	if len(got) != 1 {
		t.Fatalf("weak-qualifier suggestions = %+v", r.Suggestions)
	}
	if got[0].Span != (Span{27, 32}) {
		t.Errorf("span = %v, want {27 32}", got[0].Span)
	}
	runes := []rune(text)
	if ex := string(runes[got[0].Span.Start:got[0].Span.End]); ex != "very " {
		t.Errorf("span text = %q", ex)
	}
	if r.Metrics.CharacterCount != len(runes) || got[0].Span.End > r.Metrics.CharacterCount {
		t.Errorf("CharacterCount = %d, runes = %d", r.Metrics.CharacterCount, len(runes))
	}
}

func TestDetect_SentenceSpanAfterMultibyteText(t *testing.T) {
	a := New(DefaultConfig())
	text := "Über. " + strings.Repeat("x ", 40)
	got := byRule(a.Detect(text), "long-sentence")
	if len(got) != 1 {
		t.Fatalf("long-sentence suggestions = %d", len(got))
	}
	want := Span{6, len([]rune(strings.TrimSpace(text)))}
	if got[0].Span != want {
		t.Errorf("span = %v, want %v", got[0].Span, want)
	}
}

func TestDetect_LongSentence(t *testing.T) {
	a := New(DefaultConfig())
	text := numberedWords(40) + "."
	got := byRule(a.Detect(text), "long-sentence")
	if len(got) != 1 {
		t.Fatalf("expected 1 long-sentence suggestion, got %d", len(got))
	}
	s := got[0]
	if s.Category != Clarity || s.Severity != High {
		t.Errorf("got %s/%s, want clarity/high", s.Category, s.Severity)
	}
	if !strings.Contains(s.Message, "40 words") {
		t.Errorf("message = %q, want it to mention 40 words", s.Message)
	}
	if s.Span != (Span{0, len(text) - 1}) {
		t.Errorf("span = %v", s.Span)
	}

	clarity := 0
	for _, s := range a.Detect(text) {
		if s.Category == Clarity {
			clarity++
		}
	}
	if clarity != 1 {
		t.Errorf("clarity suggestions = %d, want 1", clarity)
	}
}

func TestDetect_SentenceAtThresholdNotFlagged(t *testing.T) {
	a := New(DefaultConfig())
	if got := byRule(a.Detect(numberedWords(35)+"."), "long-sentence"); len(got) != 0 {
		t.Errorf("35-word sentence flagged: %+v", got)
	}
}

func TestDetect_PassiveVoice(t *testing.T) {
	a := New(DefaultConfig())
	text := "The ball was kicked by the boy."
	got := byRule(a.Detect(text), "passive-voice")
	if len(got) != 1 {
		t.Fatalf("expected 1 passive suggestion, got %d", len(got))
	}
	if got[0].Category != Style || got[0].Severity != Low {
		t.Errorf("got %s/%s, want style/low", got[0].Category, got[0].Severity)
	}
	if span := text[got[0].Span.Start:got[0].Span.End]; span != "was kicked" {
		t.Errorf("span text = %q, want %q", span, "was kicked")
	}
}

func TestDetect_Repetition(t *testing.T) {
	a := New(DefaultConfig())

	text := strings.TrimSpace(strings.Repeat("Analysis ", 6))
	got := byRule(a.Detect(text), "repetition")
	if len(got) != 1 {
		t.Fatalf("expected 1 repetition suggestion, got %d", len(got))
	}
	if !got[0].Span.IsZero() {
		t.Errorf("span = %v, want zero", got[0].Span)
	}
	if !strings.Contains(got[0].Message, `"analysis" appears 6 times`) {
		t.Errorf("message = %q", got[0].Message)
	}

	five := strings.TrimSpace(strings.Repeat("analysis ", 5))
	if got := byRule(a.Detect(five), "repetition"); len(got) != 0 {
		t.Errorf("5 occurrences flagged: %+v", got)
	}

	short := strings.TrimSpace(strings.Repeat("words ", 9))
	if got := byRule(a.Detect(short), "repetition"); len(got) != 0 {
		t.Errorf("5-letter word flagged: %+v", got)
	}
}

func TestDetect_LongParagraph(t *testing.T) {
	a := New(DefaultConfig())
	text := strings.TrimSpace(strings.Repeat("Go now. ", 9))
	got := a.Detect(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", len(got), got)
	}
	if got[0].Rule != "long-paragraph" || got[0].Category != Structure || got[0].Severity != Medium {
		t.Errorf("got %+v", got[0])
	}
	if got[0].Span != (Span{0, len(text)}) {
		t.Errorf("span = %v, want whole paragraph", got[0].Span)
	}

	eight := strings.TrimSpace(strings.Repeat("Go now. ", 8))
	if got := byRule(a.Detect(eight), "long-paragraph"); len(got) != 0 {
		t.Errorf("8-sentence paragraph flagged")
	}
}

func TestDetect_SingleSentenceParagraph(t *testing.T) {
	a := New(DefaultConfig())
	got := byRule(a.Detect(numberedWords(11)+"."), "single-sentence-paragraph")
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].Category != Structure || got[0].Severity != Low {
		t.Errorf("got %s/%s, want structure/low", got[0].Category, got[0].Severity)
	}

	if got := byRule(a.Detect(numberedWords(10)+"."), "single-sentence-paragraph"); len(got) != 0 {
		t.Errorf("10-word paragraph flagged")
	}
	if got := byRule(a.Detect(numberedWords(11)+". Another one."), "single-sentence-paragraph"); len(got) != 0 {
		t.Errorf("two-sentence paragraph flagged")
	}
}

func TestDetect_MissingTransition(t *testing.T) {
	a := New(DefaultConfig())
	text := "Opening para here.\n\nNext para here.\n\nHowever, third para."
	got := byRule(a.Detect(text), "missing-transition")
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", len(got), got)
	}
	if !got[0].Span.IsZero() {
		t.Errorf("span = %v, want zero", got[0].Span)
	}
	if !strings.Contains(got[0].Message, "Paragraph 2") {
		t.Errorf("message = %q", got[0].Message)
	}

	if got := byRule(a.Detect("Only one paragraph."), "missing-transition"); len(got) != 0 {
		t.Errorf("first paragraph flagged")
	}
}

func TestDetect_WordyPhrase(t *testing.T) {
	a := New(DefaultConfig())
	text := "We left In  Order to win."
	got := a.Detect(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", len(got), got)
	}
	s := got[0]
	if s.Rule != "wordy-phrase" || s.Category != Style || s.Severity != Medium {
		t.Errorf("got %+v", s)
	}
	if s.Replacement != "to" {
		t.Errorf("Replacement = %q, want %q", s.Replacement, "to")
	}
	if text[s.Span.Start:s.Span.End] != "In  Order to" {
		t.Errorf("span text = %q", text[s.Span.Start:s.Span.End])
	}
}

func TestDetect_RuleOrderNotPositionOrder(t *testing.T) {
	a := New(DefaultConfig())
	got := a.Detect("This is very good. The cake was baked.")
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].Rule != "passive-voice" || got[1].Rule != "weak-qualifier" {
		t.Errorf("order = %s, %s; want passive-voice, weak-qualifier", got[0].Rule, got[1].Rule)
	}
	if got[0].Span.Start < got[1].Span.Start {
		t.Errorf("expected passive match to come later in the text than the qualifier")
	}
}

func TestDetect_CapOnPathologicalInput(t *testing.T) {
	text := strings.Repeat("It was started very quickly ", 25000)
	if n := len(strings.Fields(text)); n != 125000 {
		t.Fatalf("fixture has %d words", n)
	}

	a := New(DefaultConfig())
	got := a.Detect(text)
	if len(got) != a.Config().SuggestionCap {
		t.Errorf("got %d suggestions, want cap %d", len(got), a.Config().SuggestionCap)
	}
	for _, s := range got {
		if s.Rule != "passive-voice" {
			t.Fatalf("rule %q ran past the cap", s.Rule)
		}
	}

	small := New(Config{SuggestionCap: 3})
	if got := small.Detect(text); len(got) != 3 {
		t.Errorf("cap 3: got %d", len(got))
	}
}

func TestDetect_InjectedLists(t *testing.T) {
	a := New(Config{
		WeakQualifiers: []string{"quite"},
		BeVerbs:        []string{},
		Phrases:        []Phrase{},
	})
	got := a.Detect("I am very happy. It was quite stunning. The door was opened in order to leave.")
	if len(got) != 1 || got[0].Rule != "weak-qualifier" {
		t.Fatalf("got %+v, want only the quite qualifier", got)
	}
}

func TestDetect_CustomRules(t *testing.T) {
	calls := 0
	rule := Rule{Name: "custom", Check: func(_ *Analyzer, doc *Document, acc *Accumulator) {
		calls++
		acc.Add(Suggestion{Category: Grammar, Severity: High, Message: "found " + doc.Words[0].Text})
	}}
	a := New(DefaultConfig()).WithRules(rule, rule)
	got := a.Detect("hello world")
	if calls != 2 || len(got) != 2 {
		t.Fatalf("calls = %d, suggestions = %d", calls, len(got))
	}
	if got[0].Rule != "custom" || got[0].Message != "found hello" {
		t.Errorf("got %+v", got[0])
	}
}

func TestDetect_AdversarialInput(t *testing.T) {
	a := New(DefaultConfig())
	inputs := []string{
		"",
		strings.Repeat("a", 1<<20),
		"naïve café — ¿qué? ¡sí! 日本語の文章。",
		strings.Repeat("?!.", 10000),
		strings.Repeat("\n", 5000),
		"was baked very good",
	}
	for _, text := range inputs {
		for _, s := range a.Detect(text) {
			if n := len([]rune(text)); s.Span.Start < 0 || s.Span.End > n || s.Span.Start > s.Span.End {
				t.Errorf("invalid span %v for input of %d characters", s.Span, n)
			}
		}
	}
}

func TestAnalyze_Empty(t *testing.T) {
	r := New(DefaultConfig()).Analyze("")
	if r.Suggestions == nil {
		t.Error("Suggestions should be an empty slice, not nil")
	}
	if len(r.Suggestions) != 0 || r.Metrics.WordCount != 0 {
		t.Errorf("got %+v", r)
	}
}
