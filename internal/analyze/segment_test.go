package analyze

import "testing"

func TestSegmentText_Scenario(t *testing.T) {
	doc := SegmentText("This is a test. This is another test sentence that continues on and on.")

	if len(doc.Sentences) != 2 {
		t.Errorf("sentences = %d, want 2", len(doc.Sentences))
	}
	if len(doc.Words) != 14 {
		t.Errorf("words = %d, want 14", len(doc.Words))
	}
	if len(doc.Paragraphs) != 1 {
		t.Errorf("paragraphs = %d, want 1", len(doc.Paragraphs))
	}
}

func TestSegmentText_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\n", " \t\n "} {
		doc := SegmentText(text)
		if len(doc.Words) != 0 || len(doc.Sentences) != 0 || len(doc.Paragraphs) != 0 {
			t.Errorf("SegmentText(%q) = %d/%d/%d, want all zero",
				text, len(doc.Words), len(doc.Sentences), len(doc.Paragraphs))
		}
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "One. Two!", []string{"One", "Two"}},
		{"punctuation run", "Wait...what?! Really", []string{"Wait", "what", "Really"}},
		{"abbreviation splits", "Mr. Smith went home.", []string{"Mr", "Smith went home"}},
		{"no terminator", "just words here", []string{"just words here"}},
		{"only punctuation", "...!?", nil},
		{"whitespace pieces dropped", "A.  . B.", []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text, 0)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %+v, want %d", len(got), got, len(tt.want))
			}
			for i, seg := range got {
				if seg.Text != tt.want[i] {
					t.Errorf("sentence[%d] = %q, want %q", i, seg.Text, tt.want[i])
				}
				if tt.text[seg.Start:seg.End] != seg.Text {
					t.Errorf("sentence[%d] span %d-%d does not match text %q", i, seg.Start, seg.End, seg.Text)
				}
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single newline joins", "a\nb", []string{"a\nb"}},
		{"double newline splits", "a\n\nb", []string{"a", "b"}},
		{"long blank run is one break", "a\n\n\n\n\nb", []string{"a", "b"}},
		{"blank paragraphs dropped", "\n\n  \n\na\n\n", []string{"a"}},
		{"trimmed", "  first  \n\n  second", []string{"first", "second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitParagraphs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d paragraphs %+v, want %d", len(got), got, len(tt.want))
			}
			for i, seg := range got {
				if seg.Text != tt.want[i] {
					t.Errorf("paragraph[%d] = %q, want %q", i, seg.Text, tt.want[i])
				}
				if tt.text[seg.Start:seg.End] != seg.Text {
					t.Errorf("paragraph[%d] span %d-%d does not match", i, seg.Start, seg.End)
				}
			}
		})
	}
}

func TestSplitWords_Spans(t *testing.T) {
	text := "  naïve\tcafé  ok\n"
	words := splitWords(text, 0)
	want := []string{"naïve", "café", "ok"}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i, w := range words {
		if w.Text != want[i] {
			t.Errorf("word[%d] = %q, want %q", i, w.Text, want[i])
		}
		if text[w.Start:w.End] != w.Text {
			t.Errorf("word[%d] span %d-%d does not match", i, w.Start, w.End)
		}
	}
}

func TestParagraphSentences_DraftRelative(t *testing.T) {
	text := "Intro line.\n\nBody one. Body two."
	doc := SegmentText(text)
	got := doc.paragraphSentences(1)
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2", len(got))
	}
	for _, s := range got {
		if text[s.Start:s.End] != s.Text {
			t.Errorf("span %d-%d = %q, want %q", s.Start, s.End, text[s.Start:s.End], s.Text)
		}
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := map[string]string{
		"However,":  "however",
		"(thus)":    "thus",
		"Don't":     "don't",
		"—":         "—",
		"ANALYSIS.": "analysis",
	}
	for in, want := range tests {
		if got := normalizeWord(in); got != want {
			t.Errorf("normalizeWord(%q) = %q, want %q", in, got, want)
		}
	}
}
