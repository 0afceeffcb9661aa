package analyze

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is a word, sentence, or paragraph cut from the draft.
// Start and End are byte offsets: Text is always draft[Start:End].
type Segment struct {
	Text       string
	Start, End int
}

// Document is the segmented view of one draft. It is built once per pass
// and shared by the metrics calculator and every detector rule. It is not
// safe for concurrent use.
type Document struct {
	Text       string
	Words      []Segment
	Sentences  []Segment
	Paragraphs []Segment

	paraSentences [][]Segment
	paraDone      []bool
}

// SegmentText splits text into words, sentences, and paragraphs.
//
// Splitting is purely punctuation and whitespace based: "Mr." ends a
// sentence and any blank-line run starts a paragraph. The detector
// thresholds assume exactly this behaviour.
func SegmentText(text string) *Document {
	return &Document{
		Text:       text,
		Words:      splitWords(text, 0),
		Sentences:  splitSentences(text, 0),
		Paragraphs: splitParagraphs(text),
	}
}

// splitWords returns whitespace-delimited tokens. offset is added to every
// offset so callers can split a sub-slice and keep draft-relative positions.
func splitWords(text string, offset int) []Segment {
	var words []Segment
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, Segment{Text: text[start:i], Start: offset + start, End: offset + i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, Segment{Text: text[start:], Start: offset + start, End: offset + len(text)})
	}
	return words
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// splitSentences cuts on runs of '.', '!' and '?', dropping pieces that are
// empty or whitespace-only. Segments are trimmed of surrounding whitespace.
func splitSentences(text string, offset int) []Segment {
	var out []Segment
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && !isTerminator(text[i]) {
			continue
		}
		if seg, ok := trimmed(text, start, i, offset); ok {
			out = append(out, seg)
		}
		for i < len(text) && isTerminator(text[i]) {
			i++
		}
		start = i
	}
	return out
}

// splitParagraphs cuts on runs of two or more '\n', dropping blank pieces.
func splitParagraphs(text string) []Segment {
	var out []Segment
	start := 0
	i := 0
	for i < len(text) {
		if text[i] != '\n' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '\n' {
			j++
		}
		if j-i >= 2 {
			if seg, ok := trimmed(text, start, i, 0); ok {
				out = append(out, seg)
			}
			start = j
		}
		i = j
	}
	if seg, ok := trimmed(text, start, len(text), 0); ok {
		out = append(out, seg)
	}
	return out
}

// trimmed returns text[start:end] without surrounding whitespace, or false
// when nothing but whitespace remains.
func trimmed(text string, start, end, offset int) (Segment, bool) {
	piece := text[start:end]
	lead := len(piece) - len(strings.TrimLeftFunc(piece, unicode.IsSpace))
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return Segment{}, false
	}
	s := offset + start + lead
	return Segment{Text: piece, Start: s, End: s + len(piece)}, true
}

// normalizeWord lowercases w and strips leading and trailing punctuation, so
// "However," and "however" compare equal. Tokens made only of punctuation
// come back lowercased but otherwise unchanged.
func normalizeWord(w string) string {
	lower := strings.ToLower(w)
	core := strings.TrimFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if core == "" {
		return lower
	}
	return core
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}
