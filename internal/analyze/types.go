package analyze

// Category groups suggestions for display.
type Category string

const (
	Style     Category = "style"
	Grammar   Category = "grammar"
	Clarity   Category = "clarity"
	Structure Category = "structure"
)

// Severity ranks how strongly a suggestion should be surfaced.
type Severity string

const (
	High   Severity = "high"
	Medium Severity = "medium"
	Low    Severity = "low"
)

// Span is a [Start, End) range of character (rune) offsets into the draft
// text, the same unit as LiveMetrics.CharacterCount.
// A zero span means the suggestion applies to the whole document.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsZero reports whether the span points at no specific text.
func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Suggestion is one detected writing issue.
//
// Replacement is guidance shown to the writer. Nothing in this module
// ever applies it to the draft.
type Suggestion struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Rule        string   `json:"rule"`
	Message     string   `json:"message"`
	Span        Span     `json:"position"`
	Replacement string   `json:"suggestion,omitempty"`
}

// LiveMetrics holds the counters computed fresh from a draft on every pass.
type LiveMetrics struct {
	WordCount                int     `json:"word_count"`
	CharacterCount           int     `json:"character_count"`
	ParagraphCount           int     `json:"paragraph_count"`
	SentenceCount            int     `json:"sentence_count"`
	AvgWordsPerSentence      float64 `json:"avg_words_per_sentence"`
	AvgSentencesPerParagraph float64 `json:"avg_sentences_per_paragraph"`
	UniqueWords              int     `json:"unique_words"`
	VocabularyDiversity      int     `json:"vocabulary_diversity"` // percent 0-100
	TransitionWords          int     `json:"transition_words"`
	AcademicTone             int     `json:"academic_tone"` // percent of long words
	ReadingLevel             string  `json:"reading_level"`
	EstimatedReadTime        int     `json:"estimated_read_time"` // minutes
}

// Result bundles one full analysis pass.
type Result struct {
	Metrics     LiveMetrics  `json:"metrics"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Reading levels, lowest band first.
const (
	LevelMiddleSchool = "Middle School"
	LevelHighSchool   = "High School"
	LevelCollege      = "College"
	LevelGraduate     = "Graduate"
)
