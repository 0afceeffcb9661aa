package analyze

// Phrase maps a wordy or clichéd phrase to a plainer alternative.
type Phrase struct {
	Pattern     string `toml:"pattern"`     // literal phrase, matched case-insensitively
	Replacement string `toml:"replacement"` // shown as guidance, never inserted
}

// Config holds every tunable list and threshold the analyzer uses.
// Tests substitute smaller lists; the CLI builds one from config.toml.
type Config struct {
	SuggestionCap int

	LongSentenceWords            int // sentence flagged when words > this
	LongParagraphSentences       int // paragraph flagged when sentences > this
	SingleSentenceParagraphWords int // one-sentence paragraph flagged when words > this
	RepetitionMinLength          int // only words longer than this are counted
	RepetitionMaxCount           int // word flagged when it occurs more than this
	AcademicWordLength           int // words longer than this count toward academic tone
	ReadWordsPerMinute           int

	TransitionWords      []string // counted in LiveMetrics
	ParagraphTransitions []string // expected in a paragraph's first sentence
	WeakQualifiers       []string
	BeVerbs              []string
	Phrases              []Phrase
}

// DefaultConfig returns the built-in lists and thresholds.
func DefaultConfig() Config {
	return Config{
		SuggestionCap:                25,
		LongSentenceWords:            35,
		LongParagraphSentences:       8,
		SingleSentenceParagraphWords: 10,
		RepetitionMinLength:          5,
		RepetitionMaxCount:           5,
		AcademicWordLength:           8,
		ReadWordsPerMinute:           200,
		TransitionWords: []string{
			"however", "therefore", "furthermore", "moreover", "consequently",
			"nevertheless", "additionally", "similarly", "conversely", "specifically",
			"ultimately", "meanwhile", "indeed", "thus", "hence", "nonetheless",
			"likewise", "accordingly",
		},
		ParagraphTransitions: []string{
			"however", "therefore", "furthermore", "moreover", "additionally",
			"consequently", "similarly", "first", "second", "finally", "also",
		},
		WeakQualifiers: []string{"very", "really", "quite", "just", "rather", "fairly", "pretty"},
		BeVerbs:        []string{"is", "are", "was", "were", "been", "being"},
		Phrases: []Phrase{
			{Pattern: "at the end of the day", Replacement: "ultimately"},
			{Pattern: "in order to", Replacement: "to"},
			{Pattern: "due to the fact that", Replacement: "because"},
			{Pattern: "in spite of the fact that", Replacement: "although"},
			{Pattern: "at this point in time", Replacement: "now"},
			{Pattern: "for all intents and purposes", Replacement: "essentially"},
			{Pattern: "in the event that", Replacement: "if"},
			{Pattern: "it goes without saying", Replacement: "(omit)"},
			{Pattern: "each and every", Replacement: "every"},
			{Pattern: "first and foremost", Replacement: "first"},
		},
	}
}

// withDefaults fills zero or negative thresholds and nil lists from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SuggestionCap <= 0 {
		c.SuggestionCap = d.SuggestionCap
	}
	if c.LongSentenceWords <= 0 {
		c.LongSentenceWords = d.LongSentenceWords
	}
	if c.LongParagraphSentences <= 0 {
		c.LongParagraphSentences = d.LongParagraphSentences
	}
	if c.SingleSentenceParagraphWords <= 0 {
		c.SingleSentenceParagraphWords = d.SingleSentenceParagraphWords
	}
	if c.RepetitionMinLength <= 0 {
		c.RepetitionMinLength = d.RepetitionMinLength
	}
	if c.RepetitionMaxCount <= 0 {
		c.RepetitionMaxCount = d.RepetitionMaxCount
	}
	if c.AcademicWordLength <= 0 {
		c.AcademicWordLength = d.AcademicWordLength
	}
	if c.ReadWordsPerMinute <= 0 {
		c.ReadWordsPerMinute = d.ReadWordsPerMinute
	}
	if c.TransitionWords == nil {
		c.TransitionWords = d.TransitionWords
	}
	if c.ParagraphTransitions == nil {
		c.ParagraphTransitions = d.ParagraphTransitions
	}
	if c.WeakQualifiers == nil {
		c.WeakQualifiers = d.WeakQualifiers
	}
	if c.BeVerbs == nil {
		c.BeVerbs = d.BeVerbs
	}
	if c.Phrases == nil {
		c.Phrases = d.Phrases
	}
	return c
}
