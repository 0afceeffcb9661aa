package analyze

import "math"

// computeMetrics derives LiveMetrics from an already segmented document.
// Every ratio is 0 when its denominator is 0.
func (a *Analyzer) computeMetrics(doc *Document) LiveMetrics {
	m := LiveMetrics{
		WordCount:      len(doc.Words),
		CharacterCount: runeLen(doc.Text),
		ParagraphCount: len(doc.Paragraphs),
		SentenceCount:  len(doc.Sentences),
	}

	if m.SentenceCount > 0 {
		m.AvgWordsPerSentence = float64(m.WordCount) / float64(m.SentenceCount)
	}
	if m.ParagraphCount > 0 {
		m.AvgSentencesPerParagraph = float64(m.SentenceCount) / float64(m.ParagraphCount)
	}
	m.ReadingLevel = ReadingLevel(m.AvgWordsPerSentence)
	m.EstimatedReadTime = int(math.Ceil(float64(m.WordCount) / float64(a.cfg.ReadWordsPerMinute)))

	// Unique, transition and long-word counts all use the normalized word,
	// so "Test," "test" and "TEST." are one word of length 4.
	unique := make(map[string]struct{}, len(doc.Words))
	longWords := 0
	for _, w := range doc.Words {
		norm := normalizeWord(w.Text)
		unique[norm] = struct{}{}
		if _, ok := a.transitions[norm]; ok {
			m.TransitionWords++
		}
		if runeLen(norm) > a.cfg.AcademicWordLength {
			longWords++
		}
	}
	m.UniqueWords = len(unique)
	m.VocabularyDiversity = percent(m.UniqueWords, m.WordCount)
	m.AcademicTone = percent(longWords, m.WordCount)

	return m
}

// ReadingLevel classifies average words per sentence into four bands.
// A value on a boundary belongs to the higher band.
func ReadingLevel(avgWordsPerSentence float64) string {
	switch {
	case avgWordsPerSentence < 12:
		return LevelMiddleSchool
	case avgWordsPerSentence < 18:
		return LevelHighSchool
	case avgWordsPerSentence < 25:
		return LevelCollege
	default:
		return LevelGraduate
	}
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
