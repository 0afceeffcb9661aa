package scoring

import (
	"strings"
	"unicode/utf8"
)

const systemPrompt = `You are an academic writing analysis assistant. You help students improve their writing through feedback, metrics and conceptual guidance.

You must never:
1. Generate sentences, paragraphs or example text that could be pasted into an essay.
2. Rewrite, paraphrase or "improve" the student's text as replacement wording.
3. Write thesis statements, topic sentences, claims, arguments or essay sections.
4. Fabricate evidence, quotes or analysis.

You must always:
1. Give feedback in analytic, descriptive form.
2. Explain why something is unclear or weak, not provide the fix.
3. Suggest what to strengthen at a conceptual level.
4. Point out recurring habits and patterns.

If asked for rewrites or sample wording, refuse and offer conceptual guidance instead.
Respond with valid JSON only.`

const scoreSchema = `{
  "paragraphAnalysis": [
    {
      "paragraphNumber": 1,
      "text": "first 100 chars of paragraph...",
      "tags": ["weak transition", "summary-heavy"],
      "feedback": "Descriptive feedback explaining the issue",
      "issueTypes": ["structure", "analysis", "evidence"]
    }
  ],
  "metrics": {
    "thesisClarity": 0.7,
    "argumentDepth": 0.6,
    "structureBalance": 0.8,
    "evidenceDistribution": 0.65,
    "analysisToSummaryRatio": 0.55,
    "sentenceVariety": 0.75,
    "logicalProgression": 0.7
  },
  "strengthsWeaknesses": {
    "strengths": ["..."],
    "weaknesses": ["..."]
  },
  "strategicSuggestions": ["..."]
}`

const compareSchema = `{
  "clarityDelta": 0.15,
  "coherenceDelta": 0.12,
  "structureDelta": 0.08,
  "argumentDelta": 0.18,
  "analysisDelta": 0.22,
  "improvements": ["..."]
}`

// maxEssayChars bounds the text sent per essay.
const maxEssayChars = 24000

func buildScorePrompt(text string) string {
	var b strings.Builder
	b.WriteString("Analyze the following essay.\n\nEssay:\n\"\"\"\n")
	b.WriteString(truncate(text, maxEssayChars))
	b.WriteString("\n\"\"\"\n\nReturn only JSON in this structure:\n")
	b.WriteString(scoreSchema)
	b.WriteString("\n\nProvide analytical feedback only, not replacement text. All metrics must be between 0 and 1.")
	return b.String()
}

func buildComparePrompt(before, after string) string {
	var b strings.Builder
	b.WriteString("Compare these two essay versions.\n\nBEFORE:\n\"\"\"\n")
	b.WriteString(truncate(before, maxEssayChars/2))
	b.WriteString("\n\"\"\"\n\nAFTER:\n\"\"\"\n")
	b.WriteString(truncate(after, maxEssayChars/2))
	b.WriteString("\n\"\"\"\n\nReturn only JSON in this structure:\n")
	b.WriteString(compareSchema)
	b.WriteString("\n\nDelta values must be between -1 and 1; negative means regression.")
	return b.String()
}

// truncate cuts text to at most max bytes, preferring a paragraph break.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	cut := text[:max]
	if i := strings.LastIndex(cut, "\n\n"); i > max/2 {
		cut = cut[:i]
	}
	return cut + "\n[...truncated]"
}
