package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxFingerprintEssays is how many essays a fingerprint samples.
const MaxFingerprintEssays = 10

// fingerprintEssayChars bounds each sampled essay.
const fingerprintEssayChars = 2000

// ErrNoEssays is returned when there is nothing to fingerprint.
var ErrNoEssays = errors.New("no essays to fingerprint")

// Fingerprint describes recurring habits across a writer's essays.
// AvgParagraphWords is computed locally; the rest comes from the model.
type Fingerprint struct {
	AvgParagraphWords  float64  `json:"avgParagraphLength"`
	ToneTendencies     []string `json:"toneTendencies"`
	StructuralPatterns []string `json:"structuralPatterns"`
	PacingIssues       []string `json:"pacingIssues"`
	EvidenceHabits     []string `json:"evidenceHabits"`
}

const fingerprintSchema = `{
  "toneTendencies": ["formal", "analytical"],
  "structuralPatterns": ["strong introductions", "weak conclusions"],
  "pacingIssues": ["rushed endings"],
  "evidenceHabits": ["relies on direct quotes"]
}`

// BuildFingerprint samples up to MaxFingerprintEssays of essays (most
// recent first) and asks c for the writer's recurring patterns.
func BuildFingerprint(ctx context.Context, c Completer, essays []string) (*Fingerprint, error) {
	if len(essays) == 0 {
		return nil, ErrNoEssays
	}
	if len(essays) > MaxFingerprintEssays {
		essays = essays[:MaxFingerprintEssays]
	}

	reply, err := c.Complete(ctx, systemPrompt, buildFingerprintPrompt(essays))
	if err != nil {
		return nil, err
	}
	var f Fingerprint
	if err := json.Unmarshal([]byte(extractJSON(reply)), &f); err != nil {
		return nil, fmt.Errorf("unmarshal fingerprint JSON: %w", err)
	}
	f.AvgParagraphWords = AvgParagraphWords(essays)
	return &f, nil
}

func buildFingerprintPrompt(essays []string) string {
	parts := make([]string, len(essays))
	for i, e := range essays {
		parts[i] = fmt.Sprintf("Essay %d:\n%s", i+1, truncate(e, fingerprintEssayChars))
	}
	var b strings.Builder
	b.WriteString("Analyze these essays to identify recurring patterns in the writer's style.\n\n")
	b.WriteString(strings.Join(parts, "\n\n---\n\n"))
	b.WriteString("\n\nReturn only JSON in this structure:\n")
	b.WriteString(fingerprintSchema)
	b.WriteString("\n\nDescribe habits, not replacement text.")
	return b.String()
}

// AvgParagraphWords is the mean, over essays, of words per paragraph.
// Paragraphs are separated by blank lines; essays with no words are
// skipped. The result is rounded to one decimal.
func AvgParagraphWords(essays []string) float64 {
	sum, n := 0.0, 0
	for _, e := range essays {
		words := len(strings.Fields(e))
		if words == 0 {
			continue
		}
		paras := 0
		for _, p := range strings.Split(strings.ReplaceAll(e, "\r\n", "\n"), "\n\n") {
			if strings.TrimSpace(p) != "" {
				paras++
			}
		}
		sum += float64(words) / float64(paras)
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}
