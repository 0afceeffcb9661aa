// Package lessons is the built-in library of writing lessons. Each lesson
// explains one rubric concern with principles, revision strategies and a
// self-check list; none of them contain sample wording to copy.
package lessons

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when no lesson has the requested ID.
var ErrNotFound = errors.New("lesson not found")

// Lesson is one entry in the library.
type Lesson struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Principles []string `json:"principles"`
	Strategies []string `json:"strategies"`
	Checklist  []string `json:"checklistItems"`
}

var library = []Lesson{
	{
		ID:       "thesis-clarity",
		Title:    "Strengthening Your Thesis Statement",
		Category: "Thesis",
		Principles: []string{
			"A thesis should be specific, debatable, and arguable",
			"It should preview the main points of your essay",
			`Avoid vague language like "interesting" or "important"`,
			"Take a clear position that can be supported with evidence",
		},
		Strategies: []string{
			"Ask yourself: What specific claim am I making?",
			"Consider: Can someone reasonably disagree with this?",
			"Ensure your thesis appears early (usually end of intro)",
			"Revise to make it more precise and focused",
		},
		Checklist: []string{
			"Is my thesis specific rather than general?",
			"Does it make a claim that requires support?",
			"Can I preview how I will support this claim?",
			"Would a reader understand my essay's focus from this statement?",
		},
	},
	{
		ID:       "analysis-depth",
		Title:    "Deepening Your Analysis",
		Category: "Analysis",
		Principles: []string{
			"Analysis goes beyond summary: it explains why and how",
			"Connect evidence back to your thesis",
			"Explore implications and significance",
			"Consider multiple interpretations",
		},
		Strategies: []string{
			`After citing evidence, ask: "What does this show?" or "Why does this matter?"`,
			"Use analytical verbs: suggests, reveals, demonstrates, implies",
			"Explain the connection between evidence and your claim",
			"Consider counterarguments and address them",
		},
		Checklist: []string{
			"Do I explain the significance of my evidence?",
			"Have I moved beyond just describing what happens?",
			"Do I connect my analysis back to my thesis?",
			`Have I explored the "so what?" of my arguments?`,
		},
	},
	{
		ID:       "structure-balance",
		Title:    "Balancing Essay Structure",
		Category: "Structure",
		Principles: []string{
			"Each paragraph should have a clear focus (one main idea)",
			"Introduction sets up the argument, body develops it, conclusion synthesizes",
			"Transitions connect ideas between paragraphs",
			"Evidence should be distributed throughout, not front-loaded",
		},
		Strategies: []string{
			"Start each body paragraph with a clear topic sentence",
			"Ensure each paragraph connects to your thesis",
			"Use transitional phrases to guide readers",
			"Balance the length and depth of body paragraphs",
		},
		Checklist: []string{
			"Does each paragraph have a clear main point?",
			"Are my paragraphs connected logically?",
			"Is my introduction proportional to my essay length?",
			"Does my conclusion synthesize rather than just repeat?",
		},
	},
	{
		ID:       "evidence-use",
		Title:    "Using Evidence Effectively",
		Category: "Evidence",
		Principles: []string{
			"Evidence should directly support your claims",
			"Integrate quotes smoothly into your prose",
			"Always analyze evidence; don't let it speak for itself",
			"Use a variety of evidence types when appropriate",
		},
		Strategies: []string{
			"Introduce quotes with context",
			"Follow quotes with analysis, not another quote",
			"Use signal phrases to integrate sources",
			"Select the most relevant portions to quote",
		},
		Checklist: []string{
			"Have I introduced each piece of evidence?",
			"Do I analyze evidence after presenting it?",
			"Is my evidence relevant to my specific claim?",
			"Have I cited sources appropriately?",
		},
	},
	{
		ID:       "transitions",
		Title:    "Improving Transitions and Flow",
		Category: "Coherence",
		Principles: []string{
			"Transitions show relationships between ideas",
			"Good flow helps readers follow your logic",
			"Connections can be explicit (transition words) or implicit (content links)",
			"Vary your transitional strategies",
		},
		Strategies: []string{
			"Use transition words: however, furthermore, consequently",
			"Link back to previous paragraph's main idea",
			"Use repetition of key terms strategically",
			"Ensure logical progression from one idea to the next",
		},
		Checklist: []string{
			"Can readers follow my logic from paragraph to paragraph?",
			"Have I used transition words appropriately?",
			"Do my paragraphs build on each other?",
			"Is the relationship between ideas clear?",
		},
	},
	{
		ID:       "sentence-variety",
		Title:    "Increasing Sentence Variety",
		Category: "Style",
		Principles: []string{
			"Vary sentence length to create rhythm",
			"Use different sentence structures",
			"Balance complex and simple sentences",
			"Avoid repetitive sentence openings",
		},
		Strategies: []string{
			"Mix short, punchy sentences with longer, complex ones",
			"Start sentences in different ways (not always subject-verb)",
			"Use subordinate clauses for variety",
			"Read your work aloud to hear rhythm",
		},
		Checklist: []string{
			"Do I have a mix of short and long sentences?",
			"Have I varied how I start sentences?",
			"Does my writing have rhythm and flow?",
			"Am I repeating the same sentence patterns?",
		},
	},
}

// All returns every lesson in library order.
func All() []Lesson {
	return append([]Lesson(nil), library...)
}

// Get returns the lesson with id, or ErrNotFound.
func Get(id string) (Lesson, error) {
	for _, l := range library {
		if l.ID == id {
			return l, nil
		}
	}
	return Lesson{}, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// ByCategory returns the lessons in category, compared case-insensitively.
// An unknown category gives an empty list.
func ByCategory(category string) []Lesson {
	var out []Lesson
	for _, l := range library {
		if strings.EqualFold(l.Category, category) {
			out = append(out, l)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range library {
		if !seen[l.Category] {
			seen[l.Category] = true
			out = append(out, l.Category)
		}
	}
	sort.Strings(out)
	return out
}

// metricLessons maps rubric metric JSON names to the lesson that covers them.
var metricLessons = map[string]string{
	"thesisClarity":          "thesis-clarity",
	"argumentDepth":          "analysis-depth",
	"analysisToSummaryRatio": "analysis-depth",
	"structureBalance":       "structure-balance",
	"evidenceDistribution":   "evidence-use",
	"logicalProgression":     "transitions",
	"sentenceVariety":        "sentence-variety",
}

// ForMetric returns the lesson for a rubric metric name such as
// "thesisClarity".
func ForMetric(metric string) (Lesson, error) {
	id, ok := metricLessons[metric]
	if !ok {
		return Lesson{}, fmt.Errorf("metric %s: %w", metric, ErrNotFound)
	}
	return Get(id)
}
