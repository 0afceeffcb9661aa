package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoPatterns is returned when a prediction has no past grades to learn from.
var ErrNoPatterns = errors.New("no grading patterns recorded")

// GradingPattern is a past graded assignment handed to the model.
type GradingPattern struct {
	AssignmentName string          `json:"assignmentName"`
	Grade          string          `json:"grade"`
	RubricData     json.RawMessage `json:"rubricData,omitempty"`
	PenaltyAreas   []string        `json:"penaltyAreas"`
}

// GradeInput is what the model sees about the essay being predicted.
type GradeInput struct {
	Rubric       *Metrics `json:"rubric,omitempty"`
	WordCount    int      `json:"wordCount"`
	ReadingLevel string   `json:"readingLevel,omitempty"`
	// Local analyzer readings, keyed by metric name.
	Local map[string]float64 `json:"localMetrics,omitempty"`
}

// Prediction is a predicted grade band with the model's confidence in [0, 1].
type Prediction struct {
	GradeBand  string   `json:"predictedGradeBand"`
	Confidence float64  `json:"confidence"`
	KeyFactors []string `json:"keyFactors"`
}

const predictionSchema = `{
  "predictedGradeBand": "B/B+",
  "confidence": 0.75,
  "keyFactors": ["strong thesis", "needs more analysis"]
}`

// PredictGrade estimates a grade band for in from past grading patterns.
func PredictGrade(ctx context.Context, c Completer, in GradeInput, patterns []GradingPattern) (*Prediction, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	user, err := buildPredictionPrompt(in, patterns)
	if err != nil {
		return nil, err
	}
	reply, err := c.Complete(ctx, systemPrompt, user)
	if err != nil {
		return nil, err
	}
	var p Prediction
	if err := json.Unmarshal([]byte(extractJSON(reply)), &p); err != nil {
		return nil, fmt.Errorf("unmarshal prediction JSON: %w", err)
	}
	p.GradeBand = strings.TrimSpace(p.GradeBand)
	if p.GradeBand == "" {
		return nil, errors.New("prediction has no grade band")
	}
	p.Confidence = clamp(p.Confidence, 0, 1)
	return &p, nil
}

func buildPredictionPrompt(in GradeInput, patterns []GradingPattern) (string, error) {
	metrics, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal essay metrics: %w", err)
	}
	past, err := json.MarshalIndent(patterns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal grading patterns: %w", err)
	}
	var b strings.Builder
	b.WriteString("Based on essay metrics and past grading patterns, predict a grade band.\n\nEssay metrics:\n")
	b.Write(metrics)
	b.WriteString("\n\nPast grading patterns:\n")
	b.Write(past)
	b.WriteString("\n\nReturn only JSON in this structure:\n")
	b.WriteString(predictionSchema)
	b.WriteString("\n\nConfidence must be between 0 and 1.")
	return b.String(), nil
}
