// Package scoring asks an OpenAI-compatible model for rubric scores and
// version comparisons of an essay. The model is instructed to give
// descriptive feedback only and never to rewrite the student's text.
package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/suykerbuyk/refinelab/internal/config"
)

// Completer sends one system + user exchange and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements Completer with the openai-go SDK.
type OpenAIClient struct {
	Model   string
	Timeout time.Duration
	Opts    []option.RequestOption
}

// NewClient builds a client from cfg.
// Returns (nil, nil) if scoring is disabled or the API key is not set.
func NewClient(cfg config.ScoringConfig) (*OpenAIClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, nil
	}
	if cfg.Model == "" {
		return nil, errors.New("scoring model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Opts:    opts,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	client := openai.NewClient(c.Opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Score rates text against the rubric.
func Score(ctx context.Context, c Completer, text string) (*Result, error) {
	reply, err := c.Complete(ctx, systemPrompt, buildScorePrompt(text))
	if err != nil {
		return nil, err
	}
	return parseScore(reply)
}

// Compare rates how after differs from before.
func Compare(ctx context.Context, c Completer, before, after string) (*Comparison, error) {
	reply, err := c.Complete(ctx, systemPrompt, buildComparePrompt(before, after))
	if err != nil {
		return nil, err
	}
	return parseComparison(reply)
}

func parseScore(reply string) (*Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(extractJSON(reply)), &r); err != nil {
		return nil, fmt.Errorf("unmarshal score JSON: %w", err)
	}
	m := &r.Metrics
	for _, v := range []*float64{
		&m.ThesisClarity, &m.ArgumentDepth, &m.StructureBalance, &m.EvidenceDistribution,
		&m.AnalysisToSummaryRatio, &m.SentenceVariety, &m.LogicalProgression,
	} {
		*v = clamp(*v, 0, 1)
	}
	return &r, nil
}

func parseComparison(reply string) (*Comparison, error) {
	var c Comparison
	if err := json.Unmarshal([]byte(extractJSON(reply)), &c); err != nil {
		return nil, fmt.Errorf("unmarshal comparison JSON: %w", err)
	}
	for _, v := range []*float64{
		&c.ClarityDelta, &c.CoherenceDelta, &c.StructureDelta, &c.ArgumentDelta, &c.AnalysisDelta,
	} {
		*v = clamp(*v, -1, 1)
	}
	return &c, nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

// extractJSON strips a markdown code fence or surrounding prose from reply.
func extractJSON(reply string) string {
	if m := fencedJSON.FindStringSubmatch(reply); m != nil {
		return m[1]
	}
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start >= 0 && end > start {
		return reply[start : end+1]
	}
	return reply
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
