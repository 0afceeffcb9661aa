package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/lessons"
	"github.com/suykerbuyk/refinelab/internal/render"
	"github.com/suykerbuyk/refinelab/internal/scoring"
	"github.com/suykerbuyk/refinelab/internal/store"
)

func runLessons(args []string) {
	pos := positional(args, "--category")
	category := flagValue(args, "--category")

	var out []lessons.Lesson
	switch {
	case len(pos) > 0:
		l, err := lessons.Get(pos[0])
		if err != nil {
			fatal("%v (categories: %s)", err, strings.Join(lessons.Categories(), ", "))
		}
		out = []lessons.Lesson{l}
	case category != "":
		out = lessons.ByCategory(category)
		if len(out) == 0 {
			fatal("no lessons in category %q (categories: %s)", category, strings.Join(lessons.Categories(), ", "))
		}
	default:
		out = lessons.All()
	}

	if hasFlag(args, "--json") {
		printJSON(out)
		return
	}
	if len(pos) > 0 {
		fmt.Print(lessons.Format(out[0]))
		return
	}
	fmt.Print(lessons.FormatList(out))
}

func runFingerprint(ctx context.Context, args []string) {
	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	cached, err := st.Fingerprint(ctx)
	if err != nil && !errors.Is(err, store.ErrNoFingerprint) {
		fatal("fingerprint: %v", err)
	}
	if cached != nil && !hasFlag(args, "--refresh") {
		var fp scoring.Fingerprint
		if err := json.Unmarshal([]byte(cached.Payload), &fp); err != nil {
			fatal("decode fingerprint: %v", err)
		}
		showFingerprint(args, &fp, cached)
		return
	}

	client := mustScoringClient(cfg)
	essays, err := st.List(ctx)
	if err != nil {
		fatal("fingerprint: %v", err)
	}
	texts := make([]string, 0, scoring.MaxFingerprintEssays)
	for _, e := range essays {
		if len(texts) == scoring.MaxFingerprintEssays {
			break
		}
		texts = append(texts, e.Content)
	}
	fp, err := scoring.BuildFingerprint(ctx, client, texts)
	if err != nil {
		fatal("fingerprint: %v", err)
	}
	payload, err := json.Marshal(fp)
	if err != nil {
		fatal("encode fingerprint: %v", err)
	}
	saved, err := st.SaveFingerprint(ctx, len(texts), string(payload))
	if err != nil {
		log.Printf("warning: store fingerprint: %v", err)
		saved = &store.Fingerprint{EssayCount: len(texts)}
	}
	showFingerprint(args, fp, saved)
}

func showFingerprint(args []string, fp *scoring.Fingerprint, rec *store.Fingerprint) {
	if hasFlag(args, "--json") {
		printJSON(fp)
		return
	}
	generated := ""
	if !rec.GeneratedAt.IsZero() {
		generated = rec.GeneratedAt.Local().Format("2006-01-02 15:04")
	}
	fmt.Print(render.FingerprintTerminal(fp, rec.EssayCount, generated))
}

func runGrade(ctx context.Context, args []string) {
	pos := positional(args, "--penalty", "--rubric")
	if len(pos) < 1 {
		fatal("usage: refinelab grade add|list|predict")
	}
	switch pos[0] {
	case "add":
		runGradeAdd(ctx, args, pos[1:])
	case "list":
		runGradeList(ctx, args)
	case "predict":
		runGradePredict(ctx, pos[1:])
	default:
		fatal("unknown grade action: %s (want add, list or predict)", pos[0])
	}
}

func runGradeAdd(ctx context.Context, args, pos []string) {
	if len(pos) < 2 {
		fatal("usage: refinelab grade add <assignment> <grade> [--penalty a,b] [--rubric <file>]")
	}
	var penalties []string
	for _, p := range strings.Split(flagValue(args, "--penalty"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			penalties = append(penalties, p)
		}
	}
	rubric := ""
	if path := flagValue(args, "--rubric"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fatal("read rubric: %v", err)
		}
		rubric = string(data)
	}

	st := mustOpenStore(mustLoadConfig())
	defer st.Close()
	g, err := st.AddGradingPattern(ctx, pos[0], pos[1], rubric, penalties)
	if err != nil {
		fatal("grade add: %v", err)
	}
	fmt.Printf("recorded: %s  %s\n", g.Grade, g.AssignmentName)
}

func runGradeList(ctx context.Context, args []string) {
	st := mustOpenStore(mustLoadConfig())
	defer st.Close()
	patterns, err := st.GradingPatterns(ctx)
	if err != nil {
		fatal("grade list: %v", err)
	}
	if hasFlag(args, "--json") {
		printJSON(patterns)
		return
	}
	if len(patterns) == 0 {
		fmt.Println("no grading patterns (use refinelab grade add)")
		return
	}
	for _, g := range patterns {
		line := fmt.Sprintf("%s  %-5s %s", g.CreatedAt.Local().Format("2006-01-02"), g.Grade, g.AssignmentName)
		if len(g.PenaltyAreas) > 0 {
			line += "  (penalties: " + strings.Join(g.PenaltyAreas, ", ") + ")"
		}
		fmt.Println(line)
	}
}

func runGradePredict(ctx context.Context, pos []string) {
	if len(pos) < 1 {
		fatal("usage: refinelab grade predict <id>")
	}
	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	id, err := resolveID(ctx, st, pos[0])
	if err != nil {
		fatal("%v", err)
	}
	e, err := st.Get(ctx, id)
	if err != nil {
		fatal("%v", err)
	}
	stored, err := st.GradingPatterns(ctx)
	if err != nil {
		fatal("grade predict: %v", err)
	}
	if len(stored) == 0 {
		fatal("grade predict: %v (use refinelab grade add)", scoring.ErrNoPatterns)
	}
	client := mustScoringClient(cfg)

	m := analyze.New(cfg.AnalyzeConfig()).Analyze(e.Content).Metrics
	in := scoring.GradeInput{
		Rubric:       latestScore(ctx, st, id),
		WordCount:    m.WordCount,
		ReadingLevel: m.ReadingLevel,
		Local: map[string]float64{
			"paragraphCount":           float64(m.ParagraphCount),
			"sentenceCount":            float64(m.SentenceCount),
			"avgWordsPerSentence":      m.AvgWordsPerSentence,
			"avgSentencesPerParagraph": m.AvgSentencesPerParagraph,
			"vocabularyDiversity":      float64(m.VocabularyDiversity),
			"transitionWords":          float64(m.TransitionWords),
			"academicTone":             float64(m.AcademicTone),
		},
	}
	patterns := make([]scoring.GradingPattern, len(stored))
	for i, g := range stored {
		patterns[i] = scoring.GradingPattern{
			AssignmentName: g.AssignmentName,
			Grade:          g.Grade,
			RubricData:     json.RawMessage(g.Rubric),
			PenaltyAreas:   g.PenaltyAreas,
		}
	}

	p, err := scoring.PredictGrade(ctx, client, in, patterns)
	if err != nil {
		fatal("grade predict: %v", err)
	}
	fmt.Print(render.PredictionTerminal(e.Title, p, len(patterns)))
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("encode result: %v", err)
	}
	fmt.Println(string(out))
}
