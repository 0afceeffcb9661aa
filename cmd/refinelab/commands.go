package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/archive"
	"github.com/suykerbuyk/refinelab/internal/check"
	"github.com/suykerbuyk/refinelab/internal/compare"
	"github.com/suykerbuyk/refinelab/internal/config"
	"github.com/suykerbuyk/refinelab/internal/editor"
	"github.com/suykerbuyk/refinelab/internal/ingest"
	"github.com/suykerbuyk/refinelab/internal/lessons"
	"github.com/suykerbuyk/refinelab/internal/render"
	"github.com/suykerbuyk/refinelab/internal/scoring"
	"github.com/suykerbuyk/refinelab/internal/stats"
	"github.com/suykerbuyk/refinelab/internal/store"
	"github.com/suykerbuyk/refinelab/internal/watch"
)

func runInit(args []string) {
	dataDir := config.DefaultConfig().DataDir
	if pos := positional(args); len(pos) > 0 {
		abs, err := filepath.Abs(pos[0])
		if err != nil {
			fatal("resolve data dir: %v", err)
		}
		dataDir = abs
	}

	path, action, err := config.WriteDefault(dataDir)
	if err != nil {
		fatal("%v", err)
	}
	cfg := mustLoadConfig()
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fatal("create data dir: %v", err)
	}
	fmt.Printf("%s: %s\n", action, config.CompressHome(path))
	fmt.Printf("data: %s\n", config.CompressHome(cfg.DataDir))
}

// readDraft returns the text of a draft file, or of stdin for "-".
// Word documents are unpacked to plain text.
func readDraft(path string) string {
	var text string
	var err error
	if path == "-" {
		var data []byte
		if data, err = io.ReadAll(os.Stdin); err == nil {
			text, err = ingest.Parse("", data)
		}
	} else {
		text, err = ingest.ReadFile(path)
	}
	if err != nil {
		fatal("read draft: %v", err)
	}
	return text
}

func runAnalyze(args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab analyze <file> [--json]")
	}
	cfg := mustLoadConfig()
	text := readDraft(pos[0])
	r := analyze.New(cfg.AnalyzeConfig()).Analyze(text)

	if hasFlag(args, "--json") {
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			fatal("encode result: %v", err)
		}
		fmt.Println(string(out))
		return
	}
	fmt.Print(render.Terminal(titleFromPath(pos[0]), text, r))
}

// noStore backs a watch session that is not tied to a stored essay.
type noStore struct{}

func (noStore) Save(context.Context, string, string) error {
	return errors.New("no essay selected (use --essay <id>)")
}

func runWatch(ctx context.Context, args []string) {
	pos := positional(args, "--essay")
	if len(pos) < 1 {
		fatal("usage: refinelab watch <file> [--essay <id>]")
	}
	cfg := mustLoadConfig()
	path := pos[0]

	initial, err := ingest.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		initial = ""
	} else if err != nil {
		fatal("read draft: %v", err)
	}

	var backing editor.Store = noStore{}
	title := titleFromPath(path)
	autoSave := time.Duration(0)
	essayID := ""
	if ref := flagValue(args, "--essay"); ref != "" {
		st := mustOpenStore(cfg)
		defer st.Close()
		id, err := resolveID(ctx, st, ref)
		if err != nil {
			fatal("%v", err)
		}
		e, err := st.Get(ctx, id)
		if err != nil {
			fatal("%v", err)
		}
		essayID, title = id, e.Title
		backing = st.Saver(id)
		autoSave = time.Duration(cfg.AutoSaveSeconds()) * time.Second
	}

	w, err := watch.NewFileWatcher(path)
	if err != nil {
		fatal("%v", err)
	}
	defer w.Stop()
	w.Load = ingest.ReadFile

	var drawMu sync.Mutex
	draw := func(snap editor.Snapshot) {
		drawMu.Lock()
		defer drawMu.Unlock()
		fmt.Print("\033[H\033[2J")
		fmt.Print(render.Terminal(snap.Title, snap.Text, analyze.Result{
			Metrics:     snap.Metrics,
			Suggestions: snap.Suggestions,
		}))
		fmt.Println()
		fmt.Println(saveStatus(snap, essayID))
	}

	sess := editor.New(analyze.New(cfg.AnalyzeConfig()), backing, editor.Options{
		Title:    title,
		Text:     initial,
		Debounce: time.Duration(cfg.DebounceMs()) * time.Millisecond,
		AutoSave: autoSave,
		OnUpdate: draw,
	})
	draw(sess.Snapshot())

	texts, err := w.Watch(ctx)
	if err != nil {
		sess.Close()
		fatal("%v", err)
	}
	for text := range texts {
		sess.SetText(text)
	}

	if essayID != "" {
		if err := sess.Save(context.Background(), true); err != nil {
			log.Printf("warning: final save: %v", err)
		}
	}
	sess.Close()
}

func saveStatus(snap editor.Snapshot, essayID string) string {
	if essayID == "" {
		return fmt.Sprintf("watching (not saved); %d words", snap.Metrics.WordCount)
	}
	state := "saved"
	if snap.Unsaved {
		state = "unsaved changes"
	}
	last := "never"
	if !snap.LastSaved.IsZero() {
		last = snap.LastSaved.Format("15:04:05")
	}
	return fmt.Sprintf("essay %s: %s; last saved %s; %d saves this session",
		shortID(essayID), state, last, len(snap.Revisions))
}

func runSave(ctx context.Context, args []string) {
	pos := positional(args, "--title", "--essay")
	if len(pos) < 1 {
		fatal("usage: refinelab save <file> [--title <t>] [--essay <id>]")
	}
	cfg := mustLoadConfig()
	text := readDraft(pos[0])
	st := mustOpenStore(cfg)
	defer st.Close()

	title := flagValue(args, "--title")

	if ref := flagValue(args, "--essay"); ref != "" {
		id, err := resolveID(ctx, st, ref)
		if err != nil {
			fatal("%v", err)
		}
		if title == "" {
			cur, err := st.Get(ctx, id)
			if err != nil {
				fatal("%v", err)
			}
			title = cur.Title
		}
		e, err := st.Update(ctx, id, title, text)
		if err != nil {
			fatal("save: %v", err)
		}
		fmt.Printf("updated: %s (%s, %d words)\n", e.ID, e.Title, e.WordCount)
		return
	}

	if title == "" {
		title = titleFromPath(pos[0])
	}
	e, err := st.Create(ctx, title, text)
	if err != nil {
		fatal("save: %v", err)
	}
	fmt.Printf("created: %s (%s, %d words)\n", e.ID, e.Title, e.WordCount)
}

func runList(ctx context.Context) {
	st := mustOpenStore(mustLoadConfig())
	defer st.Close()

	essays, err := st.List(ctx)
	if err != nil {
		fatal("list: %v", err)
	}
	if len(essays) == 0 {
		fmt.Println("no essays")
		return
	}
	for _, e := range essays {
		fmt.Printf("%s  %s  %6d words  %s\n",
			shortID(e.ID), e.UpdatedAt.Local().Format("2006-01-02 15:04"), e.WordCount, e.Title)
	}
}

func runStats(ctx context.Context) {
	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	essays, err := st.List(ctx)
	if err != nil {
		fatal("stats: %v", err)
	}
	an := analyze.New(cfg.AnalyzeConfig())
	entries := make([]stats.Entry, 0, len(essays))
	for _, e := range essays {
		r := an.Analyze(e.Content)
		entry := stats.Entry{
			ID:          e.ID,
			Title:       e.Title,
			UpdatedAt:   e.UpdatedAt,
			Metrics:     r.Metrics,
			Suggestions: r.Suggestions,
		}
		if revs, err := st.Revisions(ctx, e.ID); err == nil {
			entry.Revisions = len(revs)
		} else {
			log.Printf("warning: revisions for %s: %v", shortID(e.ID), err)
		}
		entry.Score = latestScore(ctx, st, e.ID)
		entries = append(entries, entry)
	}
	fmt.Print(stats.Format(stats.Compute(entries, time.Now())))
}

// latestScore decodes the newest stored score for id, or returns nil.
func latestScore(ctx context.Context, st *store.Store, id string) *scoring.Metrics {
	scores, err := st.Scores(ctx, id)
	if err != nil {
		log.Printf("warning: scores for %s: %v", shortID(id), err)
		return nil
	}
	if len(scores) == 0 {
		return nil
	}
	var r scoring.Result
	if err := json.Unmarshal([]byte(scores[len(scores)-1].Payload), &r); err != nil {
		log.Printf("warning: decode score for %s: %v", shortID(id), err)
		return nil
	}
	return &r.Metrics
}

func runShow(ctx context.Context, args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab show <id>")
	}
	st := mustOpenStore(mustLoadConfig())
	defer st.Close()

	id, err := resolveID(ctx, st, pos[0])
	if err != nil {
		fatal("%v", err)
	}
	e, err := st.Get(ctx, id)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "%s (%s, %d words)\n\n", e.Title, e.ID, e.WordCount)
	fmt.Print(e.Content)
	if len(e.Content) > 0 && e.Content[len(e.Content)-1] != '\n' {
		fmt.Println()
	}
}

func runHistory(ctx context.Context, args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab history <id>")
	}
	st := mustOpenStore(mustLoadConfig())
	defer st.Close()

	id, err := resolveID(ctx, st, pos[0])
	if err != nil {
		fatal("%v", err)
	}
	revs, err := st.Revisions(ctx, id)
	if err != nil {
		fatal("history: %v", err)
	}
	for i, r := range revs {
		fmt.Printf("%3d  %s  %6d words  %s\n",
			i+1, r.SavedAt.Local().Format("2006-01-02 15:04:05"), r.WordCount, r.Title)
	}
}

func runDelete(ctx context.Context, args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab delete <id>")
	}
	st := mustOpenStore(mustLoadConfig())
	defer st.Close()

	id, err := resolveID(ctx, st, pos[0])
	if err != nil {
		fatal("%v", err)
	}
	if err := st.Delete(ctx, id); err != nil {
		fatal("delete: %v", err)
	}
	fmt.Printf("deleted: %s\n", id)
}

func runCompare(ctx context.Context, args []string) {
	pos := positional(args)
	if len(pos) < 2 {
		fatal("usage: refinelab compare <before-id> <after-id> [--ai]")
	}
	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	before, err := resolveVersion(ctx, st, pos[0])
	if err != nil {
		fatal("%v", err)
	}
	after, err := resolveVersion(ctx, st, pos[1])
	if err != nil {
		fatal("%v", err)
	}

	an := analyze.New(cfg.AnalyzeConfig())
	d := compare.Compare(an.Analyze(before.Text), an.Analyze(after.Text))
	fmt.Printf("%s -> %s\n\n", before.Label, after.Label)
	fmt.Print(compare.Format(d))

	if !hasFlag(args, "--ai") {
		return
	}
	client := mustScoringClient(cfg)
	c, err := scoring.Compare(ctx, client, before.Text, after.Text)
	if err != nil {
		fatal("compare: %v", err)
	}
	fmt.Printf("\nModel assessment\n")
	fmt.Printf("  %-12s %+.2f\n", "clarity", c.ClarityDelta)
	fmt.Printf("  %-12s %+.2f\n", "coherence", c.CoherenceDelta)
	fmt.Printf("  %-12s %+.2f\n", "structure", c.StructureDelta)
	fmt.Printf("  %-12s %+.2f\n", "argument", c.ArgumentDelta)
	fmt.Printf("  %-12s %+.2f\n", "analysis", c.AnalysisDelta)
	for _, imp := range c.Improvements {
		fmt.Printf("  - %s\n", imp)
	}
}

func mustScoringClient(cfg config.Config) *scoring.OpenAIClient {
	client, err := scoring.NewClient(cfg.Scoring)
	if err != nil {
		fatal("scoring: %v", err)
	}
	if client == nil {
		fatal("scoring is off: set scoring.enabled = true and %s", cfg.Scoring.APIKeyEnv)
	}
	return client
}

func runScore(ctx context.Context, args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab score <id> [--markdown]")
	}
	cfg := mustLoadConfig()
	client := mustScoringClient(cfg)
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

	r, err := scoring.Score(ctx, client, e.Content)
	if err != nil {
		fatal("score: %v", err)
	}
	payload, err := json.Marshal(r)
	if err != nil {
		fatal("encode score: %v", err)
	}
	if _, err := st.SaveScore(ctx, id, string(payload)); err != nil {
		log.Printf("warning: store score: %v", err)
	}

	if hasFlag(args, "--markdown") {
		fmt.Print(render.ScoreMarkdown(e.Title, r))
	} else {
		fmt.Print(render.ScoreTerminal(e.Title, r))
	}
	if l, err := lessons.ForMetric(r.Metrics.Weakest()); err == nil {
		fmt.Printf("\nNext lesson: %s (refinelab lessons %s)\n", l.Title, l.ID)
	}
}

func runReport(args []string) {
	pos := positional(args, "--html")
	if len(pos) < 1 {
		fatal("usage: refinelab report <file> [--html <out>]")
	}
	cfg := mustLoadConfig()
	text := readDraft(pos[0])
	title := titleFromPath(pos[0])
	md := render.Markdown(title, text, analyze.New(cfg.AnalyzeConfig()).Analyze(text))

	out := flagValue(args, "--html")
	if out == "" {
		fmt.Print(md)
		return
	}
	page, err := render.HTML(title, md)
	if err != nil {
		fatal("render html: %v", err)
	}
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		fatal("write report: %v", err)
	}
	fmt.Printf("wrote: %s\n", out)
}

func runArchive(ctx context.Context, args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab archive <id>")
	}
	cfg := mustLoadConfig()
	if !cfg.Archive.Compress {
		fmt.Println("archive.compress is false; nothing archived")
		return
	}
	st := mustOpenStore(cfg)
	defer st.Close()

	id, err := resolveID(ctx, st, pos[0])
	if err != nil {
		fatal("%v", err)
	}
	revs, err := st.Revisions(ctx, id)
	if err != nil {
		fatal("archive: %v", err)
	}

	dir := cfg.ArchiveDir()
	var archived, skipped, failed int
	var rawBytes, zstBytes int64
	for _, r := range revs {
		if archive.IsArchived(id, r.SavedAt, dir) {
			skipped++
			continue
		}
		path, err := archive.Archive(id, r.SavedAt, r.Content, dir)
		if err != nil {
			log.Printf("warning: archive revision %d: %v", r.ID, err)
			failed++
			continue
		}
		archived++
		rawBytes += int64(len(r.Content))
		if info, err := os.Stat(path); err == nil {
			zstBytes += info.Size()
		}
	}

	fmt.Printf("archived: %d, skipped: %d, failed: %d\n", archived, skipped, failed)
	if archived > 0 {
		fmt.Printf("size: %d -> %d bytes\n", rawBytes, zstBytes)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runRestore(args []string) {
	pos := positional(args)
	if len(pos) < 1 {
		fatal("usage: refinelab restore <file.txt.zst>")
	}
	data, err := archive.Decompress(pos[0])
	if err != nil {
		fatal("restore: %v", err)
	}
	if id, savedAt, ok := archive.ParseName(pos[0]); ok {
		fmt.Fprintf(os.Stderr, "essay %s, saved %s\n\n", id, savedAt.Local().Format("2006-01-02 15:04:05"))
	}
	os.Stdout.Write(data)
}

func runCheck() {
	report := check.Run(mustLoadConfig())
	fmt.Print(report.Format())
	if report.HasFailures() {
		os.Exit(1)
	}
}
