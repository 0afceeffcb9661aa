// Package editor holds one draft being edited: live metrics recomputed on
// every change, debounced suggestion passes, and save / auto-save state.
package editor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/debounce"
)

// DefaultDebounce is the quiet period before a suggestion pass runs.
const DefaultDebounce = time.Second

// Store persists a draft. Implementations decide whether a save creates
// or updates the underlying essay.
type Store interface {
	Save(ctx context.Context, title, content string) error
}

// RevisionMarker records one completed save for the recent-saves list.
type RevisionMarker struct {
	Timestamp time.Time `json:"timestamp"`
	WordCount int       `json:"word_count"`
}

// Options configure a Session.
type Options struct {
	Title string
	Text  string

	// Debounce is the quiet period before detection. Zero means DefaultDebounce.
	Debounce time.Duration
	// AutoSave is the delay after the last change before an automatic save.
	// Zero disables auto-save.
	AutoSave time.Duration
	// OnUpdate, if set, receives a Snapshot after every state change.
	// It is called without any session lock held.
	OnUpdate func(Snapshot)
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Title       string
	Text        string
	Metrics     analyze.LiveMetrics
	Suggestions []analyze.Suggestion
	// Generation identifies the detection pass that produced Suggestions.
	// Zero means the initial pass run by New.
	Generation uint64
	Unsaved    bool
	LastSaved  time.Time
	Revisions  []RevisionMarker
}

// Session is safe for concurrent use.
type Session struct {
	an        *analyze.Analyzer
	store     Store
	sched     *debounce.Scheduler
	autoDelay time.Duration
	onUpdate  func(Snapshot)

	saveMu sync.Mutex // one save at a time

	mu          sync.Mutex
	title       string
	text        string
	metrics     analyze.LiveMetrics
	suggestions []analyze.Suggestion
	generation  uint64
	unsaved     bool
	edits       uint64
	textRev     uint64 // bumped on every text change
	lastSaved   time.Time
	revisions   []RevisionMarker
	autoTimer   *time.Timer
	closed      bool
}

// New starts a session on opts.Text. The initial text is analyzed
// synchronously and counts as saved.
func New(an *analyze.Analyzer, store Store, opts Options) *Session {
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	r := an.Analyze(opts.Text)
	return &Session{
		an:          an,
		store:       store,
		sched:       debounce.New(delay),
		autoDelay:   opts.AutoSave,
		onUpdate:    opts.OnUpdate,
		title:       opts.Title,
		text:        opts.Text,
		metrics:     r.Metrics,
		suggestions: r.Suggestions,
	}
}

// SetText replaces the draft text. Metrics are recomputed before it
// returns; suggestions follow after the debounce period.
func (s *Session) SetText(text string) {
	snap, ok := s.replaceText(text)
	if !ok {
		return
	}
	s.sched.Schedule(s.detect)
	s.notify(snap)
}

// replaceText swaps in text and its metrics. Bumping textRev here, under
// mu, invalidates any pass that read the old text even before Schedule
// bumps the scheduler generation.
func (s *Session) replaceText(text string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, false
	}
	s.text = text
	s.textRev++
	s.metrics = s.an.Metrics(text)
	s.markChangedLocked()
	return s.snapshotLocked(), true
}

// SetTitle replaces the draft title.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.title = title
	s.markChangedLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Session) markChangedLocked() {
	s.unsaved = true
	s.edits++
	if s.autoDelay <= 0 {
		return
	}
	if s.autoTimer != nil {
		s.autoTimer.Stop()
	}
	s.autoTimer = time.AfterFunc(s.autoDelay, s.autoSave)
}

// detect reads the text current at run time. A newer edit bumps the
// generation, so Apply drops this pass and the newer one runs instead.
// Results are also dropped if the text changed after it was read.
func (s *Session) detect(gen uint64) {
	s.mu.Lock()
	text, rev := s.text, s.textRev
	s.mu.Unlock()

	suggestions := s.an.Detect(text)

	var snap Snapshot
	published := false
	s.sched.Apply(gen, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.textRev != rev {
			return
		}
		s.suggestions = suggestions
		s.generation = gen
		snap = s.snapshotLocked()
		published = true
	})
	if published {
		s.notify(snap)
	}
}

func (s *Session) autoSave() {
	if err := s.Save(context.Background(), true); err != nil {
		log.Printf("warning: auto-save: %v", err)
	}
}

// Save writes the current title and text to the store. An automatic save
// with nothing unsaved is a no-op. On failure the draft stays unsaved.
func (s *Session) Save(ctx context.Context, auto bool) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.closed && auto {
		s.mu.Unlock()
		return nil
	}
	if auto && !s.unsaved {
		s.mu.Unlock()
		return nil
	}
	title, text, edits := s.title, s.text, s.edits
	words := s.metrics.WordCount
	s.mu.Unlock()

	if err := s.store.Save(ctx, title, text); err != nil {
		return fmt.Errorf("save essay: %w", err)
	}

	s.mu.Lock()
	s.lastSaved = time.Now()
	if s.edits == edits {
		s.unsaved = false
	}
	s.revisions = append(s.revisions, RevisionMarker{Timestamp: s.lastSaved, WordCount: words})
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Flush runs a pending suggestion pass immediately.
func (s *Session) Flush() {
	s.sched.Flush()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Title:       s.title,
		Text:        s.text,
		Metrics:     s.metrics,
		Suggestions: append([]analyze.Suggestion(nil), s.suggestions...),
		Generation:  s.generation,
		Unsaved:     s.unsaved,
		LastSaved:   s.lastSaved,
		Revisions:   append([]RevisionMarker(nil), s.revisions...),
	}
}

// Close stops the detection and auto-save timers. Later edits are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.autoTimer != nil {
		s.autoTimer.Stop()
	}
	s.mu.Unlock()

	s.sched.Cancel()
}

func (s *Session) notify(snap Snapshot) {
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
}
