// Package store persists essays, their saved revisions, AI score records,
// the cached writing fingerprint and past grading patterns in a local
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no essay has the requested ID.
var ErrNotFound = errors.New("essay not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS essays (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revisions (
    id INTEGER PRIMARY KEY,
    essay_id TEXT NOT NULL,
    saved_at TEXT NOT NULL,
    title TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS revisions_essay ON revisions(essay_id);

CREATE TABLE IF NOT EXISTS scores (
    id INTEGER PRIMARY KEY,
    essay_id TEXT NOT NULL,
    scored_at TEXT NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS scores_essay ON scores(essay_id);

CREATE TABLE IF NOT EXISTS fingerprints (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    generated_at TEXT NOT NULL,
    essay_count INTEGER NOT NULL,
    payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS grading_patterns (
    id INTEGER PRIMARY KEY,
    assignment_name TEXT NOT NULL,
    grade TEXT NOT NULL,
    rubric TEXT NOT NULL,
    penalty_areas TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Fixed-width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Essay is the latest saved state of one essay.
type Essay struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Revision is one save of an essay.
type Revision struct {
	ID        int64     `json:"id"`
	EssayID   string    `json:"essay_id"`
	SavedAt   time.Time `json:"saved_at"`
	Title     string    `json:"title"`
	WordCount int       `json:"word_count"`
	Content   string    `json:"content"`
}

// Score is a stored scoring result. Payload is the JSON the scoring
// client produced.
type Score struct {
	ID       int64     `json:"id"`
	EssayID  string    `json:"essay_id"`
	ScoredAt time.Time `json:"scored_at"`
	Payload  string    `json:"payload"`
}

// Store wraps the database handle.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: SQLite has a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new essay with its first revision and returns it.
func (s *Store) Create(ctx context.Context, title, content string) (*Essay, error) {
	now := s.now()
	e := &Essay{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		WordCount: wordCount(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO essays(id, title, content, word_count, created_at, updated_at) VALUES(?,?,?,?,?,?)`,
		e.ID, e.Title, e.Content, e.WordCount, now.Format(timeLayout), now.Format(timeLayout),
	); err != nil {
		return nil, fmt.Errorf("insert essay: %w", err)
	}
	if err := insertRevision(ctx, tx, e, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return e, nil
}

// Update replaces an essay's title and content and appends a revision.
func (s *Store) Update(ctx context.Context, id, title, content string) (*Essay, error) {
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	e, err := getEssay(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	e.Title = title
	e.Content = content
	e.WordCount = wordCount(content)
	e.UpdatedAt = now

	if _, err := tx.ExecContext(ctx,
		`UPDATE essays SET title = ?, content = ?, word_count = ?, updated_at = ? WHERE id = ?`,
		e.Title, e.Content, e.WordCount, now.Format(timeLayout), id,
	); err != nil {
		return nil, fmt.Errorf("update essay: %w", err)
	}
	if err := insertRevision(ctx, tx, e, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return e, nil
}

// Get returns the essay with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Essay, error) {
	return getEssay(ctx, s.db, id)
}

// List returns every essay, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Essay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, word_count, created_at, updated_at FROM essays ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list essays: %w", err)
	}
	defer rows.Close()

	var out []Essay
	for rows.Next() {
		e, err := scanEssay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list essays: %w", err)
	}
	return out, nil
}

// Delete removes an essay together with its revisions and scores.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM essays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete essay: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete essay: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE essay_id = ?`, id); err != nil {
		return fmt.Errorf("delete revisions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE essay_id = ?`, id); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Revisions returns an essay's revisions, oldest first.
func (s *Store) Revisions(ctx context.Context, id string) ([]Revision, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, essay_id, saved_at, title, word_count, content FROM revisions WHERE essay_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var r Revision
		var savedAt string
		if err := rows.Scan(&r.ID, &r.EssayID, &savedAt, &r.Title, &r.WordCount, &r.Content); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		if r.SavedAt, err = time.Parse(timeLayout, savedAt); err != nil {
			return nil, fmt.Errorf("parse saved_at: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	return out, nil
}

// SaveScore records a scoring payload for an essay.
func (s *Store) SaveScore(ctx context.Context, id, payload string) (*Score, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores(essay_id, scored_at, payload) VALUES(?,?,?)`, id, now.Format(timeLayout), payload)
	if err != nil {
		return nil, fmt.Errorf("insert score: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("score last insert id: %w", err)
	}
	return &Score{ID: rowID, EssayID: id, ScoredAt: now, Payload: payload}, nil
}

// Scores returns an essay's score records, oldest first.
func (s *Store) Scores(ctx context.Context, id string) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, essay_id, scored_at, payload FROM scores WHERE essay_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var sc Score
		var scoredAt string
		if err := rows.Scan(&sc.ID, &sc.EssayID, &scoredAt, &sc.Payload); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if sc.ScoredAt, err = time.Parse(timeLayout, scoredAt); err != nil {
			return nil, fmt.Errorf("parse scored_at: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return out, nil
}

// Saver binds one essay to the editor's save contract. An empty id creates
// the essay on the first save and updates it afterwards.
func (s *Store) Saver(id string) *Saver {
	return &Saver{store: s, id: id}
}

// Saver implements editor.Store for a single essay.
type Saver struct {
	store *Store

	mu sync.Mutex
	id string
}

// Save creates or updates the bound essay.
func (sv *Saver) Save(ctx context.Context, title, content string) error {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	if sv.id == "" {
		e, err := sv.store.Create(ctx, title, content)
		if err != nil {
			return err
		}
		sv.id = e.ID
		return nil
	}
	_, err := sv.store.Update(ctx, sv.id, title, content)
	return err
}

// ID returns the bound essay ID, empty until the first save of a new essay.
func (sv *Saver) ID() string {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.id
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getEssay(ctx context.Context, q querier, id string) (*Essay, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, title, content, word_count, created_at, updated_at FROM essays WHERE id = ?`, id)
	e, err := scanEssay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func scanEssay(row scanner) (*Essay, error) {
	var e Essay
	var created, updated string
	if err := row.Scan(&e.ID, &e.Title, &e.Content, &e.WordCount, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan essay: %w", err)
	}
	var err error
	if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &e, nil
}

func insertRevision(ctx context.Context, tx *sql.Tx, e *Essay, at time.Time) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions(essay_id, saved_at, title, word_count, content) VALUES(?,?,?,?,?)`,
		e.ID, at.Format(timeLayout), e.Title, e.WordCount, e.Content,
	); err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}
	return nil
}

// wordCount matches the analyzer's whitespace tokenization.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
