package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoFingerprint is returned when no writing fingerprint has been saved.
var ErrNoFingerprint = errors.New("no fingerprint saved")

// Fingerprint is the cached writing fingerprint. There is at most one;
// saving again replaces it.
type Fingerprint struct {
	GeneratedAt time.Time `json:"generated_at"`
	EssayCount  int       `json:"essay_count"`
	Payload     string    `json:"payload"`
}

// SaveFingerprint replaces the cached fingerprint.
func (s *Store) SaveFingerprint(ctx context.Context, essayCount int, payload string) (*Fingerprint, error) {
	now := s.now()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO fingerprints(id, generated_at, essay_count, payload) VALUES(1,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET generated_at = excluded.generated_at,
		     essay_count = excluded.essay_count, payload = excluded.payload`,
		now.Format(timeLayout), essayCount, payload,
	); err != nil {
		return nil, fmt.Errorf("save fingerprint: %w", err)
	}
	return &Fingerprint{GeneratedAt: now, EssayCount: essayCount, Payload: payload}, nil
}

// Fingerprint returns the cached fingerprint, or ErrNoFingerprint.
func (s *Store) Fingerprint(ctx context.Context) (*Fingerprint, error) {
	var f Fingerprint
	var at string
	err := s.db.QueryRowContext(ctx,
		`SELECT generated_at, essay_count, payload FROM fingerprints WHERE id = 1`).
		Scan(&at, &f.EssayCount, &f.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoFingerprint
	}
	if err != nil {
		return nil, fmt.Errorf("get fingerprint: %w", err)
	}
	if f.GeneratedAt, err = time.Parse(timeLayout, at); err != nil {
		return nil, fmt.Errorf("parse generated_at: %w", err)
	}
	return &f, nil
}

// GradingPattern is one graded assignment recorded by the writer. Rubric
// is free-form JSON; an empty rubric is stored as "{}".
type GradingPattern struct {
	ID             int64     `json:"id"`
	AssignmentName string    `json:"assignment_name"`
	Grade          string    `json:"grade"`
	Rubric         string    `json:"rubric"`
	PenaltyAreas   []string  `json:"penalty_areas"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddGradingPattern records a graded assignment.
func (s *Store) AddGradingPattern(ctx context.Context, assignment, grade, rubric string, penalties []string) (*GradingPattern, error) {
	assignment, grade = strings.TrimSpace(assignment), strings.TrimSpace(grade)
	if assignment == "" || grade == "" {
		return nil, errors.New("assignment name and grade are required")
	}
	if strings.TrimSpace(rubric) == "" {
		rubric = "{}"
	}
	if !json.Valid([]byte(rubric)) {
		return nil, errors.New("rubric is not valid JSON")
	}
	if penalties == nil {
		penalties = []string{}
	}
	pen, err := json.Marshal(penalties)
	if err != nil {
		return nil, fmt.Errorf("marshal penalty areas: %w", err)
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO grading_patterns(assignment_name, grade, rubric, penalty_areas, created_at) VALUES(?,?,?,?,?)`,
		assignment, grade, rubric, string(pen), now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert grading pattern: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("grading pattern last insert id: %w", err)
	}
	return &GradingPattern{
		ID: id, AssignmentName: assignment, Grade: grade,
		Rubric: rubric, PenaltyAreas: penalties, CreatedAt: now,
	}, nil
}

// GradingPatterns returns every recorded pattern, newest first.
func (s *Store) GradingPatterns(ctx context.Context) ([]GradingPattern, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, assignment_name, grade, rubric, penalty_areas, created_at
		 FROM grading_patterns ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list grading patterns: %w", err)
	}
	defer rows.Close()

	var out []GradingPattern
	for rows.Next() {
		var g GradingPattern
		var pen, at string
		if err := rows.Scan(&g.ID, &g.AssignmentName, &g.Grade, &g.Rubric, &pen, &at); err != nil {
			return nil, fmt.Errorf("scan grading pattern: %w", err)
		}
		if err := json.Unmarshal([]byte(pen), &g.PenaltyAreas); err != nil {
			return nil, fmt.Errorf("parse penalty areas: %w", err)
		}
		if g.CreatedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list grading patterns: %w", err)
	}
	return out, nil
}
