package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/suykerbuyk/refinelab/internal/store"
)

// essayLister is the part of the store ID resolution needs.
type essayLister interface {
	List(ctx context.Context) ([]store.Essay, error)
	Revisions(ctx context.Context, id string) ([]store.Revision, error)
}

// resolveID expands an exact ID or a unique ID prefix.
func resolveID(ctx context.Context, st essayLister, arg string) (string, error) {
	if arg == "" {
		return "", errors.New("essay ID is required")
	}
	essays, err := st.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, e := range essays {
		if e.ID == arg {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, arg) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("essay %s: %w", arg, store.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("essay prefix %s is ambiguous (%d matches)", arg, len(matches))
	}
}

// version is one side of a comparison.
type version struct {
	Label string
	Title string
	Text  string
}

// resolveVersion accepts "id" for the latest text or "id@N" for the Nth
// saved revision, counting from 1.
func resolveVersion(ctx context.Context, st essayLister, ref string) (version, error) {
	idPart, revPart, hasRev := strings.Cut(ref, "@")
	id, err := resolveID(ctx, st, idPart)
	if err != nil {
		return version{}, err
	}
	revs, err := st.Revisions(ctx, id)
	if err != nil {
		return version{}, err
	}
	if len(revs) == 0 {
		return version{}, fmt.Errorf("essay %s has no revisions", shortID(id))
	}

	n := len(revs)
	if hasRev {
		n, err = strconv.Atoi(revPart)
		if err != nil || n < 1 || n > len(revs) {
			return version{}, fmt.Errorf("revision %q out of range 1-%d", revPart, len(revs))
		}
	}
	r := revs[n-1]
	return version{
		Label: fmt.Sprintf("%s@%d", shortID(id), n),
		Title: r.Title,
		Text:  r.Content,
	}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// titleFromPath turns "drafts/my-essay.txt" into "my-essay".
func titleFromPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
