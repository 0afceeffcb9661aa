// Package archive keeps zstd-compressed snapshots of saved essay revisions.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

const (
	stampLayout = "20060102T150405.000"
	suffix      = ".txt.zst"
)

// Archive compresses content into dir/{essay-id}-{stamp}.txt.zst.
// Returns the archive path.
func Archive(essayID string, savedAt time.Time, content, dir string) (string, error) {
	if essayID == "" {
		return "", fmt.Errorf("archive revision: empty essay ID")
	}

	destPath := ArchivePath(essayID, savedAt, dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, strings.NewReader(content)); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// Decompress returns the original revision text stored at archivePath.
func Decompress(archivePath string) ([]byte, error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, decoder); err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return buf.Bytes(), nil
}

// IsArchived reports whether the revision saved at savedAt has an archive.
func IsArchived(essayID string, savedAt time.Time, dir string) bool {
	_, err := os.Stat(ArchivePath(essayID, savedAt, dir))
	return err == nil
}

// ArchivePath returns the deterministic archive path for one revision.
// Timestamps are rendered in UTC to the millisecond.
func ArchivePath(essayID string, savedAt time.Time, dir string) string {
	return filepath.Join(dir, essayID+"-"+savedAt.UTC().Format(stampLayout)+suffix)
}

// ParseName recovers the essay ID and save time from an archive file name.
func ParseName(path string) (essayID string, savedAt time.Time, ok bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, suffix) {
		return "", time.Time{}, false
	}
	base = strings.TrimSuffix(base, suffix)
	i := strings.LastIndexByte(base, '-')
	if i <= 0 {
		return "", time.Time{}, false
	}
	t, err := time.Parse(stampLayout, base[i+1:])
	if err != nil {
		return "", time.Time{}, false
	}
	return base[:i], t, true
}
