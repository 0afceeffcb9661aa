// Package ingest turns draft files into plain essay text. Word documents
// (.docx) are unpacked; anything else not known to be binary is read as
// UTF-8 text.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrUnsupported is returned for formats refinelab cannot extract text from.
var ErrUnsupported = errors.New("unsupported document format")

// maxDocumentXML bounds the uncompressed word/document.xml.
const maxDocumentXML = 32 << 20

var unsupported = map[string]bool{
	".pdf": true, ".doc": true, ".rtf": true, ".odt": true, ".pages": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".heic": true,
}

// ReadFile returns the essay text in path.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Parse(filepath.Ext(path), raw)
}

// Parse extracts text from raw according to the file extension ext.
func Parse(ext string, raw []byte) (string, error) {
	ext = strings.ToLower(ext)
	switch {
	case ext == ".docx":
		text, err := parseDOCX(raw)
		if err != nil {
			return "", err
		}
		return Normalize(text), nil
	case unsupported[ext]:
		return "", fmt.Errorf("%s: %w (save the draft as .docx or plain text)", ext, ErrUnsupported)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: file is not UTF-8 text", ErrUnsupported)
	}
	return string(raw), nil
}

var (
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
	lineBlanks = regexp.MustCompile(` *\n *`)
)

// Normalize converts line endings to \n, collapses repeated spaces, strips
// spaces around line breaks, squeezes runs of blank lines to one and trims
// the result.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = lineBlanks.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// parseDOCX reads the body text of a Word document. Paragraphs are
// separated by a blank line, tabs become spaces and line breaks newlines.
func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New("word/document.xml not found")
	}
	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(io.LimitReader(rc, maxDocumentXML))
	var out strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "p":
				if out.Len() > 0 {
					out.WriteString("\n\n")
				}
			case "tab":
				out.WriteByte(' ')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				out.Write(el)
			}
		}
	}
	return out.String(), nil
}
