package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/suykerbuyk/refinelab/internal/help"
)

func main() {
	dir := "man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fatal("%v", err)
	}

	date := time.Now().Format("2006-01-02")
	if d := os.Getenv("SOURCE_DATE_EPOCH"); d != "" {
		var sec int64
		if _, err := fmt.Sscanf(d, "%d", &sec); err == nil {
			date = time.Unix(sec, 0).UTC().Format("2006-01-02")
		}
	}

	if err := write(dir, "refinelab.1", help.FormatRoffTopLevel(help.TopLevel, help.Subcommands, date)); err != nil {
		fatal("%v", err)
	}

	for _, cmd := range help.Subcommands {
		if err := write(dir, cmd.ManName()+".1", help.FormatRoff(cmd, date)); err != nil {
			fatal("%v", err)
		}
	}
}

func write(dir, name, content string) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("  %s\n", path)
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gen-man: "+format+"\n", args...)
	os.Exit(1)
}
