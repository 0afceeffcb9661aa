package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the refinelab config directory path.
// Uses $XDG_CONFIG_HOME/refinelab if set, otherwise ~/.config/refinelab.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "refinelab")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "refinelab")
}

// WriteDefault writes a default config.toml storing data under dataDir.
// Returns the config file path and "created", or "unchanged" when a config is
// already present; an existing file is never modified.
func WriteDefault(dataDir string) (string, string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, "unchanged", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}

	d := DefaultConfig()
	content := fmt.Sprintf(`data_dir = %q

[analyzer]
suggestion_cap = %d
debounce_ms = %d
long_sentence_words = %d
long_paragraph_sentences = %d
single_sentence_paragraph_words = %d
repetition_min_length = %d
repetition_max_count = %d
read_words_per_minute = %d
academic_word_length = %d
# Word lists replace the built-in ones when set, e.g.
# weak_qualifiers = ["very", "really"]
#
# [[analyzer.phrases]]
# pattern = "in order to"
# replacement = "to"

[autosave]
enabled = %t
interval_seconds = %d

[scoring]
enabled = %t
timeout_seconds = %d
model = %q
api_key_env = %q
base_url = %q

[archive]
compress = %t
`,
		CompressHome(dataDir),
		d.Analyzer.SuggestionCap, d.Analyzer.DebounceMs, d.Analyzer.LongSentenceWords,
		d.Analyzer.LongParagraphSentences, d.Analyzer.SingleSentenceParagraphWords,
		d.Analyzer.RepetitionMinLength, d.Analyzer.RepetitionMaxCount,
		d.Analyzer.ReadWordsPerMinute, d.Analyzer.AcademicWordLength,
		d.AutoSave.Enabled, d.AutoSave.IntervalSeconds,
		d.Scoring.Enabled, d.Scoring.TimeoutSeconds, d.Scoring.Model, d.Scoring.APIKeyEnv, d.Scoring.BaseURL,
		d.Archive.Compress,
	)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", "", fmt.Errorf("write config: %w", err)
	}

	return path, "created", nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
