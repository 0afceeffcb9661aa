package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/suykerbuyk/refinelab/internal/analyze"
)

// Config holds all refinelab configuration.
type Config struct {
	DataDir string `toml:"data_dir"`

	Analyzer AnalyzerConfig `toml:"analyzer"`
	AutoSave AutoSaveConfig `toml:"autosave"`
	Scoring  ScoringConfig  `toml:"scoring"`
	Archive  ArchiveConfig  `toml:"archive"`
}

type AnalyzerConfig struct {
	SuggestionCap                int `toml:"suggestion_cap"`
	DebounceMs                   int `toml:"debounce_ms"`
	LongSentenceWords            int `toml:"long_sentence_words"`
	LongParagraphSentences       int `toml:"long_paragraph_sentences"`
	SingleSentenceParagraphWords int `toml:"single_sentence_paragraph_words"`
	RepetitionMinLength          int `toml:"repetition_min_length"`
	RepetitionMaxCount           int `toml:"repetition_max_count"`
	ReadWordsPerMinute           int `toml:"read_words_per_minute"`
	AcademicWordLength           int `toml:"academic_word_length"`

	TransitionWords      []string         `toml:"transition_words"`
	ParagraphTransitions []string         `toml:"paragraph_transitions"`
	WeakQualifiers       []string         `toml:"weak_qualifiers"`
	BeVerbs              []string         `toml:"be_verbs"`
	Phrases              []analyze.Phrase `toml:"phrases"`
}

type AutoSaveConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
}

type ScoringConfig struct {
	Enabled        bool   `toml:"enabled"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Model          string `toml:"model"`
	APIKeyEnv      string `toml:"api_key_env"`
	BaseURL        string `toml:"base_url"`
}

type ArchiveConfig struct {
	Compress bool `toml:"compress"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	d := analyze.DefaultConfig()
	return Config{
		DataDir: "~/.local/share/refinelab",
		Analyzer: AnalyzerConfig{
			SuggestionCap:                d.SuggestionCap,
			DebounceMs:                   1000,
			LongSentenceWords:            d.LongSentenceWords,
			LongParagraphSentences:       d.LongParagraphSentences,
			SingleSentenceParagraphWords: d.SingleSentenceParagraphWords,
			RepetitionMinLength:          d.RepetitionMinLength,
			RepetitionMaxCount:           d.RepetitionMaxCount,
			ReadWordsPerMinute:           d.ReadWordsPerMinute,
			AcademicWordLength:           d.AcademicWordLength,
		},
		AutoSave: AutoSaveConfig{
			Enabled:         true,
			IntervalSeconds: 30,
		},
		Scoring: ScoringConfig{
			Enabled:        false,
			TimeoutSeconds: 60,
			Model:          "gpt-4o-mini",
			APIKeyEnv:      "REFINELAB_API_KEY",
			BaseURL:        "https://api.openai.com/v1",
		},
		Archive: ArchiveConfig{
			Compress: true,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
// A .env file in the config directory is loaded first; it never overrides
// variables already set in the environment.
func Load() (Config, error) {
	cfg := DefaultConfig()

	envPath := filepath.Join(ConfigDir(), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return cfg, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	paths := configPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.DataDir = expandHome(cfg.DataDir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "refinelab", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "refinelab", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// DBPath returns the SQLite database path inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "refinelab.db")
}

// ArchiveDir returns the revision archive directory.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.DataDir, "archive")
}

// AnalyzeConfig builds the analyzer configuration. Zero values and empty
// lists keep the built-in defaults.
func (c Config) AnalyzeConfig() analyze.Config {
	a := c.Analyzer
	cfg := analyze.Config{
		SuggestionCap:                a.SuggestionCap,
		LongSentenceWords:            a.LongSentenceWords,
		LongParagraphSentences:       a.LongParagraphSentences,
		SingleSentenceParagraphWords: a.SingleSentenceParagraphWords,
		RepetitionMinLength:          a.RepetitionMinLength,
		RepetitionMaxCount:           a.RepetitionMaxCount,
		AcademicWordLength:           a.AcademicWordLength,
		ReadWordsPerMinute:           a.ReadWordsPerMinute,
	}
	if len(a.TransitionWords) > 0 {
		cfg.TransitionWords = a.TransitionWords
	}
	if len(a.ParagraphTransitions) > 0 {
		cfg.ParagraphTransitions = a.ParagraphTransitions
	}
	if len(a.WeakQualifiers) > 0 {
		cfg.WeakQualifiers = a.WeakQualifiers
	}
	if len(a.BeVerbs) > 0 {
		cfg.BeVerbs = a.BeVerbs
	}
	if len(a.Phrases) > 0 {
		cfg.Phrases = a.Phrases
	}
	return cfg
}

// DebounceMs returns the detection quiet period in milliseconds, or the
// default when unset.
func (c Config) DebounceMs() int {
	if c.Analyzer.DebounceMs <= 0 {
		return 1000
	}
	return c.Analyzer.DebounceMs
}

// AutoSaveSeconds returns the auto-save delay, or 0 when auto-save is off.
func (c Config) AutoSaveSeconds() int {
	if !c.AutoSave.Enabled || c.AutoSave.IntervalSeconds <= 0 {
		return 0
	}
	return c.AutoSave.IntervalSeconds
}
