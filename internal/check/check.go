package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/config"
	"github.com/suykerbuyk/refinelab/internal/store"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "refinelab check\n\n  no checks ran\n"
	}

	// Find max name length for alignment.
	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("refinelab check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfig reports the resolved config path. Always passes; broken TOML
// is caught by mustLoadConfig before we get here.
func CheckConfig() Result {
	cfgPath := filepath.Join(config.ConfigDir(), "config.toml")
	if _, err := os.Stat(cfgPath); err != nil {
		return Result{Name: "config", Status: Pass, Detail: "defaults (no " + config.CompressHome(cfgPath) + ")"}
	}
	return Result{
		Name:   "config",
		Status: Pass,
		Detail: config.CompressHome(cfgPath),
	}
}

// CheckDataDir checks whether the data directory exists.
func CheckDataDir(path string) Result {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return Result{Name: "data", Status: Fail, Detail: path + " is not a directory"}
		}
		return Result{Name: "data", Status: Pass, Detail: config.CompressHome(path)}
	}
	return Result{Name: "data", Status: Warn, Detail: config.CompressHome(path) + " not found (created on first save)"}
}

// CheckStore opens the essay database, if present, and reports its size.
// A missing database is not created.
func CheckStore(dbPath string) Result {
	if _, err := os.Stat(dbPath); err != nil {
		return Result{Name: "store", Status: Warn, Detail: filepath.Base(dbPath) + " not found yet"}
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return Result{Name: "store", Status: Fail, Detail: err.Error()}
	}
	defer s.Close()

	essays, err := s.List(context.Background())
	if err != nil {
		return Result{Name: "store", Status: Fail, Detail: err.Error()}
	}
	return Result{Name: "store", Status: Pass, Detail: fmt.Sprintf("%s (%d essays)", filepath.Base(dbPath), len(essays))}
}

// CheckArchive reports how many revision archives exist.
func CheckArchive(dir string) Result {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{Name: "archive", Status: Warn, Detail: "archive/ not found (nothing archived yet)"}
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt.zst") {
			count++
		}
	}
	return Result{Name: "archive", Status: Pass, Detail: fmt.Sprintf("archive/ (%d revisions)", count)}
}

// CheckAnalyzer summarizes the effective analyzer settings.
func CheckAnalyzer(cfg config.Config) Result {
	if cfg.Analyzer.SuggestionCap < 0 {
		return Result{Name: "analyzer", Status: Warn, Detail: "negative suggestion_cap; default used"}
	}
	eff := analyze.New(cfg.AnalyzeConfig()).Config()
	detail := fmt.Sprintf("cap %d, debounce %dms, %d phrases", eff.SuggestionCap, cfg.DebounceMs(), len(eff.Phrases))
	return Result{Name: "analyzer", Status: Pass, Detail: detail}
}

// CheckScoring checks scoring configuration.
func CheckScoring(scfg config.ScoringConfig) Result {
	if !scfg.Enabled {
		return Result{Name: "scoring", Status: Pass, Detail: "disabled"}
	}
	if scfg.Model == "" {
		return Result{Name: "scoring", Status: Fail, Detail: "enabled but no model set"}
	}
	keyEnv := scfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "REFINELAB_API_KEY"
	}
	if os.Getenv(keyEnv) != "" {
		return Result{Name: "scoring", Status: Pass, Detail: keyEnv + " set"}
	}
	return Result{Name: "scoring", Status: Warn, Detail: keyEnv + " not set"}
}

// Run executes all checks against the given config and returns a report.
func Run(cfg config.Config) Report {
	var results []Result

	results = append(results, CheckConfig())
	results = append(results, CheckDataDir(cfg.DataDir))
	results = append(results, CheckStore(cfg.DBPath()))
	results = append(results, CheckArchive(cfg.ArchiveDir()))
	results = append(results, CheckAnalyzer(cfg))
	results = append(results, CheckScoring(cfg.Scoring))

	return Report{Results: results}
}
