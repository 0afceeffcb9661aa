package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suykerbuyk/refinelab/internal/config"
	"github.com/suykerbuyk/refinelab/internal/store"
)

func TestCheckDataDir_Pass(t *testing.T) {
	r := CheckDataDir(t.TempDir())
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckDataDir_Warn(t *testing.T) {
	r := CheckDataDir("/nonexistent/refinelab/data")
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckDataDir_FailOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	os.WriteFile(path, []byte("x"), 0o644)
	r := CheckDataDir(path)
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckStore_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refinelab.db")
	r := CheckStore(path)
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("CheckStore created the database")
	}
}

func TestCheckStore_Pass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refinelab.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Create(context.Background(), "T", "text")
	s.Close()

	r := CheckStore(path)
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if !strings.Contains(r.Detail, "1 essays") {
		t.Errorf("detail = %q", r.Detail)
	}
}

func TestCheckArchive(t *testing.T) {
	if r := CheckArchive("/nonexistent/archive"); r.Status != Warn {
		t.Errorf("missing: expected Warn, got %s", r.Status)
	}

	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a-20260301T000000.txt.zst"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	r := CheckArchive(dir)
	if r.Status != Pass || !strings.Contains(r.Detail, "(1 revisions)") {
		t.Errorf("got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckAnalyzer(t *testing.T) {
	r := CheckAnalyzer(config.DefaultConfig())
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if !strings.Contains(r.Detail, "cap 25") || !strings.Contains(r.Detail, "debounce 1000ms") {
		t.Errorf("detail = %q", r.Detail)
	}

	cfg := config.DefaultConfig()
	cfg.Analyzer.SuggestionCap = -1
	if r := CheckAnalyzer(cfg); r.Status != Warn {
		t.Errorf("negative cap: expected Warn, got %s", r.Status)
	}
}

func TestCheckScoring_Disabled(t *testing.T) {
	r := CheckScoring(config.ScoringConfig{Enabled: false})
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if r.Detail != "disabled" {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckScoring_EnabledWithKey(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-test-123")
	r := CheckScoring(config.ScoringConfig{Enabled: true, Model: "m", APIKeyEnv: "TEST_API_KEY"})
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckScoring_EnabledNoKey(t *testing.T) {
	t.Setenv("TEST_API_KEY_MISSING", "")
	r := CheckScoring(config.ScoringConfig{Enabled: true, Model: "m", APIKeyEnv: "TEST_API_KEY_MISSING"})
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckScoring_NoModel(t *testing.T) {
	r := CheckScoring(config.ScoringConfig{Enabled: true})
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestReport_HasFailures_True(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "a", Status: Pass},
		{Name: "b", Status: Fail},
	}}
	if !r.HasFailures() {
		t.Error("expected HasFailures() == true")
	}
}

func TestReport_HasFailures_False(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "a", Status: Pass},
		{Name: "b", Status: Warn},
	}}
	if r.HasFailures() {
		t.Error("expected HasFailures() == false")
	}
}

func TestRun_Integration(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	data := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.DataDir = data

	s, err := store.Open(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	report := Run(cfg)
	if report.HasFailures() {
		t.Errorf("unexpected failures:\n%s", report.Format())
	}
	if len(report.Results) != 6 {
		t.Errorf("results = %d, want 6", len(report.Results))
	}

	output := report.Format()
	if !strings.HasPrefix(output, "refinelab check\n") {
		t.Errorf("Format() = %q", output)
	}
	if !strings.Contains(output, "passed") {
		t.Error("Format() missing summary line")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Pass, "pass"},
		{Warn, "warn"},
		{Fail, "FAIL"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
