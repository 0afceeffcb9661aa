package stats

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/scoring"
)

var now = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func makeEntry(id string, updated time.Time, words, revisions int, level string, rules ...string) Entry {
	e := Entry{
		ID:        id,
		Title:     "Essay " + id,
		UpdatedAt: updated,
		Revisions: revisions,
		Metrics: analyze.LiveMetrics{
			WordCount:         words,
			ReadingLevel:      level,
			EstimatedReadTime: (words + 199) / 200,
		},
	}
	for _, r := range rules {
		e.Suggestions = append(e.Suggestions, analyze.Suggestion{Rule: r})
	}
	return e
}

func scored(e Entry, clarity, depth float64) Entry {
	e.Score = &scoring.Metrics{ThesisClarity: clarity, ArgumentDepth: depth, StructureBalance: 0.5, EvidenceDistribution: 0.25}
	return e
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, now)
	if s.TotalEssays != 0 {
		t.Errorf("TotalEssays = %d, want 0", s.TotalEssays)
	}
	if s.AvgWords != 0 || s.AvgClarity != 0 {
		t.Errorf("averages on empty input = %+v", s)
	}
}

func TestCompute_Totals(t *testing.T) {
	entries := []Entry{
		makeEntry("a", now.Add(-24*time.Hour), 400, 3, analyze.LevelCollege, "passive-voice", "weak-qualifier"),
		makeEntry("b", now.Add(-10*24*time.Hour), 200, 1, analyze.LevelHighSchool, "passive-voice"),
	}
	s := Compute(entries, now)

	if s.TotalEssays != 2 || s.TotalWords != 600 || s.TotalRevisions != 4 {
		t.Errorf("totals = %d essays, %d words, %d revisions", s.TotalEssays, s.TotalWords, s.TotalRevisions)
	}
	if s.TotalReadTime != 3 {
		t.Errorf("TotalReadTime = %d, want 3", s.TotalReadTime)
	}
	if s.RecentEssays != 1 {
		t.Errorf("RecentEssays = %d, want 1", s.RecentEssays)
	}
	if !approx(s.AvgWords, 300) || !approx(s.AvgRevisions, 2) || !approx(s.AvgSuggestions, 1.5) {
		t.Errorf("averages = %v words, %v revisions, %v suggestions", s.AvgWords, s.AvgRevisions, s.AvgSuggestions)
	}
}

func TestCompute_Levels(t *testing.T) {
	entries := []Entry{
		makeEntry("a", now, 10, 1, analyze.LevelGraduate),
		makeEntry("b", now, 10, 1, analyze.LevelMiddleSchool),
		makeEntry("c", now, 10, 1, analyze.LevelMiddleSchool),
		makeEntry("d", now, 0, 1, analyze.LevelMiddleSchool), // empty essays have no level
	}
	s := Compute(entries, now)

	if len(s.Levels) != 2 {
		t.Fatalf("Levels = %+v", s.Levels)
	}
	if s.Levels[0].Name != analyze.LevelMiddleSchool || s.Levels[0].Count != 2 {
		t.Errorf("Levels[0] = %+v", s.Levels[0])
	}
	if s.Levels[1].Name != analyze.LevelGraduate {
		t.Errorf("Levels[1] = %+v, want band order", s.Levels[1])
	}
}

func TestCompute_Rules(t *testing.T) {
	entries := []Entry{
		makeEntry("a", now, 10, 1, "", "wordy-phrase", "passive-voice", "passive-voice"),
		makeEntry("b", now, 10, 1, "", "long-sentence", "passive-voice"),
	}
	s := Compute(entries, now)

	if len(s.Rules) != 3 {
		t.Fatalf("Rules = %+v", s.Rules)
	}
	if s.Rules[0].Name != "passive-voice" || s.Rules[0].Count != 3 || !approx(s.Rules[0].Percent, 60) {
		t.Errorf("Rules[0] = %+v", s.Rules[0])
	}
	// ties sort by name
	if s.Rules[1].Name != "long-sentence" || s.Rules[2].Name != "wordy-phrase" {
		t.Errorf("tie order = %s, %s", s.Rules[1].Name, s.Rules[2].Name)
	}
}

func TestCompute_Monthly(t *testing.T) {
	var entries []Entry
	for i := 0; i < 8; i++ {
		entries = append(entries, makeEntry(string(rune('a'+i)), time.Date(2025, time.Month(i+1), 5, 0, 0, 0, 0, time.UTC), 100, 1, ""))
	}
	entries = append(entries, makeEntry("z", time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), 50, 1, ""))
	s := Compute(entries, now)

	if len(s.Monthly) != 6 {
		t.Fatalf("Monthly len = %d, want 6", len(s.Monthly))
	}
	if s.Monthly[0].Month != "2025-08" || s.Monthly[0].Essays != 2 || s.Monthly[0].Words != 150 {
		t.Errorf("Monthly[0] = %+v", s.Monthly[0])
	}
	if s.Monthly[5].Month != "2025-03" {
		t.Errorf("Monthly[5] = %+v", s.Monthly[5])
	}
}

func TestCompute_ScoresAndGrowth(t *testing.T) {
	var entries []Entry
	for i := 0; i < 8; i++ {
		e := makeEntry(string(rune('a'+i)), now.Add(time.Duration(i)*time.Hour), 100, 1, "")
		entries = append(entries, scored(e, float64(i)/10, 0.5))
	}
	entries = append(entries, makeEntry("unscored", now, 100, 1, ""))
	s := Compute(entries, now)

	if s.ScoredEssays != 8 {
		t.Errorf("ScoredEssays = %d, want 8", s.ScoredEssays)
	}
	if !approx(s.AvgClarity, 0.35) || !approx(s.AvgDepth, 0.5) {
		t.Errorf("AvgClarity = %v, AvgDepth = %v", s.AvgClarity, s.AvgDepth)
	}
	if len(s.Growth) != 6 {
		t.Fatalf("Growth len = %d, want 6", len(s.Growth))
	}
	if s.Growth[0].Title != "Essay c" || s.Growth[5].Title != "Essay h" {
		t.Errorf("Growth window = %q .. %q", s.Growth[0].Title, s.Growth[5].Title)
	}
	if !approx(s.Growth[5].Clarity, 0.7) || !approx(s.Growth[5].Evidence, 0.25) {
		t.Errorf("Growth[5] = %+v", s.Growth[5])
	}
}

func TestFormat_Sections(t *testing.T) {
	entries := []Entry{
		scored(makeEntry("a", now, 1200, 2, analyze.LevelCollege, "passive-voice"), 0.8, 0.6),
	}
	out := Format(Compute(entries, now))

	for _, want := range []string{"Overview", "Averages", "Reading Level", "Common Suggestions", "Monthly", "Growth"} {
		if !strings.Contains(out, "\n"+want) {
			t.Errorf("output missing section %q", want)
		}
	}
	for _, want := range []string{"1,200", "80% (1 scored)", "2026-03"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormat_UnscoredOmitsRubric(t *testing.T) {
	out := Format(Compute([]Entry{makeEntry("a", now, 10, 1, analyze.LevelCollege)}, now))
	if strings.Contains(out, "thesis clarity") || strings.Contains(out, "Growth") {
		t.Errorf("rubric lines shown without scores:\n%s", out)
	}
}

func TestFormat_Empty(t *testing.T) {
	out := Format(Compute(nil, now))
	if !strings.Contains(out, "No essays yet") {
		t.Errorf("empty format should show 'No essays yet', got: %s", out)
	}
}

func TestTruncateTitle(t *testing.T) {
	if got := truncateTitle("short", 10); got != "short" {
		t.Errorf("truncateTitle(short) = %q", got)
	}
	if got := truncateTitle("a very long essay title", 10); got != "a very ..." {
		t.Errorf("truncateTitle(long) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0m"},
		{1, "1m"},
		{59, "59m"},
		{60, "1h"},
		{90, "1h 30m"},
		{1440, "24h"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.input)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1000000, "1,000,000"},
	}

	for _, tt := range tests {
		got := formatInt(tt.input)
		if got != tt.want {
			t.Errorf("formatInt(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
