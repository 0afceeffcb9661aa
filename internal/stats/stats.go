package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/suykerbuyk/refinelab/internal/analyze"
	"github.com/suykerbuyk/refinelab/internal/scoring"
)

// Entry is one essay as seen by Compute.
type Entry struct {
	ID          string
	Title       string
	UpdatedAt   time.Time
	Revisions   int
	Metrics     analyze.LiveMetrics
	Suggestions []analyze.Suggestion
	Score       *scoring.Metrics // latest stored score, nil if never scored
}

// Summary holds aggregate writing metrics across essays.
type Summary struct {
	TotalEssays    int
	TotalWords     int
	TotalRevisions int
	TotalReadTime  int // minutes
	RecentEssays   int // updated in the last 7 days
	ScoredEssays   int

	AvgWords       float64
	AvgRevisions   float64
	AvgSuggestions float64
	AvgClarity     float64 // over scored essays
	AvgDepth       float64

	Levels  []LevelStats
	Rules   []RuleStats
	Monthly []MonthStats
	Growth  []GrowthPoint
}

// LevelStats counts essays per reading level.
type LevelStats struct {
	Name  string
	Count int
}

// RuleStats holds how often one detection rule fired across essays.
type RuleStats struct {
	Name    string
	Count   int
	Percent float64
}

// MonthStats holds per-month aggregate metrics.
type MonthStats struct {
	Month  string // YYYY-MM
	Essays int
	Words  int
}

// GrowthPoint is one scored essay in the growth series, oldest first.
type GrowthPoint struct {
	Title     string
	Clarity   float64
	Depth     float64
	Structure float64
	Evidence  float64
}

const (
	recentWindow = 7 * 24 * time.Hour
	growthLen    = 6
	monthsShown  = 6
)

// Compute builds a Summary from entries. now anchors the "recent" window.
func Compute(entries []Entry, now time.Time) Summary {
	var s Summary

	levelMap := make(map[string]int)
	ruleMap := make(map[string]int)
	monthMap := make(map[string]*MonthStats)
	totalSuggestions := 0
	var scored []Entry

	for _, e := range entries {
		s.TotalEssays++
		s.TotalWords += e.Metrics.WordCount
		s.TotalRevisions += e.Revisions
		s.TotalReadTime += e.Metrics.EstimatedReadTime
		totalSuggestions += len(e.Suggestions)

		if !e.UpdatedAt.IsZero() && now.Sub(e.UpdatedAt) < recentWindow {
			s.RecentEssays++
		}

		if e.Metrics.WordCount > 0 {
			levelMap[e.Metrics.ReadingLevel]++
		}

		for _, sg := range e.Suggestions {
			ruleMap[sg.Rule]++
		}

		if !e.UpdatedAt.IsZero() {
			month := e.UpdatedAt.Format("2006-01")
			mm, ok := monthMap[month]
			if !ok {
				mm = &MonthStats{Month: month}
				monthMap[month] = mm
			}
			mm.Essays++
			mm.Words += e.Metrics.WordCount
		}

		if e.Score != nil {
			scored = append(scored, e)
		}
	}

	// Averages (guard division by zero)
	if s.TotalEssays > 0 {
		n := float64(s.TotalEssays)
		s.AvgWords = float64(s.TotalWords) / n
		s.AvgRevisions = float64(s.TotalRevisions) / n
		s.AvgSuggestions = float64(totalSuggestions) / n
	}
	s.ScoredEssays = len(scored)
	if len(scored) > 0 {
		for _, e := range scored {
			s.AvgClarity += e.Score.ThesisClarity
			s.AvgDepth += e.Score.ArgumentDepth
		}
		s.AvgClarity /= float64(len(scored))
		s.AvgDepth /= float64(len(scored))
	}

	// Levels in band order
	for _, lvl := range []string{analyze.LevelMiddleSchool, analyze.LevelHighSchool, analyze.LevelCollege, analyze.LevelGraduate} {
		if n := levelMap[lvl]; n > 0 {
			s.Levels = append(s.Levels, LevelStats{Name: lvl, Count: n})
		}
	}

	// Sort rules by count desc
	for name, count := range ruleMap {
		pct := 0.0
		if totalSuggestions > 0 {
			pct = float64(count) / float64(totalSuggestions) * 100
		}
		s.Rules = append(s.Rules, RuleStats{Name: name, Count: count, Percent: pct})
	}
	sort.Slice(s.Rules, func(i, j int) bool {
		if s.Rules[i].Count != s.Rules[j].Count {
			return s.Rules[i].Count > s.Rules[j].Count
		}
		return strings.ToLower(s.Rules[i].Name) < strings.ToLower(s.Rules[j].Name)
	})

	// Sort months recent-first, cap at monthsShown
	for _, mm := range monthMap {
		s.Monthly = append(s.Monthly, *mm)
	}
	sort.Slice(s.Monthly, func(i, j int) bool {
		return s.Monthly[i].Month > s.Monthly[j].Month
	})
	if len(s.Monthly) > monthsShown {
		s.Monthly = s.Monthly[:monthsShown]
	}

	// Growth: the most recent scored essays, oldest first
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].UpdatedAt.Before(scored[j].UpdatedAt)
	})
	if len(scored) > growthLen {
		scored = scored[len(scored)-growthLen:]
	}
	for _, e := range scored {
		s.Growth = append(s.Growth, GrowthPoint{
			Title:     e.Title,
			Clarity:   e.Score.ThesisClarity,
			Depth:     e.Score.ArgumentDepth,
			Structure: e.Score.StructureBalance,
			Evidence:  e.Score.EvidenceDistribution,
		})
	}

	return s
}
