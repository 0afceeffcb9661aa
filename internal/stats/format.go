package stats

import (
	"fmt"
	"strings"
)

// Format renders a Summary as aligned terminal output.
func Format(s Summary) string {
	if s.TotalEssays == 0 {
		return "refinelab stats\n\n  No essays yet. Run `refinelab save <file>` first.\n"
	}

	var b strings.Builder
	b.WriteString("refinelab stats\n")

	// Overview
	b.WriteString("\nOverview\n")
	fmt.Fprintf(&b, "  %-20s %d\n", "essays", s.TotalEssays)
	fmt.Fprintf(&b, "  %-20s %d\n", "this week", s.RecentEssays)
	fmt.Fprintf(&b, "  %-20s %s\n", "total words", formatInt(s.TotalWords))
	fmt.Fprintf(&b, "  %-20s %d\n", "saved revisions", s.TotalRevisions)
	fmt.Fprintf(&b, "  %-20s %s\n", "total read time", formatDuration(s.TotalReadTime))

	// Averages
	b.WriteString("\nAverages\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "words/essay", formatFloat(s.AvgWords))
	fmt.Fprintf(&b, "  %-20s %.1f\n", "revisions/essay", s.AvgRevisions)
	fmt.Fprintf(&b, "  %-20s %.1f\n", "suggestions/essay", s.AvgSuggestions)
	if s.ScoredEssays > 0 {
		fmt.Fprintf(&b, "  %-20s %d%% (%d scored)\n", "thesis clarity", percent(s.AvgClarity), s.ScoredEssays)
		fmt.Fprintf(&b, "  %-20s %d%%\n", "argument depth", percent(s.AvgDepth))
	}

	// Reading levels
	if len(s.Levels) > 0 {
		b.WriteString("\nReading Level\n")
		for _, l := range s.Levels {
			fmt.Fprintf(&b, "  %-24s %3d\n", l.Name, l.Count)
		}
	}

	// Rules
	if len(s.Rules) > 0 {
		b.WriteString("\nCommon Suggestions\n")
		limit := 5
		if len(s.Rules) < limit {
			limit = len(s.Rules)
		}
		for _, r := range s.Rules[:limit] {
			fmt.Fprintf(&b, "  %-24s %3d (%d%%)\n", r.Name, r.Count, int(r.Percent))
		}
		if len(s.Rules) > 5 {
			fmt.Fprintf(&b, "  ... and %d more\n", len(s.Rules)-5)
		}
	}

	// Monthly
	if len(s.Monthly) > 0 {
		b.WriteString("\nMonthly\n")
		for _, m := range s.Monthly {
			fmt.Fprintf(&b, "  %-12s %3d essays   %7s words\n", m.Month, m.Essays, formatInt(m.Words))
		}
	}

	// Growth
	if len(s.Growth) > 0 {
		b.WriteString("\nGrowth (clarity / depth / structure / evidence)\n")
		for _, g := range s.Growth {
			fmt.Fprintf(&b, "  %-28s %3d%% %3d%% %3d%% %3d%%\n", truncateTitle(g.Title, 28),
				percent(g.Clarity), percent(g.Depth), percent(g.Structure), percent(g.Evidence))
		}
	}

	return b.String()
}

// percent renders a [0, 1] score as a rounded percentage.
func percent(v float64) int {
	return int(v*100 + 0.5)
}

func truncateTitle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// formatFloat formats a float for display with commas.
func formatFloat(f float64) string {
	return formatInt(int(f + 0.5))
}

// formatInt formats an integer with comma separators.
func formatInt(n int) string {
	if n < 0 {
		return "0"
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// formatDuration formats minutes as "Xh Ym".
func formatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
