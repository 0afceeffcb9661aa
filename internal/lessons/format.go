package lessons

import (
	"fmt"
	"strings"
)

// Format renders one lesson for the terminal.
func Format(l Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", l.Title)
	fmt.Fprintf(&b, "%s  (%s)\n", l.Category, l.ID)
	section(&b, "Principles", "  - ", l.Principles)
	section(&b, "Strategies", "  - ", l.Strategies)
	section(&b, "Checklist", "  [ ] ", l.Checklist)
	return b.String()
}

func section(b *strings.Builder, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, it := range items {
		b.WriteString(bullet + it + "\n")
	}
}

// FormatList renders a one-line-per-lesson index.
func FormatList(ls []Lesson) string {
	if len(ls) == 0 {
		return "no lessons\n"
	}
	idWidth, catWidth := 0, 0
	for _, l := range ls {
		idWidth = max(idWidth, len(l.ID))
		catWidth = max(catWidth, len(l.Category))
	}
	var b strings.Builder
	for _, l := range ls {
		fmt.Fprintf(&b, "%-*s  %-*s  %s\n", idWidth, l.ID, catWidth, l.Category, l.Title)
	}
	return b.String()
}
