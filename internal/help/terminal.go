package help

import (
	"fmt"
	"strings"
)

// row is one aligned line of a help table.
type row struct {
	name, desc string
}

// table renders rows as "  <name><pad><desc>" with names padded to width.
func table(heading string, rows []row, width int) string {
	var b strings.Builder
	if heading != "" {
		b.WriteString(heading + "\n")
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-*s%s\n", width, r.name, r.desc)
	}
	return b.String()
}

func widest(rows []row) int {
	w := 0
	for _, r := range rows {
		w = max(w, len(r.name))
	}
	return w
}

// FormatTerminal renders a subcommand's --help text.
func FormatTerminal(c Command) string {
	sections := []string{
		fmt.Sprintf("refinelab %s - %s", c.Name, c.Synopsis),
		"Usage: " + c.Usage,
	}

	args := make([]row, len(c.Args))
	for i, a := range c.Args {
		args[i] = row{a.Name, a.Desc}
	}
	flags := make([]row, len(c.Flags))
	for i, f := range c.Flags {
		flags[i] = row{f.Name, f.Desc}
	}

	// Args and flags share one description column, at least 13 wide when
	// both are present.
	width := max(widest(args), widest(flags)) + 3
	if len(args) > 0 && len(flags) > 0 {
		width = max(width, 11)
	}
	if len(args) > 0 {
		sections = append(sections, strings.TrimRight(table("Arguments:", args, width), "\n"))
	}
	if len(flags) > 0 {
		sections = append(sections, strings.TrimRight(table("Flags:", flags, width), "\n"))
	}

	if c.Description != "" {
		sections = append(sections, c.Description)
	}

	if len(c.Examples) > 0 {
		sections = append(sections, "Examples:\n  "+strings.Join(c.Examples, "\n  "))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// FormatUsage renders the top-level usage text for refinelab help.
func FormatUsage(top Command, subs []Command) string {
	rows := make([]row, 0, len(subs)+1)
	for _, s := range subs {
		rows = append(rows, row{s.tableUsage(), s.Brief})
	}
	rows = append(rows, row{"refinelab help [command]", "Show help"})

	var b strings.Builder
	fmt.Fprintf(&b, "refinelab v%s - %s\n\n", Version, top.Synopsis)
	b.WriteString(table("Usage:", rows, widest(rows)+3))
	fmt.Fprintf(&b, "\nConfiguration: %s\nAPI keys:      %s\n", Files[0].Name, Files[1].Name)
	return b.String()
}
