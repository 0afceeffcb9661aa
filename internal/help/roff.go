package help

import (
	"fmt"
	"strings"
	"time"
)

// Entry is a name/description pair for the FILES and ENVIRONMENT sections.
type Entry struct {
	Name string
	Desc string
}

// Files lists the paths refinelab reads and writes.
var Files = []Entry{
	{"~/.config/refinelab/config.toml", "Configuration file. Honours XDG_CONFIG_HOME."},
	{"~/.config/refinelab/.env", "Optional KEY=value file loaded before the scoring key is read."},
	{"<data_dir>/refinelab.db", "SQLite store of essays, revisions, scores, the fingerprint and grading patterns."},
	{"<data_dir>/archive/", "zstd-compressed revision snapshots written by refinelab archive."},
}

// Environment lists the variables refinelab consults.
var Environment = []Entry{
	{"XDG_CONFIG_HOME", "Base directory for the configuration file."},
	{"REFINELAB_API_KEY", "Default API key for the scoring service (see scoring.api_key_env)."},
	{"SOURCE_DATE_EPOCH", "Fixed date for man pages generated by gen-man."},
}

const exitStatus = "0 on success, 1 on any error or failed check."

// page accumulates one man page.
type page struct {
	b strings.Builder
}

func newPage(name, date string) *page {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	p := &page{}
	fmt.Fprintf(&p.b, ".TH %s 1 %q %q %q\n",
		strings.ToUpper(name), date, "refinelab "+Version, "RefineLab Manual")
	return p
}

func (p *page) section(title string) {
	p.b.WriteString(".SH " + title + "\n")
}

func (p *page) line(s string) {
	p.b.WriteString(s + "\n")
}

// tagged writes a .TP list item with a bold tag.
func (p *page) tagged(tag, body string) {
	fmt.Fprintf(&p.b, ".TP\n.B %s\n%s\n", escapeRoff(tag), escapeRoff(body))
}

func (p *page) entries(title string, es []Entry) {
	if len(es) == 0 {
		return
	}
	p.section(title)
	for _, e := range es {
		p.tagged(e.Name, e.Desc)
	}
}

func (p *page) seeAlso(refs []string) {
	if len(refs) == 0 {
		return
	}
	p.section("SEE ALSO")
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = formatManRef(ref)
	}
	p.line(strings.Join(out, ",\n"))
}

func (p *page) String() string { return p.b.String() }

// FormatRoff renders a subcommand as a roff man page (.1).
// An empty date means today; pass a fixed date for reproducible builds.
func FormatRoff(c Command, date string) string {
	p := newPage(c.ManName(), date)

	p.section("NAME")
	p.line(fmt.Sprintf("%s \\- %s", c.ManName(), escapeRoff(c.Synopsis)))

	p.section("SYNOPSIS")
	p.line(".B " + escapeRoff(c.Usage))

	if c.Description != "" {
		p.section("DESCRIPTION")
		writeRoffParagraphs(&p.b, c.Description)
	}

	if len(c.Args) > 0 || len(c.Flags) > 0 {
		p.section("OPTIONS")
		for _, a := range c.Args {
			p.tagged(a.Name, a.Desc)
		}
		for _, f := range c.Flags {
			p.tagged(f.Name, f.Desc)
		}
	}

	if len(c.Examples) > 0 {
		p.section("EXAMPLES")
		p.line(".nf")
		for _, e := range c.Examples {
			p.line(escapeRoff(e))
		}
		p.line(".fi")
	}

	p.section("EXIT STATUS")
	p.line(exitStatus)

	p.seeAlso(c.SeeAlso)
	return p.String()
}

// FormatRoffTopLevel renders refinelab.1 with a COMMANDS section listing subs.
func FormatRoffTopLevel(top Command, subs []Command, date string) string {
	p := newPage("refinelab", date)

	p.section("NAME")
	p.line("refinelab \\- " + escapeRoff(top.Synopsis))

	p.section("SYNOPSIS")
	p.line(".B refinelab\n.I command\n.RI [ options ]")

	p.section("DESCRIPTION")
	p.line(".B refinelab")
	p.line("measures essay drafts as they are written, flags style, clarity and")
	p.line("structure problems without rewriting text, and keeps a history of")
	p.line("saved revisions in a local SQLite store.")
	p.line(".PP")
	p.line("Suggested replacements are printed as guidance. refinelab never edits a draft.")

	p.section("COMMANDS")
	for _, s := range subs {
		fmt.Fprintf(&p.b, ".TP\n.B \"%s\"\n%s\n", escapeRoff(s.tableUsage()), escapeRoff(s.Brief))
	}

	p.entries("FILES", Files)
	p.entries("ENVIRONMENT", Environment)

	p.section("EXIT STATUS")
	p.line(exitStatus)

	refs := make([]string, len(subs))
	for i, s := range subs {
		refs[i] = s.ManName() + "(1)"
	}
	p.seeAlso(refs)
	return p.String()
}

// escapeRoff escapes backslashes, line-leading dots and hyphens.
func escapeRoff(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n.", "\n\\&.")
	if strings.HasPrefix(s, ".") {
		s = "\\&" + s
	}
	return strings.ReplaceAll(s, "-", "\\-")
}

// writeRoffParagraphs turns blank-line separated text into .PP paragraphs.
func writeRoffParagraphs(b *strings.Builder, text string) {
	prevBlank := false
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if !prevBlank {
				b.WriteString(".PP\n")
			}
			prevBlank = true
			continue
		}
		prevBlank = false
		b.WriteString(escapeRoff(line) + "\n")
	}
}

// formatManRef turns "refinelab-init(1)" into ".BR refinelab\-init (1)".
func formatManRef(ref string) string {
	if i := strings.Index(ref, "("); i >= 0 {
		return fmt.Sprintf(".BR %s %s", escapeRoff(ref[:i]), ref[i:])
	}
	return ".B " + escapeRoff(ref)
}
