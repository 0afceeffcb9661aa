package help

import (
	"fmt"
	"strings"
	"testing"
)

// expectedTerminal maps command name to exact expected terminal output.
var expectedTerminal = map[string]string{
	"analyze": "refinelab analyze - print live metrics and writing suggestions for a draft\n" +
		"\n" +
		"Usage: refinelab analyze <file> [--json]\n" +
		"\n" +
		"Arguments:\n" +
		"  file       Plain-text or .docx draft (use - for stdin)\n" +
		"\n" +
		"Flags:\n" +
		"  --json     Print metrics and suggestions as JSON\n" +
		"\n" +
		"Computes word, sentence and paragraph counts, vocabulary diversity,\n" +
		"transition usage, reading level and read time, then runs the style,\n" +
		"clarity and structure rules. Suggested replacements are guidance only;\n" +
		"the draft is never modified.\n" +
		"\n" +
		"Examples:\n" +
		"  refinelab analyze essay.txt\n" +
		"  refinelab analyze essay.txt --json | jq .metrics\n",

	"save": "refinelab save - store a draft as a new essay or a new revision\n" +
		"\n" +
		"Usage: refinelab save <file> [--title <t>] [--essay <id>]\n" +
		"\n" +
		"Arguments:\n" +
		"  file           Draft file to save\n" +
		"\n" +
		"Flags:\n" +
		"  --title <t>    Essay title (default: file name)\n" +
		"  --essay <id>   Append a revision to an existing essay\n" +
		"\n" +
		"Without --essay a new essay is created and its ID printed. With\n" +
		"--essay the stored essay is updated and a revision is appended.\n",

	"show": "refinelab show - print a stored essay\n" +
		"\n" +
		"Usage: refinelab show <id>\n" +
		"\n" +
		"Arguments:\n" +
		"  id   Essay ID (a unique prefix is enough)\n",

	"list": "refinelab list - list stored essays\n" +
		"\n" +
		"Usage: refinelab list\n",

	"version": "refinelab version - print version\n" +
		"\n" +
		"Usage: refinelab version\n",
}

func TestFormatTerminal(t *testing.T) {
	for _, cmd := range Subcommands {
		expected, ok := expectedTerminal[cmd.Name]
		if !ok {
			continue
		}
		t.Run(cmd.Name, func(t *testing.T) {
			got := FormatTerminal(cmd)
			if got != expected {
				t.Errorf("FormatTerminal(%q) mismatch.\n--- expected ---\n%s\n--- got ---\n%s\n--- diff ---\n%s",
					cmd.Name, quote(expected), quote(got), diff(expected, got))
			}
		})
	}
}

func TestFormatTerminal_AllCommands(t *testing.T) {
	for _, cmd := range Subcommands {
		t.Run(cmd.Name, func(t *testing.T) {
			out := FormatTerminal(cmd)
			prefix := fmt.Sprintf("refinelab %s - %s\n", cmd.Name, cmd.Synopsis)
			if !strings.HasPrefix(out, prefix) {
				t.Errorf("header mismatch: %q", out[:min(len(out), len(prefix)+20)])
			}
			if !strings.Contains(out, "Usage: "+cmd.Usage+"\n") {
				t.Error("missing usage line")
			}
			for _, f := range cmd.Flags {
				if !strings.Contains(out, f.Name) || !strings.Contains(out, f.Desc+"\n") {
					t.Errorf("flag %s not on its own line", f.Name)
				}
			}
			if strings.HasSuffix(out, "\n\n") {
				t.Error("trailing blank line")
			}
		})
	}
}

func TestFormatUsage(t *testing.T) {
	expected := fmt.Sprintf("refinelab v%s - essay analysis and revision tracking\n", Version) +
		"\n" +
		"Usage:\n" +
		"  refinelab init [data-dir]                Write default config.toml\n" +
		"  refinelab analyze <file> [--json]        Analyze a draft file\n" +
		"  refinelab watch <file> [--essay <id>]    Live analysis while editing\n" +
		"  refinelab save <file> [flags]            Save a draft to the essay store\n" +
		"  refinelab list                           List essays, newest first\n" +
		"  refinelab stats                          Writing progress dashboard\n" +
		"  refinelab show <id>                      Print an essay's latest text\n" +
		"  refinelab history <id>                   List saved revisions\n" +
		"  refinelab delete <id>                    Delete an essay\n" +
		"  refinelab compare <before> <after>       Compare two versions\n" +
		"  refinelab score <id>                     AI rubric scoring\n" +
		"  refinelab report <file> [--html <out>]   Markdown / HTML report\n" +
		"  refinelab archive <id>                   Archive revisions (zstd)\n" +
		"  refinelab restore <file.txt.zst>         Decompress an archived revision\n" +
		"  refinelab lessons [id] [--category c]    Writing lessons\n" +
		"  refinelab fingerprint [--refresh]        Writing fingerprint\n" +
		"  refinelab grade add|list|predict         Grading patterns and prediction\n" +
		"  refinelab check                          Diagnose configuration\n" +
		"  refinelab version                        Print version\n" +
		"  refinelab help [command]                 Show help\n" +
		"\n" +
		"Configuration: ~/.config/refinelab/config.toml\n" +
		"API keys:      ~/.config/refinelab/.env\n"

	got := FormatUsage(TopLevel, Subcommands)
	if got != expected {
		t.Errorf("FormatUsage mismatch.\n--- expected ---\n%s\n--- got ---\n%s\n--- diff ---\n%s",
			quote(expected), quote(got), diff(expected, got))
	}
}

func TestRegistryCompleteness(t *testing.T) {
	expectedNames := []string{
		"init", "analyze", "watch", "save", "list", "stats", "show", "history",
		"delete", "compare", "score", "report", "archive", "restore", "lessons",
		"fingerprint", "grade", "check", "version",
	}
	if len(Subcommands) != len(expectedNames) {
		t.Fatalf("expected %d subcommands, got %d", len(expectedNames), len(Subcommands))
	}
	for i, name := range expectedNames {
		if Subcommands[i].Name != name {
			t.Errorf("Subcommands[%d].Name = %q, want %q", i, Subcommands[i].Name, name)
		}
		if Subcommands[i].Synopsis == "" {
			t.Errorf("Subcommands[%d] (%s) has empty Synopsis", i, name)
		}
		if Subcommands[i].Usage == "" {
			t.Errorf("Subcommands[%d] (%s) has empty Usage", i, name)
		}
		if Subcommands[i].Brief == "" {
			t.Errorf("Subcommands[%d] (%s) has empty Brief", i, name)
		}
	}
}

func TestManName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "refinelab"},
		{"init", "refinelab-init"},
		{"compare", "refinelab-compare"},
		{"two words", "refinelab-two-words"},
	}
	for _, tt := range tests {
		c := Command{Name: tt.name}
		if got := c.ManName(); got != tt.want {
			t.Errorf("Command{Name: %q}.ManName() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEscapeRoff(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`simple text`, `simple text`},
		{`back\slash`, `back\\slash`},
		{`.leading dot`, `\&.leading dot`},
		{"line1\n.line2", "line1\n\\&.line2"},
		{`--flag`, `\-\-flag`},
		{`a-b`, `a\-b`},
		{`.txt.zst`, `\&.txt.zst`},
	}
	for _, tt := range tests {
		got := escapeRoff(tt.input)
		if got != tt.want {
			t.Errorf("escapeRoff(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatRoffStructure(t *testing.T) {
	fixedDate := "2026-02-27"

	for _, cmd := range Subcommands {
		t.Run(cmd.Name, func(t *testing.T) {
			out := FormatRoff(cmd, fixedDate)

			required := []string{".TH", ".SH NAME", ".SH SYNOPSIS", ".SH EXIT STATUS"}
			for _, section := range required {
				if !strings.Contains(out, section) {
					t.Errorf("FormatRoff(%q) missing required section %q", cmd.Name, section)
				}
			}

			expectedTH := strings.ToUpper(cmd.ManName())
			if !strings.Contains(out, ".TH "+expectedTH) {
				t.Errorf("FormatRoff(%q) .TH should contain %q", cmd.Name, expectedTH)
			}
			if !strings.Contains(out, `"RefineLab Manual"`) {
				t.Errorf("FormatRoff(%q) missing manual title", cmd.Name)
			}

			if cmd.Description != "" && !strings.Contains(out, ".SH DESCRIPTION") {
				t.Errorf("FormatRoff(%q) has Description but missing .SH DESCRIPTION", cmd.Name)
			}
			if (len(cmd.Args) > 0 || len(cmd.Flags) > 0) && !strings.Contains(out, ".SH OPTIONS") {
				t.Errorf("FormatRoff(%q) has Args/Flags but missing .SH OPTIONS", cmd.Name)
			}
			if len(cmd.Examples) > 0 && !strings.Contains(out, ".SH EXAMPLES") {
				t.Errorf("FormatRoff(%q) has Examples but missing .SH EXAMPLES", cmd.Name)
			}
			if len(cmd.SeeAlso) > 0 && !strings.Contains(out, ".SH SEE ALSO") {
				t.Errorf("FormatRoff(%q) has SeeAlso but missing .SH SEE ALSO", cmd.Name)
			}
		})
	}
}

func TestFormatRoffTopLevelStructure(t *testing.T) {
	out := FormatRoffTopLevel(TopLevel, Subcommands, "2026-02-27")

	required := []string{
		".TH REFINELAB 1",
		".SH NAME",
		".SH SYNOPSIS",
		".SH DESCRIPTION",
		".SH COMMANDS",
		".SH FILES",
		".SH ENVIRONMENT",
		".SH EXIT STATUS",
		".SH SEE ALSO",
	}
	for _, section := range required {
		if !strings.Contains(out, section) {
			t.Errorf("FormatRoffTopLevel missing section %q", section)
		}
	}

	for _, cmd := range Subcommands {
		escaped := escapeRoff(cmd.Brief)
		if !strings.Contains(out, escaped) {
			t.Errorf("FormatRoffTopLevel missing subcommand brief %q (escaped: %q)", cmd.Brief, escaped)
		}
	}
}

func TestFormatRoffTopLevelFiles(t *testing.T) {
	out := FormatRoffTopLevel(TopLevel, Subcommands, "2026-02-27")
	for _, want := range []string{
		".B ~/.config/refinelab/config.toml\n",
		".B <data_dir>/refinelab.db\n",
		".B REFINELAB_API_KEY\n",
		".BR refinelab\\-watch (1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatRoffTopLevel missing %q", want)
		}
	}
}

func TestFormatRoffEscapesDescription(t *testing.T) {
	out := FormatRoff(CmdArchive, "2026-02-27")
	if !strings.Contains(out, `<data_dir>/archive/<id>\-<timestamp>.txt.zst`) {
		t.Errorf("FormatRoff(archive) did not escape hyphen in archive path:\n%s", out)
	}
	if strings.Contains(out, "\n.txt") {
		t.Error("FormatRoff(archive) left a line starting with a dot")
	}
}

// quote shows a string with escape sequences visible.
func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// diff shows a line-by-line comparison highlighting the first difference.
func diff(expected, got string) string {
	el := strings.Split(expected, "\n")
	gl := strings.Split(got, "\n")
	max := len(el)
	if len(gl) > max {
		max = len(gl)
	}
	var b strings.Builder
	for i := 0; i < max; i++ {
		var e, g string
		if i < len(el) {
			e = el[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if e != g {
			fmt.Fprintf(&b, "! line %d:\n  exp: %q\n  got: %q\n", i+1, e, g)
		}
	}
	return b.String()
}
