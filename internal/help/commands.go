package help

import "strings"

// Version is the refinelab release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--json" or "--title <t>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string // e.g. "file" or "id"
	Desc     string
	Optional bool
}

// Command describes a refinelab subcommand (or the top-level binary when Name is "").
type Command struct {
	Name        string   // "init", "analyze", etc; "" for top-level
	Synopsis    string   // one-line description (lowercase, for --help header)
	Brief       string   // short description for usage table (capitalized)
	Usage       string   // full usage line, e.g. "refinelab save <file> [--title <t>]"
	TableUsage  string   // shortened usage for the top-level table (if different from Usage)
	Args        []Arg
	Flags       []Flag
	Description string   // multi-line prose (stored verbatim)
	Examples    []string // one per line, without leading 2-space indent
	SeeAlso     []string // man page cross-refs, e.g. "refinelab(1)"
}

// tableUsage returns TableUsage if set, otherwise Usage.
func (c Command) tableUsage() string {
	if c.TableUsage != "" {
		return c.TableUsage
	}
	return c.Usage
}

// ManName returns the man page name: "refinelab" for top-level,
// "refinelab-<name>" for subcommands.
func (c Command) ManName() string {
	if c.Name == "" {
		return "refinelab"
	}
	return "refinelab-" + strings.ReplaceAll(c.Name, " ", "-")
}

// TopLevel is the top-level refinelab command (used by FormatUsage).
var TopLevel = Command{
	Name:     "",
	Synopsis: "essay analysis and revision tracking",
}

var CmdInit = Command{
	Name:     "init",
	Synopsis: "write a default configuration file",
	Brief:    "Write default config.toml",
	Usage:    "refinelab init [data-dir]",
	Args: []Arg{
		{Name: "data-dir", Desc: "Where essays and archives are stored (default: ~/.local/share/refinelab)", Optional: true},
	},
	Description: `Writes ~/.config/refinelab/config.toml with every setting at its
default value and creates the data directory. An existing config file
is left untouched.`,
	Examples: []string{
		"refinelab init                  Use the default data directory",
		"refinelab init ~/school/essays  Store essays elsewhere",
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-check(1)"},
}

var CmdAnalyze = Command{
	Name:     "analyze",
	Synopsis: "print live metrics and writing suggestions for a draft",
	Brief:    "Analyze a draft file",
	Usage:    "refinelab analyze <file> [--json]",
	Args: []Arg{
		{Name: "file", Desc: "Plain-text or .docx draft (use - for stdin)"},
	},
	Flags: []Flag{
		{Name: "--json", Desc: "Print metrics and suggestions as JSON"},
	},
	Description: `Computes word, sentence and paragraph counts, vocabulary diversity,
transition usage, reading level and read time, then runs the style,
clarity and structure rules. Suggested replacements are guidance only;
the draft is never modified.`,
	Examples: []string{
		"refinelab analyze essay.txt",
		"refinelab analyze essay.txt --json | jq .metrics",
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-watch(1)", "refinelab-report(1)"},
}

var CmdWatch = Command{
	Name:     "watch",
	Synopsis: "re-analyze a draft every time it is saved",
	Brief:    "Live analysis while editing",
	Usage:    "refinelab watch <file> [--essay <id>]",
	Args: []Arg{
		{Name: "file", Desc: "Draft file to watch"},
	},
	Flags: []Flag{
		{Name: "--essay <id>", Desc: "Auto-save changes into this stored essay"},
	},
	Description: `Watches the draft file and prints refreshed metrics on every write.
Suggestions are recomputed after the debounce period (analyzer.debounce_ms)
so rapid saves trigger a single pass on the final text.

With --essay, unsaved changes are saved automatically after
autosave.interval_seconds of inactivity. Press Ctrl-C to stop; pending
changes are saved before exit.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-analyze(1)", "refinelab-save(1)"},
}

var CmdSave = Command{
	Name:       "save",
	Synopsis:   "store a draft as a new essay or a new revision",
	Brief:      "Save a draft to the essay store",
	Usage:      "refinelab save <file> [--title <t>] [--essay <id>]",
	TableUsage: "refinelab save <file> [flags]",
	Args: []Arg{
		{Name: "file", Desc: "Draft file to save"},
	},
	Flags: []Flag{
		{Name: "--title <t>", Desc: "Essay title (default: file name)"},
		{Name: "--essay <id>", Desc: "Append a revision to an existing essay"},
	},
	Description: `Without --essay a new essay is created and its ID printed. With
--essay the stored essay is updated and a revision is appended.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-history(1)"},
}

var CmdList = Command{
	Name:     "list",
	Synopsis: "list stored essays",
	Brief:    "List essays, newest first",
	Usage:    "refinelab list",
	SeeAlso:  []string{"refinelab(1)", "refinelab-show(1)"},
}

var CmdStats = Command{
	Name:     "stats",
	Synopsis: "show writing progress across all essays",
	Brief:    "Writing progress dashboard",
	Usage:    "refinelab stats",
	Description: `Re-analyzes every stored essay and prints totals, averages, reading
levels, the most common suggestions and a monthly breakdown. Essays
scored with refinelab score also contribute rubric averages and a growth
series of the six most recent scores.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-score(1)"},
}

var CmdShow = Command{
	Name:     "show",
	Synopsis: "print a stored essay",
	Brief:    "Print an essay's latest text",
	Usage:    "refinelab show <id>",
	Args: []Arg{
		{Name: "id", Desc: "Essay ID (a unique prefix is enough)"},
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-list(1)"},
}

var CmdHistory = Command{
	Name:     "history",
	Synopsis: "list an essay's saved revisions",
	Brief:    "List saved revisions",
	Usage:    "refinelab history <id>",
	Args: []Arg{
		{Name: "id", Desc: "Essay ID"},
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-archive(1)"},
}

var CmdDelete = Command{
	Name:     "delete",
	Synopsis: "delete an essay with its revisions and scores",
	Brief:    "Delete an essay",
	Usage:    "refinelab delete <id>",
	Args: []Arg{
		{Name: "id", Desc: "Essay ID"},
	},
	SeeAlso: []string{"refinelab(1)"},
}

var CmdCompare = Command{
	Name:       "compare",
	Synopsis:   "compare two essays or two revisions",
	Brief:      "Compare two versions",
	Usage:      "refinelab compare <before-id> <after-id> [--ai]",
	TableUsage: "refinelab compare <before> <after>",
	Args: []Arg{
		{Name: "before-id", Desc: "Essay ID, or id@N for revision N"},
		{Name: "after-id", Desc: "Essay ID, or id@N for revision N"},
	},
	Flags: []Flag{
		{Name: "--ai", Desc: "Also ask the scoring model for clarity and argument deltas"},
	},
	Description: `Shows metric changes and suggestion counts per category between the
two versions. Revisions are numbered from 1 as listed by history.`,
	Examples: []string{
		"refinelab compare 3f2a@1 3f2a@4   First save against fourth",
		"refinelab compare 3f2a 9c1d --ai  Two essays, with model deltas",
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-history(1)", "refinelab-score(1)"},
}

var CmdScore = Command{
	Name:       "score",
	Synopsis:   "score an essay against the rubric with the configured model",
	Brief:      "AI rubric scoring",
	Usage:      "refinelab score <id> [--markdown]",
	TableUsage: "refinelab score <id>",
	Args: []Arg{
		{Name: "id", Desc: "Essay ID"},
	},
	Flags: []Flag{
		{Name: "--markdown", Desc: "Print the result as Markdown"},
	},
	Description: `Sends the essay to the OpenAI-compatible endpoint in [scoring] and
prints rubric scores, strengths, weaknesses and strategic suggestions.
The model is instructed to describe problems, never to rewrite text.
The result is stored with the essay, and the lesson covering the lowest
rubric score is named at the end.

Requires scoring.enabled = true and the API key variable named by
scoring.api_key_env, which may also be set in ~/.config/refinelab/.env.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-check(1)", "refinelab-lessons(1)"},
}

var CmdReport = Command{
	Name:     "report",
	Synopsis: "write an analysis report as Markdown or HTML",
	Brief:    "Markdown / HTML report",
	Usage:    "refinelab report <file> [--html <out>]",
	Args: []Arg{
		{Name: "file", Desc: "Draft file"},
	},
	Flags: []Flag{
		{Name: "--html <out>", Desc: "Write a standalone HTML page to out instead of Markdown to stdout"},
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-analyze(1)"},
}

var CmdArchive = Command{
	Name:     "archive",
	Synopsis: "compress an essay's revisions into zstd snapshots",
	Brief:    "Archive revisions (zstd)",
	Usage:    "refinelab archive <id>",
	Args: []Arg{
		{Name: "id", Desc: "Essay ID"},
	},
	Description: `Writes each revision not yet archived to
<data_dir>/archive/<id>-<timestamp>.txt.zst. Does nothing when
archive.compress is false.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-restore(1)"},
}

var CmdRestore = Command{
	Name:     "restore",
	Synopsis: "print the text of an archived revision",
	Brief:    "Decompress an archived revision",
	Usage:    "refinelab restore <file.txt.zst>",
	Args: []Arg{
		{Name: "file.txt.zst", Desc: "Archive written by refinelab archive"},
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-archive(1)"},
}

var CmdLessons = Command{
	Name:       "lessons",
	Synopsis:   "browse the built-in writing lessons",
	Brief:      "Writing lessons",
	Usage:      "refinelab lessons [<id>] [--category <c>] [--json]",
	TableUsage: "refinelab lessons [id] [--category c]",
	Args: []Arg{
		{Name: "id", Desc: "Lesson ID, e.g. thesis-clarity", Optional: true},
	},
	Flags: []Flag{
		{Name: "--category <c>", Desc: "Only lessons in this category (Thesis, Analysis, Structure, Evidence, Coherence, Style)"},
		{Name: "--json", Desc: "Print lessons as JSON"},
	},
	Description: `Without arguments lists every lesson. With an ID prints its principles,
revision strategies and self-check list. Lessons explain concepts and
never contain sample wording.`,
	Examples: []string{
		"refinelab lessons                     List all lessons",
		"refinelab lessons --category style    Lessons on style",
		"refinelab lessons evidence-use        Read one lesson",
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-score(1)"},
}

var CmdFingerprint = Command{
	Name:       "fingerprint",
	Synopsis:   "summarize recurring habits across your stored essays",
	Brief:      "Writing fingerprint",
	Usage:      "refinelab fingerprint [--refresh] [--json]",
	TableUsage: "refinelab fingerprint [--refresh]",
	Flags: []Flag{
		{Name: "--refresh", Desc: "Regenerate even if a fingerprint is cached"},
		{Name: "--json", Desc: "Print the fingerprint as JSON"},
	},
	Description: `Samples the ten most recently updated essays and asks the scoring
model for tone tendencies, structural patterns, pacing issues and
evidence habits. Average paragraph length is computed locally.

The result is cached in the store and shown on later runs until
--refresh is given. Generating requires scoring to be configured.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-score(1)"},
}

var CmdGrade = Command{
	Name:       "grade",
	Synopsis:   "record past grades and predict a grade band",
	Brief:      "Grading patterns and prediction",
	Usage:      "refinelab grade add <assignment> <grade> [--penalty <a,b>] [--rubric <file>] | list [--json] | predict <id>",
	TableUsage: "refinelab grade add|list|predict",
	Args: []Arg{
		{Name: "add", Desc: "Record a graded assignment"},
		{Name: "list", Desc: "List recorded grades, newest first"},
		{Name: "predict <id>", Desc: "Predict a grade band for a stored essay"},
	},
	Flags: []Flag{
		{Name: "--penalty <a,b>", Desc: "Comma-separated areas marked down (add)"},
		{Name: "--rubric <file>", Desc: "JSON file with the rubric feedback (add)"},
		{Name: "--json", Desc: "Print patterns as JSON (list)"},
	},
	Description: `Grading patterns record how past work was marked. predict sends the
essay's local metrics, its latest rubric score and every recorded
pattern to the scoring model, which returns a grade band, a confidence
between 0 and 1 and the key factors behind it.`,
	Examples: []string{
		`refinelab grade add "Essay 2" B+ --penalty citations,length`,
		"refinelab grade predict 3f2a",
	},
	SeeAlso: []string{"refinelab(1)", "refinelab-score(1)"},
}

var CmdCheck = Command{
	Name:     "check",
	Synopsis: "validate config, data directory and scoring setup",
	Brief:    "Diagnose configuration",
	Usage:    "refinelab check",
	Description: `Runs diagnostics and prints pass, warn or FAIL for each. Exits 1 if
any check fails.`,
	SeeAlso: []string{"refinelab(1)", "refinelab-init(1)"},
}

var CmdVersion = Command{
	Name:     "version",
	Synopsis: "print version",
	Brief:    "Print version",
	Usage:    "refinelab version",
	SeeAlso:  []string{"refinelab(1)"},
}

// Subcommands is the ordered list of all subcommands.
var Subcommands = []Command{
	CmdInit,
	CmdAnalyze,
	CmdWatch,
	CmdSave,
	CmdList,
	CmdStats,
	CmdShow,
	CmdHistory,
	CmdDelete,
	CmdCompare,
	CmdScore,
	CmdReport,
	CmdArchive,
	CmdRestore,
	CmdLessons,
	CmdFingerprint,
	CmdGrade,
	CmdCheck,
	CmdVersion,
}
