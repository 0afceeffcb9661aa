package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/suykerbuyk/refinelab/internal/config"
	"github.com/suykerbuyk/refinelab/internal/help"
	"github.com/suykerbuyk/refinelab/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	name, args := os.Args[1], os.Args[2:]
	if hasFlag(args, "--help") || hasFlag(args, "-h") {
		commandHelp(name)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch name {
	case "init":
		runInit(args)

	case "analyze":
		runAnalyze(args)

	case "watch":
		runWatch(ctx, args)

	case "save":
		runSave(ctx, args)

	case "list":
		runList(ctx)

	case "stats":
		runStats(ctx)

	case "show":
		runShow(ctx, args)

	case "history":
		runHistory(ctx, args)

	case "delete":
		runDelete(ctx, args)

	case "compare":
		runCompare(ctx, args)

	case "score":
		runScore(ctx, args)

	case "report":
		runReport(args)

	case "archive":
		runArchive(ctx, args)

	case "restore":
		runRestore(args)

	case "lessons":
		runLessons(args)

	case "fingerprint":
		runFingerprint(ctx, args)

	case "grade":
		runGrade(ctx, args)

	case "check":
		runCheck()

	case "version":
		fmt.Printf("refinelab v%s\n", help.Version)

	case "help", "--help", "-h":
		if len(args) > 0 {
			commandHelp(args[0])
			return
		}
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", name)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
}

func commandHelp(name string) {
	for _, c := range help.Subcommands {
		if c.Name == name {
			fmt.Print(help.FormatTerminal(c))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown command: %s\n", name)
	usage()
	os.Exit(1)
}

func mustLoadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	return cfg
}

// mustOpenStore opens the essay database, creating the data directory
// on first use.
func mustOpenStore(cfg config.Config) *store.Store {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fatal("create data dir: %v", err)
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		fatal("open store: %v", err)
	}
	return st
}

// positional returns args with flags (and their values) removed.
func positional(args []string, valueFlags ...string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if contains(valueFlags, a) {
			i++
			continue
		}
		if len(a) > 1 && a[0] == '-' {
			continue
		}
		out = append(out, a)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasFlag(args []string, flag string) bool {
	return contains(args, flag)
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "refinelab: "+format+"\n", args...)
	os.Exit(1)
}
