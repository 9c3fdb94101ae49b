/*
Package main implements the prefix completion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

SeqServe provides weighted prefix completion over arbitrary sequences, backed
by either an uncompressed prefix tree or a path-compressed one. It can operate
as a MessagePack IPC server for integration with editors and other hosts, or
as a CLI application for testing and debugging.

Corpora are loaded at startup by one of the engines: the letter engine indexes
a plain text file character by character, the sentence engine indexes a CSV of
weighted sentences word by word. Values are ranked by accumulated weight.

# Usage

Start the server with default settings:

	seqserve

Use a custom corpus and enable debug mode:

	seqserve -data /path/to/corpus.txt -d

Serve a weighted sentence corpus on an uncompressed tree:

	seqserve -data sentences.csv -kind sentence -tree simple

Run in CLI mode for interactive testing:

	seqserve -c -limit 10 -prmin 2

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, corpus settings, and CLI defaults:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[corpus]
	file = "data/corpus.txt"
	kind = "letter"
	tree = "compressed"

The config file is automatically created with defaults if it doesn't exist.
Flags override the corpus section for a single run.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing information included in
responses.

Send a completion request:

	{"id": "req1", "cmd": "complete", "p": "hel", "l": 20}

Receive suggestions ranked by weight:

	{"id": "req1", "s": [{"v": "hello", "w": 12.5}, {"v": "help", "w": 3.0}], "c": 2, "t": 145}

Prune a whole subtree, or ask for the stored value count:

	{"id": "rm1", "cmd": "remove", "p": "hel"}
	{"id": "n1", "cmd": "count"}

# CLI Mode

CLI mode provides an interactive interface for testing and debugging the
completion functionality. It reads prefixes from stdin and displays
suggestions with weight information. Lines starting with ':' are commands,
see the cli package for the list.

This mode is primarily intended for development and testing new features
before deploying to server mode. It supports the same filtering and length
checks as the server but with human-readable output.

# Command Line Flags

The following flags control application behavior:

	-data string
	    Corpus file to load (default from config)
	-kind string
	    Corpus kind: letter or sentence (default from config)
	-tree string
	    Tree variant: simple or compressed (default from config)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-config string
	    Custom config file path

Input filtering drops prefixes with no letter or digit content by default to
improve suggestion relevance, though this can be disabled for debugging.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/seqserve/seqserve/internal/cli"
	"github.com/seqserve/seqserve/internal/logger"
	"github.com/seqserve/seqserve/pkg/config"
	"github.com/seqserve/seqserve/pkg/engine"
	"github.com/seqserve/seqserve/pkg/server"
)

const (
	Version = "0.3.0-beta"
	AppName = "seqserve"
	gh      = "https://github.com/seqserve/seqserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	corpusFile := flag.String("data", "", "Corpus file to load (overrides config)")
	corpusKind := flag.String("kind", "", "Corpus kind: letter or sentence (overrides config)")
	treeKind := flag.String("tree", "", "Tree variant: simple or compressed (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - indexes all raw corpus entries (numbers, symbols, etc)")
	configPath := flag.String("config", "", "Custom config file path")

	flag.Parse()

	if *showVersion {
		showVersionInfo()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if activePath != "" {
		log.Debugf("Using config file: (%s)", activePath)
	}

	// flags override the corpus section for this run
	if *corpusFile != "" {
		appConfig.Corpus.File = *corpusFile
	}
	if *corpusKind != "" {
		appConfig.Corpus.Kind = *corpusKind
	}
	if *treeKind != "" {
		appConfig.Corpus.Tree = *treeKind
	}

	log.Debugf("Loading %s corpus from ( %s ) on %s tree",
		appConfig.Corpus.Kind, appConfig.Corpus.File, appConfig.Corpus.Tree)

	suggester, err := newSuggester(appConfig.Corpus)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Debugf("Corpus loaded: %d distinct values", suggester.Len())

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(suggester, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(suggester, appConfig.Server)

	showStartupInfo(appConfig.Corpus.File, suggester.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSuggester builds the engine named by the corpus config. The melody
// engine keys on pitch intervals rather than strings, so it stays library
// only and is not reachable from here.
func newSuggester(c config.CorpusConfig) (engine.Suggester, error) {
	switch c.Kind {
	case "letter":
		return engine.NewLetterEngine(c.File, c.Tree)
	case "sentence":
		return engine.NewSentenceEngine(c.File, c.Tree)
	default:
		return nil, fmt.Errorf("unknown corpus kind %q", c.Kind)
	}
}

// showVersionInfo prints the styled version banner.
func showVersionInfo() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["version"] = lipgloss.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ SeqServe ] Serves weighted prefix completions!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(corpusFile string, count int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" SeqServe ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("corpus: ( %s )", corpusFile)
	log.Infof("values: [ %d ]", count)
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
