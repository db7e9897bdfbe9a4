// Package main is the entry point for the inkmark editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/mvickers/inkmark/internal/config"
	"github.com/mvickers/inkmark/internal/dispatcher"
	"github.com/mvickers/inkmark/internal/logging"
	"github.com/mvickers/inkmark/internal/script"
	"github.com/mvickers/inkmark/internal/session"
	"github.com/mvickers/inkmark/internal/store"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "inkmark.toml"

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	storePath  string
	scriptDir  string
	logLevel   string
	logFile    string
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load configuration: %v\n", err)
		return 1
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(logger)

	st := store.NewFileStore(cfg.Store.Path)

	ws := session.NewWorkspace(
		session.WithStore(st),
		session.WithDebounce(cfg.Debounce()),
		session.WithHistoryLimit(cfg.Editor.HistoryLimit),
		session.WithChangeHandler(func(doc *session.Document) {
			logger.Debug("document %q changed (%d bytes)", doc.Title, len(doc.Content()))
		}),
		session.WithLogger(logger),
	)

	records, err := st.Load()
	if err != nil {
		logger.Warn("load store %s: %v", st.Path(), err)
	}
	for _, rec := range records {
		ws.Open(rec)
	}
	if ws.Count() == 0 {
		ws.Create("", "")
	} else if docs := ws.All(); len(docs) > 0 {
		_ = ws.SetActive(docs[0].ID)
	}

	var host *script.Host
	if cfg.Script.Enabled {
		host = script.NewHost(script.WithLogger(logger))
		defer host.Close()
		if err := host.LoadDir(cfg.Script.Dir); err != nil {
			logger.Warn("load scripts from %s: %v", cfg.Script.Dir, err)
		} else {
			logger.Info("loaded %d transforms from %s", len(host.Names()), cfg.Script.Dir)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initialize screen: %v\n", err)
		return 1
	}

	ed := newEditor(screen, ws, newDispatcher(cfg, host, logger), host, logger)

	watcher, err := config.NewWatcher(opts.configPath, func(next config.Config) {
		ed.postConfig(next)
	}, config.WithWatcherLogger(logger))
	if err != nil {
		logger.Warn("watch configuration %s: %v", opts.configPath, err)
	} else {
		defer watcher.Close()
	}

	// Graceful shutdown on SIGINT/SIGTERM: hand the signal to the event
	// loop rather than tearing the screen down from another goroutine.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	if err := ed.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// applyOverrides folds command-line flags over the loaded configuration.
func applyOverrides(cfg *config.Config, opts options) {
	if opts.storePath != "" {
		cfg.Store.Path = opts.storePath
	}
	if opts.scriptDir != "" {
		cfg.Script.Enabled = true
		cfg.Script.Dir = opts.scriptDir
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
}

// newLogger builds the root logger. Without a log file everything is
// discarded: the terminal belongs to the screen while the editor runs,
// so stderr is not a usable sink.
func newLogger(cfg config.Config, logFile string) (*logging.Logger, func(), error) {
	if logFile == "" {
		return logging.Discard, func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Output: f,
		Prefix: "inkmark",
	})
	return logger, func() { _ = f.Close() }, nil
}

// newDispatcher builds a dispatcher from the configuration. The host is
// only wired when scripts are enabled.
func newDispatcher(cfg config.Config, host *script.Host, logger *logging.Logger) *dispatcher.Dispatcher {
	opts := []dispatcher.Option{
		dispatcher.WithIndentUnit(cfg.Editor.IndentUnit),
		dispatcher.WithAutoPair(cfg.Editor.AutoPair),
		dispatcher.WithListContinuation(cfg.Editor.ListContinuation),
		dispatcher.WithLogger(logger.WithComponent("dispatch")),
	}
	if host != nil {
		opts = append(opts, dispatcher.WithTransformer(host))
	}
	return dispatcher.New(opts...)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", defaultConfigPath, "Path to configuration file (shorthand)")
	flag.StringVar(&opts.storePath, "store", "", "Path to the document store (overrides config)")
	flag.StringVar(&opts.storePath, "s", "", "Path to the document store (shorthand)")
	flag.StringVar(&opts.scriptDir, "scripts", "", "Directory of Lua transform scripts (overrides config)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (default: discard)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inkmark - Markdown editing core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkmark [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Z / Ctrl-Y       Undo / redo\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-F, Ctrl-G/Ctrl-P Find, next/previous match\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-R                Replace (Enter: one, Ctrl-A: all)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-B, Ctrl-K        Bold, link\n")
		fmt.Fprintf(os.Stderr, "  Alt-I/C/S             Italic, code, strikethrough\n")
		fmt.Fprintf(os.Stderr, "  Alt-1/2/3, Alt-Q/U    Headings, quote, bullet\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-T                Run a named Lua transform\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-N/O/W            New / next / close document\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-S                Save all documents\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Q                Quit (twice to discard changes)\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("inkmark %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
			// Valid
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	return opts
}
