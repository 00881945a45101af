package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/config"
	"github.com/fwojciec/sbmb/crawl"
	sbmbcsv "github.com/fwojciec/sbmb/csv"
	"github.com/fwojciec/sbmb/export"
	"github.com/fwojciec/sbmb/fs"
	"github.com/fwojciec/sbmb/goquery"
	sbmbhttp "github.com/fwojciec/sbmb/http"
	"github.com/fwojciec/sbmb/lru"
	"github.com/fwojciec/sbmb/ntriples"
	"github.com/fwojciec/sbmb/rod"
	sbmbslog "github.com/fwojciec/sbmb/slog"
	"github.com/fwojciec/sbmb/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads configuration overrides. Set before calling Run().
	Getenv func(string) string

	// SQLite database backing the page cache.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Fetcher sbmb.Fetcher
	Cache   sbmb.PageCache
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sbmb"),
		kong.Description("Convert Belgian Official Journal overview pages to ELI linked data and CSV"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sbmb --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli)
	if err != nil {
		if cli.Config == "" {
			fmt.Fprintln(stderr, "Hint: pass --config or set --type, --nl and --fr")
		}
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded", "base", cfg.BaseURL(), "cache", cfg.Cache, "languages", len(cfg.Languages))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	deps.Config = cfg
	deps.Logger = logger

	if m.Cache == nil {
		m.DB = sqlite.NewDB(cfg.Cache)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different cache path\n", config.EnvCache)
			return fmt.Errorf("failed to open cache at %q: %w", cfg.Cache, err)
		}
		defer m.Close()

		cache, err := lru.NewPageCache(sbmbslog.NewLoggingPageCache(sqlite.NewPageCache(m.DB), logger), lru.DefaultSize)
		if err != nil {
			return fmt.Errorf("failed to create page cache: %w", err)
		}
		m.Cache = cache
	}
	deps.Cache = m.Cache

	labels := cfg.Labels()
	parserOpts := []goquery.Option{
		goquery.WithLogger(logger),
		goquery.WithDateParser(sbmb.NewDateParser(logger, localesFor(labels)...)),
	}
	deps.Parser = goquery.NewParser(parserOpts...)

	switch kongCtx.Command() {
	case "fetch":
		fetcher := m.Fetcher
		if fetcher == nil && cli.Fetch.Browser {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		}
		if fetcher == nil {
			fetcher = sbmbhttp.NewFetcher()
		}
		defer fetcher.Close()

		deps.Harvester = &crawl.Harvester{
			Fetcher:   sbmbslog.NewLoggingFetcher(fetcher, logger),
			Cache:     deps.Cache,
			Throttle:  crawl.NewThrottle(cfg.Wait),
			Logger:    logger,
			Prefilter: true,
		}
	case "convert":
		deps.Exporter = &export.Exporter{
			Cache:  deps.Cache,
			Parser: deps.Parser,
			Writers: []sbmb.BatchWriter{
				ntriples.NewWriter(labels, ntriples.WithLocation(loc), ntriples.WithLogger(logger)),
				sbmbcsv.NewWriter(labels),
			},
			Dir:    fs.NewDir(cfg.OutDir),
			Logger: logger,
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig merges the configuration file, the environment and the global
// flags, in increasing precedence.
func (m *Main) loadConfig(cli *CLI) (*config.Config, error) {
	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.Load(cli.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(m.Getenv)

	if cli.Base != "" {
		cfg.Base = cli.Base
	}
	if cli.DocType != "" {
		cfg.DocType = cli.DocType
	}
	if cli.NL != "" {
		cfg.SetType(string(sbmb.Dutch), cli.NL)
	}
	if cli.FR != "" {
		cfg.SetType(string(sbmb.French), cli.FR)
	}
	if cli.Cache != "" {
		cfg.Cache = cli.Cache
	}
	if cli.Convert.OutDir != "" {
		cfg.OutDir = cli.Convert.OutDir
	}
	if cli.Fetch.Wait != nil {
		cfg.Wait = *cli.Fetch.Wait
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// localesFor orders the date locales like the configured languages, so the
// fallback attempts follow configuration order.
func localesFor(labels sbmb.TypeLabels) []sbmb.Locale {
	all := sbmb.DefaultLocales()
	var locales []sbmb.Locale
	for _, l := range labels {
		for _, loc := range all {
			if loc.Lang == l.Lang {
				locales = append(locales, loc)
			}
		}
	}
	if len(locales) == 0 {
		return all
	}
	return locales
}
