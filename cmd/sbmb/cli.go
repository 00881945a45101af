package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/config"
	"github.com/fwojciec/sbmb/crawl"
	"github.com/fwojciec/sbmb/export"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *config.Config
	Cache     sbmb.PageCache
	Parser    sbmb.PageParser
	Harvester *crawl.Harvester
	Exporter  *export.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"c" help:"YAML configuration file"`
	Base     string `short:"b" help:"Base URL of the overview pages"`
	DocType  string `short:"t" name:"type" help:"Document type category shared by all languages (e.g. law)"`
	NL       string `short:"n" name:"nl" help:"Dutch type label (e.g. wet)"`
	FR       string `short:"f" name:"fr" help:"French type label (e.g. loi)"`
	Cache    string `help:"Page cache database path"`
	LogLevel string `name:"log-level" help:"Minimum log level (debug, info, warn, error)"`

	Fetch   FetchCmd   `cmd:"" help:"Download overview pages into the cache"`
	Convert ConvertCmd `cmd:"" help:"Write N-Triples and CSV files from cached pages"`
	Preview PreviewCmd `cmd:"" help:"Print the documents of one cached page"`
}

// Years is the inclusive year range shared by fetch and convert.
type Years struct {
	Start int `short:"s" required:"" help:"Start year"`
	End   int `short:"e" help:"End year (defaults to the start year)"`
}

// Range returns the validated range.
func (y Years) Range() (from, to int, err error) {
	to = y.End
	if to == 0 {
		to = y.Start
	}
	if err := sbmb.ValidateYears(y.Start, to); err != nil {
		return 0, 0, err
	}
	return y.Start, to, nil
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Years   `embed:""`
	Wait    *time.Duration `short:"w" help:"Minimum wait between requests (e.g. 2s)"`
	Refresh bool           `help:"Fetch pages that are already cached"`
	Browser bool           `help:"Fetch through a headless Chrome browser"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Years  `embed:""`
	OutDir string `short:"o" name:"outdir" help:"Output directory"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	Lang string `arg:"" help:"Page language (nl or fr)"`
	Year int    `arg:"" help:"Page year"`
}
