// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Md2html converts Markdown to HTML.
//
// Usage:
//
//	md2html [flags] render [-o dir] [file...]
//	md2html [flags] watch [dir]
//	md2html [flags] serve [--addr addr] [dir]
//
// Render reads the named files, or else standard input, and prints the
// corresponding HTML to standard output, or writes name.html files into
// the -o directory. Watch renders every .md file in dir to a sibling
// .html file each time it changes. Serve renders the .md files in dir
// on request and accepts documents posted to /render.
//
// Settings are read from the YAML file named by -c, if any,
// after loading .env and .env.local.
package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	prom "github.com/prometheus/client_golang/prometheus"

	"mdwiki.dev/markdown"
	"mdwiki.dev/markdown/internal/config"
	"mdwiki.dev/markdown/internal/highlight"
	"mdwiki.dev/markdown/internal/metrics"
	"mdwiki.dev/markdown/internal/server"
	"mdwiki.dev/markdown/internal/watch"
)

// Global is passed to each command's Run method.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
}

// CLI holds the flags shared by all commands.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Pedantic    bool   `help:"Follow Markdown.pl quirks"`
	Sanitize    bool   `help:"Escape raw HTML"`
	SmartLists  bool   `help:"Keep items with a different bullet in the same list"`
	Smartypants bool   `help:"Use typographic quotes, dashes and ellipses"`
	Breaks      bool   `help:"Render single newlines as <br>"`
	Highlight   string `help:"Highlight code blocks with the named chroma style" placeholder:"STYLE"`

	Render RenderCmd `cmd:"" default:"withargs" help:"Render Markdown files to HTML"`
	Watch  WatchCmd  `cmd:"" help:"Re-render Markdown files in a directory as they change"`
	Serve  ServeCmd  `cmd:"" help:"Serve rendered Markdown over HTTP"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// load returns the configuration file merged with the flags.
func (c *CLI) load() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	flags := &config.Config{
		Pedantic:    c.Pedantic,
		Sanitize:    c.Sanitize,
		SmartLists:  c.SmartLists,
		Smartypants: c.Smartypants,
	}
	if c.Breaks {
		flags.LineBreaks = "gfm"
	}
	if c.Highlight != "" {
		flags.Highlight = config.Highlight{Enabled: true, Style: c.Highlight}
	}
	if err := cfg.Merge(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

type RenderCmd struct {
	Output string   `short:"o" help:"Write name.html files into this directory" type:"path"`
	Files  []string `arg:"" optional:"" help:"Markdown files" type:"path"`
}

func (cmd *RenderCmd) Run(g *Global) error {
	opts := g.Config.Options()
	ctx := context.Background()
	if len(cmd.Files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}
		return emit(ctx, os.Stdout, data, opts)
	}
	for _, file := range cmd.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		if cmd.Output == "" {
			if err := emit(ctx, os.Stdout, data, opts); err != nil {
				return errors.Wrap(err, file)
			}
			continue
		}
		if err := os.MkdirAll(cmd.Output, 0o755); err != nil {
			return err
		}
		out := filepath.Join(cmd.Output, filepath.Base(watch.HTMLPath(file)))
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		err = emit(ctx, f, data, opts)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrap(err, file)
		}
		g.Logger.Debug("Rendered", "file", file, "output", out)
	}
	return nil
}

func emit(ctx context.Context, w io.Writer, data []byte, opts []markdown.Option) error {
	html, err := markdown.RenderContext(ctx, string(data), opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, html)
	return err
}

type WatchCmd struct {
	Dir         string `arg:"" optional:"" default:"." help:"Directory to watch" type:"existingdir"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address" placeholder:"ADDR"`
}

func (cmd *WatchCmd) Run(g *Global) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	reg := prom.NewRegistry()
	rec := metrics.NewRecorder(reg)
	w := &watch.Watcher{
		Dir:      cmd.Dir,
		Options:  g.Config.Options(highlight.WithLogger(g.Logger), highlight.WithObserver(rec.ObserveHighlight)),
		Debounce: time.Duration(g.Config.Watch.DebounceMillis) * time.Millisecond,
		Logger:   g.Logger,
		Metrics:  rec,
	}
	errc := make(chan error, 1)
	if cmd.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cmd.MetricsAddr)
		if err != nil {
			return errors.Wrap(err, "listen for metrics")
		}
		g.Logger.Info("Serving metrics", "addr", ln.Addr().String())
		go func() { errc <- metrics.Serve(ctx, ln, reg) }()
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		g.Logger.Info("Shutdown signal received, stopping watcher")
	case err := <-errc:
		g.Logger.Error("Metrics server failed", "error", err)
	}
	return w.Stop()
}

type ServeCmd struct {
	Addr string `help:"Listen address (default from config)"`
	Dir  string `arg:"" optional:"" help:"Directory of Markdown files (default from config)" type:"existingdir"`
}

func (cmd *ServeCmd) Run(g *Global) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	addr, dir := g.Config.Serve.Addr, g.Config.Serve.Root
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	if cmd.Dir != "" {
		dir = cmd.Dir
	}
	reg := prom.NewRegistry()
	rec := metrics.NewRecorder(reg)
	opts := g.Config.Options(highlight.WithLogger(g.Logger), highlight.WithObserver(rec.ObserveHighlight))
	return server.NewDir(dir, reg, rec, g.Logger, opts...).ListenAndServe(ctx, addr)
}

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("Failed to load environment", "error", err)
		os.Exit(1)
	}
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("md2html"),
		kong.Description("Convert Markdown to HTML."),
		kong.UsageOnError(),
	)
	cfg, err := cli.load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := kctx.Run(&Global{Logger: slog.Default(), Config: cfg}); err != nil {
		slog.Error("Command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
