// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"context"
	"log/slog"
	"sync"
)

// Options controls a render call.
// A call starts from a copy of the process-wide defaults
// (see SetDefaults) and applies its Option arguments to the copy.
type Options struct {
	GFM         bool // GitHub-flavored block and inline grammar
	Tables      bool // pipe tables (GFM only)
	Breaks      bool // single newlines become <br> (GFM only)
	Pedantic    bool // original Markdown.pl quirks
	Sanitize    bool // escape raw HTML instead of passing it through
	SmartLists  bool // keep items with a different bullet in the current list
	Smartypants bool // typographic quotes, dashes and ellipses
	Silent      bool // report errors as HTML instead of returning them

	// Highlight, if set, is called for each code block during rendering.
	// A result that is empty or equal to code is ignored;
	// any other result must already be safe HTML.
	Highlight func(code, lang string) string

	// HighlightAsync, if set, is called concurrently for every code
	// block before rendering begins. Rendering runs once, after
	// all calls have returned.
	HighlightAsync func(ctx context.Context, code, lang string) (string, error)

	// HighlightLimit bounds the number of concurrent HighlightAsync calls.
	// Zero means no limit.
	HighlightLimit int

	// LangPrefix is prepended to the language of a fenced code block
	// to form the class of its <code> element.
	LangPrefix string

	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// An Option modifies the Options of a render call.
type Option func(*Options)

var (
	defaultsMu sync.RWMutex
	defaults   = Options{
		GFM:        true,
		Tables:     true,
		LangPrefix: "lang-",
	}
)

// Defaults returns a copy of the process-wide default options.
func Defaults() Options {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// SetDefaults applies opts to the process-wide defaults.
// It affects render calls that start after it returns.
func SetDefaults(opts ...Option) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	for _, opt := range opts {
		opt(&defaults)
	}
}

// resolve returns the options for a single call.
func resolve(opts []Option) *Options {
	o := Defaults()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &o
}

func WithGFM(on bool) Option         { return func(o *Options) { o.GFM = on } }
func WithTables(on bool) Option      { return func(o *Options) { o.Tables = on } }
func WithBreaks(on bool) Option      { return func(o *Options) { o.Breaks = on } }
func WithPedantic(on bool) Option    { return func(o *Options) { o.Pedantic = on } }
func WithSanitize(on bool) Option    { return func(o *Options) { o.Sanitize = on } }
func WithSmartLists(on bool) Option  { return func(o *Options) { o.SmartLists = on } }
func WithSmartypants(on bool) Option { return func(o *Options) { o.Smartypants = on } }
func WithSilent(on bool) Option      { return func(o *Options) { o.Silent = on } }

func WithLangPrefix(prefix string) Option {
	return func(o *Options) { o.LangPrefix = prefix }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithHighlight sets a synchronous code block highlighter.
func WithHighlight(fn func(code, lang string) string) Option {
	return func(o *Options) { o.Highlight = fn }
}

// WithHighlightAsync sets a highlighter that is run concurrently over all
// code blocks before rendering. Use it with RenderAsync or RenderContext.
func WithHighlightAsync(fn func(ctx context.Context, code, lang string) (string, error)) Option {
	return func(o *Options) { o.HighlightAsync = fn }
}

func WithHighlightLimit(n int) Option {
	return func(o *Options) { o.HighlightLimit = n }
}

// WithOptions replaces all options with o.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}
