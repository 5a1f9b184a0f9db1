// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highlight colors code blocks with chroma.
//
// A Highlighter produces class-based HTML without the surrounding
// <pre>, so its output can be placed directly inside the
// <pre><code> element written by the markdown package.
package highlight

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/cockroachdb/errors"
)

// A Highlighter renders code as HTML for a fixed style.
// It is safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
	logger    *slog.Logger
	observe   func(lang string, ok bool)
}

// An Option configures a Highlighter.
type Option func(*Highlighter)

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(h *Highlighter) { h.logger = l }
}

// WithObserver sets a function called once per block with the
// block language and whether a lexer was found for it.
func WithObserver(fn func(lang string, ok bool)) Option {
	return func(h *Highlighter) { h.observe = fn }
}

// New returns a Highlighter using the named chroma style.
// An unknown style falls back to chroma's default.
func New(style string, opts ...Option) *Highlighter {
	h := &Highlighter{
		style:     styles.Get(style),
		formatter: html.New(html.WithClasses(true), html.PreventSurroundingPre(true)),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Style returns the name of the style in use.
func (h *Highlighter) Style() string {
	return h.style.Name
}

// Highlight returns code rendered as HTML.
// It returns code unchanged if lang is empty or unknown
// or if formatting fails.
func (h *Highlighter) Highlight(code, lang string) string {
	out, err := h.HighlightContext(context.Background(), code, lang)
	if err != nil {
		h.logger.Debug("highlight: failed", "lang", lang, "error", err)
		return code
	}
	return out
}

// HighlightContext is like Highlight but reports formatting errors.
func (h *Highlighter) HighlightContext(ctx context.Context, code, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lexer := h.lexer(lang)
	if h.observe != nil {
		h.observe(lang, lexer != nil)
	}
	if lexer == nil {
		return code, nil
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", errors.Wrapf(err, "tokenize %s", lang)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", errors.Wrapf(err, "format %s", lang)
	}
	return b.String(), nil
}

func (h *Highlighter) lexer(lang string) chroma.Lexer {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil
	}
	l := lexers.Get(lang)
	if l == nil {
		return nil
	}
	return chroma.Coalesce(l)
}

// CSS writes the style sheet for the classes used by h.
func (h *Highlighter) CSS(b *strings.Builder) error {
	return h.formatter.WriteCSS(b, h.style)
}
