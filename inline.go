// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// An inlineLexer renders the text of a block to HTML,
// resolving reference links against links.
type inlineLexer struct {
	opts  *Options
	rules *Grammar
	links LinkTable
}

func newInlineLexer(links LinkTable, o *Options, g *Grammar) *inlineLexer {
	if links == nil {
		panic(errors.AssertionFailedf("inline rendering requires a link table"))
	}
	return &inlineLexer{opts: o, rules: g, links: links}
}

// A match is a successful rule match during inline scanning.
// prev is the rune before the match, or 0 at the start of the text.
type match struct {
	caps []string
	prev rune
}

// width is the number of runes matched.
func (m *match) width() int {
	return runeLen(m.caps[0])
}

// An inlineStep is one entry of the inline rule order.
// The handler writes the HTML for the match and returns the number of
// runes consumed; zero declines the match so the next rule is tried.
type inlineStep struct {
	rule string
	emit func(l *inlineLexer, w *printer, m *match) (int, error)
}

var inlineSteps []inlineStep

func init() {
	inlineSteps = []inlineStep{
		{"escape", inlineEscape},
		{"autolink", inlineAutolink},
		{"url", inlineURL},
		{"tag", inlineTag},
		{"link", inlineLink},
		{"reflink", inlineRefLink},
		{"nolink", inlineRefLink},
		{"strong", inlineStrong},
		{"em", inlineEm},
		{"code", inlineCode},
		{"br", inlineBreak},
		{"del", inlineDel},
		{"text", inlineText},
	}
}

// InlineHTML renders the span-level Markdown in text,
// resolving reference links against links.
// It panics if links is nil.
func InlineHTML(text string, links LinkTable, opts ...Option) (string, error) {
	o := resolve(opts)
	_, g := SelectGrammar(*o)
	l := newInlineLexer(links, o, g)
	var w printer
	if err := l.render(&w, text); err != nil {
		return "", err
	}
	return w.String(), nil
}

// render writes the HTML for text to w.
func (l *inlineLexer) render(w *printer, text string) error {
	src := []rune(text)
	var prev rune
Scan:
	for len(src) > 0 {
		for _, step := range inlineSteps {
			caps := l.rules.rule(step.rule).exec(src)
			if caps == nil {
				continue
			}
			n, err := step.emit(l, w, &match{caps: caps, prev: prev})
			if err != nil {
				return err
			}
			if n <= 0 {
				continue
			}
			prev = src[n-1]
			src = src[n:]
			continue Scan
		}
		return exhausted(l.rules, src)
	}
	return nil
}

func inlineEscape(l *inlineLexer, w *printer, m *match) (int, error) {
	w.text(m.caps[1])
	return m.width(), nil
}

// intraword reports whether m is underscore emphasis that starts
// inside a word. Such a match is declined except in pedantic mode.
func (l *inlineLexer) intraword(m *match) bool {
	return !l.opts.Pedantic && strings.HasPrefix(m.caps[0], "_") && isWordRune(m.prev)
}

func inlineStrong(l *inlineLexer, w *printer, m *match) (int, error) {
	return l.wrap(w, m, "strong", first(m.caps[2], m.caps[1]))
}

func inlineEm(l *inlineLexer, w *printer, m *match) (int, error) {
	return l.wrap(w, m, "em", first(m.caps[2], m.caps[1]))
}

func inlineDel(l *inlineLexer, w *printer, m *match) (int, error) {
	return l.wrap(w, m, "del", m.caps[1])
}

// wrap renders body inside the named element.
func (l *inlineLexer) wrap(w *printer, m *match, tag, body string) (int, error) {
	if l.intraword(m) {
		return 0, nil
	}
	w.html("<", tag, ">")
	if err := l.render(w, body); err != nil {
		return 0, err
	}
	w.html("</", tag, ">")
	return m.width(), nil
}

func inlineCode(l *inlineLexer, w *printer, m *match) (int, error) {
	w.html("<code>")
	w.code(m.caps[2])
	w.html("</code>")
	return m.width(), nil
}

func inlineText(l *inlineLexer, w *printer, m *match) (int, error) {
	w.text(l.smartypants(m.caps[0]))
	return m.width(), nil
}

var (
	singleQuoted = regexp.MustCompile(`'([^']*)'`)
	doubleQuoted = regexp.MustCompile(`"([^"]*)"`)
)

// smartypants applies typographic substitutions to a text run:
// dashes, quotes and ellipses.
func (l *inlineLexer) smartypants(text string) string {
	if !l.opts.Smartypants {
		return text
	}
	text = strings.ReplaceAll(text, "--", "\u2014")
	text = singleQuoted.ReplaceAllString(text, "\u2018${1}\u2019")
	text = doubleQuoted.ReplaceAllString(text, "\u201c${1}\u201d")
	return strings.ReplaceAll(text, "...", "\u2026")
}

func first(list ...string) string {
	for _, s := range list {
		if s != "" {
			return s
		}
	}
	return ""
}
