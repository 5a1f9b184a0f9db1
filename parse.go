// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
)

// A parser renders a block token stream to HTML.
// It makes a single pass with a cursor; containers are rendered
// by consuming tokens up to the matching end token.
type parser struct {
	opts   *Options
	inline *inlineLexer
	tokens []Token
	pos    int
	cur    Token
	w      *printer
}

// Parse renders the tokens of doc to HTML using the inline profile
// selected by the options. It panics if doc.Links is nil.
func Parse(doc *Document, opts ...Option) (string, error) {
	o := resolve(opts)
	_, inline := SelectGrammar(*o)
	return parse(doc, o, inline)
}

func parse(doc *Document, o *Options, inline *Grammar) (string, error) {
	p := &parser{
		opts:   o,
		inline: newInlineLexer(doc.Links, o, inline),
		tokens: doc.Tokens,
		w:      new(printer),
	}
	for p.next() != nil {
		if err := p.tok(); err != nil {
			return "", err
		}
	}
	return p.w.String(), nil
}

func (p *parser) next() Token {
	if p.pos >= len(p.tokens) {
		p.cur = nil
		return nil
	}
	p.cur = p.tokens[p.pos]
	p.pos++
	return p.cur
}

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return p.tokens[p.pos]
}

// until calls body for each token up to the next token of kind end,
// which it consumes.
func (p *parser) until(end Kind, body func() error) error {
	for {
		t := p.next()
		if t == nil {
			return unbalanced(end)
		}
		if t.Kind() == end {
			return nil
		}
		if err := body(); err != nil {
			return err
		}
	}
}

// joinText joins the current text token and the text tokens
// that immediately follow it with newlines.
func (p *parser) joinText() string {
	var b strings.Builder
	b.WriteString(p.cur.(*Text).Text)
	for {
		t, ok := p.peek().(*Text)
		if !ok {
			break
		}
		p.next()
		b.WriteByte('\n')
		b.WriteString(t.Text)
	}
	return b.String()
}

// tok renders the current token.
func (p *parser) tok() error {
	switch t := p.cur.(type) {
	case *Space:
		return nil
	case *Hr:
		p.hr()
		return nil
	case *Heading:
		return p.heading(t)
	case *Code:
		p.code(t)
		return nil
	case *Table:
		return p.table(t)
	case *BlockquoteStart:
		return p.blockquote()
	case *ListStart:
		return p.list(t)
	case *ListItemStart:
		return p.listItem(t)
	case *HTML:
		return p.html(t)
	case *Paragraph:
		return p.paragraph(t)
	case *Text:
		return p.text()
	}
	return unexpected(p.cur.Kind())
}
