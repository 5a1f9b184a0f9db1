// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// lexHTML handles a raw HTML block. With Sanitize the block
// becomes a paragraph, so its tags are escaped by the inline stage.
func lexHTML(l *lexer, caps []string, top bool) (int, error) {
	if l.opts.Sanitize {
		l.push(&Paragraph{Text: strings.TrimRight(caps[0], "\n")})
	} else {
		l.push(&HTML{Pre: caps[1] == "pre" || caps[1] == "script", Text: caps[0]})
	}
	return runeLen(caps[0]), nil
}

// html emits a raw HTML block. Except in <pre> and <script> blocks
// and in pedantic mode, Markdown spans inside it are still rendered.
func (p *parser) html(t *HTML) error {
	if t.Pre || p.opts.Pedantic {
		p.w.html(t.Text)
		return nil
	}
	return p.inline.render(p.w, t.Text)
}

// inlineTag passes an inline tag or comment through,
// or escapes it when sanitizing.
func inlineTag(l *inlineLexer, w *printer, m *match) (int, error) {
	if l.opts.Sanitize {
		w.text(m.caps[0])
	} else {
		w.html(m.caps[0])
	}
	return m.width(), nil
}
