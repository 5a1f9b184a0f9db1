// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

func lexHr(l *lexer, caps []string, top bool) (int, error) {
	l.push(&Hr{})
	return runeLen(caps[0]), nil
}

func (p *parser) hr() {
	p.w.html("<hr>\n")
}

// inlineBreak emits a hard line break. With the breaks profile
// every newline is one.
func inlineBreak(l *inlineLexer, w *printer, m *match) (int, error) {
	w.html("<br>")
	return m.width(), nil
}
