// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

func lexParagraph(l *lexer, caps []string, top bool) (int, error) {
	l.push(&Paragraph{Text: strings.TrimSuffix(caps[1], "\n")})
	return runeLen(caps[0]), nil
}

func (p *parser) paragraph(t *Paragraph) error {
	p.w.html("<p>")
	if err := p.inline.render(p.w, t.Text); err != nil {
		return err
	}
	p.w.html("</p>\n")
	return nil
}

// text renders a run of text tokens outside a tight list item
// as a paragraph.
func (p *parser) text() error {
	p.w.html("<p>")
	if err := p.inline.render(p.w, p.joinText()); err != nil {
		return err
	}
	p.w.html("</p>\n")
	return nil
}
