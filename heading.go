// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strconv"

func lexHeading(l *lexer, caps []string, top bool) (int, error) {
	l.push(&Heading{Depth: len(caps[1]), Text: caps[2]})
	return runeLen(caps[0]), nil
}

// lexLHeading handles a setext heading: = underlines level 1, - level 2.
func lexLHeading(l *lexer, caps []string, top bool) (int, error) {
	depth := 2
	if caps[2] == "=" {
		depth = 1
	}
	l.push(&Heading{Depth: depth, Text: caps[1]})
	return runeLen(caps[0]), nil
}

func (p *parser) heading(t *Heading) error {
	n := strconv.Itoa(t.Depth)
	p.w.html("<h", n, ">")
	if err := p.inline.render(p.w, t.Text); err != nil {
		return err
	}
	p.w.html("</h", n, ">\n")
	return nil
}
