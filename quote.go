// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

// lexBlockquote strips one level of > markers and tokenizes the
// content with the caller's top-level flag, as Markdown.pl does.
// Link definitions in a top-level blockquote are therefore recorded.
func lexBlockquote(l *lexer, caps []string, top bool) (int, error) {
	l.push(&BlockquoteStart{})
	if err := l.token(trimQuote(caps[0]), top); err != nil {
		return 0, err
	}
	l.push(&BlockquoteEnd{})
	return runeLen(caps[0]), nil
}

func (p *parser) blockquote() error {
	p.w.html("<blockquote>\n")
	if err := p.until(KindBlockquoteEnd, p.tok); err != nil {
		return err
	}
	p.w.html("</blockquote>\n")
	return nil
}
