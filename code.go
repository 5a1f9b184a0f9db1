// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

func lexCode(l *lexer, caps []string, top bool) (int, error) {
	text := trimIndent(caps[0], 4)
	if !l.opts.Pedantic {
		text = strings.TrimRight(text, "\n")
	}
	l.push(&Code{Text: text})
	return runeLen(caps[0]), nil
}

func lexFences(l *lexer, caps []string, top bool) (int, error) {
	l.push(&Code{Lang: caps[2], Text: caps[3]})
	return runeLen(caps[0]), nil
}

func (p *parser) code(t *Code) {
	text, escaped := t.Text, t.Escaped
	if !escaped && p.opts.Highlight != nil {
		if out := p.opts.Highlight(t.Text, t.Lang); out != "" && out != t.Text {
			text, escaped = out, true
		}
	}
	p.w.html("<pre><code")
	if t.Lang != "" {
		p.w.html(` class="`)
		p.w.text(p.opts.LangPrefix + t.Lang)
		p.w.html(`"`)
	}
	p.w.html(">")
	if escaped {
		p.w.html(text)
	} else {
		p.w.code(text)
	}
	p.w.html("</code></pre>\n")
}
