// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// A Link is the target of a link reference definition.
type Link struct {
	Href  string
	Title string
}

// A LinkTable maps normalized labels to link reference definitions.
type LinkTable map[string]*Link

// Define records a definition for label, replacing any earlier one.
func (t LinkTable) Define(label, href, title string) {
	t[normalizeLabel(label)] = &Link{Href: href, Title: title}
}

// Lookup returns the definition for label, or nil.
func (t LinkTable) Lookup(label string) *Link {
	return t[normalizeLabel(label)]
}

// normalizeLabel returns the table key for a link label:
// surrounding white space removed, inner runs collapsed to
// a single space, and case folded.
func normalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			space = true
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		s = cases.Fold().String(s)
	}
	return s
}

// lexDef records a link reference definition.
// Only the top level of a document has definitions.
func lexDef(l *lexer, caps []string, top bool) (int, error) {
	l.links.Define(caps[1], caps[2], caps[3])
	return runeLen(caps[0]), nil
}

// inlineAutolink handles <scheme:...> and <user@host>.
// Email addresses are written as randomly mixed decimal and hex
// character references.
func inlineAutolink(l *inlineLexer, w *printer, m *match) (int, error) {
	var text, href string
	if m.caps[2] == "@" {
		addr := []rune(m.caps[1])
		if len(addr) > 6 && addr[6] == ':' {
			addr = addr[7:]
		}
		text = mangle(string(addr))
		href = mangle("mailto:") + text
	} else {
		text = EscapeText(m.caps[1])
		href = text
	}
	w.html(`<a href="`, href, `">`, text, "</a>")
	return m.width(), nil
}

// inlineURL links a bare http or https URL.
func inlineURL(l *inlineLexer, w *printer, m *match) (int, error) {
	u := EscapeText(m.caps[1])
	w.html(`<a href="`, u, `">`, u, "</a>")
	return m.width(), nil
}

// inlineLink handles [text](href "title") and ![alt](src "title").
func inlineLink(l *inlineLexer, w *printer, m *match) (int, error) {
	if err := l.outputLink(w, m.caps, &Link{Href: m.caps[2], Title: m.caps[3]}); err != nil {
		return 0, err
	}
	return m.width(), nil
}

// inlineRefLink handles [text][label] and [label].
// A label with no definition is not a link: only the opening
// character is consumed, as text.
func inlineRefLink(l *inlineLexer, w *printer, m *match) (int, error) {
	label := m.caps[1]
	if len(m.caps) > 2 && m.caps[2] != "" {
		label = m.caps[2]
	}
	link := l.links.Lookup(label)
	if link == nil || link.Href == "" {
		w.text(m.caps[0][:1])
		return 1, nil
	}
	if err := l.outputLink(w, m.caps, link); err != nil {
		return 0, err
	}
	return m.width(), nil
}

func (l *inlineLexer) outputLink(w *printer, caps []string, link *Link) error {
	if caps[0][0] == '!' {
		w.html(`<img src="`)
		w.text(link.Href)
		w.html(`" alt="`)
		w.text(caps[1])
		w.html(`"`)
		if link.Title != "" {
			w.html(` title="`)
			w.text(link.Title)
			w.html(`"`)
		}
		w.html(">")
		return nil
	}
	w.html(`<a href="`)
	w.text(link.Href)
	w.html(`"`)
	if link.Title != "" {
		w.html(` title="`)
		w.text(link.Title)
		w.html(`"`)
	}
	w.html(">")
	if err := l.render(w, caps[1]); err != nil {
		return err
	}
	w.html("</a>")
	return nil
}

// mangle writes each rune of s as a character reference,
// choosing decimal or hexadecimal at random.
func mangle(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString("&#")
		if rand.IntN(2) == 1 {
			b.WriteString("x")
			b.WriteString(strconv.FormatInt(int64(r), 16))
		} else {
			b.WriteString(strconv.Itoa(int(r)))
		}
		b.WriteString(";")
	}
	return b.String()
}
