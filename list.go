// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// lexList tokenizes a list and its items.
//
// Each item loses its bullet, and its continuation lines lose as many
// leading spaces as the bullet was wide (at most four in pedantic mode).
// Unless SmartLists is set, an item whose bullet differs from the
// list's first bullet ends the list, and it and the items after it
// are left in the input to be tokenized again as a new list.
// Ordered bullets of any number are the same kind.
func lexList(l *lexer, caps []string, top bool) (int, error) {
	n := runeLen(caps[0])
	bull := caps[2]
	items, starts := splitItems(caps[0])

	l.push(&ListStart{Ordered: len(bull) > 1})
	next := false
	last := len(items) - 1
	for i := 0; i <= last; i++ {
		item := items[i]

		space := len(item)
		item = trimBullet(item)
		if strings.Contains(item, "\n ") {
			space -= len(item)
			if l.opts.Pedantic {
				space = 4
			}
			item = trimIndent(item, space)
		}

		if !l.opts.SmartLists && i != last {
			b := bulletOf(items[i+1])
			if b != bull && !(len(bull) > 1 && len(b) > 1) {
				n = starts[i+1]
				last = i
			}
		}

		// An item is loose if it contains a blank line, if it is
		// followed by one, or if any earlier item was loose.
		loose := next || hasInnerBlankLine(item)
		if i != last {
			next = loose || strings.HasSuffix(item, "\n")
			loose = next
		}

		l.push(&ListItemStart{Loose: loose})
		if err := l.token(item, false); err != nil {
			return 0, err
		}
		l.push(&ListItemEnd{})
	}
	l.push(&ListEnd{})
	return n, nil
}

// splitItems splits a matched list into items and returns them
// with the rune offset at which each one starts.
func splitItems(list string) (items []string, starts []int) {
	m, _ := itemRule.FindStringMatch(list)
	for m != nil {
		items = append(items, m.String())
		starts = append(starts, m.Index)
		m, _ = itemRule.FindNextMatch(m)
	}
	return items, starts
}

// trimBullet removes the indentation, bullet and following spaces
// from the start of item.
func trimBullet(item string) string {
	i := 0
	for i < len(item) && item[i] == ' ' {
		i++
	}
	j := bulletEnd(item, i)
	if j < 0 || j >= len(item) || item[j] != ' ' {
		return item
	}
	for j < len(item) && item[j] == ' ' {
		j++
	}
	return item[j:]
}

// bulletOf returns the first bullet in item.
func bulletOf(item string) string {
	i := 0
	for i < len(item) && item[i] == ' ' {
		i++
	}
	if j := bulletEnd(item, i); j > 0 {
		return item[i:j]
	}
	return ""
}

// bulletEnd returns the end of the bullet (*, + or - or digits and a dot)
// at s[i:], or -1 if there is none.
func bulletEnd(s string, i int) int {
	if i >= len(s) {
		return -1
	}
	switch s[i] {
	case '*', '+', '-':
		return i + 1
	}
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j > i && j < len(s) && s[j] == '.' {
		return j + 1
	}
	return -1
}

// hasInnerBlankLine reports whether item contains a blank line
// followed by more content.
func hasInnerBlankLine(item string) bool {
	end := lastNonSpace(item)
	return end >= 0 && strings.Contains(item[:end], "\n\n")
}

func (p *parser) list(t *ListStart) error {
	tag := "ul"
	if t.Ordered {
		tag = "ol"
	}
	p.w.html("<", tag, ">\n")
	if err := p.until(KindListEnd, p.tok); err != nil {
		return err
	}
	p.w.html("</", tag, ">\n")
	return nil
}

// listItem renders an item. In a tight item, runs of text tokens
// are joined and rendered inline without paragraph tags.
func (p *parser) listItem(t *ListItemStart) error {
	body := p.tok
	if !t.Loose {
		body = func() error {
			if p.cur.Kind() == KindText {
				return p.inline.render(p.w, p.joinText())
			}
			return p.tok()
		}
	}
	p.w.html("<li>")
	if err := p.until(KindListItemEnd, body); err != nil {
		return err
	}
	p.w.html("</li>\n")
	return nil
}
