// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// htmlEscaper escapes every HTML special character, including
// ampersands that already begin an entity.
var htmlEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`"`, `&quot;`,
	`'`, `&#39;`,
)

// Escape returns s with all of & < > " and ' replaced by entities.
// It is the mode used for code, where an existing entity
// must be shown literally.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeText returns s with < > and " replaced by entities
// and with every & that does not already start an entity
// (&name; or &#num;) replaced by &amp;.
// Single quotes are left alone.
//
// EscapeText is idempotent: EscapeText(EscapeText(s)) == EscapeText(s).
func EscapeText(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if isEntity(s[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isEntity reports whether s begins with &#?\w+; .
func isEntity(s string) bool {
	i := 1
	if i < len(s) && s[i] == '#' {
		i++
	}
	j := i
	for j < len(s) && isWordByte(s[j]) {
		j++
	}
	return j > i && j < len(s) && s[j] == ';'
}
