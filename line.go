// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// normalizer rewrites line endings and the characters that
// the block grammar treats as plain spaces or newlines.
var normalizer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\t", "    ",
	"\u00a0", " ",
	"\u2424", "\n",
)

// normalize prepares source text for block tokenizing.
func normalize(src string) string {
	return normalizer.Replace(src)
}

// mapLines returns s with f applied to each line.
// Newlines are preserved.
func mapLines(s string, f func(line string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		line, rest, more := strings.Cut(s, "\n")
		b.WriteString(f(line))
		if !more {
			break
		}
		b.WriteByte('\n')
		s = rest
	}
	return b.String()
}

// blankSpaceLines empties lines that contain only spaces.
func blankSpaceLines(s string) string {
	if !strings.Contains(s, " ") {
		return s
	}
	return mapLines(s, func(line string) string {
		if line != "" && strings.Trim(line, " ") == "" {
			return ""
		}
		return line
	})
}

// trimIndent removes up to n leading spaces from every line.
func trimIndent(s string, n int) string {
	return mapLines(s, func(line string) string {
		i := 0
		for i < n && i < len(line) && line[i] == ' ' {
			i++
		}
		return line[i:]
	})
}

// trimQuote removes a blockquote marker (spaces, > and one optional space)
// from the start of every line that has one.
func trimQuote(s string) string {
	return mapLines(s, func(line string) string {
		i := 0
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) || line[i] != '>' {
			return line
		}
		i++
		if i < len(line) && line[i] == ' ' {
			i++
		}
		return line[i:]
	})
}

// lastNonSpace returns the index of the last byte of s
// that is not ASCII white space, or -1.
func lastNonSpace(s string) int {
	i := len(s) - 1
	for i >= 0 && isSpaceByte(s[i]) {
		i--
	}
	return i
}
