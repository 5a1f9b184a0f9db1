// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
	"strings"
	"testing"
)

var rep = strings.Repeat

func repf(f func(int) string, n int) string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = f(i)
	}
	return strings.Join(out, "")
}

// Many cases here derived from cmark-gfm/test/pathological_tests.py.
// The grammar backtracks, so inputs are kept to sizes that finish quickly.

var bigTests = []struct {
	name string
	in   string
	out  string
}{
	{
		"many emph closers with no openers",
		rep("a_ ", 1000),
		"",
	},
	{
		"many emph openers with no closers",
		rep("_a ", 1000),
		"",
	},
	{
		"alternating emph",
		rep("*a ", 300),
		"<p>" + rep("<em>a </em>a ", 150) + "</p>\n",
	},
	{
		"many link closers with no openers",
		rep("a]", 1000),
		"",
	},
	{
		"many link openers with no closers",
		rep("[a", 100),
		"",
	},
	{
		"hard link/emph case",
		"**x [a*b**c*](d)",
		"<p><strong>x [a*b</strong>c*](d)</p>\n",
	},
	{
		"nested brackets",
		rep("[", 50) + "a" + rep("]", 50),
		"",
	},
	{
		"nested block quotes",
		rep("> ", 50) + "a",
		rep("<blockquote>\n", 50) + "<p>a</p>\n" + rep("</blockquote>\n", 50),
	},
	{
		"deeply nested lists",
		repf(func(x int) string { return rep("  ", x) + "* a\n" }, 100),
		"<ul>\n" + rep("<li>a<ul>\n", 100-1) + "<li>a</li>\n" + rep("</ul>\n</li>\n", 100-1) + "</ul>\n",
	},
	{
		"backticks",
		repf(func(x int) string { return "e" + rep("`", x) }, 50),
		"",
	},
	{
		"unclosed links A",
		rep("[a](<b", 100),
		"<p>" + rep("[a](&lt;b", 100) + "</p>\n",
	},
	{
		"unclosed links C",
		rep("[a](b\\#", 100),
		"<p>" + rep("[a](b#", 100) + "</p>\n",
	},
	{
		"unclosed <!--",
		"</" + rep(" <!--", 100),
		"<p>&lt;/" + rep(" &lt;!--", 100) + "</p>\n",
	},
	{
		"unclosed <?",
		"</" + rep(" <?", 100),
		"<p>&lt;/" + rep(" &lt;?", 100) + "</p>\n",
	},
	{
		"unclosed <![CDATA[",
		"</" + rep(" <![CDATA[", 30),
		"<p>&lt;/" + rep(" &lt;![CDATA[", 30) + "</p>\n",
	},
	{
		"pipes without a delimiter row",
		rep("abc\ndef\n|-\n", 100),
		"<p>" + strings.TrimSuffix(rep("abc\ndef\n|-\n", 100), "\n") + "</p>\n",
	},
	{
		"long paragraph",
		rep("word ", 5000),
		"",
	},
}

func compress(s string) string {
	var out []byte
	start := 0
S:
	for i := 0; i+4 < len(s); i++ {
		c := s[i]
		for j := i + 1; j < i+100 && j < len(s); j++ {
			if s[j] == c {
				n := 1
				w := j - i
				for j+w <= len(s) && s[i:i+w] == s[j:j+w] {
					j += w
					n++
				}
				if n > 2 {
					out = append(out, s[start:i]...)
					out = fmt.Appendf(out, "«%d:%s»", n, s[i:i+w])
					start = j
					i = start - 1
					continue S
				}
			}
		}
	}
	out = append(out, s[start:]...)
	return string(out)
}

func TestBig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in -short mode")
	}
	for _, tt := range bigTests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.in)
			if err != nil {
				t.Fatalf("%s: Render(%q): %v", tt.name, compress(tt.in), err)
			}
			if tt.out == "" {
				tt.out = "<p>" + tt.in + "</p>\n"
			}
			if out != tt.out {
				t.Fatalf("%s: Render(%q):\nhave %q\nwant %q", tt.name, compress(tt.in), compress(out), compress(tt.out))
			}
		})
	}
}

func bench(b *testing.B, text string) {
	for i := 0; i < b.N; i++ {
		if _, err := Render(text); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(len(text)))
}

func BenchmarkBrackets(b *testing.B) {
	bench(b, rep("[", 50)+"a"+rep("]", 50))
}

func BenchmarkDeepList(b *testing.B) {
	bench(b, repf(func(x int) string { return rep("  ", x) + "* a\n" }, 50))
}

func BenchmarkList(b *testing.B) {
	bench(b, repf(func(x int) string { return "* a\n" }, 1000))
}

func BenchmarkDocument(b *testing.B) {
	bench(b, rep("# Title\n\nSome *text* with `code` and [a link](/x).\n\n- one\n- two\n\n    code\n\n", 50))
}
