// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLexData runs the token dumps in testdata/lex.
// Each directive is "lex" followed by option=value arguments.
func TestLexData(t *testing.T) {
	datadriven.Walk(t, "testdata/lex", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "lex":
				o := Defaults()
				d.MaybeScanArgs(t, "gfm", &o.GFM)
				d.MaybeScanArgs(t, "tables", &o.Tables)
				d.MaybeScanArgs(t, "pedantic", &o.Pedantic)
				d.MaybeScanArgs(t, "sanitize", &o.Sanitize)
				d.MaybeScanArgs(t, "smartLists", &o.SmartLists)
				doc, err := Lex(d.Input, WithOptions(o))
				if err != nil {
					return "error: " + err.Error()
				}
				var b strings.Builder
				require.NoError(t, Dump(&b, doc))
				return b.String()
			default:
				d.Fatalf(t, "unknown command %q", d.Cmd)
				return ""
			}
		})
	})
}

func TestWhitespaceOnly(t *testing.T) {
	for _, src := range []string{"", " ", "\n", "\n\n\n", "   \n\t\n  \r\n", " \n  ", "\t"} {
		for _, opts := range profileOptions {
			doc, err := Lex(src, opts...)
			require.NoError(t, err, "%q", src)
			for _, tok := range doc.Tokens {
				assert.Equal(t, KindSpace, tok.Kind(), "%q", src)
			}
			html, err := Render(src, opts...)
			require.NoError(t, err)
			assert.Empty(t, html, "%q", src)
		}
	}
}

func TestSpaceToken(t *testing.T) {
	doc, err := Lex("\n\n\na")
	require.NoError(t, err)
	require.Len(t, doc.Tokens, 2)
	assert.IsType(t, &Space{}, doc.Tokens[0])
	assert.Equal(t, &Paragraph{Text: "a"}, doc.Tokens[1])
}

func TestNormalize(t *testing.T) {
	doc, err := Lex("a\r\nb\rc␤d")
	require.NoError(t, err)
	require.Len(t, doc.Tokens, 1)
	assert.Equal(t, &Paragraph{Text: "a\nb\nc\nd"}, doc.Tokens[0])

	doc, err = Lex("\tcode")
	require.NoError(t, err)
	assert.Equal(t, []Token{&Code{Text: "code"}}, doc.Tokens)
}

func TestHeadingDepth(t *testing.T) {
	for n := 1; n <= 6; n++ {
		doc, err := Lex(strings.Repeat("#", n) + " h")
		require.NoError(t, err)
		assert.Equal(t, []Token{&Heading{Depth: n, Text: "h"}}, doc.Tokens)
	}
	for _, src := range []string{"####### h", "######## h"} {
		doc, err := Lex(src)
		require.NoError(t, err)
		assert.Equal(t, []Token{&Paragraph{Text: src}}, doc.Tokens)
	}
}

func TestListItemLooseness(t *testing.T) {
	// The first item contains a blank line; every later item is loose too.
	doc, err := Lex("- a\n\n  b\n- c\n- d\n")
	require.NoError(t, err)
	var kinds []Kind
	for _, tok := range doc.Tokens {
		if k := tok.Kind(); k == KindListItemStart || k == KindLooseListItemStart {
			kinds = append(kinds, k)
		}
	}
	assert.Equal(t, []Kind{KindLooseListItemStart, KindLooseListItemStart, KindLooseListItemStart}, kinds)
}

func TestBalancedContainers(t *testing.T) {
	srcs := []string{
		"> a\n> > b\n> - c\n",
		"- a\n  > b\n- c\n\n1. d\n2. e\n",
		"- a\n+ b\n* c\n",
	}
	for _, src := range srcs {
		doc, err := Lex(src)
		require.NoError(t, err)
		var stack []Kind
		for _, tok := range doc.Tokens {
			switch tok.Kind() {
			case KindBlockquoteStart, KindListStart, KindListItemStart, KindLooseListItemStart:
				stack = append(stack, tok.Kind())
			case KindBlockquoteEnd, KindListEnd, KindListItemEnd:
				require.NotEmpty(t, stack, "%q: unmatched %s", src, tok.Kind())
				stack = stack[:len(stack)-1]
			}
		}
		assert.Empty(t, stack, "%q", src)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "loose_list_item_start", KindLooseListItemStart.String())
	assert.Equal(t, "blockquote_end", KindBlockquoteEnd.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, KindLooseListItemStart, (&ListItemStart{Loose: true}).Kind())
}
