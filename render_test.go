// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// renderCrippled renders src with a block profile that has
// no fallback rule, so any paragraph text exhausts it.
func renderCrippled(src string, opts ...Option) (string, error) {
	o := resolve(opts)
	block := derive("block.crippled", BlockTables, unset("paragraph"), unset("text"))
	out, err := renderWith(context.Background(), src, o, block, InlineGFM)
	return finish(o, out, err)
}

func TestGrammarExhausted(t *testing.T) {
	_, err := renderCrippled("# ok\n\nplain <text>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGrammarExhausted))
	assert.Contains(t, err.Error(), "block.crippled")
	assert.Contains(t, err.Error(), "please report this input as a grammar gap")
	assert.Contains(t, errors.FlattenHints(err), "grammar gap")
}

func TestInlineGrammarExhausted(t *testing.T) {
	o := resolve(nil)
	inline := derive("inline.crippled", InlineGFM, unset("text"))
	_, err := renderWith(context.Background(), "hello", o, BlockTables, inline)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGrammarExhausted))
	assert.Contains(t, err.Error(), "inline.crippled")
}

func TestSilent(t *testing.T) {
	out, err := renderCrippled("plain <text>", WithSilent(true))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<p>An error occurred:</p><pre>"), out)
	assert.True(t, strings.HasSuffix(out, "</pre>"), out)
	assert.Contains(t, out, "no grammar rule matched")
	assert.Contains(t, out, "&lt;text&gt;")
	assert.NotContains(t, out, "<text>")
}

func TestMissingLinkTable(t *testing.T) {
	assert.Panics(t, func() {
		InlineHTML("[a][b]", nil)
	})
	assert.Panics(t, func() {
		Parse(&Document{Tokens: []Token{&Paragraph{Text: "x"}}})
	})
	out, err := InlineHTML("[a][b]", LinkTable{"b": {Href: "/b"}})
	require.NoError(t, err)
	assert.Equal(t, `<a href="/b">a</a>`, out)
}

func TestParseUnbalanced(t *testing.T) {
	for _, tokens := range [][]Token{
		{&ListStart{}, &ListItemStart{}, &Text{Text: "a"}},
		{&BlockquoteStart{}, &Paragraph{Text: "a"}},
		{&ListEnd{}},
		{&BlockquoteStart{}, &ListItemEnd{}, &BlockquoteEnd{}},
	} {
		_, err := Parse(&Document{Tokens: tokens, Links: LinkTable{}})
		assert.True(t, errors.Is(err, ErrUnbalanced), "%v", err)
	}
}

func TestLexParseRender(t *testing.T) {
	src := "# T\n\n> q\n\n- a\n- b\n\n[x]: /x\n\nsee [x]\n"
	doc, err := Lex(src)
	require.NoError(t, err)
	assert.Equal(t, &Link{Href: "/x"}, doc.Links.Lookup("X"))
	parsed, err := Parse(doc)
	require.NoError(t, err)
	rendered, err := Render(src)
	require.NoError(t, err)
	assert.Equal(t, rendered, parsed)
	assert.Contains(t, rendered, `<p>see <a href="/x">x</a></p>`)
}

func TestBlockquoteDefinitions(t *testing.T) {
	// Definitions inside a top-level blockquote are recorded.
	out, err := Render("> [q]: /quoted\n\n[link][q]\n")
	require.NoError(t, err)
	assert.Equal(t, "<blockquote>\n</blockquote>\n<p><a href=\"/quoted\">link</a></p>\n", out)

	// Inside a list item they are not; the line stays text.
	doc, err := Lex("- [q]: /item\n")
	require.NoError(t, err)
	assert.Empty(t, doc.Links)
}

func TestUnresolvedReference(t *testing.T) {
	for _, src := range []string{"[x][y]", "[y]", "![x][y]"} {
		out, err := Render(src)
		require.NoError(t, err)
		assert.Equal(t, "<p>"+src+"</p>\n", out)
		assert.NotContains(t, out, "<a")
	}
}

func TestTableAlignAttribute(t *testing.T) {
	out, err := Render("a|b\n---|---:\n1|2\n")
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	cells := map[string][]*html.Node{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "th" || n.Data == "td") {
			cells[n.Data] = append(cells[n.Data], n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	for _, tag := range []string{"th", "td"} {
		require.Len(t, cells[tag], 2, tag)
		assert.Empty(t, cells[tag][0].Attr, tag)
		assert.Equal(t, []html.Attribute{{Key: "align", Val: "right"}}, cells[tag][1].Attr, tag)
	}
}

func TestEmphasis(t *testing.T) {
	for _, tt := range []struct{ in, out string }{
		{"**bold**", "<p><strong>bold</strong></p>\n"},
		{"__bold__", "<p><strong>bold</strong></p>\n"},
		{"*em*", "<p><em>em</em></p>\n"},
		{"_em_", "<p><em>em</em></p>\n"},
		{"**a *b* c**", "<p><strong>a <em>b</em> c</strong></p>\n"},
		{"some_var_name", "<p>some_var_name</p>\n"},
		{"snake_case_ here", "<p>snake_case_ here</p>\n"},
		{"été_x_", "<p>été_x_</p>\n"},
	} {
		for name, opts := range profileOptions {
			if name == "pedantic" {
				continue
			}
			out, err := Render(tt.in, opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out, "%s %q", name, tt.in)
		}
	}
}

func TestHeadingTags(t *testing.T) {
	for n := 1; n <= 6; n++ {
		out, err := Render(strings.Repeat("#", n) + " x")
		require.NoError(t, err)
		tag := string(rune('0' + n))
		assert.Equal(t, "<h"+tag+">x</h"+tag+">\n", out)
	}
}

func TestIdempotentPlainText(t *testing.T) {
	docs := []string{
		"Tom & Jerry",
		`1 < 2 > 0 and "quoted" 'single'`,
		"AT&T &amp; &copy; &#169;",
		"first paragraph\n\nsecond & third",
	}
	for name, opts := range profileOptions {
		for _, src := range docs {
			once, err := Render(src, opts...)
			require.NoError(t, err)
			twice, err := Render(once, opts...)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "%s %q", name, src)
			assert.NotContains(t, twice, "&amp;amp;")
			assert.NotContains(t, twice, "&amp;lt;")
		}
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&#39;x&#39;&gt;&amp;amp;&lt;/a&gt;", Escape("<a href='x'>&amp;</a>"))
	assert.Equal(t, `a &amp; b &amp; &#39; &lt;&quot;'&gt;`, EscapeText(`a & b &amp; &#39; <"'>`))
	assert.Equal(t, "&amp;", EscapeText("&"))
	assert.Equal(t, "&amp;;", EscapeText("&;"))
	assert.Equal(t, "&amp;#;", EscapeText("&#;"))
	assert.Equal(t, "plain", EscapeText("plain"))
	for _, s := range []string{"&", "&amp;", "<&lt;>", `"&quot;`, "a&b;c&d", "&#x26;"} {
		once := EscapeText(s)
		assert.Equal(t, once, EscapeText(once), "%q", s)
	}
}

func TestCodeEscaping(t *testing.T) {
	out, err := Render("    &amp; <b>\n")
	require.NoError(t, err)
	assert.Equal(t, "<pre><code>&amp;amp; &lt;b&gt;</code></pre>\n", out)

	out, err = Render("`&copy;`")
	require.NoError(t, err)
	assert.Equal(t, "<p><code>&amp;copy;</code></p>\n", out)

	out, err = Render("```a\"b\nx\n```")
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"lang-a&quot;b\">x</code></pre>\n", out)
}

func TestSanitize(t *testing.T) {
	out, err := Render("<script>alert(1)</script>\n\nx <img src=y onerror=z>", WithSanitize(true))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "&lt;script&gt;")

	out, err = Render("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Equal(t, "<script>alert(1)</script>", out)
}

func TestMangledEmail(t *testing.T) {
	for _, src := range []string{"<me@example.org>", "<mailto:me@example.org>"} {
		out, err := Render(src)
		require.NoError(t, err)
		assert.NotContains(t, out, "me@example.org")

		doc, err := html.Parse(strings.NewReader(out))
		require.NoError(t, err)
		var a *html.Node
		var find func(*html.Node)
		find = func(n *html.Node) {
			if n.Type == html.ElementNode && n.Data == "a" {
				a = n
			}
			for c := n.FirstChild; c != nil && a == nil; c = c.NextSibling {
				find(c)
			}
		}
		find(doc)
		require.NotNil(t, a, out)
		require.Len(t, a.Attr, 1)
		assert.Equal(t, "mailto:me@example.org", a.Attr[0].Val)
		require.NotNil(t, a.FirstChild)
		assert.Equal(t, "me@example.org", a.FirstChild.Data)
	}
}

func TestDefaults(t *testing.T) {
	saved := Defaults()
	t.Cleanup(func() { SetDefaults(WithOptions(saved)) })

	assert.True(t, saved.GFM)
	assert.True(t, saved.Tables)
	assert.Equal(t, "lang-", saved.LangPrefix)

	SetDefaults(WithLangPrefix("language-"), WithSmartypants(true))
	out, err := Render("```go\n\"x\"\n```\n\n\"y\"")
	require.NoError(t, err)
	assert.Contains(t, out, `class="language-go"`)
	assert.Contains(t, out, "“y”")

	out, err = Render("\"y\"", WithSmartypants(false))
	require.NoError(t, err)
	assert.Equal(t, "<p>&quot;y&quot;</p>\n", out)
}

func TestHighlightSync(t *testing.T) {
	hl := func(code, lang string) string {
		if lang == "same" {
			return code
		}
		return "<b>" + strings.ToUpper(code) + "</b>"
	}
	out, err := Render("```go\na<b\n```", WithHighlight(hl))
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"lang-go\"><b>A<B</b></code></pre>\n", out)

	out, err = Render("```same\na<b\n```", WithHighlight(hl))
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"lang-same\">a&lt;b</code></pre>\n", out)
}

const threeBlocks = "```a\none\n```\n\n```b\ntwo\n```\n\n```c\nthree\n```\n"

func TestRenderAsyncWithoutHighlighter(t *testing.T) {
	called := 0
	RenderAsync(context.Background(), "*x*", func(out string, err error) {
		called++
		assert.NoError(t, err)
		assert.Equal(t, "<p><em>x</em></p>\n", out)
	})
	assert.Equal(t, 1, called, "done runs before RenderAsync returns")
}

func TestRenderAsync(t *testing.T) {
	var calls atomic.Int32
	hl := func(ctx context.Context, code, lang string) (string, error) {
		calls.Add(1)
		return "<i>" + code + "</i>", nil
	}
	var count atomic.Int32
	results := make(chan string, 2)
	RenderAsync(context.Background(), threeBlocks, func(out string, err error) {
		count.Add(1)
		assert.NoError(t, err)
		results <- out
	}, WithHighlightAsync(hl))

	select {
	case out := <-results:
		assert.Equal(t, int32(3), calls.Load())
		for _, want := range []string{
			`<pre><code class="lang-a"><i>one</i></code></pre>`,
			`<pre><code class="lang-b"><i>two</i></code></pre>`,
			`<pre><code class="lang-c"><i>three</i></code></pre>`,
		} {
			assert.Contains(t, out, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("done not called")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

func TestHighlightConcurrent(t *testing.T) {
	// Each call waits until all three are running at once.
	var wg sync.WaitGroup
	wg.Add(3)
	hl := func(ctx context.Context, code, lang string) (string, error) {
		wg.Done()
		wg.Wait()
		return strings.ToUpper(code), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := RenderContext(ctx, threeBlocks, WithHighlightAsync(hl))
	require.NoError(t, err)
	assert.Contains(t, out, ">ONE<")
	assert.Contains(t, out, ">THREE<")
}

func TestHighlightLimit(t *testing.T) {
	var cur, peak atomic.Int32
	hl := func(ctx context.Context, code, lang string) (string, error) {
		n := cur.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		cur.Add(-1)
		return "", nil
	}
	out, err := RenderContext(context.Background(), threeBlocks, WithHighlightAsync(hl), WithHighlightLimit(1))
	require.NoError(t, err)
	assert.Equal(t, int32(1), peak.Load())
	assert.Contains(t, out, `<pre><code class="lang-a">one</code></pre>`, "empty result leaves the block as it was")
}

func TestHighlightError(t *testing.T) {
	errBad := errors.New("no lexer")
	hl := func(ctx context.Context, code, lang string) (string, error) {
		if lang == "b" {
			return "", errBad
		}
		return code, nil
	}
	done := make(chan error, 1)
	RenderAsync(context.Background(), threeBlocks, func(out string, err error) {
		assert.Empty(t, out)
		done <- err
	}, WithHighlightAsync(hl))
	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, errBad))
		assert.Contains(t, err.Error(), `"b"`)
	case <-time.After(5 * time.Second):
		t.Fatal("done not called")
	}

	out, err := RenderContext(context.Background(), threeBlocks, WithHighlightAsync(hl), WithSilent(true))
	require.NoError(t, err)
	assert.Contains(t, out, "An error occurred:")
	assert.Contains(t, out, "no lexer")
}

func TestHighlightAsyncSkipsSync(t *testing.T) {
	syncCalls := 0
	out, err := RenderContext(context.Background(), "```go\nx\n```",
		WithHighlightAsync(func(ctx context.Context, code, lang string) (string, error) {
			return "<u>x</u>", nil
		}),
		WithHighlight(func(code, lang string) string {
			syncCalls++
			return "<s>x</s>"
		}))
	require.NoError(t, err)
	assert.Equal(t, 0, syncCalls)
	assert.Contains(t, out, "<u>x</u>")
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderContext(ctx, threeBlocks, WithHighlightAsync(func(ctx context.Context, code, lang string) (string, error) {
		return "", ctx.Err()
	}))
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}
