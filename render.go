// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Render converts the Markdown in src to an HTML fragment.
//
// If the options set Silent, an error is reported as an HTML
// snippet containing the escaped message, and the returned error is nil.
func Render(src string, opts ...Option) (string, error) {
	return RenderContext(context.Background(), src, opts...)
}

// RenderContext is like Render, but if the options set HighlightAsync,
// the highlighter is first run concurrently over all code blocks,
// with ctx passed to each call. Rendering starts only after every
// call has returned.
func RenderContext(ctx context.Context, src string, opts ...Option) (string, error) {
	o := resolve(opts)
	html, err := render(ctx, src, o)
	return finish(o, html, err)
}

// RenderAsync renders src and passes the result to done, which is
// called exactly once. Without HighlightAsync, done is called before
// RenderAsync returns. With it, RenderAsync returns at once and done
// is called from another goroutine after all highlighting has finished.
func RenderAsync(ctx context.Context, src string, done func(html string, err error), opts ...Option) {
	o := resolve(opts)
	run := func() {
		html, err := render(ctx, src, o)
		done(finish(o, html, err))
	}
	if o.HighlightAsync == nil {
		run()
		return
	}
	go run()
}

func render(ctx context.Context, src string, o *Options) (string, error) {
	block, inline := SelectGrammar(*o)
	return renderWith(ctx, src, o, block, inline)
}

// renderWith renders src with explicit profiles.
func renderWith(ctx context.Context, src string, o *Options, block, inline *Grammar) (string, error) {
	doc, err := lex(src, o, block)
	if err != nil {
		return "", err
	}
	if o.HighlightAsync != nil {
		if err := highlightAll(ctx, doc.Tokens, o); err != nil {
			return "", err
		}
	}
	return parse(doc, o, inline)
}

// finish applies the silent-mode policy to the result of a render.
func finish(o *Options, html string, err error) (string, error) {
	if err == nil {
		return html, nil
	}
	if o.Silent {
		o.Logger.Warn("markdown: render failed", "error", err)
		return errorHTML(err), nil
	}
	return "", errors.Wrap(err, "markdown")
}
