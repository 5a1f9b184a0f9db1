// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// highlightAll runs o.HighlightAsync over every code token in tokens
// concurrently and waits for all of them. Each call writes only its
// own token, and Wait orders those writes before any later rendering.
// A result that is empty or unchanged leaves the token as it was.
func highlightAll(ctx context.Context, tokens []Token, o *Options) error {
	g, ctx := errgroup.WithContext(ctx)
	if o.HighlightLimit > 0 {
		g.SetLimit(o.HighlightLimit)
	}
	n := 0
	for _, t := range tokens {
		code, ok := t.(*Code)
		if !ok || code.Escaped {
			continue
		}
		n++
		g.Go(func() error {
			out, err := o.HighlightAsync(ctx, code.Text, code.Lang)
			if err != nil {
				return errors.Wrapf(err, "highlight %q block", code.Lang)
			}
			if out != "" && out != code.Text {
				code.Text = out
				code.Escaped = true
			}
			return nil
		})
	}
	o.Logger.Debug("markdown: highlighting", "blocks", n, "limit", o.HighlightLimit)
	return g.Wait()
}
