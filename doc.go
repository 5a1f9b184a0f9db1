// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package markdown converts Markdown text to an HTML fragment.
//
// Conversion has two stages. [Lex] splits the source into a flat stream of
// block tokens and collects link reference definitions. [Parse] walks the
// stream and renders each block, rendering the text inside blocks with the
// span grammar. [Render] does both.
//
// The grammar is chosen per call from the options:
//
//	GFM && Tables   block.tables   (fences, pipe tables)
//	GFM             block.gfm      (fences)
//	otherwise       block.normal
//
//	GFM && Breaks   inline.breaks  (every newline is <br>)
//	GFM             inline.gfm     (bare URLs, ~~strikethrough~~)
//	Pedantic        inline.pedantic
//	otherwise       inline.normal
//
// Each profile is an immutable table of rules. Rules are tried in a fixed
// order and the first match wins; see [Grammar].
//
// Code blocks can be highlighted synchronously with [WithHighlight], or
// concurrently before rendering with [WithHighlightAsync] and
// [RenderContext] or [RenderAsync].
package markdown
