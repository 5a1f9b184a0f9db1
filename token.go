// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strconv"

// A Kind identifies the type of a block token.
type Kind int

const (
	KindSpace Kind = iota
	KindCode
	KindHeading
	KindTable
	KindHr
	KindBlockquoteStart
	KindBlockquoteEnd
	KindListStart
	KindListItemStart
	KindLooseListItemStart
	KindListItemEnd
	KindListEnd
	KindHTML
	KindParagraph
	KindText
)

var kindNames = [...]string{
	KindSpace:              "space",
	KindCode:               "code",
	KindHeading:            "heading",
	KindTable:              "table",
	KindHr:                 "hr",
	KindBlockquoteStart:    "blockquote_start",
	KindBlockquoteEnd:      "blockquote_end",
	KindListStart:          "list_start",
	KindListItemStart:      "list_item_start",
	KindLooseListItemStart: "loose_list_item_start",
	KindListItemEnd:        "list_item_end",
	KindListEnd:            "list_end",
	KindHTML:               "html",
	KindParagraph:          "paragraph",
	KindText:               "text",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Token is one element of the flat block token stream.
// Containers are not nested: a *BlockquoteStart, *ListStart or
// *ListItemStart is followed, later in the stream, by its matching end token.
type Token interface {
	Kind() Kind
}

// A Space token records a run of blank lines.
type Space struct{}

// A Code token is an indented or fenced code block.
// Escaped reports that Text was replaced by a highlighter
// and is already safe HTML.
type Code struct {
	Lang    string
	Text    string
	Escaped bool
}

// A Heading token is an ATX (# title) or setext (title over ===) heading.
type Heading struct {
	Depth int // 1 to 6
	Text  string
}

// A Table token is a pipe table. Align holds "left", "right",
// "center" or "" for each column.
type Table struct {
	Header []string
	Align  []string
	Cells  [][]string
}

type Hr struct{}

type BlockquoteStart struct{}

type BlockquoteEnd struct{}

type ListStart struct {
	Ordered bool
}

// A ListItemStart token opens a list item.
// The content of a loose item is wrapped in paragraphs.
type ListItemStart struct {
	Loose bool
}

type ListItemEnd struct{}

type ListEnd struct{}

// An HTML token is a raw HTML block.
// Pre reports a <pre> or <script> block, which is emitted unchanged.
type HTML struct {
	Pre  bool
	Text string
}

type Paragraph struct {
	Text string
}

// A Text token is a line of text inside a list item or other container.
type Text struct {
	Text string
}

func (*Space) Kind() Kind           { return KindSpace }
func (*Code) Kind() Kind            { return KindCode }
func (*Heading) Kind() Kind         { return KindHeading }
func (*Table) Kind() Kind           { return KindTable }
func (*Hr) Kind() Kind              { return KindHr }
func (*BlockquoteStart) Kind() Kind { return KindBlockquoteStart }
func (*BlockquoteEnd) Kind() Kind   { return KindBlockquoteEnd }
func (*ListStart) Kind() Kind       { return KindListStart }
func (*ListItemEnd) Kind() Kind     { return KindListItemEnd }
func (*ListEnd) Kind() Kind         { return KindListEnd }
func (*HTML) Kind() Kind            { return KindHTML }
func (*Paragraph) Kind() Kind       { return KindParagraph }
func (*Text) Kind() Kind            { return KindText }

func (t *ListItemStart) Kind() Kind {
	if t.Loose {
		return KindLooseListItemStart
	}
	return KindListItemStart
}

// A Document is the result of block tokenizing:
// the token stream and the link reference definitions it contained.
type Document struct {
	Tokens []Token
	Links  LinkTable
}
