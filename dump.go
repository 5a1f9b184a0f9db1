// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// FormatToken returns a one-line description of t,
// its kind followed by its fields.
func FormatToken(t Token) string {
	var b strings.Builder
	b.WriteString(t.Kind().String())
	switch t := t.(type) {
	case *Code:
		if t.Lang != "" {
			fmt.Fprintf(&b, " lang=%s", t.Lang)
		}
		if t.Escaped {
			b.WriteString(" escaped")
		}
		fmt.Fprintf(&b, " %s", strconv.Quote(t.Text))
	case *Heading:
		fmt.Fprintf(&b, " %d %s", t.Depth, strconv.Quote(t.Text))
	case *Table:
		fmt.Fprintf(&b, " header=%s align=%s", quoteAll(t.Header), quoteAll(t.Align))
		for _, row := range t.Cells {
			fmt.Fprintf(&b, " row=%s", quoteAll(row))
		}
	case *ListStart:
		if t.Ordered {
			b.WriteString(" ordered")
		}
	case *HTML:
		if t.Pre {
			b.WriteString(" pre")
		}
		fmt.Fprintf(&b, " %s", strconv.Quote(t.Text))
	case *Paragraph:
		fmt.Fprintf(&b, " %s", strconv.Quote(t.Text))
	case *Text:
		fmt.Fprintf(&b, " %s", strconv.Quote(t.Text))
	}
	return b.String()
}

func quoteAll(list []string) string {
	q := make([]string, len(list))
	for i, s := range list {
		q[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(q, " ") + "]"
}

// Dump writes doc to w, one token per line, with container
// contents indented, followed by the link definitions sorted by label.
func Dump(w io.Writer, doc *Document) error {
	var b strings.Builder
	depth := 0
	for _, t := range doc.Tokens {
		switch t.Kind() {
		case KindBlockquoteEnd, KindListEnd, KindListItemEnd:
			depth--
		}
		b.WriteString(strings.Repeat("  ", max(depth, 0)))
		b.WriteString(FormatToken(t))
		b.WriteByte('\n')
		switch t.Kind() {
		case KindBlockquoteStart, KindListStart, KindListItemStart, KindLooseListItemStart:
			depth++
		}
	}
	labels := make([]string, 0, len(doc.Links))
	for label := range doc.Links {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		l := doc.Links[label]
		fmt.Fprintf(&b, "def %s %s", strconv.Quote(label), strconv.Quote(l.Href))
		if l.Title != "" {
			fmt.Fprintf(&b, " %s", strconv.Quote(l.Title))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
