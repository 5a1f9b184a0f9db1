// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"regexp"
	"strings"
)

var (
	cellSep     = regexp.MustCompile(` *\| *`)
	headerTrim  = regexp.MustCompile(`^ *| *\| *$`)
	delimTrim   = regexp.MustCompile(`^ *|\| *$`)
	rowTrim     = regexp.MustCompile(`^ *\| *| *\| *$`)
	pipedBodyNL = regexp.MustCompile(`(?: *\| *)?\n$`)
)

// lexNPTable handles a table whose rows need not start with a pipe.
func lexNPTable(l *lexer, caps []string, top bool) (int, error) {
	t := newTable(caps[1], caps[2])
	for _, row := range strings.Split(strings.TrimSuffix(caps[3], "\n"), "\n") {
		t.Cells = append(t.Cells, cellSep.Split(row, -1))
	}
	l.push(t)
	return runeLen(caps[0]), nil
}

// lexTable handles a table whose rows start with a pipe.
func lexTable(l *lexer, caps []string, top bool) (int, error) {
	t := newTable(caps[1], caps[2])
	body := pipedBodyNL.ReplaceAllString(caps[3], "")
	for _, row := range strings.Split(body, "\n") {
		t.Cells = append(t.Cells, cellSep.Split(rowTrim.ReplaceAllString(row, ""), -1))
	}
	l.push(t)
	return runeLen(caps[0]), nil
}

func newTable(header, delim string) *Table {
	t := &Table{
		Header: cellSep.Split(headerTrim.ReplaceAllString(header, ""), -1),
	}
	for _, cell := range cellSep.Split(delimTrim.ReplaceAllString(delim, ""), -1) {
		t.Align = append(t.Align, tableAlign(cell))
	}
	return t
}

// tableAlign classifies a delimiter cell:
// ---: is right, :---: is center, :--- is left,
// and anything else has no alignment.
func tableAlign(cell string) string {
	cell = strings.Trim(cell, " ")
	l := strings.HasPrefix(cell, ":")
	r := strings.HasSuffix(cell, ":")
	dashes := strings.TrimSuffix(strings.TrimPrefix(cell, ":"), ":")
	if dashes == "" || strings.Trim(dashes, "-") != "" {
		return ""
	}
	switch {
	case l && r:
		return "center"
	case l:
		return "left"
	case r:
		return "right"
	}
	return ""
}

func (p *parser) table(t *Table) error {
	p.w.html("<table>\n<thead>\n<tr>\n")
	for i, cell := range t.Header {
		if err := p.cell("th", cell, t.align(i)); err != nil {
			return err
		}
	}
	p.w.html("</tr>\n</thead>\n<tbody>\n")
	for _, row := range t.Cells {
		p.w.html("<tr>\n")
		for i, cell := range row {
			if err := p.cell("td", cell, t.align(i)); err != nil {
				return err
			}
		}
		p.w.html("</tr>\n")
	}
	p.w.html("</tbody>\n</table>\n")
	return nil
}

func (p *parser) cell(tag, text, align string) error {
	p.w.html("<", tag)
	if align != "" {
		p.w.html(` align="`, align, `"`)
	}
	p.w.html(">")
	if err := p.inline.render(p.w, text); err != nil {
		return err
	}
	p.w.html("</", tag, ">\n")
	return nil
}

// align returns the alignment of column i.
// Rows may have more cells than the delimiter row has columns.
func (t *Table) align(i int) string {
	if i < len(t.Align) {
		return t.Align[i]
	}
	return ""
}
