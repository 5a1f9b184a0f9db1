// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var tableAlignTests = []struct {
	cell  string
	align string
}{
	{"---", ""},
	{"-", ""},
	{":--", "left"},
	{"--:", "right"},
	{":-:", "center"},
	{" :---: ", "center"},
	{"  ---:", "right"},
	{":", ""},
	{"::", ""},
	{"-x-", ""},
	{"", ""},
}

func TestTableAlign(t *testing.T) {
	for _, tt := range tableAlignTests {
		if align := tableAlign(tt.cell); align != tt.align {
			t.Errorf("tableAlign(%q) = %q, want %q", tt.cell, align, tt.align)
		}
	}
}

var newTableTests = []struct {
	header string
	delim  string
	cells  []string
	align  []string
}{
	{"a | b", "--- | :-:", []string{"a", "b"}, []string{"", "center"}},
	{" a | b |", " --- | --: |", []string{"a", "b"}, []string{"", "right"}},
	{"x|y|z", ":--|---|--:", []string{"x", "y", "z"}, []string{"left", "", "right"}},
}

func TestNewTable(t *testing.T) {
	for _, tt := range newTableTests {
		tab := newTable(tt.header, tt.delim)
		if diff := cmp.Diff(tt.cells, tab.Header); diff != "" {
			t.Errorf("newTable(%q, %q) header (-want +have):\n%s", tt.header, tt.delim, diff)
		}
		if diff := cmp.Diff(tt.align, tab.Align); diff != "" {
			t.Errorf("newTable(%q, %q) align (-want +have):\n%s", tt.header, tt.delim, diff)
		}
	}
}

func TestTableRaggedRows(t *testing.T) {
	out, err := Render("| a |\n|---|\n| 1 | 2 |\n", WithGFM(true), WithTables(true))
	if err != nil {
		t.Fatal(err)
	}
	want := "<table>\n<thead>\n<tr>\n<th>a</th>\n</tr>\n</thead>\n<tbody>\n" +
		"<tr>\n<td>1</td>\n<td>2</td>\n</tr>\n</tbody>\n</table>\n"
	if out != want {
		t.Errorf("have %q\nwant %q", out, want)
	}
}
