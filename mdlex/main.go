// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdlex prints the block tokens of Markdown documents.
//
// Usage:
//
//	mdlex [--no-gfm] [--no-tables] [--pedantic] [--grammar] [file...]
//
// Mdlex reads the named files, or else standard input, and prints
// one line per token followed by the link definitions.
// The --grammar flag prints the rule table of the selected
// block and inline profiles instead.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"mdwiki.dev/markdown"
)

var cli struct {
	GFM      bool     `name:"gfm" default:"true" negatable:"" help:"Use the GitHub-flavored grammar"`
	Tables   bool     `default:"true" negatable:"" help:"Recognize pipe tables"`
	Pedantic bool     `help:"Follow Markdown.pl quirks"`
	Sanitize bool     `help:"Treat raw HTML as a paragraph"`
	Grammar  bool     `help:"Print the selected grammar instead of tokens"`
	Files    []string `arg:"" optional:"" type:"path" help:"Markdown files"`
}

func main() {
	kong.Parse(&cli, kong.Name("mdlex"), kong.Description("Print the block tokens of Markdown documents."))
	opts := []markdown.Option{
		markdown.WithGFM(cli.GFM),
		markdown.WithTables(cli.Tables),
		markdown.WithPedantic(cli.Pedantic),
		markdown.WithSanitize(cli.Sanitize),
	}
	if cli.Grammar {
		o := markdown.Defaults()
		for _, opt := range opts {
			opt(&o)
		}
		block, inline := markdown.SelectGrammar(o)
		printGrammar(block)
		printGrammar(inline)
		return
	}

	exit := 0
	if len(cli.Files) == 0 {
		if err := dump(os.Stdin, opts); err != nil {
			slog.Error("mdlex", "error", err)
			exit = 1
		}
	}
	for _, file := range cli.Files {
		f, err := os.Open(file)
		if err != nil {
			slog.Error("mdlex", "error", err)
			exit = 1
			continue
		}
		if len(cli.Files) > 1 {
			fmt.Printf("== %s\n", file)
		}
		if err := dump(f, opts); err != nil {
			slog.Error("mdlex", "file", file, "error", err)
			exit = 1
		}
		f.Close()
	}
	os.Exit(exit)
}

func dump(r io.Reader, opts []markdown.Option) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	doc, err := markdown.Lex(string(data), opts...)
	if err != nil {
		return err
	}
	return markdown.Dump(os.Stdout, doc)
}

func printGrammar(g *markdown.Grammar) {
	fmt.Printf("%s:\n", g.Name())
	table := g.Table()
	for _, slot := range g.Slots() {
		fmt.Printf("\t%-12s %s\n", slot, table[slot])
	}
}
