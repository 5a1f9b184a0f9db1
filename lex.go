// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"unicode"
	"unicode/utf8"
)

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isLetterDigit reports whether c is an ASCII letter or digit.
func isLetterDigit(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

// isWordByte reports whether c matches \w.
func isWordByte(c byte) bool {
	return isLetterDigit(c) || c == '_'
}

// isWordRune reports whether r is a letter, digit or underscore.
// Unlike \w it accepts non-ASCII letters, so that an underscore
// inside a word in any script does not open emphasis.
func isWordRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isWordByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isSpaceByte reports whether c is ASCII white space.
func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// runeLen is the number of runes in s.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// A lexer turns source text into block tokens.
type lexer struct {
	opts   *Options
	rules  *Grammar
	tokens []Token
	links  LinkTable
}

// A blockStep is one entry of the block tokenizer's rule order.
// The handler appends tokens for the match and returns the number
// of runes of input it consumed.
type blockStep struct {
	rule  string
	scope scope
	emit  func(l *lexer, caps []string, top bool) (int, error)
}

// scope restricts a step to top-level or nested input.
type scope int

const (
	anywhere scope = iota
	topOnly
	nestedOnly
)

// blockSteps is the order in which block rules are tried.
// The first rule that matches wins, so the order settles
// every ambiguity between constructs.
var blockSteps []blockStep

func init() {
	blockSteps = []blockStep{
		{"newline", anywhere, lexNewline},
		{"code", anywhere, lexCode},
		{"fences", anywhere, lexFences},
		{"heading", anywhere, lexHeading},
		{"nptable", topOnly, lexNPTable},
		{"lheading", anywhere, lexLHeading},
		{"hr", anywhere, lexHr},
		{"blockquote", anywhere, lexBlockquote},
		{"list", anywhere, lexList},
		{"html", anywhere, lexHTML},
		{"def", topOnly, lexDef},
		{"table", topOnly, lexTable},
		{"paragraph", topOnly, lexParagraph},
		{"text", nestedOnly, lexText},
	}
}

func (l *lexer) push(t Token) {
	l.tokens = append(l.tokens, t)
}

// token tokenizes src, appending to l.tokens.
// Link reference definitions are only recognized when top is set.
func (l *lexer) token(src string, top bool) error {
	rs := []rune(blankSpaceLines(src))
Scan:
	for len(rs) > 0 {
		for _, step := range blockSteps {
			if step.scope == topOnly && !top || step.scope == nestedOnly && top {
				continue
			}
			caps := l.rules.rule(step.rule).exec(rs)
			if caps == nil {
				continue
			}
			n, err := step.emit(l, caps, top)
			if err != nil {
				return err
			}
			if n <= 0 {
				continue
			}
			rs = rs[n:]
			continue Scan
		}
		return exhausted(l.rules, rs)
	}
	return nil
}

// Lex tokenizes src into a Document using the block profile
// selected by the options.
func Lex(src string, opts ...Option) (*Document, error) {
	o := resolve(opts)
	block, _ := SelectGrammar(*o)
	return lex(src, o, block)
}

func lex(src string, o *Options, block *Grammar) (*Document, error) {
	l := &lexer{opts: o, rules: block, links: LinkTable{}}
	if err := l.token(normalize(src), true); err != nil {
		return nil, err
	}
	o.Logger.Debug("markdown: lexed", "grammar", block.name, "tokens", len(l.tokens), "links", len(l.links))
	return &Document{Tokens: l.tokens, Links: l.links}, nil
}

func lexNewline(l *lexer, caps []string, top bool) (int, error) {
	if len(caps[0]) > 1 {
		l.push(&Space{})
	}
	return len(caps[0]), nil
}

func lexText(l *lexer, caps []string, top bool) (int, error) {
	l.push(&Text{Text: caps[0]})
	return runeLen(caps[0]), nil
}
