// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"maps"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"
)

// A rule is a named pattern anchored at the start of the remaining input.
// The zero rule (and any rule without a pattern) never matches.
type rule struct {
	name string
	re   *regexp2.Regexp
}

// noop is the placeholder for constructs a profile does not recognize.
var noop = rule{name: "noop"}

func newRule(name, expr string) rule {
	return rule{name: name, re: regexp2.MustCompile(expr, regexp2.ECMAScript)}
}

// exec matches r against the start of src and returns the captured
// groups, with caps[0] the whole match, or nil if r does not match.
// Groups that did not participate in the match are empty strings.
func (r rule) exec(src []rune) []string {
	if r.re == nil {
		return nil
	}
	m, err := r.re.FindRunesMatch(src)
	if err != nil || m == nil || m.Index != 0 {
		return nil
	}
	groups := m.Groups()
	caps := make([]string, len(groups))
	for i := range groups {
		caps[i] = groups[i].String()
	}
	return caps
}

// A Grammar is an immutable profile: a closed table from rule slot
// ("heading", "em", ...) to the pattern used for that slot.
// Profiles are built with derive and never modified afterward.
type Grammar struct {
	name  string
	rules map[string]rule
}

// Name returns the profile name, such as "block.gfm".
func (g *Grammar) Name() string { return g.name }

func (g *Grammar) rule(slot string) rule {
	r, ok := g.rules[slot]
	if !ok {
		panic(errors.AssertionFailedf("grammar %s has no %q rule", g.name, slot))
	}
	return r
}

// Table returns the profile as a map from slot to rule name.
// A slot that the profile does not recognize maps to "noop".
func (g *Grammar) Table() map[string]string {
	t := make(map[string]string, len(g.rules))
	for slot, r := range g.rules {
		t[slot] = r.name
	}
	return t
}

// Slots returns the slot names in sorted order.
func (g *Grammar) Slots() []string {
	slots := make([]string, 0, len(g.rules))
	for slot := range g.rules {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}

// An override replaces the rule in one slot of a derived profile.
type override struct {
	slot string
	rule rule
}

func with(slot string, r rule) override {
	return override{slot, r}
}

// newGrammar returns a root profile with the given slots.
func newGrammar(name string, slots ...override) *Grammar {
	g := &Grammar{name: name, rules: make(map[string]rule, len(slots))}
	for _, o := range slots {
		g.rules[o.slot] = o.rule
	}
	return g
}

// derive returns a new profile that starts from base and replaces
// the named slots. Overriding a slot base does not have is a programming error.
func derive(name string, base *Grammar, overrides ...override) *Grammar {
	g := &Grammar{name: name, rules: maps.Clone(base.rules)}
	for _, o := range overrides {
		if _, ok := base.rules[o.slot]; !ok {
			panic(errors.AssertionFailedf("grammar %s: cannot override unknown rule %q", name, o.slot))
		}
		g.rules[o.slot] = o.rule
	}
	return g
}

// own places r in the slot of the same name.
func own(r rule) override {
	return override{r.name, r}
}

// unset declares a slot that the profile does not recognize.
func unset(slot string) override {
	return override{slot, noop}
}

// Pattern fragments shared between block rules.
// They carry no ^ anchor so that they can be embedded in lookaheads.
const (
	bulletExpr = `(?:[*+-]|\d+\.)`

	// blockTagExpr matches a tag name that may open an HTML block.
	// Inline-level elements never do.
	blockTagExpr = `(?!(?:a|em|strong|small|s|cite|q|dfn|abbr|data|time|code` +
		`|var|samp|kbd|sub|sup|i|b|u|mark|ruby|rt|rp|bdi|bdo` +
		`|span|br|wbr|ins|del|img)\b)\w+(?!:/|@)\b`

	hrExpr         = `( *[-*_]){3,} *(?:\n+|$)`
	headingExpr    = ` *(#{1,6})(?!#) *([^\n]+?) *#* *(?:\n+|$)`
	lheadingExpr   = `([^\n]+)\n *(=|-){3,} *\n*`
	blockquoteExpr = `( *>[^\n]+(\n[^\n]+)*\n*)+`
	defExpr        = ` *\[([^\]]+)\]: *<?([^\s>]+)>?(?: +["(]([^\n]+)[")])? *(?:\n+|$)`

	listExpr = `^( *)(` + bulletExpr + `) [\s\S]+?(?:` +
		`\n+(?=(?: *[-*_]){3,} *(?:\n+|$))` +
		`|\n{2,}(?! )(?!\1` + bulletExpr + ` )\n*` +
		`|\s*$)`

	htmlExpr = `^ *(?:` +
		`<!--[\s\S]*?-->` +
		`|<(` + blockTagExpr + `)[\s\S]+?<\/\1>` +
		`|<` + blockTagExpr + `(?:"[^"]*"|'[^']*'|[^'">])*?>` +
		`) *(?:\n{2,}|\s*$)`
)

// fencesExpr returns the fenced code pattern; ref is the number
// of the group holding the opening fence.
func fencesExpr(ref int) string {
	return " *(`{3,}|~{3,}) *(\\S+)? *\\n([\\s\\S]+?)\\s*\\" + strconv.Itoa(ref) + " *(?:\\n+|$)"
}

// paragraphExpr returns the paragraph pattern. A paragraph continues
// line by line until a line starts one of the interrupting constructs.
func paragraphExpr(fences bool) string {
	interrupt := hrExpr + `|` + headingExpr + `|` + lheadingExpr + `|` +
		blockquoteExpr + `|<` + blockTagExpr + `|` + defExpr
	if fences {
		// Group 1 is the paragraph itself, so the fence is group 2.
		interrupt = fencesExpr(2) + `|` + interrupt
	}
	return `^((?:[^\n]+\n?(?!` + interrupt + `))+)\n*`
}

// itemRule splits a matched list into its items.
var itemRule = regexp2.MustCompile(`^( *)(`+bulletExpr+`) [^\n]*(?:\n(?!\1`+bulletExpr+` )[^\n]*)*`,
	regexp2.ECMAScript|regexp2.Multiline)

var blockBase = newGrammar("block",
	own(newRule("newline", `^\n+`)),
	own(newRule("code", `^( {4}[^\n]+\n*)+`)),
	unset("fences"),
	own(newRule("hr", `^`+hrExpr)),
	own(newRule("heading", `^`+headingExpr)),
	unset("nptable"),
	own(newRule("lheading", `^`+lheadingExpr)),
	own(newRule("blockquote", `^`+blockquoteExpr)),
	own(newRule("list", listExpr)),
	own(newRule("html", htmlExpr)),
	own(newRule("def", `^`+defExpr)),
	unset("table"),
	own(newRule("paragraph", paragraphExpr(false))),
	own(newRule("text", `^[^\n]+`)),
)

// Block profiles.
var (
	// BlockNormal is the original Markdown block grammar.
	BlockNormal = derive("block.normal", blockBase)

	// BlockGFM adds fenced code, which may also interrupt a paragraph.
	BlockGFM = derive("block.gfm", BlockNormal,
		with("fences", newRule("gfm.fences", `^`+fencesExpr(1))),
		with("paragraph", newRule("gfm.paragraph", paragraphExpr(true))),
	)

	// BlockTables adds pipe tables to BlockGFM.
	BlockTables = derive("block.tables", BlockGFM,
		with("nptable", newRule("tables.nptable",
			`^ *(\S.*\|.*)\n *([-:]+ *\|[-| :]*)\n((?:.*\|.*(?:\n|$))*)\n*`)),
		with("table", newRule("tables.table",
			`^ *\|(.+)\n *\|( *[-:]+[-| :]*)\n((?: *\|.*(?:\n|$))*)\n*`)),
	)
)

const bt = "`"

var inlineBase = newGrammar("inline",
	own(newRule("escape", `^\\([\\`+bt+`*{}\[\]()#+\-.!_>])`)),
	own(newRule("autolink", `^<([^ >]+(@|:\/)[^ >]+)>`)),
	unset("url"),
	own(newRule("tag", `^(?:<!--[\s\S]*?-->|<\/?\w+(?:"[^"]*"|'[^']*'|[^'">])*?>)`)),
	own(newRule("link", `^!?\[(`+insideExpr+`)\]\(`+hrefExpr+`\)`)),
	own(newRule("reflink", `^!?\[(`+insideExpr+`)\]\s*\[([^\]]*)\]`)),
	own(newRule("nolink", `^!?\[((?:\[[^\]]*\]|[^\[\]])*)\]`)),
	own(newRule("strong", `^(?:__([\s\S]+?)__\b|\*\*([\s\S]+?)\*\*(?!\*))`)),
	own(newRule("em", `^(?:\b_((?:__|[\s\S])+?)_\b|\*((?:\*\*|[\s\S])+?)\*(?!\*))`)),
	own(newRule("code", `^(`+bt+`+)\s*([\s\S]*?[^`+bt+`])\s*\1(?!`+bt+`)`)),
	own(newRule("br", `^ {2,}\n(?!\s*$)`)),
	unset("del"),
	own(newRule("text", `^[\s\S]+?(?=[\\<!\[_*`+bt+`]| {2,}\n|$)`)),
)

const (
	insideExpr = `(?:\[[^\]]*\]|[^\]]|\](?=[^\[]*\]))*`
	hrefExpr   = `\s*<?(.*?)>?(?:\s+['"]([\s\S]*?)['"])?\s*`
)

// Inline profiles.
var (
	// InlineNormal is the original Markdown span grammar.
	InlineNormal = derive("inline.normal", inlineBase)

	// InlinePedantic requires emphasis to hug its content,
	// and drops the word-boundary checks on underscores.
	InlinePedantic = derive("inline.pedantic", InlineNormal,
		with("strong", newRule("pedantic.strong",
			`^(?:__(?=\S)([\s\S]*?\S)__(?!_)|\*\*(?=\S)([\s\S]*?\S)\*\*(?!\*))`)),
		with("em", newRule("pedantic.em",
			`^(?:_(?=\S)([\s\S]*?\S)_(?!_)|\*(?=\S)([\s\S]*?\S)\*(?!\*))`)),
	)

	// InlineGFM adds bare URLs, strikethrough and the ~ | escapes.
	InlineGFM = derive("inline.gfm", InlineNormal,
		with("escape", newRule("gfm.escape", `^\\([\\`+bt+`*{}\[\]()#+\-.!_>~|])`)),
		with("url", newRule("gfm.url", `^(https?:\/\/[^\s<]+[^<.,:;"')\]\s])`)),
		with("del", newRule("gfm.del", `^~~(?=\S)([\s\S]*?\S)~~`)),
		with("text", newRule("gfm.text", `^[\s\S]+?(?=[\\<!\[_*`+bt+`~]|https?://| {2,}\n|$)`)),
	)

	// InlineBreaks turns every newline into a <br>.
	InlineBreaks = derive("inline.breaks", InlineGFM,
		with("br", newRule("breaks.br", `^ *\n(?!\s*$)`)),
		with("text", newRule("breaks.text", `^[\s\S]+?(?=[\\<!\[_*`+bt+`~]|https?://| *\n|$)`)),
	)
)

// SelectGrammar returns the block and inline profiles for o.
// Tables and breaks only take effect with GFM;
// pedantic only selects a profile without it.
func SelectGrammar(o Options) (block, inline *Grammar) {
	block, inline = BlockNormal, InlineNormal
	if o.GFM {
		block, inline = BlockGFM, InlineGFM
		if o.Tables {
			block = BlockTables
		}
		if o.Breaks {
			inline = InlineBreaks
		}
	} else if o.Pedantic {
		inline = InlinePedantic
	}
	return block, inline
}
