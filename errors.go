// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrGrammarExhausted reports that no rule of the active profile
	// matched the remaining input. The final rule of every profile
	// matches any non-empty text, so this indicates a grammar defect.
	ErrGrammarExhausted = errors.New("no grammar rule matched")

	// ErrUnbalanced reports a token stream whose start and end
	// tokens are not correctly nested.
	ErrUnbalanced = errors.New("unbalanced token stream")
)

const grammarGapHint = "Please report this input as a grammar gap."

// exhausted returns the error for src, the input left when
// no rule of g matched.
func exhausted(g *Grammar, src []rune) error {
	excerpt := src
	if len(excerpt) > 20 {
		excerpt = excerpt[:20]
	}
	err := errors.Wrapf(ErrGrammarExhausted, "%s: infinite loop on %U near %q; please report this input as a grammar gap",
		g.name, src[0], string(excerpt))
	return errors.WithHint(err, grammarGapHint)
}

func unbalanced(want Kind) error {
	return errors.Wrapf(ErrUnbalanced, "missing %s", want)
}

func unexpected(got Kind) error {
	return errors.Wrapf(ErrUnbalanced, "unexpected %s", got)
}

// errorHTML is the silent-mode rendering of err.
func errorHTML(err error) string {
	return "<p>An error occurred:</p><pre>" + Escape(err.Error()) + "</pre>"
}
