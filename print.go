// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "bytes"

// A printer accumulates HTML output.
type printer struct {
	buf bytes.Buffer
}

// html writes raw HTML.
func (p *printer) html(list ...string) {
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

// text writes text, escaping it for HTML content or a quoted attribute.
func (p *printer) text(list ...string) {
	for _, s := range list {
		p.buf.WriteString(EscapeText(s))
	}
}

// code writes text with every special character escaped.
func (p *printer) code(list ...string) {
	for _, s := range list {
		htmlEscaper.WriteString(&p.buf, s)
	}
}

func (p *printer) String() string {
	return p.buf.String()
}
