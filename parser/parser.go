package parser

import "strings"

// Option configures a parse invocation.
type Option func(*Parser)

// WithJSX selects the JSX-like brace-delimited surface grammar instead
// of the default @-prefixed grammar. The two grammars are mutually
// exclusive within one parse.
func WithJSX() Option {
	return func(p *Parser) {
		p.jsx = true
	}
}

// WithFile records the source path on any ParseError the parse
// produces.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// Parser holds the state of one parse invocation. Invocations share
// nothing and may run concurrently on independent inputs.
type Parser struct {
	cur  *Cursor
	jsx  bool
	file string
	// flat is the reconstructed source with newline and carriage
	// return characters removed; diagnostic snippets index into it by
	// absolute offset.
	flat string
}

func newParser(fragments []string, opts ...Option) *Parser {
	p := &Parser{
		cur:  NewCursor(fragments),
		flat: strings.NewReplacer("\n", "", "\r", "").Replace(strings.Join(fragments, "")),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse consumes a fragment sequence and returns the document tree, or
// the first parse failure. The fragment sequence must satisfy the
// lexing contract: multi-character structural markers arrive as single
// atomic fragments and every newline is isolated; see package lexer.
func Parse(fragments []string, opts ...Option) (*Document, error) {
	return newParser(fragments, opts...).parseDocument()
}

// ParseCode consumes a fragment sequence as a single embedded-code
// region in the default grammar, stopping at the first top-level
// boundary character.
func ParseCode(fragments []string, opts ...Option) (*EmbeddedCode, error) {
	return newParser(fragments, opts...).parseCode()
}
