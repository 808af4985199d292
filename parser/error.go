package parser

import "fmt"

// snippetLen caps how much reconstructed source a diagnostic carries.
const snippetLen = 30

// ParseError is the single failure kind produced by the parser. The
// first error aborts the whole parse; there is no recovery and no
// partial tree.
type ParseError struct {
	File    string
	Message string
	Pos     Position
	Snippet string
}

// Error formats the failure as message, location, and a short snippet
// of the original source. The shape is load-bearing: downstream tooling
// matches on it.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d col %d: ``%s''", e.Message, e.Pos.Line, e.Pos.Column, e.Snippet)
}

func (p *Parser) fail(message string, at Position) error {
	start := at.Offset
	if start > len(p.flat) {
		start = len(p.flat)
	}
	end := start + snippetLen
	if end > len(p.flat) {
		end = len(p.flat)
	}
	return &ParseError{
		File:    p.file,
		Message: message,
		Pos:     at,
		Snippet: p.flat[start:end],
	}
}

func (p *Parser) failHere(message string) error {
	return p.fail(message, p.cur.Pos())
}
