package parser

import "strings"

// The sub-scanners below are shared by the embedded-code scanner and
// the top-level/paren scanners so that quote and comment contents never
// prematurely terminate code or markup scanning.

// quotedString consumes a quoted literal and returns it including both
// quote characters. A candidate closing quote preceded by an odd number
// of consecutive backslashes is escaped and does not close the literal.
func (p *Parser) quotedString() (string, error) {
	start := p.cur.Pos()
	cur := p.cur.Current()
	if cur == "" || (cur[0] != '"' && cur[0] != '\'') {
		return "", p.fail("not at a string", start)
	}
	quote := cur[0]

	var b strings.Builder
	b.WriteString(p.cur.Take(1))

	// Backslash runs can straddle fragment boundaries, so the count
	// carries over from one fragment to the next.
	backslashes := 0
	for {
		if p.cur.Done() {
			return "", p.fail("unterminated string", start)
		}
		frag := p.cur.Current()
		if frag == "\n" {
			b.WriteString(p.cur.Next())
			backslashes = 0
			continue
		}
		closed := -1
		for i := 0; i < len(frag) && closed < 0; i++ {
			switch {
			case frag[i] == '\\':
				backslashes++
			case frag[i] == quote && backslashes%2 == 0:
				closed = i
			default:
				backslashes = 0
			}
		}
		if closed >= 0 {
			b.WriteString(p.cur.Take(closed + 1))
			return b.String(), nil
		}
		b.WriteString(p.cur.Next())
	}
}

// lineComment consumes a // comment through the end of the line,
// newline included. End of input inside the comment just ends it.
func (p *Parser) lineComment() string {
	var b strings.Builder
	b.WriteString(p.cur.Next()) // the // marker fragment
	for !p.cur.Done() {
		frag := p.cur.Next()
		b.WriteString(frag)
		if frag == "\n" {
			break
		}
	}
	return b.String()
}

// blockComment consumes a /* ... */ comment, both markers included.
func (p *Parser) blockComment() (string, error) {
	start := p.cur.Pos()
	var b strings.Builder
	b.WriteString(p.cur.Next()) // the /* marker fragment
	for {
		if p.cur.Done() {
			return "", p.fail("unterminated comment", start)
		}
		frag := p.cur.Next()
		b.WriteString(frag)
		if frag == "*/" {
			return b.String(), nil
		}
	}
}
