package parser

import (
	"regexp"
	"strings"
)

// spreadMarker opens a spread-insertion region; it closes with a plain
// brace, like {.
const spreadMarker = "{..."

// codeBoundary holds the characters that end an embedded-code run at
// the top level of the default grammar. Inside an open delimiter these
// are plain code text.
const codeBoundary = " \t\r\n<>/,;)]}"

var (
	codeRunRe      = regexp.MustCompile(`^[^ ` + "\t\r\n" + `<>/,;()\[\]{}"']+`)
	balancedRunRe  = regexp.MustCompile(`^[^()\[\]{}"'<` + "\n" + `]+`)
	openDelimClose = map[byte]byte{'(': ')', '[': ']', '{': '}'}
)

func isCodeBoundary(ch byte) bool {
	return strings.IndexByte(codeBoundary, ch) >= 0
}

// codeAccum collects embedded-code segments. Adjacent raw characters
// coalesce into one TextSegment; a nested element, quoted string, or
// comment scan starts a new segment.
type codeAccum struct {
	segs []Node
	buf  strings.Builder
	pos  Position
}

func (a *codeAccum) text(s string, at Position) {
	if a.buf.Len() == 0 {
		a.pos = at
	}
	a.buf.WriteString(s)
}

func (a *codeAccum) flush() {
	if a.buf.Len() > 0 {
		a.segs = append(a.segs, TextSegment{Text: a.buf.String(), Pos: a.pos})
		a.buf.Reset()
	}
}

func (a *codeAccum) splice(n Node) {
	a.flush()
	a.segs = append(a.segs, n)
}

// parseCode captures a run of host-language code in the default
// grammar, stopping at the first boundary character that is not inside
// an open string, comment, or delimiter.
func (p *Parser) parseCode() (*EmbeddedCode, error) {
	start := p.cur.Pos()
	var a codeAccum
	for !p.cur.Done() {
		cur := p.cur.Current()
		ch := cur[0]
		switch {
		case ch == '(' || ch == '[' || ch == '{':
			if err := p.parseBalanced(&a); err != nil {
				return nil, err
			}
		case ch == '"' || ch == '\'':
			a.flush()
			at := p.cur.Pos()
			s, err := p.quotedString()
			if err != nil {
				return nil, err
			}
			a.text(s, at)
		case isCodeBoundary(ch):
			a.flush()
			if len(a.segs) == 0 {
				return nil, p.fail("not in embedded code", start)
			}
			return &EmbeddedCode{Segments: a.segs}, nil
		default:
			at := p.cur.Pos()
			run := p.cur.Split(codeRunRe)
			if run == "" {
				run = p.cur.Take(1)
			}
			a.text(run, at)
		}
	}
	a.flush()
	if len(a.segs) == 0 {
		return nil, p.fail("not in embedded code", start)
	}
	return &EmbeddedCode{Segments: a.segs}, nil
}

// parseBalanced consumes a delimited region, both delimiters included,
// until the matching close is found at this nesting depth. Strings and
// comments are scanned so their contents cannot close the region, and
// markup encountered inside the region is parsed and spliced in as an
// element segment.
func (p *Parser) parseBalanced(a *codeAccum) error {
	start := p.cur.Pos()
	cur := p.cur.Current()
	var close byte
	if cur == spreadMarker {
		close = '}'
		a.text(p.cur.Next(), start)
	} else {
		close = openDelimClose[cur[0]]
		a.text(p.cur.Take(1), start)
	}

	for {
		if p.cur.Done() {
			return p.fail("unterminated parentheses", start)
		}
		cur = p.cur.Current()
		if cur == "\n" {
			at := p.cur.Pos()
			a.text(p.cur.Next(), at)
			continue
		}
		if cur == "//" {
			a.flush()
			at := p.cur.Pos()
			a.text(p.lineComment(), at)
			continue
		}
		if cur == "/*" {
			a.flush()
			at := p.cur.Pos()
			s, err := p.blockComment()
			if err != nil {
				return err
			}
			a.text(s, at)
			continue
		}
		ch := cur[0]
		switch {
		case ch == '"' || ch == '\'':
			a.flush()
			at := p.cur.Pos()
			s, err := p.quotedString()
			if err != nil {
				return err
			}
			a.text(s, at)
		case p.atElementOpen():
			el, err := p.parseElement()
			if err != nil {
				return err
			}
			a.splice(el)
		case ch == '(' || ch == '[' || ch == '{':
			if err := p.parseBalanced(a); err != nil {
				return err
			}
		case ch == close:
			at := p.cur.Pos()
			a.text(p.cur.Take(1), at)
			return nil
		default:
			at := p.cur.Pos()
			run := p.cur.Split(balancedRunRe)
			if run == "" {
				// a stray delimiter byte that belongs to no pair
				run = p.cur.Take(1)
			}
			a.text(run, at)
		}
	}
}

// parseBraceCode captures a brace-delimited code region in the JSX
// grammar. The opening marker and the trailing close brace are stripped
// from the captured text, and the first segment's column is moved past
// the marker so locations still point into the original source. spread
// reports whether the region opened with the spread marker.
func (p *Parser) parseBraceCode() (code *EmbeddedCode, spread bool, err error) {
	start := p.cur.Pos()
	markerLen := 1
	if p.cur.Current() == spreadMarker {
		markerLen = len(spreadMarker)
		spread = true
	}

	var a codeAccum
	if err := p.parseBalanced(&a); err != nil {
		return nil, false, err
	}
	a.flush()
	segs := a.segs

	// The region always opens with text, so the first segment carries
	// the marker.
	if first, ok := segs[0].(TextSegment); ok {
		first.Text = first.Text[markerLen:]
		first.Pos.Column += markerLen
		if first.Text == "" {
			segs = segs[1:]
		} else {
			segs[0] = first
		}
	}
	if len(segs) > 0 {
		if last, ok := segs[len(segs)-1].(TextSegment); ok {
			last.Text = strings.TrimSuffix(last.Text, "}")
			if last.Text == "" {
				segs = segs[:len(segs)-1]
			} else {
				segs[len(segs)-1] = last
			}
		}
	}
	if len(segs) == 0 {
		return nil, false, p.fail("not in embedded code", start)
	}
	return &EmbeddedCode{Segments: segs}, spread, nil
}
