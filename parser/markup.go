package parser

import "regexp"

var (
	identRe         = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*`)
	ltRe            = regexp.MustCompile(`^<`)
	eqRe            = regexp.MustCompile(`^=`)
	spaceRe         = regexp.MustCompile(`^[ \t\r]+`)
	topRunRe        = regexp.MustCompile(`^[^<"'` + "\n" + `]+`)
	contentRunAtRe  = regexp.MustCompile(`^[^<@` + "\n" + `]+`)
	contentRunJSXRe = regexp.MustCompile(`^[^<{` + "\n" + `]+`)
)

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// atElementOpen reports whether the cursor sits on a < followed by an
// identifier start, looking into the next fragment when the < ends the
// current one. Close-tag and comment markers are atomic fragments and
// never match.
func (p *Parser) atElementOpen() bool {
	cur := p.cur.Current()
	if cur == "" || cur[0] != '<' {
		return false
	}
	if len(cur) > 1 {
		return isIdentStart(cur[1])
	}
	next := p.cur.PeekNext()
	return next != "" && isIdentStart(next[0])
}

// parseDocument alternates between accumulating raw host-language text
// and parsing elements. Strings and comments are scanned so that a <
// inside them does not open an element.
func (p *Parser) parseDocument() (*Document, error) {
	var a codeAccum
	for !p.cur.Done() {
		cur := p.cur.Current()
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
				return nil, err
			}
			a.text(s, at)
			continue
		}
		if cur == "<!--" {
			comment, err := p.parseMarkupComment()
			if err != nil {
				return nil, err
			}
			a.splice(comment)
			continue
		}
		switch ch := cur[0]; {
		case ch == '"' || ch == '\'':
			a.flush()
			at := p.cur.Pos()
			s, err := p.quotedString()
			if err != nil {
				return nil, err
			}
			a.text(s, at)
		case ch == '<':
			el, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			a.splice(el)
		default:
			at := p.cur.Pos()
			run := p.cur.Split(topRunRe)
			if run == "" {
				run = p.cur.Take(1)
			}
			a.text(run, at)
		}
	}
	a.flush()
	return &Document{Segments: a.segs}, nil
}

// parseElement parses an element from its open marker through its close
// tag, or through /> for a self-closing element.
func (p *Parser) parseElement() (*Element, error) {
	pos := p.cur.Pos()
	if p.cur.Split(ltRe) == "" {
		return nil, p.fail("bad element name", pos)
	}
	tag := p.cur.Split(identRe)
	if tag == "" {
		return nil, p.failHere("bad element name")
	}
	el := &Element{Tag: tag, Pos: pos}

	for {
		p.skipSpace()
		if p.cur.Done() {
			return nil, p.fail("unterminated start node", pos)
		}
		cur := p.cur.Current()
		if cur == "/>" {
			p.cur.Next()
			return el, nil
		}
		if cur[0] == '>' {
			p.cur.Take(1)
			break
		}
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		el.Attributes = append(el.Attributes, attr)
	}

	content, err := p.parseContent(pos)
	if err != nil {
		return nil, err
	}
	el.Content = content

	closePos := p.cur.Pos()
	p.cur.Next() // the </ marker
	closeName := p.cur.Split(identRe)
	if closeName != el.Tag {
		return nil, p.fail("mismatched open and close tags", closePos)
	}
	if p.cur.Done() || p.cur.Current()[0] != '>' {
		return nil, p.failHere("malformed close tag")
	}
	p.cur.Take(1)
	return el, nil
}

// parseAttribute parses one attribute-position construct: a mixin, a
// static attribute (boolean or quoted), or a dynamic attribute whose
// value is embedded code.
func (p *Parser) parseAttribute() (Attribute, error) {
	cur := p.cur.Current()
	if !p.jsx && cur[0] == '@' {
		return p.parseMixin()
	}
	if p.jsx && cur == spreadMarker {
		return p.parseMixin()
	}

	name := p.cur.Split(identRe)
	if name == "" {
		return nil, p.failHere("bad attribute")
	}
	if p.cur.Split(eqRe) == "" {
		return StaticAttribute{Name: name, Value: "true"}, nil
	}
	if p.cur.Done() {
		return nil, p.failHere("bad attribute")
	}

	switch cur = p.cur.Current(); {
	case cur[0] == '"' || cur[0] == '\'':
		value, err := p.quotedString()
		if err != nil {
			return nil, err
		}
		return StaticAttribute{Name: name, Value: value}, nil
	case cur[0] == '{':
		if !p.jsx {
			return nil, p.failHere("brace attribute outside jsx grammar")
		}
		at := p.cur.Pos()
		code, _, err := p.parseBraceCode()
		if err != nil {
			return nil, err
		}
		return &DynamicAttribute{Name: name, Code: code, Pos: at}, nil
	case cur[0] == '@':
		if p.jsx {
			return nil, p.failHere("bad attribute")
		}
		at := p.cur.Pos()
		p.cur.Take(1)
		code, err := p.parseCode()
		if err != nil {
			return nil, err
		}
		return &DynamicAttribute{Name: name, Code: code, Pos: at}, nil
	}
	return nil, p.failHere("bad attribute")
}

// parseMixin parses an attribute-position directive: @code in the
// default grammar, {...code} in the JSX grammar.
func (p *Parser) parseMixin() (Attribute, error) {
	at := p.cur.Pos()
	if p.jsx {
		if p.cur.Current() != spreadMarker {
			return nil, p.fail("not at a mixin", at)
		}
		code, _, err := p.parseBraceCode()
		if err != nil {
			return nil, err
		}
		return &Mixin{Code: code, Pos: at}, nil
	}
	cur := p.cur.Current()
	if cur == "" || cur[0] != '@' {
		return nil, p.fail("not at a mixin", at)
	}
	p.cur.Take(1)
	code, err := p.parseCode()
	if err != nil {
		return nil, err
	}
	return &Mixin{Code: code, Pos: at}, nil
}

// parseContent parses element content until the close-tag marker,
// dispatching on lookahead: nested element, code insertion, markup
// comment, or plain text.
func (p *Parser) parseContent(open Position) ([]Node, error) {
	var content []Node
	var text []byte
	flushText := func() {
		if len(text) > 0 {
			content = append(content, PlainText{Text: string(text)})
			text = text[:0]
		}
	}

	for {
		if p.cur.Done() {
			return nil, p.fail("element missing close tag", open)
		}
		cur := p.cur.Current()
		if cur == "</" {
			flushText()
			return content, nil
		}
		if cur == "\n" {
			text = append(text, p.cur.Next()...)
			continue
		}
		if cur == "<!--" {
			flushText()
			comment, err := p.parseMarkupComment()
			if err != nil {
				return nil, err
			}
			content = append(content, comment)
			continue
		}
		switch ch := cur[0]; {
		case ch == '<':
			flushText()
			child, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			content = append(content, child)
		case !p.jsx && ch == '@':
			flushText()
			at := p.cur.Pos()
			p.cur.Take(1)
			code, err := p.parseCode()
			if err != nil {
				return nil, err
			}
			content = append(content, &CodeInsertion{Code: code, Pos: at})
		case p.jsx && ch == '{':
			flushText()
			at := p.cur.Pos()
			code, _, err := p.parseBraceCode()
			if err != nil {
				return nil, err
			}
			content = append(content, &CodeInsertion{Code: code, Pos: at})
		default:
			run := p.cur.Split(p.contentRun())
			if run == "" {
				run = p.cur.Take(1)
			}
			text = append(text, run...)
		}
	}
}

func (p *Parser) contentRun() *regexp.Regexp {
	if p.jsx {
		return contentRunJSXRe
	}
	return contentRunAtRe
}

// parseMarkupComment consumes <!-- ... --> and returns the body with
// both delimiters stripped.
func (p *Parser) parseMarkupComment() (Comment, error) {
	start := p.cur.Pos()
	p.cur.Next() // the <!-- marker
	var b []byte
	for {
		if p.cur.Done() {
			return Comment{}, p.fail("unterminated html comment", start)
		}
		if p.cur.Current() == "-->" {
			p.cur.Next()
			return Comment{Text: string(b)}, nil
		}
		b = append(b, p.cur.Next()...)
	}
}

func (p *Parser) skipSpace() {
	for !p.cur.Done() {
		if p.cur.Current() == "\n" {
			p.cur.Next()
			continue
		}
		if p.cur.Split(spaceRe) == "" {
			return
		}
	}
}
