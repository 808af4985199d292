package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/amx/parser"
)

// TreeEncoder renders the tree as an indented plain-text outline, one
// node per line.
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(doc *parser.Document) error {
	if _, err := fmt.Fprintln(e.w, "document"); err != nil {
		return err
	}
	return e.nodes(doc.Segments, 1)
}

func (e *TreeEncoder) nodes(nodes []parser.Node, depth int) error {
	for _, n := range nodes {
		if err := e.node(n, depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *TreeEncoder) node(n parser.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case parser.TextSegment:
		_, err := fmt.Fprintf(e.w, "%stext %q (%d:%d)\n", indent, n.Text, n.Pos.Line, n.Pos.Column)
		return err
	case *parser.Element:
		if _, err := fmt.Fprintf(e.w, "%selement %s (%d:%d)\n", indent, n.Tag, n.Pos.Line, n.Pos.Column); err != nil {
			return err
		}
		for _, a := range n.Attributes {
			if err := e.attribute(a, depth+1); err != nil {
				return err
			}
		}
		return e.nodes(n.Content, depth+1)
	case parser.PlainText:
		_, err := fmt.Fprintf(e.w, "%splaintext %q\n", indent, n.Text)
		return err
	case parser.Comment:
		_, err := fmt.Fprintf(e.w, "%scomment %q\n", indent, n.Text)
		return err
	case *parser.CodeInsertion:
		if _, err := fmt.Fprintf(e.w, "%sinsertion (%d:%d)\n", indent, n.Pos.Line, n.Pos.Column); err != nil {
			return err
		}
		return e.nodes(n.Code.Segments, depth+1)
	}
	_, err := fmt.Fprintf(e.w, "%sunknown %T\n", indent, n)
	return err
}

func (e *TreeEncoder) attribute(a parser.Attribute, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch a := a.(type) {
	case parser.StaticAttribute:
		_, err := fmt.Fprintf(e.w, "%sattr %s=%s\n", indent, a.Name, a.Value)
		return err
	case *parser.DynamicAttribute:
		if _, err := fmt.Fprintf(e.w, "%sattr %s= (%d:%d)\n", indent, a.Name, a.Pos.Line, a.Pos.Column); err != nil {
			return err
		}
		return e.nodes(a.Code.Segments, depth+1)
	case *parser.Mixin:
		if _, err := fmt.Fprintf(e.w, "%smixin (%d:%d)\n", indent, a.Pos.Line, a.Pos.Column); err != nil {
			return err
		}
		return e.nodes(a.Code.Segments, depth+1)
	}
	_, err := fmt.Fprintf(e.w, "%sunknown attribute %T\n", indent, a)
	return err
}
