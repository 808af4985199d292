// Package format renders parsed AMX trees for tools and humans.
package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/amx/parser"
)

// Encoder writes a parsed document to an output stream.
type Encoder interface {
	Encode(doc *parser.Document) error
}

// JSONEncoder renders the tree as indented JSON with a "kind"
// discriminator on every node.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *parser.Document) error {
	data := map[string]any{
		"kind":     "document",
		"segments": encodeNodes(doc.Segments),
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func encodeNodes(nodes []parser.Node) []any {
	encoded := make([]any, 0, len(nodes))
	for _, n := range nodes {
		encoded = append(encoded, encodeNode(n))
	}
	return encoded
}

func encodeNode(n parser.Node) any {
	switch n := n.(type) {
	case parser.TextSegment:
		return map[string]any{
			"kind": "text",
			"text": n.Text,
			"pos":  encodePos(n.Pos),
		}
	case *parser.Element:
		return map[string]any{
			"kind":       "element",
			"tag":        n.Tag,
			"attributes": encodeAttributes(n.Attributes),
			"content":    encodeNodes(n.Content),
			"pos":        encodePos(n.Pos),
		}
	case parser.PlainText:
		return map[string]any{
			"kind": "plaintext",
			"text": n.Text,
		}
	case parser.Comment:
		return map[string]any{
			"kind": "comment",
			"text": n.Text,
		}
	case *parser.CodeInsertion:
		return map[string]any{
			"kind": "insertion",
			"code": encodeCode(n.Code),
			"pos":  encodePos(n.Pos),
		}
	}
	return map[string]any{"kind": "unknown"}
}

func encodeAttributes(attrs []parser.Attribute) []any {
	encoded := make([]any, 0, len(attrs))
	for _, a := range attrs {
		encoded = append(encoded, encodeAttribute(a))
	}
	return encoded
}

func encodeAttribute(a parser.Attribute) any {
	switch a := a.(type) {
	case parser.StaticAttribute:
		return map[string]any{
			"kind":  "static",
			"name":  a.Name,
			"value": a.Value,
		}
	case *parser.DynamicAttribute:
		return map[string]any{
			"kind": "dynamic",
			"name": a.Name,
			"code": encodeCode(a.Code),
			"pos":  encodePos(a.Pos),
		}
	case *parser.Mixin:
		return map[string]any{
			"kind": "mixin",
			"code": encodeCode(a.Code),
			"pos":  encodePos(a.Pos),
		}
	}
	return map[string]any{"kind": "unknown"}
}

func encodeCode(code *parser.EmbeddedCode) any {
	return map[string]any{
		"kind":     "code",
		"segments": encodeNodes(code.Segments),
	}
}

func encodePos(pos parser.Position) any {
	return map[string]any{
		"line":   pos.Line,
		"col":    pos.Column,
		"offset": pos.Offset,
	}
}
