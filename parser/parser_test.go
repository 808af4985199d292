package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dhamidi/amx/lexer"
)

func mustParse(t *testing.T, source string, opts ...Option) *Document {
	t.Helper()
	doc, err := Parse(lexer.Split(source), opts...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return doc
}

func parseErr(t *testing.T, source string, opts ...Option) *ParseError {
	t.Helper()
	_, err := Parse(lexer.Split(source), opts...)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q): expected *ParseError, got %v", source, err)
	}
	return perr
}

func diffTree(got, want *Document) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func TestParseStaticElement(t *testing.T) {
	got := mustParse(t, `<div id="x">hi</div>`)
	want := &Document{Segments: []Node{
		&Element{
			Tag:        "div",
			Pos:        Position{0, 0, 0},
			Attributes: []Attribute{StaticAttribute{Name: "id", Value: `"x"`}},
			Content:    []Node{PlainText{Text: "hi"}},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTopLevelText(t *testing.T) {
	got := mustParse(t, "let x = 1;\n<p>hi</p>")
	want := &Document{Segments: []Node{
		TextSegment{Text: "let x = 1;\n", Pos: Position{0, 0, 0}},
		&Element{
			Tag:     "p",
			Pos:     Position{Line: 1, Column: 0, Offset: 10},
			Content: []Node{PlainText{Text: "hi"}},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelfClosing(t *testing.T) {
	got := mustParse(t, `<br/>`)
	want := &Document{Segments: []Node{
		&Element{Tag: "br", Pos: Position{0, 0, 0}},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBooleanAttribute(t *testing.T) {
	got := mustParse(t, `<input disabled/>`)
	want := &Document{Segments: []Node{
		&Element{
			Tag:        "input",
			Pos:        Position{0, 0, 0},
			Attributes: []Attribute{StaticAttribute{Name: "disabled", Value: "true"}},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEscapedQuoteInAttribute(t *testing.T) {
	got := mustParse(t, `<p a="x\"y"></p>`)
	want := &Document{Segments: []Node{
		&Element{
			Tag:        "p",
			Pos:        Position{0, 0, 0},
			Attributes: []Attribute{StaticAttribute{Name: "a", Value: `"x\"y"`}},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCodeInsertion(t *testing.T) {
	got := mustParse(t, `<p>@name !</p>`)
	want := &Document{Segments: []Node{
		&Element{
			Tag: "p",
			Pos: Position{0, 0, 0},
			Content: []Node{
				&CodeInsertion{
					Pos: Position{0, 3, 3},
					Code: &EmbeddedCode{Segments: []Node{
						TextSegment{Text: "name", Pos: Position{0, 4, 4}},
					}},
				},
				PlainText{Text: " !"},
			},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDynamicAttribute(t *testing.T) {
	got := mustParse(t, `<a href=@url>x</a>`)
	want := &Document{Segments: []Node{
		&Element{
			Tag: "a",
			Pos: Position{0, 0, 0},
			Attributes: []Attribute{
				&DynamicAttribute{
					Name: "href",
					Pos:  Position{0, 8, 8},
					Code: &EmbeddedCode{Segments: []Node{
						TextSegment{Text: "url", Pos: Position{0, 9, 9}},
					}},
				},
			},
			Content: []Node{PlainText{Text: "x"}},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMixinDefaultGrammar(t *testing.T) {
	got := mustParse(t, `<div @withTooltip("hi")></div>`)
	el := got.Segments[0].(*Element)
	if len(el.Attributes) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(el.Attributes))
	}
	mixin, ok := el.Attributes[0].(*Mixin)
	if !ok {
		t.Fatalf("expected *Mixin, got %T", el.Attributes[0])
	}
	var text strings.Builder
	for _, seg := range mixin.Code.Segments {
		text.WriteString(seg.(TextSegment).Text)
	}
	if text.String() != `withTooltip("hi")` {
		t.Errorf("mixin code %q", text.String())
	}
}

func TestParseMixinBraceGrammar(t *testing.T) {
	got := mustParse(t, `<div {...m}/>`, WithJSX())
	want := &Document{Segments: []Node{
		&Element{
			Tag: "div",
			Pos: Position{0, 0, 0},
			Attributes: []Attribute{
				&Mixin{
					Pos: Position{0, 5, 5},
					Code: &EmbeddedCode{Segments: []Node{
						TextSegment{Text: "m", Pos: Position{Line: 0, Column: 9, Offset: 5}},
					}},
				},
			},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBraceInsertionAndAttribute(t *testing.T) {
	got := mustParse(t, `<a href={url}>{text}</a>`, WithJSX())
	want := &Document{Segments: []Node{
		&Element{
			Tag: "a",
			Pos: Position{0, 0, 0},
			Attributes: []Attribute{
				&DynamicAttribute{
					Name: "href",
					Pos:  Position{0, 8, 8},
					Code: &EmbeddedCode{Segments: []Node{
						TextSegment{Text: "url", Pos: Position{Line: 0, Column: 9, Offset: 8}},
					}},
				},
			},
			Content: []Node{
				&CodeInsertion{
					Pos: Position{0, 14, 14},
					Code: &EmbeddedCode{Segments: []Node{
						TextSegment{Text: "text", Pos: Position{Line: 0, Column: 15, Offset: 14}},
					}},
				},
			},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestedMarkupInCode(t *testing.T) {
	got := mustParse(t, `<ul>@items.map((i) => (<li>hi</li>)).join("")</ul>`)
	el := got.Segments[0].(*Element)
	ins := el.Content[0].(*CodeInsertion)

	var elements []*Element
	for _, seg := range ins.Code.Segments {
		if child, ok := seg.(*Element); ok {
			elements = append(elements, child)
		}
	}
	if len(elements) != 1 || elements[0].Tag != "li" {
		t.Fatalf("expected one spliced li element, got %#v", elements)
	}
	if got := codeText(ins.Code); got != `items.map((i) => (<li/>)).join("")` {
		t.Errorf("code text %q", got)
	}
}

func TestParseMarkupComment(t *testing.T) {
	got := mustParse(t, `<p>a<!-- note -->b</p>`)
	want := &Document{Segments: []Node{
		&Element{
			Tag: "p",
			Pos: Position{0, 0, 0},
			Content: []Node{
				PlainText{Text: "a"},
				Comment{Text: " note "},
				PlainText{Text: "b"},
			},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestedElements(t *testing.T) {
	got := mustParse(t, `<ul><li>a</li><li>b</li></ul>`)
	el := got.Segments[0].(*Element)
	if len(el.Content) != 2 {
		t.Fatalf("expected 2 children, got %d", len(el.Content))
	}
	for i, want := range []string{"a", "b"} {
		li := el.Content[i].(*Element)
		if li.Tag != "li" {
			t.Errorf("child %d tag %q", i, li.Tag)
		}
		if text := li.Content[0].(PlainText).Text; text != want {
			t.Errorf("child %d text %q, want %q", i, text, want)
		}
	}
}

func TestTopLevelStringHidesMarkup(t *testing.T) {
	// A < inside a top-level string literal must not open an element.
	got := mustParse(t, `let s = "<div>";`)
	if len(got.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %#v", len(got.Segments), got.Segments)
	}
	for _, seg := range got.Segments {
		if _, ok := seg.(*Element); ok {
			t.Fatal("string contents parsed as markup")
		}
	}
}

func TestTopLevelCommentHidesMarkup(t *testing.T) {
	got := mustParse(t, "// <div>\ndone")
	for _, seg := range got.Segments {
		if _, ok := seg.(*Element); ok {
			t.Fatal("comment contents parsed as markup")
		}
	}
}

func TestGrammarExclusivity(t *testing.T) {
	tests := []struct {
		name   string
		source string
		jsx    bool
	}{
		{"at mixin needs default grammar", `<div @m></div>`, false},
		{"spread mixin needs brace grammar", `<div {...m}></div>`, true},
		{"at attribute value needs default grammar", `<a href=@url></a>`, false},
		{"brace attribute value needs brace grammar", `<a href={url}></a>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var good, bad []Option
			if tt.jsx {
				good = []Option{WithJSX()}
			} else {
				bad = []Option{WithJSX()}
			}
			if _, err := Parse(lexer.Split(tt.source), good...); err != nil {
				t.Errorf("parse under matching grammar failed: %v", err)
			}
			if _, err := Parse(lexer.Split(tt.source), bad...); err == nil {
				t.Error("parse under the other grammar unexpectedly succeeded")
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		jsx     bool
		message string
	}{
		{"bad element name", `<1div></1div>`, false, "bad element name"},
		{"mismatched tags", `<div>x</span>`, false, "mismatched open and close tags"},
		{"malformed close tag", `<div>x</div`, false, "malformed close tag"},
		{"missing close tag", `<div>x`, false, "element missing close tag"},
		{"unterminated start node", `<div a="x"`, false, "unterminated start node"},
		{"unterminated attribute string", `<div a="x></div>`, false, "unterminated string"},
		{"empty insertion", `<p>@ </p>`, false, "not in embedded code"},
		{"empty brace insertion", `<p>{}</p>`, true, "not in embedded code"},
		{"unterminated html comment", `<p><!-- x`, false, "unterminated html comment"},
		{"unterminated parens", `<p>@f(x</p>`, false, "unterminated parentheses"},
		{"brace attribute in default grammar", `<a href={url}></a>`, false, "brace attribute outside jsx grammar"},
		{"spread mixin in default grammar", `<div {...m}></div>`, false, "bad attribute"},
		{"at mixin in brace grammar", `<div @m></div>`, true, "bad attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.jsx {
				opts = append(opts, WithJSX())
			}
			var perr *ParseError
			_, err := Parse(lexer.Split(tt.source), opts...)
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Message != tt.message {
				t.Errorf("got message %q, want %q", perr.Message, tt.message)
			}
		})
	}
}

func TestParseErrorFormat(t *testing.T) {
	perr := parseErr(t, `<div>x</span>`)
	want := "mismatched open and close tags at line 0 col 6: ``</span>''"
	if perr.Error() != want {
		t.Errorf("got %q, want %q", perr.Error(), want)
	}
}

func TestParseErrorSnippetShape(t *testing.T) {
	sources := []string{
		`<div>x</span>` + strings.Repeat("y", 80),
		"<div>\n\n\nx\n</span>",
		"<div>x\r\n</span>",
		`<p>@ </p>`,
	}
	for _, source := range sources {
		_, err := Parse(lexer.Split(source))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q): expected *ParseError, got %v", source, err)
		}
		if len(perr.Snippet) > 30 {
			t.Errorf("snippet longer than 30 characters: %q", perr.Snippet)
		}
		if strings.ContainsAny(perr.Snippet, "\n\r") {
			t.Errorf("snippet contains line break characters: %q", perr.Snippet)
		}
	}
}

func TestParseErrorSnippetAfterCarriageReturn(t *testing.T) {
	// A \r earlier in the source must not shift the snippet away from
	// the failure point.
	perr := parseErr(t, "ab\r\n<1div>")
	if perr.Pos != (Position{Line: 1, Column: 1, Offset: 3}) {
		t.Errorf("pos %+v", perr.Pos)
	}
	if perr.Snippet != "1div>" {
		t.Errorf("snippet %q, want %q", perr.Snippet, "1div>")
	}
}

func TestParseEmptyFragments(t *testing.T) {
	// The lexing contract leaves non-marker text grouping arbitrary,
	// so empty fragments must be tolerated, not panic.
	doc, err := Parse([]string{""})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Segments) != 0 {
		t.Errorf("expected empty document, got %#v", doc.Segments)
	}

	doc, err = Parse([]string{"", "<", "p>hi", "", "</", "p>", ""})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el, ok := doc.Segments[0].(*Element)
	if !ok || el.Tag != "p" {
		t.Fatalf("segment: %#v", doc.Segments[0])
	}
	if text := el.Content[0].(PlainText).Text; text != "hi" {
		t.Errorf("content %q", text)
	}
}

func TestParseTopLevelComment(t *testing.T) {
	got := mustParse(t, "<!-- note --><p>x</p>")
	want := &Document{Segments: []Node{
		Comment{Text: " note "},
		&Element{
			Tag:     "p",
			Pos:     Position{0, 13, 13},
			Content: []Node{PlainText{Text: "x"}},
		},
	}}
	if diff := diffTree(got, want); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorFile(t *testing.T) {
	perr := parseErr(t, `<div>`, WithFile("page.amx"))
	if perr.File != "page.amx" {
		t.Errorf("got file %q", perr.File)
	}
}

func TestConsumesAllInput(t *testing.T) {
	// The parse must account for every input character: parsing the
	// same source twice yields identical trees, and a trailing
	// fragment after a complete element still lands in the document.
	got := mustParse(t, "<p>x</p> tail\n")
	if len(got.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got.Segments))
	}
	tail, ok := got.Segments[1].(TextSegment)
	if !ok || tail.Text != " tail\n" {
		t.Errorf("trailing segment: %#v", got.Segments[1])
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 200
	source := strings.Repeat("<d>", depth) + "x" + strings.Repeat("</d>", depth)
	doc := mustParse(t, source)
	el := doc.Segments[0].(*Element)
	for i := 1; i < depth; i++ {
		el = el.Content[0].(*Element)
	}
	if text := el.Content[0].(PlainText).Text; text != "x" {
		t.Errorf("innermost content %q", text)
	}
}
