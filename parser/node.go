// Package parser builds an AST for AMX templates from a pre-lexed
// fragment sequence. AMX interleaves HTML-like markup with embedded
// host-language code; the two grammars are mutually recursive, so both
// live in this package.
package parser

// Position is a zero-based location in the original source.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Node is the interface implemented by all AMX AST nodes.
type Node interface {
	node()
}

// Document is the root of a parsed template. Segments holds
// TextSegment, *Element, and Comment values in source order.
type Document struct {
	Segments []Node
}

func (*Document) node() {}

// TextSegment is a contiguous run of host-language text between
// structural boundaries.
type TextSegment struct {
	Text string
	Pos  Position
}

func (TextSegment) node() {}

// Element is a markup element. Content holds *Element, *CodeInsertion,
// Comment, and PlainText values in source order.
type Element struct {
	Tag        string
	Attributes []Attribute
	Content    []Node
	Pos        Position
}

func (*Element) node() {}

// PlainText is markup text content.
type PlainText struct {
	Text string
}

func (PlainText) node() {}

// Comment is a markup comment; Text excludes the <!-- --> delimiters.
type Comment struct {
	Text string
}

func (Comment) node() {}

// CodeInsertion is a point where embedded host code produces markup
// content.
type CodeInsertion struct {
	Code *EmbeddedCode
	Pos  Position
}

func (*CodeInsertion) node() {}

// EmbeddedCode is a run of host-language code. Segments holds
// TextSegment and *Element values: markup elements written inside the
// code are spliced in at their source positions.
type EmbeddedCode struct {
	Segments []Node
}

func (*EmbeddedCode) node() {}

// Attribute is the interface implemented by element attributes.
type Attribute interface {
	attribute()
}

// StaticAttribute is an attribute with a literal value. Value keeps the
// surrounding quotes as they appeared in the source; boolean-style
// attributes get the value "true".
type StaticAttribute struct {
	Name  string
	Value string
}

func (StaticAttribute) attribute() {}

// DynamicAttribute is an attribute whose value is computed by embedded
// host code.
type DynamicAttribute struct {
	Name string
	Code *EmbeddedCode
	Pos  Position
}

func (*DynamicAttribute) attribute() {}

// Mixin is an attribute-position directive carrying embedded code that
// applies a batch of element behavior.
type Mixin struct {
	Code *EmbeddedCode
	Pos  Position
}

func (*Mixin) attribute() {}
