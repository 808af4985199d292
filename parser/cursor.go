package parser

import (
	"regexp"
	"strings"
)

// Cursor walks a lexer-produced fragment sequence while tracking the
// zero-based line, column, and absolute offset of the current position.
// Fragments can be consumed whole with Next, or a byte at a time with
// Take and Split, which lets the parser recover fine-grained tokens
// from coarsely split input.
type Cursor struct {
	fragments []string
	index     int
	current   string
	line      int
	column    int
	offset    int
}

// NewCursor returns a cursor positioned at the first non-empty
// fragment. Empty fragments are legal in the input and are skipped.
func NewCursor(fragments []string) *Cursor {
	c := &Cursor{fragments: fragments, index: -1}
	c.advance()
	return c
}

// Current returns the unconsumed part of the current fragment, or the
// empty string at end of input.
func (c *Cursor) Current() string {
	return c.current
}

// PeekNext returns the next non-empty fragment after the current one
// without consuming anything, or the empty string if there is none.
func (c *Cursor) PeekNext() string {
	for i := c.index + 1; i < len(c.fragments); i++ {
		if c.fragments[i] != "" {
			return c.fragments[i]
		}
	}
	return ""
}

// Done reports whether the input is exhausted.
func (c *Cursor) Done() bool {
	return c.index >= len(c.fragments)
}

// Pos returns the position of the next unconsumed character.
func (c *Cursor) Pos() Position {
	return Position{Line: c.line, Column: c.column, Offset: c.offset}
}

// Next consumes the rest of the current fragment and returns it. A lone
// newline fragment increments the line and resets the column; any other
// text advances the column by its length. Neither newlines nor carriage
// returns advance the offset, so offsets index the source with line
// break characters removed.
func (c *Cursor) Next() string {
	consumed := c.current
	if consumed == "\n" {
		c.line++
		c.column = 0
	} else {
		c.column += len(consumed)
		c.offset += len(consumed) - strings.Count(consumed, "\r")
	}
	c.advance()
	return consumed
}

// Take consumes exactly n leading bytes of the current fragment and
// returns them. n must not exceed the current fragment's length.
func (c *Cursor) Take(n int) string {
	taken := c.current[:n]
	c.current = c.current[n:]
	c.column += n
	c.offset += n - strings.Count(taken, "\r")
	if c.current == "" {
		c.advance()
	}
	return taken
}

// Split removes a leading match of re from the current fragment and
// returns it, leaving the remainder as the current fragment. The cursor
// moves to the next fragment only when the remainder is empty. Patterns
// must be anchored with ^; Split returns "" when there is no match at
// the start of the fragment.
func (c *Cursor) Split(re *regexp.Regexp) string {
	if c.Done() {
		return ""
	}
	m := re.FindString(c.current)
	if m == "" {
		return ""
	}
	return c.Take(len(m))
}

func (c *Cursor) advance() {
	c.index++
	for c.index < len(c.fragments) && c.fragments[c.index] == "" {
		c.index++
	}
	if c.index < len(c.fragments) {
		c.current = c.fragments[c.index]
	} else {
		c.current = ""
	}
}
