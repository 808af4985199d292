// Package lexer splits AMX source text into the fragment sequence
// consumed by the parser. The split is coarse and grammar-agnostic: the
// parser subdivides fragments as needed.
package lexer

import "strings"

// markers are the multi-character structural symbols the parser
// recognizes. Each one must arrive as a single fragment, never split or
// merged with surrounding text. Longer markers are listed before their
// prefixes.
var markers = []string{
	"<!--",
	"{...",
	"-->",
	"</",
	"/>",
	"//",
	"/*",
	"*/",
}

// Split breaks src into fragments: atomic marker fragments, isolated
// single-character newline fragments, and maximal runs of everything
// else. Concatenating the result reproduces src exactly.
func Split(src string) []string {
	var fragments []string
	start := 0
	i := 0
	for i < len(src) {
		if src[i] == '\n' {
			if start < i {
				fragments = append(fragments, src[start:i])
			}
			fragments = append(fragments, "\n")
			i++
			start = i
			continue
		}
		if m := markerAt(src, i); m != "" {
			if start < i {
				fragments = append(fragments, src[start:i])
			}
			fragments = append(fragments, m)
			i += len(m)
			start = i
			continue
		}
		i++
	}
	if start < len(src) {
		fragments = append(fragments, src[start:])
	}
	return fragments
}

func markerAt(src string, i int) string {
	for _, m := range markers {
		if strings.HasPrefix(src[i:], m) {
			return m
		}
	}
	return ""
}
