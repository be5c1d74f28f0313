// Package token contains the lexical building blocks the lexer produces
// when scanning a zila source file: spans, word-kinds, and the Word
// type itself.
package token

import "fmt"

// Span is a byte-offset range into the source text that produced a Word.
// Start and End are both measured in bytes, not runes; End is exclusive.
type Span struct {
	Start int
	End   int
}

// String renders a span as "start:end", used by error messages and the
// per-instruction assembly comments the generator emits.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Kind identifies which variant of Word a given token is.
type Kind int

// The three lexical kinds a word can take. Brackets and operators are
// Symbol words; only their literal text distinguishes them.
const (
	Integer Kind = iota
	String
	Symbol
)

// String gives a human name for a Kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Word is a single lexical unit: a literal or a symbol atom, tagged
// with its kind and the span of source it came from.
//
// Int is only meaningful when Kind == Integer. Literal holds the
// symbol text for Kind == Symbol, and the raw, still-quoted text
// (including the surrounding `"`) for Kind == String.
type Word struct {
	Kind    Kind
	Literal string
	Int     int64
	Span    Span
}

// IsSymbol reports whether this word is a Symbol whose literal text
// equals s. It's the common way callers check for "[", "]", or a
// specific built-in name without a type switch.
func (w Word) IsSymbol(s string) bool {
	return w.Kind == Symbol && w.Literal == s
}
