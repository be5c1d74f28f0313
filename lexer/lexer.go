// Package lexer turns zila source text into a stream of token.Word
// values: integer literals, double-quoted string literals, and symbol
// atoms (which includes "[", "]", operators, and identifiers).
package lexer

import (
	"strconv"
	"strings"

	"github.com/japi012/zilac/token"
)

// Lexer holds our object-state.
//
// A zila program can contain string literals with backslash escapes,
// so scanning a "word" isn't just "read until whitespace" - quoted
// strings may contain embedded whitespace and escaped quotes.
type Lexer struct {
	position     int    // current character position
	readPosition int    // next character position
	ch           rune   // current character
	characters   []rune // rune slice of input string
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input)}
	l.readChar()
	return l
}

// read one character forward
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.characters)
}

// NextWord reads and returns the next token.Word, skipping leading
// whitespace. The boolean result is false once the source is exhausted,
// at which point the Word is the zero value.
func (l *Lexer) NextWord() (token.Word, bool) {
	l.skipWhitespace()

	if l.atEOF() {
		return token.Word{}, false
	}

	start := l.position

	var word token.Word
	if l.ch == '"' {
		word = l.readString(start)
	} else {
		word = l.readAtom(start)
	}

	// readString/readAtom count runes; Span is measured in bytes.
	word.Span = token.Span{
		Start: len(string(l.characters[:word.Span.Start])),
		End:   len(string(l.characters[:word.Span.End])),
	}
	return word, true
}

// readString scans a double-quoted string literal, honoring \\, \", and
// \n escapes while looking for the closing quote. The returned word's
// Literal is the raw text including both surrounding quotes; escape
// processing happens later, in the lowering compiler (see compiler.Escape).
func (l *Lexer) readString(start int) token.Word {
	// consume the opening quote
	l.readChar()

	escaped := false
	for !l.atEOF() {
		if escaped {
			escaped = false
		} else if l.ch == '\\' {
			escaped = true
		} else if l.ch == '"' {
			break
		}
		l.readChar()
	}

	// consume the closing quote, if present; an unterminated string at
	// EOF is tolerated here and simply runs to the end of the source.
	if l.ch == '"' {
		l.readChar()
	}

	end := l.position
	raw := string(l.characters[start:end])

	word := token.Word{
		Kind:    token.String,
		Literal: raw,
		Span:    token.Span{Start: start, End: end},
	}
	return word
}

// readAtom scans a run of non-whitespace characters and classifies it
// as an Integer (all ASCII digits) or a Symbol (anything else,
// including "[", "]", and operators).
func (l *Lexer) readAtom(start int) token.Word {
	for !l.atEOF() && !isWhitespace(l.ch) {
		l.readChar()
	}

	end := l.position
	text := string(l.characters[start:end])

	span := token.Span{Start: start, End: end}

	if isAllDigits(text) {
		// Leading zeros are permitted ("000001" == 1); ParseInt
		// handles that without extra massaging.
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return token.Word{Kind: token.Integer, Literal: text, Int: i, Span: span}
		}
	}

	return token.Word{Kind: token.Symbol, Literal: text, Span: span}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool { return !isDigit(r) })
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
