package analyzer

import (
	"fmt"

	"github.com/japi012/zilac/token"
)

// Error is satisfied by every failure mode analysis can produce; the
// diagnostic package uses Span to locate a caret in the source excerpt.
type Error interface {
	error
	Span() token.Span
}

// UndefinedWordError is returned when a symbol has no entry in the
// built-in word bindings table.
type UndefinedWordError struct {
	Word token.Word
}

func (e *UndefinedWordError) Error() string {
	return fmt.Sprintf("undefined word %q", e.Word.Literal)
}

// Span satisfies Error.
func (e *UndefinedWordError) Span() token.Span { return e.Word.Span }

// CannotExecSignatureError is returned when a word's instantiated
// signature cannot be unified against the stack at the point of use.
// Stack is a snapshot of the live symbolic stack just before the
// attempt; Signature is the instantiated (not yet resolved) signature
// being applied.
type CannotExecSignatureError struct {
	Word      token.Word
	Stack     []Type
	Signature Signature
}

func (e *CannotExecSignatureError) Error() string {
	return fmt.Sprintf(
		"cannot apply %q: signature %s does not match stack (%s)",
		e.Word.Literal, e.Signature, typesString(e.Stack),
	)
}

// Span satisfies Error.
func (e *CannotExecSignatureError) Span() token.Span { return e.Word.Span }

// UnclosedBracketError is returned when a "[" has no matching "]"
// before the end of the word stream - a deliberate bracket-balance
// check; see DESIGN.md.
type UnclosedBracketError struct {
	Open token.Span
}

func (e *UnclosedBracketError) Error() string {
	return "unclosed \"[\": no matching \"]\" before end of input"
}

// Span satisfies Error.
func (e *UnclosedBracketError) Span() token.Span { return e.Open }

// UnmatchedCloseBracketError is returned for a "]" with no preceding
// "[" to close - the other half of the bracket-balance check.
type UnmatchedCloseBracketError struct {
	Close token.Span
}

func (e *UnmatchedCloseBracketError) Error() string {
	return "unmatched \"]\": no preceding \"[\""
}

// Span satisfies Error.
func (e *UnmatchedCloseBracketError) Span() token.Span { return e.Close }
