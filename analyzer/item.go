package analyzer

import "github.com/japi012/zilac/token"

// ItemKind is the payload of an annotated AST node: a literal, or a
// resolved word/quotation occurrence.
type ItemKind interface {
	isItemKind()
}

// IntegerItem is an integer literal occurrence.
type IntegerItem struct{ Value int64 }

// StringItem is a string literal occurrence. Raw is the literal text
// exactly as lexed, including the surrounding quotes and any
// backslash escapes - unescaping happens later, during lowering.
type StringItem struct{ Raw string }

// WordItem is a resolved occurrence of a built-in word. Signature is
// this occurrence's fully-instantiated (and, after resolve_all,
// resolved) stack effect - distinct use-sites of a polymorphic word
// like dup carry different, independently-resolved signatures.
type WordItem struct {
	Signature Signature
	Name      string
}

// QuotationItem is a bracketed subprogram reified as a value. Items
// holds its own annotated item tree.
type QuotationItem struct {
	Signature Signature
	Items     []Item
}

func (IntegerItem) isItemKind()   {}
func (StringItem) isItemKind()    {}
func (WordItem) isItemKind()      {}
func (QuotationItem) isItemKind() {}

// Item is one node of the annotated program tree the analyzer
// produces: a literal, word, or quotation, tagged with the span of
// source it came from.
type Item struct {
	Kind ItemKind
	Span token.Span
}
