// Package analyzer implements the bidirectional stack-effect inferencer:
// given a stream of token.Word values it computes the principal
// signature of the whole program and, for every word and quotation, a
// fully-resolved Signature, using element variables (Var) and row
// variables (MultiVar) with Hindley-Milner-style unification.
package analyzer

import (
	"fmt"
	"strings"
)

// Type is a stack value type: one of the three ground types (Int, Bool,
// String), one of the two unification-variable kinds (Var, MultiVar),
// or a Quotation carrying the signature of the code it reifies.
type Type interface {
	fmt.Stringer
	isType()
}

// IntType is a 64-bit signed integer. Slot size 1.
type IntType struct{}

// BoolType is 0 (false) or all-ones (true). Slot size 1.
type BoolType struct{}

// StringType is a {pointer, length} pair. Slot size 2.
type StringType struct{}

// VarType is a unification variable standing for a single stack slot.
type VarType struct{ ID int }

// MultiVarType is a row variable standing for an arbitrary (possibly
// empty) prefix of stack elements.
type MultiVarType struct{ ID int }

// QuotationType is a first-class code value; its Signature is the
// quotation's own (possibly still-open) stack effect.
type QuotationType struct{ Signature Signature }

func (IntType) isType()       {}
func (BoolType) isType()      {}
func (StringType) isType()    {}
func (VarType) isType()       {}
func (MultiVarType) isType()  {}
func (QuotationType) isType() {}

func (IntType) String() string    { return "Int" }
func (BoolType) String() string   { return "Bool" }
func (StringType) String() string { return "String" }
func (t VarType) String() string  { return fmt.Sprintf("'%d", t.ID) }
func (t MultiVarType) String() string {
	return fmt.Sprintf("..%d", t.ID)
}
func (t QuotationType) String() string {
	return fmt.Sprintf("[%s]", t.Signature)
}

// SlotSize returns the number of 64-bit cells t occupies on the runtime
// data stack. ok is false when t is an unresolved Var or MultiVar - the
// lowering compiler treats that as a fatal "polymorphism survived to
// lowering" condition (see compiler.Compile).
func SlotSize(t Type) (size int, ok bool) {
	switch t.(type) {
	case BoolType, IntType, QuotationType:
		return 1, true
	case StringType:
		return 2, true
	default:
		return 0, false
	}
}

// Signature is a word or program's stack effect: the types it demands
// from below (Inputs) and the types it leaves behind (Outputs). In
// Outputs the top of stack is the last element. Inputs are listed in
// the order they are consumed, so Inputs[0] is the value nearest the
// top of stack (see DESIGN.md).
//
// The built-in signatures use at most one MultiVar per slice, standing
// for the deepest part of the stack (the last element of apply's
// Inputs). No separate validity check is made; unifyStack gives a
// MultiVar row treatment only when it is the last element of a slice.
type Signature struct {
	Inputs  []Type
	Outputs []Type
}

func (s Signature) String() string {
	return fmt.Sprintf("%s -> %s", typesString(s.Inputs), typesString(s.Outputs))
}

func typesString(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
