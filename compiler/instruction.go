// Package compiler is the lowering compiler: it walks the analyzer's
// resolved item tree and produces a flat list of Proc values over a
// low-level Instruction set, plus the program's string literal pool.
package compiler

import (
	"fmt"

	"github.com/japi012/zilac/token"
)

// Instruction is one opcode in the lowered, linear IR. Every
// polymorphic instruction (Dup, Drop, Swap, Over, Branch) carries the
// slot size(s) of the stack values it touches, read off the resolved
// signature at this use site - that's what lets the generator emit
// fixed-width code without a runtime type tag.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// PushInt pushes a literal integer.
type PushInt struct{ Value int64 }

// PushBool pushes a literal boolean.
type PushBool struct{ Value bool }

// PushString pushes the pointer/length pair for string literal pool
// entry Index.
type PushString struct{ Index int }

// PushQuote pushes the address of procedure Label as a callable value.
type PushQuote struct{ Label Label }

// Add, Sub, Mul, Div pop two ints and push the result.
type Add struct{}
type Sub struct{}
type Mul struct{}
type Div struct{}

// Exit pops an int and terminates the process with it as exit status.
type Exit struct{}

// Puts pops a string and writes it to standard output.
type Puts struct{}

// Dup duplicates the top Size-cell value.
type Dup struct{ Size int }

// Drop discards the top Size-cell value.
type Drop struct{ Size int }

// Swap exchanges the top two values, of SizeA (shallower, nearer the
// top) and SizeB (deeper) cells respectively.
type Swap struct{ SizeA, SizeB int }

// Over copies the second-from-top value (SizeA cells, the deeper of
// the pair) back onto the top of the stack, above a SizeB-cell value
// that is left in place.
type Over struct{ SizeA, SizeB int }

// Apply pops a quotation value and calls through it.
type Apply struct{}

// Branch performs branchless select over [cond, on_true(Size),
// on_false(Size), ...top], where cond is the deepest of the three and
// on_false is nearest the top; the selected Size-cell value is written
// into cond's (now-repurposed) slot and the rest discarded.
type Branch struct{ Size int }

func (PushInt) isInstruction()    {}
func (PushBool) isInstruction()   {}
func (PushString) isInstruction() {}
func (PushQuote) isInstruction()  {}
func (Add) isInstruction()        {}
func (Sub) isInstruction()        {}
func (Mul) isInstruction()        {}
func (Div) isInstruction()        {}
func (Exit) isInstruction()       {}
func (Puts) isInstruction()       {}
func (Dup) isInstruction()        {}
func (Drop) isInstruction()       {}
func (Swap) isInstruction()       {}
func (Over) isInstruction()       {}
func (Apply) isInstruction()      {}
func (Branch) isInstruction()     {}

func (i PushInt) String() string    { return fmt.Sprintf("PUSHINT %d", i.Value) }
func (i PushBool) String() string   { return fmt.Sprintf("PUSHBOOL %t", i.Value) }
func (i PushString) String() string { return fmt.Sprintf("PUSHSTRING %d", i.Index) }
func (i PushQuote) String() string  { return fmt.Sprintf("PUSHQUOTE %s", i.Label) }
func (Add) String() string          { return "ADD" }
func (Sub) String() string          { return "SUB" }
func (Mul) String() string          { return "MUL" }
func (Div) String() string          { return "DIV" }
func (Exit) String() string         { return "EXIT" }
func (Puts) String() string         { return "PUTS" }
func (i Dup) String() string        { return fmt.Sprintf("DUP{%d}", i.Size) }
func (i Drop) String() string       { return fmt.Sprintf("DROP{%d}", i.Size) }
func (i Swap) String() string       { return fmt.Sprintf("SWAP{%d,%d}", i.SizeA, i.SizeB) }
func (i Over) String() string       { return fmt.Sprintf("OVER{%d,%d}", i.SizeA, i.SizeB) }
func (Apply) String() string        { return "APPLY" }
func (i Branch) String() string     { return fmt.Sprintf("BRANCH{%d}", i.Size) }

// Label names a procedure. ID 0 is always the entry point. Name is
// optional and, today, always empty - the language has no user-defined
// words yet, but the field and its proc_<id>_<name> rendering are kept
// as the forward-reference hook a future "declare-then-define"
// extension would need.
type Label struct {
	ID   int
	Name string
}

func (l Label) String() string {
	if l.Name != "" {
		return fmt.Sprintf("proc_%d_%s", l.ID, l.Name)
	}
	return fmt.Sprintf("proc_%d", l.ID)
}

// CodeLine is one instruction together with the source span it was
// lowered from, used for the per-instruction assembly comments the
// generator emits.
type CodeLine struct {
	Span        token.Span
	Instruction Instruction
}

// Proc is a flat, labelled instruction list: the entry procedure
// (proc_0) or one quotation's body.
type Proc struct {
	Label Label
	Code  []CodeLine
}
