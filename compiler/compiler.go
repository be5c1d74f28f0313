package compiler

import (
	"fmt"
	"strings"

	"github.com/japi012/zilac/analyzer"
	"github.com/japi012/zilac/token"
)

// compiler holds the state threaded through one lowering pass: the
// procedures discovered so far (in allocation order, entry first) and
// the pool of escaped string literals.
type compiler struct {
	procs          []*Proc
	stringLiterals []string
}

// UnresolvedPolymorphismError is returned when a polymorphic word is
// lowered without enough information to size its operands - a Var or
// MultiVar survived analysis all the way to code generation. The
// textbook case is dup swap drop: with nothing left to unify against,
// dup's element type is never pinned down to a concrete size.
type UnresolvedPolymorphismError struct {
	Word string
	At   token.Span
}

func (e *UnresolvedPolymorphismError) Error() string {
	return fmt.Sprintf("cannot lower %q: operand type is still polymorphic", e.Word)
}

// Span satisfies analyzer.Error's shape, for diagnostic rendering.
func (e *UnresolvedPolymorphismError) Span() token.Span { return e.At }

// Compile walks the analyzer's resolved item tree and lowers it into a
// flat list of procedures plus the string literal pool. items must
// come from a signature that is fully ground - any polymorphic Var or
// MultiVar surviving to this point is reported as an error, since the
// generator has no way to size an unresolved slot.
func Compile(items []analyzer.Item) ([]*Proc, []string, error) {
	c := &compiler{}
	entry := c.newProc(Label{ID: 0})

	for _, item := range items {
		if err := c.compileItem(item, entry); err != nil {
			return nil, nil, err
		}
	}

	return c.procs, c.stringLiterals, nil
}

func (c *compiler) newProc(label Label) *Proc {
	proc := &Proc{Label: label}
	c.procs = append(c.procs, proc)
	return proc
}

func (c *compiler) allocProc() *Proc {
	return c.newProc(Label{ID: len(c.procs)})
}

func (c *compiler) emit(proc *Proc, span token.Span, instr Instruction) {
	proc.Code = append(proc.Code, CodeLine{Span: span, Instruction: instr})
}

func (c *compiler) compileItem(item analyzer.Item, proc *Proc) error {
	switch k := item.Kind.(type) {
	case analyzer.IntegerItem:
		c.emit(proc, item.Span, PushInt{Value: k.Value})
		return nil

	case analyzer.StringItem:
		idx := len(c.stringLiterals)
		c.stringLiterals = append(c.stringLiterals, Escape(k.Raw))
		c.emit(proc, item.Span, PushString{Index: idx})
		return nil

	case analyzer.QuotationItem:
		quoteProc := c.allocProc()
		for _, inner := range k.Items {
			if err := c.compileItem(inner, quoteProc); err != nil {
				return err
			}
		}
		c.emit(proc, item.Span, PushQuote{Label: quoteProc.Label})
		return nil

	case analyzer.WordItem:
		return c.compileWord(k, item.Span, proc)

	default:
		return fmt.Errorf("compiler: unreachable item kind %T", item.Kind)
	}
}

func (c *compiler) compileWord(w analyzer.WordItem, span token.Span, proc *Proc) error {
	switch w.Name {
	case "true":
		c.emit(proc, span, PushBool{Value: true})
	case "false":
		c.emit(proc, span, PushBool{Value: false})

	case "+":
		c.emit(proc, span, Add{})
	case "-":
		c.emit(proc, span, Sub{})
	case "*":
		c.emit(proc, span, Mul{})
	case "/":
		c.emit(proc, span, Div{})

	case "exit":
		c.emit(proc, span, Exit{})
	case "puts":
		c.emit(proc, span, Puts{})
	case "apply":
		c.emit(proc, span, Apply{})

	case "dup":
		size, err := slotSizeOf(w, span, 0)
		if err != nil {
			return err
		}
		c.emit(proc, span, Dup{Size: size})

	case "drop":
		size, err := slotSizeOf(w, span, 0)
		if err != nil {
			return err
		}
		c.emit(proc, span, Drop{Size: size})

	case "swap":
		sizeA, err := slotSizeOf(w, span, 0)
		if err != nil {
			return err
		}
		sizeB, err := slotSizeOf(w, span, 1)
		if err != nil {
			return err
		}
		c.emit(proc, span, Swap{SizeA: sizeA, SizeB: sizeB})

	case "over":
		// Signature.Inputs for over is resolved as [shallow, deep] (the
		// element nearer the top of stack is consumed - and so bound -
		// first); the generator's SizeA names the deep operand that
		// gets copied back to the top, so the indices are read in the
		// opposite order from swap's.
		sizeB, err := slotSizeOf(w, span, 0)
		if err != nil {
			return err
		}
		sizeA, err := slotSizeOf(w, span, 1)
		if err != nil {
			return err
		}
		c.emit(proc, span, Over{SizeA: sizeA, SizeB: sizeB})

	case "?":
		size, err := slotSizeOf(w, span, 0)
		if err != nil {
			return err
		}
		c.emit(proc, span, Branch{Size: size})

	default:
		// The surface language only ever binds symbols to a fixed
		// built-in word table; the analyzer already rejects anything
		// else as an UndefinedWordError, so this is unreachable in a
		// program that passed analysis.
		return fmt.Errorf("compiler: unrecognized word %q reached lowering", w.Name)
	}

	return nil
}

func slotSizeOf(w analyzer.WordItem, span token.Span, idx int) (int, error) {
	if idx >= len(w.Signature.Inputs) {
		return 0, &UnresolvedPolymorphismError{Word: w.Name, At: span}
	}
	size, ok := analyzer.SlotSize(w.Signature.Inputs[idx])
	if !ok {
		return 0, &UnresolvedPolymorphismError{Word: w.Name, At: span}
	}
	return size, nil
}

// Escape processes a string literal's raw source text - including its
// surrounding quotes - into the decoded bytes the runtime string
// should contain. It recognizes \n, \\, and \"; any other escape is
// unknown and is dropped entirely, backslash and following character
// both, matching original_source/src/compiler.rs's escape().
func Escape(raw string) string {
	inner := raw
	if len(inner) >= 2 && inner[0] == '"' {
		inner = inner[1:]
		if len(inner) > 0 && inner[len(inner)-1] == '"' {
			inner = inner[:len(inner)-1]
		}
	}

	var b strings.Builder
	runes := []rune(inner)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '\\' || i == len(runes)-1 {
			b.WriteRune(ch)
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			b.WriteRune('\n')
		case '\\':
			b.WriteRune('\\')
		case '"':
			b.WriteRune('"')
		default:
			// unknown escape: drop both the backslash and this character
		}
	}
	return b.String()
}
