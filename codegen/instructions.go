package codegen

import (
	"fmt"
	"io"

	"github.com/japi012/zilac/compiler"
)

func (g *Generator) genInstruction(line compiler.CodeLine, out io.Writer) error {
	comment := fmt.Sprintf("    ; %s -- %s\n", line.Span, opcodeName(line.Instruction))
	if _, err := io.WriteString(out, comment); err != nil {
		return err
	}

	switch instr := line.Instruction.(type) {
	case compiler.PushInt:
		return g.genPushInt(instr, out)
	case compiler.PushBool:
		return g.genPushBool(instr, out)
	case compiler.PushString:
		return g.genPushString(instr, out)
	case compiler.PushQuote:
		return g.genPushQuote(instr, out)
	case compiler.Add:
		return g.genBinArith(out, "add")
	case compiler.Sub:
		return g.genBinArith(out, "sub")
	case compiler.Mul:
		return g.genMul(out)
	case compiler.Div:
		return g.genDiv(out)
	case compiler.Exit:
		return g.genExit(out)
	case compiler.Puts:
		return g.genPuts(out)
	case compiler.Dup:
		return g.genDup(instr, out)
	case compiler.Drop:
		return g.genDrop(instr, out)
	case compiler.Swap:
		return g.genSwap(instr, out)
	case compiler.Over:
		return g.genOver(instr, out)
	case compiler.Apply:
		return g.genApply(out)
	case compiler.Branch:
		return g.genBranch(instr, out)
	default:
		return fmt.Errorf("codegen: unreachable instruction %T", instr)
	}
}

func opcodeName(instr compiler.Instruction) string {
	switch instr.(type) {
	case compiler.PushInt:
		return "PUSHINT"
	case compiler.PushBool:
		return "PUSHBOOL"
	case compiler.PushString:
		return "PUSHSTRING"
	case compiler.PushQuote:
		return "PUSHQUOTE"
	case compiler.Add:
		return "ADD"
	case compiler.Sub:
		return "SUB"
	case compiler.Mul:
		return "MUL"
	case compiler.Div:
		return "DIV"
	case compiler.Exit:
		return "EXIT"
	case compiler.Puts:
		return "PUTS"
	case compiler.Dup:
		return "DUP"
	case compiler.Drop:
		return "DROP"
	case compiler.Swap:
		return "SWAP"
	case compiler.Over:
		return "OVER"
	case compiler.Apply:
		return "APPLY"
	case compiler.Branch:
		return "BRANCH"
	default:
		return "?"
	}
}

// genPushInt stores a literal integer and advances the stack pointer
// by one cell.
func (g *Generator) genPushInt(i compiler.PushInt, out io.Writer) error {
	_, err := fmt.Fprintf(out, "    mov qword [rcx], %d\n    add rcx, 8\n", i.Value)
	return err
}

// genPushBool stores the all-ones/all-zeros encoding a branchless `?`
// depends on.
func (g *Generator) genPushBool(b compiler.PushBool, out io.Writer) error {
	v := 0
	if b.Value {
		v = -1
	}
	_, err := fmt.Fprintf(out, "    mov qword [rcx], %d\n    add rcx, 8\n", v)
	return err
}

// genPushString stores a {pointer, length} pair for string pool entry
// Index and advances the stack pointer by two cells.
func (g *Generator) genPushString(s compiler.PushString, out io.Writer) error {
	_, err := fmt.Fprintf(out, `    lea rax, [rel str_%d]
    mov [rcx], rax
    mov qword [rcx+8], len_%d
    add rcx, 16
`, s.Index, s.Index)
	return err
}

// genPushQuote stores a procedure's address as a callable value.
func (g *Generator) genPushQuote(q compiler.PushQuote, out io.Writer) error {
	_, err := fmt.Fprintf(out, "    mov qword [rcx], %s\n    add rcx, 8\n", q.Label)
	return err
}

func (g *Generator) genBinArith(out io.Writer, op string) error {
	_, err := fmt.Fprintf(out, "    mov rax, [rcx - 8]\n    %s [rcx - 16], rax\n    sub rcx, 8\n", op)
	return err
}

func (g *Generator) genMul(out io.Writer) error {
	_, err := fmt.Fprintf(out, "    mov rax, [rcx - 8]\n    imul [rcx - 16], rax\n    sub rcx, 8\n")
	return err
}

// genDiv pops the divisor and dividend and pushes their signed
// quotient, rounding toward zero as idiv does.
func (g *Generator) genDiv(out io.Writer) error {
	_, err := fmt.Fprintf(out, `    mov rax, [rcx - 16]
    cqo
    idiv qword [rcx - 8]
    mov [rcx - 16], rax
    sub rcx, 8
`)
	return err
}

func (g *Generator) genExit(out io.Writer) error {
	_, err := fmt.Fprintf(out, "    mov rax, 60\n    mov rdi, [rcx - 8]\n    syscall\n")
	return err
}

// genPuts issues a write(2) syscall over the top-of-stack {pointer,
// length} pair and discards it.
func (g *Generator) genPuts(out io.Writer) error {
	_, err := fmt.Fprintf(out, `    mov rax, 1
    mov rdi, 1
    mov rsi, [rcx - 16]
    mov rdx, [rcx - 8]
    push rcx
    syscall
    pop rcx
    sub rcx, 16
`)
	return err
}

// genDup copies the top Size cells to the slots immediately above.
func (g *Generator) genDup(d compiler.Dup, out io.Writer) error {
	for i := 0; i < d.Size; i++ {
		off := (d.Size - i) * 8
		if _, err := fmt.Fprintf(out, "    mov rax, [rcx - %d]\n    mov [rcx + %d], rax\n", off, i*8); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "    add rcx, %d\n", d.Size*8)
	return err
}

func (g *Generator) genDrop(d compiler.Drop, out io.Writer) error {
	_, err := fmt.Fprintf(out, "    sub rcx, %d\n", d.Size*8)
	return err
}

// genSwap exchanges the SizeA-cell value at the top with the deeper
// SizeB-cell value beneath it, using general-purpose registers as
// scratch (SizeA+SizeB is at most 4 cells for this language's types).
func (g *Generator) genSwap(s compiler.Swap, out io.Writer) error {
	total := s.SizeA + s.SizeB
	scratch := []string{"r8", "r9", "r10", "r11"}
	if total > len(scratch) {
		return fmt.Errorf("codegen: swap operand too large (%d cells)", total)
	}

	// Read the whole region (deep SizeB cells, then shallow SizeA
	// cells) into registers before writing anything back.
	for i := 0; i < total; i++ {
		off := (total - i) * 8
		if _, err := fmt.Fprintf(out, "    mov %s, [rcx - %d]\n", scratch[i], off); err != nil {
			return err
		}
	}

	// Write the shallow block (now read into scratch[SizeB:]) first,
	// at the bottom of the region, then the deep block on top of it.
	base := total * 8
	for i := 0; i < s.SizeA; i++ {
		reg := scratch[s.SizeB+i]
		off := base - i*8
		if _, err := fmt.Fprintf(out, "    mov [rcx - %d], %s\n", off, reg); err != nil {
			return err
		}
	}
	for i := 0; i < s.SizeB; i++ {
		reg := scratch[i]
		off := base - (s.SizeA+i)*8
		if _, err := fmt.Fprintf(out, "    mov [rcx - %d], %s\n", off, reg); err != nil {
			return err
		}
	}

	return nil
}

// genOver copies the SizeA-cell value lying beneath a SizeB-cell value
// back onto the top of the stack.
func (g *Generator) genOver(o compiler.Over, out io.Writer) error {
	total := o.SizeA + o.SizeB
	for i := 0; i < o.SizeA; i++ {
		off := total*8 - i*8
		if _, err := fmt.Fprintf(out, "    mov rax, [rcx - %d]\n    mov [rcx + %d], rax\n", off, i*8); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "    add rcx, %d\n", o.SizeA*8)
	return err
}

func (g *Generator) genApply(out io.Writer) error {
	_, err := fmt.Fprintf(out, "    sub rcx, 8\n    call [rcx]\n")
	return err
}

// genBranch performs a branchless select over [cond (1 cell,
// deepest), on_true (Size cells), on_false (Size cells, shallowest)].
// Result cell i is written to cell i of the region, starting at cond's
// slot; by then that cell has already been read (it is cond or an
// earlier on_true cell), so the writes never corrupt a later read.
func (g *Generator) genBranch(b compiler.Branch, out io.Writer) error {
	total := 1 + 2*b.Size
	base := total * 8

	if _, err := fmt.Fprintf(out, "    mov rax, [rcx - %d]\n    mov rbx, rax\n    not rbx\n", base); err != nil {
		return err
	}

	for i := 0; i < b.Size; i++ {
		trueOff := base - (1+i)*8
		falseOff := base - (1+b.Size+i)*8
		destOff := base - i*8

		if _, err := fmt.Fprintf(out, `    mov rdx, [rcx - %d]
    and rdx, rax
    mov rsi, [rcx - %d]
    and rsi, rbx
    or rdx, rsi
    mov [rcx - %d], rdx
`, trueOff, falseOff, destOff); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(out, "    sub rcx, %d\n", (b.Size+1)*8)
	return err
}
