package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japi012/zilac/compiler"
)

func generate(t *testing.T, procs []*compiler.Proc, strs []string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Generate(procs, strs, "test-build", &buf))
	return buf.String()
}

func TestGenerateHeaderAndEntry(t *testing.T) {
	procs := []*compiler.Proc{{Label: compiler.Label{ID: 0}}}
	out := generate(t, procs, nil)

	assert.Contains(t, out, "; generated by zilac - build test-build")
	assert.Contains(t, out, "data_stack: resq 1024")
	assert.Contains(t, out, "global _start")
	assert.Contains(t, out, "call proc_0")
	assert.Contains(t, out, "proc_0:")
	assert.Contains(t, out, "ret")
	assert.NotContains(t, out, "section .rodata") // no strings, no pool
}

func TestGenerateStringPool(t *testing.T) {
	procs := []*compiler.Proc{{Label: compiler.Label{ID: 0}}}
	out := generate(t, procs, []string{"hi", ""})

	assert.Contains(t, out, "section .rodata")
	assert.Contains(t, out, "str_0: db 104,105\n") // "hi" as byte values
	assert.Contains(t, out, "len_0 equ 2")
	assert.Contains(t, out, "str_1: db 0\n")
}

func TestGeneratePushInstructions(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.PushInt{Value: 42}},
			{Instruction: compiler.PushBool{Value: true}},
			{Instruction: compiler.PushBool{Value: false}},
			{Instruction: compiler.PushString{Index: 0}},
			{Instruction: compiler.PushQuote{Label: compiler.Label{ID: 1}}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, []string{"x"})

	assert.Contains(t, out, "mov qword [rcx], 42")
	assert.Contains(t, out, "mov qword [rcx], -1") // true
	assert.Contains(t, out, "mov qword [rcx], 0")   // false
	assert.Contains(t, out, "lea rax, [rel str_0]")
	assert.Contains(t, out, "mov qword [rcx], proc_1")
}

func TestGenerateArithmetic(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Add{}},
			{Instruction: compiler.Sub{}},
			{Instruction: compiler.Mul{}},
			{Instruction: compiler.Div{}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)

	assert.Contains(t, out, "add [rcx - 16], rax")
	assert.Contains(t, out, "sub [rcx - 16], rax")
	assert.Contains(t, out, "imul [rcx - 16], rax")
	assert.Contains(t, out, "cqo")
	assert.Contains(t, out, "idiv qword [rcx - 8]")
}

func TestGenerateExitAndPuts(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Exit{}},
			{Instruction: compiler.Puts{}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)

	assert.Contains(t, out, "mov rax, 60\n    mov rdi, [rcx - 8]\n    syscall")
	assert.Contains(t, out, "mov rax, 1\n    mov rdi, 1")
	assert.Contains(t, out, "sub rcx, 16")
}

func TestGenerateDupDrop(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Dup{Size: 2}},
			{Instruction: compiler.Drop{Size: 2}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)

	assert.Contains(t, out, "mov rax, [rcx - 16]\n    mov [rcx + 0], rax")
	assert.Contains(t, out, "mov rax, [rcx - 8]\n    mov [rcx + 8], rax")
	assert.Contains(t, out, "add rcx, 16")
	assert.Contains(t, out, "sub rcx, 16")
}

func TestGenerateSwapUsesScratchRegisters(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Swap{SizeA: 2, SizeB: 1}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)

	// 3 cells total read into r8,r9,r10 before anything is written back.
	assert.Contains(t, out, "mov r8, [rcx - 24]")
	assert.Contains(t, out, "mov r9, [rcx - 16]")
	assert.Contains(t, out, "mov r10, [rcx - 8]")
}

func TestGenerateSwapRejectsOversizedOperands(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Swap{SizeA: 3, SizeB: 2}},
		},
	}
	var buf bytes.Buffer
	err := Generate([]*compiler.Proc{proc}, nil, "build", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swap operand too large")
}

func TestGenerateOverCopiesDeepOperand(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Over{SizeA: 2, SizeB: 1}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)
	assert.Contains(t, out, "add rcx, 16")
}

func TestGenerateApply(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Apply{}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)
	assert.Contains(t, out, "sub rcx, 8\n    call [rcx]")
}

func TestGenerateBranchSelectsBeforeWriting(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Branch{Size: 2}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)

	// total = 1 + 2*2 = 5 cells -> base = 40
	assert.Contains(t, out, "mov rax, [rcx - 40]") // cond, deepest
	assert.Contains(t, out, "not rbx")
	assert.Contains(t, out, "sub rcx, 24") // discard size+1 = 3 cells
}

func TestGenerateAssemblyCommentsIncludeSpanAndOpcode(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Add{}},
		},
	}
	out := generate(t, []*compiler.Proc{proc}, nil)
	assert.True(t, strings.Contains(out, "-- ADD"))
}

func TestGenerateDebugBannersAreCommentsOnly(t *testing.T) {
	proc := &compiler.Proc{
		Label: compiler.Label{ID: 0},
		Code: []compiler.CodeLine{
			{Instruction: compiler.Add{}},
		},
	}
	plain := generate(t, []*compiler.Proc{proc}, nil)

	var buf bytes.Buffer
	require.NoError(t, New([]*compiler.Proc{proc}, nil, "test-build").WithDebug().Generate(&buf))
	debugOut := buf.String()

	assert.Contains(t, debugOut, "; debug: 1 procs, 0 string literals")
	assert.Contains(t, debugOut, "; debug: proc proc_0, 1 instructions")

	stripComments := func(s string) string {
		var kept []string
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), ";") {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}
	assert.Equal(t, stripComments(plain), stripComments(debugOut))
}
