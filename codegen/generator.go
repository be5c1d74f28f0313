// Package codegen emits NASM-syntax x86-64 assembly for the flat
// Proc/Instruction IR the compiler package produces.
package codegen

import (
	"fmt"
	"io"

	"github.com/japi012/zilac/compiler"
)

// Generator renders a set of procedures and a string literal pool as a
// single NASM source file.
type Generator struct {
	procs   []*compiler.Proc
	strings []string
	buildID string
	debug   bool
}

// New returns a Generator for procs and the string literal pool they
// reference. buildID is embedded as a header comment only - it has no
// effect on the emitted program.
func New(procs []*compiler.Proc, strings []string, buildID string) *Generator {
	return &Generator{procs: procs, strings: strings, buildID: buildID}
}

// WithDebug turns on comment-only debug banners: one extra line above
// every procedure label naming its instruction count. These are pure
// NASM comments - they mirror the teacher's SetDebug toggle but never
// change the emitted instruction stream.
func (g *Generator) WithDebug() *Generator {
	g.debug = true
	return g
}

// Generate writes the complete assembly listing to out.
func Generate(procs []*compiler.Proc, strings []string, buildID string, out io.Writer) error {
	return New(procs, strings, buildID).Generate(out)
}

func (g *Generator) Generate(out io.Writer) error {
	if err := g.genHeader(out); err != nil {
		return err
	}
	for _, proc := range g.procs {
		if err := g.genProc(proc, out); err != nil {
			return err
		}
	}
	return g.genStringPool(out)
}

func (g *Generator) genHeader(out io.Writer) error {
	banner := ""
	if g.debug {
		banner = fmt.Sprintf("; debug: %d procs, %d string literals\n", len(g.procs), len(g.strings))
	}
	_, err := fmt.Fprintf(out, `; generated by zilac - build %s
`+banner+`section .bss
align 8
data_stack: resq 1024

section .text
global _start

_start:
    lea rcx, [rel data_stack]
    call proc_0
    mov rax, 60
    xor rdi, rdi
    syscall

`, g.buildID)
	return err
}

func (g *Generator) genProc(proc *compiler.Proc, out io.Writer) error {
	if g.debug {
		if _, err := fmt.Fprintf(out, "; debug: proc %s, %d instructions\n", proc.Label, len(proc.Code)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, "%s:\n", proc.Label); err != nil {
		return err
	}
	for _, line := range proc.Code {
		if err := g.genInstruction(line, out); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "    ; RETURN\n    ret\n\n")
	return err
}

func (g *Generator) genStringPool(out io.Writer) error {
	if len(g.strings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(out, "section .rodata\n"); err != nil {
		return err
	}
	for i, s := range g.strings {
		bytes := []byte(s)
		if _, err := fmt.Fprintf(out, "str_%d: db ", i); err != nil {
			return err
		}
		if len(bytes) == 0 {
			if _, err := fmt.Fprintf(out, "0\nlen_%d equ 0\n", i); err != nil {
				return err
			}
			continue
		}
		for j, b := range bytes {
			sep := ","
			if j == len(bytes)-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(out, "%d%s", b, sep); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "len_%d equ %d\n", i, len(bytes)); err != nil {
			return err
		}
	}
	return nil
}
