// Package diagnostic renders compiler errors as file:line:col messages
// with a source excerpt and caret.
package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/japi012/zilac/token"
)

// Kind labels the stage a diagnostic came from.
type Kind string

const (
	KindStructural Kind = "structural" // lexing/bracket balance
	KindAnalysis   Kind = "analysis"   // undefined word, signature mismatch
	KindLowering   Kind = "lowering"   // unresolved polymorphism at lowering time
	KindIO         Kind = "io"         // file/process errors
)

// Spanner is implemented by every error kind the pipeline can produce.
type Spanner interface {
	error
	Span() token.Span
}

// Render writes a single diagnostic to out: a `file:line:col: kind:
// message` header line, a one-line source excerpt, and a caret under
// the span's start column. Line/column are recomputed from source's
// byte offsets at render time - nothing upstream tracks them.
func Render(out io.Writer, source, filename string, kind Kind, err error, span token.Span) {
	line, col := lineCol(source, span.Start)

	label := string(kind)
	if color.NoColor {
		fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", filename, line, col, label, err)
	} else {
		kindColor := color.New(color.FgRed, color.Bold)
		fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", filename, line, col, kindColor.Sprint(label), err)
	}

	excerpt, excerptCol := sourceLine(source, span.Start)
	fmt.Fprintf(out, "    %s\n", excerpt)
	caret := strings.Repeat(" ", excerptCol) + "^"
	if color.NoColor {
		fmt.Fprintf(out, "    %s\n", caret)
	} else {
		fmt.Fprintf(out, "    %s\n", color.New(color.FgRed, color.Bold).Sprint(caret))
	}
}

// lineCol recomputes 1-based line and column numbers for byte offset
// pos within source.
func lineCol(source string, pos int) (line, col int) {
	line = 1
	col = 1
	for i := 0; i < pos && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// sourceLine returns the full line of source containing byte offset
// pos, along with pos's 0-based column within that line.
func sourceLine(source string, pos int) (string, int) {
	if pos > len(source) {
		pos = len(source)
	}
	start := strings.LastIndexByte(source[:pos], '\n') + 1
	end := len(source)
	if idx := strings.IndexByte(source[pos:], '\n'); idx >= 0 {
		end = pos + idx
	}
	return source[start:end], pos - start
}
