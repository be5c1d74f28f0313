package lexer

import (
	"testing"

	"github.com/japi012/zilac/token"
)

// Trivial test of the parsing of numbers, including leading zeros.
func TestParseNumbers(t *testing.T) {
	input := `1 2 34   90 3475 690173  9876543210  000001`

	tests := []struct {
		expectedInt int64
		expectedLit string
	}{
		{1, "1"},
		{2, "2"},
		{34, "34"},
		{90, "90"},
		{3475, "3475"},
		{690173, "690173"},
		{9876543210, "9876543210"},
		{1, "000001"},
	}

	l := New(input)
	for i, tt := range tests {
		word, ok := l.NextWord()
		if !ok {
			t.Fatalf("tests[%d] - expected a word, got none", i)
		}
		if word.Kind != token.Integer {
			t.Fatalf("tests[%d] - kind wrong, expected=Integer, got=%s", i, word.Kind)
		}
		if word.Int != tt.expectedInt {
			t.Fatalf("tests[%d] - int value wrong, expected=%d, got=%d", i, tt.expectedInt, word.Int)
		}
		if word.Literal != tt.expectedLit {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, tt.expectedLit, word.Literal)
		}
	}

	if _, ok := l.NextWord(); ok {
		t.Fatalf("expected end of input")
	}
}

// Symbols include brackets and operators - the lexer doesn't give
// them any special treatment beyond "not a digit, not a quote".
func TestParseSymbols(t *testing.T) {
	input := `+ - * / dup swap [ ] apply true false ?`

	expected := []string{"+", "-", "*", "/", "dup", "swap", "[", "]", "apply", "true", "false", "?"}

	l := New(input)
	for i, want := range expected {
		word, ok := l.NextWord()
		if !ok {
			t.Fatalf("tests[%d] - expected a word, got none", i)
		}
		if word.Kind != token.Symbol {
			t.Fatalf("tests[%d] - kind wrong, expected=Symbol, got=%s", i, word.Kind)
		}
		if word.Literal != want {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, want, word.Literal)
		}
	}
}

// Strings retain their surrounding quotes and raw escapes; unescaping
// is the lowering compiler's job, not the lexer's.
func TestParseStrings(t *testing.T) {
	input := `"hi" "with \"escaped\" quotes" "line\nbreak"`

	expected := []string{`"hi"`, `"with \"escaped\" quotes"`, `"line\nbreak"`}

	l := New(input)
	for i, want := range expected {
		word, ok := l.NextWord()
		if !ok {
			t.Fatalf("tests[%d] - expected a word, got none", i)
		}
		if word.Kind != token.String {
			t.Fatalf("tests[%d] - kind wrong, expected=String, got=%s", i, word.Kind)
		}
		if word.Literal != want {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, want, word.Literal)
		}
	}
}

// Spans must refer to valid byte-ranges that contain the token's text.
func TestSpansAreValid(t *testing.T) {
	input := `12 foo "bar baz" [`

	l := New(input)
	for {
		word, ok := l.NextWord()
		if !ok {
			break
		}
		if word.Span.Start < 0 || word.Span.End > len(input) || word.Span.Start > word.Span.End {
			t.Fatalf("invalid span %v for word %+v", word.Span, word)
		}
		text := input[word.Span.Start:word.Span.End]
		if word.Kind == token.Symbol || word.Kind == token.Integer {
			if text != word.Literal {
				t.Fatalf("span text %q does not match literal %q", text, word.Literal)
			}
		}
	}
}

func TestMixedProgram(t *testing.T) {
	input := `1 1 +`
	l := New(input)

	first, _ := l.NextWord()
	if first.Kind != token.Integer || first.Int != 1 {
		t.Fatalf("unexpected first word: %+v", first)
	}

	second, _ := l.NextWord()
	if second.Kind != token.Integer || second.Int != 1 {
		t.Fatalf("unexpected second word: %+v", second)
	}

	third, _ := l.NextWord()
	if !third.IsSymbol("+") {
		t.Fatalf("unexpected third word: %+v", third)
	}

	if _, ok := l.NextWord(); ok {
		t.Fatalf("expected end of input")
	}
}
