package analyzer

import "github.com/japi012/zilac/token"

// wordStream is a one-token-of-lookahead cursor over a pre-lexed word
// slice, used by the analyzer to recognize bracket nesting.
type wordStream struct {
	words []token.Word
	pos   int
}

func (ws *wordStream) peek() (token.Word, bool) {
	if ws.pos >= len(ws.words) {
		return token.Word{}, false
	}
	return ws.words[ws.pos], true
}

func (ws *wordStream) next() (token.Word, bool) {
	w, ok := ws.peek()
	if ok {
		ws.pos++
	}
	return w, ok
}

// Analyze consumes an entire pre-lexed word stream and produces the
// program's principal signature together with the tree of annotated
// items the lowering compiler walks.
func Analyze(words []token.Word) (Signature, []Item, error) {
	bindings := builtins()
	ws := &wordStream{words: words}
	ctx := newContext()
	top := newState()

	for {
		if _, ok := ws.peek(); !ok {
			break
		}
		if err := checkWord(ws, bindings, top, ctx); err != nil {
			return Signature{}, nil, err
		}
	}

	sig, items := top.resolveAll(ctx)
	return sig, items, nil
}

// checkWord consumes exactly one word (and, for "[", everything up to
// its matching "]") and appends the resulting Item to st.
func checkWord(ws *wordStream, bindings map[string]Signature, st *state, ctx *Context) error {
	word, ok := ws.next()
	if !ok {
		return nil
	}

	var kind ItemKind

	switch {
	case word.Kind == token.Integer:
		st.pushOutput(IntType{})
		kind = IntegerItem{Value: word.Int}

	case word.Kind == token.String:
		st.pushOutput(StringType{})
		kind = StringItem{Raw: word.Literal}

	case word.IsSymbol("]"):
		return &UnmatchedCloseBracketError{Close: word.Span}

	case word.IsSymbol("["):
		inner := newState()
		closed := false
		for {
			peeked, hasNext := ws.peek()
			if !hasNext {
				break
			}
			if peeked.IsSymbol("]") {
				closed = true
				break
			}
			if err := checkWord(ws, bindings, inner, ctx); err != nil {
				return err
			}
		}
		if !closed {
			return &UnclosedBracketError{Open: word.Span}
		}
		ws.next() // consume "]"

		sig, items := inner.resolveAll(ctx)
		st.pushOutput(QuotationType{Signature: sig})
		kind = QuotationItem{Signature: sig, Items: items}

	default:
		sig, ok := bindings[word.Literal]
		if !ok {
			return &UndefinedWordError{Word: word}
		}
		if err := trySignature(st, &sig, ctx, true, word); err != nil {
			return err
		}
		kind = WordItem{Signature: sig, Name: word.Literal}
	}

	st.items = append(st.items, Item{Kind: kind, Span: word.Span})
	return nil
}

// trySignature applies sig to the current live stack: each input is
// either unified against what's already on the stack, spliced in (when
// it's an already-bound MultiVar discovered earlier in this same
// application), or - if the stack has run dry - recorded as a new
// demand on whatever supplies this scope's stack from outside.
//
// When instantiateSig is true, sig's source-local Var/MultiVar ids are
// first replaced with fresh global ones; nested recursive calls (for
// an already-bound MultiVar) pass false, since the spliced-in types
// are already fully concrete global ids.
func trySignature(st *state, sig *Signature, ctx *Context, instantiateSig bool, word token.Word) error {
	stackShot := st.cloneOutputs()

	if instantiateSig {
		localIDs := make(map[int]int)
		sig.Inputs = instantiate(sig.Inputs, localIDs, ctx)
		sig.Outputs = instantiate(sig.Outputs, localIDs, ctx)
	}

	for _, input := range sig.Inputs {
		if mv, ok := input.(MultiVarType); ok {
			if tys, ok := ctx.getMultivar(mv.ID); ok {
				nested := Signature{Inputs: append([]Type(nil), tys...)}
				if err := trySignature(st, &nested, ctx, false, word); err != nil {
					return err
				}
				continue
			}
		}

		if ty, ok := st.popOutput(); ok {
			if err := unify(word, *sig, stackShot, input, ty, ctx); err != nil {
				return err
			}
		} else {
			st.pushInput(input)
		}
	}

	var newOutputs []Type
	for _, t := range sig.Outputs {
		newOutputs = append(newOutputs, resolveType(t, ctx)...)
	}
	st.signature.Outputs = append(st.signature.Outputs, newOutputs...)

	return nil
}
