package analyzer

// state is the per-scope workspace used while analyzing one lexical
// region: the top level, or the inside of one "[ ... ]" quotation.
// signature.Outputs doubles as the live symbolic stack; signature.Inputs
// accumulates demands on the caller's stack discovered as words run
// off the (initially empty) end of that live stack.
type state struct {
	signature Signature
	items     []Item
}

func newState() *state {
	return &state{}
}

func (s *state) pushOutput(t Type) {
	s.signature.Outputs = append(s.signature.Outputs, t)
}

func (s *state) pushInput(t Type) {
	s.signature.Inputs = append(s.signature.Inputs, t)
}

// popOutput removes and returns the current top of the live symbolic
// stack, or ok=false if it's empty.
func (s *state) popOutput() (Type, bool) {
	n := len(s.signature.Outputs)
	if n == 0 {
		return nil, false
	}
	t := s.signature.Outputs[n-1]
	s.signature.Outputs = s.signature.Outputs[:n-1]
	return t, true
}

func (s *state) cloneOutputs() []Type {
	out := make([]Type, len(s.signature.Outputs))
	copy(out, s.signature.Outputs)
	return out
}

// resolveType substitutes t transitively through ctx until it reaches a
// fixed point, returning the sequence of types it resolves to. For
// Int/Bool/String/Quotation and an unbound Var/MultiVar this is always
// a single-element sequence; a bound MultiVar can expand to any number
// of elements (including zero), which is why this returns a slice
// rather than a single Type.
func resolveType(t Type, ctx *Context) []Type {
	switch v := t.(type) {
	case IntType, BoolType, StringType:
		return []Type{t}
	case VarType:
		if bound, ok := ctx.getVar(v.ID); ok {
			return resolveType(bound, ctx)
		}
		return []Type{t}
	case MultiVarType:
		if bound, ok := ctx.getMultivar(v.ID); ok {
			var out []Type
			for _, b := range bound {
				out = append(out, resolveType(b, ctx)...)
			}
			return out
		}
		return []Type{t}
	case QuotationType:
		return []Type{QuotationType{Signature: resolveSignature(v.Signature, ctx)}}
	default:
		panic("analyzer: unreachable type variant")
	}
}

func resolveTypes(ts []Type, ctx *Context) []Type {
	var out []Type
	for _, t := range ts {
		out = append(out, resolveType(t, ctx)...)
	}
	return out
}

func resolveSignature(sig Signature, ctx *Context) Signature {
	return Signature{
		Inputs:  resolveTypes(sig.Inputs, ctx),
		Outputs: resolveTypes(sig.Outputs, ctx),
	}
}

func resolveItem(item Item, ctx *Context) Item {
	switch k := item.Kind.(type) {
	case QuotationItem:
		items := make([]Item, len(k.Items))
		for i, it := range k.Items {
			items[i] = resolveItem(it, ctx)
		}
		return Item{
			Kind: QuotationItem{Signature: resolveSignature(k.Signature, ctx), Items: items},
			Span: item.Span,
		}
	case WordItem:
		return Item{
			Kind: WordItem{Signature: resolveSignature(k.Signature, ctx), Name: k.Name},
			Span: item.Span,
		}
	default:
		return item
	}
}

// resolveAll freezes this scope's accumulated signature and item list
// against ctx: every Var/MultiVar is substituted as far as it can be,
// leaving only genuinely free (polymorphic) variables behind.
func (s *state) resolveAll(ctx *Context) (Signature, []Item) {
	sig := resolveSignature(s.signature, ctx)
	items := make([]Item, len(s.items))
	for i, it := range s.items {
		items[i] = resolveItem(it, ctx)
	}
	return sig, items
}
