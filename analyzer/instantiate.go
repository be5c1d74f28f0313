package analyzer

// instantiate substitutes a signature's source-local Var/MultiVar ids
// with freshly-minted global ids. localIDs maps a source-local id to
// the global id minted for it within this single instantiation; it is
// shared across Var and MultiVar ids (a signature never uses the same
// numeric id for both a Var and a MultiVar, so this is unambiguous for
// every built-in in this language - see DESIGN.md).
func instantiate(ts []Type, localIDs map[int]int, ctx *Context) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = instantiateType(t, localIDs, ctx)
	}
	return out
}

func instantiateType(t Type, localIDs map[int]int, ctx *Context) Type {
	switch v := t.(type) {
	case IntType, BoolType, StringType:
		return t
	case VarType:
		if id, ok := localIDs[v.ID]; ok {
			return VarType{ID: id}
		}
		id := ctx.genVar()
		localIDs[v.ID] = id
		return VarType{ID: id}
	case MultiVarType:
		if id, ok := localIDs[v.ID]; ok {
			return MultiVarType{ID: id}
		}
		id := ctx.genMultivar()
		localIDs[v.ID] = id
		return MultiVarType{ID: id}
	case QuotationType:
		return QuotationType{Signature: Signature{
			Inputs:  instantiate(v.Signature.Inputs, localIDs, ctx),
			Outputs: instantiate(v.Signature.Outputs, localIDs, ctx),
		}}
	default:
		panic("analyzer: unreachable type variant")
	}
}
