package analyzer

import "github.com/japi012/zilac/token"

// unify attempts to make a and b the same type, recording new Var
// bindings in ctx as needed. word/sig/stackShot are only carried
// through to build a CannotExecSignatureError if unification fails.
func unify(word token.Word, sig Signature, stackShot []Type, a, b Type, ctx *Context) error {
	if av, ok := a.(VarType); ok {
		if bound, ok := ctx.getVar(av.ID); ok {
			return unify(word, sig, stackShot, bound, b, ctx)
		}
		if bv, ok := b.(VarType); ok && bv.ID == av.ID {
			return nil
		}
		if occursIn(av.ID, b, ctx) {
			return &CannotExecSignatureError{Word: word, Stack: stackShot, Signature: sig}
		}
		ctx.setVar(av.ID, b)
		return nil
	}

	if bv, ok := b.(VarType); ok {
		if bound, ok := ctx.getVar(bv.ID); ok {
			return unify(word, sig, stackShot, a, bound, ctx)
		}
		if occursIn(bv.ID, a, ctx) {
			return &CannotExecSignatureError{Word: word, Stack: stackShot, Signature: sig}
		}
		ctx.setVar(bv.ID, a)
		return nil
	}

	switch at := a.(type) {
	case BoolType:
		if _, ok := b.(BoolType); ok {
			return nil
		}
	case IntType:
		if _, ok := b.(IntType); ok {
			return nil
		}
	case StringType:
		if _, ok := b.(StringType); ok {
			return nil
		}
	case QuotationType:
		if bt, ok := b.(QuotationType); ok {
			return unifySignature(word, sig, stackShot, at.Signature, bt.Signature, ctx)
		}
	}

	return &CannotExecSignatureError{Word: word, Stack: stackShot, Signature: sig}
}

// occursIn guards against a cyclic variable binding: binding varID to
// a type that transitively mentions varID would make resolve loop
// forever. None of the built-in signatures ever need a cyclic binding,
// and the check is cheap, so it's always enforced.
func occursIn(varID int, t Type, ctx *Context) bool {
	switch v := t.(type) {
	case VarType:
		if v.ID == varID {
			return true
		}
		if bound, ok := ctx.getVar(v.ID); ok {
			return occursIn(varID, bound, ctx)
		}
		return false
	case QuotationType:
		for _, in := range v.Signature.Inputs {
			if occursIn(varID, in, ctx) {
				return true
			}
		}
		for _, out := range v.Signature.Outputs {
			if occursIn(varID, out, ctx) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func unifySignature(word token.Word, sig Signature, stackShot []Type, a, b Signature, ctx *Context) error {
	if err := unifyStack(word, sig, stackShot, a.Inputs, b.Inputs, ctx); err != nil {
		return err
	}
	return unifyStack(word, sig, stackShot, a.Outputs, b.Outputs, ctx)
}

// unifyStack unifies two type sequences (top-of-stack rightmost). If
// either side's last element is a MultiVar, its fixed tail is peeled
// against the other side's corresponding suffix (right-aligned) and
// the remaining prefix of the other side becomes that MultiVar's
// binding. b's MultiVar is preferred when both sides end in one - a
// deterministic tie-break.
func unifyStack(word token.Word, sig Signature, stackShot []Type, a, b []Type, ctx *Context) error {
	if n := len(b); n > 0 {
		if bmv, ok := b[n-1].(MultiVarType); ok {
			rest := b[:n-1]
			if len(a) < len(rest) {
				return &CannotExecSignatureError{Word: word, Stack: stackShot, Signature: sig}
			}
			tailLen := len(a) - len(rest)
			for i, bt := range rest {
				if err := unify(word, sig, stackShot, a[tailLen+i], bt, ctx); err != nil {
					return err
				}
			}
			tail := append([]Type(nil), a[:tailLen]...)
			ctx.setMultivar(bmv.ID, tail)
			return nil
		}
	}

	if n := len(a); n > 0 {
		if amv, ok := a[n-1].(MultiVarType); ok {
			rest := a[:n-1]
			if len(b) < len(rest) {
				return &CannotExecSignatureError{Word: word, Stack: stackShot, Signature: sig}
			}
			tailLen := len(b) - len(rest)
			for i, at := range rest {
				if err := unify(word, sig, stackShot, at, b[tailLen+i], ctx); err != nil {
					return err
				}
			}
			tail := append([]Type(nil), b[:tailLen]...)
			ctx.setMultivar(amv.ID, tail)
			return nil
		}
	}

	if len(a) != len(b) {
		return &CannotExecSignatureError{Word: word, Stack: stackShot, Signature: sig}
	}
	for i := range a {
		if err := unify(word, sig, stackShot, a[i], b[i], ctx); err != nil {
			return err
		}
	}
	return nil
}
