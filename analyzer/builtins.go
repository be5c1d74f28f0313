package analyzer

// builtins returns the fixed table of built-in word signatures.
// Var/MultiVar ids here are source-local: they're freshly minted at
// every use site by instantiate, so the same numeric id reused across
// two different entries (e.g. dup's Var(0) and swap's Var(0)) never
// collide.
func builtins() map[string]Signature {
	v := func(n int) Type { return VarType{ID: n} }
	mv := func(n int) Type { return MultiVarType{ID: n} }
	I, B, S := IntType{}, BoolType{}, StringType{}

	return map[string]Signature{
		"+": {Inputs: []Type{I, I}, Outputs: []Type{I}},
		"-": {Inputs: []Type{I, I}, Outputs: []Type{I}},
		"*": {Inputs: []Type{I, I}, Outputs: []Type{I}},
		"/": {Inputs: []Type{I, I}, Outputs: []Type{I}},

		"exit": {Inputs: []Type{I}},
		"puts": {Inputs: []Type{S}},

		"true":  {Outputs: []Type{B}},
		"false": {Outputs: []Type{B}},

		"dup":  {Inputs: []Type{v(0)}, Outputs: []Type{v(0), v(0)}},
		"drop": {Inputs: []Type{v(0)}},
		"swap": {Inputs: []Type{v(1), v(0)}, Outputs: []Type{v(1), v(0)}},
		"over": {Inputs: []Type{v(1), v(0)}, Outputs: []Type{v(0), v(1), v(0)}},

		"?": {Inputs: []Type{v(0), v(0), B}, Outputs: []Type{v(0)}},

		"apply": {
			Inputs: []Type{
				QuotationType{Signature: Signature{Inputs: []Type{mv(0)}, Outputs: []Type{mv(1)}}},
				mv(0),
			},
			Outputs: []Type{mv(1)},
		},
	}
}
