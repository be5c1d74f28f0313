package analyzer

// Context is the global unification state for a single Analyze call:
// the substitutions discovered so far for each Var and MultiVar id,
// and the monotonic counters that mint fresh ids. It is shared across
// every nested quotation so ids minted inside a quotation never
// collide with ids minted outside it.
type Context struct {
	vars         map[int]Type
	multivars    map[int][]Type
	varCounter   int
	multiCounter int
}

func newContext() *Context {
	return &Context{
		vars:      make(map[int]Type),
		multivars: make(map[int][]Type),
	}
}

func (c *Context) getVar(id int) (Type, bool) {
	t, ok := c.vars[id]
	return t, ok
}

// setVar records a binding. Once bound, a variable is never rebound -
// callers only call this after confirming (via getVar) that id is free.
func (c *Context) setVar(id int, t Type) {
	c.vars[id] = t
}

func (c *Context) getMultivar(id int) ([]Type, bool) {
	t, ok := c.multivars[id]
	return t, ok
}

func (c *Context) setMultivar(id int, ts []Type) {
	c.multivars[id] = ts
}

func (c *Context) genVar() int {
	id := c.varCounter
	c.varCounter++
	return id
}

func (c *Context) genMultivar() int {
	id := c.multiCounter
	c.multiCounter++
	return id
}
