package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/diagbag"
	"pyir/internal/ident"
	"pyir/internal/ir"
	"pyir/internal/trace"
)

// builtinGlobals and builtinLocals are the pre-seeded name tables every
// translation state starts from, per the identifier-resolution rules.
var builtinGlobals = []string{
	"print", "range", "open", "len", "type", "str", "int", "float",
	"bool", "object", "super", "hasattr", "__name__", "__file__",
}

var builtinLocals = []string{"__name__", "staticmethod"}

func seededNames(names []string) map[string]ident.Ident {
	m := make(map[string]ident.Ident, len(names))
	for _, n := range names {
		m[n] = ident.New(n, ident.Builtin)
	}
	return m
}

// State is the mutable translation state for one code object. Opcode
// handlers take a *State and update it in place, returning only an
// *Error. The Stack field is an immutable value: a handler replaces it
// with the new Stack its operations return. The CFG and the SSA counter
// persist across handler calls within one object.
type State struct {
	ModuleName  ident.Ident
	IsTopLevel  bool
	Loc         ir.Loc
	CFG         *ir.CFG[*State]
	Globals     map[string]ident.Ident
	Locals      map[string]ident.Ident
	Stack       Stack
	Pending     []ir.LocStmt
	ssaCounter  int32
	Classes     map[string]struct{}
	Functions   map[string]ident.Ident
	Code        *codeobj.Code
	Diag        *diagbag.Bag
	Tracer      trace.Tracer
	Debug       bool
}

// NewRootState builds the state for the outermost (module) code object.
func NewRootState(moduleName ident.Ident, code *codeobj.Code, diag *diagbag.Bag, tracer trace.Tracer, debug bool) *State {
	return &State{
		ModuleName: moduleName,
		IsTopLevel: true,
		CFG:        ir.NewCFG[*State](),
		Globals:    seededNames(builtinGlobals),
		Locals:     seededNames(builtinLocals),
		Classes:    make(map[string]struct{}),
		Functions:  make(map[string]ident.Ident),
		Code:       code,
		Diag:       diag,
		Tracer:     tracer,
		Debug:      debug,
	}
}

// NewNestedState builds the state for a code object embedded in
// parent's constant table. It inherits parent's Globals table by
// reference — STORE_GLOBAL from any nested scope mutates the one true
// module-level namespace — but starts with a fresh, freshly re-seeded
// Locals table of its own, since local slots are private to each
// function.
func NewNestedState(parent *State, name ident.Ident, code *codeobj.Code) *State {
	return &State{
		ModuleName: name,
		IsTopLevel: false,
		CFG:        ir.NewCFG[*State](),
		Globals:    parent.Globals,
		Locals:     seededNames(builtinLocals),
		Classes:    make(map[string]struct{}),
		Functions:  make(map[string]ident.Ident),
		Code:       code,
		Diag:       parent.Diag,
		Tracer:     parent.Tracer,
		Debug:      parent.Debug,
	}
}

// FreshSSA allocates and returns the next SSA temporary name, scoped to
// this state's object.
func (s *State) FreshSSA() ir.SSA {
	n := s.ssaCounter
	s.ssaCounter++
	return ir.SSA(n)
}

// MkSSAParameters allocates k fresh SSA names to stand for the stack a
// successor block expects.
func (s *State) MkSSAParameters(k int) []ir.SSA {
	params := make([]ir.SSA, k)
	for i := range params {
		params[i] = s.FreshSSA()
	}
	return params
}

// Emit appends stmt to the pending statement list for the block
// currently being built.
func (s *State) Emit(stmt ir.Stmt) {
	s.Pending = append(s.Pending, ir.LocStmt{Loc: s.Loc, Stmt: stmt})
}

// TakePending returns and clears the accumulated statements.
func (s *State) TakePending() []ir.LocStmt {
	out := s.Pending
	s.Pending = nil
	return out
}
