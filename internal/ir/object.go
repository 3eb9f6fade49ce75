package ir

import "pyir/internal/ident"

// NestedObject pairs a nested Object with a location: that of the nested
// code object's first instruction, or, when it has no instructions, a Loc
// whose Offset is the code constant's index in the parent's co_consts.
type NestedObject struct {
	Loc    Loc
	Object *Object
}

// Object is one translated code object: its top-level basic blocks plus
// the tree of nested code objects (functions, class bodies, comprehensions)
// found in its constant table.
type Object struct {
	Name      ident.Ident
	Toplevel  []Node
	Objects   []NestedObject
	Classes   map[string]struct{}
	Functions map[string]ident.Ident
}

// NewObject returns an empty Object named name.
func NewObject(name ident.Ident) *Object {
	return &Object{
		Name:      name,
		Classes:   make(map[string]struct{}),
		Functions: make(map[string]ident.Ident),
	}
}
