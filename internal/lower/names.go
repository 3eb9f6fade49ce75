package lower

import "pyir/internal/ident"

// Resolve looks up name against the correct scope. At module top level
// every read is a global read regardless of global; otherwise, a global
// read goes straight to Globals, and an ordinary read checks Locals
// before falling back to Globals. A name found in neither table
// resolves to the explicit "$unknown.<name>" placeholder so downstream
// tooling can flag it.
func (s *State) Resolve(name string, global bool) ident.Ident {
	if s.IsTopLevel || global {
		if id, ok := s.Globals[name]; ok {
			return id
		}
		return ident.Unknown(name)
	}
	if id, ok := s.Locals[name]; ok {
		return id
	}
	if id, ok := s.Globals[name]; ok {
		return id
	}
	return ident.Unknown(name)
}

// Register writes id into the correct table for name, applying the same
// top-level-forces-global rule as Resolve.
func (s *State) Register(name string, id ident.Ident, global bool) {
	if s.IsTopLevel || global {
		s.Globals[name] = id
		return
	}
	s.Locals[name] = id
}
