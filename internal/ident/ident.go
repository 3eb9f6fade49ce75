// Package ident models qualified names the way the translator's source
// language exposes them: a root plus a reversed attribute path, tagged
// with where the name ultimately came from.
package ident

import "strings"

// Kind classifies where an Ident's root was bound.
type Kind uint8

const (
	// Builtin identifies a name pre-seeded into a scope (print, len, ...).
	Builtin Kind = iota
	// Imported identifies a name bound by an import statement.
	Imported
	// Normal identifies an ordinary user-defined name.
	Normal
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Builtin:
		return "builtin"
	case Imported:
		return "imported"
	case Normal:
		return "normal"
	default:
		return "unknown"
	}
}

// Ident is a qualified name: root.a.b.c, stored as (root, path) with path
// held in reverse so appending an attribute is an O(1) prepend. Path[0] is
// the most recently appended attribute; the last element of Path is the
// attribute closest to Root. Ident is never empty: Root is always set.
type Ident struct {
	Root string
	Path []string
	Kind Kind
}

// New returns a bare root identifier with no attribute path.
func New(root string, kind Kind) Ident {
	return Ident{Root: root, Kind: kind}
}

// IsValid reports whether id carries the invariant a valid Ident must:
// a non-empty root.
func (id Ident) IsValid() bool {
	return id.Root != ""
}

// Extend returns a copy of id with attr appended to the dotted path.
func (id Ident) Extend(attr string) Ident {
	path := make([]string, 0, len(id.Path)+1)
	path = append(path, attr)
	path = append(path, id.Path...)
	return Ident{Root: id.Root, Path: path, Kind: id.Kind}
}

// ExtendDotted splits raw on '.' and extends id by each component in turn,
// left to right, as MAKE_FUNCTION does with a raw qualname.
func (id Ident) ExtendDotted(raw string) Ident {
	out := id
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			continue
		}
		out = out.Extend(part)
	}
	return out
}

// Pop strips the most recently appended attribute, if any.
func (id Ident) Pop() Ident {
	if len(id.Path) == 0 {
		return id
	}
	path := make([]string, len(id.Path)-1)
	copy(path, id.Path[1:])
	return Ident{Root: id.Root, Path: path, Kind: id.Kind}
}

// RootIdent discards the attribute path, keeping Root and Kind.
func (id Ident) RootIdent() Ident {
	return Ident{Root: id.Root, Kind: id.Kind}
}

// WithKind returns a copy of id tagged with a different Kind.
func (id Ident) WithKind(kind Kind) Ident {
	return Ident{Root: id.Root, Path: id.Path, Kind: kind}
}

// String reconstructs the dotted form root.a.b.c by reversing Path.
func (id Ident) String() string {
	if len(id.Path) == 0 {
		return id.Root
	}
	parts := make([]string, len(id.Path))
	for i, p := range id.Path {
		parts[len(id.Path)-1-i] = p
	}
	return id.Root + "." + strings.Join(parts, ".")
}

// Unknown builds the explicit "$unknown.<name>" identifier resolve()
// produces for names it cannot place in any scope.
func Unknown(name string) Ident {
	return New("$unknown", Normal).Extend(name)
}
