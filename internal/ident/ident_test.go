package ident

import "testing"

func TestExtendAndString(t *testing.T) {
	id := New("mod", Normal).Extend("Foo").Extend("bar")
	if got, want := id.String(), "mod.Foo.bar"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestExtendDottedSplitsOnDots(t *testing.T) {
	id := New("mod", Normal).ExtendDotted("Outer.Inner.method")
	if got, want := id.String(), "mod.Outer.Inner.method"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestPopStripsMostRecentAttribute(t *testing.T) {
	id := New("mod", Normal).Extend("a").Extend("b")
	popped := id.Pop()
	if got, want := popped.String(), "mod.a"; got != want {
		t.Fatalf("Pop().String() = %q, want %q", got, want)
	}
}

func TestPopOnBareRootIsNoop(t *testing.T) {
	id := New("mod", Normal)
	if popped := id.Pop(); popped.String() != id.String() {
		t.Fatalf("Pop() on a bare root changed the identifier: %v", popped)
	}
}

func TestRootIdentDropsPath(t *testing.T) {
	id := New("mod", Imported).Extend("a").Extend("b")
	root := id.RootIdent()
	if root.String() != "mod" || root.Kind != Imported {
		t.Fatalf("RootIdent() = %+v", root)
	}
}

func TestWithKindPreservesPath(t *testing.T) {
	id := New("mod", Normal).Extend("a")
	imported := id.WithKind(Imported)
	if imported.String() != id.String() {
		t.Fatalf("WithKind changed the path: %v", imported)
	}
	if imported.Kind != Imported {
		t.Fatalf("WithKind did not change the kind")
	}
}

func TestUnknownProducesSentinelRoot(t *testing.T) {
	id := Unknown("x")
	if got, want := id.String(), "$unknown.x"; got != want {
		t.Fatalf("Unknown(%q).String() = %q, want %q", "x", got, want)
	}
}

func TestIsValid(t *testing.T) {
	if (Ident{}).IsValid() {
		t.Fatalf("zero-value Ident must be invalid")
	}
	if !New("mod", Normal).IsValid() {
		t.Fatalf("New(...) must be valid")
	}
}
