package irprint

import (
	"bytes"
	"strings"
	"testing"

	"pyir/internal/constant"
	"pyir/internal/ident"
	"pyir/internal/ir"
)

func TestDumpObjectRendersLabelsAndTerminator(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	n := ir.Node{Label: "bb0"}
	n.SetTerm(ir.NewReturn(ir.NewConst(constant.NewInt(1))))
	obj.Toplevel = []ir.Node{n}

	var buf bytes.Buffer
	if err := DumpObject(&buf, obj); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "object m:") {
		t.Fatalf("missing object header: %q", out)
	}
	if !strings.Contains(out, "bb0:") {
		t.Fatalf("missing block label: %q", out)
	}
}

func TestDumpObjectRecursesIntoNested(t *testing.T) {
	inner := ir.NewObject(ident.New("m", ident.Normal).Extend("inner"))
	n := ir.Node{Label: "bb0"}
	n.SetTerm(ir.NewReturn(ir.NewConst(constant.Nil())))
	inner.Toplevel = []ir.Node{n}

	outer := ir.NewObject(ident.New("m", ident.Normal))
	outer.Toplevel = []ir.Node{n}
	outer.Objects = []ir.NestedObject{{Object: inner}}

	var buf bytes.Buffer
	if err := DumpObject(&buf, outer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "object m.inner:") {
		t.Fatalf("missing nested object header: %q", out)
	}
}

func TestDumpObjectNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpObject(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for a nil object, got %q", buf.String())
	}
}
