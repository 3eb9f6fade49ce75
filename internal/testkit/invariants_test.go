package testkit

import (
	"testing"

	"pyir/internal/constant"
	"pyir/internal/ident"
	"pyir/internal/ir"
)

func mkNode(label string, offset int) ir.Node {
	n := ir.Node{Label: label, LabelLoc: ir.Loc{Offset: offset}}
	n.SetTerm(ir.NewReturn(ir.NewConst(constant.NewInt(0))))
	return n
}

func TestCheckLabelInvariantsAcceptsWellFormedObject(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{mkNode("bb0", 0), mkNode("bb1", 2)}
	if err := CheckLabelInvariants(obj); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckLabelInvariantsRejectsDuplicateLabels(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{mkNode("bb0", 0), mkNode("bb0", 2)}
	if err := CheckLabelInvariants(obj); err == nil {
		t.Fatalf("expected an error for a duplicate label")
	}
}

func TestCheckLabelInvariantsRejectsEmptyLabel(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{mkNode("", 0)}
	if err := CheckLabelInvariants(obj); err == nil {
		t.Fatalf("expected an error for an empty label")
	}
}

func TestCheckLabelInvariantsRecursesIntoNested(t *testing.T) {
	inner := ir.NewObject(ident.New("m", ident.Normal).Extend("inner"))
	inner.Toplevel = []ir.Node{mkNode("bb0", 0), mkNode("bb0", 2)}

	outer := ir.NewObject(ident.New("m", ident.Normal))
	outer.Toplevel = []ir.Node{mkNode("bb0", 0)}
	outer.Objects = []ir.NestedObject{{Object: inner}}

	if err := CheckLabelInvariants(outer); err == nil {
		t.Fatalf("expected the nested object's violation to surface")
	}
}

func TestCheckLabelInvariantsNilObject(t *testing.T) {
	if err := CheckLabelInvariants(nil); err == nil {
		t.Fatalf("expected an error for a nil object")
	}
}
