package irvalidate

import (
	"testing"

	"pyir/internal/constant"
	"pyir/internal/ident"
	"pyir/internal/ir"
)

func mkReturnNode(label string) ir.Node {
	n := ir.Node{Label: label}
	n.SetTerm(ir.NewReturn(ir.NewConst(constant.NewInt(0))))
	return n
}

func mkJumpNode(label, target string, args []ir.Expr) ir.Node {
	n := ir.Node{Label: label}
	n.SetTerm(ir.NewJump(ir.NodeCall{Label: target, SSAArgs: args}))
	return n
}

func TestValidateAcceptsWellFormedObject(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{
		mkJumpNode("bb0", "bb1", []ir.Expr{ir.NewTemp(0)}),
		mkReturnNode("bb1"),
	}
	if err := Validate(obj); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsUnterminatedBlock(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{{Label: "bb0"}}
	if err := Validate(obj); err == nil {
		t.Fatalf("expected an error for an unterminated block")
	}
}

func TestValidateRejectsJumpToUndefinedLabel(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{
		mkJumpNode("bb0", "bb99", nil),
	}
	if err := Validate(obj); err == nil {
		t.Fatalf("expected an error for a jump to an undefined label")
	}
}

func TestValidateRejectsArityMismatchAcrossJumps(t *testing.T) {
	obj := ir.NewObject(ident.New("m", ident.Normal))
	obj.Toplevel = []ir.Node{
		mkJumpNode("bb0", "bb2", []ir.Expr{ir.NewTemp(0)}),
		mkJumpNode("bb1", "bb2", nil),
		mkReturnNode("bb2"),
	}
	if err := Validate(obj); err == nil {
		t.Fatalf("expected an error for mismatched SSA arity across jumps to bb2")
	}
}

func TestValidateRecursesIntoNestedObjects(t *testing.T) {
	inner := ir.NewObject(ident.New("m", ident.Normal).Extend("inner"))
	inner.Toplevel = []ir.Node{{Label: "bb0"}} // unterminated

	outer := ir.NewObject(ident.New("m", ident.Normal))
	outer.Toplevel = []ir.Node{mkReturnNode("bb0")}
	outer.Objects = []ir.NestedObject{{Object: inner}}

	if err := Validate(outer); err == nil {
		t.Fatalf("expected the nested object's error to surface")
	}
}
