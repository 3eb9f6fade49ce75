package ir

import (
	"testing"

	"pyir/internal/constant"
	"pyir/internal/ident"
)

func TestNodeTerminatedTracksSetTerm(t *testing.T) {
	var n Node
	if n.Terminated() {
		t.Fatalf("a fresh Node must report unterminated")
	}
	n.SetTerm(NewReturn(NewConst(constant.NewInt(1))))
	if !n.Terminated() {
		t.Fatalf("SetTerm must mark the node terminated")
	}
	if n.Last.Kind != TermReturn {
		t.Fatalf("Last.Kind = %v, want TermReturn", n.Last.Kind)
	}
}

func TestNilNodeIsNotTerminated(t *testing.T) {
	var n *Node
	if n.Terminated() {
		t.Fatalf("a nil *Node must report unterminated")
	}
}

func TestExprStringRendersEachKind(t *testing.T) {
	cases := []struct {
		name string
		e    Expr
	}{
		{"const", NewConst(constant.NewInt(1))},
		{"var", NewVar(ident.New("x", ident.Normal))},
		{"localvar", NewLocalVar("i")},
		{"temp", NewTemp(SSA(3))},
		{"subscript", NewSubscript(NewLocalVar("xs"), NewConst(constant.NewInt(0)))},
		{"collection", NewCollection(CollectionList, []Expr{NewConst(constant.NewInt(1))})},
		{"getattr", NewGetAttr(NewLocalVar("obj"), "field")},
		{"not", NewNot(NewLocalVar("cond"))},
	}
	for _, c := range cases {
		if c.e.String() == "" {
			t.Errorf("%s: String() returned empty", c.name)
		}
	}
}

func TestNewJumpAndNewIfComposeTerminators(t *testing.T) {
	jump := NewJump(NodeCall{Label: "bb1", SSAArgs: []Expr{NewTemp(0)}})
	if jump.Kind != TermJump || len(jump.Jump.Targets) != 1 {
		t.Fatalf("unexpected jump terminator: %+v", jump)
	}

	then := NewJump(NodeCall{Label: "bb1"})
	els := NewJump(NodeCall{Label: "bb2"})
	ifTerm := NewIf(NewLocalVar("cond"), then, els)
	if ifTerm.Kind != TermIf {
		t.Fatalf("expected TermIf, got %v", ifTerm.Kind)
	}
	if ifTerm.If.Then.Jump.Targets[0].Label != "bb1" || ifTerm.If.Else.Jump.Targets[0].Label != "bb2" {
		t.Fatalf("If branches wired to the wrong targets: %+v", ifTerm.If)
	}
}

func TestStmtStringRendersAssignAndCall(t *testing.T) {
	assign := NewAssign(NewLocalVar("x"), NewConst(constant.NewInt(1)))
	if assign.String() != "x = 1" {
		t.Fatalf("Assign.String() = %q", assign.String())
	}

	name := "key"
	call := NewCall(SSA(0), NewLocalVar("f"), []CallArg{
		{Value: NewConst(constant.NewInt(1))},
		{Name: &name, Value: NewConst(constant.NewInt(2))},
	})
	if got, want := call.String(), "n0 = f(1, key=2)"; got != want {
		t.Fatalf("Call.String() = %q, want %q", got, want)
	}
}

func TestObjectTreeShape(t *testing.T) {
	obj := NewObject(ident.New("mod", ident.Normal))
	if obj.Name.String() != "mod" {
		t.Fatalf("NewObject did not preserve the name: %v", obj.Name)
	}
	if len(obj.Toplevel) != 0 || len(obj.Objects) != 0 {
		t.Fatalf("a fresh Object must start empty: %+v", obj)
	}
}
