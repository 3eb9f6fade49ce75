package lower

import (
	"testing"

	"pyir/internal/constant"
	"pyir/internal/ir"
)

func constExpr(i int64) ir.Expr {
	return ir.NewConst(constant.NewInt(i))
}

func TestStackPushPopOrder(t *testing.T) {
	s := Stack{}
	s = s.Push(constExpr(1))
	s = s.Push(constExpr(2))

	top, rest, err := s.Pop("TEST", ir.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top.Const.Int != 2 {
		t.Fatalf("expected top=2, got %d", top.Const.Int)
	}
	if rest.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", rest.Len())
	}
}

func TestStackPopEmpty(t *testing.T) {
	s := Stack{}
	_, _, err := s.Pop("TEST", ir.Loc{})
	if err == nil || err.Kind != KindEmptyStack {
		t.Fatalf("expected KindEmptyStack, got %v", err)
	}
}

func TestStackPeekDoesNotMutate(t *testing.T) {
	s := Stack{}
	s = s.Push(constExpr(7))
	v, err := s.Peek("TEST", ir.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Const.Int != 7 {
		t.Fatalf("expected 7, got %d", v.Const.Int)
	}
	if s.Len() != 1 {
		t.Fatalf("peek must not remove the value, len=%d", s.Len())
	}
}

func TestStackPopNDeepestFirst(t *testing.T) {
	s := Stack{}
	s = s.Push(constExpr(1)) // pushed first, deepest
	s = s.Push(constExpr(2))
	s = s.Push(constExpr(3)) // top

	vals, rest, err := s.PopN(3, "TEST", ir.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{1, 2, 3}
	for i, w := range want {
		if vals[i].Const.Int != w {
			t.Fatalf("index %d: want %d, got %d", i, w, vals[i].Const.Int)
		}
	}
	if rest.Len() != 0 {
		t.Fatalf("expected empty stack after PopN(3), got len=%d", rest.Len())
	}
}

func TestStackToSSATopFirstAndDrains(t *testing.T) {
	s := Stack{}
	s = s.Push(constExpr(1))
	s = s.Push(constExpr(2))

	args, drained := s.ToSSA()
	if len(args) != 2 || args[0].Const.Int != 2 || args[1].Const.Int != 1 {
		t.Fatalf("unexpected ToSSA order: %v", args)
	}
	if drained.Len() != 0 {
		t.Fatalf("ToSSA must drain the stack, got len=%d", drained.Len())
	}
}

func TestReplaceIsIndependentCopy(t *testing.T) {
	items := []ir.Expr{constExpr(1), constExpr(2)}
	s := Replace(items)
	items[0] = constExpr(99)
	v, _, err := s.Pop("TEST", ir.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Const.Int != 1 {
		t.Fatalf("Replace must copy its input, got %d", v.Const.Int)
	}
}
