package lower

import (
	"testing"

	"pyir/internal/codeobj"
	"pyir/internal/diagbag"
	"pyir/internal/ir"
	"pyir/internal/testkit"
	"pyir/internal/trace"
)

func line(n int) *int { return &n }

// mkCode builds a minimal Code object for def f(): ... bodies with the
// given constants and instructions; offsets double as byte positions the
// same way CPython's own wordcode does (2 bytes per instruction).
func mkCode(name string, consts []codeobj.RawConstant, instrs []codeobj.Instruction) *codeobj.Code {
	return &codeobj.Code{
		Consts:   consts,
		Name:     name,
		Filename: "./mod.py",
		Instrs:   instrs,
	}
}

func translateOrFail(t *testing.T, code *codeobj.Code) *ir.Object {
	t.Helper()
	bag := diagbag.NewBag(0)
	obj, err := Translate(code, bag, trace.Nop, false)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if err := testkit.CheckLabelInvariants(obj); err != nil {
		t.Fatalf("label invariants violated: %v", err)
	}
	return obj
}

// TestTranslateReturnConst covers the simplest possible object: a single
// block that loads a constant and returns it.
func TestTranslateReturnConst(t *testing.T) {
	code := mkCode("f", []codeobj.RawConstant{{Kind: codeobj.RawInt, Int: 42}}, []codeobj.Instruction{
		{Op: "LOAD_CONST", Arg: 0, Offset: 0, StartsLine: line(1)},
		{Op: "RETURN_VALUE", Arg: 0, Offset: 2, StartsLine: line(1)},
	})
	obj := translateOrFail(t, code)
	if len(obj.Toplevel) != 1 {
		t.Fatalf("expected exactly one block, got %d", len(obj.Toplevel))
	}
	block := obj.Toplevel[0]
	if !block.Terminated() {
		t.Fatalf("block must be terminated")
	}
	if block.Last.Kind != ir.TermReturn {
		t.Fatalf("expected a return terminator, got %v", block.Last.Kind)
	}
	if len(block.Stmts) != 0 {
		t.Fatalf("LOAD_CONST/RETURN_VALUE should produce no intermediate statements, got %d", len(block.Stmts))
	}
}

// TestTranslateIfElseJoins covers POP_JUMP_IF_FALSE branching to two
// blocks that both fall into a shared join point.
//
// Bytecode (offsets in bytes, matching CPython 3.8 wordcode):
//
//	0  LOAD_CONST 0        (True)
//	2  POP_JUMP_IF_FALSE 8
//	4  LOAD_CONST 1        (1)
//	6  JUMP_FORWARD 2      (to 10)
//	8  LOAD_CONST 2        (2)
//	10 RETURN_VALUE
func TestTranslateIfElseJoins(t *testing.T) {
	code := mkCode("f", []codeobj.RawConstant{
		{Kind: codeobj.RawBool, Bool: true},
		{Kind: codeobj.RawInt, Int: 1},
		{Kind: codeobj.RawInt, Int: 2},
	}, []codeobj.Instruction{
		{Op: "LOAD_CONST", Arg: 0, Offset: 0, StartsLine: line(1)},
		{Op: "POP_JUMP_IF_FALSE", Arg: 8, Offset: 2, StartsLine: line(1)},
		{Op: "LOAD_CONST", Arg: 1, Offset: 4, StartsLine: line(2)},
		{Op: "JUMP_FORWARD", Arg: 2, Offset: 6, StartsLine: line(2)},
		{Op: "LOAD_CONST", Arg: 2, Offset: 8, StartsLine: line(4), IsJumpTarget: true},
		{Op: "RETURN_VALUE", Arg: 0, Offset: 10, StartsLine: line(4)},
	})
	obj := translateOrFail(t, code)

	// entry, then-branch, else-branch(=join target), join/return: 4 blocks
	if len(obj.Toplevel) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(obj.Toplevel), obj.Toplevel)
	}
	entry := obj.Toplevel[0]
	if entry.Last.Kind != ir.TermIf {
		t.Fatalf("entry block must end in a conditional branch, got %v", entry.Last.Kind)
	}
}

// TestTranslateWhileLoopBackEdge covers a loop header reached first by
// straight-line fallthrough, in the middle of what would otherwise be a
// single block, rather than by any prior forward jump. Its label must be
// synthesized eagerly off IsJumpTarget before the header's own
// instruction interprets, or the later JUMP_ABSOLUTE closing the loop
// finds no registered label to jump back to.
//
//	0  LOAD_CONST 0    (0)
//	2  STORE_FAST 0    (i)
//	4  LOAD_FAST 0     (i)             [header, is_jump_target]
//	6  POP_JUMP_IF_FALSE 14
//	8  LOAD_FAST 0     (i)
//	10 POP_TOP
//	11 JUMP_ABSOLUTE 4
//	14 LOAD_CONST 1    (None)
//	16 RETURN_VALUE
func TestTranslateWhileLoopBackEdge(t *testing.T) {
	code := &codeobj.Code{
		Consts:   []codeobj.RawConstant{{Kind: codeobj.RawInt, Int: 0}, {Kind: codeobj.RawNull}},
		Varnames: []string{"i"},
		Name:     "f",
		Filename: "./mod.py",
		Instrs: []codeobj.Instruction{
			{Op: "LOAD_CONST", Arg: 0, Offset: 0, StartsLine: line(1)},
			{Op: "STORE_FAST", Arg: 0, Offset: 2, StartsLine: line(1)},
			{Op: "LOAD_FAST", Arg: 0, Offset: 4, StartsLine: line(2), IsJumpTarget: true},
			{Op: "POP_JUMP_IF_FALSE", Arg: 14, Offset: 6, StartsLine: line(2)},
			{Op: "LOAD_FAST", Arg: 0, Offset: 8, StartsLine: line(3)},
			{Op: "POP_TOP", Arg: 0, Offset: 10, StartsLine: line(3)},
			{Op: "JUMP_ABSOLUTE", Arg: 4, Offset: 11, StartsLine: line(3)},
			{Op: "LOAD_CONST", Arg: 1, Offset: 14, StartsLine: line(4)},
			{Op: "RETURN_VALUE", Arg: 0, Offset: 16, StartsLine: line(4)},
		},
	}
	obj := translateOrFail(t, code)

	var headerLabel string
	for _, block := range obj.Toplevel {
		if block.LabelLoc.Offset == 4 {
			headerLabel = block.Label
		}
	}
	if headerLabel == "" {
		t.Fatalf("no block starts at offset 4 (the loop header), blocks: %+v", obj.Toplevel)
	}

	var sawBackEdge bool
	for _, block := range obj.Toplevel {
		if block.Last.Kind == ir.TermJump {
			for _, target := range block.Last.Jump.Targets {
				if target.Label == headerLabel {
					sawBackEdge = true
				}
			}
		}
	}
	if !sawBackEdge {
		t.Fatalf("expected a jump back to the loop header %q, blocks: %+v", headerLabel, obj.Toplevel)
	}
}

// TestTranslateNestedFunctionModuleName exercises mkObject's
// recursion into an embedded code constant and checks that the nested
// object's module name extends the parent's by co_name.
func TestTranslateNestedFunctionModuleName(t *testing.T) {
	inner := mkCode("inner", []codeobj.RawConstant{{Kind: codeobj.RawNull}}, []codeobj.Instruction{
		{Op: "LOAD_CONST", Arg: 0, Offset: 0, StartsLine: line(2)},
		{Op: "RETURN_VALUE", Arg: 0, Offset: 2, StartsLine: line(2)},
	})
	outer := mkCode("outer", []codeobj.RawConstant{{Kind: codeobj.RawCode, Code: inner}}, []codeobj.Instruction{
		{Op: "LOAD_CONST", Arg: 0, Offset: 0, StartsLine: line(1)},
		{Op: "RETURN_VALUE", Arg: 0, Offset: 2, StartsLine: line(1)},
	})
	obj := translateOrFail(t, outer)
	if len(obj.Objects) != 1 {
		t.Fatalf("expected one nested object, got %d", len(obj.Objects))
	}
	if got, want := obj.Objects[0].Object.Name.String(), "mod.inner"; got != want {
		t.Fatalf("nested module name = %q, want %q", got, want)
	}
}

func TestTranslateEmptyCodeProducesNoBlocks(t *testing.T) {
	code := mkCode("empty", nil, nil)
	obj := translateOrFail(t, code)
	if len(obj.Toplevel) != 0 {
		t.Fatalf("expected no blocks for an empty instruction stream, got %d", len(obj.Toplevel))
	}
}
