package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/constant"
	"pyir/internal/ir"
)

func (s *State) opBuild(instr codeobj.Instruction, kind ir.CollectionKind, n int) *Error {
	values, stack, err := s.Stack.PopN(n, instr.Op, s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack.Push(ir.NewCollection(kind, values))
	return nil
}

func (s *State) opBuildMap(instr codeobj.Instruction) *Error {
	values, stack, err := s.Stack.PopN(2*instr.Arg, instr.Op, s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack.Push(ir.NewCollection(ir.CollectionMap, values))
	return nil
}

func (s *State) opBuildConstKeyMap(instr codeobj.Instruction) *Error {
	n := instr.Arg
	keysExpr, stack1, err := s.Stack.Pop("BUILD_CONST_KEY_MAP", s.Loc)
	if err != nil {
		return err
	}
	if keysExpr.Kind != ir.ExprConst || keysExpr.Const.Kind != constant.Tuple {
		return &Error{Kind: KindBuildConstKeyMapKeys, Loc: s.Loc, Expr: keysExpr.String()}
	}
	keys := keysExpr.Const.Tuple
	if len(keys) != n {
		return &Error{Kind: KindBuildConstKeyMapLength, Loc: s.Loc, Want: n, Have: len(keys)}
	}
	values, stack2, err := stack1.PopN(n, instr.Op, s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2

	entries := make([]ir.ConstMapEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = ir.ConstMapEntry{Key: keys[i], Value: values[i]}
	}
	s.Stack = s.Stack.Push(ir.NewConstMap(entries))
	return nil
}
