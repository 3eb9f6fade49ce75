package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/ir"
)

func (s *State) opBinary(instr codeobj.Instruction, op ir.BinOp) *Error {
	b, stack1, err := s.Stack.Pop(instr.Op, s.Loc)
	if err != nil {
		return err
	}
	a, stack2, err := stack1.Pop(instr.Op, s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2
	t := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCBinary, Binary: op}, []ir.Expr{a, b}))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) opInplace(instr codeobj.Instruction, op ir.BinOp) *Error {
	b, stack1, err := s.Stack.Pop(instr.Op, s.Loc)
	if err != nil {
		return err
	}
	a, stack2, err := stack1.Pop(instr.Op, s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2
	t := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCInplace, Inplace: op}, []ir.Expr{a, b}))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) opUnary(instr codeobj.Instruction, op ir.UnOp) *Error {
	x, stack, err := s.Stack.Pop(instr.Op, s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack
	t := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCUnary, Unary: op}, []ir.Expr{x}))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) opCompareOp(instr codeobj.Instruction) *Error {
	cmp, ok := ir.LookupCmpOp(instr.Arg)
	if !ok {
		return &Error{Kind: KindCompareOp, Loc: s.Loc, N: instr.Arg}
	}
	b, stack1, err := s.Stack.Pop("COMPARE_OP", s.Loc)
	if err != nil {
		return err
	}
	a, stack2, err := stack1.Pop("COMPARE_OP", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2
	t := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCCompare, Compare: cmp}, []ir.Expr{a, b}))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) opBinarySubscr(instr codeobj.Instruction) *Error {
	index, stack1, err := s.Stack.Pop("BINARY_SUBSCR", s.Loc)
	if err != nil {
		return err
	}
	exp, stack2, err := stack1.Pop("BINARY_SUBSCR", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2.Push(ir.NewSubscript(exp, index))
	return nil
}
