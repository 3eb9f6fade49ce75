package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/constant"
	"pyir/internal/ir"
)

func (s *State) opUnpackSequence(instr codeobj.Instruction) *Error {
	n := instr.Arg
	if n <= 0 {
		return &Error{Kind: KindUnpackSequence, Loc: s.Loc, N: n}
	}
	tos, stack, err := s.Stack.Pop("UNPACK_SEQUENCE", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack
	for i := n - 1; i >= 0; i-- {
		s.Stack = s.Stack.Push(ir.NewSubscript(tos, ir.NewConst(constant.NewInt(int64(i)))))
	}
	return nil
}

func (s *State) opFormatValue(instr codeobj.Instruction) *Error {
	var specExpr *ir.Expr
	if instr.Arg&0x04 != 0 {
		e, stack, err := s.Stack.Pop("FORMAT_VALUE", s.Loc)
		if err != nil {
			return err
		}
		if e.Kind != ir.ExprConst || e.Const.Kind != constant.String {
			return &Error{Kind: KindFormatValueSpec, Loc: s.Loc, Expr: e.String()}
		}
		specExpr = &e
		s.Stack = stack
	}

	value, stack, err := s.Stack.Pop("FORMAT_VALUE", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack

	var convFn ir.FormatFnKind
	hasConv := true
	switch instr.Arg & 0x03 {
	case 1:
		convFn = ir.FormatStr
	case 2:
		convFn = ir.FormatRepr
	case 3:
		convFn = ir.FormatAscii
	default:
		hasConv = false
	}
	if hasConv {
		t := s.FreshSSA()
		s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCFormatFn, FormatFn: convFn}, []ir.Expr{value}))
		value = ir.NewTemp(t)
	}

	specArg := ir.NewConst(constant.Nil())
	if specExpr != nil {
		specArg = *specExpr
	}
	t := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCFormat}, []ir.Expr{value, specArg}))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) opGetIter(instr codeobj.Instruction) *Error {
	x, stack, err := s.Stack.Pop("GET_ITER", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack
	t := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCGetIter}, []ir.Expr{x}))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) opReturnValue(instr codeobj.Instruction, idx int) (*ir.Terminator, int, *Error) {
	v, stack, err := s.Stack.Pop("RETURN_VALUE", s.Loc)
	if err != nil {
		return nil, idx, err
	}
	s.Stack = stack
	term := ir.NewReturn(v)
	return &term, idx + 1, nil
}
