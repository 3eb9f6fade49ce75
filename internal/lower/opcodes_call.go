package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/constant"
	"pyir/internal/ir"
)

// opMakeFunction pops qualname and code, then conditionally pops
// closure cells, annotations, keyword defaults and positional defaults
// in that fixed bit order — 0x08, 0x04, 0x02, 0x01 — discarding all but
// the annotations map. Closures and defaults are consumed but never
// attached to the resulting Function; this lossy behavior is
// deliberate, not an oversight.
func (s *State) opMakeFunction(instr codeobj.Instruction) *Error {
	qualExpr, stack1, err := s.Stack.Pop("MAKE_FUNCTION", s.Loc)
	if err != nil {
		return err
	}
	if qualExpr.Kind != ir.ExprConst || qualExpr.Const.Kind != constant.String {
		return &Error{Kind: KindMakeFunction, Loc: s.Loc, What: "qualname", Got: qualExpr.String()}
	}
	rawQualname := qualExpr.Const.Str

	codeExpr, stack2, err := stack1.Pop("MAKE_FUNCTION", s.Loc)
	if err != nil {
		return err
	}
	if codeExpr.Kind != ir.ExprConst || codeExpr.Const.Kind != constant.Code {
		return &Error{Kind: KindMakeFunction, Loc: s.Loc, What: "code", Got: codeExpr.String()}
	}
	codeVal := codeExpr.Const.Code

	stack := stack2
	flags := instr.Arg
	var annotations *ir.Expr

	if flags&0x08 != 0 {
		_, next, perr := stack.Pop("MAKE_FUNCTION", s.Loc)
		if perr != nil {
			return perr
		}
		stack = next
	}
	if flags&0x04 != 0 {
		annExpr, next, perr := stack.Pop("MAKE_FUNCTION", s.Loc)
		if perr != nil {
			return perr
		}
		if annExpr.Kind != ir.ExprConstMap {
			return &Error{Kind: KindMakeFunction, Loc: s.Loc, What: "annotations", Got: annExpr.String()}
		}
		annotations = &annExpr
		stack = next
	}
	if flags&0x02 != 0 {
		_, next, perr := stack.Pop("MAKE_FUNCTION", s.Loc)
		if perr != nil {
			return perr
		}
		stack = next
	}
	if flags&0x01 != 0 {
		_, next, perr := stack.Pop("MAKE_FUNCTION", s.Loc)
		if perr != nil {
			return perr
		}
		stack = next
	}
	s.Stack = stack

	qualname := s.ModuleName.RootIdent().ExtendDotted(rawQualname)
	s.Stack = s.Stack.Push(ir.NewFunction(qualname, codeVal, annotations))
	s.Functions[codeVal.Name] = qualname
	return nil
}

func (s *State) opCallFunction(instr codeobj.Instruction) *Error {
	args, stack1, err := s.Stack.PopN(instr.Arg, "CALL_FUNCTION", s.Loc)
	if err != nil {
		return err
	}
	callee, stack2, err := stack1.Pop("CALL_FUNCTION", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2

	if callee.Kind == ir.ExprBuiltinCaller {
		if callee.BuiltinCaller.Kind == ir.BCBuildClass {
			return s.finishBuildClass(args)
		}
		t := s.FreshSSA()
		s.Emit(ir.NewBuiltinCall(t, callee.BuiltinCaller, args))
		s.Stack = s.Stack.Push(ir.NewTemp(t))
		return nil
	}

	t := s.FreshSSA()
	s.Emit(ir.NewCall(t, callee, positionalArgs(args)))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func (s *State) finishBuildClass(args []ir.Expr) *Error {
	if len(args) < 2 {
		return &Error{Kind: KindLoadBuildClass, Loc: s.Loc, Args: len(args)}
	}
	nameExpr := args[1]
	if nameExpr.Kind != ir.ExprConst || nameExpr.Const.Kind != constant.String {
		return &Error{Kind: KindLoadBuildClassName, Loc: s.Loc, Expr: nameExpr.String()}
	}
	s.Classes[nameExpr.Const.Str] = struct{}{}
	s.Stack = s.Stack.Push(ir.NewClass(args))
	return nil
}

func (s *State) opCallMethod(instr codeobj.Instruction) *Error {
	args, stack1, err := s.Stack.PopN(instr.Arg, "CALL_METHOD", s.Loc)
	if err != nil {
		return err
	}
	callee, stack2, err := stack1.Pop("CALL_METHOD", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2
	t := s.FreshSSA()
	s.Emit(ir.NewCallMethod(t, callee, positionalArgs(args)))
	s.Stack = s.Stack.Push(ir.NewTemp(t))
	return nil
}

func positionalArgs(values []ir.Expr) []ir.CallArg {
	args := make([]ir.CallArg, len(values))
	for i, v := range values {
		args[i] = ir.CallArg{Value: v}
	}
	return args
}
