package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/ir"
)

func (s *State) opLoadConst(instr codeobj.Instruction) *Error {
	s.Stack = s.Stack.Push(normalizeConst(s.Code, instr.Arg))
	return nil
}

func (s *State) opLoadName(instr codeobj.Instruction, global bool) *Error {
	name := mustName(s.Code, instr.Arg)
	s.Stack = s.Stack.Push(ir.NewVar(s.Resolve(name, global)))
	return nil
}

func (s *State) opLoadFast(instr codeobj.Instruction) *Error {
	name := mustVarname(s.Code, instr.Arg)
	s.Stack = s.Stack.Push(ir.NewLocalVar(name))
	return nil
}

func (s *State) opLoadAttr(instr codeobj.Instruction) *Error {
	x, stack, err := s.Stack.Pop("LOAD_ATTR", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack.Push(ir.NewGetAttr(x, mustName(s.Code, instr.Arg)))
	return nil
}

func (s *State) opLoadMethod(instr codeobj.Instruction) *Error {
	x, stack, err := s.Stack.Pop("LOAD_METHOD", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack.Push(ir.NewLoadMethod(x, mustName(s.Code, instr.Arg)))
	return nil
}

func (s *State) opLoadClosure(instr codeobj.Instruction) *Error {
	name, err := s.Code.ClosureVar(instr.Arg)
	if err != nil {
		panic("lower: " + err.Error())
	}
	s.Stack = s.Stack.Push(ir.NewLoadClosure(name))
	return nil
}

func (s *State) opLoadBuildClass() *Error {
	s.Stack = s.Stack.Push(ir.NewBuiltinCaller(ir.BuiltinCaller{Kind: ir.BCBuildClass}))
	return nil
}

func (s *State) opDupTop(instr codeobj.Instruction) *Error {
	top, err := s.Stack.Peek("DUP_TOP", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = s.Stack.Push(top)
	return nil
}
