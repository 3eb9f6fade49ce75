package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/ident"
	"pyir/internal/ir"
)

// importBinding reports the identifier a name should be rebound to when
// the value just stored came from an import, so later LOAD_NAME/LOAD_GLOBAL
// resolution sees the imported entity rather than a plain module attribute.
func importBinding(rhs ir.Expr) (ident.Ident, bool) {
	switch rhs.Kind {
	case ir.ExprImportName:
		return ident.New(rhs.ImportName.ID, ident.Imported), true
	case ir.ExprImportFrom:
		return ident.New(rhs.ImportFrom.Name, ident.Imported), true
	default:
		return ident.Ident{}, false
	}
}

func (s *State) opStoreName(instr codeobj.Instruction) *Error {
	name := mustName(s.Code, instr.Arg)
	rhs, stack, err := s.Stack.Pop("STORE_NAME", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack

	target := s.ModuleName.Extend(name).WithKind(ident.Normal)
	s.Emit(ir.NewAssign(ir.NewVar(target), rhs))

	bound := target
	if imp, ok := importBinding(rhs); ok {
		bound = imp
	}
	s.Register(name, bound, false)
	return nil
}

func (s *State) opStoreGlobal(instr codeobj.Instruction) *Error {
	name := mustName(s.Code, instr.Arg)
	rhs, stack, err := s.Stack.Pop("STORE_GLOBAL", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack

	target := s.ModuleName.RootIdent().Extend(name).WithKind(ident.Normal)
	s.Emit(ir.NewAssign(ir.NewVar(target), rhs))

	bound := target
	if imp, ok := importBinding(rhs); ok {
		bound = imp
	}
	s.Register(name, bound, true)
	return nil
}

func (s *State) opStoreFast(instr codeobj.Instruction) *Error {
	name := mustVarname(s.Code, instr.Arg)
	rhs, stack, err := s.Stack.Pop("STORE_FAST", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack
	s.Emit(ir.NewAssign(ir.NewLocalVar(name), rhs))
	return nil
}

func (s *State) opStoreAttr(instr codeobj.Instruction) *Error {
	recv, stack1, err := s.Stack.Pop("STORE_ATTR", s.Loc)
	if err != nil {
		return err
	}
	value, stack2, err := stack1.Pop("STORE_ATTR", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack2
	name := mustName(s.Code, instr.Arg)
	s.Emit(ir.NewAssign(ir.NewGetAttr(recv, name), value))
	return nil
}

func (s *State) opStoreSubscr(instr codeobj.Instruction) *Error {
	index, stack1, err := s.Stack.Pop("STORE_SUBSCR", s.Loc)
	if err != nil {
		return err
	}
	recv, stack2, err := stack1.Pop("STORE_SUBSCR", s.Loc)
	if err != nil {
		return err
	}
	value, stack3, err := stack2.Pop("STORE_SUBSCR", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack3
	s.Emit(ir.NewAssign(ir.NewSubscript(recv, index), value))
	return nil
}

func (s *State) opPopTop(instr codeobj.Instruction) *Error {
	v, stack, err := s.Stack.Pop("POP_TOP", s.Loc)
	if err != nil {
		return err
	}
	s.Stack = stack
	if v.Kind == ir.ExprImportName || v.Kind == ir.ExprTemp {
		return nil
	}
	t := s.FreshSSA()
	s.Emit(ir.NewAssign(ir.NewTemp(t), v))
	return nil
}

func (s *State) opSetupAnnotations() *Error {
	target := s.ModuleName.Extend("__annotations__").WithKind(ident.Normal)
	s.Register("__annotations__", target, false)
	s.Emit(ir.NewSetupAnnotations())
	return nil
}
