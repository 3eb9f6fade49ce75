package lower

import (
	"fmt"

	"pyir/internal/codeobj"
	"pyir/internal/constant"
	"pyir/internal/ir"
)

func (s *State) opImportName(instr codeobj.Instruction) *Error {
	name := mustName(s.Code, instr.Arg)

	fromlistExpr, stack1, err := s.Stack.Pop("IMPORT_NAME", s.Loc)
	if err != nil {
		return err
	}
	if fromlistExpr.Kind != ir.ExprConst {
		return &Error{Kind: KindImportNameFromList, Loc: s.Loc}
	}
	fromlist, ok := fromlistExpr.Const.AsNameList()
	if !ok {
		return &Error{Kind: KindImportNameFromList, Loc: s.Loc}
	}

	levelExpr, stack2, err := stack1.Pop("IMPORT_NAME", s.Loc)
	if err != nil {
		return err
	}
	if levelExpr.Kind != ir.ExprConst || levelExpr.Const.Kind != constant.Int {
		return &Error{Kind: KindImportNameLevel, Loc: s.Loc}
	}
	level := levelExpr.Const.Int
	s.Stack = stack2

	var id string
	if level == 0 {
		id = name
	} else {
		cur := s.ModuleName
		for i := int64(0); i < level; i++ {
			if len(cur.Path) == 0 {
				return &Error{Kind: KindImportNameDepth, Loc: s.Loc}
			}
			cur = cur.Pop()
		}
		if name != "" {
			cur = cur.ExtendDotted(name)
		}
		id = cur.String()
	}

	imp := ir.NewImportName(id, fromlist)
	s.Emit(ir.NewImportNameStmt(imp))
	s.Stack = s.Stack.Push(imp)
	return nil
}

// opImportFrom peeks — never pops — the ImportName it pulls a name out
// of, so the same value stays available on the stack for further
// IMPORT_FROM calls against the same import. A name missing from the
// declared fromlist is only a warning: the resulting ImportFrom still
// flows through to the caller (spec's own open question about this).
func (s *State) opImportFrom(instr codeobj.Instruction) *Error {
	name := mustName(s.Code, instr.Arg)
	top, err := s.Stack.Peek("IMPORT_FROM", s.Loc)
	if err != nil {
		return err
	}

	switch top.Kind {
	case ir.ExprImportName:
		if !containsString(top.ImportName.Fromlist, name) && s.Diag != nil {
			s.Diag.Warn(s.Loc, fmt.Sprintf("name %q not in fromlist of import %q", name, top.ImportName.ID))
		}
	case ir.ExprImportFrom:
		// chained from-import; fromlist membership was already checked
		// against the inner import.
	default:
		return &Error{Kind: KindImportFrom, Loc: s.Loc}
	}

	s.Stack = s.Stack.Push(ir.NewImportFrom(top, name))
	return nil
}

func containsString(list []string, needle string) bool {
	for _, v := range list {
		if v == needle {
			return true
		}
	}
	return false
}
