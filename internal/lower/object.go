package lower

import (
	"strings"

	"pyir/internal/codeobj"
	"pyir/internal/diagbag"
	"pyir/internal/ident"
	"pyir/internal/ir"
	"pyir/internal/trace"
)

// Translate is the package entry point: it derives the module's
// identifier from the outermost code object's filename and walks the
// full nested-object tree.
func Translate(code *codeobj.Code, diag *diagbag.Bag, tracer trace.Tracer, debug bool) (*ir.Object, *Error) {
	name := ModuleNameFromFilename(code.Filename)
	root := NewRootState(name, code, diag, tracer, debug)
	return mkObject(root)
}

// ModuleNameFromFilename derives a module Identifier from a code
// object's co_filename by stripping a leading "./", the file
// extension, and splitting the remainder on "/".
func ModuleNameFromFilename(filename string) ident.Ident {
	f := strings.TrimPrefix(filename, "./")
	if dot := strings.LastIndexByte(f, '.'); dot > strings.LastIndexByte(f, '/') && dot >= 0 {
		f = f[:dot]
	}
	parts := strings.Split(f, "/")
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return ident.New("module", ident.Normal)
	}
	id := ident.New(nonEmpty[0], ident.Normal)
	for _, p := range nonEmpty[1:] {
		id = id.Extend(p)
	}
	return id
}

// mkObject initializes the entry block for s's code object, drives
// mkNodes across its instruction stream, then recurses into every
// embedded code constant.
func mkObject(s *State) (*ir.Object, *Error) {
	span := trace.Begin(s.Tracer, trace.ScopeObject, "object:"+s.ModuleName.String(), 0)
	defer span.End("")

	obj := ir.NewObject(s.ModuleName)

	if len(s.Code.Instrs) > 0 {
		s.CFG.GetLabel(s.Code.Instrs[0].Offset, nil, nil)
		s.CFG.ProcessLabel(s.Code.Instrs[0].Offset)
	}

	nodes, err := mkNodes(s)
	if err != nil {
		return nil, err
	}
	obj.Toplevel = nodes
	obj.Classes = s.Classes
	obj.Functions = s.Functions

	for i, raw := range s.Code.Consts {
		if raw.Kind != codeobj.RawCode || raw.Code == nil {
			continue
		}
		nestedName := s.ModuleName.Extend(raw.Code.Name)
		nested := NewNestedState(s, nestedName, raw.Code)
		nestedObj, nerr := mkObject(nested)
		if nerr != nil {
			return nil, nerr
		}
		loc := ir.Loc{Offset: i}
		if len(raw.Code.Instrs) > 0 {
			loc = locOf(raw.Code.Instrs[0])
		}
		obj.Objects = append(obj.Objects, ir.NestedObject{Loc: loc, Object: nestedObj})
	}

	return obj, nil
}

// mkNodes drains s's instruction stream into a sequence of Nodes,
// following the label registry to decide each block's boundary.
func mkNodes(s *State) ([]ir.Node, *Error) {
	instrs := s.Code.Instrs
	if len(instrs) == 0 {
		return nil, nil
	}
	offIdx := indexByOffset(instrs)

	var nodes []ir.Node
	idx := 0
	for idx < len(instrs) {
		offset := instrs[idx].Offset
		lbl, ok := s.CFG.Lookup(offset)
		var labelName string
		if ok {
			labelName = lbl.Name
			s.CFG.ProcessLabel(offset)
			params := make([]ir.Expr, len(lbl.SSAParameters))
			for i, p := range lbl.SSAParameters {
				params[i] = ir.NewTemp(p)
			}
			s.Stack = Replace(params)
			if lbl.Prelude != nil {
				s = lbl.Prelude(s)
			}
		} else {
			fresh := s.CFG.GetLabel(offset, s.MkSSAParameters(s.Stack.Len()), nil)
			if instrs[idx].IsJumpTarget {
				fresh.Backedge = true
			}
			labelName = fresh.Name
			s.CFG.ProcessLabel(offset)
		}
		labelLoc := locOf(instrs[idx])

		node, nextIdx, err := parseBlockUntilTerminator(s, instrs, idx, offIdx, labelName, labelLoc)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		if nextIdx <= idx {
			break
		}
		idx = nextIdx
	}
	return nodes, nil
}

// parseBlockUntilTerminator runs the interpreter starting at instrs[idx]
// until either the next instruction already carries a registered label
// (in which case the block falls into it via a synthesized Jump and idx
// is left pointing at that instruction for the caller to re-enter) or an
// opcode itself produces a terminator.
func parseBlockUntilTerminator(s *State, instrs []codeobj.Instruction, idx int, offIdx map[int]int, labelName string, labelLoc ir.Loc) (ir.Node, int, *Error) {
	node := ir.Node{Label: labelName, LabelLoc: labelLoc}
	first := true
	for {
		if idx >= len(instrs) {
			return ir.Node{}, 0, &Error{Kind: KindNextOffsetMissing, Loc: s.Loc}
		}
		instr := instrs[idx]
		if !first {
			if lbl, ok := s.CFG.Lookup(instr.Offset); ok {
				args, drained := s.Stack.ToSSA()
				s.Stack = drained
				node.Stmts = s.TakePending()
				node.SetTerm(ir.NewJump(ir.NodeCall{Label: lbl.Name, SSAArgs: args}))
				node.LastLoc = s.Loc
				return node, idx, nil
			}
			if instr.IsJumpTarget {
				// A back-edge target reached for the first time: the
				// eventual back-jump needs this join's shape fixed now,
				// before any of its instructions interpret.
				lbl := s.CFG.GetLabel(instr.Offset, s.MkSSAParameters(s.Stack.Len()), nil)
				lbl.Backedge = true
				args, drained := s.Stack.ToSSA()
				s.Stack = drained
				node.Stmts = s.TakePending()
				node.SetTerm(ir.NewJump(ir.NodeCall{Label: lbl.Name, SSAArgs: args}))
				node.LastLoc = s.Loc
				return node, idx, nil
			}
		}
		first = false
		s.Loc = locOf(instr)

		term, nextIdx, err := stepInstr(s, instrs, idx, offIdx)
		if err != nil {
			return ir.Node{}, 0, err
		}
		if term != nil {
			node.Stmts = s.TakePending()
			node.SetTerm(*term)
			node.LastLoc = s.Loc
			return node, nextIdx, nil
		}
		idx = nextIdx
	}
}

func indexByOffset(instrs []codeobj.Instruction) map[int]int {
	m := make(map[int]int, len(instrs))
	for i, instr := range instrs {
		m[instr.Offset] = i
	}
	return m
}

func locOf(instr codeobj.Instruction) ir.Loc {
	line := 0
	if instr.StartsLine != nil {
		line = *instr.StartsLine
	}
	return ir.Loc{Offset: instr.Offset, Line: line}
}
