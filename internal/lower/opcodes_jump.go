package lower

import (
	"pyir/internal/codeobj"
	"pyir/internal/ir"
)

// labelFor resolves the label registered at offset, minting one with a
// fresh SSA-parameter list of the given arity if none exists yet.
// GetLabel is itself idempotent, so this is safe to call even when the
// label already exists: the freshly allocated parameters are simply
// discarded in favor of the registered shape.
func (s *State) labelFor(offset int, arity int) *ir.Label[*State] {
	return s.CFG.GetLabel(offset, s.MkSSAParameters(arity), nil)
}

// opPopJumpIf handles POP_JUMP_IF_TRUE (jumpIfFalse=false) and
// POP_JUMP_IF_FALSE (jumpIfFalse=true). The condition is popped and the
// remaining stack becomes the shared ssa_args for both successors.
func (s *State) opPopJumpIf(instrs []codeobj.Instruction, idx int, jumpIfFalse bool) (*ir.Terminator, int, *Error) {
	instr := instrs[idx]
	cond, stack, err := s.Stack.Pop(instr.Op, s.Loc)
	if err != nil {
		return nil, idx, err
	}
	s.Stack = stack

	args, _ := s.Stack.ToSSA()
	arity := len(args)

	if idx+1 >= len(instrs) {
		return nil, idx, &Error{Kind: KindNextOffsetMissing, Loc: s.Loc}
	}
	nextLbl := s.labelFor(instrs[idx+1].Offset, arity)
	otherLbl := s.labelFor(instr.Arg, arity)

	condFinal := cond
	if !jumpIfFalse {
		condFinal = ir.NewNot(cond)
	}
	term := ir.NewIf(condFinal,
		ir.NewJump(ir.NodeCall{Label: nextLbl.Name, SSAArgs: args}),
		ir.NewJump(ir.NodeCall{Label: otherLbl.Name, SSAArgs: args}))
	return &term, idx + 1, nil
}

// opJumpOrPop handles JUMP_IF_TRUE_OR_POP (jumpIfTrue=true) and
// JUMP_IF_FALSE_OR_POP (jumpIfTrue=false). The condition is only peeked:
// the jump-taken successor keeps it on the stack, the pop successor
// drops it.
func (s *State) opJumpOrPop(instrs []codeobj.Instruction, idx int, jumpIfTrue bool) (*ir.Terminator, int, *Error) {
	instr := instrs[idx]
	cond, err := s.Stack.Peek(instr.Op, s.Loc)
	if err != nil {
		return nil, idx, err
	}

	fullArgs, _ := s.Stack.ToSSA()
	droppedArgs := fullArgs[1:]

	if idx+1 >= len(instrs) {
		return nil, idx, &Error{Kind: KindNextOffsetMissing, Loc: s.Loc}
	}
	otherLbl := s.labelFor(instr.Arg, len(fullArgs))
	nextLbl := s.labelFor(instrs[idx+1].Offset, len(droppedArgs))

	condFinal := cond
	if !jumpIfTrue {
		condFinal = ir.NewNot(cond)
	}
	term := ir.NewIf(condFinal,
		ir.NewJump(ir.NodeCall{Label: otherLbl.Name, SSAArgs: fullArgs}),
		ir.NewJump(ir.NodeCall{Label: nextLbl.Name, SSAArgs: droppedArgs}))
	return &term, idx + 1, nil
}

func (s *State) opJumpForward(instrs []codeobj.Instruction, idx int) (*ir.Terminator, int, *Error) {
	if idx+1 >= len(instrs) {
		return nil, idx, &Error{Kind: KindNextOffsetMissing, Loc: s.Loc}
	}
	instr := instrs[idx]
	target := instrs[idx+1].Offset + instr.Arg
	args, _ := s.Stack.ToSSA()
	lbl := s.labelFor(target, len(args))
	term := ir.NewJump(ir.NodeCall{Label: lbl.Name, SSAArgs: args})
	return &term, idx + 1, nil
}

// opJumpAbsolute distinguishes a back-edge (target before the current
// offset) from an ordinary forward absolute jump. A back-edge's
// label must already exist with matching SSA arity; anything else is a
// contract violation the frontend's is_jump_target flagging was
// supposed to prevent.
func (s *State) opJumpAbsolute(instr codeobj.Instruction, idx int) (*ir.Terminator, int, *Error) {
	target := instr.Arg
	args, _ := s.Stack.ToSSA()

	if target < instr.Offset {
		lbl, ok := s.CFG.Lookup(target)
		if !ok {
			return nil, idx, &Error{Kind: KindMissingBackEdge, Loc: s.Loc, From: instr.Offset, To: target}
		}
		if len(lbl.SSAParameters) != len(args) {
			return nil, idx, &Error{Kind: KindInvalidBackEdge, Loc: s.Loc, Name: lbl.Name, Expect: len(lbl.SSAParameters), Actual: len(args)}
		}
		term := ir.NewJump(ir.NodeCall{Label: lbl.Name, SSAArgs: args})
		return &term, idx + 1, nil
	}

	lbl := s.labelFor(target, len(args))
	term := ir.NewJump(ir.NodeCall{Label: lbl.Name, SSAArgs: args})
	return &term, idx + 1, nil
}

// opForIter pops the iterator and drains the remaining stack into the
// shared ssa_args for both successors. The has-item successor's prelude
// repushes the iterator and the freshly computed item so the loop body
// sees [item, iterator, ...]; the exhausted successor just resumes with
// the drained stack.
func (s *State) opForIter(instrs []codeobj.Instruction, idx int) (*ir.Terminator, int, *Error) {
	instr := instrs[idx]
	iterator, stack, err := s.Stack.Pop(instr.Op, s.Loc)
	if err != nil {
		return nil, idx, err
	}
	s.Stack = stack

	nextIterSSA := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(nextIterSSA, ir.BuiltinCaller{Kind: ir.BCNextIter}, []ir.Expr{iterator}))

	hasNextSSA := s.FreshSSA()
	s.Emit(ir.NewBuiltinCall(hasNextSSA, ir.BuiltinCaller{Kind: ir.BCHasNextIter}, []ir.Expr{ir.NewTemp(nextIterSSA)}))
	cond := ir.NewTemp(hasNextSSA)

	args, _ := s.Stack.ToSSA()

	if idx+1 >= len(instrs) {
		return nil, idx, &Error{Kind: KindNextOffsetMissing, Loc: s.Loc}
	}
	otherOffset := instrs[idx+1].Offset + instr.Arg

	prelude := func(st *State) *State {
		st.Stack = st.Stack.Push(iterator)
		t := st.FreshSSA()
		st.Emit(ir.NewBuiltinCall(t, ir.BuiltinCaller{Kind: ir.BCIterData}, []ir.Expr{ir.NewTemp(nextIterSSA)}))
		st.Stack = st.Stack.Push(ir.NewTemp(t))
		return st
	}

	hasItemLbl := s.CFG.GetLabel(instrs[idx+1].Offset, s.MkSSAParameters(len(args)), prelude)
	exhaustedLbl := s.labelFor(otherOffset, len(args))

	term := ir.NewIf(cond,
		ir.NewJump(ir.NodeCall{Label: hasItemLbl.Name, SSAArgs: args}),
		ir.NewJump(ir.NodeCall{Label: exhaustedLbl.Name, SSAArgs: args}))
	return &term, idx + 1, nil
}
