package lower

import "pyir/internal/ir"

// Stack is the compile-time symbolic evaluation stack: a value, not a
// runtime artifact. items[0] is top-of-stack; every operation returns a
// new Stack rather than mutating in place, matching the "each opcode
// handler takes and returns a new state" design.
type Stack struct {
	items []ir.Expr
}

// Push returns a new Stack with e on top.
func (s Stack) Push(e ir.Expr) Stack {
	items := make([]ir.Expr, 0, len(s.items)+1)
	items = append(items, e)
	items = append(items, s.items...)
	return Stack{items: items}
}

// Pop returns the top value and the stack with it removed.
func (s Stack) Pop(op string, loc ir.Loc) (ir.Expr, Stack, *Error) {
	if len(s.items) == 0 {
		return ir.Expr{}, s, &Error{Kind: KindEmptyStack, Loc: loc, Op: op}
	}
	top := s.items[0]
	rest := make([]ir.Expr, len(s.items)-1)
	copy(rest, s.items[1:])
	return top, Stack{items: rest}, nil
}

// Peek returns the top value without removing it.
func (s Stack) Peek(op string, loc ir.Loc) (ir.Expr, *Error) {
	if len(s.items) == 0 {
		return ir.Expr{}, &Error{Kind: KindEmptyStack, Loc: loc, Op: op}
	}
	return s.items[0], nil
}

// PopN pops k values and returns them deepest-first (i.e. the reverse of
// pop order), matching pop_n's documented result order.
func (s Stack) PopN(k int, op string, loc ir.Loc) ([]ir.Expr, Stack, *Error) {
	cur := s
	popped := make([]ir.Expr, 0, k)
	for i := 0; i < k; i++ {
		var v ir.Expr
		var err *Error
		v, cur, err = cur.Pop(op, loc)
		if err != nil {
			return nil, s, err
		}
		popped = append(popped, v)
	}
	// popped is in pop order (shallowest first); reverse for deepest-first.
	for i, j := 0, len(popped)-1; i < j; i, j = i+1, j-1 {
		popped[i], popped[j] = popped[j], popped[i]
	}
	return popped, cur, nil
}

// Len reports the current stack arity.
func (s Stack) Len() int {
	return len(s.items)
}

// ToSSA drains the stack, returning its live expressions in top-first
// order for use as jump SSA arguments, and the emptied stack.
func (s Stack) ToSSA() ([]ir.Expr, Stack) {
	out := make([]ir.Expr, len(s.items))
	copy(out, s.items)
	return out, Stack{}
}

// Replace returns a Stack whose contents are exactly items (top-first).
func Replace(items []ir.Expr) Stack {
	cp := make([]ir.Expr, len(items))
	copy(cp, items)
	return Stack{items: cp}
}
