package ir

import (
	"fmt"
	"strings"
)

// TermKind tags which alternative of the closed Terminator sum a value
// holds.
type TermKind uint8

const (
	TermReturn TermKind = iota
	TermJump
	TermIf
)

func (k TermKind) String() string {
	switch k {
	case TermReturn:
		return "Return"
	case TermJump:
		return "Jump"
	case TermIf:
		return "If"
	default:
		return "?"
	}
}

// NodeCall names a successor block and the SSA arguments supplied to its
// SSA parameters, in order.
type NodeCall struct {
	Label   string
	SSAArgs []Expr
}

// ReturnTerm ends a node by returning Value from the enclosing object.
type ReturnTerm struct {
	Value Expr
}

// JumpTerm ends a node with one or more successors (more than one only
// arises from JUMP_IF_*_OR_POP, which folds into a two-way branch).
type JumpTerm struct {
	Targets []NodeCall // non-empty
}

// IfTerm ends a node with a two-way conditional branch. Then and Else
// are themselves Terminators — in practice always Jump — so If can
// nest without inventing a separate "conditional successor" shape.
type IfTerm struct {
	Cond Expr
	Then *Terminator
	Else *Terminator
}

// Terminator is a tagged sum of the ways a Node can end. Every Node ends
// with exactly one.
type Terminator struct {
	Kind TermKind

	Return ReturnTerm
	Jump   JumpTerm
	If     IfTerm
}

func NewReturn(v Expr) Terminator { return Terminator{Kind: TermReturn, Return: ReturnTerm{Value: v}} }

func NewJump(targets ...NodeCall) Terminator {
	return Terminator{Kind: TermJump, Jump: JumpTerm{Targets: targets}}
}

func NewIf(cond Expr, then, els Terminator) Terminator {
	return Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: &then, Else: &els}}
}

func (t Terminator) String() string {
	switch t.Kind {
	case TermReturn:
		return fmt.Sprintf("return %s", t.Return.Value)
	case TermJump:
		parts := make([]string, len(t.Jump.Targets))
		for i, nc := range t.Jump.Targets {
			args := make([]string, len(nc.SSAArgs))
			for j, a := range nc.SSAArgs {
				args[j] = a.String()
			}
			parts[i] = fmt.Sprintf("%s(%s)", nc.Label, strings.Join(args, ", "))
		}
		return "jump " + strings.Join(parts, ", ")
	case TermIf:
		return fmt.Sprintf("if %s then %s else %s", t.If.Cond, t.If.Then, t.If.Else)
	default:
		return "<?>"
	}
}
