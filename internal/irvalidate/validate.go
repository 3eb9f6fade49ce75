// Package irvalidate checks the structural invariants a translated
// Object tree must satisfy: every block terminates exactly once, every
// jump target names a label that exists somewhere in the same object's
// blocks, and every two jumps landing on the same label agree on how
// many SSA arguments they carry.
package irvalidate

import (
	"errors"
	"fmt"

	"pyir/internal/ir"
)

// Validate walks obj and every object nested inside it, collecting every
// invariant violation it finds rather than stopping at the first.
func Validate(obj *ir.Object) error {
	if obj == nil {
		return nil
	}
	var errs []error
	if err := validateObject(obj); err != nil {
		errs = append(errs, fmt.Errorf("object %s: %w", obj.Name, err))
	}
	for _, nested := range obj.Objects {
		if err := Validate(nested.Object); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// arityWitness remembers the first NodeCall seen for a label, so later
// calls to the same label can be checked against it.
type arityWitness struct {
	arity    int
	fromNode string
}

func validateObject(obj *ir.Object) error {
	var errs []error

	labels := make(map[string]bool, len(obj.Toplevel))
	for _, node := range obj.Toplevel {
		if labels[node.Label] {
			errs = append(errs, fmt.Errorf("label %q registered more than once", node.Label))
		}
		labels[node.Label] = true
	}

	witnesses := make(map[string]arityWitness)
	for i := range obj.Toplevel {
		node := &obj.Toplevel[i]
		if !node.Terminated() {
			errs = append(errs, fmt.Errorf("block %q: unterminated", node.Label))
			continue
		}
		validateTerminator(node.Label, node.Last, labels, witnesses, &errs)
	}

	return errors.Join(errs...)
}

func validateTerminator(from string, term ir.Terminator, labels map[string]bool, witnesses map[string]arityWitness, errs *[]error) {
	switch term.Kind {
	case ir.TermReturn:
		// no successors to check
	case ir.TermJump:
		for _, nc := range term.Jump.Targets {
			validateNodeCall(from, nc, labels, witnesses, errs)
		}
	case ir.TermIf:
		if term.If.Then != nil {
			validateTerminator(from, *term.If.Then, labels, witnesses, errs)
		}
		if term.If.Else != nil {
			validateTerminator(from, *term.If.Else, labels, witnesses, errs)
		}
	}
}

func validateNodeCall(from string, nc ir.NodeCall, labels map[string]bool, witnesses map[string]arityWitness, errs *[]error) {
	if !labels[nc.Label] {
		*errs = append(*errs, fmt.Errorf("block %q: jump to undefined label %q", from, nc.Label))
		return
	}
	arity := len(nc.SSAArgs)
	if w, ok := witnesses[nc.Label]; ok {
		if w.arity != arity {
			*errs = append(*errs, fmt.Errorf("label %q: block %q supplies %d ssa args but block %q supplied %d",
				nc.Label, from, arity, w.fromNode, w.arity))
		}
		return
	}
	witnesses[nc.Label] = arityWitness{arity: arity, fromNode: from}
}
