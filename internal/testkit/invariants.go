// Package testkit holds small invariant checks shared across this
// module's test files, the same role the teacher's own testkit package
// plays for its AST span checks.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pyir/internal/ir"
)

// CheckLabelInvariants walks obj and every nested object confirming:
// 1) every block has a non-empty Label
// 2) no two blocks in the same object share a Label
// 3) every LabelLoc.Offset fits the unsigned 32-bit width the wire
//    format uses, the same bound codeobj.ValidateWidths enforces on
//    the way in
//
// This does not duplicate internal/irvalidate.Validate: that package
// checks jump/arity consistency across the CFG, a production-facing
// concern; this one checks the shape test fixtures are expected to
// hold, cheaply, without needing a full CFG walk.
func CheckLabelInvariants(obj *ir.Object) error {
	if obj == nil {
		return fmt.Errorf("nil object")
	}
	seen := make(map[string]struct{}, len(obj.Toplevel))
	for _, n := range obj.Toplevel {
		if n.Label == "" {
			return fmt.Errorf("object %s: block with empty label", obj.Name)
		}
		if _, dup := seen[n.Label]; dup {
			return fmt.Errorf("object %s: duplicate block label %q", obj.Name, n.Label)
		}
		seen[n.Label] = struct{}{}
		if _, err := safecast.Conv[uint32](n.LabelLoc.Offset); err != nil {
			return fmt.Errorf("object %s: block %q offset overflow: %w", obj.Name, n.Label, err)
		}
	}
	for _, nested := range obj.Objects {
		if err := CheckLabelInvariants(nested.Object); err != nil {
			return err
		}
	}
	return nil
}
