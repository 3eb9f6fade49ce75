// Package irprint renders a translated Object tree as human-readable
// text, in the same node-by-node, statement-by-statement style the
// downstream emitter would consume it in.
package irprint

import (
	"fmt"
	"io"

	"pyir/internal/ir"
)

// DumpObject writes obj and every object nested inside it to w.
func DumpObject(w io.Writer, obj *ir.Object) error {
	if w == nil || obj == nil {
		return nil
	}
	if err := dumpOne(w, obj); err != nil {
		return err
	}
	for _, nested := range obj.Objects {
		fmt.Fprintf(w, "\n")
		if err := DumpObject(w, nested.Object); err != nil {
			return err
		}
	}
	return nil
}

func dumpOne(w io.Writer, obj *ir.Object) error {
	fmt.Fprintf(w, "object %s:\n", obj.Name)
	if len(obj.Classes) > 0 {
		fmt.Fprintf(w, "  classes:")
		for name := range obj.Classes {
			fmt.Fprintf(w, " %s", name)
		}
		fmt.Fprintln(w)
	}
	if len(obj.Functions) > 0 {
		fmt.Fprintf(w, "  functions:")
		for short, qual := range obj.Functions {
			fmt.Fprintf(w, " %s->%s", short, qual)
		}
		fmt.Fprintln(w)
	}
	for i := range obj.Toplevel {
		if err := dumpNode(w, &obj.Toplevel[i]); err != nil {
			return err
		}
	}
	return nil
}

func dumpNode(w io.Writer, n *ir.Node) error {
	fmt.Fprintf(w, "  %s:\n", n.Label)
	for _, stmt := range n.Stmts {
		fmt.Fprintf(w, "    %s\n", stmt.Stmt)
	}
	fmt.Fprintf(w, "    %s\n", n.Last)
	return nil
}
