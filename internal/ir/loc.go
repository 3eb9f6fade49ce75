package ir

import "fmt"

// Loc identifies a point in a code object's instruction stream: the byte
// offset the CFG keys labels on, plus the source line the frontend
// attached to the instruction (if any).
type Loc struct {
	Offset int
	Line   int // 0 when the frontend attached no line to this instruction
}

func (l Loc) String() string {
	if l.Line == 0 {
		return fmt.Sprintf("@%d", l.Offset)
	}
	return fmt.Sprintf("@%d:%d", l.Offset, l.Line)
}
