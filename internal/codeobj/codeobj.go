// Package codeobj defines the shape the bytecode frontend hands to the
// translator: a code object's constant table, name tables, and ordered
// instruction stream. Decoding an actual marshal/pyc stream is the
// frontend's job; this package only owns the agreed wire shape and two
// reference decoders (JSON fixtures, MessagePack for the binary form the
// frontend actually emits).
package codeobj

import (
	"fmt"

	"fortio.org/safecast"
)

// RawKind tags a RawConstant the way the frontend hands constants over,
// before the translator normalizes them into constant.Value.
type RawKind uint8

const (
	RawInt RawKind = iota
	RawBool
	RawFloat
	RawString
	RawBytes // byte string; the translator coerces this to RawString text
	RawTuple
	RawCode
	RawNull
)

// RawConstant is one entry of a code object's constant table before
// normalization.
type RawConstant struct {
	Kind  RawKind
	Int   int64
	Bool  bool
	Float float64
	Str   string
	Bytes []byte
	Tuple []RawConstant
	Code  *Code
}

// Instruction is one decoded bytecode instruction.
type Instruction struct {
	Op           string
	Arg          int
	Offset       int
	StartsLine   *int
	IsJumpTarget bool
}

// Code is one code object: the constant/name tables plus its instruction
// stream, exactly as spec.md §6 describes the frontend's output.
type Code struct {
	Consts    []RawConstant
	Names     []string
	Varnames  []string
	Cellvars  []string
	Freevars  []string
	Name      string
	Filename  string
	Instrs    []Instruction
}

// ClosureVar returns co_cellvars[i] if in range, else co_freevars[i-len(cellvars)].
// LOAD_CLOSURE indexes cell and free variables as one contiguous space.
func (c *Code) ClosureVar(i int) (string, error) {
	if i < 0 {
		return "", fmt.Errorf("codeobj: negative closure index %d", i)
	}
	if i < len(c.Cellvars) {
		return c.Cellvars[i], nil
	}
	j := i - len(c.Cellvars)
	if j < len(c.Freevars) {
		return c.Freevars[j], nil
	}
	return "", fmt.Errorf("codeobj: closure index %d out of range (cellvars=%d freevars=%d)", i, len(c.Cellvars), len(c.Freevars))
}

// Const returns co_consts[i], bounds-checked.
func (c *Code) Const(i int) (RawConstant, error) {
	if i < 0 || i >= len(c.Consts) {
		return RawConstant{}, fmt.Errorf("codeobj: const index %d out of range (len=%d)", i, len(c.Consts))
	}
	return c.Consts[i], nil
}

// NameAt returns co_names[i], bounds-checked.
func (c *Code) NameAt(i int) (string, error) {
	if i < 0 || i >= len(c.Names) {
		return "", fmt.Errorf("codeobj: name index %d out of range (len=%d)", i, len(c.Names))
	}
	return c.Names[i], nil
}

// Varname returns co_varnames[i], bounds-checked.
func (c *Code) Varname(i int) (string, error) {
	if i < 0 || i >= len(c.Varnames) {
		return "", fmt.Errorf("codeobj: varname index %d out of range (len=%d)", i, len(c.Varnames))
	}
	return c.Varnames[i], nil
}

// ValidateWidths checks that every instruction's offset and argument fit
// the unsigned 32-bit width CPython's own wordcode uses, recursing into
// every nested code constant. A decoder handing over a negative offset
// or an arg that doesn't fit means the frontend's wire contract was
// broken before the translator ever sees it.
func (c *Code) ValidateWidths() error {
	if c == nil {
		return nil
	}
	for _, instr := range c.Instrs {
		if _, err := safecast.Conv[uint32](instr.Offset); err != nil {
			return fmt.Errorf("codeobj: %s: instruction offset %d: %w", c.Filename, instr.Offset, err)
		}
		if _, err := safecast.Conv[uint32](instr.Arg); err != nil {
			return fmt.Errorf("codeobj: %s: instruction %s arg %d: %w", c.Filename, instr.Op, instr.Arg, err)
		}
	}
	for _, raw := range c.Consts {
		if raw.Kind == RawCode {
			if err := raw.Code.ValidateWidths(); err != nil {
				return err
			}
		}
	}
	return nil
}
