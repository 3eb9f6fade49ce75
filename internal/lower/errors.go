// Package lower implements the abstract interpreter that turns a decoded
// bytecode instruction stream into the register/SSA IR defined by
// pyir/internal/ir. It never touches source text: its only input is a
// pyir/internal/codeobj.Code and its only output is an *ir.Object tree
// or a translation Error.
package lower

import (
	"fmt"

	"pyir/internal/ir"
)

// Severity distinguishes bugs in the interpreter itself from malformed
// input it was handed.
type Severity uint8

const (
	// SevExternal means the input code object was malformed.
	SevExternal Severity = iota
	// SevInternal means the interpreter reached a state its own
	// invariants say should be unreachable.
	SevInternal
)

func (s Severity) String() string {
	switch s {
	case SevExternal:
		return "external"
	case SevInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Kind identifies the specific failure.
type Kind uint8

const (
	KindEmptyStack Kind = iota + 1
	KindUnsupportedOpcode
	KindMakeFunction
	KindBuildConstKeyMapLength
	KindBuildConstKeyMapKeys
	KindLoadBuildClass
	KindLoadBuildClassName
	KindImportNameFromList
	KindImportNameLevel
	KindImportNameDepth
	KindImportFrom
	KindCompareOp
	KindUnpackSequence
	KindFormatValueSpec
	KindNextOffsetMissing
	KindMissingBackEdge
	KindInvalidBackEdge
)

func (k Kind) String() string {
	switch k {
	case KindEmptyStack:
		return "EmptyStack"
	case KindUnsupportedOpcode:
		return "UnsupportedOpcode"
	case KindMakeFunction:
		return "MakeFunction"
	case KindBuildConstKeyMapLength:
		return "BuildConstKeyMapLength"
	case KindBuildConstKeyMapKeys:
		return "BuildConstKeyMapKeys"
	case KindLoadBuildClass:
		return "LoadBuildClass"
	case KindLoadBuildClassName:
		return "LoadBuildClassName"
	case KindImportNameFromList:
		return "ImportNameFromList"
	case KindImportNameLevel:
		return "ImportNameLevel"
	case KindImportNameDepth:
		return "ImportNameDepth"
	case KindImportFrom:
		return "ImportFrom"
	case KindCompareOp:
		return "CompareOp"
	case KindUnpackSequence:
		return "UnpackSequence"
	case KindFormatValueSpec:
		return "FormatValueSpec"
	case KindNextOffsetMissing:
		return "NextOffsetMissing"
	case KindMissingBackEdge:
		return "MissingBackEdge"
	case KindInvalidBackEdge:
		return "InvalidBackEdge"
	default:
		return "Unknown"
	}
}

// severities maps each Kind to its fixed severity, per the table in
// the interpreter's error-handling design.
var severities = map[Kind]Severity{
	KindEmptyStack:             SevInternal,
	KindUnsupportedOpcode:      SevInternal,
	KindMakeFunction:           SevInternal,
	KindBuildConstKeyMapLength: SevInternal,
	KindBuildConstKeyMapKeys:   SevInternal,
	KindLoadBuildClass:         SevExternal,
	KindLoadBuildClassName:     SevExternal,
	KindImportNameFromList:     SevExternal,
	KindImportNameLevel:        SevExternal,
	KindImportNameDepth:        SevExternal,
	KindImportFrom:             SevExternal,
	KindCompareOp:              SevExternal,
	KindUnpackSequence:         SevExternal,
	KindFormatValueSpec:        SevExternal,
	KindNextOffsetMissing:      SevInternal,
	KindMissingBackEdge:        SevExternal,
	KindInvalidBackEdge:        SevInternal,
}

// Error is the translator's single error type. It carries the offending
// location plus a Kind-specific payload; exactly one of the payload
// fields is meaningful for any given Kind, following the same
// closed-sum shape as the IR types in pyir/internal/ir.
type Error struct {
	Kind Kind
	Loc  ir.Loc

	Op       string // EmptyStack, UnsupportedOpcode
	What     string // MakeFunction: which operand
	Got      string // MakeFunction: what was found instead
	Want     int    // BuildConstKeyMapLength: expected key count (the opcode's argument, i.e. the value count)
	Have     int    // BuildConstKeyMapLength: actual key count (length of the keys tuple)
	Args     int    // LoadBuildClass: argument count found
	Expr     string // LoadBuildClassName, BuildConstKeyMapKeys, FormatValueSpec: rendered offending expression
	N        int    // CompareOp, UnpackSequence: the out-of-range or invalid operand
	From, To int    // MissingBackEdge, InvalidBackEdge: from-offset / to-offset
	Name     string // InvalidBackEdge: label name
	Expect   int    // InvalidBackEdge: expected SSA arity
	Actual   int    // InvalidBackEdge: actual SSA arity
}

// Severity reports whether e reflects malformed input or an interpreter
// invariant violation.
func (e *Error) Severity() Severity {
	return severities[e.Kind]
}

func (e *Error) Error() string {
	loc := e.Loc.String()
	switch e.Kind {
	case KindEmptyStack:
		return fmt.Sprintf("%s: empty stack in %s", loc, e.Op)
	case KindUnsupportedOpcode:
		return fmt.Sprintf("%s: unsupported opcode %s", loc, e.Op)
	case KindMakeFunction:
		return fmt.Sprintf("%s: MAKE_FUNCTION expected %s, got %s", loc, e.What, e.Got)
	case KindBuildConstKeyMapLength:
		return fmt.Sprintf("%s: BUILD_CONST_KEY_MAP key count %d does not match value count %d", loc, e.Have, e.Want)
	case KindBuildConstKeyMapKeys:
		return fmt.Sprintf("%s: BUILD_CONST_KEY_MAP keys operand is not a constant tuple: %s", loc, e.Expr)
	case KindLoadBuildClass:
		return fmt.Sprintf("%s: class construction call has %d args, need at least 2", loc, e.Args)
	case KindLoadBuildClassName:
		return fmt.Sprintf("%s: class name operand is not a string literal: %s", loc, e.Expr)
	case KindImportNameFromList:
		return fmt.Sprintf("%s: IMPORT_NAME fromlist operand is not interpretable as a name list", loc)
	case KindImportNameLevel:
		return fmt.Sprintf("%s: IMPORT_NAME level operand is not an integer constant", loc)
	case KindImportNameDepth:
		return fmt.Sprintf("%s: IMPORT_NAME relative level exceeds module path depth", loc)
	case KindImportFrom:
		return fmt.Sprintf("%s: IMPORT_FROM applied to a non-import value", loc)
	case KindCompareOp:
		return fmt.Sprintf("%s: COMPARE_OP index %d out of range", loc, e.N)
	case KindUnpackSequence:
		return fmt.Sprintf("%s: UNPACK_SEQUENCE count %d must be positive", loc, e.N)
	case KindFormatValueSpec:
		return fmt.Sprintf("%s: FORMAT_VALUE spec operand is not a string literal: %s", loc, e.Expr)
	case KindNextOffsetMissing:
		return fmt.Sprintf("%s: jump needs the following instruction offset but none exists", loc)
	case KindMissingBackEdge:
		return fmt.Sprintf("%s: back-jump to offset %d has no registered label (from %d)", loc, e.To, e.From)
	case KindInvalidBackEdge:
		return fmt.Sprintf("%s: back-edge label %q expects %d SSA args, got %d", loc, e.Name, e.Expect, e.Actual)
	default:
		return fmt.Sprintf("%s: unknown translation error", loc)
	}
}
