package lower

import (
	"fmt"

	"pyir/internal/codeobj"
	"pyir/internal/constant"
	"pyir/internal/ir"
	"pyir/internal/trace"
)

// mustConst, mustName and mustVarname index into the code object's
// tables directly. A well-formed instruction stream never produces an
// out-of-range index into its own code object's tables — the frontend
// that emitted the stream guarantees it, the same way CPython's own
// compiler guarantees LOAD_FAST's argument is a valid varnames index.
// An out-of-range index here means the frontend contract was violated,
// which is a bug in that collaborator, not a translation error this
// package's Error type is meant to describe.
func mustConst(c *codeobj.Code, i int) codeobj.RawConstant {
	raw, err := c.Const(i)
	if err != nil {
		panic(fmt.Sprintf("lower: %v", err))
	}
	return raw
}

func mustName(c *codeobj.Code, i int) string {
	name, err := c.NameAt(i)
	if err != nil {
		panic(fmt.Sprintf("lower: %v", err))
	}
	return name
}

func mustVarname(c *codeobj.Code, i int) string {
	name, err := c.Varname(i)
	if err != nil {
		panic(fmt.Sprintf("lower: %v", err))
	}
	return name
}

// stepInstr interprets instrs[idx], mutating s. It returns a non-nil
// Terminator when the opcode ends the current block, along with the
// instruction index the caller should resume scanning from.
func stepInstr(s *State, instrs []codeobj.Instruction, idx int, offIdx map[int]int) (*ir.Terminator, int, *Error) {
	instr := instrs[idx]

	if s.Tracer.Enabled() && s.Tracer.Level().ShouldEmit(trace.ScopeOpcode) {
		s.Tracer.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopeOpcode, Name: instr.Op, Detail: fmt.Sprintf("arg=%d offset=%d", instr.Arg, instr.Offset)})
	}

	switch instr.Op {
	// --- loads ---
	case "LOAD_CONST":
		return nil, idx + 1, s.opLoadConst(instr)
	case "LOAD_NAME":
		return nil, idx + 1, s.opLoadName(instr, false)
	case "LOAD_GLOBAL":
		return nil, idx + 1, s.opLoadName(instr, true)
	case "LOAD_FAST":
		return nil, idx + 1, s.opLoadFast(instr)
	case "LOAD_ATTR":
		return nil, idx + 1, s.opLoadAttr(instr)
	case "LOAD_METHOD":
		return nil, idx + 1, s.opLoadMethod(instr)
	case "LOAD_CLOSURE":
		return nil, idx + 1, s.opLoadClosure(instr)
	case "LOAD_BUILD_CLASS":
		return nil, idx + 1, s.opLoadBuildClass()
	case "DUP_TOP":
		return nil, idx + 1, s.opDupTop(instr)

	// --- stores ---
	case "STORE_NAME":
		return nil, idx + 1, s.opStoreName(instr)
	case "STORE_GLOBAL":
		return nil, idx + 1, s.opStoreGlobal(instr)
	case "STORE_FAST":
		return nil, idx + 1, s.opStoreFast(instr)
	case "STORE_ATTR":
		return nil, idx + 1, s.opStoreAttr(instr)
	case "STORE_SUBSCR":
		return nil, idx + 1, s.opStoreSubscr(instr)
	case "POP_TOP":
		return nil, idx + 1, s.opPopTop(instr)
	case "SETUP_ANNOTATIONS":
		return nil, idx + 1, s.opSetupAnnotations()

	// --- binary / unary / compare ---
	case "COMPARE_OP":
		return nil, idx + 1, s.opCompareOp(instr)
	case "BINARY_SUBSCR":
		return nil, idx + 1, s.opBinarySubscr(instr)
	case "UNARY_POSITIVE":
		return nil, idx + 1, s.opUnary(instr, ir.UnPositive)
	case "UNARY_NEGATIVE":
		return nil, idx + 1, s.opUnary(instr, ir.UnNegative)
	case "UNARY_NOT":
		return nil, idx + 1, s.opUnary(instr, ir.UnNot)
	case "UNARY_INVERT":
		return nil, idx + 1, s.opUnary(instr, ir.UnInvert)

	// --- build ---
	case "BUILD_LIST":
		return nil, idx + 1, s.opBuild(instr, ir.CollectionList, instr.Arg)
	case "BUILD_SET":
		return nil, idx + 1, s.opBuild(instr, ir.CollectionSet, instr.Arg)
	case "BUILD_TUPLE":
		return nil, idx + 1, s.opBuild(instr, ir.CollectionTuple, instr.Arg)
	case "BUILD_SLICE":
		return nil, idx + 1, s.opBuild(instr, ir.CollectionSlice, instr.Arg)
	case "BUILD_STRING":
		return nil, idx + 1, s.opBuild(instr, ir.CollectionString, instr.Arg)
	case "BUILD_MAP":
		return nil, idx + 1, s.opBuildMap(instr)
	case "BUILD_CONST_KEY_MAP":
		return nil, idx + 1, s.opBuildConstKeyMap(instr)

	// --- calls / functions / classes ---
	case "MAKE_FUNCTION":
		return nil, idx + 1, s.opMakeFunction(instr)
	case "CALL_FUNCTION":
		return nil, idx + 1, s.opCallFunction(instr)
	case "CALL_METHOD":
		return nil, idx + 1, s.opCallMethod(instr)

	// --- imports ---
	case "IMPORT_NAME":
		return nil, idx + 1, s.opImportName(instr)
	case "IMPORT_FROM":
		return nil, idx + 1, s.opImportFrom(instr)

	// --- misc value ops ---
	case "UNPACK_SEQUENCE":
		return nil, idx + 1, s.opUnpackSequence(instr)
	case "FORMAT_VALUE":
		return nil, idx + 1, s.opFormatValue(instr)
	case "GET_ITER":
		return nil, idx + 1, s.opGetIter(instr)

	default:
		if op, ok := binaryOpTable[instr.Op]; ok {
			return nil, idx + 1, s.opBinary(instr, op)
		}
		if op, ok := inplaceOpTable[instr.Op]; ok {
			return nil, idx + 1, s.opInplace(instr, op)
		}
	}

	// --- terminators ---
	switch instr.Op {
	case "RETURN_VALUE":
		return s.opReturnValue(instr, idx)
	case "POP_JUMP_IF_TRUE":
		return s.opPopJumpIf(instrs, idx, false)
	case "POP_JUMP_IF_FALSE":
		return s.opPopJumpIf(instrs, idx, true)
	case "JUMP_IF_TRUE_OR_POP":
		return s.opJumpOrPop(instrs, idx, true)
	case "JUMP_IF_FALSE_OR_POP":
		return s.opJumpOrPop(instrs, idx, false)
	case "JUMP_FORWARD":
		return s.opJumpForward(instrs, idx)
	case "JUMP_ABSOLUTE":
		return s.opJumpAbsolute(instr, idx)
	case "FOR_ITER":
		return s.opForIter(instrs, idx)
	}

	return nil, idx, &Error{Kind: KindUnsupportedOpcode, Loc: s.Loc, Op: instr.Op}
}

// binaryOpTable and inplaceOpTable map BINARY_*/INPLACE_* opcode names to
// the shared ir.BinOp they denote.
var binaryOpTable = map[string]ir.BinOp{
	"BINARY_ADD":             ir.OpAdd,
	"BINARY_AND":             ir.OpAnd,
	"BINARY_FLOOR_DIVIDE":    ir.OpFloorDivide,
	"BINARY_LSHIFT":          ir.OpLShift,
	"BINARY_MATRIX_MULTIPLY": ir.OpMatrixMultiply,
	"BINARY_MODULO":          ir.OpModulo,
	"BINARY_MULTIPLY":        ir.OpMultiply,
	"BINARY_OR":              ir.OpOr,
	"BINARY_POWER":           ir.OpPower,
	"BINARY_RSHIFT":          ir.OpRShift,
	"BINARY_SUBTRACT":        ir.OpSubtract,
	"BINARY_TRUE_DIVIDE":     ir.OpTrueDivide,
	"BINARY_XOR":             ir.OpXor,
}

var inplaceOpTable = map[string]ir.BinOp{
	"INPLACE_ADD":             ir.OpAdd,
	"INPLACE_AND":             ir.OpAnd,
	"INPLACE_FLOOR_DIVIDE":    ir.OpFloorDivide,
	"INPLACE_LSHIFT":          ir.OpLShift,
	"INPLACE_MATRIX_MULTIPLY": ir.OpMatrixMultiply,
	"INPLACE_MODULO":          ir.OpModulo,
	"INPLACE_MULTIPLY":        ir.OpMultiply,
	"INPLACE_OR":              ir.OpOr,
	"INPLACE_POWER":           ir.OpPower,
	"INPLACE_RSHIFT":          ir.OpRShift,
	"INPLACE_SUBTRACT":        ir.OpSubtract,
	"INPLACE_TRUE_DIVIDE":     ir.OpTrueDivide,
	"INPLACE_XOR":             ir.OpXor,
}

// normalizeConst is a small convenience wrapping constant.Normalize for
// the opcode handlers.
func normalizeConst(c *codeobj.Code, i int) ir.Expr {
	return ir.NewConst(constant.Normalize(mustConst(c, i)))
}
