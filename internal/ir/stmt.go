package ir

import (
	"fmt"
	"strings"
)

// StmtKind tags which alternative of the closed Stmt sum a value holds.
type StmtKind uint8

const (
	StmtAssign StmtKind = iota
	StmtCall
	StmtCallMethod
	StmtImportName
	StmtBuiltinCall
	StmtSetupAnnotations
)

func (k StmtKind) String() string {
	switch k {
	case StmtAssign:
		return "Assign"
	case StmtCall:
		return "Call"
	case StmtCallMethod:
		return "CallMethod"
	case StmtImportName:
		return "ImportName"
	case StmtBuiltinCall:
		return "BuiltinCall"
	case StmtSetupAnnotations:
		return "SetupAnnotations"
	default:
		return "?"
	}
}

// CallArg is one call argument; Name is non-nil for a keyword argument.
type CallArg struct {
	Name  *string
	Value Expr
}

// AssignStmt assigns Rhs to the storage location Lhs denotes (a Var,
// GetAttr, Subscript, or LocalVar expression).
type AssignStmt struct {
	LHS Expr
	RHS Expr
}

// CallStmt calls Callee with Args, binding the result to the SSA name
// Lhs for later reference by a Temp expression.
type CallStmt struct {
	LHS    SSA
	Callee Expr
	Args   []CallArg
}

// CallMethodStmt is CallStmt's counterpart for CALL_METHOD, where Callee
// is always a LoadMethod expression.
type CallMethodStmt struct {
	LHS    SSA
	Callee Expr
	Args   []CallArg
}

// ImportNameStmt is the companion side-effect marker IMPORT_NAME emits
// alongside the ImportName expression it pushes, so the downstream
// emitter can preserve the import's side effect even if the pushed value
// is later discarded.
type ImportNameStmt struct {
	Expr Expr // an ExprImportName
}

// BuiltinCallStmt invokes a BuiltinCaller pseudo-function.
type BuiltinCallStmt struct {
	LHS  SSA
	Call BuiltinCaller
	Args []Expr
}

// Stmt is a tagged sum of the translator's straight-line statement
// forms.
type Stmt struct {
	Kind StmtKind

	Assign           AssignStmt
	Call             CallStmt
	CallMethod       CallMethodStmt
	ImportName       ImportNameStmt
	BuiltinCall      BuiltinCallStmt
	SetupAnnotations struct{}
}

func NewAssign(lhs, rhs Expr) Stmt {
	return Stmt{Kind: StmtAssign, Assign: AssignStmt{LHS: lhs, RHS: rhs}}
}

func NewCall(lhs SSA, callee Expr, args []CallArg) Stmt {
	return Stmt{Kind: StmtCall, Call: CallStmt{LHS: lhs, Callee: callee, Args: args}}
}

func NewCallMethod(lhs SSA, callee Expr, args []CallArg) Stmt {
	return Stmt{Kind: StmtCallMethod, CallMethod: CallMethodStmt{LHS: lhs, Callee: callee, Args: args}}
}

func NewImportNameStmt(imp Expr) Stmt {
	return Stmt{Kind: StmtImportName, ImportName: ImportNameStmt{Expr: imp}}
}

func NewBuiltinCall(lhs SSA, call BuiltinCaller, args []Expr) Stmt {
	return Stmt{Kind: StmtBuiltinCall, BuiltinCall: BuiltinCallStmt{LHS: lhs, Call: call, Args: args}}
}

func NewSetupAnnotations() Stmt { return Stmt{Kind: StmtSetupAnnotations} }

// LocStmt pairs a statement with the source location of the instruction
// that produced it.
type LocStmt struct {
	Loc  Loc
	Stmt Stmt
}

func argsString(args []CallArg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Name != nil {
			parts[i] = fmt.Sprintf("%s=%s", *a.Name, a.Value)
		} else {
			parts[i] = a.Value.String()
		}
	}
	return strings.Join(parts, ", ")
}

func (s Stmt) String() string {
	switch s.Kind {
	case StmtAssign:
		return fmt.Sprintf("%s = %s", s.Assign.LHS, s.Assign.RHS)
	case StmtCall:
		return fmt.Sprintf("%s = %s(%s)", s.Call.LHS, s.Call.Callee, argsString(s.Call.Args))
	case StmtCallMethod:
		return fmt.Sprintf("%s = %s(%s)", s.CallMethod.LHS, s.CallMethod.Callee, argsString(s.CallMethod.Args))
	case StmtImportName:
		return fmt.Sprintf("import %s", s.ImportName.Expr)
	case StmtBuiltinCall:
		exprs := make([]string, len(s.BuiltinCall.Args))
		for i, a := range s.BuiltinCall.Args {
			exprs[i] = a.String()
		}
		return fmt.Sprintf("%s = %s(%s)", s.BuiltinCall.LHS, s.BuiltinCall.Call, strings.Join(exprs, ", "))
	case StmtSetupAnnotations:
		return "setup_annotations"
	default:
		return "<?>"
	}
}
