package ir

import (
	"fmt"
	"strings"

	"pyir/internal/codeobj"
	"pyir/internal/constant"
	"pyir/internal/ident"
)

// SSA is a monotonically increasing temporary name, scoped to one Object
// and reset at each nested code object.
type SSA int32

func (s SSA) String() string { return fmt.Sprintf("n%d", int32(s)) }

// ExprKind tags which alternative of the closed Expr sum a value holds.
// All leaves are side-effect-free (spec.md §3).
type ExprKind uint8

const (
	// ExprConst is a literal.
	ExprConst ExprKind = iota
	// ExprVar is a resolved qualified name.
	ExprVar
	// ExprLocalVar is an unresolved local-slot name.
	ExprLocalVar
	// ExprTemp is an SSA temporary.
	ExprTemp
	// ExprSubscript is exp[index].
	ExprSubscript
	// ExprCollection is a builder result (list/set/tuple/slice/map/string).
	ExprCollection
	// ExprConstMap is a keyword-annotation map.
	ExprConstMap
	// ExprFunction is a closure-forming result.
	ExprFunction
	// ExprClass is a class-construction placeholder.
	ExprClass
	// ExprGetAttr is exp.name.
	ExprGetAttr
	// ExprLoadMethod is a method-lookup marker.
	ExprLoadMethod
	// ExprImportName is the result of an import.
	ExprImportName
	// ExprImportFrom is the result of a from-import.
	ExprImportFrom
	// ExprLoadClosure is a closure cell reference.
	ExprLoadClosure
	// ExprNot is boolean negation.
	ExprNot
	// ExprBuiltinCaller is a marker for a pseudo-function.
	ExprBuiltinCaller
)

func (k ExprKind) String() string {
	switch k {
	case ExprConst:
		return "Const"
	case ExprVar:
		return "Var"
	case ExprLocalVar:
		return "LocalVar"
	case ExprTemp:
		return "Temp"
	case ExprSubscript:
		return "Subscript"
	case ExprCollection:
		return "Collection"
	case ExprConstMap:
		return "ConstMap"
	case ExprFunction:
		return "Function"
	case ExprClass:
		return "Class"
	case ExprGetAttr:
		return "GetAttr"
	case ExprLoadMethod:
		return "LoadMethod"
	case ExprImportName:
		return "ImportName"
	case ExprImportFrom:
		return "ImportFrom"
	case ExprLoadClosure:
		return "LoadClosure"
	case ExprNot:
		return "Not"
	case ExprBuiltinCaller:
		return "BuiltinCaller"
	default:
		return "Unknown"
	}
}

// CollectionKind distinguishes the builder forms BUILD_* opcodes produce.
type CollectionKind uint8

const (
	CollectionList CollectionKind = iota
	CollectionSet
	CollectionTuple
	CollectionSlice
	CollectionMap
	CollectionString
)

func (k CollectionKind) String() string {
	switch k {
	case CollectionList:
		return "list"
	case CollectionSet:
		return "set"
	case CollectionTuple:
		return "tuple"
	case CollectionSlice:
		return "slice"
	case CollectionMap:
		return "map"
	case CollectionString:
		return "string"
	default:
		return "?"
	}
}

// SubscriptExpr is exp[index].
type SubscriptExpr struct {
	Exp   *Expr
	Index *Expr
}

// CollectionExpr is a builder result: BUILD_LIST/SET/TUPLE/SLICE/STRING n
// pop n entries and BUILD_MAP n pops 2*n; either way every popped entry
// lands in Values, so len(Values) is the number popped (for a map, Values
// holds alternating key, value pairs flattened in source order).
type CollectionExpr struct {
	Kind   CollectionKind
	Values []Expr
}

// ConstMapEntry is one key/value pair of a ConstMap. ConstMap is modeled
// as an ordered slice rather than a Go map: constant.Value is not
// comparable (it embeds a slice for Tuple), and BUILD_CONST_KEY_MAP's
// source order matters when the emitter walks the annotations back out.
type ConstMapEntry struct {
	Key   constant.Value
	Value Expr
}

// FunctionExpr is the result of MAKE_FUNCTION: a fully qualified name,
// the nested code object it closes over, and its keyword-only
// annotations (nil when MAKE_FUNCTION's 0x04 bit was clear). Closures,
// keyword defaults and positional defaults are consumed by MAKE_FUNCTION
// but never attached here — see spec.md §9's Open Question.
type FunctionExpr struct {
	Qualname    ident.Ident
	Code        *codeobj.Code
	Annotations *Expr // ExprConstMap, or nil
}

// ClassExpr holds LOAD_BUILD_CLASS's call arguments as a placeholder for
// the class object CALL_FUNCTION produces.
type ClassExpr struct {
	Args []Expr
}

// GetAttrExpr is exp.name.
type GetAttrExpr struct {
	Exp  *Expr
	Name string
}

// LoadMethodExpr marks a method lookup pending a CALL_METHOD.
type LoadMethodExpr struct {
	Exp  *Expr
	Name string
}

// ImportNameExpr is the result of IMPORT_NAME.
type ImportNameExpr struct {
	ID       string
	Fromlist []string
}

// ImportFromExpr is the result of IMPORT_FROM: pulling Name out of the
// module produced by the ImportName expression still on the stack.
type ImportFromExpr struct {
	From *Expr // the ImportName (or chained ImportFrom) expression
	Name string
}

// Expr is a tagged sum of syntactic expression forms. Every payload
// field is named after its Kind, following the closed-sum idiom used
// throughout this codebase: exactly one of the payload fields is
// meaningful, selected by Kind.
type Expr struct {
	Kind ExprKind

	Const         constant.Value
	Var           ident.Ident
	LocalVar      string
	Temp          SSA
	Subscript     SubscriptExpr
	Collection    CollectionExpr
	ConstMap      []ConstMapEntry
	Function      FunctionExpr
	Class         ClassExpr
	GetAttr       GetAttrExpr
	LoadMethod    LoadMethodExpr
	ImportName    ImportNameExpr
	ImportFrom    ImportFromExpr
	LoadClosure   string
	Not           *Expr
	BuiltinCaller BuiltinCaller
}

// NewConst, NewVar, ... construct each Expr alternative.
func NewConst(c constant.Value) Expr { return Expr{Kind: ExprConst, Const: c} }
func NewVar(id ident.Ident) Expr     { return Expr{Kind: ExprVar, Var: id} }
func NewLocalVar(name string) Expr   { return Expr{Kind: ExprLocalVar, LocalVar: name} }
func NewTemp(s SSA) Expr             { return Expr{Kind: ExprTemp, Temp: s} }

func NewSubscript(exp, index Expr) Expr {
	return Expr{Kind: ExprSubscript, Subscript: SubscriptExpr{Exp: &exp, Index: &index}}
}

func NewCollection(kind CollectionKind, values []Expr) Expr {
	return Expr{Kind: ExprCollection, Collection: CollectionExpr{Kind: kind, Values: values}}
}

func NewConstMap(entries []ConstMapEntry) Expr {
	return Expr{Kind: ExprConstMap, ConstMap: entries}
}

func NewFunction(qualname ident.Ident, code *codeobj.Code, annotations *Expr) Expr {
	return Expr{Kind: ExprFunction, Function: FunctionExpr{Qualname: qualname, Code: code, Annotations: annotations}}
}

func NewClass(args []Expr) Expr { return Expr{Kind: ExprClass, Class: ClassExpr{Args: args}} }

func NewGetAttr(exp Expr, name string) Expr {
	return Expr{Kind: ExprGetAttr, GetAttr: GetAttrExpr{Exp: &exp, Name: name}}
}

func NewLoadMethod(exp Expr, name string) Expr {
	return Expr{Kind: ExprLoadMethod, LoadMethod: LoadMethodExpr{Exp: &exp, Name: name}}
}

func NewImportName(id string, fromlist []string) Expr {
	return Expr{Kind: ExprImportName, ImportName: ImportNameExpr{ID: id, Fromlist: fromlist}}
}

func NewImportFrom(from Expr, name string) Expr {
	return Expr{Kind: ExprImportFrom, ImportFrom: ImportFromExpr{From: &from, Name: name}}
}

func NewLoadClosure(name string) Expr { return Expr{Kind: ExprLoadClosure, LoadClosure: name} }

func NewNot(exp Expr) Expr { return Expr{Kind: ExprNot, Not: &exp} }

func NewBuiltinCaller(bc BuiltinCaller) Expr {
	return Expr{Kind: ExprBuiltinCaller, BuiltinCaller: bc}
}

// String renders a debug form of e; not meant for the downstream emitter.
func (e Expr) String() string {
	switch e.Kind {
	case ExprConst:
		return e.Const.String()
	case ExprVar:
		return e.Var.String()
	case ExprLocalVar:
		return e.LocalVar
	case ExprTemp:
		return e.Temp.String()
	case ExprSubscript:
		return fmt.Sprintf("%s[%s]", e.Subscript.Exp, e.Subscript.Index)
	case ExprCollection:
		parts := make([]string, len(e.Collection.Values))
		for i, v := range e.Collection.Values {
			parts[i] = v.String()
		}
		return fmt.Sprintf("%s{%s}", e.Collection.Kind, strings.Join(parts, ", "))
	case ExprConstMap:
		parts := make([]string, len(e.ConstMap))
		for i, kv := range e.ConstMap {
			parts[i] = fmt.Sprintf("%s: %s", kv.Key, kv.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ExprFunction:
		return fmt.Sprintf("Function(%s)", e.Function.Qualname)
	case ExprClass:
		return "Class(...)"
	case ExprGetAttr:
		return fmt.Sprintf("%s.%s", e.GetAttr.Exp, e.GetAttr.Name)
	case ExprLoadMethod:
		return fmt.Sprintf("%s.%s", e.LoadMethod.Exp, e.LoadMethod.Name)
	case ExprImportName:
		return fmt.Sprintf("import %s %v", e.ImportName.ID, e.ImportName.Fromlist)
	case ExprImportFrom:
		return fmt.Sprintf("from %s import %s", e.ImportFrom.From, e.ImportFrom.Name)
	case ExprLoadClosure:
		return fmt.Sprintf("closure(%s)", e.LoadClosure)
	case ExprNot:
		return fmt.Sprintf("not %s", e.Not)
	case ExprBuiltinCaller:
		return e.BuiltinCaller.String()
	default:
		return "<?>"
	}
}
