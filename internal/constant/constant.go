// Package constant is the canonical, comparable constant domain the
// translator normalizes decoded frontend constants into: integers,
// floats, booleans, strings, nested tuples, embedded code objects, and
// null.
package constant

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"pyir/internal/codeobj"
)

// Kind tags which alternative of the closed Constant sum a Value holds.
type Kind uint8

const (
	Int Kind = iota
	Bool
	Float
	String
	Tuple
	Code
	Null
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Float:
		return "float"
	case String:
		return "string"
	case Tuple:
		return "tuple"
	case Code:
		return "code"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// Value is one member of the constant domain. Byte strings decoded by the
// frontend are coerced into Str at normalization time (see Normalize), so
// downstream code never distinguishes bytes from text.
type Value struct {
	Kind  Kind
	Int   int64
	Bool  bool
	Float float64
	Str   string
	Tuple []Value
	Code  *codeobj.Code
}

// NewInt, NewBool, NewFloat, NewString, NewTuple and Nil construct Values
// of each kind.
func NewInt(i int64) Value        { return Value{Kind: Int, Int: i} }
func NewBool(b bool) Value        { return Value{Kind: Bool, Bool: b} }
func NewFloat(f float64) Value    { return Value{Kind: Float, Float: f} }
func NewString(s string) Value    { return Value{Kind: String, Str: s} }
func NewTuple(vs []Value) Value   { return Value{Kind: Tuple, Tuple: vs} }
func NewCode(c *codeobj.Code) Value { return Value{Kind: Code, Code: c} }
func Nil() Value                  { return Value{Kind: Null} }

// Normalize lifts a raw frontend constant into the canonical domain,
// coercing byte strings to text per spec.md §3.
func Normalize(raw codeobj.RawConstant) Value {
	switch raw.Kind {
	case codeobj.RawInt:
		return NewInt(raw.Int)
	case codeobj.RawBool:
		return NewBool(raw.Bool)
	case codeobj.RawFloat:
		return NewFloat(raw.Float)
	case codeobj.RawString:
		return NewString(norm.NFC.String(raw.Str))
	case codeobj.RawBytes:
		// A byte string decodes to whatever the source file's raw bytes
		// were; normalizing to NFC once here means two textually
		// equivalent constants compare equal downstream even if the
		// original bytecode encoded one of them in a decomposed form.
		return NewString(norm.NFC.String(string(raw.Bytes)))
	case codeobj.RawCode:
		return NewCode(raw.Code)
	case codeobj.RawTuple:
		vs := make([]Value, len(raw.Tuple))
		for i, e := range raw.Tuple {
			vs[i] = Normalize(e)
		}
		return NewTuple(vs)
	case codeobj.RawNull:
		fallthrough
	default:
		return Nil()
	}
}

// AsTuple reports whether v is a Tuple and returns its elements.
func (v Value) AsTuple() ([]Value, bool) {
	if v.Kind != Tuple {
		return nil, false
	}
	return v.Tuple, true
}

// AsNameList interprets v the way IMPORT_NAME interprets a fromlist
// constant: a string is a singleton list, null is the empty list, and a
// tuple of strings is that list of names. Any other shape fails.
func (v Value) AsNameList() ([]string, bool) {
	switch v.Kind {
	case String:
		return []string{v.Str}, true
	case Null:
		return nil, true
	case Tuple:
		names := make([]string, 0, len(v.Tuple))
		for _, e := range v.Tuple {
			if e.Kind != String {
				return nil, false
			}
			names = append(names, e.Str)
		}
		return names, true
	default:
		return nil, false
	}
}

// Equal reports structural equality between two constants.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Int:
		return v.Int == other.Int
	case Bool:
		return v.Bool == other.Bool
	case Float:
		return v.Float == other.Float
	case String:
		return v.Str == other.Str
	case Null:
		return true
	case Code:
		return v.Code == other.Code
	case Tuple:
		if len(v.Tuple) != len(other.Tuple) {
			return false
		}
		for i := range v.Tuple {
			if !v.Tuple[i].Equal(other.Tuple[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare gives Value a total order so it can serve as a sortable or
// hashable key: kinds are ordered as declared above, then compared
// within a kind.
func (v Value) Compare(other Value) int {
	if v.Kind != other.Kind {
		if v.Kind < other.Kind {
			return -1
		}
		return 1
	}
	switch v.Kind {
	case Int:
		return cmpInt(v.Int, other.Int)
	case Bool:
		return cmpInt(b2i(v.Bool), b2i(other.Bool))
	case Float:
		return cmpFloat(v.Float, other.Float)
	case String:
		return strings.Compare(v.Str, other.Str)
	case Null:
		return 0
	case Code:
		an, bn := "", ""
		if v.Code != nil {
			an = v.Code.Name
		}
		if other.Code != nil {
			bn = other.Code.Name
		}
		return strings.Compare(an, bn)
	case Tuple:
		for i := 0; i < len(v.Tuple) && i < len(other.Tuple); i++ {
			if c := v.Tuple[i].Compare(other.Tuple[i]); c != 0 {
				return c
			}
		}
		return cmpInt(int64(len(v.Tuple)), int64(len(other.Tuple)))
	default:
		return 0
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Key renders v as a string usable as a Go map key, since Value itself is
// not comparable (Tuple holds a slice).
func (v Value) Key() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("i:%d", v.Int)
	case Bool:
		return fmt.Sprintf("b:%t", v.Bool)
	case Float:
		return fmt.Sprintf("f:%g", v.Float)
	case String:
		return fmt.Sprintf("s:%q", v.Str)
	case Null:
		return "n:"
	case Code:
		return fmt.Sprintf("c:%p", v.Code)
	case Tuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.Key()
		}
		return "t:(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

// String renders v the way the downstream emitter would want to see a
// literal echoed back, used only for debug printing.
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("%d", v.Int)
	case Bool:
		return fmt.Sprintf("%t", v.Bool)
	case Float:
		return fmt.Sprintf("%g", v.Float)
	case String:
		return fmt.Sprintf("%q", v.Str)
	case Null:
		return "null"
	case Code:
		if v.Code == nil {
			return "<code>"
		}
		return fmt.Sprintf("<code %s>", v.Code.Name)
	case Tuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}
