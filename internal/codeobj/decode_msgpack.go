package codeobj

import "github.com/vmihailenco/msgpack/v5"

// msgpackConstant mirrors jsonConstant but for the binary wire format the
// frontend emits for larger code objects (msgpack round-trips byte strings
// without base64 bloat, unlike JSON).
type msgpackConstant struct {
	Kind  string            `msgpack:"kind"`
	Int   int64             `msgpack:"int,omitempty"`
	Bool  bool              `msgpack:"bool,omitempty"`
	Float float64           `msgpack:"float,omitempty"`
	Str   string            `msgpack:"str,omitempty"`
	Bytes []byte            `msgpack:"bytes,omitempty"`
	Tuple []msgpackConstant `msgpack:"tuple,omitempty"`
	Code  *msgpackCode      `msgpack:"code,omitempty"`
}

type msgpackInstruction struct {
	Op           string `msgpack:"op"`
	Arg          int    `msgpack:"arg"`
	Offset       int    `msgpack:"offset"`
	StartsLine   *int   `msgpack:"starts_line,omitempty"`
	IsJumpTarget bool   `msgpack:"is_jump_target,omitempty"`
}

type msgpackCode struct {
	Consts   []msgpackConstant    `msgpack:"consts"`
	Names    []string             `msgpack:"names"`
	Varnames []string             `msgpack:"varnames"`
	Cellvars []string             `msgpack:"cellvars"`
	Freevars []string             `msgpack:"freevars"`
	Name     string               `msgpack:"name"`
	Filename string               `msgpack:"filename"`
	Instrs   []msgpackInstruction `msgpack:"instructions"`
}

// Decode parses the binary wire format the frontend emits into a Code.
func Decode(data []byte) (*Code, error) {
	var mc msgpackCode
	if err := msgpack.Unmarshal(data, &mc); err != nil {
		return nil, err
	}
	return mc.toCode(), nil
}

// Encode serializes a Code back into the binary wire format, used by
// fixtures that build a Code programmatically and round-trip it through
// the same path a real frontend would use.
func Encode(c *Code) ([]byte, error) {
	return msgpack.Marshal(fromCode(c))
}

func (mc *msgpackCode) toCode() *Code {
	if mc == nil {
		return nil
	}
	c := &Code{
		Names:    mc.Names,
		Varnames: mc.Varnames,
		Cellvars: mc.Cellvars,
		Freevars: mc.Freevars,
		Name:     mc.Name,
		Filename: mc.Filename,
	}
	c.Consts = make([]RawConstant, len(mc.Consts))
	for i, mco := range mc.Consts {
		c.Consts[i] = mco.toRawConstant()
	}
	c.Instrs = make([]Instruction, len(mc.Instrs))
	for i, mi := range mc.Instrs {
		c.Instrs[i] = Instruction{
			Op:           mi.Op,
			Arg:          mi.Arg,
			Offset:       mi.Offset,
			StartsLine:   mi.StartsLine,
			IsJumpTarget: mi.IsJumpTarget,
		}
	}
	return c
}

func (mc msgpackConstant) toRawConstant() RawConstant {
	switch mc.Kind {
	case "int":
		return RawConstant{Kind: RawInt, Int: mc.Int}
	case "bool":
		return RawConstant{Kind: RawBool, Bool: mc.Bool}
	case "float":
		return RawConstant{Kind: RawFloat, Float: mc.Float}
	case "bytes":
		return RawConstant{Kind: RawBytes, Bytes: mc.Bytes}
	case "code":
		return RawConstant{Kind: RawCode, Code: mc.Code.toCode()}
	case "null", "":
		return RawConstant{Kind: RawNull}
	case "tuple":
		tup := make([]RawConstant, len(mc.Tuple))
		for i, e := range mc.Tuple {
			tup[i] = e.toRawConstant()
		}
		return RawConstant{Kind: RawTuple, Tuple: tup}
	default:
		return RawConstant{Kind: RawString, Str: mc.Str}
	}
}

func fromCode(c *Code) *msgpackCode {
	if c == nil {
		return nil
	}
	mc := &msgpackCode{
		Names:    c.Names,
		Varnames: c.Varnames,
		Cellvars: c.Cellvars,
		Freevars: c.Freevars,
		Name:     c.Name,
		Filename: c.Filename,
	}
	mc.Consts = make([]msgpackConstant, len(c.Consts))
	for i, rc := range c.Consts {
		mc.Consts[i] = fromRawConstant(rc)
	}
	mc.Instrs = make([]msgpackInstruction, len(c.Instrs))
	for i, in := range c.Instrs {
		mc.Instrs[i] = msgpackInstruction{
			Op:           in.Op,
			Arg:          in.Arg,
			Offset:       in.Offset,
			StartsLine:   in.StartsLine,
			IsJumpTarget: in.IsJumpTarget,
		}
	}
	return mc
}

func fromRawConstant(rc RawConstant) msgpackConstant {
	switch rc.Kind {
	case RawInt:
		return msgpackConstant{Kind: "int", Int: rc.Int}
	case RawBool:
		return msgpackConstant{Kind: "bool", Bool: rc.Bool}
	case RawFloat:
		return msgpackConstant{Kind: "float", Float: rc.Float}
	case RawBytes:
		return msgpackConstant{Kind: "bytes", Bytes: rc.Bytes}
	case RawCode:
		return msgpackConstant{Kind: "code", Code: fromCode(rc.Code)}
	case RawTuple:
		tup := make([]msgpackConstant, len(rc.Tuple))
		for i, e := range rc.Tuple {
			tup[i] = fromRawConstant(e)
		}
		return msgpackConstant{Kind: "tuple", Tuple: tup}
	case RawString:
		return msgpackConstant{Kind: "str", Str: rc.Str}
	default:
		return msgpackConstant{Kind: "null"}
	}
}
