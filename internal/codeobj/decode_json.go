package codeobj

import "encoding/json"

// jsonConstant is the on-disk JSON shape for a RawConstant, used by test
// fixtures and by the CLI for every input file whose extension is not
// .msgpack or .mp.
type jsonConstant struct {
	Kind  string         `json:"kind"`
	Int   int64          `json:"int,omitempty"`
	Bool  bool           `json:"bool,omitempty"`
	Float float64        `json:"float,omitempty"`
	Str   string         `json:"str,omitempty"`
	Bytes []byte         `json:"bytes,omitempty"`
	Tuple []jsonConstant `json:"tuple,omitempty"`
	Code  *jsonCode      `json:"code,omitempty"`
}

type jsonInstruction struct {
	Op           string `json:"op"`
	Arg          int    `json:"arg"`
	Offset       int    `json:"offset"`
	StartsLine   *int   `json:"starts_line,omitempty"`
	IsJumpTarget bool   `json:"is_jump_target,omitempty"`
}

type jsonCode struct {
	Consts   []jsonConstant    `json:"consts"`
	Names    []string          `json:"names"`
	Varnames []string          `json:"varnames"`
	Cellvars []string          `json:"cellvars"`
	Freevars []string          `json:"freevars"`
	Name     string            `json:"name"`
	Filename string            `json:"filename"`
	Instrs   []jsonInstruction `json:"instructions"`
}

// DecodeJSON parses the human-authored JSON fixture shape into a Code.
func DecodeJSON(data []byte) (*Code, error) {
	var jc jsonCode
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, err
	}
	return jc.toCode(), nil
}

func (jc *jsonCode) toCode() *Code {
	if jc == nil {
		return nil
	}
	c := &Code{
		Names:    jc.Names,
		Varnames: jc.Varnames,
		Cellvars: jc.Cellvars,
		Freevars: jc.Freevars,
		Name:     jc.Name,
		Filename: jc.Filename,
	}
	c.Consts = make([]RawConstant, len(jc.Consts))
	for i, jco := range jc.Consts {
		c.Consts[i] = jco.toRawConstant()
	}
	c.Instrs = make([]Instruction, len(jc.Instrs))
	for i, ji := range jc.Instrs {
		c.Instrs[i] = Instruction{
			Op:           ji.Op,
			Arg:          ji.Arg,
			Offset:       ji.Offset,
			StartsLine:   ji.StartsLine,
			IsJumpTarget: ji.IsJumpTarget,
		}
	}
	return c
}

func (jc jsonConstant) toRawConstant() RawConstant {
	switch jc.Kind {
	case "int":
		return RawConstant{Kind: RawInt, Int: jc.Int}
	case "bool":
		return RawConstant{Kind: RawBool, Bool: jc.Bool}
	case "float":
		return RawConstant{Kind: RawFloat, Float: jc.Float}
	case "bytes":
		return RawConstant{Kind: RawBytes, Bytes: jc.Bytes}
	case "code":
		return RawConstant{Kind: RawCode, Code: jc.Code.toCode()}
	case "null", "":
		return RawConstant{Kind: RawNull}
	case "tuple":
		tup := make([]RawConstant, len(jc.Tuple))
		for i, e := range jc.Tuple {
			tup[i] = e.toRawConstant()
		}
		return RawConstant{Kind: RawTuple, Tuple: tup}
	default: // "str" and any unrecognized tag decode as text, matching
		// the frontend's own leniency toward byte-vs-text constants.
		return RawConstant{Kind: RawString, Str: jc.Str}
	}
}
