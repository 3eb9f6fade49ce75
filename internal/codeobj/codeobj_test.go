package codeobj

import "testing"

func TestDecodeJSONBasicShape(t *testing.T) {
	data := []byte(`{
		"consts": [{"kind": "int", "int": 42}, {"kind": "str", "str": "hi"}],
		"names": ["os"],
		"varnames": ["x"],
		"name": "f",
		"filename": "./mod.py",
		"instructions": [
			{"op": "LOAD_CONST", "arg": 0, "offset": 0},
			{"op": "RETURN_VALUE", "arg": 0, "offset": 2}
		]
	}`)
	c, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Consts) != 2 || c.Consts[0].Kind != RawInt || c.Consts[0].Int != 42 {
		t.Fatalf("unexpected consts: %+v", c.Consts)
	}
	if c.Consts[1].Kind != RawString || c.Consts[1].Str != "hi" {
		t.Fatalf("unexpected second const: %+v", c.Consts[1])
	}
	if len(c.Instrs) != 2 || c.Instrs[0].Op != "LOAD_CONST" {
		t.Fatalf("unexpected instructions: %+v", c.Instrs)
	}
}

func TestDecodeJSONNestedCode(t *testing.T) {
	data := []byte(`{
		"name": "outer",
		"consts": [{"kind": "code", "code": {"name": "inner", "instructions": []}}],
		"instructions": []
	}`)
	c, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Consts) != 1 || c.Consts[0].Kind != RawCode {
		t.Fatalf("expected one nested code constant, got %+v", c.Consts)
	}
	if c.Consts[0].Code == nil || c.Consts[0].Code.Name != "inner" {
		t.Fatalf("nested code not decoded: %+v", c.Consts[0].Code)
	}
}

func TestDecodeJSONDefaultKindIsString(t *testing.T) {
	data := []byte(`{"name": "f", "consts": [{"kind": "", "str": "bare"}], "instructions": []}`)
	c, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Consts[0].Kind != RawString || c.Consts[0].Str != "bare" {
		t.Fatalf("expected default kind to decode as string, got %+v", c.Consts[0])
	}
}

func TestBoundsCheckedAccessors(t *testing.T) {
	c := &Code{
		Consts:   []RawConstant{{Kind: RawInt, Int: 1}},
		Names:    []string{"a"},
		Varnames: []string{"x"},
		Cellvars: []string{"c0"},
		Freevars: []string{"f0"},
	}
	if _, err := c.Const(5); err == nil {
		t.Fatalf("expected out-of-range Const to error")
	}
	if v, err := c.Const(0); err != nil || v.Int != 1 {
		t.Fatalf("Const(0) = %+v, %v", v, err)
	}
	if _, err := c.NameAt(-1); err == nil {
		t.Fatalf("expected negative NameAt to error")
	}
	if _, err := c.Varname(1); err == nil {
		t.Fatalf("expected out-of-range Varname to error")
	}
	if name, err := c.ClosureVar(0); err != nil || name != "c0" {
		t.Fatalf("ClosureVar(0) = %q, %v", name, err)
	}
	if name, err := c.ClosureVar(1); err != nil || name != "f0" {
		t.Fatalf("ClosureVar(1) (into freevars) = %q, %v", name, err)
	}
	if _, err := c.ClosureVar(2); err == nil {
		t.Fatalf("expected ClosureVar past both tables to error")
	}
}

func TestValidateWidthsRejectsNegativeOffset(t *testing.T) {
	c := &Code{Instrs: []Instruction{{Op: "LOAD_CONST", Arg: 0, Offset: -1}}}
	if err := c.ValidateWidths(); err == nil {
		t.Fatalf("expected a negative offset to fail width validation")
	}
}

func TestValidateWidthsAcceptsWellFormedCode(t *testing.T) {
	c := &Code{Instrs: []Instruction{{Op: "LOAD_CONST", Arg: 0, Offset: 0}, {Op: "RETURN_VALUE", Arg: 0, Offset: 2}}}
	if err := c.ValidateWidths(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateWidthsRecursesIntoNestedCode(t *testing.T) {
	inner := &Code{Instrs: []Instruction{{Op: "LOAD_CONST", Arg: 0, Offset: -5}}}
	outer := &Code{Consts: []RawConstant{{Kind: RawCode, Code: inner}}}
	if err := outer.ValidateWidths(); err == nil {
		t.Fatalf("expected the nested code's invalid offset to surface")
	}
}

func TestValidateWidthsNilReceiverIsNoop(t *testing.T) {
	var c *Code
	if err := c.ValidateWidths(); err != nil {
		t.Fatalf("unexpected error on nil receiver: %v", err)
	}
}
