package constant

import (
	"testing"

	"pyir/internal/codeobj"
)

func TestNormalizeCoercesBytesToString(t *testing.T) {
	v := Normalize(codeobj.RawConstant{Kind: codeobj.RawBytes, Bytes: []byte("hi")})
	if v.Kind != String || v.Str != "hi" {
		t.Fatalf("Normalize(bytes) = %+v", v)
	}
}

func TestNormalizeNFCNormalizesDecomposedText(t *testing.T) {
	// "e" + combining acute accent (NFD) normalizes to the precomposed
	// single-codepoint form (NFC), so two spellings of the same text
	// compare equal downstream.
	decomposed := "e\u0301"
	precomposed := "\u00e9"
	v := Normalize(codeobj.RawConstant{Kind: codeobj.RawString, Str: decomposed})
	if v.Str != precomposed {
		t.Fatalf("Normalize did not NFC-normalize: %q", v.Str)
	}
}

func TestNormalizeTuple(t *testing.T) {
	raw := codeobj.RawConstant{Kind: codeobj.RawTuple, Tuple: []codeobj.RawConstant{
		{Kind: codeobj.RawInt, Int: 1},
		{Kind: codeobj.RawString, Str: "x"},
	}}
	v := Normalize(raw)
	elems, ok := v.AsTuple()
	if !ok || len(elems) != 2 {
		t.Fatalf("AsTuple() = %v, %v", elems, ok)
	}
	if elems[0].Int != 1 || elems[1].Str != "x" {
		t.Fatalf("unexpected tuple contents: %+v", elems)
	}
}

func TestAsNameListShapes(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want []string
		ok   bool
	}{
		{"string", NewString("os"), []string{"os"}, true},
		{"null", Nil(), nil, true},
		{"tuple of strings", NewTuple([]Value{NewString("a"), NewString("b")}), []string{"a", "b"}, true},
		{"tuple with non-string", NewTuple([]Value{NewString("a"), NewInt(1)}), nil, false},
		{"int", NewInt(1), nil, false},
	}
	for _, c := range cases {
		got, ok := c.v.AsNameList()
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		if len(got) != len(c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("%s: got %v, want %v", c.name, got, c.want)
			}
		}
	}
}

func TestEqualAndCompareAreConsistent(t *testing.T) {
	a := NewInt(3)
	b := NewInt(3)
	c := NewInt(4)
	if !a.Equal(b) {
		t.Fatalf("expected 3 == 3")
	}
	if a.Equal(c) {
		t.Fatalf("expected 3 != 4")
	}
	if a.Compare(b) != 0 {
		t.Fatalf("expected Compare(3, 3) == 0")
	}
	if a.Compare(c) >= 0 {
		t.Fatalf("expected Compare(3, 4) < 0")
	}
}

func TestKeyDistinguishesKinds(t *testing.T) {
	if NewInt(0).Key() == NewBool(false).Key() {
		t.Fatalf("int 0 and bool false must have distinct keys")
	}
}
