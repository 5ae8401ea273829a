package scan

import (
	"math/big"
	"testing"
)

func TestNumberMaybeMultiDigit(t *testing.T) {
	tests := []struct {
		input     string
		want      int
		ok        bool
		remaining string
	}{
		{"1junk", 1, true, "junk"},
		{"12_junk", 12, true, "junk"},
		{"54junk", 5, true, "4junk"},
		{"2", 2, true, ""},
		{"32", 3, true, "2"},
		{"1_junk", 0, false, "1_junk"},
		{"", 0, false, ""},
		{"junk", 0, false, "junk"},
	}

	for _, tt := range tests {
		c := NewCursor(tt.input)
		got, ok := c.NumberMaybeMultiDigit()
		if ok != tt.ok || got != tt.want {
			t.Errorf("NumberMaybeMultiDigit(%q) = (%d, %v), want (%d, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
		if c.Remaining() != tt.remaining {
			t.Errorf("NumberMaybeMultiDigit(%q) left %q, want %q",
				tt.input, c.Remaining(), tt.remaining)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input     string
		want      int
		ok        bool
		remaining string
	}{
		{"41_rest", 41, true, "_rest"},
		{"7", 7, true, ""},
		{"123abc", 123, true, "abc"},
		{"abc", 0, false, "abc"},
		{"", 0, false, ""},
	}

	for _, tt := range tests {
		c := NewCursor(tt.input)
		got, ok := c.Number()
		if ok != tt.ok || got != tt.want {
			t.Errorf("Number(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
		if c.Remaining() != tt.remaining {
			t.Errorf("Number(%q) left %q, want %q", tt.input, c.Remaining(), tt.remaining)
		}
	}
}

func TestBigNumber(t *testing.T) {
	c := NewCursor("340282366920938463463374607431768211455rest")
	got, ok := c.BigNumber()
	if !ok {
		t.Fatalf("BigNumber failed on 128-bit value")
	}
	want := new(big.Int)
	want.SetString("340282366920938463463374607431768211455", 10)
	if got.Cmp(want) != 0 {
		t.Errorf("BigNumber = %s, want %s", got, want)
	}
	if c.Remaining() != "rest" {
		t.Errorf("BigNumber left %q, want %q", c.Remaining(), "rest")
	}

	c = NewCursor("x")
	if _, ok := c.BigNumber(); ok {
		t.Errorf("BigNumber succeeded on non-digit input")
	}
}

func TestHexNumber(t *testing.T) {
	c := NewCursor("80rest")
	got, ok := c.HexNumber(2)
	if !ok || got != 0x80 {
		t.Fatalf("HexNumber(2) = (%#x, %v), want (0x80, true)", got, ok)
	}
	if c.Remaining() != "rest" {
		t.Errorf("HexNumber left %q, want %q", c.Remaining(), "rest")
	}

	c = NewCursor("100_rest")
	got, ok = c.HexNumberUntil('_')
	if !ok || got != 0x100 {
		t.Fatalf("HexNumberUntil = (%#x, %v), want (0x100, true)", got, ok)
	}
	if c.Remaining() != "rest" {
		t.Errorf("HexNumberUntil left %q, want %q", c.Remaining(), "rest")
	}

	c = NewCursor("zz")
	if _, ok := c.HexNumber(2); ok {
		t.Errorf("HexNumber succeeded on non-hex input")
	}
}

func TestPrefixHelpers(t *testing.T) {
	c := NewCursor("__Foo")
	if !c.StripPrefix("__") {
		t.Fatalf("StripPrefix failed to match __")
	}
	if c.StripPrefix("__") {
		t.Fatalf("StripPrefix matched twice")
	}
	if !c.StripByte('F') {
		t.Fatalf("StripByte failed to match F")
	}
	if c.Remaining() != "oo" {
		t.Errorf("remaining = %q, want %q", c.Remaining(), "oo")
	}

	if _, err := c.Take(3); err != ErrUnexpectedEOF {
		t.Errorf("Take(3) past end = %v, want ErrUnexpectedEOF", err)
	}
	s, err := c.Take(2)
	if err != nil || s != "oo" {
		t.Errorf("Take(2) = (%q, %v), want (%q, nil)", s, err, "oo")
	}
	if !c.Empty() {
		t.Errorf("cursor not empty after consuming everything")
	}
}
