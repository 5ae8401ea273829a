// Package scan provides text scanning primitives for symbol decoding.
package scan

import (
	"errors"
	"math/big"
	"strings"
)

// Errors returned by Cursor
var (
	ErrUnexpectedEOF = errors.New("scan: unexpected end of input")
)

const maxSmallDigits = 18 // decimal digits that always fit an int64

// Cursor provides methods for consuming a mangled symbol from left to right.
// The underlying text is never modified; a Cursor tracks only its position.
type Cursor struct {
	sym string
	pos int
}

// NewCursor creates a Cursor over sym.
func NewCursor(sym string) *Cursor {
	return &Cursor{sym: sym, pos: 0}
}

// Offset returns the current position within the symbol.
func (c *Cursor) Offset() int {
	return c.pos
}

// SetOffset moves the cursor to an absolute position.
func (c *Cursor) SetOffset(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.sym) {
		pos = len(c.sym)
	}
	c.pos = pos
}

// Remaining returns the unconsumed tail of the symbol.
func (c *Cursor) Remaining() string {
	if c.pos >= len(c.sym) {
		return ""
	}
	return c.sym[c.pos:]
}

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int {
	return len(c.sym) - c.pos
}

// Empty reports whether the whole symbol has been consumed.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.sym)
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if c.pos >= len(c.sym) {
		return 0, ErrUnexpectedEOF
	}
	return c.sym[c.pos], nil
}

// Next consumes and returns the next byte.
func (c *Cursor) Next() (byte, error) {
	if c.pos >= len(c.sym) {
		return 0, ErrUnexpectedEOF
	}
	b := c.sym[c.pos]
	c.pos++
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if c.pos+n > len(c.sym) {
		return ErrUnexpectedEOF
	}
	c.pos += n
	return nil
}

// HasPrefix reports whether the unconsumed tail starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Remaining(), s)
}

// StripPrefix consumes s if the tail starts with it and reports whether it did.
func (c *Cursor) StripPrefix(s string) bool {
	if c.HasPrefix(s) {
		c.pos += len(s)
		return true
	}
	return false
}

// StripByte consumes b if it is the next byte and reports whether it did.
func (c *Cursor) StripByte(b byte) bool {
	if c.pos < len(c.sym) && c.sym[c.pos] == b {
		c.pos++
		return true
	}
	return false
}

// Take consumes and returns the next n bytes.
func (c *Cursor) Take(n int) (string, error) {
	if c.pos+n > len(c.sym) {
		return "", ErrUnexpectedEOF
	}
	s := c.sym[c.pos : c.pos+n]
	c.pos += n
	return s, nil
}

// digitSpan returns the number of leading decimal digits in the tail.
func (c *Cursor) digitSpan() int {
	n := 0
	for c.pos+n < len(c.sym) && isDigit(c.sym[c.pos+n]) {
		n++
	}
	return n
}

// Number consumes a run of decimal digits and returns its value.
// It reports false when no digit follows or the value overflows an int.
func (c *Cursor) Number() (int, bool) {
	span := c.digitSpan()
	if span == 0 || span > maxSmallDigits {
		return 0, false
	}
	v := 0
	for _, b := range []byte(c.sym[c.pos : c.pos+span]) {
		v = v*10 + int(b-'0')
	}
	c.pos += span
	return v, true
}

// BigNumber consumes a run of decimal digits of any length and returns its
// value as a big integer. It reports false when no digit follows.
func (c *Cursor) BigNumber() (*big.Int, bool) {
	span := c.digitSpan()
	if span == 0 {
		return nil, false
	}
	v, ok := new(big.Int).SetString(c.sym[c.pos:c.pos+span], 10)
	if !ok {
		return nil, false
	}
	c.pos += span
	return v, true
}

// Digit consumes a single decimal digit and returns its value.
func (c *Cursor) Digit() (int, bool) {
	if c.pos >= len(c.sym) || !isDigit(c.sym[c.pos]) {
		return 0, false
	}
	v := int(c.sym[c.pos] - '0')
	c.pos++
	return v, true
}

// NumberMaybeMultiDigit consumes either a single digit, or a multi-digit
// number terminated by an underscore (which is consumed as well). A single
// digit followed by an underscore does not match.
func (c *Cursor) NumberMaybeMultiDigit() (int, bool) {
	span := c.digitSpan()
	switch {
	case span == 0:
		return 0, false
	case span == c.Len():
		// Digits run to the end of the symbol; take one.
		v := int(c.sym[c.pos] - '0')
		c.pos++
		return v, true
	case c.sym[c.pos+span] == '_':
		// A number may be followed by an underscore only when it has
		// more than one digit.
		if span == 1 {
			return 0, false
		}
		if span > maxSmallDigits {
			return 0, false
		}
		v := 0
		for _, b := range []byte(c.sym[c.pos : c.pos+span]) {
			v = v*10 + int(b-'0')
		}
		c.pos += span + 1
		return v, true
	default:
		v := int(c.sym[c.pos] - '0')
		c.pos++
		return v, true
	}
}

// HexNumber consumes exactly n hexadecimal digits and returns their value.
func (c *Cursor) HexNumber(n int) (int, bool) {
	if c.pos+n > len(c.sym) || n > 15 {
		return 0, false
	}
	v := 0
	for _, b := range []byte(c.sym[c.pos : c.pos+n]) {
		d, ok := hexValue(b)
		if !ok {
			return 0, false
		}
		v = v*16 + d
	}
	c.pos += n
	return v, true
}

// HexNumberUntil consumes hexadecimal digits up to (and including) the
// terminator byte and returns their value.
func (c *Cursor) HexNumberUntil(term byte) (int, bool) {
	end := c.pos
	for end < len(c.sym) && c.sym[end] != term {
		end++
	}
	if end >= len(c.sym) || end == c.pos || end-c.pos > 15 {
		return 0, false
	}
	v := 0
	for _, b := range []byte(c.sym[c.pos:end]) {
		d, ok := hexValue(b)
		if !ok {
			return 0, false
		}
		v = v*16 + d
	}
	c.pos = end + 1
	return v, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func hexValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
