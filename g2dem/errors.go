package g2dem

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every decode failure.
var (
	// ErrNotMangled indicates the input does not look like a V2 symbol at
	// all. Callers usually echo the input unchanged on this error.
	ErrNotMangled = errors.New("g2dem: not a mangled symbol")

	// ErrUnexpectedEnd indicates the grammar needed more input than remained.
	ErrUnexpectedEnd = errors.New("g2dem: unexpected end of symbol")

	// ErrInvalidToken indicates a byte sequence that matches no grammar rule.
	ErrInvalidToken = errors.New("g2dem: invalid token")

	// ErrUnsupported indicates a recognized but unimplemented construct.
	ErrUnsupported = errors.New("g2dem: unsupported construct")

	// ErrRecursionLimit indicates the nesting depth guard was hit.
	ErrRecursionLimit = errors.New("g2dem: recursion limit exceeded")
)

// SymbolError provides detailed information about decode failures.
type SymbolError struct {
	Symbol  string // Symbol being decoded
	Offset  int    // Byte offset within the symbol
	Message string // Description of the error
	Err     error  // Sentinel classifying the failure
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("g2dem: cannot demangle %q at offset %d: %s", e.Symbol, e.Offset, e.Message)
}

func (e *SymbolError) Unwrap() error { return e.Err }
