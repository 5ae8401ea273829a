// Package g2dem demangles C++ symbols produced by the GNU v2 compiler
// family (the g++ 2.x era). It decodes a mangled name into its qualified
// name, argument types, and template arguments, and renders them back
// as a C++ declaration.
package g2dem

import (
	"fmt"
	"strings"

	"github.com/skdltmxn/g2dem-go/internal/scan"
)

// Demangle decodes a mangled symbol using the corrected default preset.
func Demangle(symbol string) (string, error) {
	return DemangleWith(symbol, NewG2demConfig())
}

// DemangleWith decodes a mangled symbol under an explicit configuration.
// Symbols the scheme does not cover fail with ErrNotMangled; structurally
// broken ones fail with one of the other sentinel errors, always wrapped
// in a SymbolError.
func DemangleWith(symbol string, cfg Config) (string, error) {
	if symbol == "" {
		return "", &SymbolError{Symbol: symbol, Message: "empty symbol", Err: ErrInvalidToken}
	}
	for i := 0; i < len(symbol); i++ {
		if symbol[i] >= 0x80 {
			return "", &SymbolError{Symbol: symbol, Offset: i, Message: "non-ASCII data", Err: ErrNotMangled}
		}
	}
	d := &demangler{
		sym:        symbol,
		cfg:        cfg,
		cur:        scan.NewCursor(symbol),
		arrayFixup: true,
	}
	return d.demangle(true)
}

// Filter demangles a symbol and falls back to the input text when it
// cannot be decoded, matching the behavior of a c++filt style tool.
func Filter(symbol string, cfg Config) string {
	out, err := DemangleWith(symbol, cfg)
	if err != nil {
		return symbol
	}
	return out
}

// demangler walks one symbol. The cursor addresses the full symbol text
// so reported offsets stay absolute; dispatch repositions it at the
// start of whichever section a shape match selects.
type demangler struct {
	sym string
	cfg Config
	cur *scan.Cursor

	// templateArgs is the X reference scope inside a templated function.
	templateArgs *argList

	// arrayFixup gates the array length adjustment; a templated
	// function turns it off past its template argument section.
	arrayFixup bool

	depth int
}

func (d *demangler) errorf(sentinel error, format string, args ...any) error {
	return &SymbolError{
		Symbol:  d.sym,
		Offset:  d.cur.Offset(),
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// fresh spawns a demangler for a nested pass over sym, keeping the
// configuration and counting recursion depth against the same budget.
func (d *demangler) fresh(sym string) *demangler {
	return &demangler{
		sym:        sym,
		cfg:        d.cfg,
		cur:        scan.NewCursor(sym),
		arrayFixup: true,
		depth:      d.depth,
	}
}

func (d *demangler) enter() error {
	d.depth++
	if d.depth > d.cfg.maxDepth() {
		return d.errorf(ErrRecursionLimit, "recursion limit exceeded")
	}
	return nil
}

func (d *demangler) leave() { d.depth-- }

// demangle classifies the symbol shape and hands off to its handler.
// The order matters: destructors and double-underscore specials go
// first, then keyed globals, then the generic function shapes from the
// most to the least distinctive separator.
func (d *demangler) demangle(allowGlobalKeyed bool) (string, error) {
	if d.cur.StripPrefix("_$_") {
		return d.destructor()
	}
	if d.cur.StripPrefix("__") {
		return d.special()
	}
	if allowGlobalKeyed && d.cur.StripPrefix("_GLOBAL_$") {
		return d.globalKeyed()
	}
	if i := strings.Index(d.sym, "__F"); i > 0 && i+3 < len(d.sym) {
		d.cur.SetOffset(i + 3)
		return d.freeFunction(d.sym[:i])
	}
	if name, off, ok := methodSplit(d.sym); ok {
		d.cur.SetOffset(off)
		return d.methodFunction(name)
	}
	if i := strings.Index(d.sym, "__H"); i > 0 {
		d.cur.SetOffset(i + 3)
		return d.templatedFunction(d.sym[:i])
	}
	if i := strings.Index(d.sym, "__Q"); i > 0 {
		d.cur.SetOffset(i + 3)
		return d.namespacedFunction(d.sym[:i])
	}
	if strings.HasPrefix(d.sym, "_vt") {
		d.cur.SetOffset(3)
		return d.virtualTable()
	}
	if i := strings.Index(d.sym, "$"); i > 0 && i+1 < len(d.sym) {
		d.cur.SetOffset(0)
		return d.namespacedGlobal(i)
	}
	return "", d.errorf(ErrNotMangled, "no recognizable mangling")
}

// argumentsOrVoid decodes the rest of the input as an argument list,
// spelling an exhausted input as "void". owner fills lookback slot zero.
func (d *demangler) argumentsOrVoid(owner Node) (string, error) {
	if d.cur.Empty() {
		return "void", nil
	}
	list := newArgList(owner)
	if err := d.demangleArgumentList(list, false); err != nil {
		return "", err
	}
	if !d.cur.Empty() {
		return "", d.errorf(ErrInvalidToken, "trailing data after argument list")
	}
	return renderParams(d.cfg, list), nil
}

// methodSplit finds the separator between a method name and its class
// encoding: the first "__" past the start whose right side opens a
// class-like token.
func methodSplit(s string) (name string, offset int, ok bool) {
	start := 1
	for start < len(s) {
		i := strings.Index(s[start:], "__")
		if i < 0 {
			return "", 0, false
		}
		i += start
		rest := s[i+2:]
		if len(rest) > 0 && (rest[0] == 'C' || rest[0] == 't' || (rest[0] >= '1' && rest[0] <= '9')) {
			return s[:i], i + 2, true
		}
		start = i + 1
	}
	return "", 0, false
}
