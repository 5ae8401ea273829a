//go:build js && wasm

// Command g2dem-wasm exposes the demangler to a browser page as a
// global g2demDemangle(symbol, style) function. style is "g2dem" or
// "c++filt"; the result is the demangled text, or null when the
// symbol does not decode.
package main

import (
	"syscall/js"

	"github.com/skdltmxn/g2dem-go/g2dem"
)

func demangleFunc(this js.Value, args []js.Value) any {
	if len(args) == 0 || args[0].Type() != js.TypeString {
		return js.Null()
	}
	cfg := g2dem.NewG2demConfig()
	if len(args) > 1 && args[1].Type() == js.TypeString && args[1].String() == "c++filt" {
		cfg = g2dem.NewCfiltConfig()
	}
	out, err := g2dem.DemangleWith(args[0].String(), cfg)
	if err != nil {
		return js.Null()
	}
	return out
}

func main() {
	js.Global().Set("g2demDemangle", js.FuncOf(demangleFunc))
	select {}
}
