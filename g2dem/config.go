package g2dem

// DefaultMaxDepth is the recursion ceiling used when Config.MaxDepth is zero.
const DefaultMaxDepth = 512

// Config selects between faithful reproduction of historical c++filt output
// and corrected output. Construct one with NewCfiltConfig or NewG2demConfig
// and treat it as immutable; a Config may be shared by any number of
// concurrent Demangle calls.
type Config struct {
	// EllipsisEmitSpaceAfterComma inserts a space between the comma and a
	// trailing "..." in a parameter list. c++filt prints "(int,...)".
	EllipsisEmitSpaceAfterComma bool

	// FixArrayInReturnPosition renders a templated function returning a
	// pointer-to-array with correct C++ syntax instead of c++filt's
	// malformed "int (*)[3] f<int>(int)" ordering.
	FixArrayInReturnPosition bool

	// FixNamespacedGlobalConstructorBug restores the "global constructors
	// keyed to " prefix that c++filt drops when the keyed symbol lives in
	// a namespace.
	FixNamespacedGlobalConstructorBug bool

	// FixArrayLengthArg adds one to array bounds. g++ mangles n-1 for an
	// n-element array; c++filt prints the stored value as-is.
	FixArrayLengthArg bool

	// DemangleGlobalKeyedFrames recognizes the "_GLOBAL_$F$" prefix and
	// renders it like the constructor/destructor keyed forms. c++filt does
	// not know this prefix and decodes such symbols as ordinary ones.
	DemangleGlobalKeyedFrames bool

	// MaxDepth bounds type-decode nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// NewCfiltConfig returns the legacy-compatible preset. Its output matches
// historical c++filt byte for byte, bugs included.
func NewCfiltConfig() Config {
	return Config{
		EllipsisEmitSpaceAfterComma:       false,
		FixArrayInReturnPosition:          false,
		FixNamespacedGlobalConstructorBug: false,
		FixArrayLengthArg:                 false,
		DemangleGlobalKeyedFrames:         false,
		MaxDepth:                          DefaultMaxDepth,
	}
}

// NewG2demConfig returns the corrected preset. This is the default choice
// for new callers.
func NewG2demConfig() Config {
	return Config{
		EllipsisEmitSpaceAfterComma:       true,
		FixArrayInReturnPosition:          true,
		FixNamespacedGlobalConstructorBug: true,
		FixArrayLengthArg:                 true,
		DemangleGlobalKeyedFrames:         true,
		MaxDepth:                          DefaultMaxDepth,
	}
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
