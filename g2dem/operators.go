package g2dem

// Operator identifies one overloadable C++ operator.
type Operator struct {
	Code     string // mangled code, e.g. "eq"
	Spelling string // rendered name, e.g. "operator=="
}

// operatorTable maps V2 operator codes to their spellings. Conversion
// operators use the "op" prefix and are resolved separately because the
// encoded type has to be decoded, not looked up.
var operatorTable = map[string]Operator{
	"nw":  {"nw", "operator new"},
	"dl":  {"dl", "operator delete"},
	"vn":  {"vn", "operator new[]"},
	"vd":  {"vd", "operator delete[]"},
	"as":  {"as", "operator="},
	"eq":  {"eq", "operator=="},
	"ne":  {"ne", "operator!="},
	"lt":  {"lt", "operator<"},
	"gt":  {"gt", "operator>"},
	"le":  {"le", "operator<="},
	"ge":  {"ge", "operator>="},
	"pl":  {"pl", "operator+"},
	"mi":  {"mi", "operator-"},
	"ml":  {"ml", "operator*"},
	"dv":  {"dv", "operator/"},
	"md":  {"md", "operator%"},
	"aa":  {"aa", "operator&&"},
	"oo":  {"oo", "operator||"},
	"er":  {"er", "operator^"},
	"or":  {"or", "operator|"},
	"ad":  {"ad", "operator&"},
	"nt":  {"nt", "operator!"},
	"co":  {"co", "operator~"},
	"ls":  {"ls", "operator<<"},
	"rs":  {"rs", "operator>>"},
	"pp":  {"pp", "operator++"},
	"mm":  {"mm", "operator--"},
	"cl":  {"cl", "operator()"},
	"vc":  {"vc", "operator[]"},
	"rf":  {"rf", "operator->"},
	"rm":  {"rm", "operator->*"},
	"cm":  {"cm", "operator,"},
	"cn":  {"cn", "operator?:"},
	"mx":  {"mx", "operator>?"},
	"mn":  {"mn", "operator<?"},
	"apl": {"apl", "operator+="},
	"ami": {"ami", "operator-="},
	"aml": {"aml", "operator*="},
	"adv": {"adv", "operator/="},
	"amd": {"amd", "operator%="},
	"aad": {"aad", "operator&="},
	"aor": {"aor", "operator|="},
	"aer": {"aer", "operator^="},
	"als": {"als", "operator<<="},
	"ars": {"ars", "operator>>="},
}

// lookupOperator resolves an operator code. The code is everything between
// the leading and trailing "__" markers, so no prefix disambiguation is
// needed at lookup time.
func lookupOperator(code string) (Operator, bool) {
	op, ok := operatorTable[code]
	return op, ok
}
