package g2dem

import (
	"errors"
	"strings"
	"testing"
)

func TestDemangleCorrected(t *testing.T) {
	tests := []struct {
		sym  string
		want string
	}{
		{"test__Fv", "test(void)"},
		{"whatever_default__Fcsilx", "whatever_default(char, short, int, long, long long)"},
		{"whatever_signed__FScsilx", "whatever_signed(signed char, short, int, long, long long)"},
		{"whatever_unsigned__FUcUsUiUlx", "whatever_unsigned(unsigned char, unsigned short, unsigned int, unsigned long, long long)"},
		{"whatever_other__Ffdrb", "whatever_other(float, double, long double, bool)"},
		{"whatever_why__Fw", "whatever_why(wchar_t)"},
		{"whatever_pointer__FPcPsPiPlPx", "whatever_pointer(char *, short *, int *, long *, long long *)"},
		{"whatever_const_pointer__FPCcPCsPCiPClPCx", "whatever_const_pointer(char const *, short const *, int const *, long const *, long long const *)"},
		{"const_ptr__FPCc", "const_ptr(char const *)"},
		{"ptr_const__FCPc", "ptr_const(char *const)"},
		{"const_ptr_const__FCPCc", "const_ptr_const(char const *const)"},
		{"silly_function__FPCPCPCPCPCc", "silly_function(char const *const *const *const *const *)"},
		{"reference__FRC5Thing", "reference(Thing const &)"},
		{"__vc__C11FancyVectorUi", "FancyVector::operator[](unsigned int) const"},
		{"a_function__Q35silly8my_thing17another_namespacefffi", "silly::my_thing::another_namespace::a_function(float, float, float, int)"},
		{"__tf11FancyVector", "FancyVector type_info function"},
		{"__ti11FancyVector", "FancyVector type_info node"},
		{"Printf__7ConsolePCce", "Console::Printf(char const *, ...)"},
		{"actual_function__FRt10SomeVector2Z4NodeR13TestAllocator17AllocatorInstanceG4Node", "actual_function(SomeVector<Node, AllocatorInstance> &, Node)"},
		{"simpler_array__FPA41_A24_Ci", "simpler_array(int const (*)[42][25])"},
		{"class_method_args__FPM9SomeClassCFPC9SomeClass_v", "class_method_args(void (SomeClass::*)() const)"},
		{"unsigned_128__FPCUI80", "unsigned_128(unsigned int128_t const *)"},
		{"an_array__H1Zi_C14SomethingSillyX01_PA3_i", "int (*SomethingSilly::an_array<int>(int) const)[3]"},
		{"max__H1Zi_X01X01_X01", "int max<int>(int, int)"},
		{"f__H6ZiZiZiZiZiZc_i_X_50", "char f<int, int, int, int, int, char>(int)"},
		{"do_thing__C6StupidRC6StupidT1", "Stupid::do_thing(Stupid const &, Stupid const &) const"},
		{"f__1A", "A::f(void)"},
		{"_$_5tName", "tName::~tName(void)"},
		{"_$_t3Foo1Zi", "Foo<int>::~Foo(void)"},
		{"_$_Q25outer5inner", "outer::inner::~inner(void)"},
		{"__7istreamiP9streambufP7ostream", "istream::istream(int, streambuf *, ostream *)"},
		{"__t4pair2ZiZiii", "pair<int, int>::pair(int, int)"},
		{"__Q22ns3Foo", "ns::Foo::Foo(void)"},
		{"__Q23Foot3Bar1Zi", "Foo::Bar<int>::Bar(void)"},
		{"_$_Q23Foot3Bar1Zi", "Foo::Bar<int>::~Bar(void)"},
		{"__nw__FUi", "operator new(unsigned int)"},
		{"__vn__FUi", "operator new[](unsigned int)"},
		{"__vd__FPv", "operator delete[](void *)"},
		{"__apl__7ComplexRC7Complex", "Complex::operator+=(Complex const &)"},
		{"__eq__t4pair2ZiZiRCT0", "pair<int, int>::operator==(pair<int, int> const &)"},
		{"__opi__7Integer", "Integer::operator int(void)"},
		{"__opPc__6String", "String::operator char *(void)"},
		{"_vt$5Stack", "Stack virtual table"},
		{"_vt$5Stack$4Base", "Stack::Base virtual table"},
		{"_vt$Q25outer5inner", "outer::inner virtual table"},
		{"_11FancyVector$spInstance", "FancyVector::spInstance"},
		{"_t4pair2ZiZi$count", "pair<int, int>::count"},
		{"_GLOBAL_$I$_11FancyVector$spInstance", "global constructors keyed to FancyVector::spInstance"},
		{"_GLOBAL_$D$_11FancyVector$spInstance", "global destructors keyed to FancyVector::spInstance"},
		{"_GLOBAL_$F$__7istreamiP9streambufP7ostream", "global frames keyed to istream::istream(int, streambuf *, ostream *)"},
		{"_GLOBAL_$F$__default_terminate", "global frames keyed to __default_terminate"},
		{"_GLOBAL_$I$junk", "global constructors keyed to junk"},
		{"f__Ft3Out1Zt2In1Zi", "f(Out<In<int> >)"},
		{"f__Ft4Name1c88", "f(Name<'X'>)"},
		{"f__Ft4Flag1b1", "f(Flag<true>)"},
		{"f__Ft4Flag1b0", "f(Flag<false>)"},
		{"f__Ft3Box1im5", "f(Box<-5>)"},
		{"f__Ft3Box15Color2", "f(Box<2>)"},
		{"f__Ft3Box15Colorm3", "f(Box<-3>)"},
		{"f__Q212_GLOBAL_$N$x3fooi", "{anonymous}::foo::f(int)"},
		{"f__Fe", "f(...)"},
	}
	for _, tt := range tests {
		got, err := Demangle(tt.sym)
		if err != nil {
			t.Errorf("Demangle(%q): unexpected error: %v", tt.sym, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Demangle(%q) = %q, want %q", tt.sym, got, tt.want)
		}
	}
}

func TestDemangleLegacy(t *testing.T) {
	cfg := NewCfiltConfig()
	tests := []struct {
		sym  string
		want string
	}{
		{"Printf__7ConsolePCce", "Console::Printf(char const *,...)"},
		{"simpler_array__FPA41_A24_Ci", "simpler_array(int const (*)[41][24])"},
		{"an_array__H1Zi_C14SomethingSillyX01_PA3_i", "int (*)[3] SomethingSilly::an_array<int>(int) const"},
		{"_GLOBAL_$F$__7istreamiP9streambufP7ostream", "istream::_GLOBAL_$F$(int, streambuf *, ostream *)"},
		{"_GLOBAL_$I$__Q23std4init", "std::init::init(void)"},
		{"f__Fe", "f(...)"},
		{"test__Fv", "test(void)"},
		{"do_thing__C6StupidRC6StupidT1", "Stupid::do_thing(Stupid const &, Stupid const &) const"},
	}
	for _, tt := range tests {
		got, err := DemangleWith(tt.sym, cfg)
		if err != nil {
			t.Errorf("DemangleWith(%q, cfilt): unexpected error: %v", tt.sym, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DemangleWith(%q, cfilt) = %q, want %q", tt.sym, got, tt.want)
		}
	}

	// The frames prefix is unknown to the legacy preset, and this key
	// decodes under no other shape either.
	if _, err := DemangleWith("_GLOBAL_$F$__default_terminate", cfg); err == nil {
		t.Error("DemangleWith(_GLOBAL_$F$__default_terminate, cfilt): expected error")
	}
}

func TestGlobalConstructorAttribution(t *testing.T) {
	const sym = "_GLOBAL_$I$__Q23std4init"

	got, err := Demangle(sym)
	if err != nil {
		t.Fatalf("Demangle(%q): %v", sym, err)
	}
	if want := "global constructors keyed to std::init::init(void)"; got != want {
		t.Errorf("corrected = %q, want %q", got, want)
	}

	got, err = DemangleWith(sym, NewCfiltConfig())
	if err != nil {
		t.Fatalf("DemangleWith(%q, cfilt): %v", sym, err)
	}
	if want := "std::init::init(void)"; got != want {
		t.Errorf("legacy = %q, want %q", got, want)
	}
}

func TestRepeatExpansion(t *testing.T) {
	got, err := Demangle("repeating__FPCcN24_0")
	if err != nil {
		t.Fatalf("Demangle: %v", err)
	}
	want := "repeating(" + strings.Repeat("char const *, ", 24) + "char const *)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBackrefEquivalence(t *testing.T) {
	pairs := []struct {
		spelled, backref string
	}{
		{"dup__FPCcPCc", "dup__FPCcT0"},
		{"dup__FPCcPCc", "dup__FPCcN10"},
		{"dup__3FooPCcPCc", "dup__3FooPCcT1"},
	}
	for _, p := range pairs {
		full, err := Demangle(p.spelled)
		if err != nil {
			t.Fatalf("Demangle(%q): %v", p.spelled, err)
		}
		short, err := Demangle(p.backref)
		if err != nil {
			t.Fatalf("Demangle(%q): %v", p.backref, err)
		}
		if full != short {
			t.Errorf("Demangle(%q) = %q, Demangle(%q) = %q; want identical", p.spelled, full, p.backref, short)
		}
	}
}

func TestNotMangled(t *testing.T) {
	inputs := []string{
		"not_a_mangled_sym",
		"main",
		"strcpy",
		"_init",
		"x",
		"たとえば",
	}
	for _, sym := range inputs {
		if _, err := Demangle(sym); !errors.Is(err, ErrNotMangled) {
			t.Errorf("Demangle(%q): want ErrNotMangled, got %v", sym, err)
		}
		if got := Filter(sym, NewG2demConfig()); got != sym {
			t.Errorf("Filter(%q) = %q; want the input back", sym, got)
		}
	}
	if got := Filter("test__Fv", NewG2demConfig()); got != "test(void)" {
		t.Errorf("Filter(test__Fv) = %q, want %q", got, "test(void)")
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		sym  string
		want error
	}{
		{"", ErrInvalidToken},
		{"f__Fz", ErrInvalidToken},
		{"f__FT5", ErrInvalidToken},
		{"f__FN91", ErrInvalidToken},
		{"f__FiN00", ErrInvalidToken},
		{"f__H1Zi_i_X_10_1", ErrInvalidToken},
		{"f__F0", ErrInvalidToken},
		{"_$_5tNameee", ErrInvalidToken},
		{"f__F5ab", ErrUnexpectedEnd},
		{"__zz__v", ErrUnsupported},
		{"f__Ft3Box1d3", ErrUnsupported},
	}
	for _, tt := range tests {
		_, err := Demangle(tt.sym)
		if !errors.Is(err, tt.want) {
			t.Errorf("Demangle(%q): want %v, got %v", tt.sym, tt.want, err)
		}
	}
}

func TestSymbolError(t *testing.T) {
	_, err := Demangle("f__Fz")
	var symErr *SymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("error %v does not unwrap to *SymbolError", err)
	}
	if symErr.Symbol != "f__Fz" {
		t.Errorf("Symbol = %q, want %q", symErr.Symbol, "f__Fz")
	}
	if symErr.Offset <= 0 || symErr.Offset > len("f__Fz") {
		t.Errorf("Offset = %d, want within the symbol", symErr.Offset)
	}
	if !strings.Contains(err.Error(), "f__Fz") {
		t.Errorf("Error() = %q, want it to name the symbol", err.Error())
	}
}

func TestDeterminism(t *testing.T) {
	syms := []string{
		"do_thing__C6StupidRC6StupidT1",
		"an_array__H1Zi_C14SomethingSillyX01_PA3_i",
		"repeating__FPCcN24_0",
	}
	for _, sym := range syms {
		first, err := Demangle(sym)
		if err != nil {
			t.Fatalf("Demangle(%q): %v", sym, err)
		}
		for i := 0; i < 3; i++ {
			again, err := Demangle(sym)
			if err != nil {
				t.Fatalf("Demangle(%q) run %d: %v", sym, i, err)
			}
			if again != first {
				t.Fatalf("Demangle(%q) run %d = %q, first run %q", sym, i, again, first)
			}
		}
	}
}

// nestedFuncPtr builds f(<depth> nested function pointers returning int).
func nestedFuncPtr(depth int) string {
	enc := "i"
	for i := 0; i < depth; i++ {
		enc = "PF" + enc + "_i"
	}
	return "f__F" + enc
}

// nestedEnumValue builds f(A<-7>) with depth levels of enum values whose
// declared type is the next template down. Needs depth >= 2.
func nestedEnumValue(depth int) string {
	return "f__F" + strings.Repeat("t1A1", depth) + "1B5" + strings.Repeat("m7", depth-1)
}

func TestNestedFunctionPointers(t *testing.T) {
	for depth := 1; depth <= 40; depth++ {
		sym := nestedFuncPtr(depth)
		got, err := Demangle(sym)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		want := "int"
		for i := 0; i < depth; i++ {
			want = "int (*)(" + want + ")"
		}
		want = "f(" + want + ")"
		if got != want {
			t.Fatalf("depth %d = %q, want %q", depth, got, want)
		}
		if strings.Count(got, "(") != strings.Count(got, ")") {
			t.Fatalf("depth %d: unbalanced parentheses in %q", depth, got)
		}
	}
}

func TestRecursionLimit(t *testing.T) {
	if _, err := Demangle(nestedFuncPtr(600)); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("deep nesting: want ErrRecursionLimit, got %v", err)
	}

	cfg := NewG2demConfig()
	cfg.MaxDepth = 8
	if _, err := DemangleWith(nestedFuncPtr(20), cfg); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("MaxDepth 8: want ErrRecursionLimit, got %v", err)
	}
	if _, err := Demangle(nestedFuncPtr(20)); err != nil {
		t.Errorf("default depth, 20 levels: unexpected error %v", err)
	}

	// Template values recurse through the template and namespace
	// productions rather than the argument decoder.
	if _, err := Demangle(nestedEnumValue(600)); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("deep template values: want ErrRecursionLimit, got %v", err)
	}
	if _, err := DemangleWith(nestedEnumValue(20), cfg); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("MaxDepth 8, template values: want ErrRecursionLimit, got %v", err)
	}
	got, err := Demangle(nestedEnumValue(20))
	if err != nil {
		t.Errorf("default depth, 20 template levels: unexpected error %v", err)
	} else if got != "f(A<-7>)" {
		t.Errorf("nested template values = %q, want %q", got, "f(A<-7>)")
	}
}

func TestWideLiteralTemplateValue(t *testing.T) {
	// 2^127 - 1 does not fit any native integer.
	const sym = "f__Ft3Big1x170141183460469231731687303715884105727"
	got, err := Demangle(sym)
	if err != nil {
		t.Fatalf("Demangle: %v", err)
	}
	if want := "f(Big<170141183460469231731687303715884105727>)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	neg := "f__Ft3Big1xm170141183460469231731687303715884105728"
	got, err = Demangle(neg)
	if err != nil {
		t.Fatalf("Demangle: %v", err)
	}
	if want := "f(Big<-170141183460469231731687303715884105728>)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestModePartition(t *testing.T) {
	// Symbols outside the documented flag surfaces must render the same
	// under both presets.
	same := []string{
		"test__Fv",
		"whatever_default__Fcsilx",
		"silly_function__FPCPCPCPCPCc",
		"__vc__C11FancyVectorUi",
		"a_function__Q35silly8my_thing17another_namespacefffi",
		"repeating__FPCcN24_0",
		"__tf11FancyVector",
		"actual_function__FRt10SomeVector2Z4NodeR13TestAllocator17AllocatorInstanceG4Node",
		"class_method_args__FPM9SomeClassCFPC9SomeClass_v",
		"unsigned_128__FPCUI80",
		"do_thing__C6StupidRC6StupidT1",
		"_$_5tName",
		"_vt$5Stack",
		"_11FancyVector$spInstance",
		"_GLOBAL_$I$_11FancyVector$spInstance",
		"__nw__FUi",
		"__opi__7Integer",
	}
	legacy := NewCfiltConfig()
	for _, sym := range same {
		l, err := DemangleWith(sym, legacy)
		if err != nil {
			t.Fatalf("DemangleWith(%q, cfilt): %v", sym, err)
		}
		c, err := Demangle(sym)
		if err != nil {
			t.Fatalf("Demangle(%q): %v", sym, err)
		}
		if l != c {
			t.Errorf("%q: presets diverge: legacy %q, corrected %q", sym, l, c)
		}
	}
}

func TestArrayReturnFlagIsolated(t *testing.T) {
	const sym = "an_array__H1Zi_C14SomethingSillyX01_PA3_i"

	cfg := NewCfiltConfig()
	cfg.FixArrayInReturnPosition = true
	got, err := DemangleWith(sym, cfg)
	if err != nil {
		t.Fatalf("DemangleWith: %v", err)
	}
	if want := "int (*SomethingSilly::an_array<int>(int) const)[3]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// The flag must not leak into unrelated symbols.
	plain, err := DemangleWith("test__Fv", cfg)
	if err != nil {
		t.Fatalf("DemangleWith: %v", err)
	}
	if plain != "test(void)" {
		t.Errorf("test__Fv under flipped flag = %q", plain)
	}
}

func BenchmarkDemangleMethod(b *testing.B) {
	for b.Loop() {
		if _, err := Demangle("do_thing__C6StupidRC6StupidT1"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDemangleTemplated(b *testing.B) {
	for b.Loop() {
		if _, err := Demangle("an_array__H1Zi_C14SomethingSillyX01_PA3_i"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilterNotMangled(b *testing.B) {
	cfg := NewG2demConfig()
	for b.Loop() {
		Filter("not_a_mangled_sym", cfg)
	}
}
