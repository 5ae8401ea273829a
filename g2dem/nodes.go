package g2dem

import (
	"math/big"
)

// NodeKind identifies the concrete type of a Node.
type NodeKind int

// Node kinds for every decoded construct.
const (
	KindBuiltin NodeKind = iota
	KindWideInt
	KindNamed
	KindQualified
	KindTemplate
	KindPointer
	KindReference
	KindConst
	KindVolatile
	KindSignPrefix
	KindArray
	KindFuncPtr
	KindMethodPtr
	KindEllipsis
	KindIntLiteral
	KindBoolLiteral
	KindCharLiteral
	KindEnumLiteral
	KindSymbolRef
)

// Node is a decoded type, name, or template argument. Nodes are immutable
// once built; String renders with the corrected preset, while callers that
// honor a specific Config go through the renderer instead.
type Node interface {
	Kind() NodeKind
	String() string
}

// BuiltinKind enumerates the primitive type codes.
type BuiltinKind int

// Builtin type kinds.
const (
	BuiltinVoid BuiltinKind = iota
	BuiltinBool
	BuiltinChar
	BuiltinWChar
	BuiltinShort
	BuiltinInt
	BuiltinLong
	BuiltinLongLong
	BuiltinFloat
	BuiltinDouble
	BuiltinLongDouble
)

var builtinNames = map[BuiltinKind]string{
	BuiltinVoid:       "void",
	BuiltinBool:       "bool",
	BuiltinChar:       "char",
	BuiltinWChar:      "wchar_t",
	BuiltinShort:      "short",
	BuiltinInt:        "int",
	BuiltinLong:       "long",
	BuiltinLongLong:   "long long",
	BuiltinFloat:      "float",
	BuiltinDouble:     "double",
	BuiltinLongDouble: "long double",
}

// BuiltinType is a primitive type.
type BuiltinType struct {
	Base BuiltinKind
}

func (t *BuiltinType) Kind() NodeKind { return KindBuiltin }
func (t *BuiltinType) String() string { return renderType(defaultConfig, t) }

// WideIntType is a sized integer type such as int128_t.
type WideIntType struct {
	Bits int
}

func (t *WideIntType) Kind() NodeKind { return KindWideInt }
func (t *WideIntType) String() string { return renderType(defaultConfig, t) }

// NamedType is a plain class, struct, union, or enum name.
type NamedType struct {
	Name string
}

func (t *NamedType) Kind() NodeKind { return KindNamed }
func (t *NamedType) String() string { return renderType(defaultConfig, t) }

// QualifiedName is a nested qualification chain, outermost first. Components
// are NamedType or TemplateType nodes.
type QualifiedName struct {
	Components []Node
}

func (t *QualifiedName) Kind() NodeKind { return KindQualified }
func (t *QualifiedName) String() string { return renderType(defaultConfig, t) }

// Last returns the innermost component.
func (t *QualifiedName) Last() Node {
	return t.Components[len(t.Components)-1]
}

// TemplateType is a template instantiation.
type TemplateType struct {
	Base string
	Args *argList
}

func (t *TemplateType) Kind() NodeKind { return KindTemplate }
func (t *TemplateType) String() string { return renderType(defaultConfig, t) }

// PointerType is a pointer to Inner.
type PointerType struct {
	Inner Node
}

func (t *PointerType) Kind() NodeKind { return KindPointer }
func (t *PointerType) String() string { return renderType(defaultConfig, t) }

// ReferenceType is a reference to Inner.
type ReferenceType struct {
	Inner Node
}

func (t *ReferenceType) Kind() NodeKind { return KindReference }
func (t *ReferenceType) String() string { return renderType(defaultConfig, t) }

// ConstType is a const-qualified Inner.
type ConstType struct {
	Inner Node
}

func (t *ConstType) Kind() NodeKind { return KindConst }
func (t *ConstType) String() string { return renderType(defaultConfig, t) }

// VolatileType is a volatile-qualified Inner.
type VolatileType struct {
	Inner Node
}

func (t *VolatileType) Kind() NodeKind { return KindVolatile }
func (t *VolatileType) String() string { return renderType(defaultConfig, t) }

// SignPrefixType applies an explicit signed/unsigned prefix to Inner.
type SignPrefixType struct {
	Unsigned bool
	Inner    Node
}

func (t *SignPrefixType) Kind() NodeKind { return KindSignPrefix }
func (t *SignPrefixType) String() string { return renderType(defaultConfig, t) }

// ArrayType is an array of Elem. Quals holds the pointer/reference chain
// that sits inside the parenthesized declarator ("*" in "int (*)[3]");
// it is empty for a bare array. Bounds are stored already adjusted for
// Config.FixArrayLengthArg.
type ArrayType struct {
	Quals  string
	Bounds []int
	Elem   Node
}

func (t *ArrayType) Kind() NodeKind { return KindArray }
func (t *ArrayType) String() string { return renderType(defaultConfig, t) }

// FuncPtrType is a pointer (or reference) to a function. Quals holds the
// declarator interior ("*" in "void (*)(int)").
type FuncPtrType struct {
	Quals string
	Ret   Node
	Args  *argList
}

func (t *FuncPtrType) Kind() NodeKind { return KindFuncPtr }
func (t *FuncPtrType) String() string { return renderType(defaultConfig, t) }

// MethodPtrType is a pointer to a member function of Class.
type MethodPtrType struct {
	Class string
	Quals string
	Ret   Node
	Args  *argList
	Const bool
}

func (t *MethodPtrType) Kind() NodeKind { return KindMethodPtr }
func (t *MethodPtrType) String() string { return renderType(defaultConfig, t) }

// EllipsisType is the "..." parameter.
type EllipsisType struct{}

func (t *EllipsisType) Kind() NodeKind { return KindEllipsis }
func (t *EllipsisType) String() string { return renderType(defaultConfig, t) }

// IntLiteral is an integral template value of arbitrary precision.
type IntLiteral struct {
	Value *big.Int
}

func (t *IntLiteral) Kind() NodeKind { return KindIntLiteral }
func (t *IntLiteral) String() string { return renderType(defaultConfig, t) }

// BoolLiteral is a boolean template value.
type BoolLiteral struct {
	Value bool
}

func (t *BoolLiteral) Kind() NodeKind { return KindBoolLiteral }
func (t *BoolLiteral) String() string { return renderType(defaultConfig, t) }

// CharLiteral is a character template value.
type CharLiteral struct {
	Value rune
}

func (t *CharLiteral) Kind() NodeKind { return KindCharLiteral }
func (t *CharLiteral) String() string { return renderType(defaultConfig, t) }

// EnumLiteral is an enum-typed template value: the constant plus the enum
// type it belongs to. Only the constant appears in rendered output.
type EnumLiteral struct {
	Type  Node
	Value *big.Int
}

func (t *EnumLiteral) Kind() NodeKind { return KindEnumLiteral }
func (t *EnumLiteral) String() string { return renderType(defaultConfig, t) }

// SymbolRef is a pointer- or reference-valued template argument naming a
// symbol. Address selects the "&name" form.
type SymbolRef struct {
	Name    string
	Address bool
}

func (t *SymbolRef) Kind() NodeKind { return KindSymbolRef }
func (t *SymbolRef) String() string { return renderType(defaultConfig, t) }

var defaultConfig = NewG2demConfig()
