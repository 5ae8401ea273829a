package g2dem

import (
	"fmt"
	"strconv"
	"strings"
)

// renderType produces the C++ spelling of a decoded node. Qualifier text
// accumulates to the right of the base type, so "PCc" comes out as
// "char const *" in the traditional suffix style.
func renderType(cfg Config, n Node) string {
	switch t := n.(type) {
	case *BuiltinType:
		return builtinNames[t.Base]
	case *WideIntType:
		return fmt.Sprintf("int%d_t", t.Bits)
	case *NamedType:
		return t.Name
	case *QualifiedName:
		parts := make([]string, 0, len(t.Components))
		for _, c := range t.Components {
			parts = append(parts, renderType(cfg, c))
		}
		return strings.Join(parts, "::")
	case *TemplateType:
		return renderTemplate(cfg, t.Base, t.Args)
	case *PointerType:
		return appendQual(renderType(cfg, t.Inner), "*")
	case *ReferenceType:
		return appendQual(renderType(cfg, t.Inner), "&")
	case *ConstType:
		return appendQual(renderType(cfg, t.Inner), "const")
	case *VolatileType:
		return appendQual(renderType(cfg, t.Inner), "volatile")
	case *SignPrefixType:
		prefix := "signed "
		if t.Unsigned {
			prefix = "unsigned "
		}
		return prefix + renderType(cfg, t.Inner)
	case *ArrayType:
		return renderArray(cfg, t)
	case *FuncPtrType, *MethodPtrType:
		return renderFuncLike(cfg, t)
	case *EllipsisType:
		return "..."
	case *IntLiteral:
		return t.Value.String()
	case *BoolLiteral:
		if t.Value {
			return "true"
		}
		return "false"
	case *CharLiteral:
		return "'" + string(t.Value) + "'"
	case *EnumLiteral:
		return t.Value.String()
	case *SymbolRef:
		if t.Address {
			return "&" + t.Name
		}
		return t.Name
	}
	return ""
}

// appendQual attaches a qualifier to the right of a rendered type,
// inserting a space unless the text already ends in a pointer or
// reference mark.
func appendQual(s, qual string) string {
	if endsInPtrOrRef(s) {
		return s + qual
	}
	return s + " " + qual
}

func endsInPtrOrRef(s string) bool {
	return strings.HasSuffix(s, "*") || strings.HasSuffix(s, "&")
}

// spaceAfter separates a rendered type from following declarator text.
func spaceAfter(s string) string {
	if endsInPtrOrRef(s) {
		return ""
	}
	return " "
}

// renderParams joins an argument list with ", ". The historical ellipsis
// form appends ",..." without a space; the corrected form carries the
// ellipsis as an ordinary trailing argument.
func renderParams(cfg Config, l *argList) string {
	parts := make([]string, 0, len(l.args))
	for _, a := range l.args {
		parts = append(parts, renderType(cfg, a))
	}
	out := strings.Join(parts, ", ")
	if l.trailingEllipsis {
		if out != "" {
			out += ","
		}
		out += "..."
	}
	return out
}

// renderTemplate spells an instantiation, padding before a closing '>'
// so nested templates never form ">>".
func renderTemplate(cfg Config, base string, args *argList) string {
	inner := renderParams(cfg, args)
	if strings.HasSuffix(inner, ">") {
		return base + "<" + inner + " >"
	}
	return base + "<" + inner + ">"
}

func renderBounds(bounds []int) string {
	var sb strings.Builder
	for _, b := range bounds {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(b))
		sb.WriteByte(']')
	}
	return sb.String()
}

// renderArray spells an array declarator. A pointer chain renders inside
// parentheses as in "int (*)[3]"; a bare array drops them.
func renderArray(cfg Config, t *ArrayType) string {
	elem := renderType(cfg, t.Elem)
	out := elem + spaceAfter(elem)
	if quals := strings.Trim(t.Quals, " "); quals != "" {
		out += "(" + quals + ")"
	}
	return out + renderBounds(t.Bounds)
}

// funcParts flattens a function or method pointer, folding any function
// pointer return type into the declarator interior the way the written
// form nests: the deepest return type leads, and each level contributes
// one parenthesized group.
func funcParts(cfg Config, n Node) (ret Node, interior, args, constSuffix string, ok bool) {
	switch t := n.(type) {
	case *FuncPtrType:
		selfArgs := renderParams(cfg, t.Args)
		if iret, iint, iargs, iconst, iok := funcParts(cfg, t.Ret); iok {
			return iret, t.Quals + "(" + iint + ")(" + selfArgs + ")" + iconst, iargs, "", true
		}
		return t.Ret, t.Quals, selfArgs, "", true
	case *MethodPtrType:
		selfArgs := renderParams(cfg, t.Args)
		var cs string
		if t.Const {
			cs = " const"
		}
		if iret, iint, iargs, iconst, iok := funcParts(cfg, t.Ret); iok {
			return iret, t.Class + "::" + t.Quals + "(" + iint + ")(" + selfArgs + ")" + iconst, iargs, cs, true
		}
		return t.Ret, t.Class + "::" + t.Quals, selfArgs, cs, true
	}
	return nil, "", "", "", false
}

func renderFuncLike(cfg Config, n Node) string {
	ret, interior, args, constSuffix, ok := funcParts(cfg, n)
	if !ok {
		return ""
	}
	retStr := renderType(cfg, ret)
	return retStr + spaceAfter(retStr) + "(" + strings.Trim(interior, " ") + ")(" + args + ")" + constSuffix
}
