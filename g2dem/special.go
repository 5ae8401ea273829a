package g2dem

import (
	"strings"
)

// destructor handles the _$_ shape. Whatever owner form follows, the
// destructor itself never takes arguments.
func (d *demangler) destructor() (string, error) {
	owner, base, err := d.ownerName()
	if err != nil {
		return "", err
	}
	if !d.cur.Empty() {
		return "", d.errorf(ErrInvalidToken, "trailing data after destructor")
	}
	return renderType(d.cfg, owner) + "::~" + base + "(void)", nil
}

// special handles symbols opening with "__": constructors, type_info
// helpers, and operators. Symbols that merely begin with underscores
// fall back to the generic shapes with the underscores kept as part of
// the name.
func (d *demangler) special() (string, error) {
	b, err := d.cur.Peek()
	if err != nil {
		return "", d.errorf(ErrUnsupported, "unrecognized special symbol")
	}
	switch {
	case isDigitByte(b):
		return d.constructor()
	case d.cur.StripPrefix("tf"):
		return d.typeInfo("function")
	case d.cur.StripPrefix("ti"):
		return d.typeInfo("node")
	case b == 't', b == 'Q':
		return d.constructor()
	}

	rest := d.cur.Remaining()
	if idx := strings.Index(rest, "__"); idx >= 0 {
		code := rest[:idx]
		if op, ok := lookupOperator(code); ok {
			d.cur.Skip(idx + 2)
			return d.operatorFunction(op.Spelling)
		}
		if strings.HasPrefix(code, "op") {
			if typ, ok := d.conversionType(code[2:]); ok {
				d.cur.Skip(idx + 2)
				return d.operatorFunction("operator " + typ)
			}
		}
	}

	// Not an operator after all. Retry the generic shapes against the
	// whole symbol so the leading underscores stay in the name.
	full := d.sym
	if i := strings.Index(full, "__F"); i > 0 && i+3 < len(full) {
		d.cur.SetOffset(i + 3)
		return d.freeFunction(full[:i])
	}
	if name, off, ok := methodSplit(full); ok {
		d.cur.SetOffset(off)
		return d.methodFunction(name)
	}
	if i := strings.Index(full, "__H"); i > 0 {
		d.cur.SetOffset(i + 3)
		return d.templatedFunction(full[:i])
	}
	return "", d.errorf(ErrUnsupported, "unrecognized operator")
}

// constructor spells Owner::Owner(args) for plain, templated, and
// namespaced owners alike.
func (d *demangler) constructor() (string, error) {
	owner, base, err := d.ownerName()
	if err != nil {
		return "", err
	}
	args, err := d.argumentsOrVoid(owner)
	if err != nil {
		return "", err
	}
	return renderType(d.cfg, owner) + "::" + base + "(" + args + ")", nil
}

// typeInfo handles __tf and __ti: a single type followed by nothing.
func (d *demangler) typeInfo(kind string) (string, error) {
	arg, err := d.demangleArgument(newArgList(nil))
	if err != nil {
		return "", err
	}
	if _, ok := arg.(*repeatNode); ok {
		return "", d.errorf(ErrInvalidToken, "invalid type_info subject")
	}
	if !d.cur.Empty() {
		return "", d.errorf(ErrInvalidToken, "trailing data after type")
	}
	return renderType(d.cfg, arg) + " type_info " + kind, nil
}

// conversionType decodes the target type embedded in a conversion
// operator's name. The encoding must describe exactly one type.
func (d *demangler) conversionType(enc string) (string, bool) {
	if enc == "" {
		return "", false
	}
	sub := d.fresh(enc)
	arg, err := sub.demangleArgument(newArgList(nil))
	if err != nil || !sub.cur.Empty() {
		return "", false
	}
	switch arg.(type) {
	case *repeatNode, *EllipsisType:
		return "", false
	}
	return renderType(d.cfg, arg), true
}

// operatorFunction finishes an operator symbol: either a free operator
// marked by F, or a member operator with an owner like any method.
func (d *demangler) operatorFunction(method string) (string, error) {
	if d.cur.StripByte('F') {
		args, err := d.argumentsOrVoid(nil)
		if err != nil {
			return "", err
		}
		return method + "(" + args + ")", nil
	}
	return d.methodFunction(method)
}

// methodFunction finishes a member function: cv-qualifier, owner, then
// the argument list with the owner occupying lookback slot zero.
func (d *demangler) methodFunction(name string) (string, error) {
	qual := d.methodQualifier()
	owner, _, err := d.ownerName()
	if err != nil {
		return "", err
	}
	args, err := d.argumentsOrVoid(owner)
	if err != nil {
		return "", err
	}
	return renderType(d.cfg, owner) + "::" + name + "(" + args + ")" + qual, nil
}

func (d *demangler) freeFunction(name string) (string, error) {
	args, err := d.argumentsOrVoid(nil)
	if err != nil {
		return "", err
	}
	return name + "(" + args + ")", nil
}

func (d *demangler) namespacedFunction(name string) (string, error) {
	ns, err := d.namespaces()
	if err != nil {
		return "", err
	}
	args, err := d.argumentsOrVoid(ns)
	if err != nil {
		return "", err
	}
	return renderType(d.cfg, ns) + "::" + name + "(" + args + ")", nil
}

// templatedFunction handles the __H shape: template arguments, optional
// owner, parameters, and an explicit return type. Array bounds in the
// parameters and return type render as written even when the length fix
// is on; only the template argument section gets the adjustment.
func (d *demangler) templatedFunction(name string) (string, error) {
	targs, class, err := d.templateFunctionPrefix()
	if err != nil {
		return "", err
	}
	d.templateArgs = targs
	d.arrayFixup = false

	qual := d.methodQualifier()
	if class == nil {
		b, perr := d.cur.Peek()
		if perr == nil {
			switch {
			case isDigitByte(b):
				n, err := d.customName()
				if err != nil {
					return "", err
				}
				class = &NamedType{Name: n}
			case b == 't':
				d.cur.Skip(1)
				if class, err = d.template(); err != nil {
					return "", err
				}
			case b == 'Q':
				d.cur.Skip(1)
				if class, err = d.namespaces(); err != nil {
					return "", err
				}
			}
		}
	}

	list := newArgList(class)
	if err := d.demangleArgumentList(list, true); err != nil {
		return "", err
	}
	if !d.cur.StripByte('_') {
		return "", d.errorf(ErrInvalidToken, "templated function missing return type")
	}
	ret, err := d.demangleArgument(newArgList(class))
	if err != nil {
		return "", err
	}
	switch ret.(type) {
	case *repeatNode, *EllipsisType:
		return "", d.errorf(ErrInvalidToken, "invalid return type")
	}
	if !d.cur.Empty() {
		return "", d.errorf(ErrInvalidToken, "trailing data after return type")
	}

	var sig string
	if class != nil {
		sig = renderType(d.cfg, class) + "::"
	}
	sig += renderTemplate(d.cfg, name, targs) + "(" + renderParams(d.cfg, list) + ")" + qual

	// A pointer-to-array return type wraps the whole signature inside
	// the array declarator; the historical form hoists the array out
	// front instead.
	if arr, ok := ret.(*ArrayType); ok && d.cfg.FixArrayInReturnPosition {
		elem := renderType(d.cfg, arr.Elem)
		return elem + spaceAfter(elem) + "(" + strings.Trim(arr.Quals, " ") + sig + ")" + renderBounds(arr.Bounds), nil
	}
	return renderType(d.cfg, ret) + " " + sig, nil
}

// virtualTable handles the _vt shape: separator-delimited owner
// components joined into one qualified name.
func (d *demangler) virtualTable() (string, error) {
	var parts []string
	for !d.cur.Empty() {
		if !d.cur.StripByte('$') && !d.cur.StripByte('.') {
			return "", d.errorf(ErrInvalidToken, "expected virtual table separator")
		}
		owner, _, err := d.ownerName()
		if err != nil {
			return "", err
		}
		parts = append(parts, renderType(d.cfg, owner))
	}
	if len(parts) == 0 {
		return "", d.errorf(ErrInvalidToken, "empty virtual table name")
	}
	return strings.Join(parts, "::") + " virtual table", nil
}

// namespacedGlobal handles a static data member: an owner encoding left
// of the separator, the member name spelled literally to the right.
func (d *demangler) namespacedGlobal(sep int) (string, error) {
	if !d.cur.StripByte('_') {
		return "", d.errorf(ErrNotMangled, "no recognizable mangling")
	}
	owner, _, err := d.ownerName()
	if err != nil {
		return "", err
	}
	if d.cur.Offset() != sep {
		return "", d.errorf(ErrInvalidToken, "trailing data in global name")
	}
	return renderType(d.cfg, owner) + "::" + d.sym[sep+1:], nil
}

// globalKeyed handles _GLOBAL_$ symbols. The key part demangles with a
// fresh pass that no longer recognizes the _GLOBAL_$ prefix; if that
// fails the raw key text is reported instead.
func (d *demangler) globalKeyed() (string, error) {
	var which string
	var isCtor bool
	switch {
	case d.cur.StripPrefix("I$"):
		which, isCtor = "constructors", true
	case d.cur.StripPrefix("D$"):
		which = "destructors"
	case d.cur.StripPrefix("F$"):
		if !d.cfg.DemangleGlobalKeyedFrames {
			sub := d.fresh(d.sym)
			return sub.demangle(false)
		}
		which = "frames"
	default:
		return "", d.errorf(ErrUnsupported, "unrecognized global key")
	}

	remaining := d.cur.Remaining()
	sub := d.fresh(remaining)
	inner, err := sub.demangle(false)

	// The historical demangler forgot the "global constructors keyed
	// to" prefix when the key was a namespaced constructor.
	if !d.cfg.FixNamespacedGlobalConstructorBug && isCtor && strings.HasPrefix(remaining, "__Q") {
		return inner, err
	}

	actual := remaining
	if err == nil {
		actual = inner
	}
	return "global " + which + " keyed to " + actual, nil
}
