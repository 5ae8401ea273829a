package g2dem

// signState tracks an explicit S/U code, which prefixes the base type it
// immediately precedes.
type signState int

const (
	signNone signState = iota
	signSigned
	signUnsigned
)

var builtinCodes = map[byte]BuiltinKind{
	'c': BuiltinChar,
	's': BuiltinShort,
	'i': BuiltinInt,
	'l': BuiltinLong,
	'x': BuiltinLongLong,
	'f': BuiltinFloat,
	'd': BuiltinDouble,
	'r': BuiltinLongDouble,
	'b': BuiltinBool,
	'w': BuiltinWChar,
	'v': BuiltinVoid,
}

const kindRepeat NodeKind = -1

// repeatNode marks an N repeat until the surrounding argument list
// resolves it. It never appears in a finished tree.
type repeatNode struct {
	count, index int
}

func (t *repeatNode) Kind() NodeKind { return kindRepeat }
func (t *repeatNode) String() string { return "" }

// demangleArgument decodes one type expression. parsed is the argument
// list under construction; T and N tokens resolve against it by position.
func (d *demangler) demangleArgument(parsed *argList) (Node, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	if d.cur.StripByte('N') {
		count, ok := d.cur.NumberMaybeMultiDigit()
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "expected repeat count")
		}
		if count == 0 {
			return nil, d.errorf(ErrInvalidToken, "repeat count of zero")
		}
		index, ok := d.cur.NumberMaybeMultiDigit()
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "expected repeat index")
		}
		return &repeatNode{count: count, index: index}, nil
	}
	if d.cur.StripByte('e') {
		return &EllipsisType{}, nil
	}

	quals, sign := d.argQualifiers()

	// An array pseudo-qualifier captures the pointer chain seen so far
	// into the parenthesized declarator; element qualifiers follow the
	// bounds.
	var arr *ArrayType
	if b, err := d.cur.Peek(); err == nil && b == 'A' {
		if sign != signNone {
			return nil, d.errorf(ErrInvalidToken, "sign qualifier before array")
		}
		arr = &ArrayType{Quals: qualChainString(quals)}
		for d.cur.StripByte('A') {
			bound, ok := d.cur.Number()
			if !ok {
				return nil, d.errorf(ErrInvalidToken, "expected array bound")
			}
			if !d.cur.StripByte('_') {
				return nil, d.errorf(ErrInvalidToken, "unterminated array bound")
			}
			if d.cfg.FixArrayLengthArg && d.arrayFixup {
				bound++
			}
			arr.Bounds = append(arr.Bounds, bound)
		}
		quals, sign = d.argQualifiers()
	}

	node, err := d.qualifiedBase(quals, sign, parsed)
	if err != nil {
		return nil, err
	}
	if arr != nil {
		arr.Elem = node
		return arr, nil
	}
	return node, nil
}

// qualifiedBase decodes the part of a type after its qualifier chain:
// a function pointer, a method pointer, or a base type wrapped back in
// the collected qualifiers.
func (d *demangler) qualifiedBase(quals []byte, sign signState, parsed *argList) (Node, error) {
	if d.cur.StripByte('F') {
		return d.functionPointer(qualChainString(quals), sign)
	}
	if d.cur.StripByte('M') {
		return d.methodPointer(quals, sign, parsed)
	}
	if d.cur.StripByte('G') {
		b, err := d.cur.Peek()
		if err != nil {
			return nil, d.errorf(ErrUnexpectedEnd, "expected class type")
		}
		if !isDigitByte(b) && b != 'Q' && b != 't' {
			return nil, d.errorf(ErrInvalidToken, "expected class type after G")
		}
	}
	base, err := d.baseType(parsed)
	if err != nil {
		return nil, err
	}
	return wrapQuals(quals, wrapSign(sign, base)), nil
}

// argQualifiers consumes the leading qualifier chain and one optional
// sign code.
func (d *demangler) argQualifiers() ([]byte, signState) {
	var quals []byte
	for {
		b, err := d.cur.Peek()
		if err != nil {
			break
		}
		if b != 'P' && b != 'R' && b != 'C' && b != 'V' {
			break
		}
		d.cur.Skip(1)
		quals = append(quals, b)
	}
	sign := signNone
	if d.cur.StripByte('S') {
		sign = signSigned
	} else if d.cur.StripByte('U') {
		sign = signUnsigned
	}
	return quals, sign
}

// baseType decodes a builtin code, a named or qualified type, a template
// instantiation, a lookback, a template argument reference, or a sized
// integer.
func (d *demangler) baseType(parsed *argList) (Node, error) {
	b, err := d.cur.Peek()
	if err != nil {
		return nil, d.errorf(ErrUnexpectedEnd, "expected type")
	}
	if isDigitByte(b) {
		name, err := d.customName()
		if err != nil {
			return nil, err
		}
		return &NamedType{Name: name}, nil
	}
	d.cur.Skip(1)
	if kind, ok := builtinCodes[b]; ok {
		return &BuiltinType{Base: kind}, nil
	}
	switch b {
	case 'Q':
		return d.namespaces()
	case 't':
		return d.template()
	case 'T':
		index, ok := d.cur.NumberMaybeMultiDigit()
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "expected lookback index")
		}
		n, ok := parsed.lookup(index)
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "lookback index out of range")
		}
		return n, nil
	case 'X':
		return d.templateArgRef()
	case 'I':
		return d.wideInt()
	}
	return nil, d.errorf(ErrInvalidToken, "unknown type code %q", string(b))
}

// templateArgRef resolves an X reference against the template arguments
// in scope.
func (d *demangler) templateArgRef() (Node, error) {
	var index int
	var ok bool
	if d.cur.StripByte('_') {
		index, ok = d.cur.NumberMaybeMultiDigit()
	} else {
		index, ok = d.cur.Digit()
	}
	if !ok {
		return nil, d.errorf(ErrInvalidToken, "expected template argument index")
	}
	level, ok := d.cur.Digit()
	if !ok || level > 1 {
		return nil, d.errorf(ErrInvalidToken, "malformed template argument reference")
	}
	if d.templateArgs == nil {
		return nil, d.errorf(ErrInvalidToken, "template argument reference outside a template")
	}
	n, ok := d.templateArgs.lookup(index)
	if !ok {
		return nil, d.errorf(ErrInvalidToken, "template argument reference out of range")
	}
	return n, nil
}

// wideInt decodes a sized integer: two hex digits of bit width, or an
// underscore-delimited hex width for anything wider.
func (d *demangler) wideInt() (Node, error) {
	var bits int
	var ok bool
	if d.cur.StripByte('_') {
		bits, ok = d.cur.HexNumberUntil('_')
	} else {
		bits, ok = d.cur.HexNumber(2)
	}
	if !ok {
		return nil, d.errorf(ErrInvalidToken, "malformed integer width")
	}
	return &WideIntType{Bits: bits}, nil
}

// functionPointer decodes F<args>_<return>. Its arguments form their own
// lookback scope, and the return type resolves lookbacks against that
// same scope.
func (d *demangler) functionPointer(qualStr string, sign signState) (Node, error) {
	args := newArgList(nil)
	if err := d.demangleArgumentList(args, true); err != nil {
		return nil, err
	}
	if !d.cur.StripByte('_') {
		return nil, d.errorf(ErrInvalidToken, "function pointer missing return type")
	}
	ret, err := d.demangleArgument(args)
	if err != nil {
		return nil, err
	}
	switch ret.(type) {
	case *repeatNode, *EllipsisType:
		return nil, d.errorf(ErrInvalidToken, "invalid function pointer return type")
	case *FuncPtrType, *MethodPtrType:
		return &FuncPtrType{Quals: signText(sign) + qualStr, Ret: ret, Args: args}, nil
	}
	return &FuncPtrType{Quals: qualStr, Ret: wrapSign(sign, ret), Args: args}, nil
}

// methodPointer decodes M<class>[C]F<this><args>_<return>. The first
// function argument restates the class and must match it.
func (d *demangler) methodPointer(quals []byte, sign signState, parsed *argList) (Node, error) {
	if sign != signNone {
		return nil, d.errorf(ErrInvalidToken, "sign qualifier before method pointer")
	}
	for _, q := range quals {
		if q != 'P' {
			return nil, d.errorf(ErrInvalidToken, "invalid qualifier before method pointer")
		}
	}
	class, err := d.className(parsed)
	if err != nil {
		return nil, err
	}
	isConst := d.cur.StripByte('C')
	if !d.cur.StripByte('F') {
		return nil, d.errorf(ErrInvalidToken, "expected method pointer function type")
	}
	if !d.cur.StripByte('P') {
		return nil, d.errorf(ErrInvalidToken, "method pointer missing object argument")
	}
	if isConst && !d.cur.StripByte('C') {
		return nil, d.errorf(ErrInvalidToken, "method pointer object argument missing const")
	}
	thisClass, err := d.className(parsed)
	if err != nil {
		return nil, err
	}
	if thisClass != class {
		return nil, d.errorf(ErrInvalidToken, "method pointer class mismatch")
	}
	fpNode, err := d.functionPointer(qualChainString(quals), signNone)
	if err != nil {
		return nil, err
	}
	fp := fpNode.(*FuncPtrType)
	return &MethodPtrType{
		Class: class,
		Quals: fp.Quals,
		Ret:   fp.Ret,
		Args:  fp.Args,
		Const: isConst,
	}, nil
}

// className decodes the class side of a method pointer: a bare
// length-prefixed name, or any class-like type expression.
func (d *demangler) className(parsed *argList) (string, error) {
	if b, err := d.cur.Peek(); err == nil && isDigitByte(b) {
		return d.customName()
	}
	n, err := d.demangleArgument(parsed)
	if err != nil {
		return "", err
	}
	switch n.(type) {
	case *repeatNode, *EllipsisType, *FuncPtrType, *MethodPtrType:
		return "", d.errorf(ErrInvalidToken, "invalid method pointer class")
	}
	return renderType(d.cfg, n), nil
}

// demangleArgumentList decodes arguments until the input is exhausted or
// rests on a terminator underscore. allowTrailing permits further input
// after an ellipsis, which function pointer argument lists need for
// their return type.
func (d *demangler) demangleArgumentList(list *argList, allowTrailing bool) error {
	for !d.cur.Empty() {
		if b, err := d.cur.Peek(); err == nil && b == '_' {
			break
		}
		arg, err := d.demangleArgument(list)
		if err != nil {
			return err
		}
		stop, err := d.pushArg(list, arg, allowTrailing)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// pushArg places a decoded argument into the list, expanding repeats and
// applying the configured ellipsis behavior.
func (d *demangler) pushArg(list *argList, arg Node, allowTrailing bool) (stop bool, err error) {
	switch t := arg.(type) {
	case *repeatNode:
		if !list.pushRepeat(t.count, t.index) {
			return false, d.errorf(ErrInvalidToken, "repeat lookback out of range")
		}
		return false, nil
	case *EllipsisType:
		if !allowTrailing && !d.cur.Empty() {
			return false, d.errorf(ErrInvalidToken, "data after ellipsis")
		}
		if d.cfg.EllipsisEmitSpaceAfterComma {
			list.push(t)
		} else {
			list.trailingEllipsis = true
		}
		return true, nil
	}
	list.push(arg)
	return false, nil
}

func wrapQuals(quals []byte, n Node) Node {
	for i := len(quals) - 1; i >= 0; i-- {
		switch quals[i] {
		case 'P':
			n = &PointerType{Inner: n}
		case 'R':
			n = &ReferenceType{Inner: n}
		case 'C':
			n = &ConstType{Inner: n}
		case 'V':
			n = &VolatileType{Inner: n}
		}
	}
	return n
}

// qualChainString renders a qualifier chain as declarator interior text,
// innermost qualifier last.
func qualChainString(quals []byte) string {
	var s string
	for _, q := range quals {
		switch q {
		case 'P':
			s = "*" + s
		case 'R':
			s = "&" + s
		case 'C':
			s = "const " + s
		case 'V':
			s = "volatile " + s
		}
	}
	return s
}

func wrapSign(sign signState, n Node) Node {
	switch sign {
	case signSigned:
		return &SignPrefixType{Inner: n}
	case signUnsigned:
		return &SignPrefixType{Unsigned: true, Inner: n}
	}
	return n
}

func signText(sign signState) string {
	switch sign {
	case signSigned:
		return "signed "
	case signUnsigned:
		return "unsigned "
	}
	return ""
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
