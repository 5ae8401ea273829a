package g2dem

// template decodes an instantiation after its leading 't': a name, an
// argument count, and that many type or value arguments.
func (d *demangler) template() (*TemplateType, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	name, err := d.customName()
	if err != nil {
		return nil, err
	}
	count, ok := d.cur.Digit()
	if !ok {
		return nil, d.errorf(ErrInvalidToken, "expected template argument count")
	}
	if count == 0 {
		return nil, d.errorf(ErrInvalidToken, "template argument count of zero")
	}
	args, err := d.templateArgList(count)
	if err != nil {
		return nil, err
	}
	return &TemplateType{Base: name, Args: args}, nil
}

// templateArgList decodes count template arguments. A 'Z' prefix marks a
// type argument; anything else is a value argument.
func (d *demangler) templateArgList(count int) (*argList, error) {
	args := newArgList(nil)
	for i := 0; i < count; i++ {
		var arg Node
		var err error
		if d.cur.StripByte('Z') {
			arg, err = d.demangleArgument(args)
		} else {
			arg, err = d.templateValue(args)
		}
		if err != nil {
			return nil, err
		}
		if _, err := d.pushArg(args, arg, true); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// templateValue decodes a non-type template argument. Pointer and
// reference values name a symbol; the rest carry a literal whose form
// depends on the type code. Integral literals may exceed 64 bits.
func (d *demangler) templateValue(list *argList) (Node, error) {
	quals, _ := d.argQualifiers()
	var isPtr, isRef bool
	for _, q := range quals {
		switch q {
		case 'P':
			isPtr = true
		case 'R':
			isRef = true
		}
	}
	if isPtr || isRef {
		if _, err := d.demangleArgument(list); err != nil {
			return nil, err
		}
		name, err := d.customName()
		if err != nil {
			return nil, err
		}
		return &SymbolRef{Name: name, Address: isPtr}, nil
	}

	b, err := d.cur.Peek()
	if err != nil {
		return nil, d.errorf(ErrUnexpectedEnd, "expected template value type")
	}
	if isDigitByte(b) || b == 'Q' || b == 't' {
		return d.enumValue()
	}
	d.cur.Skip(1)
	switch b {
	case 'c', 'w':
		code, ok := d.cur.Number()
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "expected character value")
		}
		return &CharLiteral{Value: rune(code)}, nil
	case 's', 'i', 'l', 'x':
		neg := d.cur.StripByte('m')
		v, ok := d.cur.BigNumber()
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "expected integer value")
		}
		if neg {
			v.Neg(v)
		}
		return &IntLiteral{Value: v}, nil
	case 'b':
		digit, ok := d.cur.Digit()
		if !ok || digit > 1 {
			return nil, d.errorf(ErrInvalidToken, "expected boolean value")
		}
		return &BoolLiteral{Value: digit == 1}, nil
	case 'f', 'd', 'r':
		return nil, d.errorf(ErrUnsupported, "floating point template value")
	}
	return nil, d.errorf(ErrInvalidToken, "unknown template value type %q", string(b))
}

// enumValue decodes an enum-typed value argument: the enum's name, then
// the constant. The historical tool spells only the constant, so the
// name rides along on the node for tree consumers.
func (d *demangler) enumValue() (Node, error) {
	var typ Node
	var err error
	switch {
	case d.cur.StripByte('Q'):
		typ, err = d.namespaces()
	case d.cur.StripByte('t'):
		typ, err = d.template()
	default:
		var name string
		if name, err = d.customName(); err == nil {
			typ = &NamedType{Name: name}
		}
	}
	if err != nil {
		return nil, err
	}
	neg := d.cur.StripByte('m')
	v, ok := d.cur.BigNumber()
	if !ok {
		return nil, d.errorf(ErrInvalidToken, "expected enum value")
	}
	if neg {
		v.Neg(v)
	}
	return &EnumLiteral{Type: typ, Value: v}, nil
}

// templateFunctionPrefix decodes the section a templated function starts
// with: an argument count, the arguments themselves, a terminator, and
// optionally the owning class. Template argument references are not in
// scope while the list itself is being decoded.
func (d *demangler) templateFunctionPrefix() (*argList, Node, error) {
	count, ok := d.cur.Digit()
	if !ok {
		return nil, nil, d.errorf(ErrInvalidToken, "expected template argument count")
	}
	if count == 0 {
		return nil, nil, d.errorf(ErrInvalidToken, "template argument count of zero")
	}
	saved := d.templateArgs
	d.templateArgs = nil
	args, err := d.templateArgList(count)
	d.templateArgs = saved
	if err != nil {
		return nil, nil, err
	}
	if !d.cur.StripByte('_') {
		return nil, nil, d.errorf(ErrInvalidToken, "unterminated template argument list")
	}

	var class Node
	if d.cur.StripByte('Q') {
		class, err = d.namespaces()
		if err != nil {
			return nil, nil, err
		}
	} else if b, perr := d.cur.Peek(); perr == nil && isDigitByte(b) {
		name, err := d.customName()
		if err != nil {
			return nil, nil, err
		}
		class = &NamedType{Name: name}
	}
	return args, class, nil
}
