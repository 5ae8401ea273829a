package g2dem

import (
	"strings"
)

// customName decodes a length-prefixed identifier such as "11FancyVector".
func (d *demangler) customName() (string, error) {
	length, ok := d.cur.Number()
	if !ok {
		return "", d.errorf(ErrInvalidToken, "expected name length")
	}
	if length == 0 {
		return "", d.errorf(ErrInvalidToken, "zero-length name")
	}
	name, err := d.cur.Take(length)
	if err != nil {
		return "", d.errorf(ErrUnexpectedEnd, "name shorter than its length prefix")
	}
	return name, nil
}

// namespaces decodes a qualification chain after its leading 'Q' has been
// consumed. The component count is a single digit, or an underscore-wrapped
// number when the chain has ten or more levels.
func (d *demangler) namespaces() (*QualifiedName, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	var count int
	if d.cur.StripByte('_') {
		n, ok := d.cur.Number()
		if !ok || !d.cur.StripByte('_') {
			return nil, d.errorf(ErrInvalidToken, "malformed namespace count")
		}
		count = n
	} else {
		n, ok := d.cur.Digit()
		if !ok {
			return nil, d.errorf(ErrInvalidToken, "expected namespace count")
		}
		count = n
	}
	if count == 0 {
		return nil, d.errorf(ErrInvalidToken, "namespace count of zero")
	}

	components := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if d.cur.StripByte('t') {
			tmpl, err := d.template()
			if err != nil {
				return nil, err
			}
			components = append(components, tmpl)
			continue
		}
		name, err := d.customName()
		if err != nil {
			return nil, err
		}
		components = append(components, &NamedType{Name: anonymousNamespace(name)})
	}
	return &QualifiedName{Components: components}, nil
}

// anonymousNamespace rewrites the compiler-generated name of an anonymous
// namespace component, which embeds the translation unit after a
// "_GLOBAL_<sep>N" marker.
func anonymousNamespace(name string) string {
	const prefix = "_GLOBAL_"
	if len(name) > len(prefix)+1 && strings.HasPrefix(name, prefix) {
		sep := name[len(prefix)]
		if (sep == '$' || sep == '.' || sep == '_') && name[len(prefix)+1] == 'N' {
			return "{anonymous}"
		}
	}
	return name
}

// ownerName decodes the class or namespace a symbol belongs to: a template,
// a qualification chain, or a plain length-prefixed name. The second result
// is the base name used to spell constructors and destructors.
func (d *demangler) ownerName() (Node, string, error) {
	switch {
	case d.cur.StripByte('t'):
		tmpl, err := d.template()
		if err != nil {
			return nil, "", err
		}
		return tmpl, tmpl.Base, nil
	case d.cur.StripByte('Q'):
		q, err := d.namespaces()
		if err != nil {
			return nil, "", err
		}
		if tmpl, ok := q.Last().(*TemplateType); ok {
			return q, tmpl.Base, nil
		}
		return q, renderType(d.cfg, q.Last()), nil
	default:
		name, err := d.customName()
		if err != nil {
			return nil, "", err
		}
		return &NamedType{Name: name}, name, nil
	}
}

// methodQualifier consumes trailing cv-qualifier codes on a member
// function and returns the text placed after the parameter list.
func (d *demangler) methodQualifier() string {
	var suffix string
	if d.cur.StripByte('C') {
		suffix += " const"
	}
	if d.cur.StripByte('V') {
		suffix += " volatile"
	}
	return suffix
}
