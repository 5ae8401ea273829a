package g2dem

// argList accumulates decoded arguments and resolves T/N lookbacks.
//
// When owner is set it occupies index 0, standing for the enclosing class
// or namespace, and the decoded arguments shift up by one. Lookbacks are
// resolved eagerly at push time, so repeated arguments share the node they
// reference.
type argList struct {
	owner Node
	args  []Node

	// trailingEllipsis marks the historical ",..." form used when
	// Config.EllipsisEmitSpaceAfterComma is off. The corrected form
	// stores an EllipsisType argument instead.
	trailingEllipsis bool
}

func newArgList(owner Node) *argList {
	return &argList{owner: owner}
}

// lookup resolves a zero-based lookback index against the list,
// accounting for the owner slot.
func (l *argList) lookup(index int) (Node, bool) {
	if l.owner != nil {
		if index == 0 {
			return l.owner, true
		}
		index--
	}
	if index < 0 || index >= len(l.args) {
		return nil, false
	}
	return l.args[index], true
}

func (l *argList) push(n Node) {
	l.args = append(l.args, n)
}

// pushRepeat appends count references to the argument at index.
func (l *argList) pushRepeat(count, index int) bool {
	n, ok := l.lookup(index)
	if !ok {
		return false
	}
	for i := 0; i < count; i++ {
		l.args = append(l.args, n)
	}
	return true
}
