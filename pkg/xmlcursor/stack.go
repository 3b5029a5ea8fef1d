package xmlcursor

// openElement is one currently-open element.
type openElement struct {
	name QName
	raw  []byte // qualified tag text as written, for error messages
}

// elementStack tracks open-element nesting. Its length is always the true
// nesting depth of the cursor position; there is no speculative growth.
type elementStack struct {
	elems []openElement
}

func (s *elementStack) push(name QName, raw []byte) {
	s.elems = append(s.elems, openElement{name: name, raw: raw})
}

func (s *elementStack) pop() (openElement, bool) {
	if len(s.elems) == 0 {
		return openElement{}, false
	}
	top := s.elems[len(s.elems)-1]
	s.elems = s.elems[:len(s.elems)-1]
	return top, true
}

func (s *elementStack) top() (openElement, bool) {
	if len(s.elems) == 0 {
		return openElement{}, false
	}
	return s.elems[len(s.elems)-1], true
}

func (s *elementStack) depth() int {
	return len(s.elems)
}
