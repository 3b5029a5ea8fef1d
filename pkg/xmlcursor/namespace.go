package xmlcursor

import "github.com/jacoelho/xmlreader/internal/xmlnames"

// Common XML namespaces.
const (
	XMLNamespace   = xmlnames.XMLNamespace
	XMLNSNamespace = xmlnames.XMLNSNamespace
)

// binding is one prefix-to-URI declaration scoped to the element depth at
// which it was declared.
type binding struct {
	prefix string
	uri    string
	depth  int
}

// bindingStack resolves prefixes with innermost-wins shadowing. Bindings are
// popped together with the element that declared them.
type bindingStack struct {
	bindings []binding
}

func newBindingStack() bindingStack {
	return bindingStack{
		bindings: []binding{{prefix: xmlnames.XMLPrefix, uri: xmlnames.XMLNamespace, depth: 0}},
	}
}

func (s *bindingStack) bind(prefix, uri string, depth int) {
	s.bindings = append(s.bindings, binding{prefix: prefix, uri: uri, depth: depth})
}

// resolve returns the URI bound to prefix, scanning newest to oldest.
// The empty prefix denotes the default namespace and always resolves; an
// undeclared default namespace is the empty URI. A prefix bound to the empty
// URI is reported as unbound.
func (s *bindingStack) resolve(prefix string) (string, bool) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].prefix != prefix {
			continue
		}
		uri := s.bindings[i].uri
		if prefix != "" && uri == "" {
			return "", false
		}
		return uri, true
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

// popTo removes all bindings declared deeper than depth.
func (s *bindingStack) popTo(depth int) {
	for len(s.bindings) > 0 && s.bindings[len(s.bindings)-1].depth > depth {
		s.bindings = s.bindings[:len(s.bindings)-1]
	}
}

func isDefaultNamespaceDecl(name []byte) bool {
	_, _, hasPrefix := splitQName(name)
	return !hasPrefix && xmlnames.IsXMLNSPrefix(name)
}

func prefixedNamespaceDecl(name []byte) ([]byte, bool) {
	prefix, local, hasPrefix := splitQName(name)
	if !hasPrefix {
		return nil, false
	}
	if !xmlnames.IsXMLNSPrefix(prefix) {
		return nil, false
	}
	return local, true
}
