package xmlcursor

import (
	"fmt"

	"github.com/jacoelho/xmlreader/pkg/xmltoken"
)

// Attr is one attribute of the current element.
//
// Prefix, Local and Value alias the reader input (or a per-node scratch
// buffer) and are valid only while the owning element is the current node.
type Attr struct {
	// Name is the resolved (namespace, local) pair.
	Name QName
	// Prefix is the literal prefix as written, nil when absent.
	Prefix []byte
	// Local is the literal local name as written.
	Local []byte
	// Value is the decoded attribute value.
	Value []byte
	// Span covers the attribute value source text in the input.
	Span xmltoken.Span
}

// attrTable holds the attributes of the current start tag, in document
// order. It is rebuilt wholesale on every element and cleared once the
// cursor advances past it.
type attrTable struct {
	entries []Attr
}

func (t *attrTable) reset() {
	t.entries = t.entries[:0]
}

// add appends an attribute, rejecting duplicates by resolved name.
func (t *attrTable) add(attr Attr) error {
	for i := range t.entries {
		if t.entries[i].Name == attr.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateAttr, attr.Name)
		}
	}
	t.entries = append(t.entries, attr)
	return nil
}

func (t *attrTable) count() int {
	return len(t.entries)
}

func (t *attrTable) at(i int) (Attr, bool) {
	if i < 0 || i >= len(t.entries) {
		return Attr{}, false
	}
	return t.entries[i], true
}

func (t *attrTable) byName(namespace, local string) (Attr, bool) {
	for i := range t.entries {
		if t.entries[i].Name.Namespace == namespace && t.entries[i].Name.Local == local {
			return t.entries[i], true
		}
	}
	return Attr{}, false
}
