package xmlcursor

import "fmt"

// SubtreeReader is a scoped view over one element's subtree. It advances the
// underlying reader but stops at the subtree boundary instead of running
// past it, so a child element can be handed to code that walks a whole
// document without that code escaping into siblings.
//
// The underlying Reader is embedded: accessors read the shared cursor, and
// Next and NextTag are the scoped replacements. The closing element end node
// of the subtree root is surfaced once; after that the view reports NodeEOF
// without advancing, leaving the underlying reader positioned on that end
// node (or still on the root itself for a self-closed element).
type SubtreeReader struct {
	*Reader
	boundary int
	done     bool
}

// Subtree returns a scoped reader over the current element's subtree. It is
// valid on an element start, where the subtree spans through the matching
// end tag, and on a self-closed element, where the view is exhausted
// immediately.
func (r *Reader) Subtree() (*SubtreeReader, error) {
	if r == nil {
		return nil, ErrInvalidState
	}
	if r.err != nil {
		return nil, r.err
	}
	switch r.kind {
	case NodeElementStart:
		return &SubtreeReader{Reader: r, boundary: r.elems.depth() - 1}, nil
	case NodeElementEmpty:
		return &SubtreeReader{Reader: r, done: true}, nil
	default:
		return nil, fmt.Errorf("%w: Subtree requires an element start", ErrInvalidState)
	}
}

// Next advances within the subtree. Once the subtree root's end node has
// been consumed it keeps returning NodeEOF with a nil error and never moves
// the underlying reader.
func (s *SubtreeReader) Next() (NodeKind, error) {
	if s == nil || s.Reader == nil {
		return NodeError, ErrInvalidState
	}
	if s.exhausted() {
		return NodeEOF, nil
	}
	return s.Reader.Next()
}

// NextTag advances until the next element start (or empty element) within
// the subtree, or its end.
func (s *SubtreeReader) NextTag() (NodeKind, error) {
	for {
		kind, err := s.Next()
		if err != nil {
			return kind, err
		}
		switch kind {
		case NodeElementStart, NodeElementEmpty, NodeEOF:
			return kind, nil
		}
	}
}

// EOF reports whether the subtree has been fully consumed.
func (s *SubtreeReader) EOF() bool {
	return s != nil && s.Reader != nil && s.exhausted()
}

// exhausted reports whether the cursor sits on the node that closes the
// subtree. Only the root's own end tag can appear at the boundary depth.
func (s *SubtreeReader) exhausted() bool {
	if s.done {
		return true
	}
	if s.Reader.kind == NodeElementEnd && s.Reader.elems.depth() == s.boundary {
		s.done = true
		return true
	}
	return false
}
