package xmlcursor

// NodeKind identifies the kind of node the cursor is positioned on.
type NodeKind byte

const (
	// NodeNone is the state before the first Next call.
	NodeNone NodeKind = iota
	// NodeElementStart is the opening tag of a non-empty element.
	NodeElementStart
	// NodeElementEmpty is a self-closed element.
	NodeElementEmpty
	// NodeElementEnd is the closing tag of an element.
	NodeElementEnd
	// NodeText is a run of character data, coalesced across entity boundaries.
	NodeText
	// NodeCDATA is a CDATA section.
	NodeCDATA
	// NodeComment is a comment.
	NodeComment
	// NodePI is a processing instruction.
	NodePI
	// NodeEOF is the state after the document has been fully consumed.
	NodeEOF
	// NodeError is the terminal state after a failed operation.
	NodeError
)

// String returns a stable name for the kind, suitable for debugging.
func (k NodeKind) String() string {
	switch k {
	case NodeNone:
		return "None"
	case NodeElementStart:
		return "ElementStart"
	case NodeElementEmpty:
		return "ElementEmpty"
	case NodeElementEnd:
		return "ElementEnd"
	case NodeText:
		return "Text"
	case NodeCDATA:
		return "CDATA"
	case NodeComment:
		return "Comment"
	case NodePI:
		return "PI"
	case NodeEOF:
		return "EOF"
	case NodeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsElement reports whether the kind is an element node.
func (k NodeKind) IsElement() bool {
	return k == NodeElementStart || k == NodeElementEmpty || k == NodeElementEnd
}
