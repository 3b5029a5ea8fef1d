package xmlcursor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jacoelho/xmlreader/internal/xmllex"
	"github.com/jacoelho/xmlreader/internal/xmlnames"
	"github.com/jacoelho/xmlreader/pkg/xmltoken"
)

// Reader is a cursor over one XML document.
//
// A reader borrows its input for its whole lifetime: names, attribute values
// and text returned by accessors alias the input (or a per-node scratch
// buffer) and are invalidated when the cursor advances. A reader is not safe
// for concurrent use.
type Reader struct {
	tz    *xmltoken.Tokenizer
	names *qnameCache
	ns    bindingStack
	elems elementStack
	attrs attrTable
	doc   xmllex.DocumentState

	rawAttrs []rawAttr
	textBuf  []byte

	kind      NodeKind
	name      QName
	rawPrefix []byte
	rawLocal  []byte
	text      []byte
	nodeStart int
	err       error

	pendingTok xmltoken.Token
	hasPending bool

	emitComments bool
	emitPI       bool
	maxDepth     int
}

type rawAttr struct {
	name     []byte
	value    []byte
	nameSpan xmltoken.Span
	span     xmltoken.Span
}

// NewReader creates a cursor over input. The input must be already-decoded
// UTF-8 document text; it is borrowed, not copied, and must outlive the
// reader.
func NewReader(input []byte, opts ...Options) *Reader {
	merged := JoinOptions(opts...)
	r := &Reader{
		tz:           xmltoken.NewTokenizer(input, merged.tokenizerOptions()...),
		names:        newQNameCache(),
		ns:           newBindingStack(),
		doc:          xmllex.NewDocumentState(),
		emitComments: true,
		emitPI:       true,
	}
	if merged.emitCommentsSet {
		r.emitComments = merged.emitComments
	}
	if merged.emitPISet {
		r.emitPI = merged.emitPI
	}
	if merged.maxDepthSet && merged.maxDepth > 0 {
		r.maxDepth = merged.maxDepth
	}
	return r
}

// Kind reports the kind of the current node.
func (r *Reader) Kind() NodeKind {
	if r == nil {
		return NodeNone
	}
	return r.kind
}

// Depth reports the number of currently open elements.
func (r *Reader) Depth() int {
	if r == nil {
		return 0
	}
	return r.elems.depth()
}

// Err reports the sticky error, if the reader has failed.
func (r *Reader) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// EOF reports whether the document has been fully consumed.
func (r *Reader) EOF() bool {
	return r != nil && r.kind == NodeEOF
}

// InputOffset returns the byte offset of the next unread input byte.
func (r *Reader) InputOffset() int64 {
	if r == nil {
		return 0
	}
	return r.tz.InputOffset()
}

// CurrentPos returns the line and column where the current node starts.
func (r *Reader) CurrentPos() (line, column int) {
	if r == nil {
		return 0, 0
	}
	return xmltoken.Position(r.tz.Input(), r.nodeStart)
}

// Next advances the cursor to the next node and reports its kind.
//
// Once the reader fails, the same error is returned from every subsequent
// call; at end of document Next keeps returning NodeEOF with a nil error.
// Entity references other than the five predefined ones and character
// references are treated as malformed.
func (r *Reader) Next() (NodeKind, error) {
	if r == nil {
		return NodeError, ErrInvalidState
	}
	if r.err != nil {
		return NodeError, r.err
	}
	if r.kind == NodeEOF {
		return NodeEOF, nil
	}
	r.attrs.reset()
	r.text = nil
	r.name = QName{}
	r.rawPrefix = nil
	r.rawLocal = nil

	for {
		tok, err := r.nextToken()
		if err == io.EOF {
			return r.readEOF()
		}
		if err != nil {
			return r.fail(err)
		}
		r.nodeStart = tok.Span.Start

		switch tok.Kind {
		case xmltoken.KindStartTagOpen:
			return r.readElement(tok)
		case xmltoken.KindEndTag:
			return r.readEndTag(tok)
		case xmltoken.KindText, xmltoken.KindEntityRef:
			kind, emitted, err := r.readText(tok)
			if err != nil {
				return r.fail(err)
			}
			if !emitted {
				continue
			}
			return kind, nil
		case xmltoken.KindCDATA:
			if r.elems.depth() == 0 {
				return r.fail(r.structErr(tok.Span, fmt.Errorf("%w: CDATA outside root element", ErrMalformedDocument)))
			}
			r.kind = NodeCDATA
			r.text = tok.Value
			return r.kind, nil
		case xmltoken.KindComment:
			if r.elems.depth() == 0 {
				r.doc.OnOutsideMarkup()
			}
			if !r.emitComments {
				continue
			}
			r.kind = NodeComment
			r.text = tok.Value
			return r.kind, nil
		case xmltoken.KindPI:
			if r.elems.depth() == 0 {
				r.doc.OnOutsideMarkup()
			}
			if !r.emitPI {
				continue
			}
			r.kind = NodePI
			r.rawLocal = tok.Name
			r.text = tok.Value
			return r.kind, nil
		default:
			return r.fail(r.structErr(tok.Span, fmt.Errorf("%w: unexpected %v token", ErrMalformedDocument, tok.Kind)))
		}
	}
}

func (r *Reader) readEOF() (NodeKind, error) {
	if r.elems.depth() > 0 {
		top, _ := r.elems.top()
		return r.fail(r.offsetErr(fmt.Errorf("%w: unexpected EOF, element <%s> is not closed", ErrMalformedDocument, top.raw)))
	}
	if !r.doc.RootSeen() {
		return r.fail(r.offsetErr(fmt.Errorf("%w: missing root element", ErrMalformedDocument)))
	}
	r.kind = NodeEOF
	return r.kind, nil
}

// readElement consumes attribute tokens through the tag close, registers
// namespace declarations, resolves names and builds the attribute table.
func (r *Reader) readElement(open xmltoken.Token) (NodeKind, error) {
	if !r.doc.StartElementAllowed() {
		return r.fail(r.structErr(open.Span, fmt.Errorf("%w: multiple root elements", ErrMalformedDocument)))
	}
	depth := r.elems.depth() + 1
	if r.maxDepth > 0 && depth > r.maxDepth {
		return r.fail(r.structErr(open.Span, ErrDepthLimit))
	}

	selfClose, err := r.collectRawAttrs(open)
	if err != nil {
		return r.fail(err)
	}

	// Register xmlns declarations before resolving any name on this tag:
	// an element can declare the namespace its own name uses.
	if err := r.registerNamespaceDecls(depth); err != nil {
		return r.fail(err)
	}

	name, prefix, local, err := r.resolveElementName(open)
	if err != nil {
		return r.fail(err)
	}
	if err := r.buildAttrTable(open); err != nil {
		return r.fail(err)
	}

	r.doc.OnStartElement()
	r.name = name
	r.rawPrefix = prefix
	r.rawLocal = local
	if selfClose {
		// The element opens and closes in one node: scope and stack are
		// balanced before the caller sees it.
		r.ns.popTo(r.elems.depth())
		r.doc.OnEndElement(r.elems.depth() == 0)
		r.kind = NodeElementEmpty
		return r.kind, nil
	}
	r.elems.push(name, open.Name)
	r.kind = NodeElementStart
	return r.kind, nil
}

func (r *Reader) collectRawAttrs(open xmltoken.Token) (selfClose bool, err error) {
	r.rawAttrs = r.rawAttrs[:0]
	for {
		tok, err := r.nextToken()
		if err == io.EOF {
			return false, r.offsetErr(fmt.Errorf("%w: unexpected EOF in tag <%s>", ErrMalformedDocument, open.Name))
		}
		if err != nil {
			return false, err
		}
		switch tok.Kind {
		case xmltoken.KindAttrName:
			value, err := r.nextToken()
			if err != nil {
				return false, err
			}
			if value.Kind != xmltoken.KindAttrValue {
				return false, r.structErr(tok.Span, fmt.Errorf("%w: attribute %s has no value", ErrMalformedDocument, tok.Name))
			}
			r.rawAttrs = append(r.rawAttrs, rawAttr{
				name:     tok.Name,
				value:    value.Value,
				nameSpan: tok.Span,
				span:     value.Span,
			})
		case xmltoken.KindStartTagClose:
			return false, nil
		case xmltoken.KindStartTagSelfClose:
			return true, nil
		default:
			return false, r.structErr(tok.Span, fmt.Errorf("%w: unexpected %v token in tag", ErrMalformedDocument, tok.Kind))
		}
	}
}

func (r *Reader) registerNamespaceDecls(depth int) error {
	for i := range r.rawAttrs {
		attr := &r.rawAttrs[i]
		if isDefaultNamespaceDecl(attr.name) {
			uri := unsafeString(attr.value)
			if err := xmlnames.ValidateDefaultBinding(uri); err != nil {
				return r.structErr(attr.nameSpan, fmt.Errorf("%w: %v", ErrReservedPrefix, err))
			}
			r.ns.bind("", string(attr.value), depth)
			continue
		}
		local, ok := prefixedNamespaceDecl(attr.name)
		if !ok {
			continue
		}
		uri := string(attr.value)
		// Only the default namespace may be undeclared.
		if uri == "" {
			return r.structErr(attr.nameSpan, fmt.Errorf("%w: prefix %s cannot be bound to the empty namespace", ErrMalformedDocument, local))
		}
		if err := xmlnames.ValidateDeclaredPrefix(local, uri); err != nil {
			return r.structErr(attr.nameSpan, fmt.Errorf("%w: %v", ErrReservedPrefix, err))
		}
		if xmlnames.IsXMLPrefix(local) {
			// xml may only be redeclared to its fixed URI, already seeded.
			continue
		}
		r.ns.bind(string(local), uri, depth)
	}
	return nil
}

func (r *Reader) resolveElementName(open xmltoken.Token) (QName, []byte, []byte, error) {
	prefix, local, hasPrefix := splitQName(open.Name)
	if hasPrefix {
		uri, ok := r.ns.resolve(unsafeString(prefix))
		if !ok {
			return QName{}, nil, nil, r.structErr(open.Span, fmt.Errorf("%w: %s", ErrUnboundPrefix, prefix))
		}
		return r.names.internBytes(uri, local), prefix, local, nil
	}
	uri, _ := r.ns.resolve("")
	return r.names.internBytes(uri, local), nil, local, nil
}

func (r *Reader) buildAttrTable(open xmltoken.Token) error {
	for i := range r.rawAttrs {
		attr := &r.rawAttrs[i]
		namespace, err := r.resolveAttrNamespace(attr)
		if err != nil {
			return err
		}
		prefix, local, hasPrefix := splitQName(attr.name)
		if !hasPrefix {
			prefix = nil
		}
		entry := Attr{
			Name:   r.names.internBytes(namespace, local),
			Prefix: prefix,
			Local:  local,
			Value:  attr.value,
			Span:   attr.span,
		}
		if err := r.attrs.add(entry); err != nil {
			return r.structErr(attr.nameSpan, err)
		}
	}
	return nil
}

// resolveAttrNamespace resolves an attribute name per XML Namespaces:
// unprefixed attributes are in no namespace, never the default one.
func (r *Reader) resolveAttrNamespace(attr *rawAttr) (string, error) {
	prefix, _, hasPrefix := splitQName(attr.name)
	if !hasPrefix {
		if xmlnames.IsXMLNSPrefix(attr.name) {
			return XMLNSNamespace, nil
		}
		return "", nil
	}
	if xmlnames.IsXMLNSPrefix(prefix) {
		return XMLNSNamespace, nil
	}
	uri, ok := r.ns.resolve(unsafeString(prefix))
	if !ok {
		return "", r.structErr(attr.nameSpan, fmt.Errorf("%w: %s", ErrUnboundPrefix, prefix))
	}
	return uri, nil
}

func (r *Reader) readEndTag(tok xmltoken.Token) (NodeKind, error) {
	top, ok := r.elems.top()
	if !ok {
		return r.fail(r.structErr(tok.Span, fmt.Errorf("%w: unexpected end tag </%s>", ErrMalformedDocument, tok.Name)))
	}
	// Well-formedness requires the literal names to match. A literal match
	// also guarantees the resolved name equals the open tag's, since the
	// element's own bindings are still in scope here.
	if !bytes.Equal(tok.Name, top.raw) {
		return r.fail(r.structErr(tok.Span, fmt.Errorf("%w: end tag </%s> does not match <%s>", ErrMalformedDocument, tok.Name, top.raw)))
	}
	prefix, local, hasPrefix := splitQName(tok.Name)
	r.elems.pop()
	r.ns.popTo(r.elems.depth())
	r.doc.OnEndElement(r.elems.depth() == 0)

	r.kind = NodeElementEnd
	r.name = top.name
	r.rawPrefix = prefix
	if !hasPrefix {
		r.rawPrefix = nil
	}
	r.rawLocal = local
	return r.kind, nil
}

// readText coalesces consecutive text runs and entity references into one
// text node. Outside the root element only whitespace is tolerated, and it
// is consumed silently.
func (r *Reader) readText(tok xmltoken.Token) (NodeKind, bool, error) {
	if r.elems.depth() == 0 {
		if tok.Kind == xmltoken.KindEntityRef {
			return NodeNone, false, r.structErr(tok.Span, fmt.Errorf("%w: entity reference outside root element", ErrMalformedDocument))
		}
		if !r.doc.ValidateOutsideCharData(tok.Value) {
			return NodeNone, false, r.structErr(tok.Span, fmt.Errorf("%w: content outside root element", ErrMalformedDocument))
		}
		return NodeNone, false, nil
	}

	single := tok.Kind == xmltoken.KindText
	r.textBuf = r.textBuf[:0]
	if err := r.appendTextToken(tok); err != nil {
		return NodeNone, false, err
	}
	for {
		peek, err := r.peekToken()
		if err != nil {
			// io.EOF here means a missing end tag; surfaced by the next
			// advance. Lexical errors likewise stay pending.
			break
		}
		if peek.Kind != xmltoken.KindText && peek.Kind != xmltoken.KindEntityRef {
			break
		}
		next, _ := r.nextToken()
		single = false
		if err := r.appendTextToken(next); err != nil {
			return NodeNone, false, err
		}
	}

	r.kind = NodeText
	if single {
		r.text = tok.Value
	} else {
		r.text = r.textBuf
	}
	return r.kind, true, nil
}

func (r *Reader) appendTextToken(tok xmltoken.Token) error {
	switch tok.Kind {
	case xmltoken.KindText:
		r.textBuf = append(r.textBuf, tok.Value...)
		return nil
	case xmltoken.KindEntityRef:
		buf, err := xmltoken.AppendReference(r.textBuf, tok.Name)
		if err != nil {
			return r.structErr(tok.Span, fmt.Errorf("%w: unresolvable entity &%s;", ErrMalformedDocument, tok.Name))
		}
		r.textBuf = buf
		return nil
	default:
		return r.structErr(tok.Span, fmt.Errorf("%w: unexpected %v token in text", ErrMalformedDocument, tok.Kind))
	}
}

// SkipSubtree consumes the current element and all its descendants, leaving
// the cursor on the matching element end node. It is valid only when the
// current node is an element start.
func (r *Reader) SkipSubtree() error {
	if r == nil {
		return ErrInvalidState
	}
	if r.err != nil {
		return r.err
	}
	if r.kind != NodeElementStart {
		return fmt.Errorf("%w: SkipSubtree requires an element start", ErrInvalidState)
	}
	want := r.elems.depth() - 1
	for {
		kind, err := r.Next()
		if err != nil {
			return err
		}
		if kind == NodeElementEnd && r.elems.depth() == want {
			return nil
		}
		if kind == NodeEOF {
			return r.err
		}
	}
}

// NextTag advances until the next element start (or empty element), end of
// document, or error.
func (r *Reader) NextTag() (NodeKind, error) {
	for {
		kind, err := r.Next()
		if err != nil {
			return kind, err
		}
		switch kind {
		case NodeElementStart, NodeElementEmpty, NodeEOF:
			return kind, nil
		}
	}
}

// ElementText reads the content of a text-only element and advances past its
// end tag. Comments and processing instructions inside are skipped; a child
// element is an error. An empty element yields nil; an element with an empty
// body yields an empty slice. The result is valid until the next advance.
func (r *Reader) ElementText() ([]byte, error) {
	if r == nil {
		return nil, ErrInvalidState
	}
	if r.err != nil {
		return nil, r.err
	}
	switch r.kind {
	case NodeElementEmpty:
		return nil, nil
	case NodeElementStart:
	default:
		return nil, fmt.Errorf("%w: ElementText requires an element start", ErrInvalidState)
	}
	want := r.elems.depth() - 1
	var text []byte
	seen := false
	for {
		kind, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch kind {
		case NodeText, NodeCDATA:
			if seen {
				return nil, fmt.Errorf("%w: element has mixed content", ErrInvalidState)
			}
			text = r.text
			seen = true
		case NodeComment, NodePI:
		case NodeElementEnd:
			if r.elems.depth() == want {
				if !seen {
					return []byte{}, nil
				}
				return text, nil
			}
			return nil, fmt.Errorf("%w: element has mixed content", ErrInvalidState)
		default:
			return nil, fmt.Errorf("%w: element has mixed content", ErrInvalidState)
		}
	}
}

// Name returns the resolved qualified name of the current node. It is valid
// on element nodes and processing instructions, where the target is the
// local name.
func (r *Reader) Name() (QName, error) {
	if r == nil {
		return QName{}, ErrInvalidState
	}
	switch r.kind {
	case NodeElementStart, NodeElementEmpty, NodeElementEnd:
		return r.name, nil
	case NodePI:
		return QName{Local: string(r.rawLocal)}, nil
	default:
		return QName{}, fmt.Errorf("%w: %v node has no name", ErrInvalidState, r.kind)
	}
}

// Namespace returns the resolved namespace URI of the current element.
func (r *Reader) Namespace() (string, error) {
	if r == nil || !r.kind.IsElement() {
		return "", fmt.Errorf("%w: %v node has no namespace", ErrInvalidState, r.Kind())
	}
	return r.name.Namespace, nil
}

// LocalName returns the local part of the current element name or the
// processing instruction target.
func (r *Reader) LocalName() ([]byte, error) {
	if r == nil {
		return nil, ErrInvalidState
	}
	switch r.kind {
	case NodeElementStart, NodeElementEmpty, NodeElementEnd, NodePI:
		return r.rawLocal, nil
	default:
		return nil, fmt.Errorf("%w: %v node has no name", ErrInvalidState, r.Kind())
	}
}

// Prefix returns the literal namespace prefix of the current element as
// written, nil when absent.
func (r *Reader) Prefix() ([]byte, error) {
	if r == nil || !r.kind.IsElement() {
		return nil, fmt.Errorf("%w: %v node has no name", ErrInvalidState, r.Kind())
	}
	return r.rawPrefix, nil
}

// IsEmptyElement reports whether the current element is self-closed.
func (r *Reader) IsEmptyElement() (bool, error) {
	if r == nil {
		return false, ErrInvalidState
	}
	switch r.kind {
	case NodeElementStart:
		return false, nil
	case NodeElementEmpty:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %v node is not an element start", ErrInvalidState, r.kind)
	}
}

// Text returns the content of the current text, CDATA, comment or
// processing instruction node. The slice is valid until the next advance.
func (r *Reader) Text() ([]byte, error) {
	if r == nil {
		return nil, ErrInvalidState
	}
	switch r.kind {
	case NodeText, NodeCDATA, NodeComment, NodePI:
		return r.text, nil
	default:
		return nil, fmt.Errorf("%w: %v node has no text", ErrInvalidState, r.kind)
	}
}

// AttrCount reports the number of attributes of the current element.
func (r *Reader) AttrCount() (int, error) {
	if err := r.requireAttrState(); err != nil {
		return 0, err
	}
	return r.attrs.count(), nil
}

// Attr returns the attribute at position i, in document order.
func (r *Reader) Attr(i int) (Attr, error) {
	if err := r.requireAttrState(); err != nil {
		return Attr{}, err
	}
	attr, ok := r.attrs.at(i)
	if !ok {
		return Attr{}, fmt.Errorf("%w: attribute index %d out of range", ErrInvalidState, i)
	}
	return attr, nil
}

// AttrByName looks up an attribute by resolved namespace URI and local name.
func (r *Reader) AttrByName(namespace, local string) (Attr, bool, error) {
	if err := r.requireAttrState(); err != nil {
		return Attr{}, false, err
	}
	attr, ok := r.attrs.byName(namespace, local)
	return attr, ok, nil
}

// AttrValue returns the value of the attribute with the given resolved
// namespace URI and local name, or nil when absent.
func (r *Reader) AttrValue(namespace, local string) ([]byte, error) {
	attr, ok, err := r.AttrByName(namespace, local)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return attr.Value, nil
}

func (r *Reader) requireAttrState() error {
	if r == nil {
		return ErrInvalidState
	}
	switch r.kind {
	case NodeElementStart, NodeElementEmpty:
		return nil
	default:
		return fmt.Errorf("%w: %v node has no attributes", ErrInvalidState, r.kind)
	}
}

// ResolvePrefix resolves a namespace prefix in the scope of the current
// position. The empty prefix resolves to the default namespace, which is the
// empty URI when undeclared.
func (r *Reader) ResolvePrefix(prefix string) (string, bool) {
	if r == nil {
		return "", false
	}
	return r.ns.resolve(prefix)
}

func (r *Reader) nextToken() (xmltoken.Token, error) {
	if r.hasPending {
		r.hasPending = false
		return r.pendingTok, nil
	}
	return r.tz.Next()
}

func (r *Reader) peekToken() (xmltoken.Token, error) {
	if !r.hasPending {
		tok, err := r.tz.Next()
		if err != nil {
			return xmltoken.Token{}, err
		}
		r.pendingTok = tok
		r.hasPending = true
	}
	return r.pendingTok, nil
}

func (r *Reader) fail(err error) (NodeKind, error) {
	r.err = err
	r.kind = NodeError
	return NodeError, err
}

func (r *Reader) structErr(span xmltoken.Span, cause error) error {
	return positionedError(r.tz.Input(), span.Start, cause)
}

func (r *Reader) offsetErr(cause error) error {
	return positionedError(r.tz.Input(), int(r.tz.InputOffset()), cause)
}
