package xmlcursor

import (
	"errors"
	"testing"

	"github.com/jacoelho/xmlreader/pkg/xmltoken"
)

func errorPosition(err error) (line, column int, ok bool) {
	var syn *xmltoken.SyntaxError
	if !errors.As(err, &syn) {
		return 0, 0, false
	}
	return syn.Line, syn.Column, true
}

func advance(t *testing.T, r *Reader, want NodeKind) {
	t.Helper()
	kind, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if kind != want {
		t.Fatalf("Next() = %v, want %v", kind, want)
	}
}

func advanceUntilError(r *Reader) error {
	for {
		kind, err := r.Next()
		if err != nil {
			return err
		}
		if kind == NodeEOF {
			return nil
		}
	}
}

func TestReaderBasicTraversal(t *testing.T) {
	r := NewReader([]byte(`<root><child>text</child></root>`))

	advance(t, r, NodeElementStart)
	name, err := r.Name()
	if err != nil {
		t.Fatalf("Name() error = %v", err)
	}
	if name.Local != "root" || name.Namespace != "" {
		t.Fatalf("root name = %v, want root", name)
	}
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}

	advance(t, r, NodeElementStart)
	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}

	advance(t, r, NodeText)
	text, err := r.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if string(text) != "text" {
		t.Fatalf("text = %q, want text", text)
	}

	advance(t, r, NodeElementEnd)
	if r.Depth() != 1 {
		t.Fatalf("depth after child end = %d, want 1", r.Depth())
	}
	advance(t, r, NodeElementEnd)
	if r.Depth() != 0 {
		t.Fatalf("depth after root end = %d, want 0", r.Depth())
	}
	advance(t, r, NodeEOF)
	if !r.EOF() {
		t.Fatalf("EOF() = false, want true")
	}
	// EOF is a stable state.
	advance(t, r, NodeEOF)
}

func TestReaderEmptyElement(t *testing.T) {
	r := NewReader([]byte(`<a/>`))
	advance(t, r, NodeElementEmpty)
	if r.Depth() != 0 {
		t.Fatalf("depth on empty element = %d, want 0", r.Depth())
	}
	empty, err := r.IsEmptyElement()
	if err != nil {
		t.Fatalf("IsEmptyElement() error = %v", err)
	}
	if !empty {
		t.Fatalf("IsEmptyElement() = false, want true")
	}
	advance(t, r, NodeEOF)

	r = NewReader([]byte(`<a></a>`))
	advance(t, r, NodeElementStart)
	empty, err = r.IsEmptyElement()
	if err != nil {
		t.Fatalf("IsEmptyElement() error = %v", err)
	}
	if empty {
		t.Fatalf("IsEmptyElement() = true, want false")
	}
	advance(t, r, NodeElementEnd)
	advance(t, r, NodeEOF)
}

func TestReaderDefaultNamespace(t *testing.T) {
	r := NewReader([]byte(`<a xmlns="urn:x"><b/></a>`))
	advance(t, r, NodeElementStart)
	name, _ := r.Name()
	if name.Namespace != "urn:x" || name.Local != "a" {
		t.Fatalf("root name = %v, want {urn:x a}", name)
	}
	advance(t, r, NodeElementEmpty)
	name, _ = r.Name()
	if name.Namespace != "urn:x" {
		t.Fatalf("child namespace = %q, want urn:x", name.Namespace)
	}
	advance(t, r, NodeElementEnd)
	name, _ = r.Name()
	if name.Namespace != "urn:x" {
		t.Fatalf("end tag namespace = %q, want urn:x", name.Namespace)
	}
}

func TestReaderPrefixedNamespace(t *testing.T) {
	r := NewReader([]byte(`<p:a xmlns:p="urn:x" p:attr="v"></p:a>`))
	advance(t, r, NodeElementStart)
	name, _ := r.Name()
	if name.Namespace != "urn:x" || name.Local != "a" {
		t.Fatalf("name = %v, want {urn:x a}", name)
	}
	prefix, err := r.Prefix()
	if err != nil {
		t.Fatalf("Prefix() error = %v", err)
	}
	if string(prefix) != "p" {
		t.Fatalf("prefix = %q, want p", prefix)
	}
	attr, ok, err := r.AttrByName("urn:x", "attr")
	if err != nil || !ok {
		t.Fatalf("AttrByName(urn:x, attr) = %v, %v", ok, err)
	}
	if string(attr.Value) != "v" {
		t.Fatalf("attr value = %q, want v", attr.Value)
	}
	advance(t, r, NodeElementEnd)
}

func TestReaderNamespaceShadowing(t *testing.T) {
	input := `<a xmlns:p="urn:outer"><b xmlns:p="urn:inner"><p:c/></b><p:d/></a>`
	r := NewReader([]byte(input))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementEmpty)
	name, _ := r.Name()
	if name.Namespace != "urn:inner" {
		t.Fatalf("inner c namespace = %q, want urn:inner", name.Namespace)
	}
	advance(t, r, NodeElementEnd)
	if uri, ok := r.ResolvePrefix("p"); !ok || uri != "urn:outer" {
		t.Fatalf("ResolvePrefix(p) after close = %q, %v, want urn:outer", uri, ok)
	}
	advance(t, r, NodeElementEmpty)
	name, _ = r.Name()
	if name.Namespace != "urn:outer" {
		t.Fatalf("outer d namespace = %q, want urn:outer", name.Namespace)
	}
}

func TestReaderDefaultNamespaceUndeclare(t *testing.T) {
	r := NewReader([]byte(`<a xmlns="urn:x"><b xmlns=""><c/></b></a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementStart)
	name, _ := r.Name()
	if name.Namespace != "" {
		t.Fatalf("b namespace = %q, want empty", name.Namespace)
	}
	advance(t, r, NodeElementEmpty)
	name, _ = r.Name()
	if name.Namespace != "" {
		t.Fatalf("c namespace = %q, want empty", name.Namespace)
	}
}

func TestReaderSelfClosedBindingScope(t *testing.T) {
	// A binding declared on a self-closed element resolves its own names but
	// must not leak to siblings.
	r := NewReader([]byte(`<a><b xmlns:p="urn:x" p:q="v"/><c/></a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementEmpty)
	attr, ok, err := r.AttrByName("urn:x", "q")
	if err != nil || !ok {
		t.Fatalf("AttrByName(urn:x, q) = %v, %v", ok, err)
	}
	if string(attr.Value) != "v" {
		t.Fatalf("p:q = %q, want v", attr.Value)
	}
	advance(t, r, NodeElementEmpty)
	if _, ok := r.ResolvePrefix("p"); ok {
		t.Fatalf("binding leaked past self-closed element")
	}
}

func TestReaderXMLPrefixPreseeded(t *testing.T) {
	r := NewReader([]byte(`<a xml:lang="en"/>`))
	advance(t, r, NodeElementEmpty)
	attr, ok, err := r.AttrByName(XMLNamespace, "lang")
	if err != nil || !ok {
		t.Fatalf("AttrByName(xml ns, lang) = %v, %v", ok, err)
	}
	if string(attr.Value) != "en" {
		t.Fatalf("xml:lang = %q, want en", attr.Value)
	}
	if uri, ok := r.ResolvePrefix("xml"); !ok || uri != XMLNamespace {
		t.Fatalf("ResolvePrefix(xml) = %q, %v", uri, ok)
	}
}

func TestReaderUnboundPrefix(t *testing.T) {
	err := advanceUntilError(NewReader([]byte(`<p:a/>`)))
	if !errors.Is(err, ErrUnboundPrefix) {
		t.Fatalf("element error = %v, want %v", err, ErrUnboundPrefix)
	}
	err = advanceUntilError(NewReader([]byte(`<a p:b="v"/>`)))
	if !errors.Is(err, ErrUnboundPrefix) {
		t.Fatalf("attribute error = %v, want %v", err, ErrUnboundPrefix)
	}
}

func TestReaderReservedPrefixes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"declare xmlns", `<a xmlns:xmlns="urn:x"/>`},
		{"rebind xml", `<a xmlns:xml="urn:x"/>`},
		{"xml namespace to other prefix", `<a xmlns:p="http://www.w3.org/XML/1998/namespace"/>`},
		{"xmlns namespace to prefix", `<a xmlns:p="http://www.w3.org/2000/xmlns/"/>`},
		{"xml namespace as default", `<a xmlns="http://www.w3.org/XML/1998/namespace"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := advanceUntilError(NewReader([]byte(tt.input)))
			if !errors.Is(err, ErrReservedPrefix) {
				t.Fatalf("error = %v, want %v", err, ErrReservedPrefix)
			}
		})
	}

	// Redeclaring xml to its own URI is allowed.
	r := NewReader([]byte(`<a xmlns:xml="http://www.w3.org/XML/1998/namespace"/>`))
	advance(t, r, NodeElementEmpty)
}

func TestReaderAttributes(t *testing.T) {
	r := NewReader([]byte(`<a one="1" two="2" three="3"/>`))
	advance(t, r, NodeElementEmpty)
	count, err := r.AttrCount()
	if err != nil {
		t.Fatalf("AttrCount() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("AttrCount() = %d, want 3", count)
	}
	for i, want := range []string{"one", "two", "three"} {
		attr, err := r.Attr(i)
		if err != nil {
			t.Fatalf("Attr(%d) error = %v", i, err)
		}
		if string(attr.Local) != want {
			t.Fatalf("Attr(%d) local = %q, want %q", i, attr.Local, want)
		}
		if attr.Name.Namespace != "" {
			t.Fatalf("unprefixed attr namespace = %q, want empty", attr.Name.Namespace)
		}
	}
	if _, err := r.Attr(3); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Attr(3) out of range = %v, want %v", err, ErrInvalidState)
	}
	if _, err := r.Attr(-1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Attr(-1) = %v, want %v", err, ErrInvalidState)
	}
	value, err := r.AttrValue("", "two")
	if err != nil {
		t.Fatalf("AttrValue error = %v", err)
	}
	if string(value) != "2" {
		t.Fatalf("AttrValue(two) = %q, want 2", value)
	}
	if value, _ := r.AttrValue("", "missing"); value != nil {
		t.Fatalf("AttrValue(missing) = %q, want nil", value)
	}
}

func TestReaderAttributesNotInDefaultNamespace(t *testing.T) {
	r := NewReader([]byte(`<a xmlns="urn:x" b="v"/>`))
	advance(t, r, NodeElementEmpty)
	if _, ok, _ := r.AttrByName("urn:x", "b"); ok {
		t.Fatalf("unprefixed attribute resolved into default namespace")
	}
	attr, ok, _ := r.AttrByName("", "b")
	if !ok || string(attr.Value) != "v" {
		t.Fatalf("AttrByName(empty, b) = %v %q", ok, attr.Value)
	}
}

func TestReaderNamespaceDeclInAttrTable(t *testing.T) {
	r := NewReader([]byte(`<a xmlns:p="urn:x"/>`))
	advance(t, r, NodeElementEmpty)
	attr, ok, _ := r.AttrByName(XMLNSNamespace, "p")
	if !ok || string(attr.Value) != "urn:x" {
		t.Fatalf("xmlns decl lookup = %v %q", ok, attr.Value)
	}
}

func TestReaderDuplicateResolvedAttr(t *testing.T) {
	input := `<a xmlns:p="urn:x" xmlns:q="urn:x" p:v="1" q:v="2"/>`
	err := advanceUntilError(NewReader([]byte(input)))
	if !errors.Is(err, ErrDuplicateAttr) {
		t.Fatalf("error = %v, want %v", err, ErrDuplicateAttr)
	}
}

func TestReaderTextCoalescing(t *testing.T) {
	r := NewReader([]byte(`<a>x&amp;y&#65;z</a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeText)
	text, _ := r.Text()
	if string(text) != "x&yAz" {
		t.Fatalf("coalesced text = %q, want x&yAz", text)
	}
	advance(t, r, NodeElementEnd)
}

func TestReaderPlainTextZeroCopy(t *testing.T) {
	input := []byte(`<a>plain</a>`)
	r := NewReader(input)
	advance(t, r, NodeElementStart)
	advance(t, r, NodeText)
	text, _ := r.Text()
	if &text[0] != &input[3] {
		t.Fatalf("plain text does not alias the input")
	}
}

func TestReaderUnknownEntity(t *testing.T) {
	err := advanceUntilError(NewReader([]byte(`<a>&nbsp;</a>`)))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("error = %v, want %v", err, ErrMalformedDocument)
	}
}

func TestReaderCDATA(t *testing.T) {
	r := NewReader([]byte(`<a>x<![CDATA[<raw>&amp;]]>y</a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeText)
	advance(t, r, NodeCDATA)
	text, _ := r.Text()
	if string(text) != "<raw>&amp;" {
		t.Fatalf("CDATA text = %q, want <raw>&amp;", text)
	}
	advance(t, r, NodeText)
	advance(t, r, NodeElementEnd)
}

func TestReaderCommentsAndPIs(t *testing.T) {
	input := `<?pi body?><!-- note --><a/>`
	r := NewReader([]byte(input))
	advance(t, r, NodePI)
	name, _ := r.Name()
	if name.Local != "pi" {
		t.Fatalf("PI target = %q, want pi", name.Local)
	}
	text, _ := r.Text()
	if string(text) != "body" {
		t.Fatalf("PI body = %q, want body", text)
	}
	advance(t, r, NodeComment)
	text, _ = r.Text()
	if string(text) != " note " {
		t.Fatalf("comment = %q, want %q", text, " note ")
	}
	advance(t, r, NodeElementEmpty)
	advance(t, r, NodeEOF)

	r = NewReader([]byte(input), EmitComments(false), EmitPI(false))
	advance(t, r, NodeElementEmpty)
	advance(t, r, NodeEOF)
}

func TestReaderMismatchedEndTag(t *testing.T) {
	err := advanceUntilError(NewReader([]byte(`<a><b></a></b>`)))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("error = %v, want %v", err, ErrMalformedDocument)
	}
}

func TestReaderLiteralEndTagMatch(t *testing.T) {
	// Same resolved name, different literal prefix: not well-formed.
	input := `<p:a xmlns:p="urn:x" xmlns:q="urn:x"></q:a>`
	err := advanceUntilError(NewReader([]byte(input)))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("error = %v, want %v", err, ErrMalformedDocument)
	}
}

func TestReaderDocumentStructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stray end tag", `</a>`},
		{"multiple roots", `<a/><b/>`},
		{"text before root", `x<a/>`},
		{"text after root", `<a/>x`},
		{"cdata outside root", `<![CDATA[x]]><a/>`},
		{"entity outside root", `&amp;<a/>`},
		{"unclosed element", `<a><b></b>`},
		{"empty input", ``},
		{"comment only", `<!-- x -->`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := advanceUntilError(NewReader([]byte(tt.input)))
			if !errors.Is(err, ErrMalformedDocument) {
				t.Fatalf("error = %v, want %v", err, ErrMalformedDocument)
			}
		})
	}
}

func TestReaderPrefixUndeclareRejected(t *testing.T) {
	err := advanceUntilError(NewReader([]byte(`<a xmlns:p=""><p:b/></a>`)))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("error = %v, want %v", err, ErrMalformedDocument)
	}
	// Undeclaring the default namespace stays legal.
	r := NewReader([]byte(`<a xmlns="urn:x"><b xmlns=""/></a>`))
	if err := advanceUntilError(r); err != nil {
		t.Fatalf("default undeclare rejected: %v", err)
	}
}

func TestReaderWhitespaceOutsideRoot(t *testing.T) {
	r := NewReader([]byte("\n <a/> \n"))
	advance(t, r, NodeElementEmpty)
	advance(t, r, NodeEOF)
}

func TestReaderStickyError(t *testing.T) {
	r := NewReader([]byte(`<a><b></a></b>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementStart)
	kind, err := r.Next()
	if err == nil || kind != NodeError {
		t.Fatalf("Next() = %v, %v, want NodeError", kind, err)
	}
	kind, again := r.Next()
	if again != err || kind != NodeError {
		t.Fatalf("sticky Next() = %v, %v, want %v", kind, again, err)
	}
	if r.Err() != err {
		t.Fatalf("Err() = %v, want %v", r.Err(), err)
	}
}

func TestReaderSkipSubtree(t *testing.T) {
	input := `<root><skip><deep><deeper/></deep>text</skip><next/></root>`
	r := NewReader([]byte(input))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementStart)
	if err := r.SkipSubtree(); err != nil {
		t.Fatalf("SkipSubtree() error = %v", err)
	}
	if r.Kind() != NodeElementEnd {
		t.Fatalf("kind after skip = %v, want %v", r.Kind(), NodeElementEnd)
	}
	name, _ := r.Name()
	if name.Local != "skip" {
		t.Fatalf("name after skip = %q, want skip", name.Local)
	}
	if r.Depth() != 1 {
		t.Fatalf("depth after skip = %d, want 1", r.Depth())
	}
	advance(t, r, NodeElementEmpty)
	name, _ = r.Name()
	if name.Local != "next" {
		t.Fatalf("sibling after skip = %q, want next", name.Local)
	}
}

func TestReaderSkipSubtreeInvalidState(t *testing.T) {
	r := NewReader([]byte(`<a/>`))
	advance(t, r, NodeElementEmpty)
	if err := r.SkipSubtree(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("SkipSubtree() on empty element = %v, want %v", err, ErrInvalidState)
	}

	r = NewReader([]byte(`<a>text</a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeText)
	if err := r.SkipSubtree(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("SkipSubtree() on text = %v, want %v", err, ErrInvalidState)
	}
}

func TestReaderElementText(t *testing.T) {
	r := NewReader([]byte(`<a>hello</a>`))
	advance(t, r, NodeElementStart)
	text, err := r.ElementText()
	if err != nil {
		t.Fatalf("ElementText() error = %v", err)
	}
	if string(text) != "hello" {
		t.Fatalf("ElementText() = %q, want hello", text)
	}
	if r.Kind() != NodeElementEnd {
		t.Fatalf("kind after ElementText = %v, want %v", r.Kind(), NodeElementEnd)
	}
	advance(t, r, NodeEOF)
}

func TestReaderElementTextVariants(t *testing.T) {
	// Self-closed element: no content at all.
	r := NewReader([]byte(`<a/>`))
	advance(t, r, NodeElementEmpty)
	text, err := r.ElementText()
	if err != nil {
		t.Fatalf("ElementText() error = %v", err)
	}
	if text != nil {
		t.Fatalf("ElementText() on empty element = %q, want nil", text)
	}

	// Open-close pair: present but empty content.
	r = NewReader([]byte(`<a></a>`))
	advance(t, r, NodeElementStart)
	text, err = r.ElementText()
	if err != nil {
		t.Fatalf("ElementText() error = %v", err)
	}
	if text == nil || len(text) != 0 {
		t.Fatalf("ElementText() on empty body = %v, want empty non-nil", text)
	}

	// CDATA counts as the content run.
	r = NewReader([]byte(`<a><![CDATA[raw]]></a>`))
	advance(t, r, NodeElementStart)
	text, err = r.ElementText()
	if err != nil {
		t.Fatalf("ElementText() error = %v", err)
	}
	if string(text) != "raw" {
		t.Fatalf("ElementText() = %q, want raw", text)
	}

	// Comments inside are skipped.
	r = NewReader([]byte(`<a><!-- note -->x</a>`))
	advance(t, r, NodeElementStart)
	text, err = r.ElementText()
	if err != nil {
		t.Fatalf("ElementText() error = %v", err)
	}
	if string(text) != "x" {
		t.Fatalf("ElementText() = %q, want x", text)
	}

	// A child element is mixed content.
	r = NewReader([]byte(`<a>x<b/></a>`))
	advance(t, r, NodeElementStart)
	if _, err := r.ElementText(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("ElementText() with child = %v, want %v", err, ErrInvalidState)
	}
}

func TestReaderNextTag(t *testing.T) {
	r := NewReader([]byte(`<root> <!-- x --> <a>text</a></root>`))
	advance(t, r, NodeElementStart)
	kind, err := r.NextTag()
	if err != nil {
		t.Fatalf("NextTag() error = %v", err)
	}
	if kind != NodeElementStart {
		t.Fatalf("NextTag() = %v, want %v", kind, NodeElementStart)
	}
	name, _ := r.Name()
	if name.Local != "a" {
		t.Fatalf("NextTag() name = %q, want a", name.Local)
	}
}

func TestReaderMaxDepth(t *testing.T) {
	err := advanceUntilError(NewReader([]byte(`<a><b><c/></b></a>`), MaxDepth(2)))
	if !errors.Is(err, ErrDepthLimit) {
		t.Fatalf("error = %v, want %v", err, ErrDepthLimit)
	}
	r := NewReader([]byte(`<a><b/></a>`), MaxDepth(2))
	if err := advanceUntilError(r); err != nil {
		t.Fatalf("depth within limit rejected: %v", err)
	}
}

func TestReaderAccessorInvalidState(t *testing.T) {
	r := NewReader([]byte(`<a>text</a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeText)
	if _, err := r.Name(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Name() on text = %v, want %v", err, ErrInvalidState)
	}
	if _, err := r.AttrCount(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("AttrCount() on text = %v, want %v", err, ErrInvalidState)
	}
	advance(t, r, NodeElementEnd)
	if _, err := r.Text(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Text() on element end = %v, want %v", err, ErrInvalidState)
	}
	if _, err := r.AttrCount(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("AttrCount() on element end = %v, want %v", err, ErrInvalidState)
	}
}

func TestReaderAccessorIdempotent(t *testing.T) {
	r := NewReader([]byte(`<a b="1"/>`))
	advance(t, r, NodeElementEmpty)
	first, _ := r.Name()
	second, _ := r.Name()
	if first != second {
		t.Fatalf("Name() not stable: %v then %v", first, second)
	}
	c1, _ := r.AttrCount()
	c2, _ := r.AttrCount()
	if c1 != c2 {
		t.Fatalf("AttrCount() not stable: %d then %d", c1, c2)
	}
}

func TestReaderCurrentPos(t *testing.T) {
	r := NewReader([]byte("<a>\n  <b/>\n</a>"))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeText)
	advance(t, r, NodeElementEmpty)
	line, column := r.CurrentPos()
	if line != 2 || column != 3 {
		t.Fatalf("CurrentPos() = %d:%d, want 2:3", line, column)
	}
	if r.InputOffset() <= 0 {
		t.Fatalf("InputOffset() = %d, want > 0", r.InputOffset())
	}
}

func TestReaderErrorPosition(t *testing.T) {
	err := advanceUntilError(NewReader([]byte("<a>\n<b></a>")))
	if err == nil {
		t.Fatalf("mismatched end tag accepted")
	}
	line, column, ok := errorPosition(err)
	if !ok {
		t.Fatalf("error %v carries no position", err)
	}
	if line != 2 || column < 1 {
		t.Fatalf("error position = %d:%d, want line 2", line, column)
	}
}

func TestReaderQNameInterning(t *testing.T) {
	r := NewReader([]byte(`<a><b/><b/><b/></a>`))
	advance(t, r, NodeElementStart)
	advance(t, r, NodeElementEmpty)
	first, _ := r.Name()
	advance(t, r, NodeElementEmpty)
	second, _ := r.Name()
	if first != second {
		t.Fatalf("interned names differ: %v vs %v", first, second)
	}
}

func TestReaderXMLDeclAndDoctype(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE a>\n<a/>"
	r := NewReader([]byte(input))
	advance(t, r, NodeElementEmpty)
	advance(t, r, NodeEOF)
}
