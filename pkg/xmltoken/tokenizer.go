package xmltoken

import (
	"bytes"
	"io"
	"unicode/utf8"
)

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	commentOpen   = []byte("<!--")
	commentClose  = []byte("-->")
	cdataOpen     = []byte("<![CDATA[")
	cdataClose    = []byte("]]>")
	doctypeOpen   = []byte("<!DOCTYPE")
	piClose       = []byte("?>")
	xmlDeclTarget = []byte("xml")
)

// Tokenizer scans a borrowed byte slice into a flat XML token sequence.
//
// The input must already be decoded to UTF-8; the tokenizer never copies it
// and never seeks backwards past the current token. Next returns io.EOF once
// the input is exhausted. Lexical errors are sticky.
type Tokenizer struct {
	input        []byte
	pos          int
	bomEnd       int
	maxTokenSize int
	maxAttrs     int
	attrNames    []Span
	err          error
	inTag        bool
	expectValue  bool
	tagSeen      bool
	doctypeSeen  bool
}

// NewTokenizer creates a tokenizer over input.
func NewTokenizer(input []byte, opts ...Options) *Tokenizer {
	merged := JoinOptions(opts...)
	t := &Tokenizer{input: input}
	if size, ok := merged.MaxTokenSizeValue(); ok && size > 0 {
		t.maxTokenSize = size
	}
	if count, ok := merged.MaxAttrsValue(); ok && count > 0 {
		t.maxAttrs = count
	}
	if bytes.HasPrefix(input, utf8BOM) {
		t.pos = len(utf8BOM)
		t.bomEnd = len(utf8BOM)
	}
	return t
}

// Input returns the borrowed input slice.
func (t *Tokenizer) Input() []byte {
	if t == nil {
		return nil
	}
	return t.input
}

// InputOffset returns the byte offset of the next unread input byte.
func (t *Tokenizer) InputOffset() int64 {
	if t == nil {
		return 0
	}
	return int64(t.pos)
}

// SpanBytes returns the input bytes covered by the span.
func (t *Tokenizer) SpanBytes(s Span) []byte {
	if t == nil || s.Start < 0 || s.End < s.Start || s.End > len(t.input) {
		return nil
	}
	return t.input[s.Start:s.End]
}

// Next returns the next lexical token, or io.EOF at input end.
func (t *Tokenizer) Next() (Token, error) {
	if t == nil {
		return Token{}, io.EOF
	}
	if t.err != nil {
		return Token{}, t.err
	}
	var tok Token
	var err error
	if t.inTag {
		tok, err = t.nextInTag()
	} else {
		tok, err = t.nextContent()
	}
	if err != nil && err != io.EOF {
		t.err = err
	}
	return tok, err
}

func (t *Tokenizer) nextContent() (Token, error) {
	for {
		if t.pos >= len(t.input) {
			return Token{}, io.EOF
		}
		switch t.input[t.pos] {
		case '<':
			tok, emitted, err := t.scanMarkup()
			if err != nil {
				return Token{}, err
			}
			if !emitted {
				// XML declaration or DOCTYPE, consumed silently.
				continue
			}
			return tok, nil
		case '&':
			return t.scanEntityRef()
		default:
			return t.scanText()
		}
	}
}

func (t *Tokenizer) scanMarkup() (Token, bool, error) {
	start := t.pos
	if start+1 >= len(t.input) {
		return Token{}, false, t.syntaxErr(start, errUnexpectedEOF)
	}
	switch t.input[start+1] {
	case '/':
		tok, err := t.scanEndTag()
		return tok, err == nil, err
	case '?':
		return t.scanPI()
	case '!':
		return t.scanDeclaration()
	default:
		tok, err := t.scanStartTagOpen()
		return tok, err == nil, err
	}
}

func (t *Tokenizer) scanStartTagOpen() (Token, error) {
	start := t.pos
	t.pos++
	name, err := t.scanQName()
	if err != nil {
		return Token{}, err
	}
	t.inTag = true
	t.expectValue = false
	t.attrNames = t.attrNames[:0]
	t.tagSeen = true
	return Token{
		Kind: KindStartTagOpen,
		Span: Span{Start: start, End: t.pos},
		Name: t.input[name.Start:name.End],
	}, nil
}

func (t *Tokenizer) scanEndTag() (Token, error) {
	start := t.pos
	t.pos += 2
	name, err := t.scanQName()
	if err != nil {
		return Token{}, err
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return Token{}, t.syntaxErr(start, errUnexpectedEOF)
	}
	if t.input[t.pos] != '>' {
		return Token{}, t.syntaxErr(t.pos, errUnterminatedTag)
	}
	t.pos++
	return Token{
		Kind: KindEndTag,
		Span: Span{Start: start, End: t.pos},
		Name: t.input[name.Start:name.End],
	}, nil
}

func (t *Tokenizer) scanPI() (Token, bool, error) {
	start := t.pos
	t.pos += 2
	name, err := t.scanQName()
	if err != nil {
		return Token{}, false, err
	}
	target := t.input[name.Start:name.End]
	idx := bytes.Index(t.input[t.pos:], piClose)
	if idx < 0 {
		return Token{}, false, t.syntaxErr(start, errInvalidPI)
	}
	body := t.input[t.pos : t.pos+idx]
	t.pos += idx + len(piClose)

	if isXMLDeclTarget(target) {
		if !bytes.Equal(target, xmlDeclTarget) || start != t.bomEnd {
			return Token{}, false, t.syntaxErr(start, errMisplacedXMLDecl)
		}
		return Token{}, false, nil
	}
	body = trimLeftWhitespace(body)
	if err := t.checkSize(start, len(body)); err != nil {
		return Token{}, false, err
	}
	if err := validateXMLChars(body); err != nil {
		return Token{}, false, t.syntaxErr(start, err)
	}
	return Token{
		Kind:  KindPI,
		Span:  Span{Start: start, End: t.pos},
		Name:  target,
		Value: body,
	}, true, nil
}

func (t *Tokenizer) scanDeclaration() (Token, bool, error) {
	rest := t.input[t.pos:]
	switch {
	case bytes.HasPrefix(rest, commentOpen):
		tok, err := t.scanComment()
		return tok, err == nil, err
	case bytes.HasPrefix(rest, cdataOpen):
		tok, err := t.scanCDATA()
		return tok, err == nil, err
	case bytes.HasPrefix(rest, doctypeOpen):
		return Token{}, false, t.skipDoctype()
	default:
		return Token{}, false, t.syntaxErr(t.pos, errInvalidToken)
	}
}

func (t *Tokenizer) scanComment() (Token, error) {
	start := t.pos
	t.pos += len(commentOpen)
	idx := bytes.Index(t.input[t.pos:], commentClose)
	if idx < 0 {
		return Token{}, t.syntaxErr(start, errInvalidComment)
	}
	body := t.input[t.pos : t.pos+idx]
	t.pos += idx + len(commentClose)
	if bytes.Contains(body, []byte("--")) || (len(body) > 0 && body[len(body)-1] == '-') {
		return Token{}, t.syntaxErr(start, errInvalidComment)
	}
	if err := t.checkSize(start, len(body)); err != nil {
		return Token{}, err
	}
	if err := validateXMLChars(body); err != nil {
		return Token{}, t.syntaxErr(start, err)
	}
	return Token{
		Kind:  KindComment,
		Span:  Span{Start: start, End: t.pos},
		Value: body,
	}, nil
}

func (t *Tokenizer) scanCDATA() (Token, error) {
	start := t.pos
	t.pos += len(cdataOpen)
	idx := bytes.Index(t.input[t.pos:], cdataClose)
	if idx < 0 {
		return Token{}, t.syntaxErr(start, errUnterminatedCDATA)
	}
	body := t.input[t.pos : t.pos+idx]
	t.pos += idx + len(cdataClose)
	if err := t.checkSize(start, len(body)); err != nil {
		return Token{}, err
	}
	if err := validateXMLChars(body); err != nil {
		return Token{}, t.syntaxErr(start, err)
	}
	return Token{
		Kind:  KindCDATA,
		Span:  Span{Start: start, End: t.pos},
		Value: body,
	}, nil
}

func (t *Tokenizer) skipDoctype() error {
	start := t.pos
	if t.doctypeSeen {
		return t.syntaxErr(start, errDuplicateDoctype)
	}
	if t.tagSeen {
		return t.syntaxErr(start, errMisplacedDoctype)
	}
	t.pos += len(doctypeOpen)
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case '[':
			return t.syntaxErr(t.pos, errInternalSubset)
		case '>':
			t.pos++
			t.doctypeSeen = true
			return nil
		default:
			t.pos++
		}
	}
	return t.syntaxErr(start, errUnexpectedEOF)
}

func (t *Tokenizer) scanEntityRef() (Token, error) {
	start := t.pos
	semi := bytes.IndexByte(t.input[start+1:], ';')
	if semi < 0 {
		return Token{}, t.syntaxErr(start, errInvalidEntity)
	}
	ref := t.input[start+1 : start+1+semi]
	if !validEntityBody(ref) {
		return Token{}, t.syntaxErr(start, errInvalidEntity)
	}
	t.pos = start + semi + 2
	return Token{
		Kind: KindEntityRef,
		Span: Span{Start: start, End: t.pos},
		Name: ref,
	}, nil
}

func (t *Tokenizer) scanText() (Token, error) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' && t.input[t.pos] != '&' {
		t.pos++
	}
	run := t.input[start:t.pos]
	if idx := bytes.Index(run, cdataClose); idx >= 0 {
		return Token{}, t.syntaxErr(start+idx, errInvalidToken)
	}
	if err := t.checkSize(start, len(run)); err != nil {
		return Token{}, err
	}
	if err := validateXMLChars(run); err != nil {
		return Token{}, t.syntaxErr(start, err)
	}
	return Token{
		Kind:  KindText,
		Span:  Span{Start: start, End: t.pos},
		Value: run,
	}, nil
}

func (t *Tokenizer) nextInTag() (Token, error) {
	if t.expectValue {
		return t.scanAttrValue()
	}
	wsSkipped := t.skipWhitespace()
	if t.pos >= len(t.input) {
		return Token{}, t.syntaxErr(t.pos, errUnexpectedEOF)
	}
	switch t.input[t.pos] {
	case '>':
		t.pos++
		t.inTag = false
		return Token{Kind: KindStartTagClose, Span: Span{Start: t.pos - 1, End: t.pos}}, nil
	case '/':
		if t.pos+1 >= len(t.input) || t.input[t.pos+1] != '>' {
			return Token{}, t.syntaxErr(t.pos, errUnterminatedTag)
		}
		t.pos += 2
		t.inTag = false
		return Token{Kind: KindStartTagSelfClose, Span: Span{Start: t.pos - 2, End: t.pos}}, nil
	}
	if !wsSkipped {
		return Token{}, t.syntaxErr(t.pos, errInvalidToken)
	}
	return t.scanAttrName()
}

func (t *Tokenizer) scanAttrName() (Token, error) {
	start := t.pos
	name, err := t.scanQName()
	if err != nil {
		return Token{}, err
	}
	raw := t.input[name.Start:name.End]
	for _, prev := range t.attrNames {
		if bytes.Equal(t.input[prev.Start:prev.End], raw) {
			return Token{}, t.syntaxErr(start, errDuplicateAttr)
		}
	}
	t.attrNames = append(t.attrNames, name)
	if t.maxAttrs > 0 && len(t.attrNames) > t.maxAttrs {
		return Token{}, t.syntaxErr(start, errAttrLimit)
	}
	t.expectValue = true
	return Token{
		Kind: KindAttrName,
		Span: name,
		Name: raw,
	}, nil
}

func (t *Tokenizer) scanAttrValue() (Token, error) {
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return Token{}, t.syntaxErr(t.pos, errInvalidToken)
	}
	t.pos++
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return Token{}, t.syntaxErr(t.pos, errUnexpectedEOF)
	}
	quote := t.input[t.pos]
	if quote != '"' && quote != '\'' {
		return Token{}, t.syntaxErr(t.pos, errInvalidAttrValue)
	}
	start := t.pos
	t.pos++
	idx := bytes.IndexByte(t.input[t.pos:], quote)
	if idx < 0 {
		return Token{}, t.syntaxErr(start, errUnterminatedString)
	}
	raw := t.input[t.pos : t.pos+idx]
	t.pos += idx + 1
	t.expectValue = false

	if bytes.IndexByte(raw, '<') >= 0 {
		return Token{}, t.syntaxErr(start, errInvalidAttrValue)
	}
	if err := t.checkSize(start, len(raw)); err != nil {
		return Token{}, err
	}
	if err := validateXMLChars(raw); err != nil {
		return Token{}, t.syntaxErr(start, err)
	}
	value := raw
	if bytes.IndexByte(raw, '&') >= 0 {
		decoded, err := unescapeAppend(nil, raw)
		if err != nil {
			return Token{}, t.syntaxErr(start, err)
		}
		value = decoded
	}
	return Token{
		Kind:  KindAttrValue,
		Span:  Span{Start: start, End: t.pos},
		Value: value,
	}, nil
}

// scanQName consumes an XML qualified name and returns its span.
// At most one colon is accepted, and not at either end.
func (t *Tokenizer) scanQName() (Span, error) {
	start := t.pos
	if t.pos >= len(t.input) {
		return Span{}, t.syntaxErr(start, errUnexpectedEOF)
	}
	colon := -1
	first := true
	for t.pos < len(t.input) {
		b := t.input[t.pos]
		if b == ':' {
			if colon >= 0 || first {
				return Span{}, t.syntaxErr(start, errInvalidName)
			}
			colon = t.pos
			t.pos++
			first = false
			continue
		}
		if b < utf8.RuneSelf {
			if first {
				if !isNameStartByte(b) {
					break
				}
			} else if !isNameByte(b) {
				break
			}
			t.pos++
			first = false
			continue
		}
		r, size := utf8.DecodeRune(t.input[t.pos:])
		if r == utf8.RuneError && size == 1 {
			return Span{}, t.syntaxErr(t.pos, errInvalidChar)
		}
		if first {
			if !isNameStartRune(r) {
				break
			}
		} else if !isNameRune(r) {
			break
		}
		t.pos += size
		first = false
	}
	if t.pos == start {
		return Span{}, t.syntaxErr(start, errInvalidName)
	}
	if colon >= 0 && colon == t.pos-1 {
		return Span{}, t.syntaxErr(start, errInvalidName)
	}
	// the byte after a colon must restart a name
	if colon >= 0 {
		next := t.input[colon+1]
		if next < utf8.RuneSelf && !isNameStartByte(next) {
			return Span{}, t.syntaxErr(start, errInvalidName)
		}
	}
	return Span{Start: start, End: t.pos}, nil
}

func (t *Tokenizer) skipWhitespace() bool {
	skipped := false
	for t.pos < len(t.input) && isWhitespace(t.input[t.pos]) {
		t.pos++
		skipped = true
	}
	return skipped
}

func (t *Tokenizer) checkSize(offset, size int) error {
	if t.maxTokenSize > 0 && size > t.maxTokenSize {
		return t.syntaxErr(offset, errTokenTooLarge)
	}
	return nil
}

func (t *Tokenizer) syntaxErr(offset int, cause error) error {
	line, column := textPos(t.input, offset)
	return &SyntaxError{
		Offset: int64(offset),
		Line:   line,
		Column: column,
		Err:    cause,
	}
}

func isXMLDeclTarget(target []byte) bool {
	if len(target) != 3 {
		return false
	}
	return (target[0] == 'x' || target[0] == 'X') &&
		(target[1] == 'm' || target[1] == 'M') &&
		(target[2] == 'l' || target[2] == 'L')
}

func trimLeftWhitespace(data []byte) []byte {
	for len(data) > 0 && isWhitespace(data[0]) {
		data = data[1:]
	}
	return data
}
