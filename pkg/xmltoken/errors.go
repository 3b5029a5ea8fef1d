package xmltoken

import (
	"errors"
	"fmt"
)

var (
	errUnexpectedEOF      = errors.New("unexpected EOF")
	errInvalidName        = errors.New("invalid XML name")
	errInvalidEntity      = errors.New("invalid entity reference")
	errInvalidCharRef     = errors.New("invalid character reference")
	errInvalidChar        = errors.New("invalid XML character")
	errInvalidToken       = errors.New("invalid XML token")
	errInvalidComment     = errors.New("invalid XML comment")
	errInvalidPI          = errors.New("invalid XML processing instruction")
	errInvalidAttrValue   = errors.New("invalid attribute value")
	errTokenTooLarge      = errors.New("token exceeds MaxTokenSize")
	errAttrLimit          = errors.New("attribute count exceeds MaxAttrs")
	errDuplicateAttr      = errors.New("duplicate attribute name")
	errMisplacedXMLDecl   = errors.New("XML declaration not at start")
	errMisplacedDoctype   = errors.New("DOCTYPE after document content")
	errDuplicateDoctype   = errors.New("duplicate DOCTYPE")
	errInternalSubset     = errors.New("DOCTYPE internal subset is not supported")
	errUnterminatedCDATA  = errors.New("unterminated CDATA section")
	errUnterminatedTag    = errors.New("unterminated tag")
	errUnterminatedString = errors.New("unterminated attribute value")
)

// Exported sentinels for callers that classify tokenizer failures.
var (
	// ErrDuplicateAttr reports a repeated literal attribute name within one tag.
	ErrDuplicateAttr = errDuplicateAttr
	// ErrInvalidEntity reports a lexically or semantically bad entity reference.
	ErrInvalidEntity = errInvalidEntity
)

// SyntaxError reports a lexical error with location context.
type SyntaxError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("xml syntax error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Position converts a byte offset in input into 1-based line and column numbers.
func Position(input []byte, offset int) (line, column int) {
	return textPos(input, offset)
}

// textPos converts a byte offset into 1-based line and column numbers.
func textPos(input []byte, offset int) (line, column int) {
	if offset > len(input) {
		offset = len(input)
	}
	line = 1
	column = 1
	for _, b := range input[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
