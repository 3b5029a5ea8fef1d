package xmlcursor

import (
	"errors"

	"github.com/jacoelho/xmlreader/pkg/xmltoken"
)

var (
	// ErrMalformedDocument reports a nesting, tag-matching or
	// document-boundary violation.
	ErrMalformedDocument = errors.New("malformed XML document")
	// ErrUnboundPrefix reports usage of an undeclared namespace prefix.
	ErrUnboundPrefix = errors.New("unbound namespace prefix")
	// ErrDuplicateAttr reports two attributes resolving to the same
	// namespace and local name within one start tag.
	ErrDuplicateAttr = errors.New("duplicate attribute name")
	// ErrReservedPrefix reports a forbidden xml/xmlns declaration.
	ErrReservedPrefix = errors.New("reserved prefix misuse")
	// ErrInvalidState reports an operation that does not apply to the
	// current node kind.
	ErrInvalidState = errors.New("operation does not apply to current node")
	// ErrDepthLimit reports element nesting beyond MaxDepth.
	ErrDepthLimit = errors.New("element depth exceeds MaxDepth")
)

// positionedError wraps a cursor error with location context, reusing the
// tokenizer's SyntaxError so callers handle one error shape for the whole
// reader stack.
func positionedError(input []byte, offset int, cause error) error {
	var syntaxErr *xmltoken.SyntaxError
	if errors.As(cause, &syntaxErr) {
		return cause
	}
	line, column := xmltoken.Position(input, offset)
	return &xmltoken.SyntaxError{
		Offset: int64(offset),
		Line:   line,
		Column: column,
		Err:    cause,
	}
}
