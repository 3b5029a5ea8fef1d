package xmltoken

// Token is a view of a single lexical XML token.
//
// Name and Value alias the tokenizer input (or, for attribute values that
// required unescaping, a freshly built slice) and must be treated as
// read-only. Span always indexes the original input.
type Token struct {
	// Kind is the lexical kind of the token.
	Kind Kind
	// Span covers the token source text in the input.
	Span Span
	// Name holds the raw qualified name for StartTagOpen, AttrName and
	// EndTag, the target for PI, and the reference body (between '&' and
	// ';') for EntityRef.
	Name []byte
	// Value holds the decoded value for AttrValue, the raw run for Text,
	// the body for CDATA and Comment, and the instruction for PI.
	Value []byte
}
