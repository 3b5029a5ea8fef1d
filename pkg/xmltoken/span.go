package xmltoken

// Span is a half-open byte range [Start, End) into the tokenizer input.
type Span struct {
	Start int
	End   int
}

// Len reports the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}
