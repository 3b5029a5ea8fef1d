package xmltoken

// Options holds tokenizer configuration values.
// The zero value means no overrides.
type Options struct {
	maxTokenSize int
	maxAttrs     int

	maxTokenSizeSet bool
	maxAttrsSet     bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if src.maxTokenSizeSet {
		opts.maxTokenSize = src.maxTokenSize
		opts.maxTokenSizeSet = true
	}
	if src.maxAttrsSet {
		opts.maxAttrs = src.maxAttrs
		opts.maxAttrsSet = true
	}
}

// MaxTokenSize limits the maximum size of a single token in bytes.
// Tokens exactly MaxTokenSize bytes long are allowed.
func MaxTokenSize(value int) Options {
	return Options{maxTokenSize: value, maxTokenSizeSet: true}
}

// MaxAttrs limits the number of attributes on a start tag.
func MaxAttrs(value int) Options {
	return Options{maxAttrs: value, maxAttrsSet: true}
}

// MaxTokenSizeValue reports the configured token size limit, if set.
func (opts Options) MaxTokenSizeValue() (int, bool) {
	return opts.maxTokenSize, opts.maxTokenSizeSet
}

// MaxAttrsValue reports the configured attribute count limit, if set.
func (opts Options) MaxAttrsValue() (int, bool) {
	return opts.maxAttrs, opts.maxAttrsSet
}
