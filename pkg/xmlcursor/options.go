package xmlcursor

import "github.com/jacoelho/xmlreader/pkg/xmltoken"

// Options holds reader configuration values.
// The zero value means no overrides.
type Options struct {
	emitComments bool
	emitPI       bool
	maxDepth     int
	maxTokenSize int
	maxAttrs     int

	emitCommentsSet bool
	emitPISet       bool
	maxDepthSet     bool
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
	if src.emitCommentsSet {
		opts.emitComments = src.emitComments
		opts.emitCommentsSet = true
	}
	if src.emitPISet {
		opts.emitPI = src.emitPI
		opts.emitPISet = true
	}
	if src.maxDepthSet {
		opts.maxDepth = src.maxDepth
		opts.maxDepthSet = true
	}
	if src.maxTokenSizeSet {
		opts.maxTokenSize = src.maxTokenSize
		opts.maxTokenSizeSet = true
	}
	if src.maxAttrsSet {
		opts.maxAttrs = src.maxAttrs
		opts.maxAttrsSet = true
	}
}

// EmitComments controls whether comment nodes are surfaced. Default true.
func EmitComments(value bool) Options {
	return Options{emitComments: value, emitCommentsSet: true}
}

// EmitPI controls whether processing instruction nodes are surfaced. Default true.
func EmitPI(value bool) Options {
	return Options{emitPI: value, emitPISet: true}
}

// MaxDepth limits element nesting depth. Zero means unlimited.
func MaxDepth(value int) Options {
	return Options{maxDepth: value, maxDepthSet: true}
}

// MaxTokenSize limits the size of a single lexical token, forwarded to the tokenizer.
func MaxTokenSize(value int) Options {
	return Options{maxTokenSize: value, maxTokenSizeSet: true}
}

// MaxAttrs limits the attribute count per start tag, forwarded to the tokenizer.
func MaxAttrs(value int) Options {
	return Options{maxAttrs: value, maxAttrsSet: true}
}

func (opts Options) tokenizerOptions() []xmltoken.Options {
	var out []xmltoken.Options
	if opts.maxTokenSizeSet {
		out = append(out, xmltoken.MaxTokenSize(opts.maxTokenSize))
	}
	if opts.maxAttrsSet {
		out = append(out, xmltoken.MaxAttrs(opts.maxAttrs))
	}
	return out
}
