// Package xmltoken provides a flat lexical XML tokenizer over a borrowed
// byte slice. It emits low-level tokens (tag delimiters, attribute names and
// values, text runs, entity references, CDATA, comments, processing
// instructions) with byte spans into the original input, leaving structural
// concerns such as nesting, namespaces and attribute uniqueness to callers.
package xmltoken
