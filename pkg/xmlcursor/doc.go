// Package xmlcursor provides a pull-style, cursor-oriented XML reader over a
// borrowed byte slice. The reader walks a document node by node (elements,
// text, CDATA, comments, processing instructions) without building a tree,
// tracking namespace scope, attribute tables and element nesting with memory
// proportional to the open-element depth.
package xmlcursor
