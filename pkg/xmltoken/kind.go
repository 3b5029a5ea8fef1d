package xmltoken

// Kind identifies the lexical kind of an XML token.
type Kind byte

const (
	KindNone Kind = iota
	KindStartTagOpen
	KindAttrName
	KindAttrValue
	KindStartTagClose
	KindStartTagSelfClose
	KindEndTag
	KindText
	KindEntityRef
	KindCDATA
	KindComment
	KindPI
)

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindStartTagOpen:
		return "StartTagOpen"
	case KindAttrName:
		return "AttrName"
	case KindAttrValue:
		return "AttrValue"
	case KindStartTagClose:
		return "StartTagClose"
	case KindStartTagSelfClose:
		return "StartTagSelfClose"
	case KindEndTag:
		return "EndTag"
	case KindText:
		return "Text"
	case KindEntityRef:
		return "EntityRef"
	case KindCDATA:
		return "CDATA"
	case KindComment:
		return "Comment"
	case KindPI:
		return "PI"
	default:
		return "Unknown"
	}
}
