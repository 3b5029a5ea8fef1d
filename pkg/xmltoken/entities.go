package xmltoken

import (
	"bytes"
	"unicode/utf8"
)

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// ResolveReference expands an entity reference body (the text between '&'
// and ';') into its replacement text. Only the five predefined entities and
// numeric character references are supported.
func ResolveReference(ref []byte) ([]byte, error) {
	if len(ref) == 0 {
		return nil, errInvalidEntity
	}
	if ref[0] == '#' {
		r, err := parseNumericEntity(ref)
		if err != nil {
			return nil, err
		}
		return utf8.AppendRune(nil, r), nil
	}
	if replacement, ok := predefinedEntities[string(ref)]; ok {
		return []byte(replacement), nil
	}
	return nil, errInvalidEntity
}

// AppendReference appends the expansion of an entity reference body to dst.
func AppendReference(dst, ref []byte) ([]byte, error) {
	if len(ref) == 0 {
		return dst, errInvalidEntity
	}
	if ref[0] == '#' {
		r, err := parseNumericEntity(ref)
		if err != nil {
			return dst, err
		}
		return utf8.AppendRune(dst, r), nil
	}
	replacement, ok := predefinedEntities[string(ref)]
	if !ok {
		return dst, errInvalidEntity
	}
	return append(dst, replacement...), nil
}

func unescapeAppend(dst, data []byte) ([]byte, error) {
	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			dst = append(dst, data[i])
			continue
		}
		semi := bytes.IndexByte(data[i+1:], ';')
		if semi < 0 {
			return nil, errInvalidEntity
		}
		ref := data[i+1 : i+1+semi]
		var err error
		dst, err = AppendReference(dst, ref)
		if err != nil {
			return nil, err
		}
		i += semi + 1
	}
	return dst, nil
}

func parseNumericEntity(ref []byte) (rune, error) {
	if len(ref) < 2 {
		return 0, errInvalidCharRef
	}
	base := 10
	start := 1
	if ref[1] == 'x' || ref[1] == 'X' {
		base = 16
		start = 2
	}
	if start >= len(ref) {
		return 0, errInvalidCharRef
	}
	var value uint64
	for i := start; i < len(ref); i++ {
		b := ref[i]
		var digit byte
		switch {
		case b >= '0' && b <= '9':
			digit = b - '0'
		case base == 16 && b >= 'a' && b <= 'f':
			digit = b - 'a' + 10
		case base == 16 && b >= 'A' && b <= 'F':
			digit = b - 'A' + 10
		default:
			return 0, errInvalidCharRef
		}
		value = value*uint64(base) + uint64(digit)
		if value > utf8.MaxRune {
			return 0, errInvalidCharRef
		}
	}
	r := rune(value)
	if r == 0 || (r >= 0xD800 && r <= 0xDFFF) {
		return 0, errInvalidCharRef
	}
	if !isValidXMLChar(r) {
		return 0, errInvalidCharRef
	}
	return r, nil
}

func validEntityBody(ref []byte) bool {
	if len(ref) == 0 {
		return false
	}
	if ref[0] == '#' {
		_, err := parseNumericEntity(ref)
		return err == nil
	}
	if !isNameStartByte(ref[0]) && ref[0] >= utf8.RuneSelf {
		r, _ := utf8.DecodeRune(ref)
		if !isNameStartRune(r) {
			return false
		}
	} else if !isNameStartByte(ref[0]) {
		return false
	}
	for i := 1; i < len(ref); {
		if ref[i] < utf8.RuneSelf {
			if !isNameByte(ref[i]) {
				return false
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(ref[i:])
		if !isNameRune(r) {
			return false
		}
		i += size
	}
	return true
}
