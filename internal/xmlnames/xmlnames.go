package xmlnames

import (
	"bytes"
	"fmt"
)

const (
	// XMLPrefix is the reserved prefix for the XML namespace.
	XMLPrefix = "xml"
	// XMLNSPrefix is the reserved prefix for namespace declarations.
	XMLNSPrefix = "xmlns"
	// XMLNamespace is the XML namespace URI.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is the XMLNS namespace URI.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

var (
	xmlPrefixBytes   = []byte(XMLPrefix)
	xmlnsPrefixBytes = []byte(XMLNSPrefix)
)

// IsXMLPrefix reports whether prefix is the reserved xml prefix.
func IsXMLPrefix(prefix []byte) bool {
	return bytes.Equal(prefix, xmlPrefixBytes)
}

// IsXMLNSPrefix reports whether prefix is the reserved xmlns prefix.
func IsXMLNSPrefix(prefix []byte) bool {
	return bytes.Equal(prefix, xmlnsPrefixBytes)
}

// ValidateXMLPrefixBinding verifies that an explicit xml prefix binding is correct.
func ValidateXMLPrefixBinding(uri string) error {
	if uri != XMLNamespace {
		return fmt.Errorf("prefix %s must be bound to %s", XMLPrefix, XMLNamespace)
	}
	return nil
}

// ValidateDefaultBinding verifies a default namespace declaration value.
// The reserved URIs cannot become the default namespace.
func ValidateDefaultBinding(uri string) error {
	if uri == XMLNamespace || uri == XMLNSNamespace {
		return fmt.Errorf("namespace %s cannot be the default namespace", uri)
	}
	return nil
}

// ValidateDeclaredPrefix verifies a namespace declaration for a prefix.
// The xmlns prefix can never be declared; the xml prefix only to its fixed URI.
func ValidateDeclaredPrefix(prefix []byte, uri string) error {
	if IsXMLNSPrefix(prefix) {
		return fmt.Errorf("prefix %s cannot be declared", XMLNSPrefix)
	}
	if IsXMLPrefix(prefix) {
		return ValidateXMLPrefixBinding(uri)
	}
	if uri == XMLNamespace {
		return fmt.Errorf("namespace %s is reserved for prefix %s", XMLNamespace, XMLPrefix)
	}
	if uri == XMLNSNamespace {
		return fmt.Errorf("namespace %s cannot be declared", XMLNSNamespace)
	}
	return nil
}
