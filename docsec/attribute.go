package docsec

import "regexp"

// AttribDelim separates an attribute name from its value.
const AttribDelim = ":"

var attribPattern = regexp.MustCompile(`^(\w+)` + AttribDelim + `(.*)`)

// Attribute is a single name:value line. The value keeps any leading space
// exactly as it was read.
type Attribute struct {
	Name  string
	Value string
}

// ParseAttribute parses a name:value line. It reports false for lines that
// are not attributes.
func ParseAttribute(line string) (Attribute, bool) {
	m := attribPattern.FindStringSubmatch(line)
	if m == nil {
		return Attribute{}, false
	}
	return Attribute{Name: m[1], Value: m[2]}, true
}

// String renders the attribute as name:value.
func (a Attribute) String() string {
	return a.Name + AttribDelim + a.Value
}
