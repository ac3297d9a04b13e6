package expr

import "strings"

// Path is a compiled attrPath: name ('.' subName)? (spec.md §4.4).
type Path struct {
	Name    string
	SubName string // empty when the path names a top-level attribute
}

func (p *Path) String() string {
	if p.SubName == "" {
		return p.Name
	}
	return p.Name + "." + p.SubName
}

// ParsePath splits a dotted attribute path into its top-level and sub-attribute segments.
// SCIM 1.0 paths nest one level deep; spec.md's grammar does not define a second dot.
func ParsePath(raw string) *Path {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return &Path{Name: raw[:i], SubName: raw[i+1:]}
	}
	return &Path{Name: raw}
}
