package json

import "strings"

// selector decides, path by path, whether an attribute should be written to the wire. It
// mirrors the teacher's ShouldVisit attribute-path matching, minus the Returned-ability
// switch this model has no analog for: every assigned attribute is returned by default.
type selector struct {
	includes []string
	excludes []string
}

func newSelector(attributes, excludedAttributes []string) *selector {
	s := &selector{}
	for _, a := range attributes {
		s.includes = append(s.includes, strings.ToLower(a))
	}
	for _, a := range excludedAttributes {
		s.excludes = append(s.excludes, strings.ToLower(a))
	}
	return s
}

// shouldWrite reports whether the attribute at path (dot-joined, lower case expected by caller)
// should be emitted. assigned is whether the property currently carries a value. "id" and "meta"
// (and meta's sub-attributes) are always returned regardless of attributes=/excludedAttributes=,
// matching "schemas" which marshal.go always writes up front.
func (s *selector) shouldWrite(path string, assigned bool) bool {
	path = strings.ToLower(path)
	if path == "id" || path == "meta" || strings.HasPrefix(path, "meta.") {
		return assigned
	}
	switch {
	case len(s.includes) > 0:
		for _, include := range s.includes {
			if include == path || strings.HasPrefix(include, path+".") || strings.HasPrefix(path, include+".") {
				return assigned
			}
		}
		return false
	case len(s.excludes) > 0:
		for _, exclude := range s.excludes {
			if exclude == path || strings.HasPrefix(path, exclude+".") {
				return false
			}
		}
		return assigned
	default:
		return assigned
	}
}
