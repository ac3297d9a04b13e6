package xml

import "strings"

// selector mirrors codec/json's attribute-path filter so both codecs honor
// attributes/excludedAttributes identically (spec.md §4.3).
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
