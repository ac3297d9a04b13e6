// Package uri models a SCIM resource URI's shape (spec.md §4.5):
//
//	<baseURI>/<endpoint>[/<resourceID>][.mediaSuffix][?query]
//
// parsed from and emitted to the query portion an *http.Request.URL already carries, the same
// net/url usage the teacher's pkg/v2/handlerutil/request.go drives directly off *http.Request.
package uri

import "strings"

// MediaType is the optional dot-suffix on the last path segment, which overrides Accept-header
// content negotiation when present (spec.md §4.5, §6).
type MediaType int

const (
	MediaNone MediaType = iota
	MediaXML
	MediaJSON
)

// Suffix returns the dot-prefixed suffix for m, or "" for MediaNone.
func (m MediaType) Suffix() string {
	switch m {
	case MediaXML:
		return ".xml"
	case MediaJSON:
		return ".json"
	default:
		return ""
	}
}

const (
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// URI is the parsed form of a SCIM resource request.
type URI struct {
	Endpoint           string
	ResourceID         string
	Media              MediaType
	Attributes         []string
	ExcludedAttributes []string
	Filter             string
	SortBy             string
	SortOrder          string
	StartIndex         int
	Count              int
}

func splitMediaSuffix(segment string) (string, MediaType) {
	switch {
	case strings.HasSuffix(segment, ".json"):
		return strings.TrimSuffix(segment, ".json"), MediaJSON
	case strings.HasSuffix(segment, ".xml"):
		return strings.TrimSuffix(segment, ".xml"), MediaXML
	default:
		return segment, MediaNone
	}
}
