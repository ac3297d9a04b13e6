package uri

import (
	"net/url"
	"strconv"
	"strings"
)

// Emit writes u back into a path+query string rooted at base (e.g. "" or "/scim/v1"). It is the
// mirror of Parse: Parse(Emit(base, x)) reproduces x for every well-formed x (spec.md §4.5,
// "round-trip property").
func Emit(base string, u *URI) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteByte('/')
	b.WriteString(u.Endpoint)
	if u.ResourceID != "" {
		b.WriteByte('/')
		b.WriteString(u.ResourceID)
	}
	b.WriteString(u.Media.Suffix())

	q := url.Values{}
	if len(u.Attributes) > 0 {
		q.Set("attributes", strings.Join(u.Attributes, ","))
	}
	if len(u.ExcludedAttributes) > 0 {
		q.Set("excludedAttributes", strings.Join(u.ExcludedAttributes, ","))
	}
	if u.Filter != "" {
		q.Set("filter", u.Filter)
	}
	if u.SortBy != "" {
		q.Set("sortBy", u.SortBy)
	}
	if u.SortOrder != "" {
		q.Set("sortOrder", u.SortOrder)
	}
	if u.StartIndex > 0 {
		q.Set("startIndex", strconv.Itoa(u.StartIndex))
	}
	if u.Count > 0 {
		q.Set("count", strconv.Itoa(u.Count))
	}

	if encoded := q.Encode(); encoded != "" {
		b.WriteByte('?')
		b.WriteString(encoded)
	}
	return b.String()
}
