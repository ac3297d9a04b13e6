package uri

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Nabagata/scim/spec"
)

// Parse decodes raw (a full URL or just a path+query) into a URI value.
func Parse(raw string) (*URI, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", spec.ErrInvalidURI, err)
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return nil, fmt.Errorf("%w: missing endpoint", spec.ErrInvalidURI)
	}
	segments := strings.Split(path, "/")
	if len(segments) > 2 {
		return nil, fmt.Errorf("%w: too many path segments", spec.ErrInvalidURI)
	}

	u := &URI{}
	if len(segments) == 2 {
		u.Endpoint = segments[0]
		u.ResourceID, u.Media = splitMediaSuffix(segments[1])
	} else {
		u.Endpoint, u.Media = splitMediaSuffix(segments[0])
	}

	q := parsed.Query()
	if v := q.Get("attributes"); v != "" {
		u.Attributes = strings.Split(v, ",")
	}
	if v := q.Get("excludedAttributes"); v != "" {
		u.ExcludedAttributes = strings.Split(v, ",")
	}
	if len(u.Attributes) > 0 && len(u.ExcludedAttributes) > 0 {
		return nil, fmt.Errorf("%w: attributes and excludedAttributes are mutually exclusive", spec.ErrInvalidURI)
	}

	u.Filter = q.Get("filter")
	u.SortBy = q.Get("sortBy")
	u.SortOrder = q.Get("sortOrder")
	if u.SortOrder != "" && u.SortOrder != SortAscending && u.SortOrder != SortDescending {
		return nil, fmt.Errorf("%w: invalid sortOrder %q", spec.ErrInvalidURI, u.SortOrder)
	}

	if v := q.Get("startIndex"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: startIndex must be a positive integer", spec.ErrInvalidURI)
		}
		u.StartIndex = n
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: count must be a non-negative integer", spec.ErrInvalidURI)
		}
		u.Count = n
	}

	return u, nil
}
