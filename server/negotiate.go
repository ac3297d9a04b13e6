// Package server routes SCIM resource requests over HTTP to the service layer, handling content
// negotiation (JSON/XML), method override tunneling, HTTP Basic authentication and the SCIM
// Response/Error envelopes. Grounded on cmd/api/cmd.go + cmd/api/handler.go (httprouter wiring)
// and pkg/v2/handlerutil (request parsing, response rendering), adapted for two wire
// representations and the narrower GET/POST/PUT/DELETE verb set this module implements (spec.md
// §4.7, §1 Non-goals: "PATCH semantics (only its wire representation is named)").
package server

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/Nabagata/scim/codec/json"
	"github.com/Nabagata/scim/codec/xml"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
	"github.com/Nabagata/scim/uri"
)

const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml"
)

// negotiate resolves the media type for a response: the URI's media suffix wins when present
// (spec.md §4.5, "overrides Accept"); otherwise the first acceptable type named in Accept, with
// JSON preferred when both are acceptable (spec.md §4.7).
func negotiate(u *uri.URI, r *http.Request) uri.MediaType {
	if u.Media != uri.MediaNone {
		return u.Media
	}

	accept := r.Header.Get("Accept")
	if accept == "" || strings.Contains(accept, "*/*") || strings.Contains(accept, contentTypeJSON) {
		return uri.MediaJSON
	}
	if strings.Contains(accept, contentTypeXML) {
		return uri.MediaXML
	}
	return uri.MediaJSON
}

func contentType(media uri.MediaType) string {
	if media == uri.MediaXML {
		return contentTypeXML
	}
	return contentTypeJSON
}

// marshal renders resource in media's wire format.
func marshal(resource *prop.Resource, registry *spec.Registry, media uri.MediaType, attributes, excludedAttributes []string) ([]byte, error) {
	if media == uri.MediaXML {
		return xml.Codec{}.Marshal(resource, registry, attributes, excludedAttributes)
	}
	return json.Codec{}.Marshal(resource, registry, attributes, excludedAttributes)
}

// decodeBody picks a decoder from the request's declared Content-Type (defaulting to JSON when
// absent) and parses the body against resourceName. A body that does not match its declared
// Content-Type simply fails to parse under that decoder, surfacing as spec.ErrInvalidResource
// (spec.md §4.7, "mismatch between declared and actual content fails 400").
func decodeBody(raw []byte, contentTypeHeader, resourceName string, registry *spec.Registry) (*prop.Resource, error) {
	media := uri.MediaJSON
	if contentTypeHeader != "" {
		parsed, _, err := mime.ParseMediaType(contentTypeHeader)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed Content-Type", spec.ErrInvalidResource)
		}
		if parsed == contentTypeXML {
			media = uri.MediaXML
		}
	}

	if media == uri.MediaXML {
		return xml.Codec{}.Unmarshal(raw, resourceName, registry)
	}
	return json.Codec{}.Unmarshal(raw, resourceName, registry)
}
