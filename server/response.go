package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
	"github.com/Nabagata/scim/uri"
)

// listResponseSchema names the schema of a query Response envelope: the shared SCIM 1.0 core URI.
// The registry does not carry this URI; it registers distinct User and Group URIs
// (spec/core_schemas.go).
const listResponseSchema = "urn:scim:schemas:core:1.0"

// writeResource renders a single resource in media's wire format, setting Content-Type, Location
// (from meta.location) and ETag (from meta.version) headers — grounded on
// pkg/v2/handlerutil.WriteResourceToResponse.
func writeResource(rw http.ResponseWriter, status int, resource *prop.Resource, registry *spec.Registry, media uri.MediaType, attributes, excludedAttributes []string) error {
	raw, err := marshal(resource, registry, media, attributes, excludedAttributes)
	if err != nil {
		return writeError(rw, media, err)
	}

	rw.Header().Set("Content-Type", contentType(media))
	if location := metaString(resource, "location"); location != "" {
		rw.Header().Set("Location", location)
	}
	if version := metaString(resource, "version"); version != "" {
		rw.Header().Set("ETag", version)
	}
	rw.WriteHeader(status)
	_, err = rw.Write(raw)
	return err
}

// writeSearchResult renders a listing Response envelope. Neither codec supports array encoding
// directly, so each resource is marshaled independently and spliced into a hand-built envelope —
// each fragment is already well-formed on its own, so this is safe for both JSON and XML.
func writeSearchResult(rw http.ResponseWriter, resources []*prop.Resource, totalResults, startIndex, itemsPerPage int, registry *spec.Registry, media uri.MediaType, attributes, excludedAttributes []string) error {
	fragments := make([][]byte, 0, len(resources))
	for _, resource := range resources {
		raw, err := marshal(resource, registry, media, attributes, excludedAttributes)
		if err != nil {
			return writeError(rw, media, err)
		}
		fragments = append(fragments, raw)
	}

	rw.Header().Set("Content-Type", contentType(media))
	rw.WriteHeader(http.StatusOK)

	if media == uri.MediaXML {
		return writeSearchResultXML(rw, fragments, totalResults, startIndex, itemsPerPage)
	}
	return writeSearchResultJSON(rw, fragments, totalResults, startIndex, itemsPerPage)
}

func writeSearchResultJSON(rw http.ResponseWriter, fragments [][]byte, totalResults, startIndex, itemsPerPage int) error {
	var buf bytes.Buffer
	buf.WriteString(`{"schemas":["` + listResponseSchema + `"],`)
	buf.WriteString(`"totalResults":`)
	buf.WriteString(strconv.Itoa(totalResults))
	buf.WriteString(`,"startIndex":`)
	buf.WriteString(strconv.Itoa(startIndex))
	buf.WriteString(`,"itemsPerPage":`)
	buf.WriteString(strconv.Itoa(itemsPerPage))
	buf.WriteString(`,"Resources":[`)
	for i, fragment := range fragments {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(fragment)
	}
	buf.WriteString(`]}`)
	_, err := rw.Write(buf.Bytes())
	return err
}

func writeSearchResultXML(rw http.ResponseWriter, fragments [][]byte, totalResults, startIndex, itemsPerPage int) error {
	var buf bytes.Buffer
	buf.WriteString(`<Response><schemas>` + listResponseSchema + `</schemas>`)
	buf.WriteString(`<totalResults>` + strconv.Itoa(totalResults) + `</totalResults>`)
	buf.WriteString(`<startIndex>` + strconv.Itoa(startIndex) + `</startIndex>`)
	buf.WriteString(`<itemsPerPage>` + strconv.Itoa(itemsPerPage) + `</itemsPerPage>`)
	for _, fragment := range fragments {
		buf.Write(fragment)
	}
	buf.WriteString(`</Response>`)
	_, err := rw.Write(buf.Bytes())
	return err
}

// writeError renders the SCIM Errors envelope (spec.md §7, "User-visible error bodies always
// follow the SCIM Errors envelope"). Grounded on pkg/v2/handlerutil.WriteError, with the same
// one-level errors.Unwrap to recover the *spec.Error prototype a service wrapped with fmt.Errorf.
func writeError(rw http.ResponseWriter, media uri.MediaType, err error) error {
	status := spec.ErrInternal.Status
	scimType := spec.ErrInternal.Type

	var scimErr *spec.Error
	if cause := errors.Unwrap(err); errors.As(cause, &scimErr) {
		status = scimErr.Status
		scimType = scimErr.Type
	} else if errors.As(err, &scimErr) {
		status = scimErr.Status
		scimType = scimErr.Type
	}

	rw.Header().Set("Content-Type", contentType(media))
	rw.WriteHeader(status)

	if media == uri.MediaXML {
		var buf bytes.Buffer
		buf.WriteString(`<Errors><status>` + strconv.Itoa(status) + `</status><scimType>` + scimType + `</scimType></Errors>`)
		_, werr := rw.Write(buf.Bytes())
		return werr
	}

	detail := err.Error()
	if errors.Is(err, spec.ErrInternal) {
		detail = "an internal error occurred"
	}

	body := struct {
		Status   int    `json:"status"`
		ScimType string `json:"scimType"`
		Detail   string `json:"detail"`
	}{Status: status, ScimType: scimType, Detail: detail}
	return json.NewEncoder(rw).Encode(body)
}

func metaString(resource *prop.Resource, name string) string {
	meta, ok := resource.Get("meta").(prop.Container)
	if !ok {
		return ""
	}
	p := meta.Get(name)
	if p == nil || p.Unassigned() {
		return ""
	}
	s, _ := p.Raw().(string)
	return s
}
