package server

import (
	"net/http"
	"strings"

	"github.com/Nabagata/scim/prop"
)

// methodOverride resolves the effective HTTP method for a request, honoring the
// X-HTTP-Method-Override header for PUT/PATCH/DELETE tunneled through POST (spec.md §4.7).
// PATCH is accepted here only as an override target, matching the header's documented purpose;
// this server has no Patch route to dispatch it to.
func methodOverride(r *http.Request) string {
	if r.Method != http.MethodPost {
		return r.Method
	}
	switch override := strings.ToUpper(r.Header.Get("X-HTTP-Method-Override")); override {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return override
	default:
		return r.Method
	}
}

// matchCriteria builds the precondition check a Replace/Delete request carries from its If-Match
// header: "*" or a version listed in a comma-separated set accepts the current resource,
// grounded on pkg/v2/handlerutil.MatchCriteria (If-None-Match is not modeled — this module has
// no conditional-GET caching story to drive it).
func matchCriteria(r *http.Request) func(ref *prop.Resource) bool {
	ifMatch := strings.TrimSpace(r.Header.Get("If-Match"))
	if ifMatch == "" {
		return nil
	}
	return func(ref *prop.Resource) bool {
		if ifMatch == "*" {
			return true
		}
		version := metaString(ref, "version")
		for _, candidate := range strings.Split(ifMatch, ",") {
			if strings.TrimSpace(candidate) == version {
				return true
			}
		}
		return false
	}
}
