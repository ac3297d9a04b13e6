package query

import (
	"fmt"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// DefaultMaxCandidates bounds how many backend candidates a single list/query request will
// hold in memory for in-process filtering, sorting and paging before it gives up (DESIGN.md,
// "in-memory pagination cap" decision). Deployments may override it per request.
const DefaultMaxCandidates = 10000

// CheckCandidateLimit rejects a candidate set larger than max (DefaultMaxCandidates when max <= 0).
func CheckCandidateLimit(candidates []*prop.Resource, max int) error {
	if max <= 0 {
		max = DefaultMaxCandidates
	}
	if len(candidates) > max {
		return fmt.Errorf("%w: %d candidates exceeds limit of %d", spec.ErrTooMany, len(candidates), max)
	}
	return nil
}

// Page returns the slice of resources for a 1-based startIndex and page size count (<= 0 means
// unbounded), per spec.md's URI model startIndex/count parameters.
func Page(resources []*prop.Resource, startIndex, count int) []*prop.Resource {
	total := len(resources)
	if startIndex < 1 {
		startIndex = 1
	}
	start := startIndex - 1
	if start >= total {
		return nil
	}
	end := total
	if count > 0 && start+count < total {
		end = start + count
	}
	return resources[start:end]
}
