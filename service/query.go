package service

import (
	"context"
	"fmt"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
)

// QueryService returns a listing service for a single resource type (no cross-resource root
// query; spec.md §4.4 scopes filter/sort/page/attributes to one endpoint at a time).
func QueryService(be backend.Backend, maxResults int) Query {
	return &queryService{backend: be, maxResults: maxResults}
}

type (
	Query interface {
		Do(ctx context.Context, req *QueryRequest) (*QueryResponse, error)
	}
	// QueryRequest carries a listing request's raw query-string parameters (spec.md §4.4); Filter
	// and SortBy are compiled here rather than by the caller. A malformed Filter surfaces as
	// spec.ErrInvalidFilter from one place; parsing SortBy never fails.
	QueryRequest struct {
		Filter     string
		SortBy     string
		Descending bool
		StartIndex int
		Count      int
	}
	QueryResponse struct {
		TotalResults int
		StartIndex   int
		ItemsPerPage int
		Resources    []*prop.Resource
	}
)

type queryService struct {
	backend    backend.Backend
	maxResults int
}

func (s *queryService) Do(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	var (
		filter *expr.Filter
		sortBy *expr.Path
		err    error
	)

	if req.Filter != "" {
		filter, err = expr.CompileFilter(req.Filter)
		if err != nil {
			return nil, err
		}
	}
	if req.SortBy != "" {
		sortBy = expr.ParsePath(req.SortBy)
	}

	startIndex := req.StartIndex
	if startIndex < 1 {
		startIndex = 1
	}

	total, err := s.backend.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &QueryResponse{TotalResults: total, StartIndex: startIndex}

	// A bare listing (no count bound) that would return more than maxResults is rejected outright;
	// an explicit count is checked against the limit instead of the unbounded total.
	if s.maxResults > 0 {
		if req.Count == 0 && total > s.maxResults {
			return nil, fmt.Errorf("%w: %d candidates exceeds the %d result limit", spec.ErrTooMany, total, s.maxResults)
		}
		if req.Count > s.maxResults {
			return nil, fmt.Errorf("%w: requested count %d exceeds the %d result limit", spec.ErrTooMany, req.Count, s.maxResults)
		}
	}

	resources, err := s.backend.Search(ctx, &backend.Query{
		Filter:         filter,
		SortBy:         sortBy,
		SortDescending: req.Descending,
		StartIndex:     startIndex,
		Count:          req.Count,
	})
	if err != nil {
		return nil, err
	}

	resp.Resources = resources
	resp.ItemsPerPage = len(resources)
	return resp, nil
}
