package service

import (
	"context"
	"fmt"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/service/filter"
	"github.com/Nabagata/scim/spec"
)

// ReplaceService returns a full-replace resource service.
func ReplaceService(be backend.Backend, filters []filter.ByResource) Replace {
	return &replaceService{backend: be, filters: filters}
}

type (
	// Replace fetches the resource's current state, validates it against an optional precondition,
	// runs the replacement through the FilterRef chain, and stores it.
	Replace interface {
		Do(ctx context.Context, req *ReplaceRequest) (*ReplaceResponse, error)
	}
	ReplaceRequest struct {
		ResourceID string
		Resource   *prop.Resource
		// MatchCriteria, when non-nil, must accept the current resource (e.g. an If-Match version
		// check) or the replace is rejected with spec.ErrPreconditionFailed.
		MatchCriteria func(ref *prop.Resource) bool
	}
	ReplaceResponse struct {
		Ref      *prop.Resource // the resource's state before replacement
		Resource *prop.Resource // the resource's state after replacement
	}
)

type replaceService struct {
	backend backend.Backend
	filters []filter.ByResource
}

func (s *replaceService) Do(ctx context.Context, req *ReplaceRequest) (*ReplaceResponse, error) {
	ref, err := s.backend.Get(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	if req.MatchCriteria != nil && !req.MatchCriteria(ref) {
		return nil, fmt.Errorf("%w: resource does not meet precondition", spec.ErrPreconditionFailed)
	}

	replacement := req.Resource
	for _, f := range s.filters {
		if err := f.FilterRef(ctx, replacement, ref); err != nil {
			return nil, err
		}
	}

	if err := s.backend.Replace(ctx, req.ResourceID, replacement); err != nil {
		return nil, err
	}

	return &ReplaceResponse{Ref: ref, Resource: replacement}, nil
}
