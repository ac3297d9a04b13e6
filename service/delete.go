package service

import (
	"context"
	"fmt"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// DeleteService returns a delete resource service.
func DeleteService(be backend.Backend) Delete {
	return &deleteService{backend: be}
}

type (
	Delete interface {
		Do(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error)
	}
	DeleteRequest struct {
		ResourceID    string
		MatchCriteria func(resource *prop.Resource) bool
	}
	DeleteResponse struct {
		Deleted *prop.Resource
	}
)

type deleteService struct {
	backend backend.Backend
}

func (s *deleteService) Do(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	resource, err := s.backend.Get(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	if req.MatchCriteria != nil && !req.MatchCriteria(resource) {
		return nil, fmt.Errorf("%w: resource does not meet precondition", spec.ErrPreconditionFailed)
	}

	if err := s.backend.Delete(ctx, req.ResourceID); err != nil {
		return nil, err
	}

	return &DeleteResponse{Deleted: resource}, nil
}
