// Package service implements the five resource operations the server dispatches to after
// parsing a request and before encoding a response: Create, Get, Replace, Delete, and Query.
// There is no Patch service: spec.md §4.7/§4.8 define GET/POST/PUT/DELETE only (PATCH appears
// solely as a method-override tunneling target, per spec.md §1's Non-goals, "PATCH semantics
// (only its wire representation is named)"). Grounded on pkg/v2/service's five services, adapted
// so each takes an already-decoded *prop.Resource rather than parsing a payload itself: with two
// wire representations (JSON and XML) instead of one, decoding belongs to the server's content
// negotiation, not to the service layer.
package service

import (
	"context"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/service/filter"
)

// CreateService returns a create resource service.
func CreateService(be backend.Backend, filters []filter.ByResource) Create {
	return &createService{backend: be, filters: filters}
}

type (
	// Create runs a resource through its create filter chain and inserts it.
	Create interface {
		Do(ctx context.Context, req *CreateRequest) (*CreateResponse, error)
	}
	// CreateRequest carries the resource a client submitted, already decoded from its wire form.
	CreateRequest struct {
		Resource *prop.Resource
	}
	// CreateResponse carries the resource as stored, after filters ran (assigned id, meta, etc).
	CreateResponse struct {
		Resource *prop.Resource
	}
)

type createService struct {
	backend backend.Backend
	filters []filter.ByResource
}

func (s *createService) Do(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	resource := req.Resource

	for _, f := range s.filters {
		if err := f.Filter(ctx, resource); err != nil {
			return nil, err
		}
	}

	if err := s.backend.Insert(ctx, resource); err != nil {
		return nil, err
	}

	return &CreateResponse{Resource: resource}, nil
}
