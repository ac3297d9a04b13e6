package service

import (
	"context"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
)

// GetService returns a get-by-id resource service.
func GetService(be backend.Backend) Get {
	return &getService{backend: be}
}

type (
	Get interface {
		Do(ctx context.Context, req *GetRequest) (*GetResponse, error)
	}
	GetRequest struct {
		ResourceID string
	}
	GetResponse struct {
		Resource *prop.Resource
	}
)

type getService struct {
	backend backend.Backend
}

func (s *getService) Do(ctx context.Context, req *GetRequest) (*GetResponse, error) {
	resource, err := s.backend.Get(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	return &GetResponse{Resource: resource}, nil
}
