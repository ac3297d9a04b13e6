package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query"
	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
)

// Memory returns a Backend that holds resources in a process-local map. It does not support high
// throughput but needs no directory to run against, making it the default for the User/Group
// endpoints and for tests. Grounded on pkg/v2/db/memory.go's memoryDB, generalized from
// MongoDB-query-shaped filter/sort/pagination parameters to this module's query package.
func Memory() Backend {
	return &memoryBackend{db: make(map[string]*prop.Resource)}
}

type memoryBackend struct {
	sync.RWMutex
	db map[string]*prop.Resource
}

// Authenticate always succeeds: this reference backend has no directory of its own to bind
// against, so it trusts every caller. Deployments that need real authentication use ldap.Backend,
// which binds userID/password against the directory (spec.md §4.7).
func (m *memoryBackend) Authenticate(_ context.Context, _, _ string) error {
	return nil
}

func (m *memoryBackend) Insert(_ context.Context, resource *prop.Resource) error {
	id := resource.ID()
	if id == "" {
		return fmt.Errorf("%w: empty id", spec.ErrInternal)
	}

	m.Lock()
	defer m.Unlock()
	if _, ok := m.db[id]; ok {
		return fmt.Errorf("%w: id exists", spec.ErrConflict)
	}
	m.db[id] = resource
	return nil
}

func (m *memoryBackend) Get(_ context.Context, id string) (*prop.Resource, error) {
	m.RLock()
	defer m.RUnlock()
	r, ok := m.db[id]
	if !ok {
		return nil, fmt.Errorf("%w: resource %q not found", spec.ErrNotFound, id)
	}
	return r, nil
}

func (m *memoryBackend) Replace(_ context.Context, id string, replacement *prop.Resource) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.db[id]; !ok {
		return fmt.Errorf("%w: resource %q not found", spec.ErrNotFound, id)
	}
	m.db[id] = replacement
	return nil
}

func (m *memoryBackend) Delete(_ context.Context, id string) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.db[id]; !ok {
		return fmt.Errorf("%w: resource %q not found", spec.ErrNotFound, id)
	}
	delete(m.db, id)
	return nil
}

func (m *memoryBackend) Count(_ context.Context, filter *expr.Filter) (int, error) {
	candidates, err := m.matching(filter)
	if err != nil {
		return 0, err
	}
	return len(candidates), nil
}

func (m *memoryBackend) Search(_ context.Context, q *Query) ([]*prop.Resource, error) {
	candidates, err := m.matching(q.Filter)
	if err != nil {
		return nil, err
	}
	if err := query.CheckCandidateLimit(candidates, query.DefaultMaxCandidates); err != nil {
		return nil, err
	}
	if q.SortBy != nil {
		query.Sort(candidates, q.SortBy, q.SortDescending)
	}
	return query.Page(candidates, q.StartIndex, q.Count), nil
}

func (m *memoryBackend) matching(filter *expr.Filter) ([]*prop.Resource, error) {
	m.RLock()
	defer m.RUnlock()

	candidates := make([]*prop.Resource, 0, len(m.db))
	for _, r := range m.db {
		if filter == nil {
			candidates = append(candidates, r)
			continue
		}
		ok, err := query.Matches(r, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			candidates = append(candidates, r)
		}
	}
	return candidates, nil
}
