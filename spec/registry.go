package spec

import (
	"fmt"
	"sort"
)

// Registry resolves (namespace, localName) to descriptors. It is built once at startup by
// NewRegistry and is safe for concurrent reads thereafter without locking — per §9's design
// note, it is an immutable value passed explicitly into the codec, server and backend rather
// than held as mutable global state.
type Registry struct {
	schemas   map[string]*Schema
	resources map[string]*ResourceDescriptor // keyed by resource name, e.g. "User"
}

// NewRegistry builds a Registry from the given schemas and resource descriptors. Registering
// two schemas under the same URI, or two resources under the same name, is rejected.
func NewRegistry(schemas []*Schema, resources []*ResourceDescriptor) (*Registry, error) {
	r := &Registry{
		schemas:   make(map[string]*Schema, len(schemas)),
		resources: make(map[string]*ResourceDescriptor, len(resources)),
	}
	for _, s := range schemas {
		if _, exists := r.schemas[s.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate schema %q", ErrInvalidResource, s.ID)
		}
		r.schemas[s.ID] = s
	}
	for _, rt := range resources {
		if _, exists := r.resources[rt.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate resource descriptor %q", ErrInvalidResource, rt.Name)
		}
		if _, ok := r.schemas[rt.Schema]; !ok {
			return nil, fmt.Errorf("%w: resource %q references unregistered schema %q", ErrInvalidResource, rt.Name, rt.Schema)
		}
		r.resources[rt.Name] = rt
	}
	return r, nil
}

// GetResourceDescriptor looks up a resource descriptor by its local name (e.g. "User"), returning
// ok=false when absent rather than failing (spec.md §4.1).
func (r *Registry) GetResourceDescriptor(localName string) (*ResourceDescriptor, bool) {
	rt, ok := r.resources[localName]
	return rt, ok
}

// GetSchema looks up a schema by its namespace URI.
func (r *Registry) GetSchema(namespaceURI string) (*Schema, bool) {
	s, ok := r.schemas[namespaceURI]
	return s, ok
}

// ForEachSchema invokes callback for every registered schema, in no particular order.
func (r *Registry) ForEachSchema(callback func(*Schema)) {
	for _, s := range r.schemas {
		callback(s)
	}
}

// SchemaURIs returns the registered schema URIs in lexical order, primary first when provided.
// Used by the codec to decide schema emission order (spec.md §4.3, "Marshal").
func (r *Registry) SchemaURIs(primary string) []string {
	seen := make(map[string]bool)
	uris := make([]string, 0, len(r.schemas))
	if primary != "" {
		if _, ok := r.schemas[primary]; ok {
			uris = append(uris, primary)
			seen[primary] = true
		}
	}
	rest := make([]string, 0, len(r.schemas))
	for uri := range r.schemas {
		if !seen[uri] {
			rest = append(rest, uri)
		}
	}
	sort.Strings(rest)
	return append(uris, rest...)
}
