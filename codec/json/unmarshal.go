package json

import (
	"encoding/json"
	"fmt"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

func (Codec) Unmarshal(data []byte, resourceName string, registry *spec.Registry) (*prop.Resource, error) {
	descriptor, ok := registry.GetResourceDescriptor(resourceName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown resource %q", spec.ErrInvalidResource, resourceName)
	}
	schema, ok := registry.GetSchema(descriptor.Schema)
	if !ok {
		return nil, fmt.Errorf("%w: resource %q has no registered schema", spec.ErrInvalidResource, resourceName)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", spec.ErrInvalidResource, err)
	}

	resource := prop.NewResource(descriptor, schema)
	delete(raw, "schemas")

	for key, value := range raw {
		// A nested object keyed by a schema URI is either an extension block for a schema this
		// registry knows (unwrap it) or one it doesn't (preserve it verbatim, per DESIGN.md's
		// "unknown schemas on PUT" decision).
		if block, isObject := value.(map[string]interface{}); isObject {
			if _, isKnownSchema := registry.GetSchema(key); isKnownSchema {
				for k2, v2 := range block {
					if err := assign(resource, k2, v2); err != nil {
						return nil, err
					}
				}
				continue
			}
			if looksLikeSchemaURI(key) {
				resource.SetExtra(key, block)
				continue
			}
		}
		if err := assign(resource, key, value); err != nil {
			return nil, err
		}
	}

	return resource, nil
}

func assign(resource *prop.Resource, name string, value interface{}) error {
	p := resource.Get(name)
	if p == nil {
		// Unknown top-level attribute: dropped, mirroring the XML variant's step 3
		// ("unknown elements are dropped") per spec.md §4.3.
		return nil
	}
	return p.Replace(value)
}

func looksLikeSchemaURI(key string) bool {
	return len(key) > 4 && (key[:4] == "urn:" || key[:4] == "http")
}
