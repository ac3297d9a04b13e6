package prop

import "github.com/Nabagata/scim/spec"

// Resource is the top-level container for one SCIM object: an ordered set of attributes drawn
// from a single schema, addressed through the resource descriptor that names its endpoint
// (spec.md §3, "SCIMObject ... an ordered schema -> name -> SCIMAttribute map").
type Resource struct {
	descriptor *spec.ResourceDescriptor
	schema     *spec.Schema
	data       *complexProperty
	// extra holds the raw payload of any schema block a codec saw at unmarshal time under a
	// schema URI not present in the Registry. PUT preserves these verbatim instead of dropping
	// them (DESIGN.md, "unknown schemas on PUT").
	extra map[string]map[string]interface{}
}

// NewResource builds an empty Resource shaped by schema's top-level attributes.
func NewResource(descriptor *spec.ResourceDescriptor, schema *spec.Schema) *Resource {
	root := &spec.AttributeDescriptor{Schema: schema.ID, Name: descriptor.Name, DataType: spec.TypeComplex}
	return &Resource{
		descriptor: descriptor,
		schema:     schema,
		data:       newComplex(root, schema.Attributes),
	}
}

func (r *Resource) ResourceDescriptor() *spec.ResourceDescriptor { return r.descriptor }

func (r *Resource) Schema() *spec.Schema { return r.schema }

// Root returns the Container holding every top-level attribute.
func (r *Resource) Root() Container { return r.data }

// Get returns the named top-level attribute's property, or nil.
func (r *Resource) Get(name string) Property { return r.data.Get(name) }

// ForEachAttribute visits every top-level attribute in schema declaration order.
func (r *Resource) ForEachAttribute(callback func(attr *spec.AttributeDescriptor, p Property) error) error {
	return r.data.ForEachChild(func(_ int, child Property) error {
		return callback(child.Descriptor(), child)
	})
}

func (r *Resource) Clone() *Resource {
	c := &Resource{
		descriptor: r.descriptor,
		schema:     r.schema,
		data:       r.data.Clone().(*complexProperty),
	}
	if len(r.extra) > 0 {
		c.extra = make(map[string]map[string]interface{}, len(r.extra))
		for uri, block := range r.extra {
			copied := make(map[string]interface{}, len(block))
			for k, v := range block {
				copied[k] = v
			}
			c.extra[uri] = copied
		}
	}
	return c
}

// SetExtra records the raw payload of an unregistered schema block seen at unmarshal time.
func (r *Resource) SetExtra(schemaURI string, block map[string]interface{}) {
	if r.extra == nil {
		r.extra = make(map[string]map[string]interface{})
	}
	r.extra[schemaURI] = block
}

// ForEachExtra visits every unregistered schema block carried by the resource, keyed by its URI.
func (r *Resource) ForEachExtra(callback func(schemaURI string, block map[string]interface{})) {
	for uri, block := range r.extra {
		callback(uri, block)
	}
}

// ID returns the resource's "id" attribute value, or "" when unassigned.
func (r *Resource) ID() string {
	p := r.Get("id")
	if p == nil || p.Unassigned() {
		return ""
	}
	s, _ := p.Raw().(string)
	return s
}
