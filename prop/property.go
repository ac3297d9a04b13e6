// Package prop implements the SCIM attribute value model: Property holds one attribute's
// value(s) as described by a spec.AttributeDescriptor, and Resource composes properties from
// one or more schemas into the object a codec marshals and a query evaluates against.
package prop

import "github.com/Nabagata/scim/spec"

// Property holds one attribute's value(s). Concrete implementations are returned by NewProperty
// and never constructed directly by callers outside this package.
//
// Unlike a property tree built from reflection or struct tags, every Property here is built and
// mutated through its descriptor, so a value can never drift out of agreement with its type,
// plurality or sub-attribute set (spec.md §3, invariants 1-3).
type Property interface {
	// Descriptor returns the non-nil descriptor this property was constructed from.
	Descriptor() *spec.AttributeDescriptor
	// Raw returns the value in Go's native representation, or nil when unassigned:
	//	string, dateTime, binary -> string
	//	boolean                  -> bool
	//	integer                  -> int64
	//	complex                  -> map[string]interface{}
	//	plural                   -> []interface{}
	Raw() interface{}
	// Unassigned reports whether the property carries no value. A complex property is unassigned
	// when every sub property is unassigned; a plural property is unassigned when it has no elements.
	Unassigned() bool
	// Clone returns a deep copy that shares no mutable state with the receiver.
	Clone() Property
	// Add appends value for a plural property, or is equivalent to Replace for everything else.
	Add(value interface{}) error
	// Replace overwrites the property's value. A nil value is equivalent to Delete.
	Replace(value interface{}) error
	// Delete clears the property back to its unassigned state.
	Delete()
	// CountChildren returns the number of contained properties: sub-attributes for a complex
	// property, elements for a plural property, zero for everything else.
	CountChildren() int
	// ForEachChild invokes callback for every contained property, in order. callback's index
	// argument is the element index for plural properties and meaningless otherwise.
	ForEachChild(callback func(index int, child Property) error) error
	// FindChild returns the first contained property satisfying criteria, or nil.
	FindChild(criteria func(child Property) bool) Property
}

// Container is implemented by properties that hold named sub properties: complex properties,
// and the Resource that roots a schema's top-level attributes.
type Container interface {
	Property
	// Get returns the named sub property, or nil when the descriptor has no such sub-attribute.
	Get(name string) Property
}

// Elemental is implemented by plural properties, whose children are indexed rather than named.
type Elemental interface {
	Property
	// ElementAt returns the element property at index, or nil when out of range.
	ElementAt(index int) Property
	// AppendElement adds a new, unassigned element property and returns it.
	AppendElement() Property
	// RemoveElement deletes the element property at index.
	RemoveElement(index int)
}
