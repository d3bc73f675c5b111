package builder

import (
	"reflect"
)

// descriptorCache maps Go types to their descriptors. A descriptor is
// cached before its fields are described, so recursive types find it.
type descriptorCache struct {
	byType     map[reflect.Type]*TypeDescriptor // Type → Descriptor
	byName     map[string]reflect.Type          // Name → Type (for conflict checks)
	nameByType map[reflect.Type]string          // Type → Name
}

// newDescriptorCache creates a new descriptor cache.
func newDescriptorCache() *descriptorCache {
	return &descriptorCache{
		byType:     make(map[reflect.Type]*TypeDescriptor),
		byName:     make(map[string]reflect.Type),
		nameByType: make(map[reflect.Type]string),
	}
}

// get returns the cached descriptor for t, or nil.
func (c *descriptorCache) get(t reflect.Type) *TypeDescriptor {
	return c.byType[t]
}

// set caches a descriptor for t under name.
func (c *descriptorCache) set(t reflect.Type, name string, d *TypeDescriptor) {
	c.byType[t] = d
	if name != "" {
		c.byName[name] = t
		c.nameByType[t] = name
	}
}

// conflicts reports whether name is taken by a type other than t.
func (c *descriptorCache) conflicts(name string, t reflect.Type) bool {
	existing, ok := c.byName[name]
	return ok && existing != t
}
