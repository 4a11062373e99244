package domain

// Resource is a bookable catalog item, e.g. a camera or a meeting room
type Resource struct {
	ID       string
	Name     string
	Category string
}

// Catalog is the immutable set of bookable resources
type Catalog struct {
	items []Resource
	byID  map[string]Resource
}

// NewCatalog builds a catalog preserving the order of items
func NewCatalog(items []Resource) *Catalog {
	c := &Catalog{
		items: make([]Resource, len(items)),
		byID:  make(map[string]Resource, len(items)),
	}
	copy(c.items, items)
	for _, r := range items {
		c.byID[r.ID] = r
	}
	return c
}

// Get returns the resource with the given id
func (c *Catalog) Get(id string) (Resource, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Contains reports whether id is known. An empty catalog accepts any id.
func (c *Catalog) Contains(id string) bool {
	if c == nil || len(c.items) == 0 {
		return true
	}
	_, ok := c.byID[id]
	return ok
}

// All returns a copy of the catalog items
func (c *Catalog) All() []Resource {
	if c == nil {
		return nil
	}
	out := make([]Resource, len(c.items))
	copy(out, c.items)
	return out
}
