package memtable

import "github.com/mabel-dev/opteryx/connector"

// Catalog is a name-keyed registry of in-memory tables, grounded on
// the teacher's mem.Database (a name-to-table map with no locking
// needed since fixture tables never mutate after registration).
type Catalog struct {
	tables map[string]*Table
}

// NewCatalog builds a Catalog preloaded with the built-in $planets
// and $satellites sample tables (§8.1).
func NewCatalog() *Catalog {
	c := &Catalog{tables: make(map[string]*Table)}
	c.Register(planetsTable())
	c.Register(satellitesTable())
	return c
}

// Register adds or replaces t under its own name.
func (c *Catalog) Register(t *Table) {
	c.tables[t.Name()] = t
}

// Get returns the named table as a connector.Connector.
func (c *Catalog) Get(name string) (connector.Connector, bool) {
	t, ok := c.tables[name]
	if !ok {
		return nil, false
	}
	return t, true
}
