package domain

import "sort"

// ChangeSet maps a parameter name to the new value an update applied.
type ChangeSet map[string]any

// Has reports whether the named field changed.
func (c ChangeSet) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Remove drops a field from the set.
func (c ChangeSet) Remove(name string) {
	delete(c, name)
}

// Merge copies every entry of other into c, overwriting existing keys.
func (c ChangeSet) Merge(other ChangeSet) {
	for k, v := range other {
		c[k] = v
	}
}

// IsEmpty reports whether nothing changed.
func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}

// Keys returns the changed field names in sorted order.
func (c ChangeSet) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
