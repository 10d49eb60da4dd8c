package models

import "sort"

// Patch is a partial update keyed by column name. A nil value clears the column.
type Patch map[string]any

// Keys returns the patch columns in a stable order.
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
