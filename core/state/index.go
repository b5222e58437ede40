package state

// Entry identifies one tracked resource.
type Entry struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Index is an immutable set of tracked resources. The zero value and a nil
// *Index contain nothing.
type Index struct {
	entries map[Entry]struct{}
}

// NewIndex builds an index from snapshot entries. Duplicates collapse.
func NewIndex(entries []Entry) *Index {
	idx := &Index{entries: make(map[Entry]struct{}, len(entries))}
	for _, e := range entries {
		idx.entries[e] = struct{}{}
	}
	return idx
}

// Contains reports whether a resource of the given type and id is tracked.
func (i *Index) Contains(resourceType, resourceID string) bool {
	if i == nil {
		return false
	}
	_, ok := i.entries[Entry{Type: resourceType, ID: resourceID}]
	return ok
}

// Len returns the number of distinct tracked resources.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}
