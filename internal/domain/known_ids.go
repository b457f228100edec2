package domain

import "slices"

// KnownIDs is the set of video IDs already ingested into a collection.
type KnownIDs map[string]struct{}

func NewKnownIDs(ids ...string) KnownIDs {
	set := make(KnownIDs, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func (k KnownIDs) Has(id string) bool {
	_, ok := k[id]
	return ok
}

// Add returns false if id was already present.
func (k KnownIDs) Add(id string) bool {
	if k.Has(id) {
		return false
	}
	k[id] = struct{}{}
	return true
}

func (k KnownIDs) Len() int {
	return len(k)
}

// Sorted returns the IDs in lexical order.
func (k KnownIDs) Sorted() []string {
	ids := make([]string, 0, len(k))
	for id := range k {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
