package service

// childDiff is the three-way partition a synchronizer applies to one child
// collection of the product aggregate.
type childDiff[T any] struct {
	toCreate []T
	toUpdate []T
	toDelete []uint
}

// diffChildren partitions payload items against the set of existing child row
// IDs. Items without a key are creations, items carrying a key are updates
// (whether the key is valid is the synchronizer's problem, not the diff's),
// and existing IDs not claimed by any item are deletions.
//
// An empty items slice therefore deletes every existing child. That is
// deliberate: "empty list" means delete-all, while "key absent from the
// payload" never reaches this function at all.
func diffChildren[T any](existingIDs []uint, items []T, keyOf func(T) (uint, bool)) childDiff[T] {
	var d childDiff[T]

	keyed := make(map[uint]struct{}, len(items))
	for _, item := range items {
		id, ok := keyOf(item)
		if !ok {
			d.toCreate = append(d.toCreate, item)
			continue
		}
		keyed[id] = struct{}{}
		d.toUpdate = append(d.toUpdate, item)
	}

	for _, id := range existingIDs {
		if _, ok := keyed[id]; !ok {
			d.toDelete = append(d.toDelete, id)
		}
	}

	return d
}

// dedupStrings removes duplicates preserving order of first occurrence.
func dedupStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
