package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type diffItem struct {
	id   *uint
	name string
}

func diffItemKey(item diffItem) (uint, bool) {
	if item.id == nil {
		return 0, false
	}
	return *item.id, true
}

func uintPtr(v uint) *uint {
	return &v
}

func TestDiffChildren(t *testing.T) {
	tests := []struct {
		name        string
		existingIDs []uint
		items       []diffItem
		wantCreate  int
		wantUpdate  int
		wantDelete  []uint
	}{
		{
			name:        "All new items",
			existingIDs: nil,
			items:       []diffItem{{name: "a"}, {name: "b"}},
			wantCreate:  2,
		},
		{
			name:        "Keyed items are updates",
			existingIDs: []uint{1, 2},
			items:       []diffItem{{id: uintPtr(1)}, {id: uintPtr(2)}},
			wantUpdate:  2,
		},
		{
			name:        "Unclaimed existing IDs are deletions",
			existingIDs: []uint{1, 2, 3},
			items:       []diffItem{{id: uintPtr(2)}},
			wantUpdate:  1,
			wantDelete:  []uint{1, 3},
		},
		{
			name:        "Mixed create, update and delete",
			existingIDs: []uint{10, 20},
			items:       []diffItem{{id: uintPtr(10)}, {name: "new"}},
			wantCreate:  1,
			wantUpdate:  1,
			wantDelete:  []uint{20},
		},
		{
			name:        "Empty payload deletes everything",
			existingIDs: []uint{1, 2, 3},
			items:       nil,
			wantDelete:  []uint{1, 2, 3},
		},
		{
			name:        "Keys not in existing set still count as updates",
			existingIDs: []uint{1},
			items:       []diffItem{{id: uintPtr(99)}},
			wantUpdate:  1,
			wantDelete:  []uint{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diffChildren(tt.existingIDs, tt.items, diffItemKey)

			assert.Len(t, d.toCreate, tt.wantCreate)
			assert.Len(t, d.toUpdate, tt.wantUpdate)
			assert.ElementsMatch(t, tt.wantDelete, d.toDelete)
		})
	}
}

func TestDiffChildrenPartitionIsComplete(t *testing.T) {
	existing := []uint{1, 2, 3, 4}
	items := []diffItem{
		{id: uintPtr(2)},
		{id: uintPtr(4)},
		{name: "x"},
		{name: "y"},
	}

	d := diffChildren(existing, items, diffItemKey)

	// Every payload item lands in exactly one bucket
	assert.Equal(t, len(items), len(d.toCreate)+len(d.toUpdate))
	// Every existing ID is either claimed by an update or deleted
	assert.Equal(t, len(existing), len(d.toUpdate)+len(d.toDelete))
}

func TestDedupStrings(t *testing.T) {
	assert.Equal(t, []string{"S", "M", "L"}, dedupStrings([]string{"S", "M", "S", "L", "M"}))
	assert.Empty(t, dedupStrings(nil))
}

func TestDedupIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, dedupIDs([]uint{3, 1, 3, 2, 1}))
}
