package dataview

import (
	"fmt"
	"slices"

	"github.com/google/btree"
)

// Comparer orders two items: negative when a goes first, zero when equal.
type Comparer func(a, b Item) int

// Sort orders the collection with a stable sort. Items that compare equal
// keep their relative order in both directions.
func (dv *DataView) Sort(comparer Comparer, ascending bool) {
	if dv.destroyed() {
		return
	}
	dv.sortAsc = ascending
	dv.sortComparer = comparer
	dv.fastSortField = ""

	if !ascending {
		slices.Reverse(dv.items)
	}
	slices.SortStableFunc(dv.items, comparer)
	if !ascending {
		slices.Reverse(dv.items)
	}

	dv.reindex()
	dv.Refresh()
}

type fastSortKey struct {
	value any
	pos   int
}

// FastSort orders the collection by the value of a single field. Keys are
// loaded into a btree ordered by (value, original position) which keeps the
// result stable.
func (dv *DataView) FastSort(field string, ascending bool) {
	if dv.destroyed() {
		return
	}
	dv.sortAsc = ascending
	dv.sortComparer = nil
	dv.fastSortField = field

	if !ascending {
		slices.Reverse(dv.items)
	}

	tree := btree.NewG(32, func(a, b fastSortKey) bool {
		if c := CompareValues(a.value, b.value); c != 0 {
			return c < 0
		}
		return a.pos < b.pos
	})
	for i, item := range dv.items {
		value, _ := item.Get(field)
		tree.ReplaceOrInsert(fastSortKey{value: value, pos: i})
	}

	sorted := make([]Item, 0, len(dv.items))
	tree.Ascend(func(k fastSortKey) bool {
		sorted = append(sorted, dv.items[k.pos])
		return true
	})
	dv.items = sorted

	if !ascending {
		slices.Reverse(dv.items)
	}

	dv.reindex()
	dv.Refresh()
}

// ReSort repeats the last Sort or FastSort.
func (dv *DataView) ReSort() {
	if dv.sortComparer != nil {
		dv.Sort(dv.sortComparer, dv.sortAsc)
	} else if dv.fastSortField != "" {
		dv.FastSort(dv.fastSortField, dv.sortAsc)
	}
}

// SortedAddItem inserts the item at the position the current comparer
// assigns to it. It needs a previous Sort.
func (dv *DataView) SortedAddItem(item Item) error {
	if dv.destroyed() {
		return errDestroyed
	}
	if dv.sortComparer == nil {
		return fmt.Errorf("%w: sortedAddItem requires a sort comparer, use Sort()", ErrPrecondition)
	}
	if err := dv.validateNew([]Item{item}); err != nil {
		return err
	}
	return dv.InsertItem(dv.sortedIndex(item), item)
}

// SortedUpdateItem updates the item and moves it when its sort position
// changed. The new item must keep the same id.
func (dv *DataView) SortedUpdateItem(id any, item Item) error {
	if dv.destroyed() {
		return errDestroyed
	}
	if dv.sortComparer == nil {
		return fmt.Errorf("%w: sortedUpdateItem requires a sort comparer, use Sort()", ErrPrecondition)
	}

	key, ok := normalizeId(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidId, id)
	}
	newKey, err := dv.keyOf(item)
	if err != nil {
		return err
	}
	if newKey != key {
		return fmt.Errorf("%w: sortedUpdateItem does not allow changing the id (%v to %v)", ErrInvalidId, id, item[dv.idProperty])
	}

	dv.ensureIndex()
	idx, exists := dv.idxById[key]
	if !exists {
		return fmt.Errorf("%w: %v", ErrInvalidId, id)
	}

	if dv.sortComparer(dv.items[idx], item) == 0 {
		return dv.UpdateItem(id, item)
	}

	dv.items = slices.Delete(dv.items, idx, idx+1)
	to := dv.sortedIndex(item)
	dv.items = slices.Insert(dv.items, to, item)
	if dv.updated == nil {
		dv.updated = map[any]struct{}{}
	}
	dv.updated[key] = struct{}{}
	dv.updateIdxById(min(idx, to))
	dv.filterCache.Clear()
	dv.Refresh()
	return nil
}

// sortedIndex binary searches the insert position for item, after every
// item that compares equal.
func (dv *DataView) sortedIndex(item Item) int {
	low, high := 0, len(dv.items)
	for low < high {
		mid := int(uint(low+high) >> 1)
		c := dv.sortComparer(dv.items[mid], item)
		if !dv.sortAsc {
			c = -c
		}
		if c <= 0 {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

func (dv *DataView) reindex() {
	clear(dv.idxById)
	dv.indexFrom(0)
	if dv.batch != nil {
		dv.batch.staleIndex = false
	}
	dv.filterCache.Clear()
}
