package dataview

import (
	"fmt"
	"slices"
	"sort"
)

// SetItems replaces the whole collection. The optional idProperty changes
// the name of the id property, "id" by default.
func (dv *DataView) SetItems(items []Item, idProperty ...string) error {
	if dv.destroyed() {
		return errDestroyed
	}

	previous := dv.idProperty
	if len(idProperty) > 0 && idProperty[0] != "" {
		dv.idProperty = idProperty[0]
	}

	idx, err := dv.buildIndex(items)
	if err != nil {
		dv.idProperty = previous
		return err
	}

	dv.items = slices.Clone(items)
	if dv.items == nil {
		dv.items = []Item{}
	}
	dv.filteredItems = slices.Clone(dv.items)
	dv.idxById = idx
	dv.updated = nil
	dv.filterCache.Clear()
	if dv.batch != nil {
		dv.batch.staleIndex = false
	}

	dv.OnSetItemsCalled.Notify(SetItemsCalledArgs{
		IdProperty: dv.idProperty,
		ItemCount:  len(dv.items),
	})
	dv.Refresh()
	return nil
}

func (dv *DataView) GetItems() []Item {
	return dv.items
}

func (dv *DataView) GetItemCount() int {
	return len(dv.items)
}

func (dv *DataView) GetIdPropertyName() string {
	return dv.idProperty
}

// GetIdxById returns the position of the item in the unfiltered collection.
func (dv *DataView) GetIdxById(id any) (int, error) {
	key, ok := normalizeId(id)
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrInvalidId, id)
	}
	dv.ensureIndex()
	idx, exists := dv.idxById[key]
	if !exists {
		return -1, fmt.Errorf("%w: %v", ErrInvalidId, id)
	}
	return idx, nil
}

// GetItemById returns nil when the id is unknown.
func (dv *DataView) GetItemById(id any) Item {
	idx, err := dv.GetIdxById(id)
	if err != nil {
		return nil
	}
	return dv.items[idx]
}

// GetItemByIdx returns nil when idx is out of range.
func (dv *DataView) GetItemByIdx(idx int) Item {
	if idx < 0 || idx >= len(dv.items) {
		return nil
	}
	return dv.items[idx]
}

func (dv *DataView) AddItem(item Item) error {
	return dv.AddItems([]Item{item})
}

// AddItems appends items at the end of the collection.
func (dv *DataView) AddItems(items []Item) error {
	if dv.destroyed() {
		return errDestroyed
	}
	if err := dv.validateNew(items); err != nil {
		return err
	}

	start := len(dv.items)
	dv.items = append(dv.items, items...)
	dv.indexFrom(start)
	dv.Refresh()
	return nil
}

func (dv *DataView) InsertItem(insertBefore int, item Item) error {
	return dv.InsertItems(insertBefore, []Item{item})
}

// InsertItems inserts items before the given position. Positions out of range
// are clamped to the collection bounds.
func (dv *DataView) InsertItems(insertBefore int, items []Item) error {
	if dv.destroyed() {
		return errDestroyed
	}
	if err := dv.validateNew(items); err != nil {
		return err
	}

	insertBefore = max(0, min(insertBefore, len(dv.items)))
	dv.items = slices.Insert(dv.items, insertBefore, items...)
	dv.updateIdxById(insertBefore)
	dv.filterCache.Clear()
	dv.Refresh()
	return nil
}

// UpdateItem replaces the item stored under id. The new item may carry a
// different id as long as it is not taken.
func (dv *DataView) UpdateItem(id any, item Item) error {
	if dv.destroyed() {
		return errDestroyed
	}
	if err := dv.updateSingleItem(id, item); err != nil {
		return err
	}
	dv.Refresh()
	return nil
}

// UpdateItems applies every update and refreshes once. It stops at the first
// failing update; previous ones are kept.
func (dv *DataView) UpdateItems(ids []any, items []Item) error {
	if dv.destroyed() {
		return errDestroyed
	}
	if len(ids) != len(items) {
		return fmt.Errorf("%w: %d ids for %d items", ErrPrecondition, len(ids), len(items))
	}

	var err error
	for i := range ids {
		err = dv.updateSingleItem(ids[i], items[i])
		if err != nil {
			break
		}
	}
	dv.Refresh()
	return err
}

func (dv *DataView) updateSingleItem(id any, item Item) error {
	key, ok := normalizeId(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidId, id)
	}
	dv.ensureIndex()
	idx, exists := dv.idxById[key]
	if !exists {
		return fmt.Errorf("%w: %v", ErrInvalidId, id)
	}

	newKey, err := dv.keyOf(item)
	if err != nil {
		return fmt.Errorf("cannot update item to associate with a null id: %w", err)
	}

	if newKey != key {
		if _, taken := dv.idxById[newKey]; taken {
			return fmt.Errorf("%w: cannot update item to associate with a non-unique id %v", ErrDuplicateId, item[dv.idProperty])
		}
		delete(dv.idxById, key)
		dv.idxById[newKey] = idx
		delete(dv.updated, key)
		if dv.batch != nil {
			if _, pending := dv.batch.deleteIds[key]; pending {
				delete(dv.batch.deleteIds, key)
				dv.batch.deleteIds[newKey] = struct{}{}
			}
		}
	}

	dv.items[idx] = item
	if dv.updated == nil {
		dv.updated = map[any]struct{}{}
	}
	dv.updated[newKey] = struct{}{}
	return nil
}

func (dv *DataView) DeleteItem(id any) error {
	return dv.DeleteItems([]any{id})
}

// DeleteItems removes the items with the given ids. Every id must exist,
// otherwise nothing is deleted. Inside a bulk update the removal is deferred
// to EndUpdate.
func (dv *DataView) DeleteItems(ids []any) error {
	if dv.destroyed() {
		return errDestroyed
	}
	dv.ensureIndex()

	keys := make([]any, 0, len(ids))
	for _, id := range ids {
		key, ok := normalizeId(id)
		if !ok {
			return fmt.Errorf("%w: %v", ErrInvalidId, id)
		}
		if _, exists := dv.idxById[key]; !exists {
			return fmt.Errorf("%w: %v", ErrInvalidId, id)
		}
		keys = append(keys, key)
	}

	if dv.batch != nil {
		for _, key := range keys {
			dv.batch.deleteIds[key] = struct{}{}
		}
		return nil
	}

	positions := make([]int, 0, len(keys))
	seen := map[any]struct{}{}
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		positions = append(positions, dv.idxById[key])
		delete(dv.idxById, key)
		delete(dv.updated, key)
	}
	if len(positions) == 0 {
		return nil
	}
	sort.Ints(positions)

	dv.removePositions(positions)
	dv.updateIdxById(positions[0])
	dv.filterCache.Clear()
	dv.Refresh()
	return nil
}

// removePositions compacts items dropping the given ascending positions.
func (dv *DataView) removePositions(positions []int) {
	w := positions[0]
	next := 0
	for r := positions[0]; r < len(dv.items); r++ {
		if next < len(positions) && positions[next] == r {
			next++
			continue
		}
		dv.items[w] = dv.items[r]
		w++
	}
	clear(dv.items[w:])
	dv.items = dv.items[:w]
}

// processBulkDelete drops the pending ids in one pass and rebuilds the id
// index, failing when two items share an id.
func (dv *DataView) processBulkDelete(deleteIds map[any]struct{}) error {
	kept := make([]Item, 0, max(0, len(dv.items)-len(deleteIds)))
	idx := make(map[any]int, len(dv.items))
	for _, item := range dv.items {
		key, err := dv.keyOf(item)
		if err != nil {
			return err
		}
		if _, deleted := deleteIds[key]; deleted {
			continue
		}
		if _, dup := idx[key]; dup {
			return fmt.Errorf("%w: each data element must implement a unique '%s' property, %v found twice", ErrDuplicateId, dv.idProperty, item[dv.idProperty])
		}
		idx[key] = len(kept)
		kept = append(kept, item)
	}

	dv.items = kept
	dv.idxById = idx
	for key := range deleteIds {
		delete(dv.updated, key)
	}
	if len(deleteIds) > 0 {
		dv.filterCache.Clear()
	}
	return nil
}

// keyOf extracts and normalizes the id of an item.
func (dv *DataView) keyOf(item Item) (any, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: nil item", ErrMissingId)
	}
	raw, exists := item[dv.idProperty]
	if !exists || raw == nil {
		return nil, fmt.Errorf("%w: property '%s' not found", ErrMissingId, dv.idProperty)
	}
	key, ok := normalizeId(raw)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported id %v (%T)", ErrMissingId, raw, raw)
	}
	return key, nil
}

func (dv *DataView) buildIndex(items []Item) (map[any]int, error) {
	idx := make(map[any]int, len(items))
	for i, item := range items {
		key, err := dv.keyOf(item)
		if err != nil {
			return nil, err
		}
		if _, exists := idx[key]; exists {
			return nil, fmt.Errorf("%w: each data element must implement a unique '%s' property, %v found twice", ErrDuplicateId, dv.idProperty, item[dv.idProperty])
		}
		idx[key] = i
	}
	return idx, nil
}

// validateNew checks that items can be added without breaking the id index.
func (dv *DataView) validateNew(items []Item) error {
	dv.ensureIndex()
	seen := make(map[any]struct{}, len(items))
	for _, item := range items {
		key, err := dv.keyOf(item)
		if err != nil {
			return err
		}
		if _, exists := dv.idxById[key]; exists {
			return fmt.Errorf("%w: %v", ErrDuplicateId, item[dv.idProperty])
		}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("%w: %v", ErrDuplicateId, item[dv.idProperty])
		}
		seen[key] = struct{}{}
	}
	return nil
}

// updateIdxById reindexes items from start on. Inside a bulk update the
// work is postponed until the index is needed.
func (dv *DataView) updateIdxById(start int) {
	if dv.batch != nil {
		dv.batch.staleIndex = true
		return
	}
	dv.indexFrom(start)
}

func (dv *DataView) indexFrom(start int) {
	for i := start; i < len(dv.items); i++ {
		key, err := dv.keyOf(dv.items[i])
		if err != nil {
			continue
		}
		dv.idxById[key] = i
	}
}

func (dv *DataView) ensureIndex() {
	if dv.batch == nil || !dv.batch.staleIndex {
		return
	}
	dv.batch.staleIndex = false
	clear(dv.idxById)
	dv.indexFrom(0)
}
