package dataview

// SelectionGrid is the part of a grid the selection adapter talks to.
// SetSelectedRows is expected to fire OnSelectedRowsChanged.
type SelectionGrid interface {
	GetSelectedRows() []int
	SetSelectedRows(rows []int)
	MultiSelect() bool
	OnSelectedRowsChanged() *Event[SelectedRowsChangedArgs]
}

// CellStylesGrid is the part of a grid the cell style adapter talks to.
// SetCellCssStyles is expected to fire OnCellCssStylesChanged.
type CellStylesGrid interface {
	GetCellCssStyles(key string) map[int]StyleHash
	SetCellCssStyles(key string, hash map[int]StyleHash)
	OnCellCssStylesChanged() *Event[CellCssStylesChangedArgs]
}

// StyleHash maps column ids to css classes.
type StyleHash map[string]string

type SelectedRowsChangedArgs struct {
	Rows []int
}

// CellCssStylesChangedArgs with a nil Hash means the key was removed.
type CellCssStylesChangedArgs struct {
	Key  string
	Hash map[int]StyleHash
}

type SelectedRowIdsChangedArgs struct {
	Ids []any
	// Rows are the visible rows of Ids
	Rows []int
	// Added is false when Ids were removed from the selection
	Added          bool
	SelectedRowIds []any
	FilteredIds    []any
}

type SetSelectedIdsOptions struct {
	// Removing drops the ids from the selection instead of adding them
	Removing bool
	// SkipEvent does not fire OnSelectedRowIdsChanged
	SkipEvent bool
	// SkipGridUpdate leaves the grid selection untouched
	SkipGridUpdate bool
}

type selectionMode int

const (
	selectionAdd selectionMode = iota
	selectionRemove
)

type selectionChange struct {
	ids  []any
	mode selectionMode
}

// SyncGridSelection keeps the grid selection attached to item ids, so that
// selected items stay selected when rows move. With preserveHidden, items
// filtered out keep their selection. With preserveHiddenOnSelectionChange a
// selection made in the grid keeps hidden selected items too (multi select
// grids only).
func (dv *DataView) SyncGridSelection(grid SelectionGrid, preserveHidden, preserveHiddenOnSelectionChange bool) *Event[SelectedRowIdsChangedArgs] {
	dv.selectionGrid = grid
	dv.selectedRowIds = dv.MapRowsToIds(grid.GetSelectedRows())

	dv.selectionChange = func(c selectionChange) {
		if dv.selectionInHandler {
			return
		}
		dv.selectionInHandler = true
		defer func() { dv.selectionInHandler = false }()

		preserve := preserveHiddenOnSelectionChange && grid.MultiSelect()
		switch c.mode {
		case selectionAdd:
			if preserve {
				dv.setSelectedRowIds(append(dv.hiddenSelectedIds(), c.ids...))
			} else {
				dv.setSelectedRowIds(c.ids)
			}
		case selectionRemove:
			if preserve {
				dv.setSelectedRowIds(withoutIds(dv.selectedRowIds, c.ids))
			} else {
				dv.setSelectedRowIds([]any{})
			}
		}
	}

	update := func(RowsOrCountChangedArgs) {
		if len(dv.selectedRowIds) == 0 || dv.selectionInHandler {
			return
		}
		selectedRows := dv.MapIdsToRows(dv.selectedRowIds)
		if !preserveHidden {
			ids := dv.MapRowsToIds(selectedRows)
			if !sameIds(ids, dv.selectedRowIds) {
				dv.setSelectedRowIds(ids)
				dv.notifySelectedRowIds(ids, selectedRows, true)
			}
		}

		dv.selectionInHandler = true
		grid.SetSelectedRows(selectedRows)
		dv.selectionInHandler = false
	}

	gridSubscription := grid.OnSelectedRowsChanged().Subscribe(func(args SelectedRowsChangedArgs) {
		if dv.selectionInHandler {
			return
		}
		ids := dv.MapRowsToIds(args.Rows)
		dv.selectionChange(selectionChange{ids: ids, mode: selectionAdd})
		dv.notifySelectedRowIds(ids, args.Rows, true)
	})
	viewSubscription := dv.OnRowsOrCountChanged.Subscribe(update)
	dv.syncSubscriptions = append(dv.syncSubscriptions, gridSubscription, viewSubscription)

	return dv.OnSelectedRowIdsChanged
}

// SetSelectedIds adds (or removes) ids to the selection and mirrors the
// result into the synced grid.
func (dv *DataView) SetSelectedIds(ids []any, options SetSelectedIdsOptions) {
	mode := selectionAdd
	if options.Removing {
		mode = selectionRemove
	}

	if dv.selectionChange != nil {
		dv.selectionChange(selectionChange{ids: ids, mode: mode})
	} else if options.Removing {
		dv.setSelectedRowIds(withoutIds(dv.selectedRowIds, ids))
	} else {
		dv.setSelectedRowIds(append(withoutIds(dv.selectedRowIds, ids), ids...))
	}

	if !options.SkipEvent {
		dv.notifySelectedRowIds(ids, dv.MapIdsToRows(ids), !options.Removing)
	}

	if !options.SkipGridUpdate && dv.selectionGrid != nil {
		dv.selectionInHandler = true
		dv.selectionGrid.SetSelectedRows(dv.MapIdsToRows(dv.selectedRowIds))
		dv.selectionInHandler = false
	}
}

func (dv *DataView) notifySelectedRowIds(ids []any, rows []int, added bool) {
	dv.OnSelectedRowIdsChanged.Notify(SelectedRowIdsChangedArgs{
		Ids:            ids,
		Rows:           rows,
		Added:          added,
		SelectedRowIds: dv.selectedRowIds,
		FilteredIds:    dv.GetAllSelectedFilteredIds(),
	})
}

func (dv *DataView) setSelectedRowIds(ids []any) {
	if sameIds(dv.selectedRowIds, ids) {
		return
	}
	dv.selectedRowIds = ids
}

// hiddenSelectedIds are the selected ids without a visible row.
func (dv *DataView) hiddenSelectedIds() []any {
	hidden := []any{}
	for _, id := range dv.selectedRowIds {
		if _, visible := dv.GetRowById(id); !visible {
			hidden = append(hidden, id)
		}
	}
	return hidden
}

// GetAllSelectedIds returns every selected id, visible or not.
func (dv *DataView) GetAllSelectedIds() []any {
	return dv.selectedRowIds
}

// GetAllSelectedItems returns the selected items still in the collection.
func (dv *DataView) GetAllSelectedItems() []Item {
	items := []Item{}
	for _, id := range dv.selectedRowIds {
		if item := dv.GetItemById(id); item != nil {
			items = append(items, item)
		}
	}
	return items
}

// GetAllSelectedFilteredIds returns the selected ids that pass the filter,
// on any page.
func (dv *DataView) GetAllSelectedFilteredIds() []any {
	ids := []any{}
	for _, item := range dv.GetAllSelectedFilteredItems() {
		ids = append(ids, item[dv.idProperty])
	}
	return ids
}

func (dv *DataView) GetAllSelectedFilteredItems() []Item {
	items := []Item{}
	if len(dv.selectedRowIds) == 0 {
		return items
	}
	selected := idSet(dv.selectedRowIds)
	for _, item := range dv.filteredItems {
		key, err := dv.keyOf(item)
		if err != nil {
			continue
		}
		if _, ok := selected[key]; ok {
			items = append(items, item)
		}
	}
	return items
}

// SyncGridCellCssStyles keeps the grid cell styles registered under key
// attached to item ids, so that they follow items when rows move. Removing
// the key from the grid ends the synchronization.
func (dv *DataView) SyncGridCellCssStyles(grid CellStylesGrid, key string) {
	var hashById map[any]StyleHash
	inHandler := false

	storeCellCssStyles := func(hash map[int]StyleHash) {
		hashById = map[any]StyleHash{}
		for row, style := range hash {
			if row < 0 || row >= len(dv.rows) {
				continue
			}
			item, ok := dv.rows[row].(Item)
			if !ok {
				continue
			}
			if id, err := dv.keyOf(item); err == nil {
				hashById[id] = style
			}
		}
	}

	update := func(RowsOrCountChangedArgs) {
		if hashById == nil {
			return
		}
		dv.ensureRowsByIdCache()
		newHash := map[int]StyleHash{}
		for id, style := range hashById {
			if row, ok := dv.rowsById[id]; ok {
				newHash[row] = style
			}
		}
		inHandler = true
		grid.SetCellCssStyles(key, newHash)
		inHandler = false
	}

	storeCellCssStyles(grid.GetCellCssStyles(key))

	var gridSubscription, viewSubscription *Subscription
	gridSubscription = grid.OnCellCssStylesChanged().Subscribe(func(args CellCssStylesChangedArgs) {
		if inHandler || args.Key != key {
			return
		}
		if args.Hash != nil {
			storeCellCssStyles(args.Hash)
			return
		}
		hashById = nil
		gridSubscription.Unsubscribe()
		viewSubscription.Unsubscribe()
	})
	viewSubscription = dv.OnRowsOrCountChanged.Subscribe(update)
	dv.syncSubscriptions = append(dv.syncSubscriptions, gridSubscription, viewSubscription)
}

func idSet(ids []any) map[any]struct{} {
	set := make(map[any]struct{}, len(ids))
	for _, id := range ids {
		if key, ok := normalizeId(id); ok {
			set[key] = struct{}{}
		}
	}
	return set
}

func withoutIds(ids, remove []any) []any {
	drop := idSet(remove)
	kept := []any{}
	for _, id := range ids {
		key, ok := normalizeId(id)
		if !ok {
			continue
		}
		if _, dropped := drop[key]; !dropped {
			kept = append(kept, id)
		}
	}
	return kept
}

// sameIds compares two id lists as sets.
func sameIds(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	set := idSet(a)
	for _, id := range b {
		key, ok := normalizeId(id)
		if !ok {
			return false
		}
		if _, found := set[key]; !found {
			return false
		}
	}
	return true
}
