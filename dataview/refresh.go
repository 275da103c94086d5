package dataview

// Refresh recomputes the visible rows and notifies what changed. It does
// nothing while an update is open (see BeginUpdate).
func (dv *DataView) Refresh() {
	if dv.suspend || dv.destroyed() {
		return
	}

	previousPaging := dv.GetPagingInfo()
	previousRows := dv.rows
	previousTotalRows := dv.totalRows

	newRows := dv.recalc(dv.items)

	// the page can only run out of rows if the filtered set shrank under it
	if dv.pageSize > 0 && dv.totalRows < dv.pageNum*dv.pageSize {
		dv.pageNum = max(0, ceilDiv(dv.totalRows, dv.pageSize)-1)
		newRows = dv.recalc(dv.items)
	}

	diff := dv.getRowDiffs(previousRows, newRows)
	dv.rows = newRows
	dv.rowsById = nil

	dv.updated = nil
	dv.prevRefreshHints = dv.refreshHints
	dv.refreshHints = RefreshHints{}

	if previousTotalRows != dv.totalRows {
		if dv.OnBeforePagingInfoChanged.Notify(previousPaging) {
			dv.OnPagingInfoChanged.Notify(dv.GetPagingInfo())
		}
	}

	countChanged := len(previousRows) != len(dv.rows)
	if countChanged {
		dv.OnRowCountChanged.Notify(RowCountChangedArgs{
			Previous:             len(previousRows),
			Current:              len(dv.rows),
			ItemCount:            len(dv.items),
			CallingOnRowsChanged: len(diff) > 0,
		})
	}
	if len(diff) > 0 {
		dv.OnRowsChanged.Notify(RowsChangedArgs{
			Rows:                    diff,
			ItemCount:               len(dv.items),
			CalledOnRowCountChanged: countChanged,
		})
	}
	if countChanged || len(diff) > 0 {
		dv.OnRowsOrCountChanged.Notify(RowsOrCountChangedArgs{
			RowsDiff:         diff,
			PreviousRowCount: len(previousRows),
			CurrentRowCount:  len(dv.rows),
			ItemCount:        len(dv.items),
			RowCountChanged:  countChanged,
			RowsChanged:      len(diff) > 0,
		})
	}
}

func (dv *DataView) recalc(items []Item) []Row {
	if dv.refreshHints.IsFilterNarrowing != dv.prevRefreshHints.IsFilterNarrowing ||
		dv.refreshHints.IsFilterExpanding != dv.prevRefreshHints.IsFilterExpanding {
		dv.filterCache.Clear()
	}

	total, page := dv.getFilteredAndPagedItems(items)
	dv.totalRows = total

	dv.groups = nil
	if len(dv.groupingInfos) > 0 {
		dv.groups = dv.extractGroups(page, nil)
		if len(dv.groups) > 0 {
			return dv.flattenGroupedRows(dv.groups, 0)
		}
	}

	rows := make([]Row, len(page))
	for i, item := range page {
		rows[i] = item
	}
	return rows
}

// getRowDiffs lists the positions whose rendering changed between two row
// lists, honoring the IgnoreDiffs hints.
func (dv *DataView) getRowDiffs(rows, newRows []Row) []int {
	diff := []int{}
	from := 0
	to := max(len(rows), len(newRows))
	if dv.refreshHints.IgnoreDiffsBefore > 0 {
		from = max(0, min(len(newRows), dv.refreshHints.IgnoreDiffsBefore))
	}
	if dv.refreshHints.IgnoreDiffsAfter > 0 {
		to = min(len(newRows), max(0, dv.refreshHints.IgnoreDiffsAfter))
	}

	grouped := len(dv.groupingInfos) > 0
	for i := from; i < to; i++ {
		if i >= len(rows) || i >= len(newRows) {
			diff = append(diff, i)
			continue
		}
		if dv.rowChanged(rows[i], newRows[i], grouped) {
			diff = append(diff, i)
		}
	}
	return diff
}

func (dv *DataView) rowChanged(old, current Row, grouped bool) bool {
	oldGroup, oldIsGroup := old.(*Group)
	currentGroup, currentIsGroup := current.(*Group)
	_, oldIsTotals := old.(*GroupTotals)
	_, currentIsTotals := current.(*GroupTotals)

	if grouped && oldIsGroup != currentIsGroup {
		return true
	}
	if currentIsGroup {
		return !currentGroup.Equals(oldGroup)
	}
	if oldIsGroup || oldIsTotals || currentIsTotals {
		return true
	}

	oldItem, _ := old.(Item)
	currentItem, _ := current.(Item)
	oldKey, err := dv.keyOf(oldItem)
	if err != nil {
		return true
	}
	currentKey, err := dv.keyOf(currentItem)
	if err != nil {
		return true
	}
	if oldKey != currentKey {
		return true
	}
	_, updated := dv.updated[currentKey]
	return updated
}

// GetLength is the number of visible rows.
func (dv *DataView) GetLength() int {
	return len(dv.rows)
}

// GetItem returns the row at position i or nil. Group totals deferred by
// LazyTotalsCalculation are computed here.
func (dv *DataView) GetItem(i int) Row {
	if i < 0 || i >= len(dv.rows) {
		return nil
	}
	row := dv.rows[i]

	switch r := row.(type) {
	case *Group:
		if r.Totals != nil && !r.Totals.Initialized {
			gi := dv.groupingInfos[r.Level]
			if gi.HideTotalsRow {
				dv.calculateTotals(r.Totals)
				r.Title = gi.title(r)
			}
		}
	case *GroupTotals:
		if !r.Initialized {
			dv.calculateTotals(r)
		}
	}
	return row
}

// GetRows returns the visible rows. Lazy totals are not computed.
func (dv *DataView) GetRows() []Row {
	return dv.rows
}

func (dv *DataView) ensureRowsByIdCache() {
	if dv.rowsById != nil {
		return
	}
	dv.rowsById = make(map[any]int, len(dv.rows))
	for i, row := range dv.rows {
		item, ok := row.(Item)
		if !ok {
			continue
		}
		if key, err := dv.keyOf(item); err == nil {
			dv.rowsById[key] = i
		}
	}
}

// GetRowById returns the visible row of an item id.
func (dv *DataView) GetRowById(id any) (int, bool) {
	key, ok := normalizeId(id)
	if !ok {
		return -1, false
	}
	dv.ensureRowsByIdCache()
	row, exists := dv.rowsById[key]
	return row, exists
}

func (dv *DataView) GetRowByItem(item Item) (int, bool) {
	key, err := dv.keyOf(item)
	if err != nil {
		return -1, false
	}
	dv.ensureRowsByIdCache()
	row, exists := dv.rowsById[key]
	return row, exists
}

// MapItemsToRows returns the visible rows of the items, skipping hidden ones.
func (dv *DataView) MapItemsToRows(items []Item) []int {
	rows := []int{}
	for _, item := range items {
		if row, ok := dv.GetRowByItem(item); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// MapIdsToRows returns the visible rows of the ids, skipping hidden ones.
func (dv *DataView) MapIdsToRows(ids []any) []int {
	rows := []int{}
	for _, id := range ids {
		if row, ok := dv.GetRowById(id); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// MapRowsToIds returns the ids of the data rows, skipping group rows and
// positions out of range.
func (dv *DataView) MapRowsToIds(rows []int) []any {
	ids := []any{}
	for _, i := range rows {
		if i < 0 || i >= len(dv.rows) {
			continue
		}
		if item, ok := dv.rows[i].(Item); ok {
			ids = append(ids, item[dv.idProperty])
		}
	}
	return ids
}
